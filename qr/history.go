package qr

import (
	"sync"
	"time"
)

// HistoryLimit is the number of scans kept per scanner
const HistoryLimit = 10

// Record is one successful scan
type Record struct {
	ID        int64     `json:"id"`
	Data      string    `json:"data"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"`
}

// History holds the most recent scans, newest first
type History struct {
	mu      sync.Mutex
	records []Record
	lastID  int64
}

func (h *History) add(data string, at time.Time) Record {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := at.UnixMilli()
	if id <= h.lastID {
		id = h.lastID + 1
	}
	h.lastID = id

	rec := Record{ID: id, Data: data, Timestamp: at, Status: "success"}
	h.records = append([]Record{rec}, h.records...)
	if len(h.records) > HistoryLimit {
		h.records = h.records[:HistoryLimit]
	}
	return rec
}

// List returns a copy of the records, newest first
func (h *History) List() []Record {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]Record(nil), h.records...)
}

func (h *History) clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = nil
}
