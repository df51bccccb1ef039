package qr

import (
	"errors"
	"math/rand/v2"
	"sync"
	"time"
)

// State of a scanner
type State string

const (
	StateIdle     State = "idle"
	StateScanning State = "scanning"
)

// FacingEnvironment is the camera a scanner asks for when it starts
const FacingEnvironment = "environment"

var ErrNotScanning = errors.New("scanner is not running")

var simulatedPayloads = []string{
	"BATCH-TOMATO-001",
	"Farm A, Nashik, Maharashtra, India",
	"2024-01-15",
	"0x1234567890abcdef1234567890abcdef12345678",
}

// Status is a point-in-time view of a scanner
type Status struct {
	State      State    `json:"state"`
	FacingMode string   `json:"facingMode,omitempty"`
	LastResult string   `json:"lastResult,omitempty"`
	History    []Record `json:"history"`
}

// Scanner reads QR codes from submitted frames for a single session
type Scanner struct {
	mu         sync.Mutex
	state      State
	facingMode string
	lastResult string

	history *History
	decoder Decoder
	now     func() time.Time
	pick    func(n int) int
}

func NewScanner(decoder Decoder) *Scanner {
	if decoder == nil {
		decoder = ZXingDecoder{}
	}
	return &Scanner{
		state:   StateIdle,
		history: &History{},
		decoder: decoder,
		now:     time.Now,
		pick:    rand.IntN,
	}
}

// Start moves the scanner to scanning and requests the rear camera
func (s *Scanner) Start() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateScanning
	s.facingMode = FacingEnvironment
	return s.statusLocked()
}

// Stop releases the camera
func (s *Scanner) Stop() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateIdle
	s.facingMode = ""
	return s.statusLocked()
}

// SubmitFrame decodes one camera frame. A frame that is not an image
// stops the scanner; a frame without a code leaves it scanning.
func (s *Scanner) SubmitFrame(frame []byte) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateScanning {
		return Record{}, ErrNotScanning
	}

	img, err := DecodeFrame(frame)
	if err != nil {
		s.state = StateIdle
		s.facingMode = ""
		return Record{}, err
	}

	text, err := s.decoder.Decode(img)
	if err != nil {
		return Record{}, err
	}

	return s.recordLocked(text), nil
}

// Simulate records one of the mock payloads without a camera
func (s *Scanner) Simulate() Record {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.recordLocked(simulatedPayloads[s.pick(len(simulatedPayloads))])
}

func (s *Scanner) recordLocked(text string) Record {
	rec := s.history.add(text, s.now())
	s.lastResult = text
	s.state = StateIdle
	s.facingMode = ""
	return rec
}

// History returns the recent scans, newest first
func (s *Scanner) History() []Record {
	return s.history.List()
}

// ClearHistory forgets every recorded scan
func (s *Scanner) ClearHistory() {
	s.history.clear()
}

// Status reports the current state and history
func (s *Scanner) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

func (s *Scanner) statusLocked() Status {
	return Status{
		State:      s.state,
		FacingMode: s.facingMode,
		LastResult: s.lastResult,
		History:    s.history.List(),
	}
}
