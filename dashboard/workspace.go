package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/agrichain/agrichain/qr"
	"github.com/agrichain/agrichain/session"
	cmtlog "github.com/cometbft/cometbft/libs/log"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Workspace is the mock data a single session works on
type Workspace struct {
	Farmer      *FarmerStore
	Distributor *DistributorStore
	Retailer    *RetailerStore
	Consumer    *ConsumerStore
	Scanner     *qr.Scanner
}

// NewWorkspace seeds a fresh workspace
func NewWorkspace(now func() time.Time) *Workspace {
	ids := &idSource{now: now}
	return &Workspace{
		Farmer:      newFarmerStore(now),
		Distributor: newDistributorStore(now, ids),
		Retailer:    newRetailerStore(),
		Consumer:    newConsumerStore(now, ids),
		Scanner:     qr.NewScanner(nil),
	}
}

// Workspaces keeps one workspace per session in an expiring LRU
type Workspaces struct {
	mu     sync.Mutex
	cache  *expirable.LRU[string, *Workspace]
	now    func() time.Time
	logger cmtlog.Logger
}

func NewWorkspaces(size int, ttl time.Duration, logger cmtlog.Logger) *Workspaces {
	w := &Workspaces{now: time.Now, logger: logger}
	w.cache = expirable.NewLRU[string, *Workspace](size, func(id string, _ *Workspace) {
		w.logger.Debug("Workspace evicted", "session_id", id)
	}, ttl)
	return w
}

// Get returns the workspace of sessionID, seeding it on first use.
// Every call restarts the workspace's TTL.
func (w *Workspaces) Get(sessionID string) *Workspace {
	w.mu.Lock()
	defer w.mu.Unlock()

	if ws, ok := w.cache.Get(sessionID); ok {
		// Get alone does not touch the expiry
		w.cache.Add(sessionID, ws)
		return ws
	}
	ws := NewWorkspace(w.now)
	w.cache.Add(sessionID, ws)
	return ws
}

// Drop discards the workspace of sessionID
func (w *Workspaces) Drop(sessionID string) {
	w.cache.Remove(sessionID)
}

// Len is the number of live workspaces
func (w *Workspaces) Len() int {
	return w.cache.Len()
}

// Follow drops workspaces of sessions that log out until ctx ends or events closes
func (w *Workspaces) Follow(ctx context.Context, events <-chan session.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			if ev.Kind == session.EventLoggedOut && ev.Session != nil {
				w.Drop(ev.Session.ID)
			}
		}
	}
}
