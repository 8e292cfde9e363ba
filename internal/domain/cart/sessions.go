// internal/domain/cart/sessions.go
package cart

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Sessions holds exactly one Store per cart session. Stores are created on
// first use and live until Sweep evicts them; their durable record outlives
// eviction and is read back on the next Get.
type Sessions struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry

	storage Storage
	prefix  string
	log     logrus.FieldLogger
	now     func() time.Time
}

type sessionEntry struct {
	store    *Store
	lastUsed time.Time
}

// NewSessions creates a session registry writing to storage under "{prefix}:{sessionID}"
func NewSessions(storage Storage, prefix string, logger logrus.FieldLogger) *Sessions {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Sessions{
		entries: make(map[string]*sessionEntry),
		storage: storage,
		prefix:  prefix,
		log:     logger,
		now:     time.Now,
	}
}

// StorageKey returns the durable key of a session's cart
func (r *Sessions) StorageKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, sessionID)
}

// Get returns the store of sessionID, hydrating it from storage on first use.
// Hydration runs without holding the registry lock.
func (r *Sessions) Get(ctx context.Context, sessionID string) *Store {
	if store, ok := r.lookup(sessionID); ok {
		return store
	}

	store := NewStore(ctx, r.storage, r.StorageKey(sessionID), r.log.WithField("session_id", sessionID))

	r.mu.Lock()
	defer r.mu.Unlock()

	// A concurrent Get may have hydrated the same session first
	if e, ok := r.entries[sessionID]; ok {
		e.lastUsed = r.now()
		return e.store
	}
	r.entries[sessionID] = &sessionEntry{store: store, lastUsed: r.now()}
	return store
}

func (r *Sessions) lookup(sessionID string) (*Store, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[sessionID]
	if !ok {
		return nil, false
	}
	e.lastUsed = r.now()
	return e.store, true
}

// Len returns the number of stores held in memory
func (r *Sessions) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep drops stores unused for longer than maxIdle and returns how many were dropped
func (r *Sessions) Sweep(maxIdle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-maxIdle)
	evicted := 0
	for id, e := range r.entries {
		if e.lastUsed.Before(cutoff) {
			delete(r.entries, id)
			evicted++
		}
	}

	if evicted > 0 {
		r.log.WithFields(logrus.Fields{
			"evicted":   evicted,
			"remaining": len(r.entries),
		}).Debug("Evicted idle cart sessions")
	}
	return evicted
}
