package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cabinetx/front-office/pkg/logging"
)

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("wizard: session not found")

// Registry holds the live wizard sessions. Each session is an explicit
// context value identified by a random id; there is no process-global
// session state. Idle sessions are evicted after the TTL, and an optional
// SnapshotStore lets an evicted or restarted session be rebuilt.
type Registry struct {
	factory func() *Controller
	store   *SnapshotStore
	ttl     time.Duration
	logger  *logging.Logger

	mu       sync.Mutex
	sessions map[string]*sessionEntry
}

type sessionEntry struct {
	controller *Controller
	lastSeen   time.Time
}

// NewRegistry creates a session registry. store may be nil, in which case
// sessions live only in memory.
func NewRegistry(factory func() *Controller, store *SnapshotStore, ttl time.Duration, logger *logging.Logger) *Registry {
	if logger == nil {
		logger = logging.Default()
	}
	r := &Registry{
		factory:  factory,
		store:    store,
		ttl:      ttl,
		logger:   logger,
		sessions: make(map[string]*sessionEntry),
	}
	go r.sweep()
	return r
}

// Create starts a new wizard session and returns its id and controller.
func (r *Registry) Create(ctx context.Context) (string, *Controller) {
	id := uuid.NewString()
	controller := r.factory()

	r.mu.Lock()
	r.sessions[id] = &sessionEntry{controller: controller, lastSeen: time.Now()}
	r.mu.Unlock()

	r.persist(ctx, id, controller.Snapshot())
	r.logger.Info("wizard session created", "session_id", id)
	return id, controller
}

// Get returns the controller for a session, falling back to the snapshot
// store when the session is not in memory.
func (r *Registry) Get(ctx context.Context, id string) (*Controller, error) {
	r.mu.Lock()
	if entry, ok := r.sessions[id]; ok {
		entry.lastSeen = time.Now()
		controller := entry.controller
		r.mu.Unlock()
		return controller, nil
	}
	r.mu.Unlock()

	snap, err := r.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSnapshotNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	controller := r.factory()
	controller.Restore(snap)

	r.mu.Lock()
	r.sessions[id] = &sessionEntry{controller: controller, lastSeen: time.Now()}
	r.mu.Unlock()

	r.logger.Info("wizard session restored from store", "session_id", id)
	return controller, nil
}

// Persist saves a session snapshot to the store, logging on failure.
// Persistence is best effort: the in-memory session stays authoritative.
func (r *Registry) Persist(ctx context.Context, id string, snap Snapshot) {
	r.persist(ctx, id, snap)
}

func (r *Registry) persist(ctx context.Context, id string, snap Snapshot) {
	if err := r.store.Save(ctx, id, snap); err != nil {
		r.logger.Warn("failed to persist wizard snapshot", "session_id", id, "error", err)
	}
}

// Remove forgets a session and deletes its persisted snapshot.
func (r *Registry) Remove(ctx context.Context, id string) {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	if err := r.store.Delete(ctx, id); err != nil {
		r.logger.Warn("failed to delete wizard snapshot", "session_id", id, "error", err)
	}
}

// Len returns the number of in-memory sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// sweep periodically evicts sessions idle past the TTL. Evicted sessions
// remain recoverable through the snapshot store until Redis expires them.
func (r *Registry) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-r.ttl)
		r.mu.Lock()
		for id, entry := range r.sessions {
			if entry.lastSeen.Before(cutoff) {
				delete(r.sessions, id)
			}
		}
		r.mu.Unlock()
	}
}
