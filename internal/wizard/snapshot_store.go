package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// ErrSnapshotNotFound is returned when no snapshot exists for a session.
var ErrSnapshotNotFound = errors.New("wizard: snapshot not found")

// SnapshotStore persists wizard snapshots to Redis so a session survives a
// front-office restart. Entries expire with the session TTL.
type SnapshotStore struct {
	redis  *redis.Client
	tracer trace.Tracer
	ttl    time.Duration
}

// NewSnapshotStore creates a snapshot store. Returns nil when redisClient
// is nil so callers can treat persistence as optional.
func NewSnapshotStore(redisClient *redis.Client, ttl time.Duration) *SnapshotStore {
	if redisClient == nil {
		return nil
	}
	return &SnapshotStore{
		redis:  redisClient,
		tracer: otel.Tracer("frontoffice.internal.wizard.snapshots"),
		ttl:    ttl,
	}
}

// Save persists the snapshot for a session and refreshes its TTL.
func (s *SnapshotStore) Save(ctx context.Context, sessionID string, snap Snapshot) error {
	if s == nil {
		return nil
	}
	ctx, span := s.tracer.Start(ctx, "wizard.save_snapshot")
	defer span.End()

	data, err := json.Marshal(snap)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("wizard: marshal snapshot: %w", err)
	}
	if err := s.redis.Set(ctx, snapshotKey(sessionID), data, s.ttl).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("wizard: persist snapshot: %w", err)
	}
	return nil
}

// Load returns the persisted snapshot for a session.
func (s *SnapshotStore) Load(ctx context.Context, sessionID string) (Snapshot, error) {
	if s == nil {
		return Snapshot{}, ErrSnapshotNotFound
	}
	ctx, span := s.tracer.Start(ctx, "wizard.load_snapshot")
	defer span.End()

	data, err := s.redis.Get(ctx, snapshotKey(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Snapshot{}, ErrSnapshotNotFound
		}
		span.RecordError(err)
		return Snapshot{}, fmt.Errorf("wizard: load snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		span.RecordError(err)
		return Snapshot{}, fmt.Errorf("wizard: decode snapshot: %w", err)
	}
	return snap, nil
}

// Delete removes the persisted snapshot for a session.
func (s *SnapshotStore) Delete(ctx context.Context, sessionID string) error {
	if s == nil {
		return nil
	}
	ctx, span := s.tracer.Start(ctx, "wizard.delete_snapshot")
	defer span.End()

	if err := s.redis.Del(ctx, snapshotKey(sessionID)).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("wizard: delete snapshot: %w", err)
	}
	return nil
}

func snapshotKey(sessionID string) string {
	return "wizard_session:" + sessionID
}
