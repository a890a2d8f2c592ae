package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/huynhanx03/gamekit/pkg/common/cache"
	"github.com/huynhanx03/gamekit/pkg/encoding"
	"github.com/huynhanx03/gamekit/pkg/inventory"
	"github.com/huynhanx03/gamekit/pkg/settings"
)

const defaultKeyPrefix = "inventory:snapshot:"

// ErrNotFound is returned when no snapshot exists for a session.
var ErrNotFound = errors.New("snapshot not found")

// SnapshotStore persists inventory snapshots in a cache engine, keyed
// by session ID. TTL of zero keeps snapshots until deleted.
type SnapshotStore struct {
	engine cache.Engine
	local  cache.LocalCache[string, inventory.Snapshot]
	prefix string
	ttl    time.Duration
	log    *zap.Logger
}

// Option configures a SnapshotStore.
type Option func(*SnapshotStore)

// WithLocalCache adds an in-process read-through cache in front of the
// engine. Loads hit it first; saves and deletes keep it in sync.
func WithLocalCache(local cache.LocalCache[string, inventory.Snapshot]) Option {
	return func(s *SnapshotStore) { s.local = local }
}

// New creates a snapshot store backed by the given engine.
func New(engine cache.Engine, cfg *settings.Snapshot, log *zap.Logger, opts ...Option) *SnapshotStore {
	prefix := defaultKeyPrefix
	var ttl time.Duration
	if cfg != nil {
		if cfg.KeyPrefix != "" {
			prefix = cfg.KeyPrefix
		}
		ttl = time.Duration(cfg.TTLSeconds) * time.Second
	}
	if log == nil {
		log = zap.NewNop()
	}

	s := &SnapshotStore{
		engine: engine,
		prefix: prefix,
		ttl:    ttl,
		log:    log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *SnapshotStore) key(sessionID int64) string {
	return s.prefix + encoding.Base62Encode(sessionID)
}

// Save persists one snapshot.
func (s *SnapshotStore) Save(ctx context.Context, snap inventory.Snapshot) error {
	key := s.key(snap.SessionID)
	if err := cache.HandleSetCache(ctx, snap, s.engine, key, s.ttl); err != nil {
		return errors.Wrap(err, "save snapshot")
	}
	s.cacheLocal(key, snap)

	s.log.Debug("snapshot saved",
		zap.Int64("session_id", snap.SessionID),
		zap.Int("items", len(snap.Items)),
	)
	return nil
}

// SaveAll persists multiple snapshots in one round trip.
func (s *SnapshotStore) SaveAll(ctx context.Context, snaps []inventory.Snapshot) error {
	if len(snaps) == 0 {
		return nil
	}

	values := make(map[string]any, len(snaps))
	for _, snap := range snaps {
		values[s.key(snap.SessionID)] = snap
	}
	if err := s.engine.BatchSet(ctx, values, s.ttl); err != nil {
		return errors.Wrap(err, "save snapshots")
	}
	for _, snap := range snaps {
		s.cacheLocal(s.key(snap.SessionID), snap)
	}
	return nil
}

// Load retrieves a session's snapshot.
// Returns ErrNotFound when none exists.
func (s *SnapshotStore) Load(ctx context.Context, sessionID int64) (inventory.Snapshot, error) {
	var snap inventory.Snapshot

	key := s.key(sessionID)
	if s.local != nil {
		if cached, ok := s.local.Get(key); ok {
			return cached, nil
		}
	}

	if err := cache.HandleHitCache(ctx, &snap, s.engine, key); err != nil {
		if errors.Is(err, cache.ErrMiss) {
			return snap, ErrNotFound
		}
		return snap, errors.Wrap(err, "load snapshot")
	}

	s.cacheLocal(key, snap)
	return snap, nil
}

// Delete removes a session's snapshot.
func (s *SnapshotStore) Delete(ctx context.Context, sessionID int64) error {
	key := s.key(sessionID)
	if err := cache.HandleDeleteCache(ctx, s.engine, key); err != nil {
		return errors.Wrap(err, "delete snapshot")
	}
	if s.local != nil {
		s.local.Delete(key)
	}
	return nil
}

func (s *SnapshotStore) cacheLocal(key string, snap inventory.Snapshot) {
	if s.local == nil {
		return
	}
	s.local.Set(key, snap, int64(1+len(snap.Items)))
}
