package session

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/huynhanx03/gamekit/pkg/datastructs/shardedmap"
	"github.com/huynhanx03/gamekit/pkg/hash"
	"github.com/huynhanx03/gamekit/pkg/inventory"
	"github.com/huynhanx03/gamekit/pkg/inventory/store"
	"github.com/huynhanx03/gamekit/pkg/settings"
	"github.com/huynhanx03/gamekit/pkg/timer"
	"github.com/huynhanx03/gamekit/pkg/unique"
)

const sessionShards = 64

// ErrSessionNotFound is returned when a referenced session does not exist.
var ErrSessionNotFound = errors.New("session not found")

// Manager is the registry of live sessions. Each session owns its own
// inventory; the manager only maps IDs to sessions and drives snapshot
// persistence.
type Manager struct {
	sessions *shardedmap.Map[int64, *Session]
	ids      *unique.SnowflakeNode
	clock    timer.Timer
	snaps    *store.SnapshotStore
	rec      inventory.Recorder
	log      *zap.Logger

	capacity int
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithStore enables snapshot persistence on End and SnapshotAll.
func WithStore(s *store.SnapshotStore) ManagerOption {
	return func(m *Manager) { m.snaps = s }
}

// WithRecorder forwards inventory activity of every session to rec.
func WithRecorder(rec inventory.Recorder) ManagerOption {
	return func(m *Manager) { m.rec = rec }
}

// WithLogger attaches a logger. Defaults to a no-op logger.
func WithLogger(log *zap.Logger) ManagerOption {
	return func(m *Manager) { m.log = log }
}

// WithClock overrides the wall clock.
func WithClock(clock timer.Timer) ManagerOption {
	return func(m *Manager) { m.clock = clock }
}

// NewManager creates a session manager.
// cfg may be nil; inventories then start at the default capacity.
func NewManager(ids *unique.SnowflakeNode, cfg *settings.Inventory, opts ...ManagerOption) *Manager {
	m := &Manager{
		sessions: shardedmap.New[int64, *Session](sessionShards, func(k int64) uint64 {
			h, _ := hash.KeyToHash(k)
			return h
		}),
		ids:   ids,
		clock: timer.RealTimer{},
		log:   zap.NewNop(),
	}
	if cfg != nil {
		m.capacity = cfg.DefaultCapacity
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Create starts a new session with an empty inventory.
func (m *Manager) Create() *Session {
	id := m.ids.Generate()

	invOpts := []inventory.Option{inventory.WithLogger(m.log)}
	if m.rec != nil {
		invOpts = append(invOpts, inventory.WithRecorder(m.rec))
	}

	sess := &Session{
		id:        id,
		createdAt: m.clock.Now(),
		inv:       inventory.New(id, m.capacity, invOpts...),
	}
	m.sessions.Set(id, sess)

	m.log.Info("session created", zap.String("session", sess.Ref()))
	return sess
}

// Resume restores a previously ended session from its stored snapshot.
// Returns the live session if one already exists for the ID.
func (m *Manager) Resume(ctx context.Context, sessionID int64) (*Session, error) {
	if sess, ok := m.sessions.Get(sessionID); ok {
		return sess, nil
	}
	if m.snaps == nil {
		return nil, ErrSessionNotFound
	}

	snap, err := m.snaps.Load(ctx, sessionID)
	if err != nil {
		if err == store.ErrNotFound {
			return nil, ErrSessionNotFound
		}
		return nil, errors.Wrap(err, "resume session")
	}

	invOpts := []inventory.Option{inventory.WithLogger(m.log)}
	if m.rec != nil {
		invOpts = append(invOpts, inventory.WithRecorder(m.rec))
	}

	sess := &Session{
		id:        sessionID,
		createdAt: m.clock.Now(),
		inv:       inventory.New(sessionID, m.capacity, invOpts...),
	}
	sess.Restore(snap)

	// A concurrent Resume may have won; keep the registered one.
	actual, loaded := m.sessions.GetOrSet(sessionID, sess)
	if !loaded {
		m.log.Info("session resumed",
			zap.String("session", sess.Ref()),
			zap.Int("items", sess.Count()),
		)
	}
	return actual, nil
}

// Get returns a live session by ID.
func (m *Manager) Get(sessionID int64) (*Session, bool) {
	return m.sessions.Get(sessionID)
}

// End removes a session from the registry, persisting its final
// snapshot when a store is configured.
func (m *Manager) End(ctx context.Context, sessionID int64) error {
	sess, ok := m.sessions.Get(sessionID)
	if !ok {
		return ErrSessionNotFound
	}

	if m.snaps != nil {
		if err := m.snaps.Save(ctx, sess.Snapshot()); err != nil {
			return errors.Wrap(err, "end session")
		}
	}
	m.sessions.Del(sessionID)

	m.log.Info("session ended", zap.String("session", sess.Ref()))
	return nil
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	return m.sessions.Len()
}

// SnapshotAll persists every live session's inventory concurrently.
// No-op without a configured store.
func (m *Manager) SnapshotAll(ctx context.Context) error {
	if m.snaps == nil {
		return nil
	}

	var live []*Session
	m.sessions.Do(func(_ int64, sess *Session) {
		live = append(live, sess)
	})

	g, ctx := errgroup.WithContext(ctx)
	for _, sess := range live {
		g.Go(func() error {
			return m.snaps.Save(ctx, sess.Snapshot())
		})
	}
	if err := g.Wait(); err != nil {
		return errors.Wrap(err, "snapshot all sessions")
	}

	m.log.Debug("snapshots persisted", zap.Int("sessions", len(live)))
	return nil
}
