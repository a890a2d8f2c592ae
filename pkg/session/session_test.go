package session

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/huynhanx03/gamekit/pkg/common/cache"
	"github.com/huynhanx03/gamekit/pkg/inventory"
	"github.com/huynhanx03/gamekit/pkg/inventory/store"
	"github.com/huynhanx03/gamekit/pkg/settings"
	"github.com/huynhanx03/gamekit/pkg/timer"
	"github.com/huynhanx03/gamekit/pkg/unique"
)

func newTestIDs(t *testing.T) *unique.SnowflakeNode {
	t.Helper()
	ids, err := unique.NewSnowflakeNode(settings.SnowflakeNode{
		Config: settings.Snowflake{
			Epoch: 1700000000000,
			Node:  2,
			Step:  4,
		},
		WorkerID: 1,
	}, timer.RealTimer{})
	if err != nil {
		t.Fatalf("NewSnowflakeNode() error = %v", err)
	}
	return ids
}

// memEngine is a minimal goroutine-safe cache.Engine for tests.
type memEngine struct {
	mu   sync.Mutex
	data map[string][]byte
}

var _ cache.Engine = (*memEngine)(nil)

func newMemEngine() *memEngine {
	return &memEngine{data: map[string][]byte{}}
}

func (e *memEngine) Get(_ context.Context, key string) ([]byte, bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, ok := e.data[key]
	return v, ok, nil
}

func (e *memEngine) Set(_ context.Context, key string, value any, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	e.mu.Lock()
	e.data[key] = b
	e.mu.Unlock()
	return nil
}

func (e *memEngine) Delete(_ context.Context, key string) error {
	e.mu.Lock()
	delete(e.data, key)
	e.mu.Unlock()
	return nil
}

func (e *memEngine) InvalidatePrefix(_ context.Context, _ string) error { return nil }

func (e *memEngine) BatchSet(ctx context.Context, values map[string]any, ttl time.Duration) error {
	for k, v := range values {
		if err := e.Set(ctx, k, v, ttl); err != nil {
			return err
		}
	}
	return nil
}

func (e *memEngine) BatchDelete(_ context.Context, _ []string) error  { return nil }
func (e *memEngine) Incr(_ context.Context, _ string) (int64, error) { return 0, nil }
func (e *memEngine) Close()                                          {}

func testItem(id int64) inventory.Item {
	return inventory.Item{ID: id, Name: "item", Kind: inventory.KindMisc, Count: 1}
}

// =============================================================================
// Method: Create() / Get()
// =============================================================================

func TestManager_CreateGet(t *testing.T) {
	m := NewManager(newTestIDs(t), &settings.Inventory{DefaultCapacity: 4})

	sess := m.Create()
	if sess.ID() == 0 {
		t.Error("Create() session ID = 0; want non-zero")
	}
	if sess.Ref() == "" {
		t.Error("Ref() = empty; want base62 ID")
	}

	got, ok := m.Get(sess.ID())
	if !ok || got != sess {
		t.Errorf("Get(%d) = (%v, %v); want created session", sess.ID(), got, ok)
	}
	if m.Len() != 1 {
		t.Errorf("Len() = %d; want 1", m.Len())
	}

	other := m.Create()
	if other.ID() == sess.ID() {
		t.Error("two sessions share one ID")
	}
}

// =============================================================================
// Session inventory operations
// =============================================================================

func TestSession_InventoryFlow(t *testing.T) {
	m := NewManager(newTestIDs(t), nil)
	sess := m.Create()

	sess.Collect(testItem(1))
	sess.Collect(testItem(2))
	sess.Collect(testItem(3))

	slots := sess.Slots()
	if !slots.HasMain || slots.Main.ID != 1 {
		t.Errorf("Slots().Main = %+v; want item 1", slots.Main)
	}
	if !slots.HasSub || slots.Sub.ID != 2 {
		t.Errorf("Slots().Sub = %+v; want item 2", slots.Sub)
	}

	next, ok := sess.CycleNext()
	if !ok || next.ID != 2 {
		t.Errorf("CycleNext() = (%+v, %v); want item 2", next, ok)
	}

	dropped, err := sess.Drop()
	if err != nil {
		t.Fatalf("Drop() error = %v", err)
	}
	if dropped.ID != 2 {
		t.Errorf("Drop() item.ID = %d; want 2", dropped.ID)
	}
	if sess.Count() != 2 {
		t.Errorf("Count() = %d; want 2", sess.Count())
	}
}

func TestSession_ConcurrentCollect(t *testing.T) {
	const (
		workers = 8
		perW    = 200
	)

	m := NewManager(newTestIDs(t), nil)
	sess := m.Create()

	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perW; i++ {
				sess.Collect(testItem(int64(i + 1)))
			}
		}()
	}
	wg.Wait()

	if got := sess.Count(); got != workers*perW {
		t.Errorf("Count() = %d; want %d", got, workers*perW)
	}
}

// =============================================================================
// Method: End() / Resume()
// =============================================================================

func TestManager_EndPersistsAndResumeRestores(t *testing.T) {
	ctx := context.Background()
	snaps := store.New(newMemEngine(), nil, nil)
	m := NewManager(newTestIDs(t), nil, WithStore(snaps))

	sess := m.Create()
	sess.Collect(testItem(1))
	sess.Collect(testItem(2))
	id := sess.ID()

	if err := m.End(ctx, id); err != nil {
		t.Fatalf("End() error = %v", err)
	}
	if _, ok := m.Get(id); ok {
		t.Error("Get() after End should fail")
	}
	if m.Len() != 0 {
		t.Errorf("Len() = %d after End; want 0", m.Len())
	}

	resumed, err := m.Resume(ctx, id)
	if err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	if resumed.Count() != 2 {
		t.Errorf("resumed Count() = %d; want 2", resumed.Count())
	}
	slots := resumed.Slots()
	if slots.Main.ID != 1 || slots.Sub.ID != 2 {
		t.Errorf("resumed Slots() = %+v; want items 1, 2", slots)
	}
}

func TestManager_EndUnknownSession(t *testing.T) {
	m := NewManager(newTestIDs(t), nil)

	if err := m.End(context.Background(), 12345); err != ErrSessionNotFound {
		t.Errorf("End() error = %v; want ErrSessionNotFound", err)
	}
}

func TestManager_ResumeUnknownSession(t *testing.T) {
	snaps := store.New(newMemEngine(), nil, nil)
	m := NewManager(newTestIDs(t), nil, WithStore(snaps))

	if _, err := m.Resume(context.Background(), 98765); err != ErrSessionNotFound {
		t.Errorf("Resume() error = %v; want ErrSessionNotFound", err)
	}
}

func TestManager_ResumeReturnsLiveSession(t *testing.T) {
	snaps := store.New(newMemEngine(), nil, nil)
	m := NewManager(newTestIDs(t), nil, WithStore(snaps))

	sess := m.Create()
	sess.Collect(testItem(1))

	resumed, err := m.Resume(context.Background(), sess.ID())
	if err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	if resumed != sess {
		t.Error("Resume() of a live session should return the live instance")
	}
}

// =============================================================================
// Method: SnapshotAll()
// =============================================================================

func TestManager_SnapshotAll(t *testing.T) {
	ctx := context.Background()
	engine := newMemEngine()
	snaps := store.New(engine, nil, nil)
	m := NewManager(newTestIDs(t), nil, WithStore(snaps))

	a := m.Create()
	a.Collect(testItem(1))
	b := m.Create()
	b.Collect(testItem(2))
	b.Collect(testItem(3))

	if err := m.SnapshotAll(ctx); err != nil {
		t.Fatalf("SnapshotAll() error = %v", err)
	}

	for _, sess := range []*Session{a, b} {
		got, err := snaps.Load(ctx, sess.ID())
		if err != nil {
			t.Fatalf("Load(%d) error = %v", sess.ID(), err)
		}
		if len(got.Items) != sess.Count() {
			t.Errorf("Load(%d) items = %d; want %d", sess.ID(), len(got.Items), sess.Count())
		}
	}
}

func TestManager_SnapshotAllWithoutStore(t *testing.T) {
	m := NewManager(newTestIDs(t), nil)
	m.Create()

	if err := m.SnapshotAll(context.Background()); err != nil {
		t.Errorf("SnapshotAll() without store error = %v; want nil", err)
	}
}
