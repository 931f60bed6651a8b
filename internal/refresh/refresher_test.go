package refresh

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"stayops-be/internal/entity"
	"stayops-be/internal/pkg/logger"
)

type fakeHub struct {
	mu         sync.Mutex
	active     []uuid.UUID
	broadcasts []Snapshot
}

func (h *fakeHub) ActiveProperties() []uuid.UUID { return h.active }

func (h *fakeHub) BroadcastToProperty(propertyID uuid.UUID, event string, data interface{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if snap, ok := data.(Snapshot); ok {
		h.broadcasts = append(h.broadcasts, snap)
	}
}

func (h *fakeHub) count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.broadcasts)
}

func testLogger(t *testing.T) logger.ILogger {
	t.Helper()
	return logger.NewIsolatedLogger(t.TempDir() + "/refresh.log")
}

func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestTriggerBroadcastsSnapshot(t *testing.T) {
	propertyID := uuid.New()
	hub := &fakeHub{}
	loader := func(ctx context.Context, id uuid.UUID) ([]*entity.Request, *time.Location, error) {
		return []*entity.Request{
			{Id: uuid.New(), PropertyId: id, Message: "towels", CreatedAt: time.Now()},
			{Id: uuid.New(), PropertyId: id, Message: "done", Completed: true, CreatedAt: time.Now()},
		}, nil, nil
	}

	r := NewRefresher(loader, hub, nil, testLogger(t), time.Hour)
	r.Trigger(propertyID)

	waitFor(t, func() bool { return hub.count() == 1 }, "snapshot never broadcast")

	hub.mu.Lock()
	snap := hub.broadcasts[0]
	hub.mu.Unlock()
	if snap.PropertyId != propertyID {
		t.Errorf("snapshot property = %s, want %s", snap.PropertyId, propertyID)
	}
	if len(snap.Requests) != 1 {
		t.Errorf("snapshot has %d requests, want 1 (completed hidden)", len(snap.Requests))
	}
	if snap.Summary.Active != 1 {
		t.Errorf("summary active = %d, want 1", snap.Summary.Active)
	}
}

func TestTriggersCoalesceWhileLoadInFlight(t *testing.T) {
	propertyID := uuid.New()
	hub := &fakeHub{}

	var loads int64
	release := make(chan struct{})
	loader := func(ctx context.Context, id uuid.UUID) ([]*entity.Request, *time.Location, error) {
		n := atomic.AddInt64(&loads, 1)
		if n == 1 {
			<-release
		}
		return nil, nil, nil
	}

	r := NewRefresher(loader, hub, nil, testLogger(t), time.Hour)
	r.Trigger(propertyID)
	waitFor(t, func() bool { return atomic.LoadInt64(&loads) == 1 }, "first load never started")

	// Five triggers while the first load is blocked collapse into a
	// single trailing rerun.
	for i := 0; i < 5; i++ {
		r.Trigger(propertyID)
	}
	close(release)

	waitFor(t, func() bool { return hub.count() == 2 }, "trailing refresh never ran")
	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt64(&loads); got != 2 {
		t.Errorf("loader ran %d times, want 2", got)
	}
}

func TestIndependentPropertiesRefreshConcurrently(t *testing.T) {
	hub := &fakeHub{}
	started := make(chan uuid.UUID, 2)
	release := make(chan struct{})
	loader := func(ctx context.Context, id uuid.UUID) ([]*entity.Request, *time.Location, error) {
		started <- id
		<-release
		return nil, nil, nil
	}

	r := NewRefresher(loader, hub, nil, testLogger(t), time.Hour)
	r.Trigger(uuid.New())
	r.Trigger(uuid.New())

	for i := 0; i < 2; i++ {
		select {
		case <-started:
		case <-time.After(2 * time.Second):
			t.Fatal("one property's load blocked the other")
		}
	}
	close(release)
	waitFor(t, func() bool { return hub.count() == 2 }, "broadcasts missing")
}

func TestRunStopsOnContextCancel(t *testing.T) {
	propertyID := uuid.New()
	hub := &fakeHub{active: []uuid.UUID{propertyID}}
	loader := func(ctx context.Context, id uuid.UUID) ([]*entity.Request, *time.Location, error) {
		return nil, nil, nil
	}

	r := NewRefresher(loader, hub, nil, testLogger(t), 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Run(ctx)
		close(done)
	}()

	waitFor(t, func() bool { return hub.count() >= 1 }, "ticker never fired")
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	// Triggers after shutdown are ignored.
	before := hub.count()
	r.Trigger(propertyID)
	time.Sleep(50 * time.Millisecond)
	if hub.count() != before {
		t.Error("trigger after stop still broadcast")
	}
}

func TestSnapshotSummaryBucketsInPropertyTimezone(t *testing.T) {
	propertyID := uuid.New()
	hub := &fakeHub{}

	// Shortly after midnight UTC is always the previous calendar day at
	// UTC-10, so this request counts toward Today under UTC bucketing but
	// not under the property's timezone.
	y, m, d := time.Now().UTC().Date()
	createdAt := time.Date(y, m, d, 0, 1, 0, 0, time.UTC)
	loc := time.FixedZone("UTC-10", -10*3600)

	loader := func(ctx context.Context, id uuid.UUID) ([]*entity.Request, *time.Location, error) {
		return []*entity.Request{
			{Id: uuid.New(), PropertyId: id, Message: "late arrival", CreatedAt: createdAt},
		}, loc, nil
	}

	r := NewRefresher(loader, hub, nil, testLogger(t), time.Hour)
	r.Trigger(propertyID)

	waitFor(t, func() bool { return hub.count() == 1 }, "snapshot never broadcast")

	hub.mu.Lock()
	snap := hub.broadcasts[0]
	hub.mu.Unlock()
	if snap.Summary.Today != 0 {
		t.Errorf("today = %d, want 0 (created yesterday in the property timezone)", snap.Summary.Today)
	}
	if snap.Summary.Active != 1 {
		t.Errorf("active = %d, want 1", snap.Summary.Active)
	}
}
