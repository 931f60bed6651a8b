// Package refresh keeps connected dashboards current without letting bursty
// inbound traffic fan out into redundant database reads. Each property has
// at most one snapshot load in flight; triggers arriving mid-load collapse
// into a single trailing rerun.
package refresh

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"

	"stayops-be/internal/entity"
	"stayops-be/internal/pkg/logger"
	"stayops-be/pkg/pipeline"
)

// Snapshot is the payload pushed to a property's dashboard room.
type Snapshot struct {
	PropertyId  uuid.UUID             `json:"property_id"`
	Requests    []*entity.Request     `json:"requests"`
	Summary     pipeline.QueueSummary `json:"summary"`
	RefreshedAt time.Time             `json:"refreshed_at"`
}

// Loader fetches the current request queue for a property, plus the
// property's timezone so summary counters bucket calendar days the same way
// the REST path does. A nil location falls back to UTC.
type Loader func(ctx context.Context, propertyID uuid.UUID) ([]*entity.Request, *time.Location, error)

// Hub is the live-update surface the refresher pushes snapshots through.
type Hub interface {
	ActiveProperties() []uuid.UUID
	BroadcastToProperty(propertyID uuid.UUID, event string, data interface{})
}

// Cache receives the marshaled frame of each successful refresh so new
// connections can be served the last snapshot immediately. Nil disables
// caching.
type Cache interface {
	Store(ctx context.Context, propertyID uuid.UUID, payload []byte) error
}

const (
	EventQueueUpdated = "queue.updated"

	defaultInterval = 60 * time.Second
	loadTimeout     = 15 * time.Second
)

type propertyState struct {
	inFlight bool
	dirty    bool
}

type Refresher struct {
	loader   Loader
	hub      Hub
	cache    Cache
	logger   logger.ILogger
	interval time.Duration

	mu      sync.Mutex
	states  map[uuid.UUID]*propertyState
	stopped bool
}

func NewRefresher(loader Loader, hub Hub, cache Cache, log logger.ILogger, interval time.Duration) *Refresher {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Refresher{
		loader:   loader,
		hub:      hub,
		cache:    cache,
		logger:   log,
		interval: interval,
		states:   make(map[uuid.UUID]*propertyState),
	}
}

// Run periodically triggers a refresh for every property with at least one
// connected dashboard. It returns when ctx is cancelled; results from loads
// still in flight at that point are discarded.
func (r *Refresher) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.mu.Lock()
			r.stopped = true
			r.mu.Unlock()
			r.logger.Info("Refresher", "Stopped", nil)
			return
		case <-ticker.C:
			for _, id := range r.hub.ActiveProperties() {
				r.Trigger(id)
			}
		}
	}
}

// Trigger requests a fresh snapshot for one property. If a load is already
// running the call only marks the property dirty; the running load schedules
// exactly one rerun when it finishes, so N triggers during a load produce
// one trailing refresh, not N.
func (r *Refresher) Trigger(propertyID uuid.UUID) {
	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	st := r.states[propertyID]
	if st == nil {
		st = &propertyState{}
		r.states[propertyID] = st
	}
	if st.inFlight {
		st.dirty = true
		r.mu.Unlock()
		return
	}
	st.inFlight = true
	r.mu.Unlock()

	go r.refresh(propertyID)
}

func (r *Refresher) refresh(propertyID uuid.UUID) {
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	requests, loc, err := r.loader(ctx, propertyID)
	cancel()

	r.mu.Lock()
	if r.stopped {
		r.mu.Unlock()
		return
	}
	st := r.states[propertyID]
	rerun := st.dirty
	st.dirty = false
	if !rerun {
		st.inFlight = false
	}
	r.mu.Unlock()

	if err != nil {
		// The stale snapshot stands until the next trigger succeeds.
		r.logger.Error("Refresher", "Queue reload failed", map[string]interface{}{
			"property_id": propertyID,
			"error":       err.Error(),
		})
	} else {
		snap := Snapshot{
			PropertyId:  propertyID,
			Requests:    pipeline.FilterAndSort(requests, pipeline.DefaultFilters()),
			Summary:     pipeline.Summarize(requests, time.Now(), loc),
			RefreshedAt: time.Now(),
		}
		r.hub.BroadcastToProperty(propertyID, EventQueueUpdated, snap)
		r.storeSnapshot(propertyID, snap)
	}

	if rerun {
		go r.refresh(propertyID)
	}
}

// storeSnapshot caches the same frame shape the hub broadcasts, so a cached
// payload can be written to a fresh connection verbatim.
func (r *Refresher) storeSnapshot(propertyID uuid.UUID, snap Snapshot) {
	if r.cache == nil {
		return
	}
	frame, err := json.Marshal(map[string]interface{}{
		"type": EventQueueUpdated,
		"data": snap,
	})
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := r.cache.Store(ctx, propertyID, frame); err != nil {
		r.logger.Warn("Refresher", "Snapshot cache write failed", map[string]interface{}{
			"property_id": propertyID,
			"error":       err.Error(),
		})
	}
}
