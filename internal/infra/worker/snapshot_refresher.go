package worker

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/xavierca1/recruit-pipeline/internal/engine"
	"github.com/xavierca1/recruit-pipeline/internal/usecase"
)

const DefaultRefreshInterval = 5 * time.Second

type SnapshotStore interface {
	Refresh(ctx context.Context) error
	Current(ctx context.Context) (*usecase.Snapshot, error)
}

// SnapshotRefresher periodically reloads the candidate snapshot and hands the
// aggregated metrics to Observe.
type SnapshotRefresher struct {
	store        SnapshotStore
	tickInterval time.Duration
	observe      func(engine.Metrics)
	now          func() time.Time
}

func NewSnapshotRefresher(store SnapshotStore, interval time.Duration, observe func(engine.Metrics)) *SnapshotRefresher {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	return &SnapshotRefresher{
		store:        store,
		tickInterval: interval,
		observe:      observe,
		now:          time.Now,
	}
}

// Start refreshes once right away, then on every tick, until stop is called
// or ctx ends. stop blocks until the loop has exited and is safe to call twice.
func (w *SnapshotRefresher) Start(ctx context.Context) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		log.Printf("[REFRESH] snapshot refresher started (every %s)", w.tickInterval)

		ticker := time.NewTicker(w.tickInterval)
		defer ticker.Stop()

		w.refresh(ctx)
		for {
			select {
			case <-ctx.Done():
				log.Printf("[REFRESH] snapshot refresher stopped")
				return
			case <-ticker.C:
				w.refresh(ctx)
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(cancel)
		<-done
	}
}

func (w *SnapshotRefresher) refresh(ctx context.Context) {
	if err := w.store.Refresh(ctx); err != nil {
		if ctx.Err() == nil {
			log.Printf("[REFRESH] failed to refresh snapshot: %v", err)
		}
		return
	}
	if w.observe == nil {
		return
	}
	snap, err := w.store.Current(ctx)
	if err != nil {
		return
	}
	w.observe(engine.Aggregate(snap.Candidates, w.now()))
}
