package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/recruit-pipeline/internal/engine"
)

type DashboardUseCase struct {
	Snapshots SnapshotSource
	Now       func() time.Time
}

func NewDashboardUseCase(snapshots SnapshotSource) *DashboardUseCase {
	return &DashboardUseCase{Snapshots: snapshots, Now: time.Now}
}

func (uc *DashboardUseCase) Metrics(ctx context.Context) (engine.Metrics, error) {
	snap, err := uc.Snapshots.Current(ctx)
	if err != nil {
		return engine.Metrics{}, err
	}
	return engine.Aggregate(snap.Candidates, uc.Now()), nil
}

// Scorecard ranks the snapshot; limit <= 0 uses engine.DefaultTopPerformers.
func (uc *DashboardUseCase) Scorecard(ctx context.Context, limit int) (engine.Scorecard, error) {
	snap, err := uc.Snapshots.Current(ctx)
	if err != nil {
		return engine.Scorecard{}, err
	}
	return engine.BuildScorecard(snap.Candidates, limit), nil
}
