package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/xavierca1/recruit-pipeline/internal/entity"
)

// Snapshot is an immutable copy of the candidate collection. Nothing may modify
// Candidates after the snapshot is published.
type Snapshot struct {
	Candidates []entity.Candidate
	TakenAt    time.Time
}

// SnapshotStore publishes snapshots by swapping a pointer, so readers never see
// a half-built collection.
type SnapshotStore struct {
	Repo entity.CandidateRepository
	Now  func() time.Time

	current atomic.Pointer[Snapshot]
	mu      sync.Mutex // serialises refreshes, not reads
}

func NewSnapshotStore(repo entity.CandidateRepository) *SnapshotStore {
	return &SnapshotStore{Repo: repo, Now: time.Now}
}

func (s *SnapshotStore) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	candidates, err := s.Repo.List(ctx)
	if err != nil {
		return dbError("failed to load candidates", err)
	}
	if candidates == nil {
		candidates = []entity.Candidate{}
	}
	s.current.Store(&Snapshot{Candidates: candidates, TakenAt: s.Now()})
	return nil
}

// Current returns the latest snapshot, taking the first one on demand.
func (s *SnapshotStore) Current(ctx context.Context) (*Snapshot, error) {
	if snap := s.current.Load(); snap != nil {
		return snap, nil
	}
	if err := s.Refresh(ctx); err != nil {
		return nil, err
	}
	return s.current.Load(), nil
}
