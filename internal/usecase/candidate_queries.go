package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/recruit-pipeline/internal/engine"
	"github.com/xavierca1/recruit-pipeline/internal/entity"
)

type SnapshotSource interface {
	Current(ctx context.Context) (*Snapshot, error)
}

type GetCandidateUseCase struct {
	Repo entity.CandidateRepository
}

func NewGetCandidateUseCase(repo entity.CandidateRepository) *GetCandidateUseCase {
	return &GetCandidateUseCase{Repo: repo}
}

func (uc *GetCandidateUseCase) Execute(ctx context.Context, id string) (*entity.Candidate, error) {
	if !validID(id) {
		return nil, notFound(id)
	}
	c, err := uc.Repo.FindByID(ctx, id)
	if err != nil {
		return nil, wrapRepoError("load", id, err)
	}
	return c, nil
}

// ListCandidatesUseCase runs the filter pipeline over the current snapshot.
type ListCandidatesUseCase struct {
	Snapshots SnapshotSource
	Now       func() time.Time
}

func NewListCandidatesUseCase(snapshots SnapshotSource) *ListCandidatesUseCase {
	return &ListCandidatesUseCase{Snapshots: snapshots, Now: time.Now}
}

func (uc *ListCandidatesUseCase) Execute(ctx context.Context, cfg engine.FilterConfig) ([]entity.Candidate, error) {
	snap, err := uc.Snapshots.Current(ctx)
	if err != nil {
		return nil, err
	}
	return engine.Filter(snap.Candidates, cfg, uc.Now()), nil
}

type ListByStageUseCase struct {
	Repo entity.CandidateRepository
}

func NewListByStageUseCase(repo entity.CandidateRepository) *ListByStageUseCase {
	return &ListByStageUseCase{Repo: repo}
}

func (uc *ListByStageUseCase) Execute(ctx context.Context, rawStage string) ([]entity.Candidate, error) {
	stage, err := entity.ParseStage(rawStage)
	if err != nil {
		return nil, &DomainError{Code: CodeInvalidStage, Message: err.Error()}
	}
	candidates, err := uc.Repo.ListByStage(ctx, stage)
	if err != nil {
		return nil, dbError("failed to list candidates", err)
	}
	if candidates == nil {
		candidates = []entity.Candidate{}
	}
	return candidates, nil
}

type DeleteCandidateUseCase struct {
	Repo      entity.CandidateRepository
	Snapshots SnapshotRefresher
}

func NewDeleteCandidateUseCase(repo entity.CandidateRepository, snapshots SnapshotRefresher) *DeleteCandidateUseCase {
	return &DeleteCandidateUseCase{Repo: repo, Snapshots: snapshots}
}

func (uc *DeleteCandidateUseCase) Execute(ctx context.Context, id string) error {
	if !validID(id) {
		return notFound(id)
	}
	if err := uc.Repo.Delete(ctx, id); err != nil {
		return wrapRepoError("delete", id, err)
	}
	refreshAfterWrite(ctx, uc.Snapshots)
	return nil
}
