package usecase

import (
	"context"
	"log"
	"time"

	"github.com/xavierca1/recruit-pipeline/internal/entity"
)

// ChangeStageUseCase moves a candidate to another stage. Stage changes made
// through a candidate update are announced through it as well.
type ChangeStageUseCase struct {
	Repo      entity.CandidateRepository
	Queue     NotificationPublisher
	Settings  SettingsProvider
	Snapshots SnapshotRefresher
	Changes   StageChangeRecorder
	Now       func() time.Time
}

func NewChangeStageUseCase(
	repo entity.CandidateRepository,
	queue NotificationPublisher,
	settings SettingsProvider,
	snapshots SnapshotRefresher,
	changes StageChangeRecorder,
) *ChangeStageUseCase {
	return &ChangeStageUseCase{
		Repo:      repo,
		Queue:     queue,
		Settings:  settings,
		Snapshots: snapshots,
		Changes:   changes,
		Now:       time.Now,
	}
}

func (uc *ChangeStageUseCase) Execute(ctx context.Context, input ChangeStageInput) (*entity.Candidate, error) {
	target, err := entity.ParseStage(input.Stage)
	if err != nil {
		return nil, &DomainError{
			Code:    CodeInvalidStage,
			Message: err.Error(),
			Details: []ValidationError{{"stage", "must be one of Applying Period, Screening, Interview, Test, Hired"}},
		}
	}
	if !validID(input.ID) {
		return nil, notFound(input.ID)
	}

	current, err := uc.Repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, wrapRepoError("load", input.ID, err)
	}

	now := uc.Now()
	moved, err := current.MoveToStage(target, now)
	if err != nil {
		return nil, &DomainError{Code: CodeInvalidStage, Message: err.Error()}
	}
	if moved.Stage == current.Stage {
		return current, nil
	}

	if err := uc.Repo.UpdateStage(ctx, moved.ID, moved.Stage, moved.UpdatedAt); err != nil {
		return nil, wrapRepoError("update stage of", input.ID, err)
	}
	uc.announce(ctx, current.Stage, &moved, now)

	refreshAfterWrite(ctx, uc.Snapshots)
	return &moved, nil
}

// announce runs the side effects of a committed stage change. A queue failure
// is logged and never undoes the change.
func (uc *ChangeStageUseCase) announce(ctx context.Context, from entity.Stage, moved *entity.Candidate, now time.Time) {
	if uc.Changes != nil {
		uc.Changes.StageChanged(from, moved.Stage)
	}
	if uc.Settings.Current().EmailAllowed(entity.TemplateStatusUpdate) {
		if err := publish(ctx, uc.Queue, notificationFor(moved, entity.TemplateStatusUpdate, now)); err != nil {
			log.Printf("[STAGE] candidate %s moved to %s but notification failed: %v", moved.ID, moved.Stage, err)
		}
	}
}
