package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/xavierca1/recruit-pipeline/internal/entity"
	"github.com/xavierca1/recruit-pipeline/internal/infra/queue"
)

const originPipeline = "pipeline"

type CreateCandidateUseCase struct {
	Repo      entity.CandidateRepository
	Queue     NotificationPublisher
	Settings  SettingsProvider
	Snapshots SnapshotRefresher
	Now       func() time.Time
}

func NewCreateCandidateUseCase(
	repo entity.CandidateRepository,
	queue NotificationPublisher,
	settings SettingsProvider,
	snapshots SnapshotRefresher,
) *CreateCandidateUseCase {
	return &CreateCandidateUseCase{
		Repo:      repo,
		Queue:     queue,
		Settings:  settings,
		Snapshots: snapshots,
		Now:       time.Now,
	}
}

func (uc *CreateCandidateUseCase) Execute(ctx context.Context, input CreateCandidateInput) (*entity.Candidate, error) {
	if errs := ValidateCreateCandidateInput(input); len(errs) > 0 {
		return nil, invalid(errs)
	}

	stage, status := entity.StageApplyingPeriod, entity.StatusPending
	if input.Stage != "" {
		stage, _ = entity.ParseStage(input.Stage)
	}
	if input.AssessmentStatus != "" {
		status, _ = entity.ParseAssessmentStatus(input.AssessmentStatus)
	}

	now := uc.Now()
	params := entity.NewCandidateParams{
		Name:             input.Name,
		Stage:            stage,
		OverallScore:     input.OverallScore,
		IsReferral:       input.IsReferral,
		AssessmentStatus: status,
		Details:          input.Details.toEntity(),
	}
	if input.ApplicationDate != nil {
		params.ApplicationDate = *input.ApplicationDate
	}

	candidate, err := entity.NewCandidate(params, now)
	if err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	tx := NewTransaction()
	tx.AddStep("persist_candidate",
		func(ctx context.Context) error {
			return uc.Repo.Create(ctx, candidate)
		},
		func(ctx context.Context) error {
			return uc.Repo.Delete(ctx, candidate.ID)
		},
	)
	if uc.Settings.Current().EmailAllowed(entity.TemplateApplicationReceived) {
		tx.AddStep("enqueue_notification",
			func(ctx context.Context) error {
				return publish(ctx, uc.Queue, notificationFor(candidate, entity.TemplateApplicationReceived, now))
			},
			nil,
		)
	}

	if err := tx.Execute(ctx); err != nil {
		var te *TechnicalError
		if errors.As(err, &te) {
			return nil, te
		}
		return nil, dbError("failed to create candidate", err)
	}

	refreshAfterWrite(ctx, uc.Snapshots)
	return candidate, nil
}

func notificationFor(c *entity.Candidate, tt entity.TemplateType, now time.Time) queue.NotificationPayload {
	p := queue.NotificationPayload{
		ID:            uuid.New().String(),
		CandidateID:   c.ID,
		CandidateName: c.Name,
		Template:      tt,
		Stage:         c.Stage,
		Origin:        originPipeline,
		QueuedAt:      now,
	}
	if c.Details != nil {
		p.Email = c.Details.Email
		p.Position = c.Details.Position
	}
	return p
}

func publish(ctx context.Context, q NotificationPublisher, p queue.NotificationPayload) error {
	if err := q.PublishNotification(ctx, p); err != nil {
		return &TechnicalError{Code: CodeQueue, Message: "failed to enqueue notification", Cause: err}
	}
	return nil
}

// refreshAfterWrite keeps reads consistent with the write just made. A failed
// refresh is logged only: the write itself succeeded and the ticker retries.
func refreshAfterWrite(ctx context.Context, s SnapshotRefresher) {
	if s == nil {
		return
	}
	if err := s.Refresh(ctx); err != nil {
		log.Printf("[SNAPSHOT] refresh after write failed: %v", err)
	}
}

func wrapRepoError(op, id string, err error) error {
	if errors.Is(err, entity.ErrCandidateNotFound) {
		return notFound(id)
	}
	return dbError(fmt.Sprintf("failed to %s candidate", op), err)
}
