package usecase

import (
	"context"
	"time"

	"github.com/xavierca1/recruit-pipeline/internal/entity"
)

// UpdateCandidateUseCase applies a partial update. A stage present in the input
// goes through MoveToStage and is announced by Stages once persisted.
type UpdateCandidateUseCase struct {
	Repo      entity.CandidateRepository
	Snapshots SnapshotRefresher
	Stages    *ChangeStageUseCase
	Now       func() time.Time
}

func NewUpdateCandidateUseCase(repo entity.CandidateRepository, snapshots SnapshotRefresher, stages *ChangeStageUseCase) *UpdateCandidateUseCase {
	return &UpdateCandidateUseCase{Repo: repo, Snapshots: snapshots, Stages: stages, Now: time.Now}
}

func (uc *UpdateCandidateUseCase) Execute(ctx context.Context, input UpdateCandidateInput) (*entity.Candidate, error) {
	if !validID(input.ID) {
		return nil, notFound(input.ID)
	}
	if errs := ValidateUpdateCandidateInput(input); len(errs) > 0 {
		return nil, invalid(errs)
	}

	candidate, err := uc.Repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, wrapRepoError("load", input.ID, err)
	}

	now := uc.Now()
	from := candidate.Stage
	applyUpdate(candidate, input)
	if input.Stage != nil {
		target, _ := entity.ParseStage(*input.Stage)
		moved, err := candidate.MoveToStage(target, now)
		if err != nil {
			return nil, &DomainError{Code: CodeInvalidStage, Message: err.Error()}
		}
		*candidate = moved
	}
	candidate.UpdatedAt = now
	if err := candidate.Validate(); err != nil {
		return nil, &DomainError{Code: CodeValidation, Message: err.Error()}
	}

	if err := uc.Repo.Update(ctx, candidate); err != nil {
		return nil, wrapRepoError("update", input.ID, err)
	}
	if candidate.Stage != from && uc.Stages != nil {
		uc.Stages.announce(ctx, from, candidate, now)
	}

	refreshAfterWrite(ctx, uc.Snapshots)
	return candidate, nil
}

// applyUpdate copies the non-nil fields of input onto c, except the stage.
// Enums were validated already.
func applyUpdate(c *entity.Candidate, input UpdateCandidateInput) {
	if input.Name != nil {
		c.Name = trimmed(*input.Name)
	}
	if input.ApplicationDate != nil {
		c.ApplicationDate = *input.ApplicationDate
	}
	if input.OverallScore != nil {
		c.OverallScore = *input.OverallScore
	}
	if input.IsReferral != nil {
		c.IsReferral = *input.IsReferral
	}
	if input.AssessmentStatus != nil {
		c.AssessmentStatus, _ = entity.ParseAssessmentStatus(*input.AssessmentStatus)
	}
	if input.Details != nil {
		c.Details = input.Details.toEntity()
	}
}
