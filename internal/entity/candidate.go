package entity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	MinScore = 0
	MaxScore = 100
)

var (
	ErrCandidateNotFound    = errors.New("candidate not found")
	ErrNameRequired         = errors.New("name is required")
	ErrScoreOutOfRange      = errors.New("overall score must be between 0 and 100")
	ErrNegativeExperience   = errors.New("experience must not be negative")
	ErrTransitionNotAllowed = errors.New("stage transition not allowed")
)

// Details is the optional contact and profile block of a candidate.
type Details struct {
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Position   string   `json:"position"`
	Experience int      `json:"experience"`
	Skills     []string `json:"skills"`
}

type Candidate struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	Stage            Stage            `json:"stage"`
	ApplicationDate  time.Time        `json:"applicationDate"`
	OverallScore     int              `json:"overallScore"`
	IsReferral       bool             `json:"isReferral"`
	AssessmentStatus AssessmentStatus `json:"assessmentStatus"`
	Details          *Details         `json:"details,omitempty"`
	CreatedAt        time.Time        `json:"createdAt"`
	UpdatedAt        time.Time        `json:"updatedAt"`
}

type CandidateRepository interface {
	Create(ctx context.Context, c *Candidate) error
	FindByID(ctx context.Context, id string) (*Candidate, error)
	List(ctx context.Context) ([]Candidate, error)
	ListByStage(ctx context.Context, stage Stage) ([]Candidate, error)
	Update(ctx context.Context, c *Candidate) error
	UpdateStage(ctx context.Context, id string, stage Stage, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// NewCandidateParams carries the already-parsed creation fields. Zero values take the defaults.
type NewCandidateParams struct {
	Name             string
	Stage            Stage
	ApplicationDate  time.Time
	OverallScore     int
	IsReferral       bool
	AssessmentStatus AssessmentStatus
	Details          *Details
}

// Factory
func NewCandidate(p NewCandidateParams, now time.Time) (*Candidate, error) {
	c := &Candidate{
		ID:               uuid.New().String(),
		Name:             strings.TrimSpace(p.Name),
		Stage:            p.Stage,
		ApplicationDate:  p.ApplicationDate,
		OverallScore:     p.OverallScore,
		IsReferral:       p.IsReferral,
		AssessmentStatus: p.AssessmentStatus,
		Details:          p.Details,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if c.Stage == "" {
		c.Stage = StageApplyingPeriod
	}
	if c.AssessmentStatus == "" {
		c.AssessmentStatus = StatusPending
	}
	if c.ApplicationDate.IsZero() {
		c.ApplicationDate = now
	}
	if c.Details != nil && c.Details.Skills == nil {
		c.Details.Skills = []string{}
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Candidate) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrNameRequired
	}
	if !c.Stage.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidStage, c.Stage)
	}
	if !c.AssessmentStatus.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAssessmentStatus, c.AssessmentStatus)
	}
	if c.OverallScore < MinScore || c.OverallScore > MaxScore {
		return fmt.Errorf("%w: got %d", ErrScoreOutOfRange, c.OverallScore)
	}
	if c.Details != nil && c.Details.Experience < 0 {
		return ErrNegativeExperience
	}
	return nil
}

// MoveToStage returns a copy of c placed in target. Every valid stage is reachable
// from every other one; transitionAllowed is where a transition graph would go.
func (c Candidate) MoveToStage(target Stage, now time.Time) (Candidate, error) {
	if !target.Valid() {
		return c, fmt.Errorf("%w: %q", ErrInvalidStage, target)
	}
	if !transitionAllowed(c.Stage, target) {
		return c, fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, c.Stage, target)
	}
	moved := c
	moved.Stage = target
	moved.UpdatedAt = now
	return moved, nil
}

func transitionAllowed(from, to Stage) bool {
	return true
}
