package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/recruit-pipeline/internal/entity"
	"github.com/xavierca1/recruit-pipeline/internal/infra/queue"
)

var fixedNow = time.Date(2025, 5, 20, 12, 0, 0, 0, time.UTC)

func clock() time.Time { return fixedNow }

const (
	idAna = "3f1c2a8e-6f0b-4c47-9a51-2d1b7f0c9e11"
	idBen = "9a7e4b21-0c3d-4e8f-8b6a-5c2d1e0f3a44"
)

// MockCandidateRepository
type MockCandidateRepository struct {
	mock.Mock
}

func (m *MockCandidateRepository) Create(ctx context.Context, c *entity.Candidate) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCandidateRepository) FindByID(ctx context.Context, id string) (*entity.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) List(ctx context.Context) ([]entity.Candidate, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) ListByStage(ctx context.Context, stage entity.Stage) ([]entity.Candidate, error) {
	args := m.Called(ctx, stage)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Candidate), args.Error(1)
}

func (m *MockCandidateRepository) Update(ctx context.Context, c *entity.Candidate) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockCandidateRepository) UpdateStage(ctx context.Context, id string, stage entity.Stage, updatedAt time.Time) error {
	args := m.Called(ctx, id, stage, updatedAt)
	return args.Error(0)
}

func (m *MockCandidateRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishNotification(ctx context.Context, p queue.NotificationPayload) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockRefresher
type MockRefresher struct {
	mock.Mock
}

func (m *MockRefresher) Refresh(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type stageChange struct{ from, to entity.Stage }

type recordedChanges []stageChange

func (r *recordedChanges) StageChanged(from, to entity.Stage) {
	*r = append(*r, stageChange{from, to})
}

type memoryLedger struct {
	events []entity.AutomationEvent
}

func (l *memoryLedger) Record(e entity.AutomationEvent) { l.events = append(l.events, e) }

func (l *memoryLedger) Events(id string) []entity.AutomationEvent {
	var out []entity.AutomationEvent
	for _, e := range l.events {
		if e.CandidateID == id {
			out = append(out, e)
		}
	}
	return out
}

func storedCandidate(id, name string, stage entity.Stage) *entity.Candidate {
	return &entity.Candidate{
		ID:               id,
		Name:             name,
		Stage:            stage,
		ApplicationDate:  fixedNow.AddDate(0, 0, -3),
		OverallScore:     80,
		AssessmentStatus: entity.StatusPending,
		Details:          &entity.Details{Email: "ana@example.com", Position: "Backend Engineer", Skills: []string{}},
		CreatedAt:        fixedNow.AddDate(0, 0, -3),
		UpdatedAt:        fixedNow.AddDate(0, 0, -3),
	}
}

func payloadWith(tt entity.TemplateType) interface{} {
	return mock.MatchedBy(func(p queue.NotificationPayload) bool { return p.Template == tt })
}
