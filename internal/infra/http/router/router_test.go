package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/recruit-pipeline/internal/engine"
	"github.com/xavierca1/recruit-pipeline/internal/entity"
	"github.com/xavierca1/recruit-pipeline/internal/infra/http/handlers"
	metrics "github.com/xavierca1/recruit-pipeline/internal/infra/http/middleware"
	"github.com/xavierca1/recruit-pipeline/internal/infra/mail"
	"github.com/xavierca1/recruit-pipeline/internal/infra/queue"
	"github.com/xavierca1/recruit-pipeline/internal/usecase"
)

// memoryRepo is an in-process CandidateRepository for routing tests.
type memoryRepo struct {
	mu   sync.Mutex
	rows map[string]entity.Candidate
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[string]entity.Candidate)}
}

func (m *memoryRepo) Create(_ context.Context, c *entity.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows[c.ID] = *c
	return nil
}

func (m *memoryRepo) FindByID(_ context.Context, id string) (*entity.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, entity.ErrCandidateNotFound
	}
	return &c, nil
}

func (m *memoryRepo) List(_ context.Context) ([]entity.Candidate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]entity.Candidate, 0, len(m.rows))
	for _, c := range m.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryRepo) ListByStage(ctx context.Context, stage entity.Stage) ([]entity.Candidate, error) {
	all, _ := m.List(ctx)
	out := []entity.Candidate{}
	for _, c := range all {
		if c.Stage == stage {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memoryRepo) Update(_ context.Context, c *entity.Candidate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[c.ID]; !ok {
		return entity.ErrCandidateNotFound
	}
	m.rows[c.ID] = *c
	return nil
}

func (m *memoryRepo) UpdateStage(_ context.Context, id string, stage entity.Stage, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return entity.ErrCandidateNotFound
	}
	c.Stage, c.UpdatedAt = stage, at
	m.rows[id] = c
	return nil
}

func (m *memoryRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return entity.ErrCandidateNotFound
	}
	delete(m.rows, id)
	return nil
}

type capturePublisher struct {
	mu   sync.Mutex
	sent []queue.NotificationPayload
}

func (p *capturePublisher) PublishNotification(_ context.Context, n queue.NotificationPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, n)
	return nil
}

func (p *capturePublisher) templates() []entity.TemplateType {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []entity.TemplateType
	for _, n := range p.sent {
		out = append(out, n.Template)
	}
	return out
}

type testServer struct {
	handler http.Handler
	repo    *memoryRepo
	pub     *capturePublisher
	ledger  *mail.Ledger
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	repo := newMemoryRepo()
	pub := &capturePublisher{}
	ledger := mail.NewLedger()
	settings := usecase.NewSettingsStore(entity.DefaultAutomationSettings())
	snapshots := usecase.NewSnapshotStore(repo)

	stages := usecase.NewChangeStageUseCase(repo, pub, settings, snapshots, metrics.StageTransitions{})
	candidates := handlers.NewCandidateHandler(
		usecase.NewCreateCandidateUseCase(repo, pub, settings, snapshots),
		usecase.NewUpdateCandidateUseCase(repo, snapshots, stages),
		stages,
		usecase.NewDeleteCandidateUseCase(repo, snapshots),
		usecase.NewGetCandidateUseCase(repo),
		usecase.NewListCandidatesUseCase(snapshots),
		usecase.NewListByStageUseCase(repo),
	)

	h := New(Handlers{
		Health:     handlers.NewHealthHandler(nil, nil),
		Candidates: candidates,
		Dashboard:  handlers.NewDashboardHandler(usecase.NewDashboardUseCase(snapshots)),
		Automation: handlers.NewAutomationHandler(usecase.NewAutomationUseCase(repo, pub, settings, ledger)),
	}, Options{Limiter: metrics.NewWriteLimiter(1000)})

	return &testServer{handler: h, repo: repo, pub: pub, ledger: ledger}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) create(t *testing.T, body map[string]any) entity.Candidate {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/candidates", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c entity.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &c))
	return c
}

func TestCandidateLifecycle(t *testing.T) {
	s := newTestServer(t)

	ana := s.create(t, map[string]any{
		"name":         "Ana Souza",
		"overallScore": 92,
		"details":      map[string]any{"email": "ana@example.com", "position": "Backend Engineer"},
	})
	assert.Equal(t, entity.StageApplyingPeriod, ana.Stage)
	assert.Equal(t, entity.StatusPending, ana.AssessmentStatus)

	rec := s.do(t, http.MethodGet, "/api/candidates/"+ana.ID, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPatch, "/api/candidates/"+ana.ID+"/stage", map[string]string{"stage": "Interview"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var moved entity.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &moved))
	assert.Equal(t, entity.StageInterview, moved.Stage)

	rec = s.do(t, http.MethodPut, "/api/candidates/"+ana.ID, map[string]any{"assessmentStatus": "Completed"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/candidates/stage/Interview", nil)
	var inInterview []entity.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &inInterview))
	require.Len(t, inInterview, 1)
	assert.Equal(t, entity.StatusCompleted, inInterview[0].AssessmentStatus)

	assert.Equal(t, []entity.TemplateType{entity.TemplateApplicationReceived, entity.TemplateStatusUpdate}, s.pub.templates())

	rec = s.do(t, http.MethodDelete, "/api/candidates/"+ana.ID, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = s.do(t, http.MethodGet, "/api/candidates/"+ana.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateCandidate_StageGoesThroughTransition(t *testing.T) {
	s := newTestServer(t)
	ana := s.create(t, map[string]any{
		"name":    "Ana Souza",
		"details": map[string]any{"email": "ana@example.com"},
	})

	rec := s.do(t, http.MethodPut, "/api/candidates/"+ana.ID, map[string]any{"stage": "Test"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated entity.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, entity.StageTest, updated.Stage)

	assert.Equal(t, []entity.TemplateType{entity.TemplateApplicationReceived, entity.TemplateStatusUpdate}, s.pub.templates())
}

func TestListCandidates_AppliesFilters(t *testing.T) {
	s := newTestServer(t)
	s.create(t, map[string]any{"name": "Ana", "overallScore": 95, "stage": "Screening"})
	s.create(t, map[string]any{"name": "Ben", "overallScore": 72, "stage": "Test", "assessmentStatus": "Completed"})
	s.create(t, map[string]any{"name": "Caio", "overallScore": 40, "stage": "Hired"})

	names := func(path string) []string {
		rec := s.do(t, http.MethodGet, path, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		var list []entity.Candidate
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		out := []string{}
		for _, c := range list {
			out = append(out, c.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Ana", "Ben"}, names("/api/candidates"))
	assert.Equal(t, []string{"Ana"}, names("/api/candidates?score=90-100"))
	assert.Equal(t, []string{"Ben"}, names("/api/candidates?status=Completed"))
	assert.Equal(t, []string{"Ben"}, names("/api/candidates?search=BE"))
	assert.Equal(t, []string{"Ana", "Ben"}, names("/api/candidates?score=bogus&date=whenever"))
	assert.Equal(t, []string{}, names("/api/candidates?search=zzz"))
}

func TestListByStage_EscapedAndUnknown(t *testing.T) {
	s := newTestServer(t)
	s.create(t, map[string]any{"name": "Ana"})

	rec := s.do(t, http.MethodGet, "/api/candidates/stage/Applying%20Period", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list []entity.Candidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 1)

	rec = s.do(t, http.MethodGet, "/api/candidates/stage/Offer", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCandidate_BadRequests(t *testing.T) {
	s := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/candidates", bytes.NewBufferString("{"))
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/candidates", map[string]any{"name": "", "overallScore": 150})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body handlers.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, usecase.CodeValidation, body.Error)
	assert.Len(t, body.Details, 2)
}

func TestDashboardRoutes(t *testing.T) {
	s := newTestServer(t)
	s.create(t, map[string]any{"name": "Ana", "overallScore": 85, "stage": "Interview", "isReferral": true})
	s.create(t, map[string]any{"name": "Ben", "overallScore": 56, "stage": "Interview", "assessmentStatus": "Completed"})

	rec := s.do(t, http.MethodGet, "/api/dashboard/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var m engine.Metrics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	assert.Equal(t, 2, m.TotalCandidates)
	assert.Equal(t, 2, m.StageDistribution[entity.StageInterview])
	assert.Equal(t, 0, m.StageDistribution[entity.StageScreening])
	assert.Equal(t, 1, m.Referrals)
	assert.Equal(t, "70.5", m.AverageScoreDisplay)

	rec = s.do(t, http.MethodGet, "/api/dashboard/scorecard?limit=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var card engine.Scorecard
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &card))
	require.Len(t, card.TopPerformers, 1)
	assert.Equal(t, "Ana", card.TopPerformers[0].Candidate.Name)
}

func TestAutomationRoutes(t *testing.T) {
	s := newTestServer(t)
	ana := s.create(t, map[string]any{"name": "Ana", "stage": "Interview", "details": map[string]any{"email": "ana@example.com"}})

	rec := s.do(t, http.MethodGet, "/api/automation/settings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var settings entity.AutomationSettings
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &settings))
	assert.Equal(t, entity.DefaultAutomationSettings(), settings)

	rec = s.do(t, http.MethodPut, "/api/automation/settings", map[string]any{"feature": "notifications", "settings": map[string]any{"enabled": true}})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPut, "/api/automation/settings", map[string]any{"feature": "emails"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/automation/email", map[string]any{"candidateId": ana.ID, "templateType": "assessmentReminder"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/automation/email", map[string]any{"candidateId": ana.ID, "templateType": "farewell"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	when := time.Now().Add(72 * time.Hour).UTC().Truncate(time.Second)
	rec = s.do(t, http.MethodPost, "/api/automation/schedule", map[string]any{"candidateId": ana.ID, "interviewDate": when, "interviewType": "Technical"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	s.ledger.Record(entity.AutomationEvent{CandidateID: ana.ID, Template: entity.TemplateApplicationReceived, At: time.Now()})

	rec = s.do(t, http.MethodGet, "/api/automation/status/"+ana.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var status usecase.AutomationStatusOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, ana.ID, status.CandidateID)
	assert.Equal(t, []entity.TemplateType{entity.TemplateApplicationReceived}, status.AutomationStatus.EmailsSent)
	require.Len(t, status.AutomationStatus.UpcomingInterviews, 1)
	assert.True(t, when.Equal(status.AutomationStatus.UpcomingInterviews[0].Date))
	assert.Contains(t, status.AutomationStatus.PendingActions, usecase.ActionSendAssessment)

	rec = s.do(t, http.MethodGet, "/api/automation/status/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHealthAndMetricsEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}
