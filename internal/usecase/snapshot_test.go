package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/recruit-pipeline/internal/entity"
)

func TestSnapshotStore_CurrentTakesFirstSnapshotLazily(t *testing.T) {
	repo := new(MockCandidateRepository)
	repo.On("List", mock.Anything).Return(nil, nil).Once()
	store := NewSnapshotStore(repo)
	store.Now = clock

	snap, err := store.Current(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, snap.Candidates)
	assert.Empty(t, snap.Candidates)
	assert.Equal(t, fixedNow, snap.TakenAt)

	again, err := store.Current(context.Background())
	require.NoError(t, err)
	assert.Same(t, snap, again)
	repo.AssertNumberOfCalls(t, "List", 1)
}

func TestSnapshotStore_RefreshSwapsWithoutTouchingOldSnapshot(t *testing.T) {
	repo := new(MockCandidateRepository)
	ana := *storedCandidate(idAna, "Ana", entity.StageScreening)
	ben := *storedCandidate(idBen, "Ben", entity.StageTest)
	repo.On("List", mock.Anything).Return([]entity.Candidate{ana}, nil).Once()
	repo.On("List", mock.Anything).Return([]entity.Candidate{ana, ben}, nil).Once()
	store := NewSnapshotStore(repo)

	first, err := store.Current(context.Background())
	require.NoError(t, err)
	require.NoError(t, store.Refresh(context.Background()))
	second, err := store.Current(context.Background())
	require.NoError(t, err)

	assert.Len(t, first.Candidates, 1)
	assert.Len(t, second.Candidates, 2)
}

func TestSnapshotStore_RefreshErrorKeepsPrevious(t *testing.T) {
	repo := new(MockCandidateRepository)
	ana := *storedCandidate(idAna, "Ana", entity.StageScreening)
	repo.On("List", mock.Anything).Return([]entity.Candidate{ana}, nil).Once()
	repo.On("List", mock.Anything).Return(nil, errors.New("db gone")).Once()
	store := NewSnapshotStore(repo)

	require.NoError(t, store.Refresh(context.Background()))
	err := store.Refresh(context.Background())
	assert.True(t, IsTechnicalError(err))

	snap, err := store.Current(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Candidates, 1)
}

func TestSnapshotStore_CurrentFailsWithoutSnapshot(t *testing.T) {
	repo := new(MockCandidateRepository)
	repo.On("List", mock.Anything).Return(nil, errors.New("db gone"))
	store := NewSnapshotStore(repo)

	_, err := store.Current(context.Background())
	assert.Error(t, err)
}

func TestDashboard_MetricsAndScorecard(t *testing.T) {
	repo := new(MockCandidateRepository)
	ana := *storedCandidate(idAna, "Ana", entity.StageScreening)
	ben := *storedCandidate(idBen, "Ben", entity.StageInterview)
	ben.OverallScore = 60
	repo.On("List", mock.Anything).Return([]entity.Candidate{ana, ben}, nil)

	uc := NewDashboardUseCase(NewSnapshotStore(repo))
	uc.Now = clock

	m, err := uc.Metrics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, m.TotalCandidates)
	assert.Equal(t, 70.0, m.AverageScore)
	assert.Equal(t, 50, m.ScreeningAccuracy)
	assert.Equal(t, fixedNow, m.GeneratedAt)

	card, err := uc.Scorecard(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, card.TopPerformers, 1)
	assert.Equal(t, "Ana", card.TopPerformers[0].Candidate.Name)
	assert.Len(t, card.Ranked, 2)
}
