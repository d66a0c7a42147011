package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crisp-hire/interview-service/internal/models"
	"github.com/crisp-hire/interview-service/internal/repositories"
	"github.com/crisp-hire/interview-service/internal/utils"
)

func TestCandidateService_List(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	seedCompletedCandidate(t, repo, "c1", "Jane Doe", "jane@example.com", 82, models.GradeB)
	seedCompletedCandidate(t, repo, "c2", "John Smith", "john@example.com", 45, models.GradeF)

	service := NewCandidateService(repo, utils.NewDevelopmentLogger())

	t.Run("all candidates with computed scores", func(t *testing.T) {
		candidates, total, err := service.List(ctx, repositories.CandidateFilters{SortBy: "score"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
		require.Len(t, candidates, 2)

		require.NotNil(t, candidates[0].FinalScore)
		assert.Equal(t, 82, *candidates[0].FinalScore)
		require.NotNil(t, candidates[0].Grade)
		assert.Equal(t, models.GradeB, *candidates[0].Grade)
	})

	t.Run("search matches name or email", func(t *testing.T) {
		candidates, total, err := service.List(ctx, repositories.CandidateFilters{Search: "jane"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, candidates, 1)
		assert.Equal(t, "Jane Doe", candidates[0].Name)

		candidates, _, err = service.List(ctx, repositories.CandidateFilters{Search: "john@example"})
		require.NoError(t, err)
		require.Len(t, candidates, 1)
		assert.Equal(t, "John Smith", candidates[0].Name)
	})

	t.Run("status filter", func(t *testing.T) {
		status := models.CandidateCompleted
		_, total, err := service.List(ctx, repositories.CandidateFilters{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)

		paused := models.CandidatePaused
		_, total, err = service.List(ctx, repositories.CandidateFilters{Status: &paused})
		require.NoError(t, err)
		assert.Equal(t, int64(0), total)
	})
}

func TestCandidateService_GetByID(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	seedCompletedCandidate(t, repo, "c1", "Jane Doe", "jane@example.com", 82, models.GradeB)

	service := NewCandidateService(repo, utils.NewDevelopmentLogger())

	detail, err := service.GetByID(ctx, "c1")
	require.NoError(t, err)

	require.NotNil(t, detail.Candidate)
	assert.Equal(t, "Jane Doe", detail.Candidate.Name)
	require.NotNil(t, detail.Candidate.Interview)
	assert.Len(t, detail.Questions, 6)
}

func TestCandidateService_GetByID_NotFound(t *testing.T) {
	service := NewCandidateService(newFakeRepository(), utils.NewDevelopmentLogger())

	_, err := service.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrCandidateNotFound)
	assert.True(t, IsNotFound(err))
}
