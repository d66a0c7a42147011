package services

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/crisp-hire/interview-service/internal/models"
	"github.com/crisp-hire/interview-service/internal/repositories"
	"github.com/crisp-hire/interview-service/internal/utils"
)

func seedCompletedCandidate(t *testing.T, repo *fakeRepository, id, name, email string, score int, grade models.Grade) {
	t.Helper()
	ctx := context.Background()
	completedAt := time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC)

	candidate := &models.Candidate{
		ID:          id,
		Name:        name,
		Email:       email,
		Phone:       "555-123-4567",
		Status:      models.CandidateCompleted,
		CompletedAt: &completedAt,
	}
	require.NoError(t, repo.Candidate().Create(ctx, candidate))

	summary := "Overall Score: deterministic"
	interview := &models.Interview{
		ID:          id + "-interview",
		CandidateID: id,
		Status:      models.InterviewCompleted,
		FinalScore:  &score,
		Grade:       &grade,
		Summary:     &summary,
	}
	require.NoError(t, interview.SetQuestions(NewQuestionBankService().Sequence()))
	require.NoError(t, repo.Interview().Create(ctx, interview))
}

func TestExportService_ExportCandidates(t *testing.T) {
	ctx := context.Background()
	repo := newFakeRepository()
	seedCompletedCandidate(t, repo, "c1", "Jane Doe", "jane@example.com", 82, models.GradeB)
	seedCompletedCandidate(t, repo, "c2", "John Smith", "john@example.com", 45, models.GradeF)
	require.NoError(t, repo.Candidate().Create(ctx, &models.Candidate{
		ID:     "c3",
		Name:   "Ada Paused",
		Email:  "ada@example.com",
		Phone:  "555-987-6543",
		Status: models.CandidatePaused,
	}))

	service := NewExportService(repo, utils.NewDevelopmentLogger())
	data, err := service.ExportCandidates(ctx, repositories.CandidateFilters{SortBy: "score", SortOrder: "desc"})
	require.NoError(t, err)
	require.NotEmpty(t, data)

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Candidates")
	require.NoError(t, err)
	require.Len(t, rows, 4) // header + three candidates

	assert.Equal(t, []string{
		"Name", "Email", "Phone", "Status", "Final Score", "Grade", "Created At", "Completed At",
	}, rows[0])

	// Default dashboard ordering: best score first, unscored last.
	assert.Equal(t, "Jane Doe", rows[1][0])
	assert.Equal(t, "82", rows[1][4])
	assert.Equal(t, "B", rows[1][5])

	assert.Equal(t, "John Smith", rows[2][0])
	assert.Equal(t, "45", rows[2][4])
	assert.Equal(t, "F", rows[2][5])

	assert.Equal(t, "Ada Paused", rows[3][0])
	assert.Equal(t, "paused", rows[3][3])
}

func TestExportService_ExportCandidates_Empty(t *testing.T) {
	service := NewExportService(newFakeRepository(), utils.NewDevelopmentLogger())

	data, err := service.ExportCandidates(context.Background(), repositories.CandidateFilters{})
	require.NoError(t, err)

	workbook, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer workbook.Close()

	rows, err := workbook.GetRows("Candidates")
	require.NoError(t, err)
	require.Len(t, rows, 1) // header only
}
