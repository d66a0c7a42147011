package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/crisp-hire/interview-service/internal/models"
	"github.com/crisp-hire/interview-service/internal/repositories"
	"github.com/crisp-hire/interview-service/internal/utils"
)

// ExportService renders stored candidate results as spreadsheet files for
// the interviewer dashboard.
type ExportService interface {
	ExportCandidates(ctx context.Context, filters repositories.CandidateFilters) ([]byte, error)
}

type exportService struct {
	repo   repositories.Repository
	logger utils.Logger
}

func NewExportService(repo repositories.Repository, logger utils.Logger) ExportService {
	return &exportService{
		repo:   repo,
		logger: logger,
	}
}

// ExportCandidates writes one row per candidate to an XLSX workbook.
func (s *exportService) ExportCandidates(ctx context.Context, filters repositories.CandidateFilters) ([]byte, error) {
	candidates, _, err := s.repo.Candidate().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates for export: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheetName := "Candidates"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	headers := []string{
		"Name", "Email", "Phone", "Status", "Final Score", "Grade", "Created At", "Completed At",
	}
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
	}

	for row, candidate := range candidates {
		values := []interface{}{
			candidate.Name,
			candidate.Email,
			candidate.Phone,
			string(candidate.Status),
			scoreCell(candidate),
			gradeCell(candidate),
			candidate.CreatedAt.Format(time.RFC3339),
			completedCell(candidate),
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info("Exported candidate results", "count", len(candidates))
	return buf.Bytes(), nil
}

func scoreCell(candidate *models.Candidate) interface{} {
	if candidate.FinalScore == nil {
		return ""
	}
	return *candidate.FinalScore
}

func gradeCell(candidate *models.Candidate) string {
	if candidate.Grade == nil {
		return ""
	}
	return string(*candidate.Grade)
}

func completedCell(candidate *models.Candidate) string {
	if candidate.CompletedAt == nil {
		return ""
	}
	return candidate.CompletedAt.Format(time.RFC3339)
}
