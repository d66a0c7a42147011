package postgres

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/crisp-hire/interview-service/internal/models"
	"github.com/crisp-hire/interview-service/internal/repositories"
)

type CandidatePostgreSQL struct {
	db *gorm.DB
}

func NewCandidatePostgreSQL(db *gorm.DB) repositories.CandidateRepository {
	return &CandidatePostgreSQL{db: db}
}

func (c CandidatePostgreSQL) Create(ctx context.Context, candidate *models.Candidate) error {
	return c.db.WithContext(ctx).Create(candidate).Error
}

func (c CandidatePostgreSQL) GetByID(ctx context.Context, id string) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := c.db.WithContext(ctx).First(&candidate, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (c CandidatePostgreSQL) GetByIDWithInterview(ctx context.Context, id string) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := c.db.WithContext(ctx).
		Preload("Interview").
		First(&candidate, "id = ?", id).Error; err != nil {
		return nil, err
	}
	fillComputedScore(&candidate)
	return &candidate, nil
}

func (c CandidatePostgreSQL) Update(ctx context.Context, candidate *models.Candidate) error {
	return c.db.WithContext(ctx).Save(candidate).Error
}

func (c CandidatePostgreSQL) List(ctx context.Context, filters repositories.CandidateFilters) ([]*models.Candidate, int64, error) {
	var candidates []*models.Candidate
	var total int64

	// apply filter first
	query := c.db.WithContext(ctx).Model(&models.Candidate{})
	query = c.applyFilters(query, filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// then apply pagination and sorting
	query = c.applyPaginationAndSort(query, filters)

	if err := query.Preload("Interview").Find(&candidates).Error; err != nil {
		return nil, 0, err
	}

	for _, candidate := range candidates {
		fillComputedScore(candidate)
	}

	return candidates, total, nil
}

func (c CandidatePostgreSQL) GetUnfinished(ctx context.Context) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := c.db.WithContext(ctx).
		Where("status IN ?", []models.CandidateStatus{models.CandidateInProgress, models.CandidatePaused}).
		Order("created_at DESC").
		Preload("Interview").
		First(&candidate).Error; err != nil {
		return nil, err
	}
	return &candidate, nil
}

func (c CandidatePostgreSQL) applyFilters(query *gorm.DB, filters repositories.CandidateFilters) *gorm.DB {
	if filters.Status != nil {
		query = query.Where("status = ?", *filters.Status)
	}
	if search := strings.TrimSpace(filters.Search); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern)
	}
	return query
}

func (c CandidatePostgreSQL) applyPaginationAndSort(query *gorm.DB, filters repositories.CandidateFilters) *gorm.DB {
	order := "DESC"
	if strings.EqualFold(filters.SortOrder, "asc") {
		order = "ASC"
	}

	switch filters.SortBy {
	case "name":
		query = query.Order("name " + order)
	case "created_at":
		query = query.Order("created_at " + order)
	case "score", "":
		// Dashboard default: completed interviews ranked by final score.
		query = query.
			Joins("LEFT JOIN interviews ON interviews.candidate_id = candidates.id").
			Order("interviews.final_score " + order + " NULLS LAST")
	default:
		query = query.Order("created_at " + order)
	}

	if filters.Limit > 0 {
		query = query.Limit(filters.Limit)
	}
	if filters.Offset > 0 {
		query = query.Offset(filters.Offset)
	}
	return query
}

// fillComputedScore copies the interview result onto the candidate's
// dashboard fields.
func fillComputedScore(candidate *models.Candidate) {
	if candidate.Interview == nil {
		return
	}
	candidate.FinalScore = candidate.Interview.FinalScore
	candidate.Grade = candidate.Interview.Grade
}
