package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/crisp-hire/interview-service/internal/models"
	"github.com/crisp-hire/interview-service/internal/repositories"
)

type InterviewPostgreSQL struct {
	db *gorm.DB
}

func NewInterviewPostgreSQL(db *gorm.DB) repositories.InterviewRepository {
	return &InterviewPostgreSQL{db: db}
}

func (i InterviewPostgreSQL) Create(ctx context.Context, interview *models.Interview) error {
	return i.db.WithContext(ctx).Create(interview).Error
}

func (i InterviewPostgreSQL) GetByID(ctx context.Context, id string) (*models.Interview, error) {
	var interview models.Interview
	if err := i.db.WithContext(ctx).First(&interview, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &interview, nil
}

func (i InterviewPostgreSQL) GetByCandidate(ctx context.Context, candidateID string) (*models.Interview, error) {
	var interview models.Interview
	if err := i.db.WithContext(ctx).First(&interview, "candidate_id = ?", candidateID).Error; err != nil {
		return nil, err
	}
	return &interview, nil
}

func (i InterviewPostgreSQL) Update(ctx context.Context, interview *models.Interview) error {
	return i.db.WithContext(ctx).Save(interview).Error
}
