package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/crisp-hire/interview-service/internal/models"
	"github.com/crisp-hire/interview-service/internal/repositories"
)

// Repository is the gorm-backed aggregate of all candidate-store
// repositories.
type Repository struct {
	db         *gorm.DB
	candidates repositories.CandidateRepository
	interviews repositories.InterviewRepository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		db:         db,
		candidates: NewCandidatePostgreSQL(db),
		interviews: NewInterviewPostgreSQL(db),
	}
}

func (r *Repository) Candidate() repositories.CandidateRepository {
	return r.candidates
}

func (r *Repository) Interview() repositories.InterviewRepository {
	return r.interviews
}

// WithTransaction runs fn against a repository bound to one transaction.
func (r *Repository) WithTransaction(ctx context.Context, fn func(repositories.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

func (r *Repository) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *Repository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate creates or updates the candidate-store schema.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.Candidate{}, &models.Interview{})
}
