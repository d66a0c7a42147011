package repositories

import (
	"context"

	"github.com/crisp-hire/interview-service/internal/models"
)

// ===== SHARED FILTER STRUCTS =====

// CandidateFilters narrow and order dashboard listings.
type CandidateFilters struct {
	Status    *models.CandidateStatus `json:"status"`
	Search    string                  `json:"search"` // matches name or email, case-insensitive
	Limit     int                     `json:"limit"`
	Offset    int                     `json:"offset"`
	SortBy    string                  `json:"sort_by"`    // "score", "name", "created_at"
	SortOrder string                  `json:"sort_order"` // "asc", "desc"
}

// CandidateRepository persists candidate records and their attached interview.
type CandidateRepository interface {
	Create(ctx context.Context, candidate *models.Candidate) error
	GetByID(ctx context.Context, id string) (*models.Candidate, error)
	GetByIDWithInterview(ctx context.Context, id string) (*models.Candidate, error)
	Update(ctx context.Context, candidate *models.Candidate) error
	List(ctx context.Context, filters CandidateFilters) ([]*models.Candidate, int64, error)

	// GetUnfinished returns the most recent candidate whose interview can be
	// resumed (status in_progress or paused), or a not-found error.
	GetUnfinished(ctx context.Context) (*models.Candidate, error)
}

// InterviewRepository persists interview records. An interview row is always
// owned by exactly one candidate.
type InterviewRepository interface {
	Create(ctx context.Context, interview *models.Interview) error
	GetByID(ctx context.Context, id string) (*models.Interview, error)
	GetByCandidate(ctx context.Context, candidateID string) (*models.Interview, error)
	Update(ctx context.Context, interview *models.Interview) error
}

// Repository aggregates all repositories behind one handle so services can
// run multi-record updates inside a single transaction.
type Repository interface {
	Candidate() CandidateRepository
	Interview() InterviewRepository

	// WithTransaction runs fn against a transactional Repository; rollback on
	// error, commit otherwise. Submitting an answer updates the interview and
	// candidate rows together, which must appear atomic.
	WithTransaction(ctx context.Context, fn func(Repository) error) error

	Ping(ctx context.Context) error
	Close() error
}

// AnyUnfinished reports whether a resumable candidate exists.
func AnyUnfinished(ctx context.Context, repo Repository) (bool, error) {
	_, err := repo.Candidate().GetUnfinished(ctx)
	if err != nil {
		if IsNotFoundError(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
