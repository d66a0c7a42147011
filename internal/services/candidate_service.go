package services

import (
	"context"
	"fmt"

	"github.com/crisp-hire/interview-service/internal/models"
	"github.com/crisp-hire/interview-service/internal/repositories"
	"github.com/crisp-hire/interview-service/internal/utils"
)

// CandidateDetail is the interviewer's drill-down view: the candidate record
// plus the decoded per-question results.
type CandidateDetail struct {
	Candidate *models.Candidate `json:"candidate"`
	Questions []models.Question `json:"questions,omitempty"`
	Answers   []models.Answer   `json:"answers,omitempty"`
}

// CandidateService serves the interviewer dashboard: listing, searching and
// inspecting stored candidate results. It never mutates records; all writes
// go through the session state machine.
type CandidateService interface {
	List(ctx context.Context, filters repositories.CandidateFilters) ([]*models.Candidate, int64, error)
	GetByID(ctx context.Context, id string) (*CandidateDetail, error)
}

type candidateService struct {
	repo   repositories.Repository
	logger utils.Logger
}

func NewCandidateService(repo repositories.Repository, logger utils.Logger) CandidateService {
	return &candidateService{
		repo:   repo,
		logger: logger,
	}
}

func (s *candidateService) List(ctx context.Context, filters repositories.CandidateFilters) ([]*models.Candidate, int64, error) {
	candidates, total, err := s.repo.Candidate().List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list candidates: %w", err)
	}
	return candidates, total, nil
}

func (s *candidateService) GetByID(ctx context.Context, id string) (*CandidateDetail, error) {
	candidate, err := s.repo.Candidate().GetByIDWithInterview(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrCandidateNotFound
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	detail := &CandidateDetail{Candidate: candidate}
	if candidate.Interview != nil {
		questions, err := candidate.Interview.Questions()
		if err != nil {
			return nil, fmt.Errorf("corrupt question snapshot: %w", err)
		}
		answers, err := candidate.Interview.Answers()
		if err != nil {
			return nil, fmt.Errorf("corrupt answer snapshot: %w", err)
		}
		detail.Questions = questions
		detail.Answers = answers
	}

	return detail, nil
}
