package services

import (
	"errors"

	apperrors "github.com/crisp-hire/interview-service/internal/errors"
)

// ===== COMMON SERVICE ERRORS =====

var (
	// Generic errors
	ErrNotFound         = errors.New("resource not found")
	ErrValidationFailed = errors.New("validation failed")
	ErrInternalError    = errors.New("internal server error")

	// Resume extraction errors
	ErrUnsupportedFormat = errors.New("unsupported file type: please upload a PDF or DOCX file")
	ErrResumeParseFailed = errors.New("resume parsing failed")

	// Candidate specific errors
	ErrCandidateNotFound   = errors.New("candidate not found")
	ErrCandidateIncomplete = errors.New("name, email and phone are all required")

	// Session / interview specific errors
	ErrInterviewNotFound       = errors.New("interview not found")
	ErrNoActiveSession         = errors.New("no active interview session")
	ErrSessionWrongPhase       = errors.New("action not allowed in current session phase")
	ErrInterviewNotActive      = errors.New("interview is not in progress")
	ErrInterviewAlreadyStarted = errors.New("interview already started")
	ErrAnswerAlreadySubmitted  = errors.New("answer for this question already submitted")
	ErrNothingToResume         = errors.New("no unfinished interview to resume")

	// Scoring errors
	ErrNoAnswersToScore = errors.New("cannot compute final score with no answers")
)

// Use shared validation errors from errors package
type ValidationError = apperrors.ValidationError
type ValidationErrors = apperrors.ValidationErrors

// NewValidationError creates a new validation error using the shared type
func NewValidationError(field, message string, value interface{}) *ValidationError {
	return apperrors.NewValidationError(field, message, value)
}

// IsNotFound checks if error represents a "not found" condition
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrCandidateNotFound) ||
		errors.Is(err, ErrInterviewNotFound) ||
		errors.Is(err, ErrNoActiveSession) ||
		errors.Is(err, ErrNothingToResume)
}

// IsValidation checks if error represents a validation failure
func IsValidation(err error) bool {
	if errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrUnsupportedFormat) ||
		errors.Is(err, ErrCandidateIncomplete) {
		return true
	}
	var ve apperrors.ValidationErrors
	return errors.As(err, &ve)
}

// IsConflict checks if error represents a state conflict: the action is
// valid in some phase, just not the current one.
func IsConflict(err error) bool {
	return errors.Is(err, ErrSessionWrongPhase) ||
		errors.Is(err, ErrInterviewNotActive) ||
		errors.Is(err, ErrInterviewAlreadyStarted) ||
		errors.Is(err, ErrAnswerAlreadySubmitted)
}
