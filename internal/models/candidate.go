package models

import (
	"time"
)

type CandidateStatus string

const (
	CandidateInProgress CandidateStatus = "in_progress"
	CandidatePaused     CandidateStatus = "paused"
	CandidateCompleted  CandidateStatus = "completed"
)

// Candidate is a person taking the interview and their persisted record.
// Exactly one interview is ever attached (1:1); restarting creates a fresh
// candidate id and leaves the old record in the store.
type Candidate struct {
	ID         string          `json:"id" gorm:"primaryKey;size:64"`
	Name       string          `json:"name" gorm:"not null;size:200" validate:"required,min=1,max=200"`
	Email      string          `json:"email" gorm:"not null;size:255;index" validate:"required,email"`
	Phone      string          `json:"phone" gorm:"not null;size:40" validate:"required"`
	ResumeText string          `json:"resume_text" gorm:"type:text"`
	Status     CandidateStatus `json:"status" gorm:"not null;index" validate:"omitempty,oneof=in_progress paused completed"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at"`

	// Relations
	Interview *Interview `json:"interview,omitempty" gorm:"foreignKey:CandidateID"`

	// Computed for dashboard listings (not stored)
	FinalScore *int   `json:"final_score,omitempty" gorm:"-"`
	Grade      *Grade `json:"grade,omitempty" gorm:"-"`
}

func (Candidate) TableName() string {
	return "candidates"
}

// Unfinished reports whether the candidate can still be resumed.
func (c *Candidate) Unfinished() bool {
	return c.Status == CandidateInProgress || c.Status == CandidatePaused
}
