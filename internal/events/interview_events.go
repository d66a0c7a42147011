package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/crisp-hire/interview-service/internal/models"
)

// EventType represents different types of interview lifecycle events
type EventType string

const (
	EventCandidateCreated EventType = "candidate.created"

	EventInterviewStarted   EventType = "interview.started"
	EventInterviewResumed   EventType = "interview.resumed"
	EventInterviewPaused    EventType = "interview.paused"
	EventInterviewCompleted EventType = "interview.completed"

	EventAnswerSubmitted EventType = "interview.answer_submitted"
)

// InterviewEvent is the base event structure for all interview events
type InterviewEvent struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	Source    string      `json:"source"`
	Version   string      `json:"version"`
	Data      interface{} `json:"data"`
}

const eventSource = "interview-service"

// NewInterviewEvent builds the envelope for a lifecycle event
func NewInterviewEvent(eventType EventType, data interface{}) *InterviewEvent {
	return &InterviewEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Source:    eventSource,
		Version:   "1.0",
		Data:      data,
	}
}

// Event payloads

type CandidateCreatedEvent struct {
	CandidateID string    `json:"candidate_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CreatedAt   time.Time `json:"created_at"`
}

type InterviewStartedEvent struct {
	InterviewID   string    `json:"interview_id"`
	CandidateID   string    `json:"candidate_id"`
	QuestionCount int       `json:"question_count"`
	StartedAt     time.Time `json:"started_at"`
}

type InterviewResumedEvent struct {
	InterviewID   string `json:"interview_id"`
	CandidateID   string `json:"candidate_id"`
	QuestionIndex int    `json:"question_index"`
}

type InterviewPausedEvent struct {
	InterviewID      string    `json:"interview_id"`
	CandidateID      string    `json:"candidate_id"`
	QuestionIndex    int       `json:"question_index"`
	AnswersSubmitted int       `json:"answers_submitted"`
	PausedAt         time.Time `json:"paused_at"`
}

type InterviewCompletedEvent struct {
	InterviewID string       `json:"interview_id"`
	CandidateID string       `json:"candidate_id"`
	FinalScore  int          `json:"final_score"`
	Grade       models.Grade `json:"grade"`
	CompletedAt time.Time    `json:"completed_at"`
}

type AnswerSubmittedEvent struct {
	InterviewID   string `json:"interview_id"`
	CandidateID   string `json:"candidate_id"`
	QuestionID    int    `json:"question_id"`
	QuestionIndex int    `json:"question_index"`
	Score         int    `json:"score"`
	TimeSpent     int    `json:"time_spent"`
}
