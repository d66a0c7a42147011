package models

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type InterviewStatus string

const (
	InterviewInProgress InterviewStatus = "in_progress"
	InterviewPaused     InterviewStatus = "paused"
	InterviewCompleted  InterviewStatus = "completed"
)

type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Interview is one candidate's attempt at the fixed 6-question sequence.
// Questions and answers are snapshotted as JSON columns; the question bank
// is static, so there is nothing to join against.
type Interview struct {
	ID                   string          `json:"id" gorm:"primaryKey;size:64"`
	CandidateID          string          `json:"candidate_id" gorm:"not null;uniqueIndex;size:64"`
	QuestionsJSON        datatypes.JSON  `json:"-" gorm:"column:questions;type:jsonb"` // []Question
	CurrentQuestionIndex int             `json:"current_question_index" gorm:"not null;default:0"`
	AnswersJSON          datatypes.JSON  `json:"-" gorm:"column:answers;type:jsonb"` // []Answer
	StartTime            time.Time       `json:"start_time"`
	EndTime              *time.Time      `json:"end_time"`
	PausedAt             *time.Time      `json:"paused_at"`
	Status               InterviewStatus `json:"status" gorm:"not null;index" validate:"omitempty,oneof=in_progress paused completed"`

	// Present iff Status == completed
	FinalScore *int    `json:"final_score" validate:"omitempty,min=0,max=100"`
	Grade      *Grade  `json:"grade" validate:"omitempty,oneof=A B C D F"`
	Summary    *string `json:"summary" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Interview) TableName() string {
	return "interviews"
}

func (i *Interview) Questions() ([]Question, error) {
	if len(i.QuestionsJSON) == 0 {
		return nil, nil
	}
	var questions []Question
	if err := json.Unmarshal(i.QuestionsJSON, &questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (i *Interview) SetQuestions(questions []Question) error {
	data, err := json.Marshal(questions)
	if err != nil {
		return err
	}
	i.QuestionsJSON = data
	return nil
}

func (i *Interview) Answers() ([]Answer, error) {
	if len(i.AnswersJSON) == 0 {
		return nil, nil
	}
	var answers []Answer
	if err := json.Unmarshal(i.AnswersJSON, &answers); err != nil {
		return nil, err
	}
	return answers, nil
}

func (i *Interview) SetAnswers(answers []Answer) error {
	data, err := json.Marshal(answers)
	if err != nil {
		return err
	}
	i.AnswersJSON = data
	return nil
}

// AppendAnswer adds one answer and advances the question index together, so
// the in_progress invariant (answers count == current index) cannot be broken
// by a caller doing only half the update.
func (i *Interview) AppendAnswer(answer Answer) error {
	answers, err := i.Answers()
	if err != nil {
		return err
	}
	answers = append(answers, answer)
	if err := i.SetAnswers(answers); err != nil {
		return err
	}
	i.CurrentQuestionIndex = len(answers)
	return nil
}
