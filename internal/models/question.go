package models

type DifficultyLevel string

const (
	DifficultyEasy   DifficultyLevel = "easy"
	DifficultyMedium DifficultyLevel = "medium"
	DifficultyHard   DifficultyLevel = "hard"
)

// Question is a value object snapshotted into the interview record as JSON.
// The bank is fixed, so questions are never stored in their own table.
type Question struct {
	ID               int             `json:"id"`
	Text             string          `json:"text" validate:"required"`
	Difficulty       DifficultyLevel `json:"difficulty" validate:"required,difficulty_level"`
	TimeLimit        int             `json:"time_limit" validate:"required,min=1"` // Seconds
	ExpectedKeywords []string        `json:"expected_keywords"`
}

// QuestionSet groups the fixed bank by difficulty, two questions per tier.
type QuestionSet struct {
	Easy   []Question `json:"easy"`
	Medium []Question `json:"medium"`
	Hard   []Question `json:"hard"`
}

// Sequence returns the fixed interview order: easy, then medium, then hard.
func (s QuestionSet) Sequence() []Question {
	seq := make([]Question, 0, len(s.Easy)+len(s.Medium)+len(s.Hard))
	seq = append(seq, s.Easy...)
	seq = append(seq, s.Medium...)
	seq = append(seq, s.Hard...)
	return seq
}
