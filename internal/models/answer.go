package models

// Answer records one submitted answer with its evaluation. Immutable once
// appended to an interview.
type Answer struct {
	QuestionID   int      `json:"question_id"`
	QuestionText string   `json:"question_text"`
	AnswerText   string   `json:"answer_text"`
	Score        int      `json:"score" validate:"min=0,max=100"`
	Feedback     []string `json:"feedback"`
	TimeSpent    int      `json:"time_spent" validate:"min=0"` // Seconds
}
