package services

import (
	"github.com/crisp-hire/interview-service/internal/models"
)

// QuestionBankService produces the fixed interview question set. Every
// interview uses the same six questions in the same order; there is no
// randomization or pool sampling.
type QuestionBankService interface {
	GenerateQuestions() models.QuestionSet
	Sequence() []models.Question
}

type questionBankService struct{}

func NewQuestionBankService() QuestionBankService {
	return &questionBankService{}
}

func (s *questionBankService) GenerateQuestions() models.QuestionSet {
	return models.QuestionSet{
		Easy: []models.Question{
			{
				ID:               1,
				Text:             "What is React and what are its main advantages?",
				Difficulty:       models.DifficultyEasy,
				TimeLimit:        20,
				ExpectedKeywords: []string{"component", "virtual dom", "reusable", "state", "props"},
			},
			{
				ID:               2,
				Text:             "Explain the difference between let, const, and var in JavaScript.",
				Difficulty:       models.DifficultyEasy,
				TimeLimit:        20,
				ExpectedKeywords: []string{"scope", "hoisting", "block", "immutable", "mutable"},
			},
		},
		Medium: []models.Question{
			{
				ID:               3,
				Text:             "How would you implement a custom hook in React? Provide an example.",
				Difficulty:       models.DifficultyMedium,
				TimeLimit:        60,
				ExpectedKeywords: []string{"useState", "useEffect", "custom", "reusable", "logic"},
			},
			{
				ID:               4,
				Text:             "Explain the concept of closures in JavaScript and provide a practical example.",
				Difficulty:       models.DifficultyMedium,
				TimeLimit:        60,
				ExpectedKeywords: []string{"closure", "scope", "function", "lexical", "environment"},
			},
		},
		Hard: []models.Question{
			{
				ID:               5,
				Text:             "Design a scalable state management solution for a large React application. What patterns would you use?",
				Difficulty:       models.DifficultyHard,
				TimeLimit:        120,
				ExpectedKeywords: []string{"redux", "context", "state", "scalable", "pattern", "architecture"},
			},
			{
				ID:               6,
				Text:             "Explain the React reconciliation algorithm and how it optimizes rendering performance.",
				Difficulty:       models.DifficultyHard,
				TimeLimit:        120,
				ExpectedKeywords: []string{"reconciliation", "diffing", "virtual dom", "performance", "algorithm"},
			},
		},
	}
}

func (s *questionBankService) Sequence() []models.Question {
	return s.GenerateQuestions().Sequence()
}
