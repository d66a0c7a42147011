package services

import (
	"fmt"
	"math"
	"strings"

	"github.com/crisp-hire/interview-service/internal/models"
)

// Evaluation is the result of scoring one answer against its question.
type Evaluation struct {
	Score           int      `json:"score"`
	Feedback        []string `json:"feedback"`
	MatchedKeywords []string `json:"matched_keywords"`
}

// FinalResult aggregates per-question scores into the interview grade.
type FinalResult struct {
	TotalScore int          `json:"total_score"`
	Grade      models.Grade `json:"grade"`
	Summary    string       `json:"summary"`
}

// ScoringService is the keyword-heuristic answer evaluator. Evaluation is
// deterministic and purely local; there is no model behind it.
type ScoringService interface {
	EvaluateAnswer(question models.Question, answerText string) Evaluation
	CalculateFinalScore(answers []models.Answer) (*FinalResult, error)
}

type scoringService struct{}

func NewScoringService() ScoringService {
	return &scoringService{}
}

// Phrases that mark a non-answer. Matching any of them scores zero without
// keyword analysis.
var dontKnowMarkers = []string{
	"don't know",
	"i don't know",
	"no answer provided",
	"time expired",
}

func (s *scoringService) EvaluateAnswer(question models.Question, answerText string) Evaluation {
	normalized := strings.ToLower(answerText)

	for _, marker := range dontKnowMarkers {
		if strings.Contains(normalized, marker) {
			return Evaluation{
				Score:           0,
				Feedback:        dontKnowFeedback(question),
				MatchedKeywords: []string{},
			}
		}
	}

	matched := make([]string, 0, len(question.ExpectedKeywords))
	for _, keyword := range question.ExpectedKeywords {
		if strings.Contains(normalized, strings.ToLower(keyword)) {
			matched = append(matched, keyword)
		}
	}

	// An empty keyword set would make the ratio 0/0; treat it as zero
	// coverage instead of propagating a NaN.
	keywordScore := 0.0
	if len(question.ExpectedKeywords) > 0 {
		keywordScore = float64(len(matched)) / float64(len(question.ExpectedKeywords)) * 40
	}

	lengthScore := math.Min(float64(len(answerText))/100, 1) * 20

	technicalScore := 10.0
	if strings.Contains(normalized, "example") || strings.Contains(normalized, "code") {
		technicalScore = 20.0
	}

	total := math.Min(keywordScore+lengthScore+technicalScore, 100)

	return Evaluation{
		Score:           int(math.Round(total)),
		Feedback:        answerFeedback(question, answerText, matched),
		MatchedKeywords: matched,
	}
}

func dontKnowFeedback(question models.Question) []string {
	feedback := []string{
		"It's okay to not know every answer. This shows honesty and self-awareness.",
		"For future reference, this question was about: " + strings.Join(question.ExpectedKeywords, ", "),
	}

	switch question.Difficulty {
	case models.DifficultyEasy:
		feedback = append(feedback, "This was a basic concept. Consider reviewing fundamental React/JavaScript concepts.")
	case models.DifficultyMedium:
		feedback = append(feedback, "This was an intermediate topic. Consider studying more advanced React patterns and JavaScript concepts.")
	default:
		feedback = append(feedback, "This was an advanced topic. Consider studying system design and complex React architectures.")
	}

	return feedback
}

func answerFeedback(question models.Question, answerText string, matched []string) []string {
	var feedback []string

	switch {
	case len(matched) == 0:
		feedback = append(feedback, "Your answer didn't cover the key concepts. Consider mentioning: "+
			strings.Join(question.ExpectedKeywords, ", "))
	case float64(len(matched)) < float64(len(question.ExpectedKeywords))/2:
		feedback = append(feedback, "Good start! You covered some key points. Consider also discussing: "+
			strings.Join(missingKeywords(question.ExpectedKeywords, matched), ", "))
	default:
		feedback = append(feedback, "Excellent! You covered most of the key concepts well.")
	}

	if len(answerText) < 50 {
		feedback = append(feedback, "Your answer could be more detailed. Try to provide examples or explain your reasoning.")
	}

	if !strings.Contains(strings.ToLower(answerText), "example") && question.Difficulty != models.DifficultyEasy {
		feedback = append(feedback, "Consider providing a practical example to illustrate your point.")
	}

	return feedback
}

func missingKeywords(expected, matched []string) []string {
	matchedSet := make(map[string]struct{}, len(matched))
	for _, k := range matched {
		matchedSet[k] = struct{}{}
	}

	var missing []string
	for _, k := range expected {
		if _, ok := matchedSet[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

func (s *scoringService) CalculateFinalScore(answers []models.Answer) (*FinalResult, error) {
	if len(answers) == 0 {
		// The state machine guarantees at least one answer before completion;
		// hitting this is a contract violation, not a user error.
		return nil, ErrNoAnswersToScore
	}

	sum := 0
	for _, answer := range answers {
		sum += answer.Score
	}
	average := float64(sum) / float64(len(answers))

	grade := models.GradeF
	switch {
	case average >= 90:
		grade = models.GradeA
	case average >= 80:
		grade = models.GradeB
	case average >= 70:
		grade = models.GradeC
	case average >= 60:
		grade = models.GradeD
	}

	return &FinalResult{
		TotalScore: int(math.Round(average)),
		Grade:      grade,
		Summary:    buildSummary(answers, average),
	}, nil
}

func buildSummary(answers []models.Answer, average float64) string {
	var strengths, weaknesses []string
	for i, answer := range answers {
		if answer.Score >= 80 {
			strengths = append(strengths, fmt.Sprintf("Question %d: Strong understanding", i+1))
		} else if answer.Score < 60 {
			weaknesses = append(weaknesses, fmt.Sprintf("Question %d: Needs improvement", i+1))
		}
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Overall Score: %d/100\n\n", int(math.Round(average)))

	if len(strengths) > 0 {
		fmt.Fprintf(&sb, "Strengths:\n%s\n\n", strings.Join(strengths, "\n"))
	}
	if len(weaknesses) > 0 {
		fmt.Fprintf(&sb, "Areas for Improvement:\n%s\n\n", strings.Join(weaknesses, "\n"))
	}

	switch {
	case average >= 80:
		sb.WriteString("Overall Assessment: Strong candidate with good technical knowledge.")
	case average >= 60:
		sb.WriteString("Overall Assessment: Decent candidate with room for improvement.")
	default:
		sb.WriteString("Overall Assessment: Candidate needs significant improvement in technical knowledge.")
	}

	return sb.String()
}
