package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterview_QuestionSnapshotRoundTrip(t *testing.T) {
	interview := &Interview{ID: "i1", CandidateID: "c1"}

	questions, err := interview.Questions()
	require.NoError(t, err)
	assert.Nil(t, questions)

	original := []Question{
		{ID: 1, Text: "What is React?", Difficulty: DifficultyEasy, TimeLimit: 20, ExpectedKeywords: []string{"component"}},
		{ID: 2, Text: "Explain closures.", Difficulty: DifficultyMedium, TimeLimit: 60, ExpectedKeywords: []string{"scope", "closure"}},
	}
	require.NoError(t, interview.SetQuestions(original))

	decoded, err := interview.Questions()
	require.NoError(t, err)
	assert.Equal(t, original, decoded)
}

func TestInterview_AppendAnswerKeepsIndexInvariant(t *testing.T) {
	interview := &Interview{ID: "i1", CandidateID: "c1", Status: InterviewInProgress}
	require.NoError(t, interview.SetAnswers([]Answer{}))

	for i := 1; i <= 3; i++ {
		err := interview.AppendAnswer(Answer{QuestionID: i, AnswerText: "answer", Score: 50})
		require.NoError(t, err)

		answers, err := interview.Answers()
		require.NoError(t, err)
		assert.Len(t, answers, i)
		assert.Equal(t, i, interview.CurrentQuestionIndex, "index always equals the answered count")
	}
}

func TestInterview_CorruptSnapshotsSurfaceErrors(t *testing.T) {
	interview := &Interview{ID: "i1", QuestionsJSON: []byte("{not json"), AnswersJSON: []byte("[broken")}

	_, err := interview.Questions()
	assert.Error(t, err)

	_, err = interview.Answers()
	assert.Error(t, err)
}

func TestCandidate_Unfinished(t *testing.T) {
	tests := []struct {
		status CandidateStatus
		want   bool
	}{
		{CandidateInProgress, true},
		{CandidatePaused, true},
		{CandidateCompleted, false},
	}

	for _, tt := range tests {
		candidate := &Candidate{Status: tt.status}
		assert.Equal(t, tt.want, candidate.Unfinished(), "status %s", tt.status)
	}
}

func TestQuestionSet_Sequence(t *testing.T) {
	set := QuestionSet{
		Easy:   []Question{{ID: 1}, {ID: 2}},
		Medium: []Question{{ID: 3}, {ID: 4}},
		Hard:   []Question{{ID: 5}, {ID: 6}},
	}

	sequence := set.Sequence()
	require.Len(t, sequence, 6)
	for i, question := range sequence {
		assert.Equal(t, i+1, question.ID)
	}
}
