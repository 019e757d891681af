package tutor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fragmede/tutor/internal/api"
)

func sampleQuestions() []api.QuizQuestion {
	return []api.QuizQuestion{
		{Question: "2+2?", Options: []string{"3", "4", "5"}, CorrectAnswer: "4", Explanation: "Count."},
		{Question: "Capital of France?", Options: []string{"Paris", "Rome"}, CorrectAnswer: "Paris"},
	}
}

func TestQuizScoresCorrectAnswers(t *testing.T) {
	q := NewQuiz(sampleQuestions())
	require.Equal(t, 1, q.Position())

	accepted, correct := q.Answer(1)
	assert.True(t, accepted)
	assert.True(t, correct)
	assert.True(t, q.Correct())
	assert.Equal(t, 1, q.Picked())

	require.True(t, q.Next())
	assert.Equal(t, 2, q.Position())
	assert.False(t, q.Answered())
	assert.Equal(t, -1, q.Picked())

	_, correct = q.Answer(1)
	assert.False(t, correct)
	assert.False(t, q.Correct())

	require.True(t, q.Next())
	assert.True(t, q.Done())
	assert.Nil(t, q.Question())
	assert.Equal(t, 1, q.Score())
	assert.Equal(t, 2, q.Len())
}

func TestQuizOneAnswerPerQuestion(t *testing.T) {
	q := NewQuiz(sampleQuestions())
	q.Answer(0)
	accepted, _ := q.Answer(1)
	assert.False(t, accepted)
	assert.Equal(t, 0, q.Picked())
	assert.Equal(t, 0, q.Score())
}

func TestQuizRejectsOutOfRangeOption(t *testing.T) {
	q := NewQuiz(sampleQuestions())
	accepted, _ := q.Answer(7)
	assert.False(t, accepted)
	assert.False(t, q.Answered())
	assert.False(t, q.Next(), "cannot skip an unanswered question")
}

func TestQuizIgnoresSurroundingWhitespace(t *testing.T) {
	q := NewQuiz([]api.QuizQuestion{{Options: []string{" yes ", "no"}, CorrectAnswer: "yes"}})
	_, correct := q.Answer(0)
	assert.True(t, correct)
}
