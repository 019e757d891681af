package tutor

import (
	"strings"

	"github.com/fragmede/tutor/internal/api"
)

// Quiz tracks progress through one generated quiz.
type Quiz struct {
	questions []api.QuizQuestion
	current   int
	answered  bool
	picked    int
	correct   bool
	score     int
}

// NewQuiz starts a quiz at its first question.
func NewQuiz(questions []api.QuizQuestion) *Quiz {
	return &Quiz{questions: questions, picked: -1}
}

// Question returns the current question, or nil once the quiz is over.
func (q *Quiz) Question() *api.QuizQuestion {
	if q.current >= len(q.questions) {
		return nil
	}
	return &q.questions[q.current]
}

// Answer picks option i of the current question. It reports whether the
// pick was accepted and whether it was correct. A question takes one
// answer.
func (q *Quiz) Answer(i int) (accepted, correct bool) {
	cur := q.Question()
	if cur == nil || q.answered || i < 0 || i >= len(cur.Options) {
		return false, false
	}
	q.answered = true
	q.picked = i
	correct = strings.TrimSpace(cur.Options[i]) == strings.TrimSpace(cur.CorrectAnswer)
	q.correct = correct
	if correct {
		q.score++
	}
	return true, correct
}

// Answered reports whether the current question has been answered.
func (q *Quiz) Answered() bool { return q.answered }

// Picked is the option index chosen for the current question, or -1.
func (q *Quiz) Picked() int { return q.picked }

// Correct reports whether the current question was answered correctly.
func (q *Quiz) Correct() bool { return q.answered && q.correct }

// Next moves past an answered question. It returns false when there is
// nothing to move to yet.
func (q *Quiz) Next() bool {
	if !q.answered || q.Done() {
		return false
	}
	q.current++
	q.answered = false
	q.correct = false
	q.picked = -1
	return true
}

// Done reports whether every question has been answered and passed.
func (q *Quiz) Done() bool { return q.current >= len(q.questions) }

// Position is the 1-based number of the current question.
func (q *Quiz) Position() int { return q.current + 1 }

func (q *Quiz) Len() int   { return len(q.questions) }
func (q *Quiz) Score() int { return q.score }

// Questions returns the questions for saving the result.
func (q *Quiz) Questions() []api.QuizQuestion { return q.questions }
