// Package attempt tracks a user's answers while they work through an
// interactive quiz.
package attempt

import (
	"fmt"

	"edugen/internal/domain"
)

// Unanswered marks a question with no selection yet
const Unanswered = -1

// Score is the result of a completed attempt
type Score struct {
	Correct int `json:"correct"`
	Total   int `json:"total"`
}

func (s Score) String() string {
	return fmt.Sprintf("%d/%d", s.Correct, s.Total)
}

// Attempt holds one selection per question. A question locks once answered.
type Attempt struct {
	questions  []domain.QuizQuestion
	selections []int
	completed  bool
}

func New(questions []domain.QuizQuestion) *Attempt {
	selections := make([]int, len(questions))
	for i := range selections {
		selections[i] = Unanswered
	}
	return &Attempt{questions: domain.CloneQuestions(questions), selections: selections}
}

// Select records option for question. Selecting on an already answered
// question or a completed attempt is an error and changes nothing.
func (a *Attempt) Select(question, option int) error {
	if a.completed {
		return domain.NewInvalidInputError("quiz already submitted")
	}
	if question < 0 || question >= len(a.questions) {
		return domain.NewOutOfRangeError("question", question, 0, len(a.questions)-1)
	}
	opts := a.questions[question].Options
	if option < 0 || option >= len(opts) {
		return domain.NewOutOfRangeError("option", option, 0, len(opts)-1)
	}
	if a.selections[question] != Unanswered {
		return domain.NewInvalidInputError(fmt.Sprintf("question %d is already answered", question+1))
	}
	a.selections[question] = option
	return nil
}

// Selection returns the chosen option for question, or Unanswered.
func (a *Attempt) Selection(question int) int {
	if question < 0 || question >= len(a.selections) {
		return Unanswered
	}
	return a.selections[question]
}

func (a *Attempt) Answered() int {
	n := 0
	for _, s := range a.selections {
		if s != Unanswered {
			n++
		}
	}
	return n
}

func (a *Attempt) Len() int { return len(a.questions) }

func (a *Attempt) Questions() []domain.QuizQuestion { return domain.CloneQuestions(a.questions) }

func (a *Attempt) Completed() bool { return a.completed }

// Complete ends the attempt and scores it. Unanswered questions count as wrong.
func (a *Attempt) Complete() Score {
	a.completed = true
	return a.score()
}

func (a *Attempt) score() Score {
	s := Score{Total: len(a.questions)}
	for i, q := range a.questions {
		if a.selections[i] == q.CorrectAnswerIndex {
			s.Correct++
		}
	}
	return s
}

// ScoreSelections scores a full set of selections in one go, as submitted by
// a stateless client. Entries may be Unanswered.
func ScoreSelections(questions []domain.QuizQuestion, selections []int) (Score, error) {
	if len(selections) != len(questions) {
		return Score{}, domain.NewInvalidInputError(
			fmt.Sprintf("expected %d selections, got %d", len(questions), len(selections)))
	}
	a := New(questions)
	for i, s := range selections {
		if s == Unanswered {
			continue
		}
		if err := a.Select(i, s); err != nil {
			return Score{}, err
		}
	}
	return a.Complete(), nil
}
