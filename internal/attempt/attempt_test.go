package attempt

import (
	"testing"

	"edugen/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fourQuestions() []domain.QuizQuestion {
	qs := make([]domain.QuizQuestion, 4)
	for i := range qs {
		qs[i] = domain.QuizQuestion{
			QuestionText:       "Q",
			Options:            []string{"a", "b", "c", "d"},
			CorrectAnswerIndex: 2,
		}
	}
	return qs
}

func TestAttempt_TwoOfFour(t *testing.T) {
	a := New(fourQuestions())

	require.NoError(t, a.Select(0, 0))
	require.NoError(t, a.Select(1, 2))
	require.NoError(t, a.Select(2, 1))
	require.NoError(t, a.Select(3, 2))

	score := a.Complete()
	assert.Equal(t, Score{Correct: 2, Total: 4}, score)
	assert.Equal(t, "2/4", score.String())
}

func TestAttempt_UnansweredCountsAsWrong(t *testing.T) {
	a := New(fourQuestions())
	require.NoError(t, a.Select(1, 2))

	assert.Equal(t, 1, a.Answered())
	assert.Equal(t, "1/4", a.Complete().String())
}

func TestAttempt_AnsweredQuestionLocks(t *testing.T) {
	a := New(fourQuestions())
	require.NoError(t, a.Select(0, 1))

	assert.Error(t, a.Select(0, 2))
	assert.Equal(t, 1, a.Selection(0))
}

func TestAttempt_RejectsOutOfRange(t *testing.T) {
	a := New(fourQuestions())
	assert.Error(t, a.Select(4, 0))
	assert.Error(t, a.Select(0, 4))
	assert.Error(t, a.Select(-1, 0))
	assert.Equal(t, Unanswered, a.Selection(9))
}

func TestAttempt_CompletedIsFinal(t *testing.T) {
	a := New(fourQuestions())
	a.Complete()
	assert.True(t, a.Completed())
	assert.Error(t, a.Select(0, 2))
}

func TestAttempt_DoesNotAliasQuestions(t *testing.T) {
	qs := fourQuestions()
	a := New(qs)
	qs[0].CorrectAnswerIndex = 0

	require.NoError(t, a.Select(0, 2))
	assert.Equal(t, 1, a.Complete().Correct)
}

func TestScoreSelections(t *testing.T) {
	score, err := ScoreSelections(fourQuestions(), []int{2, Unanswered, 2, 0})
	require.NoError(t, err)
	assert.Equal(t, "2/4", score.String())

	_, err = ScoreSelections(fourQuestions(), []int{2})
	assert.Error(t, err)

	_, err = ScoreSelections(fourQuestions(), []int{2, 7, 2, 0})
	assert.Error(t, err)
}
