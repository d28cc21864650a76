package tui

import (
	"fmt"
	"strings"

	"edugen/internal/attempt"
	"edugen/internal/domain"
)

// quizView is the interactive quiz pane: one attempt, a question cursor and
// the score once submitted.
type quizView struct {
	attempt *attempt.Attempt
	cursor  int
	score   *attempt.Score
	saved   bool
}

func newQuizView(questions []domain.QuizQuestion) quizView {
	return quizView{attempt: attempt.New(questions)}
}

func (q quizView) moveCursor(delta int) quizView {
	n := q.attempt.Len()
	if n == 0 {
		return q
	}
	q.cursor = min(max(q.cursor+delta, 0), n-1)
	return q
}

// optionIndex maps "1".."4" and "a".."d" to an option index.
func optionIndex(key string) (int, bool) {
	if len(key) != 1 {
		return 0, false
	}
	c := key[0]
	switch {
	case c >= '1' && c <= '9':
		return int(c - '1'), true
	case c >= 'a' && c <= 'i':
		return int(c - 'a'), true
	}
	return 0, false
}

func (q quizView) choose(option int) (quizView, error) {
	if err := q.attempt.Select(q.cursor, option); err != nil {
		return q, err
	}
	if q.cursor < q.attempt.Len()-1 {
		q.cursor++
	}
	return q, nil
}

func (q quizView) submit() quizView {
	if q.score == nil {
		score := q.attempt.Complete()
		q.score = &score
	}
	return q
}

func (q quizView) view(noColor bool) string {
	var b strings.Builder
	for i, question := range q.attempt.Questions() {
		marker := "  "
		if i == q.cursor && q.score == nil {
			marker = stylize("> ", noColor, colorFocus)
		}
		b.WriteString(marker + bold(fmt.Sprintf("Q%d. %s", i+1, question.QuestionText), noColor) + "\n")
		selected := q.attempt.Selection(i)
		for j, opt := range question.Options {
			line := fmt.Sprintf("     %c) %s", 'A'+j, opt)
			switch {
			case q.score != nil && j == question.CorrectAnswerIndex:
				line = stylize(line+"  ✓", noColor, colorCorrect)
			case q.score != nil && j == selected:
				line = stylize(line+"  ✗", noColor, colorError)
			case j == selected:
				line = stylize(line+"  •", noColor, colorFocus)
			}
			b.WriteString(line + "\n")
		}
		b.WriteString("\n")
	}

	if q.score != nil {
		b.WriteString(bold("Score: "+q.score.String(), noColor) + "\n")
	} else {
		b.WriteString(stylize(fmt.Sprintf("Answered %d of %d", q.attempt.Answered(), q.attempt.Len()), noColor, colorMuted) + "\n")
	}
	if q.saved {
		b.WriteString(stylize("Saved to Question Bank", noColor, colorCorrect) + "\n")
	}
	return b.String()
}
