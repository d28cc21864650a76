package domain

import (
	"fmt"
	"strings"
)

// QuizOptionCount is the number of options every generated question carries
const QuizOptionCount = 4

// ContentKind tags the active GeneratedContent variant
type ContentKind string

const (
	ContentMarkdown ContentKind = "markdown"
	ContentQuiz     ContentKind = "quiz"
)

// QuizQuestion is one multiple-choice question with a single correct option
type QuizQuestion struct {
	QuestionText       string   `json:"questionText"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
}

// Validate checks a single question. The index must address an option.
func (q QuizQuestion) Validate() error {
	if strings.TrimSpace(q.QuestionText) == "" {
		return NewValidationError("questionText is required")
	}
	if len(q.Options) != QuizOptionCount {
		return NewValidationError(fmt.Sprintf("expected %d options, got %d", QuizOptionCount, len(q.Options)))
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return NewValidationError(fmt.Sprintf("option %d is empty", i))
		}
	}
	if q.CorrectAnswerIndex < 0 || q.CorrectAnswerIndex >= len(q.Options) {
		return NewValidationError(fmt.Sprintf("correctAnswerIndex %d out of range [0,%d)", q.CorrectAnswerIndex, len(q.Options)))
	}
	return nil
}

// ValidateQuiz validates a whole batch. One bad question rejects the batch.
func ValidateQuiz(questions []QuizQuestion) error {
	if len(questions) == 0 {
		return NewValidationError("quiz contains no questions")
	}
	for i, q := range questions {
		if err := q.Validate(); err != nil {
			return fmt.Errorf("question %d: %w", i+1, err)
		}
	}
	return nil
}

// QuizValidationError reports a question that breaks the quiz invariants
type QuizValidationError struct {
	message string
}

func (e *QuizValidationError) Error() string {
	return e.message
}

func NewValidationError(message string) error {
	return &QuizValidationError{message: message}
}

// GeneratedContent is a tagged union: Kind selects whether Text or Questions
// holds the payload. Use the constructors so exactly one side is populated.
type GeneratedContent struct {
	Kind      ContentKind    `json:"kind"`
	Text      string         `json:"text,omitempty"`
	Questions []QuizQuestion `json:"questions,omitempty"`
}

func NewMarkdownContent(text string) *GeneratedContent {
	return &GeneratedContent{Kind: ContentMarkdown, Text: text}
}

func NewQuizContent(questions []QuizQuestion) *GeneratedContent {
	return &GeneratedContent{Kind: ContentQuiz, Questions: CloneQuestions(questions)}
}

func (c *GeneratedContent) IsQuiz() bool {
	return c != nil && c.Kind == ContentQuiz
}

func (c *GeneratedContent) IsMarkdown() bool {
	return c != nil && c.Kind == ContentMarkdown
}

// CloneQuestions deep-copies a question list so callers cannot alias options
func CloneQuestions(questions []QuizQuestion) []QuizQuestion {
	if questions == nil {
		return nil
	}
	out := make([]QuizQuestion, len(questions))
	for i, q := range questions {
		out[i] = QuizQuestion{
			QuestionText:       q.QuestionText,
			Options:            append([]string(nil), q.Options...),
			CorrectAnswerIndex: q.CorrectAnswerIndex,
		}
	}
	return out
}
