package domain

import (
	"time"
)

// TimestampLayout is the ISO-8601 form used for SavedQuiz.SavedAt
// (UTC, millisecond precision, e.g. 2024-05-01T09:30:00.000Z).
const TimestampLayout = "2006-01-02T15:04:05.000Z"

// QuestionBankKey is the single slot the Question Bank is persisted under
const QuestionBankKey = "ai-teacher-question-bank"

// SavedQuiz is a quiz the user kept in the Question Bank
type SavedQuiz struct {
	ID        string         `json:"id"`
	Topic     string         `json:"topic"`
	Questions []QuizQuestion `json:"questions"`
	SavedAt   string         `json:"savedAt"`
}

// NewSavedQuiz stamps a quiz with an id and the save time. The questions are
// copied so later edits to the caller's slice do not leak in.
func NewSavedQuiz(id, topic string, questions []QuizQuestion, now time.Time) SavedQuiz {
	return SavedQuiz{
		ID:        id,
		Topic:     topic,
		Questions: CloneQuestions(questions),
		SavedAt:   FormatTimestamp(now),
	}
}

// SavedTime parses SavedAt; the zero time is returned for malformed values
func (s SavedQuiz) SavedTime() time.Time {
	t, err := time.Parse(TimestampLayout, s.SavedAt)
	if err != nil {
		return time.Time{}
	}
	return t
}

func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
