package dto

import (
	"edugen/internal/app"
	"edugen/internal/attempt"
	"edugen/internal/domain"
)

// GenerateRequest is the body of POST /api/generate. Enumerated fields accept
// the code or the display label.
type GenerateRequest struct {
	Board       string `json:"board"`
	ClassLevel  string `json:"classLevel"`
	Subject     string `json:"subject"`
	Topic       string `json:"topic"`
	RequestType string `json:"requestType"`
	Language    string `json:"language"`
	Difficulty  string `json:"difficulty"`
	Year        string `json:"year,omitempty"`
	ExamType    string `json:"examType,omitempty"`
}

// Option is one selectable value of a form field
type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// OptionsResponse lists every form vocabulary in form order
type OptionsResponse struct {
	Boards       []Option        `json:"boards"`
	ClassLevels  []Option        `json:"classLevels"`
	RequestTypes []Option        `json:"requestTypes"`
	Languages    []Option        `json:"languages"`
	Difficulties []Option        `json:"difficulties"`
	ExamTypes    []Option        `json:"examTypes"`
	Defaults     domain.FormData `json:"defaults"`
}

// StateResponse mirrors app.State
type StateResponse struct {
	Phase        app.Phase                `json:"phase"`
	Content      *domain.GeneratedContent `json:"content,omitempty"`
	Error        string                   `json:"error,omitempty"`
	CurrentTopic string                   `json:"currentTopic"`
	Exportable   bool                     `json:"exportable"`
}

func NewStateResponse(st app.State) StateResponse {
	_, exportable := st.ActiveMarkdown()
	return StateResponse{
		Phase:        st.Phase,
		Content:      st.Content,
		Error:        st.Error,
		CurrentTopic: st.CurrentTopic,
		Exportable:   exportable,
	}
}

// ScoreRequest carries one selected option index per question; -1 means
// unanswered.
type ScoreRequest struct {
	Selections []int `json:"selections"`
}

type ScoreResponse struct {
	Correct int    `json:"correct"`
	Total   int    `json:"total"`
	Display string `json:"display"`
}

func NewScoreResponse(s attempt.Score) ScoreResponse {
	return ScoreResponse{Correct: s.Correct, Total: s.Total, Display: s.String()}
}

// SavedQuizSummary is a Question Bank entry without its questions
type SavedQuizSummary struct {
	ID            string `json:"id"`
	Topic         string `json:"topic"`
	QuestionCount int    `json:"questionCount"`
	SavedAt       string `json:"savedAt"`
}

// BankResponse lists saved quizzes newest first
type BankResponse struct {
	Quizzes []SavedQuizSummary `json:"quizzes"`
}

func NewBankResponse(quizzes []domain.SavedQuiz) BankResponse {
	out := BankResponse{Quizzes: make([]SavedQuizSummary, 0, len(quizzes))}
	for _, q := range quizzes {
		out.Quizzes = append(out.Quizzes, SavedQuizSummary{
			ID:            q.ID,
			Topic:         q.Topic,
			QuestionCount: len(q.Questions),
			SavedAt:       q.SavedAt,
		})
	}
	return out
}

// HealthResponse is returned by GET /api/healthz
type HealthResponse struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}
