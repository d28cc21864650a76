// Package app holds the application state machine and the controller that
// drives it from user actions.
package app

import (
	"fmt"

	"edugen/internal/domain"
)

// Phase of the content pane
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseGenerating Phase = "generating"
	PhaseReady      Phase = "ready"
	PhaseError      Phase = "error"
)

// State is an immutable snapshot; every transition returns a new value.
type State struct {
	Phase   Phase                    `json:"phase"`
	Content *domain.GeneratedContent `json:"content,omitempty"`
	Error   string                   `json:"error,omitempty"`
	// CurrentTopic names the content on screen; it is what "save" and export use
	CurrentTopic string `json:"currentTopic"`
	// Pending is the form of the request in flight
	Pending *domain.FormData `json:"pending,omitempty"`
}

// TransitionError reports an action that is not allowed in the current phase.
type TransitionError struct {
	Action string
	From   Phase
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Action, e.From)
}

func Initial() State {
	return State{Phase: PhaseIdle}
}

func (s State) Generating() bool { return s.Phase == PhaseGenerating }

// ActiveQuiz returns the quiz on screen, if any.
func (s State) ActiveQuiz() ([]domain.QuizQuestion, bool) {
	if s.Phase != PhaseReady || s.Content == nil || !s.Content.IsQuiz() {
		return nil, false
	}
	return s.Content.Questions, true
}

// ActiveMarkdown returns the markdown on screen, if any.
func (s State) ActiveMarkdown() (string, bool) {
	if s.Phase != PhaseReady || s.Content == nil || !s.Content.IsMarkdown() {
		return "", false
	}
	return s.Content.Text, true
}

// Submit starts a generation. Content and error are cleared; the current
// topic is kept until the new content arrives.
func (s State) Submit(form domain.FormData) (State, error) {
	if s.Generating() {
		return s, &TransitionError{Action: "submit", From: s.Phase}
	}
	pending := form
	return State{
		Phase:        PhaseGenerating,
		CurrentTopic: s.CurrentTopic,
		Pending:      &pending,
	}, nil
}

// Succeed shows content and makes the submitted topic current.
func (s State) Succeed(content *domain.GeneratedContent) (State, error) {
	if !s.Generating() {
		return s, &TransitionError{Action: "complete generation", From: s.Phase}
	}
	topic := s.CurrentTopic
	if s.Pending != nil {
		topic = s.Pending.Topic
	}
	return State{Phase: PhaseReady, Content: content, CurrentTopic: topic}, nil
}

// Fail records message; there is no content afterwards.
func (s State) Fail(message string) (State, error) {
	if !s.Generating() {
		return s, &TransitionError{Action: "fail generation", From: s.Phase}
	}
	if message == "" {
		message = "An unknown error occurred."
	}
	return State{Phase: PhaseError, Error: message, CurrentTopic: s.CurrentTopic}, nil
}

// LoadSaved shows a saved quiz without calling the generator.
func (s State) LoadSaved(quiz domain.SavedQuiz) (State, error) {
	if s.Generating() {
		return s, &TransitionError{Action: "load a saved quiz", From: s.Phase}
	}
	return State{
		Phase:        PhaseReady,
		Content:      domain.NewQuizContent(quiz.Questions),
		CurrentTopic: quiz.Topic,
	}, nil
}
