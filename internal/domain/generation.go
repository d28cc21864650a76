package domain

import (
	"context"
	"errors"
	"fmt"
)

// GenerationErrorKind classifies why a generation call failed
type GenerationErrorKind string

const (
	// GenerationNetwork means the upstream service could not be reached
	GenerationNetwork GenerationErrorKind = "network"
	// GenerationUpstream means the service answered with an error status
	GenerationUpstream GenerationErrorKind = "upstream"
	// GenerationMalformed means the response could not be parsed into the expected shape
	GenerationMalformed GenerationErrorKind = "malformed"
)

// GenerationError is the single failure type of the content generation gateway
type GenerationError struct {
	Kind  GenerationErrorKind
	Cause error
}

func (e *GenerationError) Error() string {
	var prefix string
	switch e.Kind {
	case GenerationNetwork:
		prefix = "Could not reach the content generation service"
	case GenerationUpstream:
		prefix = "The content generation service returned an error"
	case GenerationMalformed:
		prefix = "The generated content was not in the expected format"
	default:
		prefix = "Failed to generate content"
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", prefix, e.Cause)
	}
	return prefix
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

func NewGenerationError(kind GenerationErrorKind, cause error) *GenerationError {
	return &GenerationError{Kind: kind, Cause: cause}
}

// IsGenerationError reports whether err is (or wraps) a GenerationError
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}

// TextRequest is what the gateway hands to a text model
type TextRequest struct {
	Prompt string
	// Quiz asks the model for JSON matching the quiz schema
	Quiz bool
}

// TextModel is the port for a hosted generative-text service. Implementations
// make exactly one upstream call per Generate and return *GenerationError on
// failure.
type TextModel interface {
	Generate(ctx context.Context, req TextRequest) (string, error)
}

// ContentGenerator builds a prompt from a form, calls the model once and
// returns the parsed content.
type ContentGenerator interface {
	Generate(ctx context.Context, form FormData) (*GeneratedContent, error)
}
