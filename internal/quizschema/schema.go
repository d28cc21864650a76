// Package quizschema holds the structured-output contract for quiz responses
// and the strict parser that turns model output into validated questions.
package quizschema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"edugen/internal/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaJSON is the JSON Schema quiz responses must satisfy. A bare array is
// the canonical form; {"questions": [...]} is accepted for providers whose JSON
// mode only emits objects.
const SchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "definitions": {
    "question": {
      "type": "object",
      "additionalProperties": false,
      "required": ["questionText", "options", "correctAnswerIndex"],
      "properties": {
        "questionText": {"type": "string", "minLength": 1},
        "options": {
          "type": "array",
          "minItems": 4,
          "maxItems": 4,
          "items": {"type": "string", "minLength": 1}
        },
        "correctAnswerIndex": {"type": "integer", "minimum": 0, "maximum": 3}
      }
    },
    "questions": {
      "type": "array",
      "minItems": 1,
      "items": {"$ref": "#/definitions/question"}
    }
  },
  "oneOf": [
    {"$ref": "#/definitions/questions"},
    {
      "type": "object",
      "additionalProperties": false,
      "required": ["questions"],
      "properties": {"questions": {"$ref": "#/definitions/questions"}}
    }
  ]
}`

var compiled = jsonschema.MustCompileString("quiz.schema.json", SchemaJSON)

// ErrEmptyResponse is returned when nothing is left after cleaning
var ErrEmptyResponse = errors.New("empty response from model")

// Parse cleans raw model output and decodes it into questions. It never returns
// a partial list: one malformed question fails the whole batch.
func Parse(raw string) ([]domain.QuizQuestion, error) {
	cleaned := Clean(raw)
	if cleaned == "" {
		return nil, ErrEmptyResponse
	}

	var generic interface{}
	if err := json.Unmarshal([]byte(cleaned), &generic); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := compiled.Validate(generic); err != nil {
		return nil, fmt.Errorf("response does not match quiz schema: %w", err)
	}

	payload := []byte(cleaned)
	if _, isObject := generic.(map[string]interface{}); isObject {
		var wrapper struct {
			Questions json.RawMessage `json:"questions"`
		}
		if err := json.Unmarshal(payload, &wrapper); err != nil {
			return nil, fmt.Errorf("invalid questions wrapper: %w", err)
		}
		payload = wrapper.Questions
	}

	var questions []domain.QuizQuestion
	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&questions); err != nil {
		return nil, fmt.Errorf("failed to decode questions: %w", err)
	}

	if err := domain.ValidateQuiz(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

// Clean strips reasoning blocks and Markdown code fences, then narrows the text
// to the longest JSON value it contains. Prose before or after the value, or
// after the closing fence, is dropped.
func Clean(raw string) string {
	s := strings.TrimSpace(raw)

	for {
		start := strings.Index(s, "<think>")
		if start == -1 {
			break
		}
		end := strings.Index(s, "</think>")
		if end == -1 || end < start {
			break
		}
		s = strings.TrimSpace(s[:start] + s[end+len("</think>"):])
	}

	s = strings.TrimSpace(unfence(s))
	if s == "" || json.Valid([]byte(s)) {
		return s
	}
	if value, ok := longestJSONValue(s); ok {
		return value
	}
	return s
}

// unfence returns the body of the first fenced block, or s when there is none.
// An unterminated fence runs to the end of the text.
func unfence(s string) string {
	open := strings.Index(s, "```")
	if open == -1 {
		return s
	}
	body := s[open+3:]
	// The rest of the opening line is the language tag
	if nl := strings.IndexByte(body, '\n'); nl != -1 {
		body = body[nl+1:]
	} else {
		body = strings.TrimLeft(body, "jsonJSON")
	}
	if end := strings.Index(body, "```"); end != -1 {
		body = body[:end]
	}
	return body
}

// longestJSONValue decodes a value at every '[' or '{' and keeps the longest
// one, so a bracketed aside such as "[1]" in the prose loses to the payload.
func longestJSONValue(s string) (string, bool) {
	best := ""
	for i := 0; i < len(s); i++ {
		if s[i] != '[' && s[i] != '{' {
			continue
		}
		var raw json.RawMessage
		if err := json.NewDecoder(strings.NewReader(s[i:])).Decode(&raw); err != nil {
			continue
		}
		if len(raw) > len(best) {
			best = string(raw)
			// Nested values start inside this one and cannot be longer
			i += len(raw) - 1
		}
	}
	return best, best != ""
}
