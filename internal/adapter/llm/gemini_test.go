package llm

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"edugen/internal/config"
	"edugen/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGemini(t *testing.T, handler http.HandlerFunc) *GeminiModel {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	m, err := NewGeminiModel(context.Background(), GeminiOptions{
		APIKey:      "test-key",
		Model:       "gemini-test",
		Temperature: 0.2,
		BaseURL:     srv.URL,
	})
	require.NoError(t, err)
	return m
}

func TestNewGeminiModel_Validation(t *testing.T) {
	_, err := NewGeminiModel(context.Background(), GeminiOptions{Model: "gemini-test"})
	assert.ErrorContains(t, err, "API key cannot be empty")

	_, err = NewGeminiModel(context.Background(), GeminiOptions{APIKey: "k"})
	assert.ErrorContains(t, err, "model name cannot be empty")
}

func TestGeminiModel_Generate(t *testing.T) {
	var body string
	m := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"# Lesson"}]}}]}`)
	})

	out, err := m.Generate(context.Background(), domain.TextRequest{Prompt: "teach me"})
	require.NoError(t, err)
	assert.Equal(t, "# Lesson", out)
	assert.Contains(t, body, "teach me")
	assert.NotContains(t, body, "application/json")
}

func TestGeminiModel_QuizRequestsJSON(t *testing.T) {
	var body string
	m := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"candidates":[{"content":{"role":"model","parts":[{"text":"[]"}]}}]}`)
	})

	_, err := m.Generate(context.Background(), domain.TextRequest{Prompt: "quiz", Quiz: true})
	require.NoError(t, err)
	assert.Contains(t, body, "application/json")
	assert.Contains(t, body, "correctAnswerIndex")
}

func TestGeminiModel_UpstreamError(t *testing.T) {
	m := newTestGemini(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":{"code":500,"message":"backend exploded","status":"INTERNAL"}}`)
	})

	_, err := m.Generate(context.Background(), domain.TextRequest{Prompt: "p"})
	var genErr *domain.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, domain.GenerationUpstream, genErr.Kind)
	assert.Contains(t, err.Error(), "backend exploded")
}

func TestGeminiModel_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	m, err := NewGeminiModel(context.Background(), GeminiOptions{APIKey: "k", Model: "gemini-test", BaseURL: url})
	require.NoError(t, err)

	_, err = m.Generate(context.Background(), domain.TextRequest{Prompt: "p"})
	var genErr *domain.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, domain.GenerationNetwork, genErr.Kind)
}

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), config.LLMConfig{Provider: "claude"})
	assert.ErrorContains(t, err, "unsupported LLM provider")
}
