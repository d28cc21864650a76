package llm

import (
	"context"
	"fmt"
	"net/http"

	"edugen/internal/domain"
	"edugen/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
	"go.uber.org/zap"
)

// objectWrapperHint is appended to quiz prompts for providers whose JSON mode
// can only return an object at the top level.
const objectWrapperHint = "\nWrap the array in a JSON object of the form {\"questions\": [...]}."

// LangchainModel adapts any langchaingo llms.Model to domain.TextModel.
type LangchainModel struct {
	llm          llms.Model
	name         string
	temperature  float64
	wrapQuizJSON bool
}

// NewLangchainModel wraps an already constructed llms.Model.
func NewLangchainModel(llm llms.Model, name string, temperature float64, wrapQuizJSON bool) (*LangchainModel, error) {
	if llm == nil {
		return nil, fmt.Errorf("LLM client cannot be nil")
	}
	return &LangchainModel{llm: llm, name: name, temperature: temperature, wrapQuizJSON: wrapQuizJSON}, nil
}

// NewOllamaModel connects to an Ollama server.
func NewOllamaModel(serverURL, model string, temperature float64, httpClient *http.Client) (*LangchainModel, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("Ollama server URL cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("Ollama model name cannot be empty")
	}
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama LLM client: %w", err)
	}
	logger.Get().Info("Initializing Ollama text model", zap.String("server_url", serverURL), zap.String("model", model))
	return NewLangchainModel(llm, "ollama/"+model, temperature, false)
}

// NewOpenAIModel talks to the OpenAI chat completions API.
func NewOpenAIModel(apiKey, model string, temperature float64, httpClient *http.Client) (*LangchainModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("OpenAI model name cannot be empty")
	}

	opts := []openai.Option{openai.WithToken(apiKey), openai.WithModel(model)}
	if httpClient != nil {
		opts = append(opts, openai.WithHTTPClient(httpClient))
	}
	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI LLM client: %w", err)
	}
	logger.Get().Info("Initializing OpenAI text model", zap.String("model", model))
	return NewLangchainModel(llm, "openai/"+model, temperature, true)
}

// Generate runs a single prompt through the wrapped model.
func (m *LangchainModel) Generate(ctx context.Context, req domain.TextRequest) (string, error) {
	prompt := req.Prompt
	options := []llms.CallOption{llms.WithTemperature(m.temperature)}
	if req.Quiz {
		options = append(options, llms.WithJSONMode())
		if m.wrapQuizJSON {
			prompt += objectWrapperHint
		}
	}

	resp, err := llms.GenerateFromSinglePrompt(ctx, m.llm, prompt, options...)
	if err != nil {
		logger.Get().Error("LLM call failed", zap.String("model", m.name), zap.Error(err))
		return "", classifyTransportError(err)
	}
	logger.Get().Debug("Raw LLM response received", zap.String("model", m.name), zap.Int("length", len(resp)))
	return resp, nil
}

var _ domain.TextModel = (*LangchainModel)(nil)
