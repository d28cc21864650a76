package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"edugen/internal/domain"
	"edugen/internal/logger"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// GeminiModel implements domain.TextModel on the Gemini API. Quiz requests are
// sent with a response schema so the service itself enforces the JSON shape.
type GeminiModel struct {
	client      *genai.Client
	model       string
	temperature float32
}

// GeminiOptions configures NewGeminiModel
type GeminiOptions struct {
	APIKey      string
	Model       string
	Temperature float64
	HTTPClient  *http.Client
	// BaseURL overrides the API endpoint; used by tests
	BaseURL string
}

// NewGeminiModel creates a Gemini-backed text model.
func NewGeminiModel(ctx context.Context, opts GeminiOptions) (*GeminiModel, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("Gemini API key cannot be empty")
	}
	if opts.Model == "" {
		return nil, fmt.Errorf("Gemini model name cannot be empty")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:     opts.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: opts.HTTPClient,
	}
	if opts.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	logger.Get().Info("Initializing Gemini text model", zap.String("model", opts.Model))
	return &GeminiModel{
		client:      client,
		model:       opts.Model,
		temperature: float32(opts.Temperature),
	}, nil
}

// Generate sends one GenerateContent request.
func (g *GeminiModel) Generate(ctx context.Context, req domain.TextRequest) (string, error) {
	l := logger.Get()

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	}
	if req.Quiz {
		cfg.ResponseMIMEType = "application/json"
		cfg.ResponseSchema = QuizResponseSchema()
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), cfg)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			l.Error("Gemini returned an error response",
				zap.Int("code", apiErr.Code),
				zap.String("status", apiErr.Status),
				zap.String("message", apiErr.Message))
			return "", domain.NewGenerationError(domain.GenerationUpstream, fmt.Errorf("%s (%d)", apiErr.Message, apiErr.Code))
		}
		l.Error("Gemini request failed", zap.Error(err))
		return "", classifyTransportError(err)
	}

	text := result.Text()
	l.Debug("Raw Gemini response received", zap.Int("length", len(text)), zap.Bool("quiz", req.Quiz))
	return text, nil
}

// QuizResponseSchema mirrors quizschema.SchemaJSON in Gemini's schema dialect.
func QuizResponseSchema() *genai.Schema {
	four := int64(domain.QuizOptionCount)
	return &genai.Schema{
		Type: genai.TypeArray,
		Items: &genai.Schema{
			Type: genai.TypeObject,
			Properties: map[string]*genai.Schema{
				"questionText": {Type: genai.TypeString, Description: "The question shown to the student"},
				"options": {
					Type:     genai.TypeArray,
					Items:    &genai.Schema{Type: genai.TypeString},
					MinItems: &four,
					MaxItems: &four,
				},
				"correctAnswerIndex": {Type: genai.TypeInteger, Description: "Zero-based index of the correct option"},
			},
			Required:         []string{"questionText", "options", "correctAnswerIndex"},
			PropertyOrdering: []string{"questionText", "options", "correctAnswerIndex"},
		},
	}
}

var _ domain.TextModel = (*GeminiModel)(nil)
