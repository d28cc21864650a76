package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"edugen/internal/domain"
	"edugen/internal/logger"
	"edugen/internal/prompt"
	"edugen/internal/quizschema"

	"go.uber.org/zap"
)

// ContentService is the content generation gateway: one prompt, one upstream
// call, one parsed result.
type ContentService struct {
	model   domain.TextModel
	opts    prompt.Options
	timeout time.Duration
}

// NewContentService creates a gateway over model. A zero timeout leaves the
// upstream call unbounded.
func NewContentService(model domain.TextModel, quizQuestions int, timeout time.Duration) *ContentService {
	return &ContentService{
		model:   model,
		opts:    prompt.Options{QuizQuestions: quizQuestions},
		timeout: timeout,
	}
}

// Generate validates the form, issues exactly one model call and parses the
// response into markdown or quiz content. Every failure after validation is a
// *domain.GenerationError.
func (s *ContentService) Generate(ctx context.Context, form domain.FormData) (*domain.GeneratedContent, error) {
	form = form.Normalize()
	if errs := form.Validate(); len(errs) > 0 {
		return nil, errs
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	kind := form.RequestType.ContentKind()
	req := domain.TextRequest{
		Prompt: prompt.Build(form, s.opts),
		Quiz:   kind == domain.ContentQuiz,
	}

	l := logger.Get().With(
		zap.String("requestType", string(form.RequestType)),
		zap.String("topic", form.Topic),
	)
	start := time.Now()

	raw, err := s.model.Generate(ctx, req)
	if err != nil {
		l.Warn("Content generation failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		var genErr *domain.GenerationError
		if errors.As(err, &genErr) {
			return nil, genErr
		}
		return nil, domain.NewGenerationError(domain.GenerationUpstream, err)
	}

	if kind == domain.ContentQuiz {
		questions, err := quizschema.Parse(raw)
		if err != nil {
			l.Warn("Quiz response rejected", zap.Error(err), zap.Int("responseLength", len(raw)))
			return nil, domain.NewGenerationError(domain.GenerationMalformed, err)
		}
		l.Info("Quiz generated", zap.Int("questions", len(questions)), zap.Duration("elapsed", time.Since(start)))
		return domain.NewQuizContent(questions), nil
	}

	if strings.TrimSpace(raw) == "" {
		l.Warn("Empty markdown response")
		return nil, domain.NewGenerationError(domain.GenerationMalformed, quizschema.ErrEmptyResponse)
	}
	l.Info("Markdown content generated", zap.Int("length", len(raw)), zap.Duration("elapsed", time.Since(start)))
	return domain.NewMarkdownContent(raw), nil
}

var _ domain.ContentGenerator = (*ContentService)(nil)
