package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"edugen/internal/attempt"
	"edugen/internal/domain"
	"edugen/internal/logger"
	"edugen/internal/util"

	"go.uber.org/zap"
)

// QuestionBank is the persistence the controller needs.
type QuestionBank interface {
	domain.PersistenceStore
	NewestFirst() []domain.SavedQuiz
}

// Controller owns the application state. The lock is never held while the
// generator runs, and Submit refuses a second generation, so at most one
// upstream call is in flight.
type Controller struct {
	generator domain.ContentGenerator
	bank      QuestionBank

	now   func() time.Time
	newID func() string

	mu    sync.Mutex
	state State
}

// Option customises a Controller
type Option func(*Controller)

// WithClock overrides the time source used for SavedAt
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithIDGenerator overrides SavedQuiz id generation
func WithIDGenerator(newID func() string) Option {
	return func(c *Controller) { c.newID = newID }
}

func NewController(generator domain.ContentGenerator, bank QuestionBank, opts ...Option) *Controller {
	c := &Controller{
		generator: generator,
		bank:      bank,
		now:       time.Now,
		newID:     util.NewULID,
		state:     Initial(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Generate submits form and blocks until the generator answers. A generation
// failure is not returned as an error: it is recorded in the returned state.
// Errors are returned only for rejected submissions.
func (c *Controller) Generate(ctx context.Context, form domain.FormData) (State, error) {
	form = form.Normalize()
	if errs := form.Validate(); len(errs) > 0 {
		return c.Snapshot(), errs
	}

	c.mu.Lock()
	next, err := c.state.Submit(form)
	if err != nil {
		c.mu.Unlock()
		return next, domain.NewGenerationInProgressError()
	}
	c.state = next
	c.mu.Unlock()

	l := logger.Get().With(zap.String("topic", form.Topic), zap.String("requestType", string(form.RequestType)))
	l.Info("Generation started")

	content, genErr := c.generator.Generate(ctx, form)

	c.mu.Lock()
	defer c.mu.Unlock()
	if genErr != nil {
		l.Warn("Generation failed", zap.Error(genErr))
		c.state, _ = c.state.Fail(genErr.Error())
		return c.state, nil
	}
	c.state, _ = c.state.Succeed(content)
	l.Info("Generation finished", zap.String("kind", string(content.Kind)))
	return c.state, nil
}

// SaveActiveQuiz stores the quiz on screen under the current topic.
func (c *Controller) SaveActiveQuiz(ctx context.Context) (domain.SavedQuiz, error) {
	st := c.Snapshot()
	questions, ok := st.ActiveQuiz()
	if !ok {
		return domain.SavedQuiz{}, domain.NewNoActiveQuizError()
	}
	return c.SaveQuiz(ctx, st.CurrentTopic, questions)
}

// SaveQuiz stores questions as a new Question Bank entry.
func (c *Controller) SaveQuiz(ctx context.Context, topic string, questions []domain.QuizQuestion) (domain.SavedQuiz, error) {
	if err := domain.ValidateQuiz(questions); err != nil {
		return domain.SavedQuiz{}, domain.NewInvalidInputError(err.Error())
	}
	quiz := domain.NewSavedQuiz(c.newID(), topic, questions, c.now())
	if err := c.bank.Save(ctx, quiz); err != nil {
		return domain.SavedQuiz{}, err
	}
	return quiz, nil
}

// LoadQuiz puts a saved quiz on screen without calling the generator.
func (c *Controller) LoadQuiz(id string) (State, error) {
	quiz, found := c.bank.Find(id)
	if !found {
		return c.Snapshot(), domain.NewSavedQuizNotFoundError(id)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	next, err := c.state.LoadSaved(quiz)
	if err != nil {
		var tErr *TransitionError
		if errors.As(err, &tErr) {
			return c.state, domain.NewGenerationInProgressError()
		}
		return c.state, err
	}
	c.state = next
	logger.Get().Info("Saved quiz loaded", zap.String("id", id), zap.String("topic", quiz.Topic))
	return c.state, nil
}

// DeleteQuiz removes a saved quiz. The content on screen is left alone.
func (c *Controller) DeleteQuiz(ctx context.Context, id string) error {
	return c.bank.Delete(ctx, id)
}

// Bank lists saved quizzes newest first.
func (c *Controller) Bank() []domain.SavedQuiz {
	return c.bank.NewestFirst()
}

// Score grades selections against the quiz on screen.
func (c *Controller) Score(selections []int) (attempt.Score, error) {
	questions, ok := c.Snapshot().ActiveQuiz()
	if !ok {
		return attempt.Score{}, domain.NewNoActiveQuizError()
	}
	return attempt.ScoreSelections(questions, selections)
}

// Markdown returns the markdown on screen and its topic for export.
func (c *Controller) Markdown() (topic, text string, err error) {
	st := c.Snapshot()
	text, ok := st.ActiveMarkdown()
	if !ok {
		return "", "", domain.NewExportUnavailableError()
	}
	return st.CurrentTopic, text, nil
}
