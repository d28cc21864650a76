package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"edugen/internal/domain"
	"edugen/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockContentGenerator struct {
	mock.Mock
}

func (m *MockContentGenerator) Generate(ctx context.Context, form domain.FormData) (*domain.GeneratedContent, error) {
	args := m.Called(ctx, form)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GeneratedContent), args.Error(1)
}

func newTestController(t *testing.T, gen domain.ContentGenerator) (*Controller, *store.QuestionBank) {
	t.Helper()
	bank := store.NewQuestionBank(store.NewMemoryKV())
	bank.Load(context.Background())
	return NewController(gen, bank), bank
}

func lessonForm(topic string) domain.FormData {
	f := domain.DefaultFormData()
	f.Subject = "Science"
	f.Topic = topic
	return f
}

func TestController_GenerateMarkdown(t *testing.T) {
	gen := new(MockContentGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return(domain.NewMarkdownContent("# Plan"), nil).Once()
	c, _ := newTestController(t, gen)

	st, err := c.Generate(context.Background(), lessonForm("Photosynthesis"))
	require.NoError(t, err)
	assert.Equal(t, PhaseReady, st.Phase)
	assert.Equal(t, "Photosynthesis", st.CurrentTopic)
	assert.Nil(t, st.Pending)

	topic, text, err := c.Markdown()
	require.NoError(t, err)
	assert.Equal(t, "Photosynthesis", topic)
	assert.Equal(t, "# Plan", text)

	_, err = c.SaveActiveQuiz(context.Background())
	assertCode(t, err, domain.CodeNoActiveQuiz)
}

func TestController_InvalidFormLeavesState(t *testing.T) {
	gen := new(MockContentGenerator)
	c, _ := newTestController(t, gen)

	st, err := c.Generate(context.Background(), lessonForm(""))
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, PhaseIdle, st.Phase)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything)
}

func TestController_RejectsWhileGenerating(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	gen := new(MockContentGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(domain.NewMarkdownContent("# Plan"), nil).Once()

	c, bank := newTestController(t, gen)
	require.NoError(t, bank.Save(context.Background(), domain.NewSavedQuiz("saved", "Algebra", questions(2), time.Now())))

	done := make(chan error, 1)
	go func() {
		_, err := c.Generate(context.Background(), lessonForm("First"))
		done <- err
	}()
	<-started

	assert.True(t, c.Snapshot().Generating())

	_, err := c.Generate(context.Background(), lessonForm("Second"))
	assertCode(t, err, domain.CodeGenerationInProgress)

	_, err = c.LoadQuiz("saved")
	assertCode(t, err, domain.CodeGenerationInProgress)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, "First", c.Snapshot().CurrentTopic)
	gen.AssertNumberOfCalls(t, "Generate", 1)
}

func TestController_FailureKeepsPreviousTopic(t *testing.T) {
	gen := new(MockContentGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).Return(domain.NewMarkdownContent("# Plan"), nil).Once()
	gen.On("Generate", mock.Anything, mock.Anything).
		Return(nil, domain.NewGenerationError(domain.GenerationUpstream, errors.New("quota exceeded"))).Once()
	c, _ := newTestController(t, gen)

	_, err := c.Generate(context.Background(), lessonForm("Photosynthesis"))
	require.NoError(t, err)

	st, err := c.Generate(context.Background(), lessonForm("Respiration"))
	require.NoError(t, err, "generation failures are reported in the state")
	assert.Equal(t, PhaseError, st.Phase)
	assert.Contains(t, st.Error, "quota exceeded")
	assert.Nil(t, st.Content)
	assert.Equal(t, "Photosynthesis", st.CurrentTopic)

	_, _, err = c.Markdown()
	assertCode(t, err, domain.CodeExportUnavailable)
}

func TestController_LoadUnknownQuiz(t *testing.T) {
	c, _ := newTestController(t, new(MockContentGenerator))
	_, err := c.LoadQuiz("missing")
	assertCode(t, err, domain.CodeSavedQuizNotFound)
}

func TestController_LoadClearsError(t *testing.T) {
	gen := new(MockContentGenerator)
	gen.On("Generate", mock.Anything, mock.Anything).
		Return(nil, domain.NewGenerationError(domain.GenerationNetwork, errors.New("offline"))).Once()
	c, _ := newTestController(t, gen)

	saved, err := c.SaveQuiz(context.Background(), "Newton's Laws", questions(3))
	require.NoError(t, err)
	_, err = c.Generate(context.Background(), lessonForm("Optics"))
	require.NoError(t, err)

	st, err := c.LoadQuiz(saved.ID)
	require.NoError(t, err)
	assert.Empty(t, st.Error)
	assert.Equal(t, PhaseReady, st.Phase)
	assert.Equal(t, saved.Questions, st.Content.Questions)
}

func TestController_SaveQuizRejectsInvalid(t *testing.T) {
	c, bank := newTestController(t, new(MockContentGenerator))
	_, err := c.SaveQuiz(context.Background(), "Empty", nil)
	assertCode(t, err, domain.CodeInvalidInput)
	assert.Empty(t, bank.List())
}

func TestController_BankNewestFirst(t *testing.T) {
	c, _ := newTestController(t, new(MockContentGenerator))
	for _, topic := range []string{"A", "B", "C"} {
		_, err := c.SaveQuiz(context.Background(), topic, questions(1))
		require.NoError(t, err)
	}
	bank := c.Bank()
	require.Len(t, bank, 3)
	assert.Equal(t, "C", bank[0].Topic)
	assert.NotEqual(t, bank[0].ID, bank[1].ID)
}

func TestState_Transitions(t *testing.T) {
	s := Initial()

	_, err := s.Succeed(domain.NewMarkdownContent("x"))
	assert.Error(t, err)
	_, err = s.Fail("x")
	assert.Error(t, err)

	gen, err := s.Submit(lessonForm("T"))
	require.NoError(t, err)
	_, err = gen.Submit(lessonForm("U"))
	var tErr *TransitionError
	assert.ErrorAs(t, err, &tErr)

	failed, err := gen.Fail("")
	require.NoError(t, err)
	assert.NotEmpty(t, failed.Error)

	again, err := failed.Submit(lessonForm("V"))
	require.NoError(t, err)
	assert.Empty(t, again.Error)
	assert.Nil(t, again.Content)
}

func assertCode(t *testing.T, err error, code domain.ErrorCode) {
	t.Helper()
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, code, domainErr.Code)
}
