package tui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"edugen/internal/app"
	"edugen/internal/domain"
	"edugen/internal/store"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedGenerator struct {
	content *domain.GeneratedContent
	err     error
}

func (g fixedGenerator) Generate(ctx context.Context, form domain.FormData) (*domain.GeneratedContent, error) {
	return g.content, g.err
}

func twoQuestions() []domain.QuizQuestion {
	return []domain.QuizQuestion{
		{QuestionText: "Which gas do plants absorb?", Options: []string{"CO2", "O2", "N2", "H2"}, CorrectAnswerIndex: 0},
		{QuestionText: "Where does photosynthesis happen?", Options: []string{"Root", "Chloroplast", "Stem", "Seed"}, CorrectAnswerIndex: 1},
	}
}

func newTestModel(t *testing.T, gen domain.ContentGenerator) (Model, *app.Controller) {
	t.Helper()
	bank := store.NewQuestionBank(store.NewMemoryKV())
	bank.Load(context.Background())
	c := app.NewController(gen, bank)
	return NewModel(context.Background(), c, Options{NoColor: true, ExportDir: t.TempDir()}), c
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func key(k tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: k} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func fillForm(m Model, requestType domain.RequestType) Model {
	defaults := domain.DefaultFormData()
	defaults.Subject = "Science"
	defaults.Topic = "Photosynthesis"
	defaults.RequestType = requestType
	m.form = newForm(defaults)
	return m
}

// generateWith submits the form and feeds the generation result back in.
func generateWith(t *testing.T, m Model, c *app.Controller) Model {
	t.Helper()
	m, cmd := send(m, key(tea.KeyEnter))
	require.NotNil(t, cmd)
	require.Equal(t, screenGenerating, m.screen)
	assert.Contains(t, m.View(), "Generating")

	m, _ = send(m, generate(context.Background(), c, m.form.data().Normalize())())
	return m
}

func TestModel_GenerateMarkdown(t *testing.T) {
	m, c := newTestModel(t, fixedGenerator{content: domain.NewMarkdownContent("# Lesson Plan\n\nObjectives")})
	m = generateWith(t, fillForm(m, domain.RequestLessonPlan), c)

	assert.Equal(t, screenResult, m.screen)
	view := m.View()
	assert.Contains(t, view, "Topic: Photosynthesis")
	assert.Contains(t, view, "Lesson Plan")
	assert.Contains(t, view, "export .md")
}

func TestModel_InvalidFormStaysOnForm(t *testing.T) {
	m, _ := newTestModel(t, fixedGenerator{})

	m, cmd := send(m, key(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, screenForm, m.screen)
	assert.Contains(t, m.status, "topic")
	assert.Contains(t, m.View(), "Subject")
}

func TestModel_GenerationFailureShowsBanner(t *testing.T) {
	gen := fixedGenerator{err: domain.NewGenerationError(domain.GenerationNetwork, errors.New("dial tcp"))}
	m, c := newTestModel(t, gen)
	m = generateWith(t, fillForm(m, domain.RequestWorksheet), c)

	assert.Equal(t, screenResult, m.screen)
	assert.Equal(t, app.PhaseError, m.state.Phase)
	assert.Contains(t, m.View(), "Error: ")
	assert.Contains(t, m.View(), "enter retry")
}

func TestModel_QuizAnswerScoreAndSave(t *testing.T) {
	m, c := newTestModel(t, fixedGenerator{content: domain.NewQuizContent(twoQuestions())})
	m = generateWith(t, fillForm(m, domain.RequestInteractiveQuiz), c)
	require.Equal(t, screenResult, m.screen)

	m, _ = send(m, runes("a"))
	assert.Equal(t, 1, m.quiz.cursor)
	m, _ = send(m, runes("1"))
	assert.Contains(t, m.View(), "Answered 2 of 2")

	m, _ = send(m, key(tea.KeyEnter))
	require.NotNil(t, m.quiz.score)
	assert.Equal(t, "1/2", m.quiz.score.String())
	assert.Contains(t, m.View(), "Score: 1/2")

	m, cmd := send(m, runes("s"))
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())
	assert.True(t, m.quiz.saved)
	assert.Contains(t, m.status, "Photosynthesis")

	bank := c.Bank()
	require.Len(t, bank, 1)
	assert.Equal(t, "Photosynthesis", bank[0].Topic)

	_, cmd = send(m, runes("s"))
	assert.Nil(t, cmd)
}

func TestModel_AnsweredQuestionLocks(t *testing.T) {
	m, c := newTestModel(t, fixedGenerator{content: domain.NewQuizContent(twoQuestions())})
	m = generateWith(t, fillForm(m, domain.RequestQuiz), c)

	m, _ = send(m, runes("b"))
	m, _ = send(m, key(tea.KeyUp))
	m, _ = send(m, runes("a"))

	assert.Contains(t, m.status, "already answered")
	assert.Equal(t, 1, m.quiz.attempt.Selection(0))
}

func TestModel_BoardPaperFieldsToggle(t *testing.T) {
	m, _ := newTestModel(t, fixedGenerator{})
	assert.NotContains(t, m.View(), "Exam type")

	for m.form.fields[m.form.focus].key != "requestType" {
		m, _ = send(m, key(tea.KeyTab))
	}
	for m.form.value("requestType") != string(domain.RequestBoardQuestionPaper) {
		m, _ = send(m, key(tea.KeyRight))
	}
	view := m.View()
	assert.Contains(t, view, "Year")
	assert.Contains(t, view, "Exam type")

	data := m.form.data()
	assert.Equal(t, domain.ExamTypes[0], data.ExamType)
}

func TestModel_FormTyping(t *testing.T) {
	m, _ := newTestModel(t, fixedGenerator{})
	for m.form.fields[m.form.focus].key != "topic" {
		m, _ = send(m, key(tea.KeyTab))
	}
	m, _ = send(m, runes("Fractions"))
	assert.Equal(t, "Fractions", m.form.data().Topic)
}

func TestModel_BankLoadAndDelete(t *testing.T) {
	m, c := newTestModel(t, fixedGenerator{})
	_, err := c.SaveQuiz(context.Background(), "Cells", twoQuestions())
	require.NoError(t, err)

	m, _ = send(m, key(tea.KeyCtrlB))
	assert.Equal(t, screenBank, m.screen)
	require.Len(t, m.bankIDs, 1)
	assert.Contains(t, m.View(), "Cells")

	m, _ = send(m, key(tea.KeyEnter))
	assert.Equal(t, screenResult, m.screen)
	assert.Equal(t, "Cells", m.state.CurrentTopic)
	assert.Equal(t, 2, m.quiz.attempt.Len())

	m, _ = send(m, key(tea.KeyCtrlB))
	m, cmd := send(m, runes("d"))
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())
	assert.Empty(t, m.bankIDs)
	assert.Empty(t, c.Bank())
	assert.Contains(t, m.View(), "Question Bank is empty")

	m, _ = send(m, key(tea.KeyEsc))
	assert.Equal(t, screenResult, m.screen)
}

func TestModel_ExportMarkdown(t *testing.T) {
	m, c := newTestModel(t, fixedGenerator{content: domain.NewMarkdownContent("# Worksheet\n\n1. Label the leaf")})
	m = generateWith(t, fillForm(m, domain.RequestWorksheet), c)

	m, cmd := send(m, runes("m"))
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())
	require.Contains(t, m.status, "Exported to ")

	path := filepath.Join(m.exportDir, "photosynthesis.md")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "Label the leaf")
}

func TestModel_ExportPDFRefusedLeavesNoFile(t *testing.T) {
	m, c := newTestModel(t, fixedGenerator{content: domain.NewMarkdownContent("# कार्यपत्रक\n\n1. पत्ती के भाग लिखिए")})
	m = generateWith(t, fillForm(m, domain.RequestWorksheet), c)

	m, cmd := send(m, runes("p"))
	require.NotNil(t, cmd)
	m, _ = send(m, cmd())
	assert.Contains(t, m.status, "Export failed")
	assert.Contains(t, m.status, "Latin-script")

	_, err := os.Stat(filepath.Join(m.exportDir, "photosynthesis.pdf"))
	assert.True(t, os.IsNotExist(err))
}

func TestModel_WindowResize(t *testing.T) {
	m, _ := newTestModel(t, fixedGenerator{})
	m, _ = send(m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.viewport.Width)
	assert.Equal(t, 34, m.viewport.Height)
}
