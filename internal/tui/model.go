// Package tui is the terminal front end. It drives the same app.Controller as
// the HTTP API.
package tui

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"edugen/internal/app"
	"edugen/internal/domain"
	"edugen/internal/export"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type screen int

const (
	screenForm screen = iota
	screenGenerating
	screenResult
	screenBank
)

// Options configures the terminal UI.
type Options struct {
	NoColor bool
	// ExportDir receives exported markdown files; defaults to the working directory
	ExportDir string
}

// Model is the Bubble Tea model for the whole application.
type Model struct {
	ctx        context.Context
	controller *app.Controller
	exportDir  string
	noColor    bool

	screen   screen
	back     screen
	state    app.State
	form     form
	spinner  spinner.Model
	viewport viewport.Model
	quiz     quizView
	bank     table.Model
	bankIDs  []string
	status   string
	width    int
	height   int
}

// NewModel builds a model showing the empty form.
func NewModel(ctx context.Context, controller *app.Controller, opts Options) Model {
	dir := opts.ExportDir
	if dir == "" {
		dir = "."
	}
	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	return Model{
		ctx:        ctx,
		controller: controller,
		exportDir:  dir,
		noColor:    opts.NoColor,
		screen:     screenForm,
		state:      controller.Snapshot(),
		form:       newForm(domain.DefaultFormData()),
		spinner:    sp,
		viewport:   viewport.New(80, 20),
		bank:       newBankTable(opts.NoColor),
		width:      80,
		height:     24,
	}
}

// generatedMsg carries the controller state after a generation finishes.
type generatedMsg struct {
	state app.State
	err   error
}

type savedMsg struct {
	quiz domain.SavedQuiz
	err  error
}

type deletedMsg struct {
	id  string
	err error
}

type exportedMsg struct {
	path string
	err  error
}

func (m Model) Init() tea.Cmd {
	return nil
}

// Update routes keys to the active screen and applies command results.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = typed.Width, typed.Height
		m.viewport.Width = typed.Width
		m.viewport.Height = max(typed.Height-6, 3)
		m.bank.SetColumns(bankColumns(typed.Width))
		m.bank.SetHeight(max(typed.Height-6, 3))
		if text, ok := m.state.ActiveMarkdown(); ok {
			m.viewport.SetContent(wrap(text, m.viewport.Width))
		}
		return m, nil
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.screen {
		case screenForm:
			return m.updateForm(typed)
		case screenResult:
			return m.updateResult(typed)
		case screenBank:
			return m.updateBank(typed)
		}
		return m, nil
	case generatedMsg:
		return m.applyState(typed.state, typed.err), nil
	case savedMsg:
		if typed.err != nil {
			m.status = "Save failed: " + typed.err.Error()
			return m, nil
		}
		m.quiz.saved = true
		m.status = fmt.Sprintf("Saved %q to the Question Bank", typed.quiz.Topic)
		return m, nil
	case deletedMsg:
		if typed.err != nil {
			m.status = "Delete failed: " + typed.err.Error()
		} else {
			m.status = "Deleted saved quiz"
		}
		return m.refreshBank(), nil
	case exportedMsg:
		if typed.err != nil {
			m.status = "Export failed: " + typed.err.Error()
		} else {
			m.status = "Exported to " + typed.path
		}
		return m, nil
	case spinner.TickMsg:
		if m.screen != screenGenerating {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	}

	if m.screen == screenForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateForm(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch key.String() {
	case "tab", "down":
		m.form, cmd = m.form.move(1)
		return m, cmd
	case "shift+tab", "up":
		m.form, cmd = m.form.move(-1)
		return m, cmd
	case "left":
		if !m.form.focusedIsText() {
			m.form = m.form.cycle(-1)
			return m, nil
		}
	case "right":
		if !m.form.focusedIsText() {
			m.form = m.form.cycle(1)
			return m, nil
		}
	case "enter":
		return m.submit()
	case "ctrl+b":
		return m.openBank(), nil
	case "esc":
		if m.state.Phase == app.PhaseReady || m.state.Phase == app.PhaseError {
			m.screen = screenResult
			return m, nil
		}
	}
	m.form, cmd = m.form.update(key)
	return m, cmd
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	data := m.form.data().Normalize()
	if errs := data.Validate(); len(errs) > 0 {
		m.status = errs.Error()
		return m, nil
	}
	m.status = ""
	m.screen = screenGenerating
	return m, tea.Batch(m.spinner.Tick, generate(m.ctx, m.controller, data))
}

func (m Model) updateResult(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.screen = screenForm
		m.status = ""
		return m, nil
	case "ctrl+b":
		return m.openBank(), nil
	}

	if m.state.Phase == app.PhaseError {
		if key.String() == "enter" {
			return m.submit()
		}
		return m, nil
	}
	if _, ok := m.state.ActiveQuiz(); ok {
		return m.updateQuiz(key)
	}

	switch key.String() {
	case "m":
		return m, exportContent(m.controller, m.exportDir, export.FormatMarkdown)
	case "t":
		return m, exportContent(m.controller, m.exportDir, export.FormatText)
	case "p":
		return m, exportContent(m.controller, m.exportDir, export.FormatPDF)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(key)
	return m, cmd
}

func (m Model) updateQuiz(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "up", "k":
		m.quiz = m.quiz.moveCursor(-1)
	case "down", "j":
		m.quiz = m.quiz.moveCursor(1)
	case "enter":
		m.quiz = m.quiz.submit()
		m.status = ""
	case "s":
		if m.quiz.saved {
			m.status = "Already saved"
			return m, nil
		}
		return m, saveQuiz(m.ctx, m.controller)
	default:
		if option, ok := optionIndex(key.String()); ok {
			var err error
			m.quiz, err = m.quiz.choose(option)
			m.status = ""
			if err != nil {
				m.status = err.Error()
			}
		}
	}
	return m, nil
}

func (m Model) openBank() Model {
	if m.screen != screenBank {
		m.back = m.screen
	}
	m.screen = screenBank
	m.status = ""
	return m.refreshBank()
}

func (m Model) refreshBank() Model {
	quizzes := m.controller.Bank()
	m.bankIDs = make([]string, len(quizzes))
	for i, q := range quizzes {
		m.bankIDs[i] = q.ID
	}
	m.bank.SetRows(bankRows(quizzes))
	if m.bank.Cursor() >= len(quizzes) {
		m.bank.SetCursor(max(len(quizzes)-1, 0))
	}
	return m
}

func (m Model) selectedQuizID() (string, bool) {
	i := m.bank.Cursor()
	if i < 0 || i >= len(m.bankIDs) {
		return "", false
	}
	return m.bankIDs[i], true
}

func (m Model) updateBank(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "esc":
		m.screen = m.back
		m.status = ""
		return m, nil
	case "enter":
		id, ok := m.selectedQuizID()
		if !ok {
			return m, nil
		}
		st, err := m.controller.LoadQuiz(id)
		return m.applyState(st, err), nil
	case "d", "delete":
		id, ok := m.selectedQuizID()
		if !ok {
			return m, nil
		}
		return m, deleteQuiz(m.ctx, m.controller, id)
	}
	var cmd tea.Cmd
	m.bank, cmd = m.bank.Update(key)
	return m, cmd
}

// applyState moves to the screen matching st. A rejected action keeps the
// current screen and shows err.
func (m Model) applyState(st app.State, err error) Model {
	if err != nil {
		var verrs domain.ValidationErrors
		if errors.As(err, &verrs) {
			m.screen = screenForm
		}
		m.status = err.Error()
		return m
	}

	m.state = st
	switch st.Phase {
	case app.PhaseReady:
		m.status = ""
		if questions, ok := st.ActiveQuiz(); ok {
			m.quiz = newQuizView(questions)
		} else if text, ok := st.ActiveMarkdown(); ok {
			m.viewport.SetContent(wrap(text, m.viewport.Width))
			m.viewport.GotoTop()
		}
		m.screen = screenResult
	case app.PhaseError:
		m.screen = screenResult
	default:
		m.screen = screenForm
	}
	return m
}

func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}

func generate(ctx context.Context, c *app.Controller, form domain.FormData) tea.Cmd {
	return func() tea.Msg {
		st, err := c.Generate(ctx, form)
		return generatedMsg{state: st, err: err}
	}
}

func saveQuiz(ctx context.Context, c *app.Controller) tea.Cmd {
	return func() tea.Msg {
		quiz, err := c.SaveActiveQuiz(ctx)
		return savedMsg{quiz: quiz, err: err}
	}
}

func deleteQuiz(ctx context.Context, c *app.Controller, id string) tea.Cmd {
	return func() tea.Msg {
		return deletedMsg{id: id, err: c.DeleteQuiz(ctx, id)}
	}
}

// exportContent writes the markdown on screen to dir in format f.
func exportContent(c *app.Controller, dir string, f export.Format) tea.Cmd {
	return func() tea.Msg {
		topic, md, err := c.Markdown()
		if err != nil {
			return exportedMsg{err: err}
		}
		var buf bytes.Buffer
		if err := export.Write(&buf, f, topic, md); err != nil {
			return exportedMsg{err: err}
		}
		path := filepath.Join(dir, export.Filename(topic, f))
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return exportedMsg{err: fmt.Errorf("failed to write %s: %w", path, err)}
		}
		return exportedMsg{path: path}
	}
}

// View renders the active screen with a title bar and a key help footer.
func (m Model) View() string {
	header := stylize(bold("AI Teacher Assistant", m.noColor), m.noColor, colorTitle)
	var body, help string

	switch m.screen {
	case screenForm:
		body = m.form.view(m.noColor)
		help = "tab/↑↓ move • ←→ change • enter generate • ctrl+b question bank • ctrl+c quit"
	case screenGenerating:
		body = m.spinner.View() + " Generating " + m.form.data().RequestType.Label() + "..."
		help = "ctrl+c quit"
	case screenResult:
		body, help = m.resultView()
	case screenBank:
		if len(m.bankIDs) == 0 {
			body = stylize("Your Question Bank is empty. Save an interactive quiz to see it here.", m.noColor, colorMuted)
		} else {
			body = m.bank.View()
		}
		help = "↑↓ select • enter load • d delete • esc back"
	}

	parts := []string{header, ""}
	if m.state.CurrentTopic != "" && m.screen == screenResult {
		parts = append(parts, stylize("Topic: "+m.state.CurrentTopic, m.noColor, colorMuted))
	}
	parts = append(parts, body)
	if m.status != "" {
		parts = append(parts, stylize(m.status, m.noColor, colorError))
	}
	parts = append(parts, stylize(help, m.noColor, colorMuted))
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) resultView() (string, string) {
	if m.state.Phase == app.PhaseError {
		return stylize("Error: "+m.state.Error, m.noColor, colorError),
			"enter retry • esc edit form • ctrl+b question bank"
	}
	if _, ok := m.state.ActiveQuiz(); ok {
		return m.quiz.view(m.noColor),
			"↑↓ question • 1-4 answer • enter submit • s save • esc form • ctrl+b bank"
	}
	return m.viewport.View(),
		"↑↓ scroll • m export .md • t export .txt • p export .pdf • esc form • ctrl+b bank"
}
