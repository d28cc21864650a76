package tui

import (
	"fmt"
	"slices"
	"strings"

	"edugen/internal/domain"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

type fieldKind int

const (
	choiceField fieldKind = iota
	textField
)

// formField is one row of the generation form. Choice fields cycle through
// values, text fields wrap a textinput.
type formField struct {
	key      string
	label    string
	kind     fieldKind
	values   []string
	labels   []string
	selected int
	input    textinput.Model
	// boardPaperOnly fields are hidden unless a board paper is requested
	boardPaperOnly bool
}

func (f formField) value() string {
	if f.kind == textField {
		return f.input.Value()
	}
	if len(f.values) == 0 {
		return ""
	}
	return f.values[f.selected]
}

func (f formField) display() string {
	if f.kind == textField {
		return f.input.View()
	}
	return "< " + f.labels[f.selected] + " >"
}

type form struct {
	fields []formField
	focus  int
}

func choice(key, label string, values, labels []string, current string) formField {
	if labels == nil {
		labels = values
	}
	return formField{
		key:      key,
		label:    label,
		kind:     choiceField,
		values:   values,
		labels:   labels,
		selected: max(slices.Index(values, current), 0),
	}
}

func entry(key, label, placeholder, current string, limit int) formField {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	in.Prompt = ""
	in.SetValue(current)
	return formField{key: key, label: label, kind: textField, input: in}
}

func newForm(defaults domain.FormData) form {
	var boards, requestCodes, requestLabels, langCodes, langLabels, diffCodes, diffLabels []string
	for _, b := range domain.Boards {
		boards = append(boards, string(b))
	}
	for _, r := range domain.RequestTypes {
		requestCodes = append(requestCodes, string(r))
		requestLabels = append(requestLabels, r.Label())
	}
	for _, l := range domain.Languages {
		langCodes = append(langCodes, string(l))
		langLabels = append(langLabels, l.Label())
	}
	for _, d := range domain.Difficulties {
		diffCodes = append(diffCodes, string(d))
		diffLabels = append(diffLabels, d.Label())
	}

	year := entry("year", "Year", "e.g. 2023", defaults.Year, 4)
	year.boardPaperOnly = true
	examType := choice("examType", "Exam type", domain.ExamTypes, nil, defaults.ExamType)
	examType.boardPaperOnly = true

	return form{fields: []formField{
		choice("board", "Board", boards, nil, string(defaults.Board)),
		choice("classLevel", "Class", domain.ClassLevels, nil, defaults.ClassLevel),
		entry("subject", "Subject", "e.g. Science", defaults.Subject, domain.MaxSubjectLength),
		entry("topic", "Topic", "e.g. Photosynthesis", defaults.Topic, domain.MaxTopicLength),
		choice("requestType", "Material", requestCodes, requestLabels, string(defaults.RequestType)),
		choice("language", "Language", langCodes, langLabels, string(defaults.Language)),
		choice("difficulty", "Difficulty", diffCodes, diffLabels, string(defaults.Difficulty)),
		year,
		examType,
	}}
}

func (f form) value(key string) string {
	for _, field := range f.fields {
		if field.key == key {
			return field.value()
		}
	}
	return ""
}

func (f form) visible(i int) bool {
	return !f.fields[i].boardPaperOnly || f.value("requestType") == string(domain.RequestBoardQuestionPaper)
}

// data collects the form into FormData. Validation is left to the caller.
func (f form) data() domain.FormData {
	return domain.FormData{
		Board:       domain.Board(f.value("board")),
		ClassLevel:  f.value("classLevel"),
		Subject:     f.value("subject"),
		Topic:       f.value("topic"),
		RequestType: domain.RequestType(f.value("requestType")),
		Language:    domain.Language(f.value("language")),
		Difficulty:  domain.Difficulty(f.value("difficulty")),
		Year:        f.value("year"),
		ExamType:    f.value("examType"),
	}
}

// move shifts focus by delta, skipping hidden fields.
func (f form) move(delta int) (form, tea.Cmd) {
	n := len(f.fields)
	next := f.focus
	for range n {
		next = (next + delta + n) % n
		if f.visible(next) {
			break
		}
	}
	return f.focusOn(next)
}

func (f form) focusOn(i int) (form, tea.Cmd) {
	f.fields = slices.Clone(f.fields)
	if f.fields[f.focus].kind == textField {
		f.fields[f.focus].input.Blur()
	}
	f.focus = i
	if f.fields[i].kind == textField {
		return f, f.fields[i].input.Focus()
	}
	return f, nil
}

// cycle changes the focused choice field by delta, wrapping around.
func (f form) cycle(delta int) form {
	field := f.fields[f.focus]
	if field.kind != choiceField {
		return f
	}
	n := len(field.values)
	field.selected = (field.selected + delta + n) % n
	f.fields = slices.Clone(f.fields)
	f.fields[f.focus] = field
	return f
}

func (f form) focusedIsText() bool {
	return f.fields[f.focus].kind == textField
}

func (f form) update(msg tea.Msg) (form, tea.Cmd) {
	if !f.focusedIsText() {
		return f, nil
	}
	f.fields = slices.Clone(f.fields)
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return f, cmd
}

func (f form) view(noColor bool) string {
	var b strings.Builder
	for i, field := range f.fields {
		if !f.visible(i) {
			continue
		}
		marker := "  "
		label := fmt.Sprintf("%-11s", field.label)
		if i == f.focus {
			marker = stylize("> ", noColor, colorFocus)
			label = stylize(label, noColor, colorFocus)
		}
		b.WriteString(marker + label + " " + field.display() + "\n")
	}
	return b.String()
}
