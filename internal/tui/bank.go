package tui

import (
	"strconv"

	"edugen/internal/domain"

	"github.com/charmbracelet/bubbles/table"
)

func bankColumns(width int) []table.Column {
	topic := max(width-44, 20)
	return []table.Column{
		{Title: "Topic", Width: topic},
		{Title: "Questions", Width: 9},
		{Title: "Saved", Width: 24},
	}
}

func bankRows(quizzes []domain.SavedQuiz) []table.Row {
	rows := make([]table.Row, 0, len(quizzes))
	for _, q := range quizzes {
		topic := q.Topic
		if topic == "" {
			topic = "(untitled)"
		}
		rows = append(rows, table.Row{
			topic,
			strconv.Itoa(len(q.Questions)),
			q.SavedTime().Local().Format("02 Jan 2006 15:04"),
		})
	}
	return rows
}

func newBankTable(noColor bool) table.Model {
	t := table.New(
		table.WithColumns(bankColumns(80)),
		table.WithRows([]table.Row{}),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	t.SetStyles(bankTableStyles(noColor))
	return t
}
