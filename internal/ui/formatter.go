package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/notexe/journal/internal/reminder"
)

var (
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203")). // Coral red
			Bold(true)

	InfoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("222")) // Warm yellow

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("114")). // Green
			Bold(true)

	HeaderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("81")).
			Bold(true).
			Padding(0, 1)

	CellStyle = lipgloss.NewStyle().Padding(0, 1)

	DimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	BorderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("62")) // Soft blue border
)

const emptyReminders = "No reminders yet"

var reminderHeaders = []string{"Nr", "Date", "Reminders"}

type Formatter struct {
	colored bool
}

func NewFormatter(colored bool) *Formatter {
	return &Formatter{colored: colored}
}

// Colored reports whether output is styled.
func (f *Formatter) Colored() bool {
	return f.colored
}

func (f *Formatter) FormatError(err error) string {
	prefix := "Error: "
	if f.colored {
		prefix = ErrorStyle.Render("Error: ")
	}
	return prefix + err.Error()
}

func (f *Formatter) FormatInfo(info string) string {
	if f.colored {
		return InfoStyle.Render(info)
	}
	return info
}

func (f *Formatter) FormatSuccess(msg string) string {
	if f.colored {
		return SuccessStyle.Render("✓") + " " + msg
	}
	return msg
}

// FormatReminderTable renders the numbered reminders as a table with the
// columns Nr, Date and Reminders.
func (f *Formatter) FormatReminderTable(entries []reminder.Entry) string {
	if len(entries) == 0 {
		if f.colored {
			return DimStyle.Render(emptyReminders)
		}
		return emptyReminders
	}

	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{strconv.Itoa(e.Index), e.Schedule, e.Message})
	}

	t := table.New().
		Headers(reminderHeaders...).
		Rows(rows...)

	if f.colored {
		t = t.Border(lipgloss.RoundedBorder()).
			BorderStyle(BorderStyle).
			StyleFunc(func(row, _ int) lipgloss.Style {
				if row == table.HeaderRow {
					return HeaderStyle
				}
				return CellStyle
			})
	} else {
		t = t.Border(lipgloss.NormalBorder()).
			StyleFunc(func(int, int) lipgloss.Style { return CellStyle })
	}

	return t.Render()
}

// RenderMarkdown renders a composed page for the terminal. Plain mode and
// renderer failures return the markdown unchanged.
func (f *Formatter) RenderMarkdown(markdown string) string {
	if !f.colored {
		return markdown
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return markdown
	}

	rendered, err := renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimSpace(rendered)
}
