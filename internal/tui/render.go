package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("33"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	noticeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	scoreStyle    = lipgloss.NewStyle().
			Bold(true).
			Border(lipgloss.RoundedBorder()).
			Padding(1, 4).
			BorderForeground(lipgloss.Color("33"))
)

func (m Model) style(s lipgloss.Style, text string) string {
	if m.opts.NoColor {
		return text
	}
	return s.Render(text)
}

// View renders the current question, the score panel or an error.
func (m Model) View() string {
	if m.err != nil {
		return m.style(noticeStyle, "Error: "+m.err.Error()) + "\n"
	}

	var b strings.Builder
	status := fmt.Sprintf("Question %d/%d · Score %d", m.view.Index, m.view.Total, m.view.Score)
	b.WriteString(m.style(statusStyle, status))
	b.WriteString("\n\n")

	if m.phase == phaseScore {
		b.WriteString(m.style(scoreStyle, m.result.String()))
		b.WriteString("\n\n")
		b.WriteString(m.help.View(m.keys))
		return b.String()
	}

	b.WriteString(m.style(titleStyle, fmt.Sprintf("%d. %s", m.view.Index, m.view.Text)))
	b.WriteString("\n\n")
	for i, option := range m.view.Options {
		pointer := "  "
		if i == m.cursor {
			pointer = m.style(cursorStyle, "> ")
		}
		line := fmt.Sprintf("[ ] %d) %s", i+1, option)
		if m.selected != nil && *m.selected == i {
			line = m.style(selectedStyle, fmt.Sprintf("[x] %d) %s", i+1, option))
		}
		b.WriteString(pointer + line + "\n")
	}

	if m.notice != "" {
		b.WriteString("\n" + m.style(noticeStyle, m.notice) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}
