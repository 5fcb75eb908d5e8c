// Package summary shows the results of a finished practice session.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/bernhaaard/mental-math-trainer-sub002/internal/screen"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/session"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/ui/components"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/ui/layout"
	"github.com/bernhaaard/mental-math-trainer-sub002/internal/ui/theme"
)

// SummaryScreen displays the session summary.
type SummaryScreen struct {
	summary *session.Summary
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a new SummaryScreen.
func New(summary *session.Summary) *SummaryScreen {
	return &SummaryScreen{summary: summary}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Session Summary"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Quit"},
	}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	sum := s.summary
	if sum == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Session complete!"))
	b.WriteString("\n\n")

	mins := int(sum.Duration.Minutes())
	secs := int(sum.Duration.Seconds()) % 60
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("Duration: %d:%02d", mins, secs)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Problems: %d     Correct: %d     Skipped: %d     Hints: %d     Accuracy: %.0f%%",
		sum.TotalProblems, sum.TotalCorrect, sum.TotalSkipped, sum.TotalHints, sum.Accuracy*100)
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Render(statsLine))
	b.WriteString("\n\n")

	if len(sum.Strategies) == 0 {
		return b.String()
	}

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Strategies")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	labelWidth := 0
	for _, sr := range sum.Strategies {
		labelWidth = max(labelWidth, lipgloss.Width(sr.Strategy.DisplayName()))
	}

	for _, sr := range sum.Strategies {
		answered := sr.Attempted + sr.Skipped
		var pct float64
		if answered > 0 {
			pct = float64(sr.Correct) / float64(answered)
		}
		bar := components.ProgressBar{
			Label:      sr.Strategy.DisplayName(),
			LabelWidth: labelWidth,
			Percent:    pct,
			Width:      labelWidth + 22,
		}
		line := fmt.Sprintf("%s   %d/%d correct", bar.View(), sr.Correct, answered)
		if sr.Skipped > 0 {
			line += fmt.Sprintf(", %d skipped", sr.Skipped)
		}
		if sr.Hints > 0 {
			line += fmt.Sprintf(", %d %s", sr.Hints, plural(sr.Hints, "hint", "hints"))
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
