package survey

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/survey/internal/ui/components"
	"github.com/abhisek/survey/internal/ui/theme"
)

func (s *SurveyScreen) View(width, height int) string {
	if s.form == nil {
		return renderLoading(width, s.spinner.View())
	}
	// A failed load and an empty survey both arrive as an empty form and
	// render nothing.
	if s.form.Len() == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")

	progress := components.NewProgressBar("Answered", s.form.Answered(), s.form.Len(), min(width-4, 60))
	b.WriteString("  " + progress.View() + "\n\n")

	for i, q := range s.form.PageQuestions() {
		rg := components.NewRadioGroup(q.Text, q.Options, q.SelectedOption, s.cursor(q.ID), i == s.focus)
		b.WriteString(rg.View(width - 2))
		b.WriteString("\n\n")
	}

	b.WriteString(s.renderButtons())
	return b.String()
}

// renderButtons shows "Next" before the last page and "Submit" on it.
func (s *SurveyScreen) renderButtons() string {
	var buttons []string
	if s.form.ShowNext() {
		buttons = append(buttons, components.NewButton("Next", "n", s.form.CanAdvance()).View())
	}
	if s.form.ShowSubmit() {
		buttons = append(buttons, components.NewButton("Submit", "s", s.form.CanSubmit()).View())
	}
	return "  " + lipgloss.JoinHorizontal(lipgloss.Center, buttons...)
}

// renderLoading renders the loading line.
func renderLoading(width int, spin string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("\n\n\n  " + spin + " Loading survey...")
}
