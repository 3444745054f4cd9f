package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/survey/internal/ui/theme"
)

const titleFull = `┏━┓╻ ╻┏━┓╻ ╻┏━╸╻ ╻
┗━┓┃ ┃┣┳┛┃┏┛┣╸ ┗┳┛
┗━┛┗━┛╹┗╸┗┛ ┗━╸ ╹ `

const titleCompact = "S · U · R · V · E · Y"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 22

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	// Leave room for panel border (2) + inner padding (4)
	return min(max(frameWidth-6, 20), 60)
}

// renderTitle returns the styled title block or compact fallback, with the
// tagline underneath.
func renderTitle(cw int, compact bool) string {
	text := titleFull
	if compact {
		text = titleCompact
	}
	return lipgloss.JoinVertical(lipgloss.Center,
		theme.Title.Width(cw).Render(text),
		theme.Subtitle.Width(cw).Render("Members survey"),
	)
}

// renderStatsBar renders submission counts in a bordered box.
func renderStatsBar(st stats, cw int) string {
	sentStyle := lipgloss.NewStyle().Foreground(theme.Success).Bold(true)
	failedStyle := lipgloss.NewStyle().Foreground(theme.Error).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	failed := dimStyle.Render("✗ 0 FAILED")
	if st.failed > 0 {
		failed = failedStyle.Render(fmt.Sprintf("✗ %d FAILED", st.failed))
	}
	last := dimStyle.Render("NEVER SUBMITTED")
	if !st.last.IsZero() {
		last = dimStyle.Render("LAST " + st.last.Local().Format("Jan 02 15:04"))
	}

	line := fmt.Sprintf("%s  %s  %s",
		sentStyle.Render(fmt.Sprintf("✓ %d SENT", st.sent)), failed, last)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(line)
}

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(items []string, selected int, cw int, disabled map[int]bool) string {
	base := lipgloss.NewStyle().
		Width(buttonWidth).
		Align(lipgloss.Center).
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1)

	selectedBtn := base.
		Bold(true).
		Foreground(theme.BgDark).
		Background(theme.Primary).
		BorderForeground(theme.Primary)
	normalBtn := base.
		Foreground(theme.Text).
		BorderForeground(theme.Border)
	disabledBtn := base.
		Foreground(theme.TextDim).
		BorderForeground(theme.Border)

	var buttons []string
	for i, label := range items {
		switch {
		case disabled[i]:
			buttons = append(buttons, disabledBtn.Render(label))
		case i == selected:
			buttons = append(buttons, selectedBtn.Render("▸ "+label))
		default:
			buttons = append(buttons, normalBtn.Render(label))
		}
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(strings.Join(buttons, "\n"))
}

// renderPanel wraps content in a bordered panel centred in the given area.
func renderPanel(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Primary).
		Width(width - 2).   // account for border chars
		Height(height - 2). // account for border chars
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
