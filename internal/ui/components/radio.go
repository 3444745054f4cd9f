package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/survey/internal/ui/theme"
)

// RadioGroup renders one single-choice question with its options laid out
// in a row.
type RadioGroup struct {
	Title    string
	Options  []string
	Selected string // chosen option, "" for none
	Cursor   int    // highlighted option index
	Focused  bool
}

// NewRadioGroup creates a radio group.
func NewRadioGroup(title string, options []string, selected string, cursor int, focused bool) RadioGroup {
	return RadioGroup{
		Title:    title,
		Options:  options,
		Selected: selected,
		Cursor:   cursor,
		Focused:  focused,
	}
}

// OptionLines returns one rendered entry per option.
func (r RadioGroup) OptionLines() []string {
	lines := make([]string, len(r.Options))
	for i, opt := range r.Options {
		mark := "○"
		if opt == r.Selected {
			mark = "●"
		}
		label := fmt.Sprintf("%s %s", mark, opt)

		style := theme.OptionPlain
		switch {
		case r.Focused && i == r.Cursor:
			style = theme.OptionFocused
		case opt == r.Selected:
			style = theme.OptionChosen
		}
		lines[i] = style.Render(label)
	}
	return lines
}

// View renders the title and the option row, wrapping at width.
func (r RadioGroup) View(width int) string {
	prefix := "  "
	if r.Focused {
		prefix = "▸ "
	}
	title := theme.Question.Render(prefix + r.Title)

	var rows []string
	var row []string
	rowWidth := 0
	const indent = 4
	const gap = 4
	for _, opt := range r.OptionLines() {
		w := lipgloss.Width(opt)
		if len(row) > 0 && width > 0 && indent+rowWidth+gap+w > width {
			rows = append(rows, strings.Repeat(" ", indent)+strings.Join(row, strings.Repeat(" ", gap)))
			row, rowWidth = nil, 0
		}
		if len(row) > 0 {
			rowWidth += gap
		}
		row = append(row, opt)
		rowWidth += w
	}
	if len(row) > 0 {
		rows = append(rows, strings.Repeat(" ", indent)+strings.Join(row, strings.Repeat(" ", gap)))
	}

	return title + "\n" + strings.Join(rows, "\n")
}
