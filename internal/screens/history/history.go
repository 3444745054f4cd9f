package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/survey/internal/router"
	"github.com/abhisek/survey/internal/screen"
	"github.com/abhisek/survey/internal/store"
	"github.com/abhisek/survey/internal/ui/layout"
	"github.com/abhisek/survey/internal/ui/theme"
)

// maxRecords caps how many attempts the screen loads.
const maxRecords = 50

type historyLoadedMsg struct {
	Records []store.SubmissionRecord
	Err     error
}

// HistoryScreen displays past submit attempts.
type HistoryScreen struct {
	repo     store.SubmissionRepo
	records  []store.SubmissionRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.StatusProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo store.SubmissionRepo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	repo := s.repo
	return func() tea.Msg {
		records, err := repo.QuerySubmissions(context.Background(), store.QueryOpts{Limit: maxRecords})
		return historyLoadedMsg{Records: records, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) Status() string {
	if !s.loaded || s.errMsg != "" {
		return ""
	}
	return fmt.Sprintf("%d attempts", len(s.records))
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.records = msg.Records
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.records)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.records) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No submissions yet.")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, rec := range s.records {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  survey %d  %s",
			prefix, rec.Timestamp.Local().Format("Jan 02, 2006 15:04"), rec.SurveyID, statusLabel(rec))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, detail := range details(rec) {
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render("    "+detail)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func statusLabel(rec store.SubmissionRecord) string {
	if rec.Status == store.StatusSent {
		return lipgloss.NewStyle().Foreground(theme.Success).Render("✓ sent")
	}
	return lipgloss.NewStyle().Foreground(theme.Error).Render("✗ failed")
}

func details(rec store.SubmissionRecord) []string {
	lines := []string{"Result: " + rec.Result}
	if rec.HTTPStatus != 0 {
		lines = append(lines, fmt.Sprintf("HTTP status: %d", rec.HTTPStatus))
	}
	if rec.ErrorMessage != "" {
		lines = append(lines, "Error: "+rec.ErrorMessage)
	}
	return lines
}
