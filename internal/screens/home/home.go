package home

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/survey/internal/router"
	"github.com/abhisek/survey/internal/screen"
	"github.com/abhisek/survey/internal/screens/history"
	surveyscreen "github.com/abhisek/survey/internal/screens/survey"
	"github.com/abhisek/survey/internal/store"
	sv "github.com/abhisek/survey/internal/survey"
	"github.com/abhisek/survey/internal/ui/components"
)

const (
	menuTake = iota
	menuHistory
	menuExit
)

// stats summarises the submission log.
type stats struct {
	sent   int
	failed int
	last   time.Time
}

type statsLoadedMsg struct {
	Stats stats
}

// HomeScreen is the main menu of the application.
type HomeScreen struct {
	repo       store.SubmissionRepo
	logger     *zap.Logger
	menu       components.Menu
	menuLabels []string
	disabled   map[int]bool
	stats      stats
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen. repo may be nil, in which case history is
// unavailable.
func New(service *sv.Service, repo store.SubmissionRepo, logger *zap.Logger) *HomeScreen {
	if logger == nil {
		logger = zap.NewNop()
	}

	menuLabels := []string{"TAKE SURVEY", "HISTORY", "EXIT"}
	disabled := map[int]bool{}
	if repo == nil {
		disabled[menuHistory] = true
	}

	items := []components.MenuItem{
		{Label: menuLabels[menuTake], Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: surveyscreen.New(service, logger)}
			}
		}},
		{Label: menuLabels[menuHistory], Action: func() tea.Cmd {
			if repo == nil {
				return nil
			}
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(repo)}
			}
		}},
		{Label: menuLabels[menuExit], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		repo:       repo,
		logger:     logger,
		menu:       components.NewMenu(items),
		menuLabels: menuLabels,
		disabled:   disabled,
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume reloads stats, which a submit on a pushed screen may have changed.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	if h.repo == nil {
		return nil
	}
	repo, logger := h.repo, h.logger
	return func() tea.Msg {
		records, err := repo.QuerySubmissions(context.Background(), store.QueryOpts{})
		if err != nil {
			logger.Warn("failed to load submission stats", zap.Error(err))
			return statsLoadedMsg{}
		}
		return statsLoadedMsg{Stats: summarise(records)}
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		h.stats = msg.Stats
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 80

	cw := contentWidth(width)

	sections := []string{
		renderTitle(cw, compact),
		renderStatsBar(h.stats, cw),
		renderMenu(h.menuLabels, h.menu.Selected, cw, h.disabled),
	}

	return renderPanel(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

// summarise counts outcomes in records, which arrive newest first.
func summarise(records []store.SubmissionRecord) stats {
	var st stats
	for _, r := range records {
		switch r.Status {
		case store.StatusSent:
			st.sent++
		case store.StatusFailed:
			st.failed++
		}
	}
	if len(records) > 0 {
		st.last = records[0].Timestamp
	}
	return st
}
