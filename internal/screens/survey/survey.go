package survey

import (
	"context"
	"fmt"
	"strconv"

	"charm.land/bubbles/v2/spinner"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/survey/internal/router"
	"github.com/abhisek/survey/internal/screen"
	sv "github.com/abhisek/survey/internal/survey"
	"github.com/abhisek/survey/internal/ui/layout"
	"github.com/abhisek/survey/internal/ui/theme"
)

// SurveyScreen implements screen.Screen for answering the survey.
type SurveyScreen struct {
	service *sv.Service
	logger  *zap.Logger
	spinner spinner.Model
	form    *sv.Form
	focus   int         // index of the focused question on the current page
	cursors map[int]int // question ID → highlighted option index
}

var _ screen.Screen = (*SurveyScreen)(nil)
var _ screen.KeyHintProvider = (*SurveyScreen)(nil)
var _ screen.StatusProvider = (*SurveyScreen)(nil)

// New creates a SurveyScreen with injected dependencies.
func New(service *sv.Service, logger *zap.Logger) *SurveyScreen {
	if logger == nil {
		logger = zap.NewNop()
	}
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Hint
	return &SurveyScreen{
		service: service,
		logger:  logger,
		spinner: sp,
		cursors: make(map[int]int),
	}
}

func (s *SurveyScreen) Init() tea.Cmd {
	return tea.Batch(s.spinner.Tick, s.load())
}

func (s *SurveyScreen) Title() string {
	return "Member Survey"
}

func (s *SurveyScreen) Status() string {
	if s.form == nil || s.form.Len() == 0 {
		return ""
	}
	return fmt.Sprintf("Page %d/%d", s.form.Page()+1, s.form.TotalPages())
}

func (s *SurveyScreen) KeyHints() []layout.KeyHint {
	if s.form == nil {
		return []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	}
	if s.form.Len() == 0 {
		return []layout.KeyHint{
			{Key: "R", Description: "Retry"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Question"},
		{Key: "←→", Description: "Option"},
		{Key: "Space", Description: "Select"},
	}
	if s.form.CanAdvance() {
		hints = append(hints, layout.KeyHint{Key: "N", Description: "Next"})
	}
	if s.form.CanSubmit() {
		hints = append(hints, layout.KeyHint{Key: "S", Description: "Submit"})
	}
	return append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
}

func (s *SurveyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case formLoadedMsg:
		s.form = msg.Form
		s.focus = 0
		return s, nil

	case submitDoneMsg:
		// Failures were logged by the service; the form stays as it is.
		return s, nil

	case spinner.TickMsg:
		if s.form != nil {
			return s, nil
		}
		var cmd tea.Cmd
		s.spinner, cmd = s.spinner.Update(msg)
		return s, cmd

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SurveyScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if s.form == nil {
		return s, nil
	}
	key := msg.String()
	// Service.Load reports a fetch failure as an empty form, so a failed load
	// and a survey with no questions look the same here. Neither has anything
	// to answer or submit, and both get the retry key.
	if s.form.Len() == 0 {
		if key == "r" || key == "R" {
			fresh := New(s.service, s.logger)
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: fresh} }
		}
		return s, nil
	}
	page := s.form.PageQuestions()

	switch key {
	case "up", "k", "shift+tab":
		if s.focus > 0 {
			s.focus--
		}
		return s, nil
	case "down", "j", "tab":
		if s.focus < len(page)-1 {
			s.focus++
		}
		return s, nil
	case "n", "N":
		return s.nextPage()
	case "s", "S":
		return s.submit()
	}

	if len(page) == 0 {
		return s, nil
	}
	q := page[min(s.focus, len(page)-1)]

	switch key {
	case "left", "h":
		if c := s.cursors[q.ID]; c > 0 {
			s.cursors[q.ID] = c - 1
		}
	case "right", "l":
		if c := s.cursors[q.ID]; c < len(q.Options)-1 {
			s.cursors[q.ID] = c + 1
		}
	case "space", " ", "enter":
		s.choose(q, s.cursors[q.ID])
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(q.Options) {
			s.cursors[q.ID] = n - 1
			s.choose(q, n-1)
		}
	}
	return s, nil
}

// choose selects option i of q and moves focus to the next open question.
func (s *SurveyScreen) choose(q sv.Question, i int) {
	if i < 0 || i >= len(q.Options) {
		return
	}
	if !s.form.Select(q.ID, q.Options[i]) {
		return
	}
	s.logger.Debug("answer selected", zap.Int("question_id", q.ID), zap.String("option", q.Options[i]))

	page := s.form.PageQuestions()
	for j := s.focus + 1; j < len(page); j++ {
		if !page[j].Answered() {
			s.focus = j
			return
		}
	}
}

func (s *SurveyScreen) nextPage() (screen.Screen, tea.Cmd) {
	if !s.form.CanAdvance() {
		return s, nil
	}
	s.form.NextPage()
	s.focus = 0
	s.logger.Debug("page advanced", zap.Int("page", s.form.Page()))
	return s, nil
}

func (s *SurveyScreen) submit() (screen.Screen, tea.Cmd) {
	if !s.form.CanSubmit() {
		return s, nil
	}
	form := s.form.Snapshot()
	service := s.service
	return s, func() tea.Msg {
		return submitDoneMsg{Err: service.Submit(context.Background(), form)}
	}
}

// load fetches the question set asynchronously.
func (s *SurveyScreen) load() tea.Cmd {
	service := s.service
	return func() tea.Msg {
		return formLoadedMsg{Form: service.Load(context.Background())}
	}
}

// cursor returns the highlighted option index for question id.
func (s *SurveyScreen) cursor(id int) int {
	return s.cursors[id]
}
