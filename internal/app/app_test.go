package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/survey/internal/router"
	"github.com/abhisek/survey/internal/screens/home"
	surveyscreen "github.com/abhisek/survey/internal/screens/survey"
	sv "github.com/abhisek/survey/internal/survey"
)

type stubBackend struct{}

func (stubBackend) FetchQuestions(context.Context) ([]sv.Item, error) {
	return []sv.Item{{Questions: "Pick one", Answers: []string{"Yes", "No"}}}, nil
}

func (stubBackend) Submit(context.Context, string) (int, error) { return 200, nil }

func testOptions(startInSurvey bool) Options {
	return Options{
		Service:       sv.NewService(stubBackend{}, nil, nil, sv.Config{SurveyID: 1, PageSize: 5, Pages: 1}),
		StartInSurvey: startInSurvey,
	}
}

func sized(m AppModel, w, h int) AppModel {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return updated.(AppModel)
}

func TestNewAppModel_InitialScreen(t *testing.T) {
	m := newAppModel(testOptions(false))
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Errorf("expected home screen, got %T", m.router.Active())
	}

	m = newAppModel(testOptions(true))
	if _, ok := m.router.Active().(*surveyscreen.SurveyScreen); !ok {
		t.Errorf("expected survey screen, got %T", m.router.Active())
	}
	if m.Init() == nil {
		t.Error("expected survey screen to start loading")
	}
}

func TestView_TooSmall(t *testing.T) {
	m := sized(newAppModel(testOptions(false)), 40, 10)
	if !strings.Contains(m.render(), "Terminal too small") {
		t.Error("expected min size message")
	}
}

func TestView_HeaderShowsTitle(t *testing.T) {
	m := sized(newAppModel(testOptions(false)), 100, 30)
	view := m.render()
	if !strings.Contains(view, "Home") {
		t.Error("expected screen title in header")
	}
	if !strings.Contains(view, "Ctrl+C") {
		t.Error("expected footer hints")
	}
}

func TestUpdate_EscPopsOnlyAboveRoot(t *testing.T) {
	m := newAppModel(testOptions(false))

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("expected esc to be a no-op on the root screen")
	}

	m.router.Push(surveyscreen.New(testOptions(true).Service, nil))
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg")
	}
}

func TestFooterHints_BackPrepended(t *testing.T) {
	m := newAppModel(testOptions(false))
	s := surveyscreen.New(testOptions(true).Service, nil)
	m.router.Push(s)

	hints := m.footerHints(s)
	if len(hints) == 0 || hints[0].Key != "Esc" {
		t.Errorf("expected Esc hint first, got %+v", hints)
	}
}
