package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/survey/internal/screen"
)

// stubScreen is a minimal screen for testing.
type stubScreen struct {
	title   string
	initRan bool
}

func (s *stubScreen) Init() tea.Cmd {
	s.initRan = true
	return nil
}
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return s.title }
func (s *stubScreen) Title() string                           { return s.title }

func TestPush(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on pushed screen")
	}
}

func TestPop(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)
	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1, got %d", r.Depth())
	}
	if r.Active().Title() != "first" {
		t.Errorf("expected active 'first', got %q", r.Active().Title())
	}
}

func TestPopNoopAtBottom(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	r.Pop()

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after pop at bottom, got %d", r.Depth())
	}
}

func TestReplace(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Replace(s2)

	if r.Depth() != 1 {
		t.Errorf("expected depth 1 after replace, got %d", r.Depth())
	}
	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run on replaced screen")
	}
}

func TestReplaceScreenMsg(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Update(ReplaceScreenMsg{Screen: s2})

	if r.Active().Title() != "second" {
		t.Errorf("expected active 'second', got %q", r.Active().Title())
	}
	if !s2.initRan {
		t.Error("expected Init() to run via ReplaceScreenMsg")
	}
}

func TestReplacePreservesStackDepth(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)

	s2 := &stubScreen{title: "second"}
	r.Push(s2)

	s3 := &stubScreen{title: "third"}
	r.Replace(s3)

	if r.Depth() != 2 {
		t.Errorf("expected depth 2, got %d", r.Depth())
	}
	if r.Active().Title() != "third" {
		t.Errorf("expected active 'third', got %q", r.Active().Title())
	}
}

func TestUpdateForwardsToActive(t *testing.T) {
	s1 := &stubScreen{title: "first"}
	r := New(s1)
	r.Update(PushScreenMsg{Screen: &stubScreen{title: "second"}})

	if got := r.View(80, 24); got != "second" {
		t.Errorf("expected view of pushed screen, got %q", got)
	}

	r.Update(PopScreenMsg{})
	if got := r.View(80, 24); got != "first" {
		t.Errorf("expected view of first screen after pop, got %q", got)
	}
}

type resumableScreen struct {
	stubScreen
	resumed int
}

type resumedMsg struct{}

func (s *resumableScreen) Resume() tea.Cmd {
	s.resumed++
	return func() tea.Msg { return resumedMsg{} }
}

func TestPopResumesScreenBelow(t *testing.T) {
	below := &resumableScreen{stubScreen: stubScreen{title: "below"}}
	r := New(below)
	r.Push(&stubScreen{title: "top"})

	cmd := r.Update(PopScreenMsg{})
	if below.resumed != 1 {
		t.Fatalf("expected one Resume() call, got %d", below.resumed)
	}
	if cmd == nil {
		t.Fatal("expected resume command")
	}
	if _, ok := cmd().(resumedMsg); !ok {
		t.Error("expected the command returned by Resume()")
	}
}

func TestPopAtBottomDoesNotResume(t *testing.T) {
	only := &resumableScreen{stubScreen: stubScreen{title: "only"}}
	r := New(only)

	if cmd := r.Pop(); cmd != nil {
		t.Error("expected nil command at the bottom of the stack")
	}
	if only.resumed != 0 {
		t.Errorf("expected no Resume() call, got %d", only.resumed)
	}
}
