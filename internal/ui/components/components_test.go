package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
)

func TestRadioGroup_OneLinePerOption(t *testing.T) {
	for _, n := range []int{0, 1, 2, 5, 9} {
		opts := make([]string, n)
		for i := range opts {
			opts[i] = string(rune('A' + i))
		}
		r := NewRadioGroup("Q", opts, "", 0, true)
		if got := len(r.OptionLines()); got != n {
			t.Errorf("options=%d: rendered %d lines", n, got)
		}
	}
}

func TestRadioGroup_MarksSelection(t *testing.T) {
	r := NewRadioGroup("Coffee or tea?", []string{"Coffee", "Tea"}, "Tea", 0, false)
	view := r.View(80)

	if !strings.Contains(view, "Coffee or tea?") {
		t.Error("expected title in view")
	}
	if !strings.Contains(view, "● Tea") {
		t.Errorf("expected selected marker on Tea, got:\n%s", view)
	}
	if !strings.Contains(view, "○ Coffee") {
		t.Errorf("expected empty marker on Coffee, got:\n%s", view)
	}
}

func TestRadioGroup_WrapsNarrowWidth(t *testing.T) {
	opts := []string{"Strongly agree", "Agree", "Neutral", "Disagree", "Strongly disagree"}
	r := NewRadioGroup("Q", opts, "", 0, false)

	wide := lipgloss.Height(r.View(200))
	narrow := lipgloss.Height(r.View(30))
	if narrow <= wide {
		t.Errorf("expected wrapping at narrow width: wide=%d narrow=%d", wide, narrow)
	}
}

func TestButton_View(t *testing.T) {
	on := NewButton("Next", "n", true).View()
	off := NewButton("Next", "n", false).View()
	if !strings.Contains(on, "[n] Next") || !strings.Contains(off, "[n] Next") {
		t.Error("expected key and label in button view")
	}
	if on == off {
		t.Error("active and inactive buttons should render differently")
	}
}

func TestProgressBar_Fraction(t *testing.T) {
	tests := []struct {
		done, total int
		want        float64
	}{
		{0, 0, 0},
		{0, 20, 0},
		{5, 20, 0.25},
		{20, 20, 1},
		{25, 20, 1},
	}
	for _, tt := range tests {
		if got := NewProgressBar("", tt.done, tt.total, 40).Fraction(); got != tt.want {
			t.Errorf("Fraction(%d/%d) = %v, want %v", tt.done, tt.total, got, tt.want)
		}
	}
}

func TestProgressBar_View(t *testing.T) {
	view := NewProgressBar("Answered", 3, 20, 60).View()
	if !strings.Contains(view, "3/20") {
		t.Errorf("expected count in view, got %q", view)
	}
}

func TestMenu_Navigation(t *testing.T) {
	var picked string
	item := func(label string) MenuItem {
		return MenuItem{Label: label, Action: func() tea.Cmd {
			picked = label
			return nil
		}}
	}
	m := NewMenu([]MenuItem{item("one"), item("two"), item("three")})

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if m.Selected != 2 {
		t.Fatalf("Selected = %d, want 2", m.Selected)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if picked != "three" {
		t.Errorf("picked %q, want three", picked)
	}

	m, _ = m.Update(tea.KeyPressMsg{Code: '1', Text: "1"})
	if picked != "one" || m.Selected != 0 {
		t.Errorf("hotkey 1: picked %q selected %d", picked, m.Selected)
	}
}
