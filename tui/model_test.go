package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"arrayv-music/midi"
	"arrayv-music/theme"
	"arrayv-music/translate"
)

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) Model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func overlapSteps() []translate.Step {
	return translate.Trace([]midi.Event{
		{Kind: midi.NoteOn, Pitch: 60, WaitAfter: 100 * time.Millisecond},
		{Kind: midi.NoteOn, Pitch: 64, WaitAfter: 100 * time.Millisecond},
		{Kind: midi.NoteOn, Pitch: 67, WaitAfter: 100 * time.Millisecond}, // evicts
		{Kind: midi.NoteOff, Pitch: 60},
		{Kind: midi.NoteOff, Pitch: 64},
		{Kind: midi.NoteOff, Pitch: 67},
	}, 2)
}

func TestNavigation(t *testing.T) {
	m := NewModel("test", overlapSteps(), theme.New(theme.DefaultPalette()))

	m = press(m, "k")
	if m.Cursor() != 0 {
		t.Errorf("expected cursor clamped at 0, got %d", m.Cursor())
	}
	m = press(m, "j", "j")
	if m.Cursor() != 2 {
		t.Errorf("expected cursor 2, got %d", m.Cursor())
	}
	m = press(m, "G")
	if m.Cursor() != 5 {
		t.Errorf("expected last step, got %d", m.Cursor())
	}
	m = press(m, "j")
	if m.Cursor() != 5 {
		t.Errorf("expected cursor clamped at end, got %d", m.Cursor())
	}
	m = press(m, "g")
	if m.Cursor() != 0 {
		t.Errorf("expected first step, got %d", m.Cursor())
	}
}

func TestNextEviction(t *testing.T) {
	m := NewModel("test", overlapSteps(), theme.New(theme.DefaultPalette()))
	m = press(m, "n")
	if m.Cursor() != 2 {
		t.Errorf("expected eviction at step 2, got %d", m.Cursor())
	}
	m = press(m, "n")
	if m.Cursor() != 2 {
		t.Errorf("expected to stay put without further evictions, got %d", m.Cursor())
	}
}

func TestView(t *testing.T) {
	m := NewModel("song.mid", overlapSteps(), theme.New(theme.DefaultPalette()))
	m = press(m, "n")

	out := m.View()
	for _, want := range []string{"song.mid", "step 3/6", "evict", "awaiting note-off", "Mark(0,"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected view to contain %q\n%s", want, out)
		}
	}

	m = press(m, "?")
	if !strings.Contains(m.View(), "Navigation") {
		t.Error("expected help to be shown")
	}
}

func TestViewEmpty(t *testing.T) {
	m := NewModel("empty.mid", nil, theme.New(theme.DefaultPalette()))
	m = press(m, "j", "G")
	if !strings.Contains(m.View(), "no note events") {
		t.Error("expected empty notice")
	}
}

func TestQuit(t *testing.T) {
	m := NewModel("test", overlapSteps(), theme.New(theme.DefaultPalette()))
	next, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if next.(Model).View() != "" {
		t.Error("expected empty view after quitting")
	}
}
