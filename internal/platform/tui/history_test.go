package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/nestlines/internal/storage"
)

func sampleRuns() []storage.RunRecord {
	return []storage.RunRecord{
		{ID: 3, Seed: 30, Backend: "window"},
		{ID: 2, Seed: 20, Backend: "terminal"},
		{ID: 1, Seed: 10, Backend: "terminal"},
	}
}

func TestHistoryFilters(t *testing.T) {
	m := newHistoryModel(sampleRuns(), 100, 30)

	expected := []string{"all", "terminal", "window"}
	if len(m.backends) != len(expected) {
		t.Fatalf("backends = %v, expected %v", m.backends, expected)
	}
	for i, b := range expected {
		if m.backends[i] != b {
			t.Errorf("backends[%d] = %q, expected %q", i, m.backends[i], b)
		}
	}
	if len(m.visible) != 3 {
		t.Errorf("visible = %d, expected 3", len(m.visible))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(HistoryModel)
	if len(m.visible) != 2 {
		t.Errorf("terminal filter shows %d runs, expected 2", len(m.visible))
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	next, _ = next.(HistoryModel).Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(HistoryModel)
	if m.backends[m.cursor] != "window" || len(m.visible) != 1 {
		t.Errorf("filter = %q with %d runs, expected window with 1", m.backends[m.cursor], len(m.visible))
	}
}

func TestHistoryReplaySelection(t *testing.T) {
	m := newHistoryModel(sampleRuns(), 100, 30)

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(HistoryModel)

	if m.Selected() == nil {
		t.Fatal("Selected() = nil, expected the first run")
	}
	if m.Selected().ID != 3 {
		t.Errorf("Selected().ID = %d, expected 3", m.Selected().ID)
	}
	if !isQuit(cmd) {
		t.Error("replay should close the browser")
	}
}

func TestHistoryEmpty(t *testing.T) {
	m := NewHistoryModel(nil, 60, 20)

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(HistoryModel)
	if m.Selected() != nil {
		t.Error("empty history should not select a run")
	}
	if m.View() == "" {
		t.Error("empty history should still render")
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if !next.(HistoryModel).IsQuitting() || !isQuit(cmd) {
		t.Error("q should quit the browser")
	}
}
