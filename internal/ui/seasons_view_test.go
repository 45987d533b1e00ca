package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-globe/internal/state"
)

func newSeasonsModel(t *testing.T) (SeasonsViewModel, *state.Manager) {
	t.Helper()
	mgr := state.NewManager(state.DefaultConfig())
	m := NewSeasonsViewModel()
	m = m.SetSize(100, 30)
	m = m.UpdateData(mgr.Snapshot())
	return m, mgr
}

func TestSeasonsView_Renders(t *testing.T) {
	m, _ := newSeasonsModel(t)

	view := m.View()
	if !strings.Contains(view, "Seasons") {
		t.Error("missing title")
	}
	if !strings.Contains(view, "Subsolar latitude") {
		t.Error("missing subsolar readout")
	}
	if !strings.Contains(view, "Daylight in Beijing") {
		t.Error("missing observer day-length chart")
	}
	if !strings.Contains(view, "tropics") {
		t.Error("missing tropics readout")
	}
}

func TestSeasonsView_DayKeys(t *testing.T) {
	m, mgr := newSeasonsModel(t)

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRight}, mgr)
	if m.snapshot.Inputs.DayOfYear != 173 {
		t.Errorf("DayOfYear = %d, want 173", m.snapshot.Inputs.DayOfYear)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")}, mgr)
	if m.snapshot.Inputs.DayOfYear != dayMarchEquinox {
		t.Errorf("DayOfYear = %d, want %d", m.snapshot.Inputs.DayOfYear, dayMarchEquinox)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")}, mgr)
	if m.snapshot.Inputs.DayOfYear != dayDecemberSolstice {
		t.Errorf("DayOfYear = %d, want %d", m.snapshot.Inputs.DayOfYear, dayDecemberSolstice)
	}
}

func TestSeasonsView_TiltKeys(t *testing.T) {
	m, mgr := newSeasonsModel(t)
	start := m.snapshot.Inputs.ObliquityDeg

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("+")}, mgr)
	if m.snapshot.Inputs.ObliquityDeg != start+0.5 {
		t.Errorf("ObliquityDeg = %v, want %v", m.snapshot.Inputs.ObliquityDeg, start+0.5)
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("0")}, mgr)
	if m.snapshot.Inputs.ObliquityDeg != start {
		t.Errorf("0 should reset tilt, got %v", m.snapshot.Inputs.ObliquityDeg)
	}
}

func TestWrapDay(t *testing.T) {
	tests := []struct {
		in, want int
	}{
		{1, 1},
		{365, 365},
		{0, 365},
		{366, 1},
		{-10, 365},
	}
	for _, tt := range tests {
		if got := wrapDay(tt.in); got != tt.want {
			t.Errorf("wrapDay(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestDayMatchesColumn(t *testing.T) {
	width := 48
	if !dayMatchesColumn(1, 0, width) {
		t.Error("day 1 should map to the first column")
	}
	if !dayMatchesColumn(365, width-1, width) {
		t.Error("day 365 should map to the last column")
	}

	// Every day maps to exactly one column.
	for day := 1; day <= 365; day++ {
		count := 0
		for col := 0; col < width; col++ {
			if dayMatchesColumn(day, col, width) {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("day %d maps to %d columns", day, count)
		}
	}
}
