package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-globe/internal/geo"
	"github.com/litescript/ls-globe/internal/geocode"
	"github.com/litescript/ls-globe/internal/state"
)

func newTestModel() Model {
	mgr := state.NewManager(state.DefaultConfig())
	provider := geocode.NewCatalogProvider(nil)
	m := New(mgr, provider, geo.DefaultCatalog(), 100*time.Millisecond)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(Model)
}

func TestFormatHour(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "00:00"},
		{12, "12:00"},
		{6.5, "06:30"},
		{23.99, "23:59"},
		{14.25, "14:15"},
	}
	for _, tt := range tests {
		if got := formatHour(tt.in); got != tt.want {
			t.Errorf("formatHour(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestModel_InitialView(t *testing.T) {
	m := newTestModel()

	view := m.View()
	if !strings.Contains(view, "ls-globe") {
		t.Error("view missing title")
	}
	if !strings.Contains(view, "Globe") {
		t.Error("view missing Globe tab")
	}
	if !strings.Contains(view, "Beijing") {
		t.Error("view missing default observer")
	}
}

func TestModel_NotReadyBeforeSize(t *testing.T) {
	mgr := state.NewManager(state.DefaultConfig())
	m := New(mgr, geocode.NewCatalogProvider(nil), nil, 0)

	if !strings.Contains(m.View(), "Initializing") {
		t.Error("expected initializing placeholder before WindowSizeMsg")
	}
}

func TestModel_TabCycling(t *testing.T) {
	m := newTestModel()

	for i, want := range []ViewMode{ViewSeasons, ViewClock, ViewSearch, ViewGlobe} {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
		m = updated.(Model)
		if m.viewMode != want {
			t.Fatalf("tab press %d: viewMode = %v, want %v", i+1, m.viewMode, want)
		}
	}
}

func TestModel_NumberKeysSwitchViews(t *testing.T) {
	m := newTestModel()

	keys := map[string]ViewMode{
		"2": ViewSeasons,
		"3": ViewClock,
		"4": ViewSearch,
		"1": ViewGlobe,
	}
	for key, want := range keys {
		updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
		m = updated.(Model)
		if m.viewMode != want {
			t.Errorf("key %q: viewMode = %v, want %v", key, m.viewMode, want)
		}
	}
}

func TestModel_SpaceTogglesPlaying(t *testing.T) {
	m := newTestModel()

	if m.snapshot.Inputs.Playing {
		t.Fatal("should start paused")
	}

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	m = updated.(Model)
	if !m.snapshot.Inputs.Playing {
		t.Error("space should start playback")
	}
}

func TestModel_QuitKeys(t *testing.T) {
	m := newTestModel()

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Errorf("expected quit message, got %T", msg)
	}
}

func TestModel_LookupResultSwitchesObserver(t *testing.T) {
	m := newTestModel()

	updated, _ := m.Update(lookupResultMsg{
		place: geocode.Place{Name: "Tokyo", LatDeg: 35.7, LonDeg: 139.7, UTCOffset: 9},
	})
	m = updated.(Model)

	if m.snapshot.Inputs.Observer.Name != "Tokyo" {
		t.Errorf("observer = %q, want Tokyo", m.snapshot.Inputs.Observer.Name)
	}
}

func TestModel_FooterFlashesFreshEvent(t *testing.T) {
	m := newTestModel()

	// A successful lookup records an observer change that the footer
	// surfaces while it is fresh.
	updated, _ := m.Update(lookupResultMsg{
		place: geocode.Place{Name: "Tokyo", LatDeg: 35.7, LonDeg: 139.7, UTCOffset: 9},
	})
	m = updated.(Model)

	if !strings.Contains(m.View(), "now tracking Tokyo") {
		t.Error("footer should flash the observer change")
	}
}

func TestFreshEvent(t *testing.T) {
	if _, ok := freshEvent(nil); ok {
		t.Error("no events should not flash")
	}

	stale := []state.Event{{Type: state.EventSunrise, Timestamp: time.Now().Add(-time.Minute), Observer: "Beijing"}}
	if _, ok := freshEvent(stale); ok {
		t.Error("stale event should not flash")
	}

	recent := append(stale, state.Event{Type: state.EventSunset, Timestamp: time.Now(), Observer: "Beijing"})
	e, ok := freshEvent(recent)
	if !ok {
		t.Fatal("recent event should flash")
	}
	if e.Type != state.EventSunset {
		t.Errorf("flashed %v, want the latest event", e.Type)
	}
}

func TestDescribeEvent(t *testing.T) {
	tests := []struct {
		event state.Event
		want  string
	}{
		{state.Event{Type: state.EventSunrise, Observer: "Beijing"}, "sunrise at Beijing"},
		{state.Event{Type: state.EventSunset, Observer: "Oslo"}, "sunset at Oslo"},
		{state.Event{Type: state.EventObserverChanged, Observer: "Tokyo"}, "now tracking Tokyo"},
		{state.Event{Type: state.EventLookupFailed, Detail: "no results"}, "lookup failed: no results"},
	}
	for _, tt := range tests {
		if got := describeEvent(tt.event); !strings.Contains(got, tt.want) {
			t.Errorf("describeEvent(%v) = %q, want substring %q", tt.event.Type, got, tt.want)
		}
	}
}

func TestModel_StartLookupMarksPending(t *testing.T) {
	m := newTestModel()

	updated, cmd := m.Update(startLookupMsg{query: "beijing"})
	m = updated.(Model)

	if !m.snapshot.LookupPending {
		t.Error("lookup should be pending")
	}
	if cmd == nil {
		t.Fatal("expected a lookup command")
	}

	// The catalog provider resolves synchronously.
	msg := cmd()
	result, ok := msg.(lookupResultMsg)
	if !ok {
		t.Fatalf("unexpected message %T", msg)
	}
	if result.err != nil || result.place.Name != "Beijing" {
		t.Errorf("result = %+v, err = %v", result.place, result.err)
	}
}
