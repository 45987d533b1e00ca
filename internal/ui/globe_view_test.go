package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-globe/internal/geom"
	"github.com/litescript/ls-globe/internal/state"
)

func newGlobeModel(t *testing.T) (GlobeViewModel, *state.Manager) {
	t.Helper()
	mgr := state.NewManager(state.DefaultConfig())
	m := NewGlobeViewModel()
	m = m.SetSize(100, 40)
	m = m.UpdateData(mgr.Snapshot())
	return m, mgr
}

func TestGlobeView_Renders(t *testing.T) {
	m, _ := newGlobeModel(t)

	view := m.View()
	if !strings.Contains(view, "Globe") {
		t.Error("missing title")
	}
	if !strings.Contains(view, "subsolar") {
		t.Error("missing subsolar readout")
	}
	if !strings.Contains(view, "Beijing") {
		t.Error("missing observer status")
	}
	// Day/night shading should fill the disc.
	if !strings.Contains(view, string(glyphDay)) {
		t.Error("no shaded cells rendered")
	}
	// Subsolar marker is on the front hemisphere in sun-fixed frame.
	if !strings.Contains(view, string(glyphSubsolar)) {
		t.Error("missing subsolar marker")
	}
}

func TestGlobeView_TooSmall(t *testing.T) {
	m := NewGlobeViewModel().SetSize(10, 5)
	if !strings.Contains(m.View(), "larger terminal") {
		t.Error("expected size warning")
	}
}

func TestGlobeView_FrameToggle(t *testing.T) {
	m, _ := newGlobeModel(t)

	if !m.sunFixed {
		t.Fatal("should start sun-fixed")
	}
	if !strings.Contains(m.View(), "sun-fixed") {
		t.Error("header should show frame mode")
	}

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")}, nil)
	if m.sunFixed {
		t.Error("f should switch to earth-fixed")
	}
	if !strings.Contains(m.View(), "earth-fixed") {
		t.Error("header should show earth-fixed")
	}
}

func TestGlobeView_CameraClamps(t *testing.T) {
	m, _ := newGlobeModel(t)

	for i := 0; i < 20; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp}, nil)
	}
	if m.camLat > 89 {
		t.Errorf("camLat = %v, want clamped at 89", m.camLat)
	}
	for i := 0; i < 40; i++ {
		m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown}, nil)
	}
	if m.camLat < -89 {
		t.Errorf("camLat = %v, want clamped at -89", m.camLat)
	}
}

func TestGlobeView_SunFixedKeepsNoonCentered(t *testing.T) {
	m, mgr := newGlobeModel(t)

	// Camera scene longitude stays put as UTC changes in sun-fixed
	// frame.
	before := m.cameraSceneLon()
	mgr.SetUTCHour(m.snapshot.Inputs.UTCHour + 6)
	m = m.UpdateData(mgr.Snapshot())
	if m.cameraSceneLon() != before {
		t.Errorf("sun-fixed camera moved: %v -> %v", before, m.cameraSceneLon())
	}

	// Earth-fixed camera follows the observer as the noon meridian
	// moves.
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("f")}, nil)
	before = m.cameraSceneLon()
	mgr.SetUTCHour(m.snapshot.Inputs.UTCHour + 6)
	m = m.UpdateData(mgr.Snapshot())
	if m.cameraSceneLon() == before {
		t.Error("earth-fixed camera should track the observer")
	}
}

func TestCellDaylit(t *testing.T) {
	conv := geom.DefaultConvention()
	light := geom.SunRay(23.44, 1)

	tests := []struct {
		name     string
		lat, lon float64
		want     bool
	}{
		{"subsolar point", 23.44, 0, true},
		{"antipode", -23.44, 180, false},
		{"north pole in summer", 90, 0, true},
		{"south pole in summer", -90, 0, false},
		{"equator near noon", 0, 10, true},
		{"equator near midnight", 0, 170, false},
	}
	for _, tt := range tests {
		if got := cellDaylit(tt.lat, tt.lon, light, conv); got != tt.want {
			t.Errorf("%s: cellDaylit(%v, %v) = %v, want %v", tt.name, tt.lat, tt.lon, got, tt.want)
		}
	}

	// At zero tilt the terminator sits on the ±90° meridians; the
	// boundary itself counts as night.
	equinoxLight := geom.SunRay(0, 1)
	if cellDaylit(0, 90, equinoxLight, conv) {
		t.Error("terminator cell should shade as night")
	}
	if !cellDaylit(0, 89, equinoxLight, conv) {
		t.Error("cell just inside the day side should be lit")
	}
}

func TestGraticuleCell(t *testing.T) {
	if _, _, hit := graticuleCell(0.5, 17); !hit {
		t.Error("equator should be a grid line")
	}
	if glyph, _, hit := graticuleCell(0.5, 17); !hit || glyph != glyphEquator {
		t.Error("equator uses its own glyph")
	}
	if _, _, hit := graticuleCell(30.4, 17); !hit {
		t.Error("30N should be a grid line")
	}
	if _, _, hit := graticuleCell(45, 17); hit {
		t.Error("45N/17E is not a grid line")
	}
	if _, _, hit := graticuleCell(45, 60.3); !hit {
		t.Error("meridian 60E should be a grid line")
	}
	// Meridians are suppressed near the poles.
	if _, _, hit := graticuleCell(85, 60); hit {
		t.Error("meridians should not draw at 85N")
	}
}

func TestNearMultiple(t *testing.T) {
	tests := []struct {
		v, step, eps float64
		want         bool
	}{
		{30, 30, 1, true},
		{29.5, 30, 1, true},
		{-60.5, 30, 1, true},
		{15, 30, 1, false},
		{0, 30, 1, true},
		{179.5, 180, 1, true},
	}
	for _, tt := range tests {
		if got := nearMultiple(tt.v, tt.step, tt.eps); got != tt.want {
			t.Errorf("nearMultiple(%v, %v, %v) = %v, want %v", tt.v, tt.step, tt.eps, got, tt.want)
		}
	}
}
