package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-globe/internal/geo"
	"github.com/litescript/ls-globe/internal/solar"
	"github.com/litescript/ls-globe/internal/state"
)

// ClockViewModel shows solar and civil time for the catalog cities at
// the simulated UTC instant.
type ClockViewModel struct {
	width  int
	height int

	catalog *geo.Catalog
	cursor  int

	snapshot state.Snapshot
}

// NewClockViewModel creates a new clock view model. A nil or empty
// catalog falls back to the built-in city table so cursor arithmetic
// always has rows to work with.
func NewClockViewModel(catalog *geo.Catalog) ClockViewModel {
	if catalog == nil || catalog.Len() == 0 {
		catalog = geo.DefaultCatalog()
	}
	return ClockViewModel{catalog: catalog}
}

// SetSize updates the viewport size.
func (m ClockViewModel) SetSize(width, height int) ClockViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates with a new data snapshot.
func (m ClockViewModel) UpdateData(snapshot state.Snapshot) ClockViewModel {
	m.snapshot = snapshot
	return m
}

// Update handles messages.
func (m ClockViewModel) Update(msg tea.Msg, mgr *state.Manager) (ClockViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		in := m.snapshot.Inputs
		switch msg.String() {
		case "left":
			mgr.SetUTCHour(in.UTCHour - 0.5)
		case "right":
			mgr.SetUTCHour(in.UTCHour + 0.5)
		case "up", "k":
			m.cursor--
			if m.cursor < 0 {
				m.cursor = m.catalog.Len() - 1
			}
		case "down", "j":
			m.cursor = (m.cursor + 1) % m.catalog.Len()
		case "enter":
			if city, ok := m.cityAt(m.cursor); ok {
				mgr.SetObserver(city.Observer())
			}
		}
		m.snapshot = mgr.Snapshot()
	}
	return m, nil
}

func (m ClockViewModel) cityAt(i int) (geo.City, bool) {
	all := m.catalog.All()
	if i < 0 || i >= len(all) {
		return geo.City{}, false
	}
	return all[i], true
}

// View renders the clock view.
func (m ClockViewModel) View() string {
	if m.width < 50 || m.height < 8 {
		return "Clock view requires a larger terminal"
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5A623"))
	headerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	dayStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("222"))
	nightStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	selectedStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true)
	observerStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	in := m.snapshot.Inputs
	s := m.snapshot.Derived.SubsolarLatDeg

	var b strings.Builder
	b.WriteString(titleStyle.Render("World Clock"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s UTC · day %d", formatHour(in.UTCHour), in.DayOfYear)))
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-18s %8s %8s %9s  %s", "City", "Solar", "Civil", "Daylight", "")))
	b.WriteString("\n")

	// Leave room for title, header, and a blank line.
	maxRows := m.height - 5
	cities := m.catalog.All()
	start := 0
	if m.cursor >= maxRows {
		start = m.cursor - maxRows + 1
	}

	for i := start; i < len(cities) && i-start < maxRows; i++ {
		city := cities[i]

		solarHour := solar.LocalTime(in.UTCHour, city.LonDeg)
		civilHour := wrapCivil(in.UTCHour + city.UTCOffset)
		dayLen := solar.DayLength(city.LatDeg, s)
		daytime := solar.IsDaytime(solarHour, city.LatDeg, s)

		glyph := "☾"
		style := nightStyle
		if daytime {
			glyph = "☀"
			style = dayStyle
		}

		cursor := "  "
		if city.Name == in.Observer.Name {
			style = observerStyle
		}
		if i == m.cursor {
			cursor = "▶ "
			style = selectedStyle
		}

		b.WriteString(cursor)
		b.WriteString(style.Render(fmt.Sprintf("%-18s %8s %8s %8.1fh  %s",
			city.Name, formatHour(solarHour), formatHour(civilHour), dayLen, glyph)))
		b.WriteString("\n")
	}

	return b.String()
}

// wrapCivil wraps a civil hour into [0, 24). Offsets can push the
// value past either end of the day.
func wrapCivil(h float64) float64 {
	for h < 0 {
		h += 24
	}
	for h >= 24 {
		h -= 24
	}
	return h
}
