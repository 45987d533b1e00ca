package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-globe/internal/solar"
	"github.com/litescript/ls-globe/internal/state"
)

// Approximate days of the cardinal points in a 365-day year.
const (
	dayMarchEquinox     = 80
	dayJuneSolstice     = 173
	daySeptemberEquinox = 266
	dayDecemberSolstice = 356
)

// SeasonsViewModel shows how the subsolar point and day length move
// through the year, with the date and axial tilt under user control.
type SeasonsViewModel struct {
	width  int
	height int

	snapshot state.Snapshot
}

// NewSeasonsViewModel creates a new seasons view model.
func NewSeasonsViewModel() SeasonsViewModel {
	return SeasonsViewModel{}
}

// SetSize updates the viewport size.
func (m SeasonsViewModel) SetSize(width, height int) SeasonsViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates with a new data snapshot.
func (m SeasonsViewModel) UpdateData(snapshot state.Snapshot) SeasonsViewModel {
	m.snapshot = snapshot
	return m
}

// Update handles messages.
func (m SeasonsViewModel) Update(msg tea.Msg, mgr *state.Manager) (SeasonsViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		in := m.snapshot.Inputs
		switch msg.String() {
		case "left":
			mgr.SetDayOfYear(wrapDay(in.DayOfYear - 1))
		case "right":
			mgr.SetDayOfYear(wrapDay(in.DayOfYear + 1))
		case "shift+left":
			mgr.SetDayOfYear(wrapDay(in.DayOfYear - 7))
		case "shift+right":
			mgr.SetDayOfYear(wrapDay(in.DayOfYear + 7))
		case "+", "=":
			mgr.SetObliquity(in.ObliquityDeg + 0.5)
		case "-":
			mgr.SetObliquity(in.ObliquityDeg - 0.5)
		case "e":
			mgr.SetDayOfYear(dayMarchEquinox)
		case "j":
			mgr.SetDayOfYear(dayJuneSolstice)
		case "a":
			mgr.SetDayOfYear(daySeptemberEquinox)
		case "d":
			mgr.SetDayOfYear(dayDecemberSolstice)
		case "0":
			mgr.SetObliquity(solar.DefaultObliquity)
		}
		m.snapshot = mgr.Snapshot()
	}
	return m, nil
}

// wrapDay wraps day of year around the ends of the calendar.
func wrapDay(day int) int {
	if day < 1 {
		return 365
	}
	if day > 365 {
		return 1
	}
	return day
}

// View renders the seasons view.
func (m SeasonsViewModel) View() string {
	if m.width < 40 || m.height < 10 {
		return "Seasons view requires a larger terminal"
	}

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5A623"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	in := m.snapshot.Inputs
	d := m.snapshot.Derived

	chartWidth := m.width - 6
	if chartWidth > 96 {
		chartWidth = 96
	}
	if chartWidth < 12 {
		chartWidth = 12
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Seasons"))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  day %d · tilt %.1f°", in.DayOfYear, in.ObliquityDeg)))
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Subsolar latitude: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%+.2f°", d.SubsolarLatDeg)))
	b.WriteString(dimStyle.Render(fmt.Sprintf("   tropics ±%.1f°  polar circles ±%.1f°",
		solar.TropicLatitude(in.ObliquityDeg), solar.PolarCircleLatitude(in.ObliquityDeg))))
	b.WriteString("\n\n")

	// Subsolar latitude over the year.
	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Sun's latitude through the year"))
	b.WriteString("\n  ")
	b.WriteString(m.renderYearCurve(chartWidth, in.DayOfYear, func(day int) float64 {
		s := solar.SubsolarLatitude(day, in.ObliquityDeg)
		if in.ObliquityDeg == 0 {
			return 0.5
		}
		return (s/in.ObliquityDeg + 1) / 2
	}, "220", "39"))
	b.WriteString("\n")
	b.WriteString(m.renderMonthAxis(chartWidth))
	b.WriteString("\n\n")

	// Day length at the observer over the year.
	b.WriteString("  ")
	b.WriteString(labelStyle.Render(fmt.Sprintf("Daylight in %s (lat %.1f°)", in.Observer.Name, in.Observer.LatDeg)))
	b.WriteString("\n  ")
	b.WriteString(m.renderYearCurve(chartWidth, in.DayOfYear, func(day int) float64 {
		s := solar.SubsolarLatitude(day, in.ObliquityDeg)
		return solar.DayLength(in.Observer.LatDeg, s) / 24
	}, "222", "31"))
	b.WriteString("\n")
	b.WriteString(m.renderMonthAxis(chartWidth))
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Today here: "))
	if d.HasSunrise {
		b.WriteString(valueStyle.Render(fmt.Sprintf("%.1fh of daylight, rise %s set %s (solar time)",
			d.DayLengthHours, formatHour(d.SunriseHour), formatHour(d.SunsetHour))))
	} else if d.DayLengthHours >= 24 {
		b.WriteString(valueStyle.Render("midnight sun, no sunset"))
	} else {
		b.WriteString(valueStyle.Render("polar night, no sunrise"))
	}
	b.WriteString("\n")

	return b.String()
}

// renderYearCurve draws a one-line sparkline of a yearly quantity
// normalized to 0..1, with the current day highlighted.
func (m SeasonsViewModel) renderYearCurve(width, currentDay int, value func(day int) float64, color, lowColor string) string {
	var b strings.Builder
	for i := 0; i < width; i++ {
		day := 1 + i*364/(width-1)
		v := value(day)
		if v < 0 {
			v = 0
		}
		if v > 1 {
			v = 1
		}

		idx := int(v * 7)
		if idx > 7 {
			idx = 7
		}
		block := sparklineBlocks[idx]

		c := lowColor
		if v >= 0.5 {
			c = color
		}
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(c))
		if dayMatchesColumn(currentDay, i, width) {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Bold(true)
		}
		b.WriteString(style.Render(string(block)))
	}
	return b.String()
}

// dayMatchesColumn reports whether a chart column represents the
// current day.
func dayMatchesColumn(day, col, width int) bool {
	return (day-1)*(width-1)/364 == col
}

// renderMonthAxis draws month initials under a year chart.
func (m SeasonsViewModel) renderMonthAxis(width int) string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	months := "JFMAMJJASOND"

	axis := make([]byte, width)
	for i := range axis {
		axis[i] = ' '
	}
	for i := 0; i < len(months); i++ {
		pos := i * width / len(months)
		if pos < width {
			axis[pos] = months[i]
		}
	}
	return "  " + dimStyle.Render(string(axis))
}

// sparklineBlocks are the Unicode block characters for sparklines.
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
