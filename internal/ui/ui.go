// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-globe/internal/geo"
	"github.com/litescript/ls-globe/internal/geocode"
	"github.com/litescript/ls-globe/internal/state"
	"github.com/litescript/ls-globe/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewGlobe ViewMode = iota
	ViewSeasons
	ViewClock
	ViewSearch
)

// Msg types for Bubble Tea
type (
	// TickMsg advances the simulated clock.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// lookupResultMsg carries an async geocode result.
	lookupResultMsg struct {
		place geocode.Place
		err   error
	}
)

// lookupTimeout bounds a single geocode request.
const lookupTimeout = 15 * time.Second

// eventFlash is how long a fresh event stays in the footer before the
// regular status returns.
const eventFlash = 5 * time.Second

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state    *state.Manager
	geocoder geocode.Provider

	// UI state
	viewMode ViewMode
	width    int
	height   int
	ready    bool
	animTick int

	tickInterval time.Duration

	// Sub-models
	globe   GlobeViewModel
	seasons SeasonsViewModel
	clock   ClockViewModel
	search  SearchViewModel

	// Data snapshot (refreshed on ticks)
	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(stateMgr *state.Manager, geocoder geocode.Provider, catalog *geo.Catalog, tickInterval time.Duration) Model {
	if catalog == nil {
		catalog = geo.DefaultCatalog()
	}
	if tickInterval <= 0 {
		tickInterval = 100 * time.Millisecond
	}
	m := Model{
		state:        stateMgr,
		geocoder:     geocoder,
		viewMode:     ViewGlobe,
		tickInterval: tickInterval,
		globe:        NewGlobeViewModel(),
		seasons:      NewSeasonsViewModel(),
		clock:        NewClockViewModel(catalog),
		search:       NewSearchViewModel(),
	}
	m.snapshot = stateMgr.Snapshot()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tickCmd(),
		animTickCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// The search view owns the keyboard while typing.
		if m.viewMode == ViewSearch && m.search.Typing() {
			switch msg.String() {
			case "ctrl+c":
				return m, tea.Quit
			case "esc":
				m.viewMode = ViewGlobe
				return m, nil
			case "tab":
				m.viewMode = (m.viewMode + 1) % 4
				return m, nil
			}
			return m.updateSearch(msg)
		}

		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "g":
			m.viewMode = ViewGlobe
		case "2", "s":
			m.viewMode = ViewSeasons
		case "3", "c":
			m.viewMode = ViewClock
		case "4", "/":
			m.viewMode = ViewSearch

		case "tab":
			m.viewMode = (m.viewMode + 1) % 4

		case " ":
			m.state.TogglePlaying()
			m.snapshot = m.state.Snapshot()

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Header takes 3 lines, footer 2
		contentHeight := msg.Height - 5
		m.globe = m.globe.SetSize(msg.Width, contentHeight)
		m.seasons = m.seasons.SetSize(msg.Width, contentHeight)
		m.clock = m.clock.SetSize(msg.Width, contentHeight)
		m.search = m.search.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, m.tickCmd())
		m.state.Advance()
		m.snapshot = m.state.Snapshot()
		m = m.pushSnapshot()

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case lookupResultMsg:
		if msg.err != nil {
			m.state.FinishLookup(geo.Observer{}, msg.err)
		} else {
			m.state.FinishLookup(msg.place.Observer(), nil)
		}
		m.snapshot = m.state.Snapshot()
		m = m.pushSnapshot()
		m.search = m.search.SetResult(msg.place, msg.err)

	case startLookupMsg:
		m.state.BeginLookup()
		m.snapshot = m.state.Snapshot()
		cmds = append(cmds, m.lookupCmd(msg.query))

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

// pushSnapshot propagates the latest snapshot to all sub-models.
func (m Model) pushSnapshot() Model {
	m.globe = m.globe.UpdateData(m.snapshot)
	m.seasons = m.seasons.UpdateData(m.snapshot)
	m.clock = m.clock.UpdateData(m.snapshot)
	m.search = m.search.UpdateData(m.snapshot)
	return m
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewGlobe:
		m.globe, cmd = m.globe.Update(msg, m.state)
	case ViewSeasons:
		m.seasons, cmd = m.seasons.Update(msg, m.state)
	case ViewClock:
		m.clock, cmd = m.clock.Update(msg, m.state)
	case ViewSearch:
		return nil
	}
	return cmd
}

func (m Model) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewGlobe:
		content = m.globe.View()
	case ViewSeasons:
		content = m.seasons.View()
	case ViewClock:
		content = m.clock.View()
	case ViewSearch:
		content = m.search.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5A623"))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	title := titleStyle.Render("  ls-globe") +
		muted.Render(fmt.Sprintf("  ·  solar geometry explorer  ·  v%s", version.Version))

	return title + "\n" + m.renderTabs() + "\n"
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Globe", "[2] Seasons", "[3] Clock", "[4] Search"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F5A623")).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	var parts []string
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#F5A623"))

	in := m.snapshot.Inputs

	var status string
	if m.snapshot.LookupPending {
		spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		status = accentStyle.Render(spinnerFrames[m.animTick%len(spinnerFrames)]) +
			dimStyle.Render(" looking up place...")
	} else if m.snapshot.LookupError != nil {
		status = errorStyle.Render("lookup: " + m.snapshot.LookupError.Error())
	} else if e, ok := freshEvent(m.snapshot.Events); ok {
		status = accentStyle.Render(describeEvent(e))
	} else {
		play := "⏸ paused"
		if in.Playing {
			play = "▶ playing"
		}
		status = dimStyle.Render(fmt.Sprintf("%s | day %d | %s UTC | %s",
			play, in.DayOfYear, formatHour(in.UTCHour), in.Observer.Name))
	}

	var help string
	switch m.viewMode {
	case ViewGlobe:
		help = dimStyle.Render("←/→ ↑/↓: rotate | f: frame | G: grid | space: play")
	case ViewSeasons:
		help = dimStyle.Render("←/→: day | +/-: tilt | e/j/d: equinox/solstices")
	case ViewClock:
		help = dimStyle.Render("←/→: hour | space: play | j/k: select city")
	case ViewSearch:
		help = dimStyle.Render("type a place name | enter: search | esc: back")
	}

	return "  " + status + "  " + dimStyle.Render("|") + "  " + help
}

// freshEvent returns the latest event if it happened within the flash
// window. Events arrive chronologically ordered.
func freshEvent(events []state.Event) (state.Event, bool) {
	if len(events) == 0 {
		return state.Event{}, false
	}
	e := events[len(events)-1]
	if time.Since(e.Timestamp) >= eventFlash {
		return state.Event{}, false
	}
	return e, true
}

// describeEvent renders an event for the footer.
func describeEvent(e state.Event) string {
	switch e.Type {
	case state.EventSunrise:
		return "☀ sunrise at " + e.Observer
	case state.EventSunset:
		return "☾ sunset at " + e.Observer
	case state.EventObserverChanged:
		return "◉ now tracking " + e.Observer
	case state.EventLookupFailed:
		return "lookup failed: " + e.Detail
	}
	return string(e.Type)
}

// formatHour renders a fractional hour as HH:MM.
func formatHour(h float64) string {
	hh := int(h)
	mm := int((h - float64(hh)) * 60)
	return fmt.Sprintf("%02d:%02d", hh, mm)
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// lookupCmd resolves a place name asynchronously.
func (m Model) lookupCmd(query string) tea.Cmd {
	geocoder := m.geocoder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), lookupTimeout)
		defer cancel()

		place, err := geocoder.Lookup(ctx, query)
		return lookupResultMsg{place: place, err: err}
	}
}
