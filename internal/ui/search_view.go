package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-globe/internal/geocode"
	"github.com/litescript/ls-globe/internal/state"
)

// startLookupMsg asks the root model to begin an async geocode.
type startLookupMsg struct {
	query string
}

// SearchViewModel lets the user type a place name and switch the
// observer to the geocoded result.
type SearchViewModel struct {
	width  int
	height int

	input  string
	typing bool

	lastQuery  string
	lastResult geocode.Place
	lastErr    error
	haveResult bool

	snapshot state.Snapshot
}

// NewSearchViewModel creates a new search view model.
func NewSearchViewModel() SearchViewModel {
	return SearchViewModel{typing: true}
}

// SetSize updates the viewport size.
func (m SearchViewModel) SetSize(width, height int) SearchViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates with a new data snapshot.
func (m SearchViewModel) UpdateData(snapshot state.Snapshot) SearchViewModel {
	m.snapshot = snapshot
	return m
}

// Typing reports whether the view is capturing keystrokes.
func (m SearchViewModel) Typing() bool {
	return m.typing
}

// SetResult records a finished lookup for display.
func (m SearchViewModel) SetResult(place geocode.Place, err error) SearchViewModel {
	m.lastResult = place
	m.lastErr = err
	m.haveResult = true
	m.typing = true
	return m
}

// Update handles messages.
func (m SearchViewModel) Update(msg tea.Msg) (SearchViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			query := strings.TrimSpace(m.input)
			if query == "" {
				return m, nil
			}
			m.lastQuery = query
			m.haveResult = false
			m.input = ""
			return m, func() tea.Msg { return startLookupMsg{query: query} }

		case "esc":
			m.input = ""

		case "backspace":
			if len(m.input) > 0 {
				runes := []rune(m.input)
				m.input = string(runes[:len(runes)-1])
			}

		default:
			if msg.Type == tea.KeyRunes {
				m.input += string(msg.Runes)
			} else if msg.Type == tea.KeySpace {
				m.input += " "
			}
		}
	}
	return m, nil
}

// View renders the search view.
func (m SearchViewModel) View() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5A623"))
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	valueStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#E84A27"))
	inputStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("231"))

	in := m.snapshot.Inputs

	var b strings.Builder
	b.WriteString(titleStyle.Render("Find a place"))
	b.WriteString("\n\n")

	b.WriteString("  ")
	b.WriteString(labelStyle.Render("Search: "))
	b.WriteString(inputStyle.Render(m.input))
	b.WriteString(inputStyle.Render("▌"))
	b.WriteString("\n\n")

	switch {
	case m.snapshot.LookupPending:
		b.WriteString("  ")
		b.WriteString(dimStyle.Render(fmt.Sprintf("Looking up %q...", m.lastQuery)))
		b.WriteString("\n")

	case m.haveResult && m.lastErr != nil:
		b.WriteString("  ")
		b.WriteString(errorStyle.Render(fmt.Sprintf("Could not find %q: %v", m.lastQuery, m.lastErr)))
		b.WriteString("\n")

	case m.haveResult:
		place := m.lastResult
		b.WriteString("  ")
		b.WriteString(labelStyle.Render("Found: "))
		name := place.Name
		if place.Country != "" {
			name += ", " + place.Country
		}
		b.WriteString(valueStyle.Render(name))
		b.WriteString("\n  ")
		b.WriteString(dimStyle.Render(fmt.Sprintf("lat %.2f° lon %.2f° UTC%+.1f",
			place.LatDeg, place.LonDeg, place.UTCOffset)))
		b.WriteString("\n")
	}

	b.WriteString("\n  ")
	b.WriteString(labelStyle.Render("Tracking: "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%s (%.1f°, %.1f°)",
		in.Observer.Name, in.Observer.LatDeg, in.Observer.LonDeg)))
	b.WriteString("\n")

	return b.String()
}
