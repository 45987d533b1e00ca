// Package state provides thread-safe state management for the application.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-globe/internal/geo"
	"github.com/litescript/ls-globe/internal/solar"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventSunrise         EventType = "SUNRISE"
	EventSunset          EventType = "SUNSET"
	EventObserverChanged EventType = "OBSERVER_CHANGED"
	EventLookupFailed    EventType = "LOOKUP_FAILED"
)

// Event represents a state change at the tracked observer.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Observer  string    `json:"observer,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Inputs are the user-controlled quantities everything else derives
// from.
type Inputs struct {
	// DayOfYear is 1..365.
	DayOfYear int

	// UTCHour is [0, 24).
	UTCHour float64

	// ObliquityDeg is the axial tilt driving the seasonal cycle.
	ObliquityDeg float64

	// Observer is the tracked location.
	Observer geo.Observer

	// Playing reports whether the simulated clock advances on ticks.
	Playing bool

	// HoursPerTick is the simulated time added per animation tick.
	HoursPerTick float64
}

// Derived holds the solar quantities computed from Inputs. All values
// refer to the tracked observer.
type Derived struct {
	SubsolarLatDeg float64
	DayLengthHours float64
	SunriseHour    float64
	SunsetHour     float64
	HasSunrise     bool
	LocalSolarHour float64
	Daytime        bool
	NoonLonDeg     float64
	DawnLonDeg     float64
	DuskLonDeg     float64
}

// Snapshot is an immutable view of current state.
type Snapshot struct {
	Inputs  Inputs
	Derived Derived
	Events  []Event

	// Lookup bookkeeping for the search view.
	LookupPending bool
	LookupError   error
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	inputs Inputs

	// Lookup bookkeeping
	lookupPending bool
	lookupError   error

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	// Daytime flag from the previous derive, for sunrise detection.
	prevDaytime bool
	hasPrev     bool
}

// Config holds configuration for the state manager.
type Config struct {
	DayOfYear    int
	UTCHour      float64
	ObliquityDeg float64
	Observer     geo.Observer
	HoursPerTick float64
	MaxEvents    int
}

// DefaultConfig returns sensible default configuration: Beijing at the
// June solstice, noon UTC.
func DefaultConfig() Config {
	return Config{
		DayOfYear:    172,
		UTCHour:      12,
		ObliquityDeg: solar.DefaultObliquity,
		Observer:     geo.NewObserver("Beijing", 39.9, 116.4, 8),
		HoursPerTick: 0.05,
		MaxEvents:    50,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	m := &Manager{
		inputs: Inputs{
			DayOfYear:    clampDay(cfg.DayOfYear),
			UTCHour:      wrapHour(cfg.UTCHour),
			ObliquityDeg: cfg.ObliquityDeg,
			Observer:     cfg.Observer,
			HoursPerTick: cfg.HoursPerTick,
		},
		maxEvents: maxEvents,
		events:    make([]Event, 0, maxEvents),
	}
	return m
}

// Advance moves the simulated clock forward. Crossing midnight UTC
// advances the day of year, wrapping at 365. No-op when paused.
func (m *Manager) Advance() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.inputs.Playing {
		return
	}

	h := m.inputs.UTCHour + m.inputs.HoursPerTick
	for h >= 24 {
		h -= 24
		m.inputs.DayOfYear++
		if m.inputs.DayOfYear > 365 {
			m.inputs.DayOfYear = 1
		}
	}
	m.inputs.UTCHour = h

	m.detectDaytimeEvents()
}

// SetObserver switches the tracked location and records an event.
func (m *Manager) SetObserver(o geo.Observer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.inputs.Observer = o
	m.hasPrev = false
	m.addEvent(Event{
		Type:      EventObserverChanged,
		Timestamp: time.Now(),
		Observer:  o.Name,
	})
}

// SetDayOfYear sets the simulated date, clamped to 1..365.
func (m *Manager) SetDayOfYear(day int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs.DayOfYear = clampDay(day)
	m.detectDaytimeEvents()
}

// SetUTCHour sets the simulated time of day, wrapped into [0, 24).
func (m *Manager) SetUTCHour(h float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs.UTCHour = wrapHour(h)
	m.detectDaytimeEvents()
}

// SetObliquity sets the axial tilt.
func (m *Manager) SetObliquity(deg float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if deg < 0 {
		deg = 0
	}
	if deg > 89.9 {
		deg = 89.9
	}
	m.inputs.ObliquityDeg = deg
	m.detectDaytimeEvents()
}

// TogglePlaying flips the animation state and reports the new value.
func (m *Manager) TogglePlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.inputs.Playing = !m.inputs.Playing
	return m.inputs.Playing
}

// SetHoursPerTick adjusts animation speed.
func (m *Manager) SetHoursPerTick(h float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h < 0 {
		h = 0
	}
	m.inputs.HoursPerTick = h
}

// BeginLookup marks a geocoding request as in flight.
func (m *Manager) BeginLookup() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lookupPending = true
	m.lookupError = nil
}

// FinishLookup records a lookup result. On success the observer
// switches to the resolved place; on failure the previous observer is
// retained and the error recorded.
func (m *Manager) FinishLookup(o geo.Observer, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lookupPending = false
	m.lookupError = err
	if err != nil {
		m.addEvent(Event{
			Type:      EventLookupFailed,
			Timestamp: time.Now(),
			Detail:    err.Error(),
		})
		return
	}

	m.inputs.Observer = o
	m.hasPrev = false
	m.addEvent(Event{
		Type:      EventObserverChanged,
		Timestamp: time.Now(),
		Observer:  o.Name,
	})
}

// Snapshot returns a consistent snapshot of current state with all
// derived solar quantities.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return Snapshot{
		Inputs:        m.inputs,
		Derived:       derive(m.inputs),
		Events:        m.getEventsOrdered(),
		LookupPending: m.lookupPending,
		LookupError:   m.lookupError,
	}
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// derive computes solar quantities for the current inputs.
func derive(in Inputs) Derived {
	s := solar.SubsolarLatitude(in.DayOfYear, in.ObliquityDeg)
	obs := in.Observer

	d := Derived{
		SubsolarLatDeg: s,
		DayLengthHours: solar.DayLength(obs.LatDeg, s),
		LocalSolarHour: solar.LocalTime(in.UTCHour, obs.LonDeg),
		NoonLonDeg:     solar.NoonMeridian(in.UTCHour),
		DawnLonDeg:     solar.DawnMeridian(in.UTCHour),
		DuskLonDeg:     solar.DuskMeridian(in.UTCHour),
	}
	d.SunriseHour, d.SunsetHour, d.HasSunrise = solar.SunriseSunset(obs.LatDeg, s)
	d.Daytime = solar.IsDaytime(d.LocalSolarHour, obs.LatDeg, s)
	return d
}

// detectDaytimeEvents records sunrise/sunset transitions at the
// observer. Caller holds the lock.
func (m *Manager) detectDaytimeEvents() {
	now := derive(m.inputs).Daytime
	if m.hasPrev && now != m.prevDaytime {
		t := EventSunset
		if now {
			t = EventSunrise
		}
		m.addEvent(Event{
			Type:      t,
			Timestamp: time.Now(),
			Observer:  m.inputs.Observer.Name,
		})
	}
	m.prevDaytime = now
	m.hasPrev = true
}

// addEvent adds an event to the ring buffer. Caller holds the lock.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// getEventsOrdered returns events in chronological order. Caller holds
// the lock.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

func clampDay(day int) int {
	if day < 1 {
		return 1
	}
	if day > 365 {
		return 365
	}
	return day
}

func wrapHour(h float64) float64 {
	for h < 0 {
		h += 24
	}
	for h >= 24 {
		h -= 24
	}
	return h
}
