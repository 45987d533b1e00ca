package ui

import (
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-globe/internal/geom"
	"github.com/litescript/ls-globe/internal/state"
)

const (
	// Terminal cells are roughly twice as tall as wide.
	cellAspect = 2.0

	glyphDay        = '░'
	glyphNight      = '░'
	glyphGrid       = '·'
	glyphEquator    = '─'
	glyphTerminator = '▒'
	glyphSubsolar   = '☀'
	glyphObserver   = '◉'

	colorDay        = "222" // warm yellow
	colorNight      = "24"  // deep blue
	colorGrid       = "60"
	colorEquator    = "66"
	colorDawn       = "51"  // cyan
	colorDusk       = "209" // orange
	colorSubsolar   = "226"
	colorObserver   = "205"
	colorBackground = "236"
)

// GlobeViewModel renders the globe as an orthographic disc with
// day/night shading, the terminator, and the graticule.
type GlobeViewModel struct {
	width  int
	height int

	// Camera tilt and user spin offset, degrees.
	camLat    float64
	lonOffset float64

	// sunFixed keeps the noon meridian centered so the terminator
	// stays put while the earth turns. Off, the camera follows the
	// observer.
	sunFixed bool

	showGrid bool

	snapshot state.Snapshot
}

// NewGlobeViewModel creates a new globe view model.
func NewGlobeViewModel() GlobeViewModel {
	return GlobeViewModel{
		camLat:   20,
		sunFixed: true,
		showGrid: true,
	}
}

// SetSize updates the viewport size.
func (m GlobeViewModel) SetSize(width, height int) GlobeViewModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates with a new data snapshot.
func (m GlobeViewModel) UpdateData(snapshot state.Snapshot) GlobeViewModel {
	m.snapshot = snapshot
	return m
}

// Update handles messages.
func (m GlobeViewModel) Update(msg tea.Msg, _ *state.Manager) (GlobeViewModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left":
			m.lonOffset -= 15
		case "right":
			m.lonOffset += 15
		case "up":
			m.camLat += 10
			if m.camLat > 89 {
				m.camLat = 89
			}
		case "down":
			m.camLat -= 10
			if m.camLat < -89 {
				m.camLat = -89
			}
		case "f":
			m.sunFixed = !m.sunFixed
			m.lonOffset = 0
		case "G":
			m.showGrid = !m.showGrid
		case "r":
			m.camLat = 20
			m.lonOffset = 0
		}
	}
	return m, nil
}

// View renders the globe view.
func (m GlobeViewModel) View() string {
	if m.width < 30 || m.height < 12 {
		return "Globe view requires a larger terminal"
	}

	viewHeight := m.height - 3

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCanvas(m.width, viewHeight))
	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m GlobeViewModel) renderHeader() string {
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F5A623"))
	dimStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("60"))

	d := m.snapshot.Derived
	frame := "sun-fixed"
	if !m.sunFixed {
		frame = "earth-fixed"
	}

	return fmt.Sprintf("%s | %s | %s",
		titleStyle.Render("Globe"),
		dimStyle.Render(frame),
		dimStyle.Render(fmt.Sprintf("subsolar %.1f° | noon at %.0f°", d.SubsolarLatDeg, d.NoonLonDeg)))
}

func (m GlobeViewModel) renderStatus() string {
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))

	in := m.snapshot.Inputs
	d := m.snapshot.Derived

	phase := "night"
	if d.Daytime {
		phase = "day"
	}
	line := fmt.Sprintf(">>> %s (%.1f°, %.1f°) | solar %s (%s) | daylight %.1fh",
		in.Observer.Name, in.Observer.LatDeg, in.Observer.LonDeg,
		formatHour(d.LocalSolarHour), phase, d.DayLengthHours)
	if d.HasSunrise {
		line += fmt.Sprintf(" | rise %s set %s", formatHour(d.SunriseHour), formatHour(d.SunsetHour))
	}

	return accentStyle.Render(line)
}

// cameraSceneLon returns the camera center longitude in the scene
// frame, where the noon meridian sits at longitude zero.
func (m GlobeViewModel) cameraSceneLon() float64 {
	if m.sunFixed {
		return m.lonOffset
	}
	in := m.snapshot.Inputs
	d := m.snapshot.Derived
	return in.Observer.LonDeg - d.NoonLonDeg + m.lonOffset
}

func (m GlobeViewModel) renderCanvas(width, height int) string {
	canvas := make([][]rune, height)
	colors := make([][]lipgloss.Color, height)
	for y := 0; y < height; y++ {
		canvas[y] = make([]rune, width)
		colors[y] = make([]lipgloss.Color, width)
		for x := 0; x < width; x++ {
			canvas[y][x] = ' '
			colors[y][x] = colorBackground
		}
	}

	cx := float64(width) / 2
	cy := float64(height) / 2
	radiusRows := cy - 0.5
	radiusCols := radiusRows * cellAspect
	if maxCols := cx - 1; radiusCols > maxCols {
		radiusCols = maxCols
		radiusRows = radiusCols / cellAspect
	}
	if radiusRows < 2 {
		return ""
	}

	d := m.snapshot.Derived
	s := d.SubsolarLatDeg
	cam := geom.NewCamera(m.camLat, m.cameraSceneLon())

	// Incoming light at the current subsolar latitude.
	light := geom.SunRay(s, 1)

	// Shade the disc cell by cell.
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			sx := (float64(x) - cx) / radiusCols
			sy := (cy - float64(y)) / radiusRows
			lat, sceneLon, ok := cam.Unproject(sx, sy)
			if !ok {
				continue
			}

			if cellDaylit(lat, sceneLon, light, cam.Convention) {
				canvas[y][x] = glyphDay
				colors[y][x] = colorDay
			} else {
				canvas[y][x] = glyphNight
				colors[y][x] = colorNight
			}

			if m.showGrid {
				geoLon := sceneLon + d.NoonLonDeg
				if glyph, color, hit := graticuleCell(lat, geoLon); hit {
					canvas[y][x] = glyph
					colors[y][x] = color
				}
			}
		}
	}

	// Terminator arcs over the shading: dawn half cyan, dusk half
	// orange.
	m.plotPoints(canvas, colors, cam, geom.TerminatorDawn(s, 1, 2), cx, cy, radiusCols, radiusRows, glyphTerminator, colorDawn)
	m.plotPoints(canvas, colors, cam, geom.TerminatorDusk(s, 1, 2), cx, cy, radiusCols, radiusRows, glyphTerminator, colorDusk)

	// Subsolar point sits on the noon meridian, scene longitude zero.
	m.plotMarker(canvas, colors, cam, s, 0, cx, cy, radiusCols, radiusRows, glyphSubsolar, colorSubsolar)

	// Observer marker.
	in := m.snapshot.Inputs
	obsSceneLon := in.Observer.LonDeg - d.NoonLonDeg
	m.plotMarker(canvas, colors, cam, in.Observer.LatDeg, obsSceneLon, cx, cy, radiusCols, radiusRows, glyphObserver, colorObserver)

	var b strings.Builder
	for y := 0; y < height; y++ {
		var run strings.Builder
		runColor := colors[y][0]
		for x := 0; x < width; x++ {
			if colors[y][x] != runColor {
				b.WriteString(lipgloss.NewStyle().Foreground(runColor).Render(run.String()))
				run.Reset()
				runColor = colors[y][x]
			}
			run.WriteRune(canvas[y][x])
		}
		b.WriteString(lipgloss.NewStyle().Foreground(runColor).Render(run.String()))
		if y < height-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// cellDaylit reports whether a surface point faces against the
// incoming sunlight. The terminator itself counts as night.
func cellDaylit(lat, sceneLon float64, light geom.Vec3, conv geom.Convention) bool {
	p := geom.SphericalToCartesian(lat, sceneLon, 1, conv)
	return p.Dot(light) < 0
}

// graticuleCell reports whether a lat/lon cell lies on a grid line.
func graticuleCell(lat, geoLon float64) (rune, lipgloss.Color, bool) {
	const eps = 1.2

	if math.Abs(lat) < eps {
		return glyphEquator, colorEquator, true
	}
	if nearMultiple(lat, 30, eps) {
		return glyphGrid, colorGrid, true
	}
	// Meridian lines crowd together near the poles.
	if math.Abs(lat) < 80 && nearMultiple(normalizeDeg(geoLon), 30, eps) {
		return glyphGrid, colorGrid, true
	}
	return 0, "", false
}

func nearMultiple(v, step, eps float64) bool {
	r := math.Mod(math.Abs(v), step)
	return r < eps || step-r < eps
}

func normalizeDeg(d float64) float64 {
	d = math.Mod(d, 360)
	if d > 180 {
		d -= 360
	}
	if d <= -180 {
		d += 360
	}
	return d
}

func (m GlobeViewModel) plotPoints(canvas [][]rune, colors [][]lipgloss.Color, cam geom.Camera, points []geom.Vec3, cx, cy, radiusCols, radiusRows float64, glyph rune, color lipgloss.Color) {
	for _, p := range points {
		sx, sy, front := cam.Project(p, 1)
		if !front {
			continue
		}
		x := int(math.Round(cx + sx*radiusCols))
		y := int(math.Round(cy - sy*radiusRows))
		if y < 0 || y >= len(canvas) || x < 0 || x >= len(canvas[y]) {
			continue
		}
		canvas[y][x] = glyph
		colors[y][x] = color
	}
}

func (m GlobeViewModel) plotMarker(canvas [][]rune, colors [][]lipgloss.Color, cam geom.Camera, lat, sceneLon, cx, cy, radiusCols, radiusRows float64, glyph rune, color lipgloss.Color) {
	p := geom.SphericalToCartesian(lat, sceneLon, 1, cam.Convention)
	m.plotPoints(canvas, colors, cam, []geom.Vec3{p}, cx, cy, radiusCols, radiusRows, glyph, color)
}
