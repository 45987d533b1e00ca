package geom

import (
	"math"
)

// Convention pins down the scene's handedness. With EastIsNegativeZ set
// (the default), increasing east longitude maps to -Z, which makes the
// globe's visible rotation match its eastward spin. It is a display
// choice, but it must be the same choice everywhere, so it is threaded
// through every sampler instead of being re-derived per formula.
type Convention struct {
	EastIsNegativeZ bool
}

// DefaultConvention returns the scene handedness used by the demos.
func DefaultConvention() Convention {
	return Convention{EastIsNegativeZ: true}
}

// DefaultStepDeg is the sampling step used when a caller passes a
// non-positive step. Sampling density is a display concern only.
const DefaultStepDeg = 2.0

// SphericalToCartesian maps a latitude/longitude (degrees) at a radius
// to scene coordinates: x = r·cos(lat)·cos(lon), y = r·sin(lat),
// z = ∓r·cos(lat)·sin(lon) per the convention.
func SphericalToCartesian(latDeg, lonDeg, radius float64, conv Convention) Vec3 {
	lat := degToRad(latDeg)
	lon := degToRad(lonDeg)

	z := radius * math.Cos(lat) * math.Sin(lon)
	if conv.EastIsNegativeZ {
		z = -z
	}

	return Vec3{
		X: radius * math.Cos(lat) * math.Cos(lon),
		Y: radius * math.Sin(lat),
		Z: z,
	}
}

// LatLon recovers latitude and longitude (degrees) from a scene vector.
// The zero vector maps to (0, 0).
func LatLon(v Vec3, conv Convention) (latDeg, lonDeg float64) {
	r := v.Norm()
	if r < 1e-12 {
		return 0, 0
	}

	z := v.Z
	if conv.EastIsNegativeZ {
		z = -z
	}

	return radToDeg(math.Asin(v.Y / r)), radToDeg(math.Atan2(z, v.X))
}

// ParallelPoints samples a full circle of constant latitude at the given
// radius, stepping lonStepDeg degrees of longitude per point.
func ParallelPoints(latDeg, radius, lonStepDeg float64, conv Convention) []Vec3 {
	if lonStepDeg <= 0 {
		lonStepDeg = DefaultStepDeg
	}

	n := int(360 / lonStepDeg)
	points := make([]Vec3, 0, n)
	for lon := -180.0; lon < 180; lon += lonStepDeg {
		points = append(points, SphericalToCartesian(latDeg, lon, radius, conv))
	}
	return points
}

// MeridianPoints samples a half great circle of constant longitude from
// the south pole to the north pole, stepping latStepDeg per point.
func MeridianPoints(lonDeg, radius, latStepDeg float64, conv Convention) []Vec3 {
	if latStepDeg <= 0 {
		latStepDeg = DefaultStepDeg
	}

	n := int(180/latStepDeg) + 1
	points := make([]Vec3, 0, n)
	for lat := -90.0; lat <= 90; lat += latStepDeg {
		points = append(points, SphericalToCartesian(lat, lonDeg, radius, conv))
	}
	return points
}

// GridConfig configures geodesic grid sampling.
type GridConfig struct {
	Radius        float64
	ParallelStep  float64 // spacing between parallels in degrees of latitude
	MeridianStep  float64 // spacing between meridians in degrees of longitude
	SampleStepDeg float64 // sampling step along each circle
	Convention    Convention
}

// DefaultGridConfig returns the graticule used by the globe view:
// parallels every 15°, meridians every 15°, 2° sampling.
func DefaultGridConfig(radius float64) GridConfig {
	return GridConfig{
		Radius:        radius,
		ParallelStep:  15,
		MeridianStep:  15,
		SampleStepDeg: DefaultStepDeg,
		Convention:    DefaultConvention(),
	}
}

// Grid holds a sampled graticule: one point slice per parallel and per
// meridian. Purely derived display geometry, recomputed on demand.
type Grid struct {
	Parallels [][]Vec3
	Meridians [][]Vec3
}

// GeodesicGrid samples parallels and meridians per the config. The
// equator is always included; poles are excluded (zero-length circles).
func GeodesicGrid(cfg GridConfig) Grid {
	if cfg.ParallelStep <= 0 {
		cfg.ParallelStep = 15
	}
	if cfg.MeridianStep <= 0 {
		cfg.MeridianStep = 15
	}

	var g Grid
	for lat := -90 + cfg.ParallelStep; lat < 90; lat += cfg.ParallelStep {
		g.Parallels = append(g.Parallels,
			ParallelPoints(lat, cfg.Radius, cfg.SampleStepDeg, cfg.Convention))
	}
	for lon := -180.0; lon < 180; lon += cfg.MeridianStep {
		g.Meridians = append(g.Meridians,
			MeridianPoints(lon, cfg.Radius, cfg.SampleStepDeg, cfg.Convention))
	}
	return g
}

// SunDirection returns the unit vector toward the sun for a subsolar
// latitude, in the scene frame where the noon meridian is at scene
// longitude 0. Perpendicular to the terminator basis by construction.
func SunDirection(subsolarDeg float64) Vec3 {
	s := degToRad(subsolarDeg)
	return Vec3{X: math.Cos(s), Y: math.Sin(s), Z: 0}
}

// SunRay returns a ray of the given length pointing from the sun toward
// the planet center, for drawing incoming light. A degenerate direction
// falls back to the zero vector rather than propagating NaN.
func SunRay(subsolarDeg, length float64) Vec3 {
	dir := SunDirection(subsolarDeg).Normalized()
	return dir.Scale(-length)
}

// TerminatorPoints parametrizes the great circle perpendicular to the
// sun direction: basis v1 = (-sin s, cos s, 0), v2 = (0, 0, 1), point(θ)
// = r·(cosθ·v1 + sinθ·v2). θ ∈ [0°,180°) is the dawn half, [180°,360°)
// the dusk half; increasing θ advances local time.
func TerminatorPoints(subsolarDeg, radius, stepDeg float64) []Vec3 {
	return terminatorArc(subsolarDeg, radius, stepDeg, 0, 360)
}

// TerminatorDawn samples only the dawn half of the terminator.
func TerminatorDawn(subsolarDeg, radius, stepDeg float64) []Vec3 {
	return terminatorArc(subsolarDeg, radius, stepDeg, 0, 180)
}

// TerminatorDusk samples only the dusk half of the terminator.
func TerminatorDusk(subsolarDeg, radius, stepDeg float64) []Vec3 {
	return terminatorArc(subsolarDeg, radius, stepDeg, 180, 360)
}

func terminatorArc(subsolarDeg, radius, stepDeg, fromDeg, toDeg float64) []Vec3 {
	if stepDeg <= 0 {
		stepDeg = DefaultStepDeg
	}

	s := degToRad(subsolarDeg)
	v1 := Vec3{X: -math.Sin(s), Y: math.Cos(s), Z: 0}
	v2 := Vec3{X: 0, Y: 0, Z: 1}

	n := int((toDeg - fromDeg) / stepDeg)
	points := make([]Vec3, 0, n)
	for theta := fromDeg; theta < toDeg; theta += stepDeg {
		t := degToRad(theta)
		p := v1.Scale(math.Cos(t)).Add(v2.Scale(math.Sin(t))).Scale(radius)
		points = append(points, p)
	}
	return points
}
