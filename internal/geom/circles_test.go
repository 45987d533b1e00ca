package geom

import (
	"math"
	"testing"
)

func TestSphericalToCartesian(t *testing.T) {
	conv := DefaultConvention()

	tests := []struct {
		name     string
		lat, lon float64
		want     Vec3
	}{
		{"origin of the grid", 0, 0, Vec3{X: 1}},
		{"north pole", 90, 0, Vec3{Y: 1}},
		{"south pole", -90, 0, Vec3{Y: -1}},
		{"90E on equator maps to -Z", 0, 90, Vec3{Z: -1}},
		{"90W on equator maps to +Z", 0, -90, Vec3{Z: 1}},
		{"antimeridian", 0, 180, Vec3{X: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SphericalToCartesian(tt.lat, tt.lon, 1, conv)
			if got.Sub(tt.want).Norm() > 1e-12 {
				t.Errorf("SphericalToCartesian(%v, %v) = %+v, want %+v",
					tt.lat, tt.lon, got, tt.want)
			}
		})
	}
}

func TestSphericalToCartesian_PositiveZConvention(t *testing.T) {
	conv := Convention{EastIsNegativeZ: false}
	got := SphericalToCartesian(0, 90, 1, conv)
	if got.Sub(Vec3{Z: 1}).Norm() > 1e-12 {
		t.Errorf("90E with east-positive-Z = %+v, want +Z", got)
	}
}

func TestLatLon_RoundTrip(t *testing.T) {
	conv := DefaultConvention()
	for _, lat := range []float64{-89, -45, 0, 30.5, 89} {
		for _, lon := range []float64{-179, -90, 0, 45.25, 179} {
			v := SphericalToCartesian(lat, lon, 2.5, conv)
			gotLat, gotLon := LatLon(v, conv)
			if math.Abs(gotLat-lat) > 1e-9 || math.Abs(gotLon-lon) > 1e-9 {
				t.Errorf("round trip (%v,%v) -> (%v,%v)", lat, lon, gotLat, gotLon)
			}
		}
	}
}

func TestParallelPoints(t *testing.T) {
	points := ParallelPoints(40, 2, 2, DefaultConvention())

	if len(points) != 180 {
		t.Fatalf("len = %d, want 180 (360/2°)", len(points))
	}

	wantY := 2 * math.Sin(degToRad(40))
	for i, p := range points {
		if math.Abs(p.Y-wantY) > 1e-12 {
			t.Fatalf("point %d Y = %v, want constant %v", i, p.Y, wantY)
		}
		if math.Abs(p.Norm()-2) > 1e-12 {
			t.Fatalf("point %d radius = %v, want 2", i, p.Norm())
		}
	}
}

func TestMeridianPoints(t *testing.T) {
	points := MeridianPoints(120, 1, 5, DefaultConvention())

	if len(points) != 37 {
		t.Fatalf("len = %d, want 37 (pole to pole at 5°)", len(points))
	}

	// Endpoints are the poles.
	if points[0].Sub(Vec3{Y: -1}).Norm() > 1e-9 {
		t.Errorf("first point %+v, want south pole", points[0])
	}
	if points[len(points)-1].Sub(Vec3{Y: 1}).Norm() > 1e-9 {
		t.Errorf("last point %+v, want north pole", points[len(points)-1])
	}

	// Interior points keep the requested longitude.
	for _, p := range points[1 : len(points)-1] {
		_, lon := LatLon(p, DefaultConvention())
		if math.Abs(lon-120) > 1e-9 {
			t.Errorf("longitude drifted to %v", lon)
		}
	}
}

func TestMeridianPoints_DefaultStep(t *testing.T) {
	points := MeridianPoints(0, 1, 0, DefaultConvention())
	if len(points) != 91 {
		t.Errorf("len = %d, want 91 (default 2° step)", len(points))
	}
}

func TestGeodesicGrid(t *testing.T) {
	g := GeodesicGrid(DefaultGridConfig(1))

	// Parallels every 15° excluding the poles: -75..75 = 11.
	if len(g.Parallels) != 11 {
		t.Errorf("parallels = %d, want 11", len(g.Parallels))
	}
	// Meridians every 15°: -180..165 = 24.
	if len(g.Meridians) != 24 {
		t.Errorf("meridians = %d, want 24", len(g.Meridians))
	}
}

func TestSunDirection(t *testing.T) {
	tests := []struct {
		subsolar float64
		want     Vec3
	}{
		{0, Vec3{X: 1}},
		{90, Vec3{Y: 1}},
		{23.44, SphericalToCartesian(23.44, 0, 1, DefaultConvention())},
	}

	for _, tt := range tests {
		got := SunDirection(tt.subsolar)
		if got.Sub(tt.want).Norm() > 1e-12 {
			t.Errorf("SunDirection(%v) = %+v, want %+v", tt.subsolar, got, tt.want)
		}
	}
}

func TestSunRay_PointsBackAtPlanet(t *testing.T) {
	ray := SunRay(23.4, 5)
	if math.Abs(ray.Norm()-5) > 1e-12 {
		t.Errorf("ray length = %v, want 5", ray.Norm())
	}
	if ray.Dot(SunDirection(23.4)) >= 0 {
		t.Error("ray should oppose the sun direction")
	}
}

func TestTerminatorPoints_PerpendicularToSun(t *testing.T) {
	for _, s := range []float64{-23.44, -10, 0, 10, 23.44} {
		sun := SunDirection(s)
		for i, p := range TerminatorPoints(s, 1, 10) {
			if math.Abs(p.Dot(sun)) > 1e-9 {
				t.Fatalf("subsolar %v: point %d not on terminator (dot=%v)",
					s, i, p.Dot(sun))
			}
			if math.Abs(p.Norm()-1) > 1e-12 {
				t.Fatalf("subsolar %v: point %d off the sphere", s, i)
			}
		}
	}
}

func TestTerminatorPoints_Count(t *testing.T) {
	if got := len(TerminatorPoints(10, 1, 2)); got != 180 {
		t.Errorf("full circle at 2° = %d points, want 180", got)
	}
	if got := len(TerminatorDawn(10, 1, 2)); got != 90 {
		t.Errorf("dawn half at 2° = %d points, want 90", got)
	}
	if got := len(TerminatorDusk(10, 1, 2)); got != 90 {
		t.Errorf("dusk half at 2° = %d points, want 90", got)
	}
}

func TestTerminatorHalves_LocalTimeSense(t *testing.T) {
	// In the scene frame the noon meridian is at longitude 0, so the dawn
	// half must lie west of noon (negative scene longitude) and the dusk
	// half east, for every point off the spin axis.
	conv := DefaultConvention()
	for _, p := range TerminatorDawn(15, 1, 10) {
		_, lon := LatLon(p, conv)
		if math.Abs(math.Abs(lon)-180) < 1e-9 {
			continue // θ=0 sits on the midnight meridian
		}
		if lon > 0 {
			t.Fatalf("dawn point %+v has eastern longitude %v", p, lon)
		}
	}
	for _, p := range TerminatorDusk(15, 1, 10) {
		if math.Abs(math.Abs(p.Y)-1) < 1e-9 {
			continue
		}
		if _, lon := LatLon(p, conv); lon < 0 {
			t.Fatalf("dusk point %+v has western longitude %v", p, lon)
		}
	}
}

func TestTerminatorAtEquinox_IsPolarMeridian(t *testing.T) {
	// With the sun over the equator the terminator runs through both
	// poles along the ±90° meridians.
	for _, p := range TerminatorPoints(0, 1, 5) {
		if math.Abs(p.X) > 1e-9 {
			t.Fatalf("equinox terminator point %+v leaves the X=0 plane", p)
		}
	}
}
