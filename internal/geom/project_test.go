package geom

import (
	"math"
	"testing"
)

func TestCameraProject_CenterIsOrigin(t *testing.T) {
	cam := NewCamera(40, 116)
	center := SphericalToCartesian(40, 116, 1, cam.Convention)

	x, y, front := cam.Project(center, 1)
	if !front {
		t.Fatal("camera center should be on the front hemisphere")
	}
	if math.Abs(x) > 1e-9 || math.Abs(y) > 1e-9 {
		t.Errorf("center projects to (%v, %v), want origin", x, y)
	}
}

func TestCameraProject_Orientation(t *testing.T) {
	cam := NewCamera(0, 0)
	conv := cam.Convention

	tests := []struct {
		name     string
		lat, lon float64
		check    func(x, y float64) bool
		desc     string
	}{
		{"north is up", 30, 0, func(x, y float64) bool { return y > 0 && math.Abs(x) < 1e-9 }, "y>0"},
		{"south is down", -30, 0, func(x, y float64) bool { return y < 0 }, "y<0"},
		{"east is right", 0, 30, func(x, y float64) bool { return x > 0 && math.Abs(y) < 1e-9 }, "x>0"},
		{"west is left", 0, -30, func(x, y float64) bool { return x < 0 }, "x<0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := SphericalToCartesian(tt.lat, tt.lon, 1, conv)
			x, y, front := cam.Project(v, 1)
			if !front {
				t.Fatalf("point at (%v,%v) should be visible", tt.lat, tt.lon)
			}
			if !tt.check(x, y) {
				t.Errorf("(%v,%v) projects to (%v,%v), want %s", tt.lat, tt.lon, x, y, tt.desc)
			}
		})
	}
}

func TestCameraProject_BackHemisphereCulled(t *testing.T) {
	cam := NewCamera(0, 0)
	far := SphericalToCartesian(10, 170, 1, cam.Convention)
	if _, _, front := cam.Project(far, 1); front {
		t.Error("point near the antimeridian should be on the back hemisphere")
	}
}

func TestCameraUnproject_RoundTrip(t *testing.T) {
	cams := []Camera{
		NewCamera(0, 0),
		NewCamera(40, 116),
		NewCamera(-33, -71),
		NewCamera(75, 10),
	}

	for _, cam := range cams {
		for _, lat := range []float64{-60, -10, 0, 25, 60} {
			for _, lon := range []float64{-150, -40, 0, 77, 150} {
				v := SphericalToCartesian(lat, lon, 1, cam.Convention)
				x, y, front := cam.Project(v, 1)
				if !front {
					continue
				}

				gotLat, gotLon, ok := cam.Unproject(x, y)
				if !ok {
					t.Fatalf("cam(%v,%v): unproject(%v,%v) off disc",
						cam.CenterLatDeg, cam.CenterLonDeg, x, y)
				}
				if math.Abs(gotLat-lat) > 1e-6 || math.Abs(angleDiff(gotLon, lon)) > 1e-6 {
					t.Errorf("cam(%v,%v): (%v,%v) round-tripped to (%v,%v)",
						cam.CenterLatDeg, cam.CenterLonDeg, lat, lon, gotLat, gotLon)
				}
			}
		}
	}
}

func TestCameraUnproject_OffDisc(t *testing.T) {
	cam := NewCamera(0, 0)
	if _, _, ok := cam.Unproject(0.9, 0.9); ok {
		t.Error("point outside the unit disc should not unproject")
	}
}

func TestCameraUnproject_DiscEdge(t *testing.T) {
	cam := NewCamera(0, 0)
	lat, _, ok := cam.Unproject(0, 1)
	if !ok {
		t.Fatal("top of the disc should unproject")
	}
	if math.Abs(lat-90) > 1e-6 {
		t.Errorf("top of disc lat = %v, want 90 (north pole)", lat)
	}
}

// angleDiff returns the smallest signed difference between two angles
// in degrees.
func angleDiff(a, b float64) float64 {
	d := math.Mod(a-b, 360)
	if d > 180 {
		d -= 360
	} else if d < -180 {
		d += 360
	}
	return d
}
