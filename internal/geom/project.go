package geom

import (
	"math"
)

// Camera is an orthographic globe camera looking at the sphere from
// outside, centered on a latitude/longitude. North is up, east is right.
type Camera struct {
	CenterLatDeg float64
	CenterLonDeg float64
	Convention   Convention
}

// NewCamera returns a camera centered on the given point.
func NewCamera(latDeg, lonDeg float64) Camera {
	return Camera{
		CenterLatDeg: latDeg,
		CenterLonDeg: lonDeg,
		Convention:   DefaultConvention(),
	}
}

// Project maps a scene vector on (or near) the sphere of the given
// radius to normalized screen coordinates in [-1, 1]: x grows eastward,
// y grows northward. front is false for points on the far hemisphere.
func (c Camera) Project(v Vec3, radius float64) (x, y float64, front bool) {
	if radius <= 0 {
		return 0, 0, false
	}

	view := c.toView(v.Scale(1 / radius))

	// +X in view space points at the camera. With east at -Z a point
	// east of center has negative view Z, which must land screen-right.
	x = -view.Z
	y = view.Y
	if !c.Convention.EastIsNegativeZ {
		x = -x
	}
	return x, y, view.X > 0
}

// Unproject maps normalized screen coordinates on the visible disc back
// to latitude/longitude on the sphere. ok is false off the disc.
func (c Camera) Unproject(x, y float64) (latDeg, lonDeg float64, ok bool) {
	if x*x+y*y > 1 {
		return 0, 0, false
	}

	vz := -x
	if !c.Convention.EastIsNegativeZ {
		vz = x
	}
	view := Vec3{
		X: math.Sqrt(math.Max(0, 1-x*x-y*y)),
		Y: y,
		Z: vz,
	}

	lat, lon := LatLon(c.fromView(view), c.Convention)
	return lat, lon, true
}

// toView rotates a unit scene vector into camera view space, where the
// camera center lies on +X.
func (c Camera) toView(p Vec3) Vec3 {
	// Undo the center longitude, then tilt the center latitude down to
	// the equator. Composition mirrors SphericalToCartesian.
	p = rotateLon(p, -c.CenterLonDeg, c.Convention)

	phi := degToRad(c.CenterLatDeg)
	cp, sp := math.Cos(phi), math.Sin(phi)
	return Vec3{
		X: p.X*cp + p.Y*sp,
		Y: p.Y*cp - p.X*sp,
		Z: p.Z,
	}
}

// fromView is the inverse of toView.
func (c Camera) fromView(p Vec3) Vec3 {
	phi := degToRad(c.CenterLatDeg)
	cp, sp := math.Cos(phi), math.Sin(phi)
	p = Vec3{
		X: p.X*cp - p.Y*sp,
		Y: p.Y*cp + p.X*sp,
		Z: p.Z,
	}
	return rotateLon(p, c.CenterLonDeg, c.Convention)
}

// rotateLon shifts a vector by deg degrees of longitude under the
// scene convention.
func rotateLon(p Vec3, deg float64, conv Convention) Vec3 {
	if conv.EastIsNegativeZ {
		return p.RotateY(deg)
	}
	return p.RotateY(-deg)
}
