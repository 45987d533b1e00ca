// Package solar provides the solar geometry math behind the demos:
// subsolar point, day length, sunrise/sunset and longitude-based time.
package solar

import (
	"math"
)

// DefaultObliquity is Earth's axial tilt in degrees (23°26').
// Every formula takes obliquity as a parameter so the demos can show
// hypothetical tilts; this is the real value.
const DefaultObliquity = 23.4367

// poleLatitude is the latitude threshold beyond which tan(lat) is treated
// as singular. Inputs at or past it are pulled back to the threshold.
const poleLatitude = 89.999

// SubsolarLatitude returns the latitude (degrees) at which the sun is
// directly overhead on the given day of the year (1-365).
//
// Uses the classroom declination approximation
//
//	obliquity * sin((284 + day) * 360/365)
//
// which is exact at the anchor days: ~0° at day 80 (spring equinox),
// +obliquity at day 173 (summer solstice), -obliquity at day 356
// (winter solstice). The year is always 365 days; there is no leap-year
// correction by design.
func SubsolarLatitude(dayOfYear int, obliquityDeg float64) float64 {
	return obliquityDeg * math.Sin(degToRad(float64(284+dayOfYear)*360.0/365.0))
}

// DayLength returns the length of daylight in hours [0, 24] for an
// observer at latDeg when the subsolar point is at subsolarDeg.
// 24 means polar day, 0 means polar night.
func DayLength(latDeg, subsolarDeg float64) float64 {
	// Inside a polar circle the sun either never sets or never rises,
	// depending on whether the observer shares the subsolar hemisphere.
	if subsolarDeg != 0 && math.Abs(latDeg) >= 90-math.Abs(subsolarDeg) {
		if sameHemisphere(latDeg, subsolarDeg) {
			return 24
		}
		return 0
	}

	// tan(90°) is singular; pull pole latitudes back to the threshold.
	// Reachable only at equinox (subsolar 0), where the result is the
	// continuity value of 12h.
	lat := latDeg
	if math.Abs(lat) >= poleLatitude {
		lat = math.Copysign(poleLatitude, lat)
	}

	cosH := -math.Tan(degToRad(lat)) * math.Tan(degToRad(subsolarDeg))
	switch {
	case cosH <= -1:
		return 24
	case cosH >= 1:
		return 0
	}

	return math.Acos(cosH) * 24 / math.Pi
}

// SunriseSunset returns sunrise and sunset in local solar hours.
// ok is false during polar day or polar night, when the sun does not
// cross the horizon.
func SunriseSunset(latDeg, subsolarDeg float64) (rise, set float64, ok bool) {
	length := DayLength(latDeg, subsolarDeg)
	if length == 0 || length == 24 {
		return 0, 0, false
	}
	return 12 - length/2, 12 + length/2, true
}

// LocalTime returns the local solar hour [0, 24) for a UTC hour and a
// longitude in degrees (east positive). Each 15° of longitude is one
// hour; the result is always non-negative regardless of input signs.
func LocalTime(utcHour, lonDeg float64) float64 {
	h := math.Mod(utcHour+lonDeg/15, 24)
	if h < 0 {
		h += 24
	}
	return h
}

// IsDaytime reports whether localHour falls between sunrise and sunset
// for the given latitude and subsolar latitude. Polar day is always
// daytime, polar night never.
func IsDaytime(localHour, latDeg, subsolarDeg float64) bool {
	rise, set, ok := SunriseSunset(latDeg, subsolarDeg)
	if !ok {
		return DayLength(latDeg, subsolarDeg) == 24
	}
	return rise <= localHour && localHour < set
}

// NoonMeridian returns the longitude (degrees, in (-180, 180]) where the
// local solar time is 12:00 at the given UTC hour.
func NoonMeridian(utcHour float64) float64 {
	return normalizeLongitude((12 - utcHour) * 15)
}

// DawnMeridian returns the longitude where the local solar time is 06:00,
// 90° west of the noon meridian.
func DawnMeridian(utcHour float64) float64 {
	return normalizeLongitude(NoonMeridian(utcHour) - 90)
}

// DuskMeridian returns the longitude where the local solar time is 18:00.
func DuskMeridian(utcHour float64) float64 {
	return normalizeLongitude(NoonMeridian(utcHour) + 90)
}

// TropicLatitude returns the tropic circle latitude for an obliquity:
// the highest latitude the subsolar point reaches.
func TropicLatitude(obliquityDeg float64) float64 {
	return obliquityDeg
}

// PolarCircleLatitude returns the polar circle latitude for an obliquity:
// the lowest latitude that sees polar day at solstice.
func PolarCircleLatitude(obliquityDeg float64) float64 {
	return 90 - obliquityDeg
}

// sameHemisphere reports whether two latitudes are on the same side of
// the equator. Zero is treated as northern, which callers never rely on.
func sameHemisphere(a, b float64) bool {
	return (a >= 0) == (b >= 0)
}

// normalizeLongitude maps a longitude into (-180, 180].
func normalizeLongitude(lon float64) float64 {
	lon = math.Mod(lon, 360)
	if lon > 180 {
		lon -= 360
	} else if lon <= -180 {
		lon += 360
	}
	return lon
}

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}
