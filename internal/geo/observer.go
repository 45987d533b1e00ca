// Package geo provides observer locations and the static city catalog.
package geo

import (
	"math"
)

// Observer is a point on the globe with an optional civil UTC offset.
// Any latitude/longitude pair is accepted as input; constructors clamp
// and normalize rather than reject.
type Observer struct {
	Name      string
	LatDeg    float64 // north positive, clamped to [-90, 90]
	LonDeg    float64 // east positive, normalized into (-180, 180]
	UTCOffset float64 // civil offset in hours, e.g. +8 for Beijing
}

// NewObserver builds an observer with clamped latitude and normalized
// longitude.
func NewObserver(name string, latDeg, lonDeg, utcOffset float64) Observer {
	return Observer{
		Name:      name,
		LatDeg:    ClampLatitude(latDeg),
		LonDeg:    NormalizeLongitude(lonDeg),
		UTCOffset: utcOffset,
	}
}

// ClampLatitude clamps a latitude into [-90, 90]. NaN clamps to 0.
func ClampLatitude(lat float64) float64 {
	switch {
	case math.IsNaN(lat):
		return 0
	case lat > 90:
		return 90
	case lat < -90:
		return -90
	}
	return lat
}

// NormalizeLongitude maps a longitude into (-180, 180]. NaN maps to 0.
func NormalizeLongitude(lon float64) float64 {
	if math.IsNaN(lon) {
		return 0
	}
	lon = math.Mod(lon, 360)
	if lon > 180 {
		lon -= 360
	} else if lon <= -180 {
		lon += 360
	}
	return lon
}
