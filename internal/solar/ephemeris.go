package solar

import (
	"math"
	"time"
)

// Declination returns the sun's declination in degrees for a real
// instant, using a simplified solar ephemeris based on the Astronomical
// Almanac (accuracy ~0.01°). This drives the "now" mode; the slider
// demos use SubsolarLatitude, whose anchor days are exact by contract.
func Declination(t time.Time) float64 {
	_, dec := apparentSun(t)
	return dec
}

// SubsolarPoint returns the latitude and longitude (degrees) of the
// point directly beneath the sun at a real instant. The longitude
// combines the UTC clock with the equation of time, so it is the true
// solar noon meridian rather than the mean one.
func SubsolarPoint(t time.Time) (latDeg, lonDeg float64) {
	utc := t.UTC()
	latDeg = Declination(utc)

	minutes := float64(utc.Hour()*60+utc.Minute()) +
		float64(utc.Second())/60 +
		float64(utc.Nanosecond())/6e10

	lonDeg = normalizeLongitude((720 - (minutes + equationOfTime(utc))) / 4)
	return latDeg, lonDeg
}

// DayOfYear returns the 1-based ordinal day for a time, folded into
// [1, 365] so the 365-day teaching formulas accept it directly.
func DayOfYear(t time.Time) int {
	d := t.YearDay()
	if d > 365 {
		d = 365
	}
	return d
}

// apparentSun returns the sun's apparent ecliptic longitude and
// declination in degrees.
func apparentSun(t time.Time) (lonDeg, decDeg float64) {
	T := julianCenturies(t)

	// Mean longitude and mean anomaly of the Sun (degrees)
	L0 := normalizeAngle360(280.46646 + 36000.76983*T + 0.0003032*T*T)
	M := normalizeAngle360(357.52911 + 35999.05029*T - 0.0001537*T*T)
	Mrad := degToRad(M)

	// Equation of center
	C := (1.914602-0.004817*T-0.000014*T*T)*math.Sin(Mrad) +
		(0.019993-0.000101*T)*math.Sin(2*Mrad) +
		0.000289*math.Sin(3*Mrad)

	// Apparent longitude, corrected for aberration and nutation
	omega := 125.04 - 1934.136*T
	lonDeg = L0 + C - 0.00569 - 0.00478*math.Sin(degToRad(omega))

	// Corrected obliquity
	eps := meanObliquity(T) + 0.00256*math.Cos(degToRad(omega))

	decDeg = radToDeg(math.Asin(math.Sin(degToRad(eps)) * math.Sin(degToRad(lonDeg))))
	return lonDeg, decDeg
}

// equationOfTime returns the offset between apparent and mean solar time
// in minutes for a given instant.
func equationOfTime(t time.Time) float64 {
	T := julianCenturies(t)

	L0 := normalizeAngle360(280.46646 + 36000.76983*T + 0.0003032*T*T)
	M := normalizeAngle360(357.52911 + 35999.05029*T - 0.0001537*T*T)
	e := 0.016708634 - T*(0.000042037+0.0000001267*T)

	eps := meanObliquity(T)
	y := math.Tan(degToRad(eps) / 2)
	y *= y

	L0rad := degToRad(L0)
	Mrad := degToRad(M)

	return 4 * radToDeg(
		y*math.Sin(2*L0rad)-
			2*e*math.Sin(Mrad)+
			4*e*y*math.Sin(Mrad)*math.Cos(2*L0rad)-
			0.5*y*y*math.Sin(4*L0rad)-
			1.25*e*e*math.Sin(2*Mrad))
}

// meanObliquity returns the mean obliquity of the ecliptic in degrees
// for Julian centuries T from J2000.0.
func meanObliquity(T float64) float64 {
	return 23.439291 - 0.0130042*T - 0.00000016*T*T + 0.000000504*T*T*T
}

// julianCenturies returns Julian centuries from J2000.0.
func julianCenturies(t time.Time) float64 {
	return (julianDate(t) - 2451545.0) / 36525.0
}

// julianDate calculates the Julian Date for a given time.
func julianDate(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	h := float64(t.Hour())
	min := float64(t.Minute())
	sec := float64(t.Second())
	ns := float64(t.Nanosecond())

	dayFrac := (h + min/60 + sec/3600 + ns/3600e9) / 24.0

	// January/February count as months 13/14 of the previous year
	if m <= 2 {
		y--
		m += 12
	}

	// Gregorian calendar correction
	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + B - 1524.5
}

// normalizeAngle360 normalizes an angle to 0-360 degrees.
func normalizeAngle360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
