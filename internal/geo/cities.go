package geo

// City is a catalog row: a named observer with known civil UTC offset.
type City struct {
	Name      string
	LatDeg    float64
	LonDeg    float64
	UTCOffset float64
	Aliases   []string
}

// Observer converts a catalog row to an Observer.
func (c City) Observer() Observer {
	return NewObserver(c.Name, c.LatDeg, c.LonDeg, c.UTCOffset)
}

// Cities is the built-in reference table used by the clock demo and as
// the offline geocoding fallback. Offsets are standard (non-DST) time.
var Cities = []City{
	{Name: "Beijing", LatDeg: 39.9, LonDeg: 116.4, UTCOffset: 8},
	{Name: "Shanghai", LatDeg: 31.2, LonDeg: 121.5, UTCOffset: 8},
	{Name: "Urumqi", LatDeg: 43.8, LonDeg: 87.6, UTCOffset: 8, Aliases: []string{"Wulumuqi"}},
	{Name: "Lhasa", LatDeg: 29.7, LonDeg: 91.1, UTCOffset: 8},
	{Name: "Tokyo", LatDeg: 35.7, LonDeg: 139.7, UTCOffset: 9},
	{Name: "Singapore", LatDeg: 1.35, LonDeg: 103.8, UTCOffset: 8},
	{Name: "New Delhi", LatDeg: 28.6, LonDeg: 77.2, UTCOffset: 5.5, Aliases: []string{"Delhi"}},
	{Name: "Moscow", LatDeg: 55.8, LonDeg: 37.6, UTCOffset: 3},
	{Name: "Cairo", LatDeg: 30.0, LonDeg: 31.2, UTCOffset: 2},
	{Name: "Paris", LatDeg: 48.9, LonDeg: 2.35, UTCOffset: 1},
	{Name: "London", LatDeg: 51.5, LonDeg: -0.1, UTCOffset: 0, Aliases: []string{"Greenwich"}},
	{Name: "Reykjavik", LatDeg: 64.1, LonDeg: -21.9, UTCOffset: 0},
	{Name: "Rio de Janeiro", LatDeg: -22.9, LonDeg: -43.2, UTCOffset: -3, Aliases: []string{"Rio"}},
	{Name: "New York", LatDeg: 40.7, LonDeg: -74.0, UTCOffset: -5, Aliases: []string{"NYC"}},
	{Name: "Mexico City", LatDeg: 19.4, LonDeg: -99.1, UTCOffset: -6},
	{Name: "Los Angeles", LatDeg: 34.1, LonDeg: -118.2, UTCOffset: -8, Aliases: []string{"LA"}},
	{Name: "Anchorage", LatDeg: 61.2, LonDeg: -149.9, UTCOffset: -9},
	{Name: "Honolulu", LatDeg: 21.3, LonDeg: -157.9, UTCOffset: -10},
	{Name: "Sydney", LatDeg: -33.9, LonDeg: 151.2, UTCOffset: 10},
	{Name: "Wellington", LatDeg: -41.3, LonDeg: 174.8, UTCOffset: 12},
	{Name: "Nairobi", LatDeg: -1.3, LonDeg: 36.8, UTCOffset: 3},
	{Name: "Cape Town", LatDeg: -33.9, LonDeg: 18.4, UTCOffset: 2},
	{Name: "Buenos Aires", LatDeg: -34.6, LonDeg: -58.4, UTCOffset: -3},
	{Name: "Longyearbyen", LatDeg: 78.2, LonDeg: 15.6, UTCOffset: 1},
	{Name: "McMurdo Station", LatDeg: -77.8, LonDeg: 166.7, UTCOffset: 12, Aliases: []string{"McMurdo"}},
	{Name: "Quito", LatDeg: -0.2, LonDeg: -78.5, UTCOffset: -5},
}

// Catalog is a looked-up city table. The default catalog wraps the
// built-in Cities; demos may extend it from a YAML file.
type Catalog struct {
	cities []City
	byName map[string]City
}

// NewCatalog builds a catalog with normalized-name lookup over the
// given rows. Later rows win name collisions.
func NewCatalog(cities []City) *Catalog {
	c := &Catalog{
		cities: cities,
		byName: make(map[string]City, len(cities)*2),
	}
	for _, city := range cities {
		c.byName[normalizeName(city.Name)] = city
		for _, alias := range city.Aliases {
			c.byName[normalizeName(alias)] = city
		}
	}
	return c
}

// DefaultCatalog returns a catalog over the built-in city table.
func DefaultCatalog() *Catalog {
	return NewCatalog(Cities)
}

// Find returns the city for a name or alias, case-insensitively.
func (c *Catalog) Find(name string) (City, bool) {
	city, ok := c.byName[normalizeName(name)]
	return city, ok
}

// All returns the catalog rows in table order.
func (c *Catalog) All() []City {
	return c.cities
}

// Len returns the number of rows.
func (c *Catalog) Len() int {
	return len(c.cities)
}

// Extend returns a new catalog with extra rows appended. The receiver
// is unchanged; extra rows win lookup collisions.
func (c *Catalog) Extend(extra []City) *Catalog {
	merged := make([]City, 0, len(c.cities)+len(extra))
	merged = append(merged, c.cities...)
	merged = append(merged, extra...)
	return NewCatalog(merged)
}

// normalizeName lowercases a name for matching.
func normalizeName(name string) string {
	result := make([]byte, 0, len(name))
	for i := 0; i < len(name); i++ {
		ch := name[i]
		if ch >= 'A' && ch <= 'Z' {
			ch = ch + ('a' - 'A')
		}
		result = append(result, ch)
	}
	return string(result)
}
