package geo

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// cityFile is the on-disk shape of a user city catalog:
//
//	cities:
//	  - name: Beijing
//	    lat: 39.9
//	    lon: 116.4
//	    utc_offset: 8
//	    aliases: [Peking]
type cityFile struct {
	Cities []cityEntry `yaml:"cities"`
}

type cityEntry struct {
	Name      string   `yaml:"name"`
	Lat       float64  `yaml:"lat"`
	Lon       float64  `yaml:"lon"`
	UTCOffset float64  `yaml:"utc_offset"`
	Aliases   []string `yaml:"aliases"`
}

// LoadCities reads extra catalog rows from a YAML file. Latitudes are
// clamped and longitudes normalized; entries without a name are
// rejected.
func LoadCities(path string) ([]City, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading city file: %w", err)
	}
	return ParseCities(data)
}

// ParseCities decodes catalog rows from YAML bytes.
func ParseCities(data []byte) ([]City, error) {
	var file cityFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing city file: %w", err)
	}
	cities := make([]City, 0, len(file.Cities))
	for i, e := range file.Cities {
		if e.Name == "" {
			return nil, fmt.Errorf("city entry %d: missing name", i)
		}
		cities = append(cities, City{
			Name:      e.Name,
			LatDeg:    ClampLatitude(e.Lat),
			LonDeg:    NormalizeLongitude(e.Lon),
			UTCOffset: e.UTCOffset,
			Aliases:   e.Aliases,
		})
	}
	return cities, nil
}
