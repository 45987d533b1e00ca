// Package geocode resolves place names to coordinates, either through
// the Open-Meteo geocoding API or from the built-in city catalog when
// offline.
package geocode

import (
	"context"
	"errors"
	"math"

	"github.com/litescript/ls-globe/internal/geo"
)

// ErrNoResults is returned when a lookup succeeds but matches nothing.
var ErrNoResults = errors.New("geocode: no results")

// Place is one geocoding result.
type Place struct {
	Name      string
	Country   string
	LatDeg    float64
	LonDeg    float64
	UTCOffset float64
}

// Observer converts a place to an observer. Coordinates are sanitized
// so downstream math never sees out-of-range values.
func (p Place) Observer() geo.Observer {
	return geo.NewObserver(p.Name, p.LatDeg, p.LonDeg, p.UTCOffset)
}

// Provider resolves a free-form place name.
type Provider interface {
	// Name identifies the provider in logs and the UI.
	Name() string

	// Lookup returns the best match for a place name, or ErrNoResults.
	Lookup(ctx context.Context, query string) (Place, error)
}

// EstimateUTCOffset derives a civil offset from longitude alone, for
// providers that do not return timezone data. Each 15° of longitude is
// one hour; the result is rounded to the nearest whole hour.
func EstimateUTCOffset(lonDeg float64) float64 {
	return math.Round(geo.NormalizeLongitude(lonDeg) / 15)
}

// CatalogProvider resolves names against a city catalog. It is the
// offline fallback and never touches the network.
type CatalogProvider struct {
	catalog *geo.Catalog
}

// NewCatalogProvider wraps a catalog as a Provider. A nil catalog uses
// the built-in city table.
func NewCatalogProvider(catalog *geo.Catalog) *CatalogProvider {
	if catalog == nil {
		catalog = geo.DefaultCatalog()
	}
	return &CatalogProvider{catalog: catalog}
}

// Name implements Provider.
func (p *CatalogProvider) Name() string {
	return "catalog"
}

// Lookup implements Provider.
func (p *CatalogProvider) Lookup(_ context.Context, query string) (Place, error) {
	city, ok := p.catalog.Find(query)
	if !ok {
		return Place{}, ErrNoResults
	}
	return Place{
		Name:      city.Name,
		LatDeg:    city.LatDeg,
		LonDeg:    city.LonDeg,
		UTCOffset: city.UTCOffset,
	}, nil
}

// Chain tries providers in order, returning the first hit. A provider
// error other than ErrNoResults falls through to the next provider;
// the last error is returned if nothing matches.
type Chain struct {
	providers []Provider
}

// NewChain builds a provider chain.
func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Name implements Provider.
func (c *Chain) Name() string {
	return "chain"
}

// Lookup implements Provider.
func (c *Chain) Lookup(ctx context.Context, query string) (Place, error) {
	err := ErrNoResults
	for _, p := range c.providers {
		place, lookupErr := p.Lookup(ctx, query)
		if lookupErr == nil {
			return place, nil
		}
		err = lookupErr
	}
	return Place{}, err
}
