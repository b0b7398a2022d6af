// Package stores supplies store inventory snapshots to the search engine.
package stores

import (
	"context"
	"math"

	"medisearch/internal/models"
)

// Provider is the store/inventory collaborator: it returns the stores near
// a location, each with its nested listings. The snapshot it returns is
// immutable for the duration of one search.
type Provider interface {
	FetchStores(ctx context.Context, loc models.Location) ([]models.Store, error)
	Name() string
}

const earthRadiusKm = 6371.0

// haversineKm returns the great-circle distance between two coordinates.
func haversineKm(a, b models.Location) float64 {
	lat1 := a.Latitude * math.Pi / 180
	lat2 := b.Latitude * math.Pi / 180
	dLat := (b.Latitude - a.Latitude) * math.Pi / 180
	dLng := (b.Longitude - a.Longitude) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	return earthRadiusKm * 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// roundKm rounds a distance to one decimal for display and cache keys.
func roundKm(km float64) float64 {
	return math.Round(km*10) / 10
}
