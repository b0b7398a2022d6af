package stores

import (
	"context"
	"database/sql"
	"fmt"

	"medisearch/internal/common/logger"
	"medisearch/internal/models"
)

// PostgresProvider loads stores and their listings from PostgreSQL and
// derives each store's distance from the user location.
type PostgresProvider struct {
	db       *sql.DB
	maxCount int
	logger   logger.Logger
}

func NewPostgresProvider(db *sql.DB, maxCount int, log logger.Logger) *PostgresProvider {
	if maxCount <= 0 {
		maxCount = 50
	}
	return &PostgresProvider{
		db:       db,
		maxCount: maxCount,
		logger:   log.WithFields(map[string]interface{}{"provider": "postgres"}),
	}
}

func (p *PostgresProvider) Name() string { return "postgres" }

const storeQuery = `
SELECT id, name, address, phone, latitude, longitude, rating, open_24x7, operating_hours
FROM stores
ORDER BY id
LIMIT $1`

const listingQuery = `
SELECT name, category, price, stock_quantity, availability
FROM medicine_listings
WHERE store_id = $1
ORDER BY position, name`

func (p *PostgresProvider) FetchStores(ctx context.Context, loc models.Location) ([]models.Store, error) {
	rows, err := p.db.QueryContext(ctx, storeQuery, p.maxCount)
	if err != nil {
		return nil, fmt.Errorf("query stores: %w", err)
	}
	defer rows.Close()

	var out []models.Store
	for rows.Next() {
		var s models.Store
		var lat, lng float64
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.Phone, &lat, &lng,
			&s.Rating, &s.Open24x7, &s.OperatingHours); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		s.DistanceKm = roundKm(haversineKm(loc, models.Location{Latitude: lat, Longitude: lng}))
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stores: %w", err)
	}

	for i := range out {
		listings, err := p.fetchListings(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Medicines = listings
	}

	return out, nil
}

func (p *PostgresProvider) fetchListings(ctx context.Context, storeID string) ([]models.MedicineListing, error) {
	rows, err := p.db.QueryContext(ctx, listingQuery, storeID)
	if err != nil {
		return nil, fmt.Errorf("query listings for %s: %w", storeID, err)
	}
	defer rows.Close()

	var listings []models.MedicineListing
	for rows.Next() {
		var l models.MedicineListing
		if err := rows.Scan(&l.Name, &l.Category, &l.Price, &l.StockQuantity, &l.Availability); err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		listings = append(listings, l)
	}
	return listings, rows.Err()
}
