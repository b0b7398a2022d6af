// Package match resolves a search query against per-store inventories.
package match

import (
	"strings"

	"medisearch/internal/engine/prescription"
	"medisearch/internal/models"
)

// FindListing scans the store's listings in their given order and returns
// the first in-stock listing whose name contains the term as a
// case-insensitive substring. First match wins; listing order is the
// store's own merchandising order and is never reordered here.
func FindListing(store models.Store, term string) (models.MedicineListing, bool) {
	t := strings.ToLower(term)
	for _, l := range store.Medicines {
		if l.Availability != models.AvailabilityInStock {
			continue
		}
		if strings.Contains(strings.ToLower(l.Name), t) {
			return l, true
		}
	}
	return models.MedicineListing{}, false
}

// Aggregate matches every query term against the store and partitions the
// terms into available and missing. Prices are unit prices at search time;
// quantities are an order-time concept.
//
// Returns nil when the store has no available medicine at all: such stores
// are excluded from the result set entirely.
func Aggregate(store models.Store, query models.SearchQuery, classifier prescription.Classifier) *models.StoreResult {
	result := &models.StoreResult{
		Store:            store,
		MissingMedicines: []string{},
	}

	for _, term := range query.Terms {
		listing, ok := FindListing(store, term)
		if !ok {
			result.MissingMedicines = append(result.MissingMedicines, term)
			continue
		}

		result.AvailableMedicines = append(result.AvailableMedicines, models.MatchedMedicine{
			SearchTerm:           term,
			Name:                 listing.Name,
			Category:             listing.Category,
			Price:                listing.Price,
			StockQuantity:        listing.StockQuantity,
			RequiresPrescription: classifier.RequiresPrescription(listing.Name),
		})
		result.TotalPrice += listing.Price
	}

	if len(result.AvailableMedicines) == 0 {
		return nil
	}

	return result
}
