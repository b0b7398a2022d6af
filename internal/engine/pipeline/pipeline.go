// Package pipeline filters and orders store results.
package pipeline

import (
	"sort"

	"medisearch/internal/models"
)

// Run applies the optional filters, sorts by the chosen mode and then
// re-imposes the completeness invariant as a final stable partition: a
// store that can fulfill the entire request always outranks one that
// cannot, regardless of sort mode. The input slice is not mutated.
func Run(results []*models.StoreResult, filters models.SearchFilters, mode models.SortMode) []*models.StoreResult {
	filtered := applyFilters(results, filters)
	sortResults(filtered, mode)
	return partitionByCompleteness(filtered)
}

func applyFilters(results []*models.StoreResult, filters models.SearchFilters) []*models.StoreResult {
	out := make([]*models.StoreResult, 0, len(results))
	for _, r := range results {
		if filters.MaxDistanceKm != nil && r.Store.DistanceKm > *filters.MaxDistanceKm {
			continue
		}
		if filters.MinRating != nil && r.Store.Rating < *filters.MinRating {
			continue
		}
		out = append(out, r)
	}
	return out
}

// sortResults orders by the primary key only. Ties keep original order, so
// the sort must be stable.
func sortResults(results []*models.StoreResult, mode models.SortMode) {
	switch mode {
	case models.SortByNearest:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Store.DistanceKm < results[j].Store.DistanceKm
		})
	case models.SortByCheapest:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].TotalPrice < results[j].TotalPrice
		})
	case models.SortByRating:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Store.Rating > results[j].Store.Rating
		})
	default: // SortByPriority
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].PriorityScore > results[j].PriorityScore
		})
	}
}

// partitionByCompleteness is a stable partition, not a re-sort: complete
// results first, relative order preserved within each partition. Implemented
// as a partition rather than a sort key so the invariant holds for any sort
// mode added later.
func partitionByCompleteness(results []*models.StoreResult) []*models.StoreResult {
	complete := make([]*models.StoreResult, 0, len(results))
	incomplete := make([]*models.StoreResult, 0, len(results))
	for _, r := range results {
		if r.IsComplete() {
			complete = append(complete, r)
		} else {
			incomplete = append(incomplete, r)
		}
	}
	return append(complete, incomplete...)
}
