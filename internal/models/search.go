package models

// SearchQuery is the normalized form of the user's raw input: an ordered
// list of non-empty, trimmed terms. Duplicates are retained.
type SearchQuery struct {
	Terms []string `json:"terms"`
}

// Len returns the number of terms, duplicates included.
func (q SearchQuery) Len() int {
	return len(q.Terms)
}

// Unique returns the distinct terms in first-seen order, for display layers
// that want a deduplicated view. Matching always uses Terms.
func (q SearchQuery) Unique() []string {
	seen := make(map[string]struct{}, len(q.Terms))
	out := make([]string, 0, len(q.Terms))
	for _, t := range q.Terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// MatchedMedicine is one query term resolved against a store listing.
type MatchedMedicine struct {
	SearchTerm           string  `json:"searchTerm"`
	Name                 string  `json:"name"`
	Category             string  `json:"category"`
	Price                float64 `json:"price"`
	StockQuantity        int     `json:"stockQuantity"`
	RequiresPrescription bool    `json:"requiresPrescription"`
}

// StoreResult is one store's answer to a search query.
//
// Invariant: len(AvailableMedicines) + len(MissingMedicines) == query length;
// every term is accounted for exactly once.
type StoreResult struct {
	Store              Store             `json:"store"`
	AvailableMedicines []MatchedMedicine `json:"availableMedicines"`
	MissingMedicines   []string          `json:"missingMedicines"`
	TotalPrice         float64           `json:"totalPrice"`
	PriorityScore      float64           `json:"priorityScore"`
	EstimatedDelivery  string            `json:"estimatedDelivery"`
}

// IsComplete reports whether the store can fulfill the entire request.
func (r *StoreResult) IsComplete() bool {
	return len(r.MissingMedicines) == 0
}

// SortMode selects the primary comparator of the result pipeline.
type SortMode string

const (
	SortByPriority SortMode = "priority"
	SortByNearest  SortMode = "nearest"
	SortByCheapest SortMode = "cheapest"
	SortByRating   SortMode = "best-rated"
)

// SearchFilters are the optional user-selected result filters.
type SearchFilters struct {
	MaxDistanceKm *float64 `json:"maxDistanceKm,omitempty"`
	MinRating     *float64 `json:"minRating,omitempty"`
}
