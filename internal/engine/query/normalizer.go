// Package query normalizes raw user input into a search query.
package query

import (
	"strings"

	apperrors "medisearch/internal/common/errors"
	"medisearch/internal/models"
)

// Normalize splits raw input on commas, trims each piece and drops empty
// pieces. Duplicate terms are retained: each occurrence is matched and
// counted independently downstream, keeping the completeness partition
// exact. Returns EMPTY_QUERY when nothing usable remains.
func Normalize(raw string) (models.SearchQuery, error) {
	parts := strings.Split(raw, ",")
	terms := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t == "" {
			continue
		}
		terms = append(terms, t)
	}

	if len(terms) == 0 {
		return models.SearchQuery{}, apperrors.NewEmptyQueryError(raw)
	}

	return models.SearchQuery{Terms: terms}, nil
}
