// Package search orchestrates the matching, ranking and sorting pipeline
// over a store provider. The pipeline itself is pure and deterministic:
// given a fixed query and a fixed store snapshot it always produces the
// same ordered list.
package search

import (
	"context"
	"time"

	apperrors "medisearch/internal/common/errors"
	"medisearch/internal/common/logger"
	"medisearch/internal/common/metrics"
	"medisearch/internal/engine/match"
	"medisearch/internal/engine/pipeline"
	"medisearch/internal/engine/prescription"
	"medisearch/internal/engine/query"
	"medisearch/internal/engine/rank"
	"medisearch/internal/models"
	"medisearch/internal/stores"
)

// Request is one user-initiated search. SessionID scopes the stale-result
// guard: searches from the same session supersede each other, searches from
// different sessions never interact. An empty SessionID opts out of the
// guard entirely.
type Request struct {
	RawQuery  string
	SessionID string
	Location  models.Location
	Filters   models.SearchFilters
	SortMode  models.SortMode
}

// Response is the ranked result list. Results may be empty: a valid query
// that no store can serve is an empty-result state, not an error. Stale is
// set when a later search committed first; the caller must discard the
// response.
type Response struct {
	Query   models.SearchQuery    `json:"query"`
	Results []*models.StoreResult `json:"results"`
	Token   uint64                `json:"-"`
	Stale   bool                  `json:"-"`
}

type Service struct {
	provider   stores.Provider
	classifier prescription.Classifier
	guards     *GuardRegistry
	logger     logger.Logger
}

func NewService(provider stores.Provider, classifier prescription.Classifier, log logger.Logger) *Service {
	return &Service{
		provider:   provider,
		classifier: classifier,
		guards:     NewGuardRegistry(),
		logger:     log.WithFields(map[string]interface{}{"component": "search"}),
	}
}

// Search runs the full pipeline: normalize, match per store, rank, filter,
// sort, and overlay the completeness partition.
func (s *Service) Search(ctx context.Context, req Request) (*Response, error) {
	started := time.Now()

	q, err := query.Normalize(req.RawQuery)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("empty_query").Inc()
		return nil, err
	}

	var guard *SessionGuard
	var token uint64
	if req.SessionID != "" {
		guard = s.guards.For(req.SessionID)
		token = guard.Next()
	}

	storeList, err := s.provider.FetchStores(ctx, req.Location)
	if err != nil {
		metrics.SearchesTotal.WithLabelValues("provider_error").Inc()
		return nil, apperrors.NewStoreFetchFailedError(err)
	}

	results := make([]*models.StoreResult, 0, len(storeList))
	for _, store := range storeList {
		r := match.Aggregate(store, q, s.classifier)
		if r == nil {
			continue
		}
		rank.Score(r, q.Len())
		results = append(results, r)
	}

	results = pipeline.Run(results, req.Filters, req.SortMode)

	resp := &Response{Query: q, Results: results, Token: token}
	if guard != nil && !guard.Commit(token) {
		metrics.StaleSearchesDiscarded.Inc()
		resp.Stale = true
		return resp, nil
	}

	outcome := "ok"
	if len(results) == 0 {
		outcome = "no_stores_matched"
	}
	metrics.SearchesTotal.WithLabelValues(outcome).Inc()
	metrics.SearchDuration.WithLabelValues(s.provider.Name()).Observe(time.Since(started).Seconds())
	metrics.SearchResultCount.Observe(float64(len(results)))

	s.logger.Debug("search completed", map[string]interface{}{
		"terms":   q.Len(),
		"results": len(results),
		"token":   token,
	})

	return resp, nil
}
