package stores

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"medisearch/internal/common/logger"
	"medisearch/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
)

// ElasticsearchProvider fetches store documents from a search index,
// geo-filtered around the user location. Listings are embedded in each
// store document; distance is derived client-side so the engine sees the
// same Store shape regardless of provider.
type ElasticsearchProvider struct {
	client   *elasticsearch.Client
	index    string
	radiusKm float64
	maxCount int
	logger   logger.Logger
}

func NewElasticsearchProvider(client *elasticsearch.Client, index string, maxCount int, log logger.Logger) *ElasticsearchProvider {
	if maxCount <= 0 {
		maxCount = 50
	}
	return &ElasticsearchProvider{
		client:   client,
		index:    index,
		radiusKm: 25,
		maxCount: maxCount,
		logger:   log.WithFields(map[string]interface{}{"provider": "elasticsearch"}),
	}
}

func (p *ElasticsearchProvider) Name() string { return "elasticsearch" }

type esStoreDoc struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Address        string `json:"address"`
	Phone          string `json:"phone"`
	Location       struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"location"`
	Rating         float64 `json:"rating"`
	Open24x7       bool    `json:"open24x7"`
	OperatingHours string  `json:"operatingHours"`
	Medicines      []struct {
		Name          string  `json:"name"`
		Category      string  `json:"category"`
		Price         float64 `json:"price"`
		StockQuantity int     `json:"stockQuantity"`
		Availability  string  `json:"availability"`
	} `json:"medicines"`
}

type esSearchEnvelope struct {
	Hits struct {
		Hits []struct {
			Source esStoreDoc `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

func (p *ElasticsearchProvider) FetchStores(ctx context.Context, loc models.Location) ([]models.Store, error) {
	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"filter": []interface{}{
					map[string]interface{}{
						"geo_distance": map[string]interface{}{
							"distance": fmt.Sprintf("%.0fkm", p.radiusKm),
							"location": map[string]interface{}{
								"lat": loc.Latitude,
								"lon": loc.Longitude,
							},
						},
					},
				},
			},
		},
	}

	body, _ := json.Marshal(queryBody)
	size := p.maxCount

	req := esapi.SearchRequest{
		Index: []string{p.index},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}

	res, err := req.Do(ctx, p.client)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search error: %s", res.Status())
	}

	var envelope esSearchEnvelope
	if err := json.NewDecoder(res.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("decode elasticsearch response: %w", err)
	}

	out := make([]models.Store, 0, len(envelope.Hits.Hits))
	for _, hit := range envelope.Hits.Hits {
		out = append(out, p.toStore(hit.Source, loc))
	}
	return out, nil
}

func (p *ElasticsearchProvider) toStore(doc esStoreDoc, loc models.Location) models.Store {
	s := models.Store{
		ID:             doc.ID,
		Name:           doc.Name,
		Address:        doc.Address,
		Phone:          doc.Phone,
		Rating:         doc.Rating,
		Open24x7:       doc.Open24x7,
		OperatingHours: doc.OperatingHours,
	}
	s.DistanceKm = roundKm(haversineKm(loc, models.Location{
		Latitude:  doc.Location.Lat,
		Longitude: doc.Location.Lon,
	}))
	for _, m := range doc.Medicines {
		s.Medicines = append(s.Medicines, models.MedicineListing{
			Name:          m.Name,
			Category:      m.Category,
			Price:         m.Price,
			StockQuantity: m.StockQuantity,
			Availability:  models.AvailabilityStatus(m.Availability),
		})
	}
	return s
}
