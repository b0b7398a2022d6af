package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"medisearch/internal/common/config"
	"medisearch/internal/common/logger"
	"medisearch/internal/common/notify"
	"medisearch/internal/engine/order"
	"medisearch/internal/engine/prescription"
	"medisearch/internal/engine/search"
	"medisearch/internal/models"
	"medisearch/internal/orders"
	"medisearch/internal/stores"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*Server, *orders.MemorySink) {
	log := logger.NewTestLogger(t)
	classifier := prescription.NewTableClassifier()
	sink := orders.NewMemorySink()

	srv := NewServer(
		search.NewService(stores.NewSeedProvider(), classifier, log),
		order.NewBuilder(classifier, order.NewTieredPricer(nil)),
		sink,
		notify.NewWithClients(config.NotificationConfig{}, nil, nil, log),
		nil,
		log,
	)
	return srv, sink
}

func doJSON(t *testing.T, srv *Server, method, path string, payload interface{}) *httptest.ResponseRecorder {
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var body struct {
		Error map[string]interface{} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

func TestHealthz(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSearchEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/search", map[string]interface{}{
		"query": "Paracetamol, Cetirizine, Azithromycin",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, []string{"Paracetamol", "Cetirizine", "Azithromycin"}, resp.Terms)
	require.Equal(t, 4, resp.Count)
	assert.Equal(t, "st-medplus-koramangala", resp.Results[0].Store.ID)
	assert.Empty(t, resp.Message)
}

func TestSearchEndpointEmptyQuery(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/search", map[string]interface{}{
		"query": " , ,",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "EMPTY_QUERY", decodeError(t, rec)["code"])
}

func TestSearchEndpointMissingQuery(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/search", map[string]interface{}{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchEndpointInvalidSortMode(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/search", map[string]interface{}{
		"query":  "Paracetamol",
		"sortBy": "fastest",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchEndpointIndependentSessions(t *testing.T) {
	srv, _ := newTestServer(t)

	// Interleaved searches from different clients must all succeed; one
	// client's activity can never stale another's response.
	for i := 0; i < 3; i++ {
		for _, session := range []string{"client-a", "client-b"} {
			rec := doJSON(t, srv, http.MethodPost, "/api/search", map[string]interface{}{
				"query":     "Paracetamol",
				"sessionId": session,
			})
			assert.Equal(t, http.StatusOK, rec.Code)
		}
	}
}

func TestSearchEndpointNoStoresMatched(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/search", map[string]interface{}{
		"query": "Remdesivir",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp searchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Zero(t, resp.Count)
	assert.Equal(t, "NO_STORES_MATCHED", resp.Message)
}

func otcStoreResult() models.StoreResult {
	return models.StoreResult{
		Store: models.Store{ID: "st-1", Name: "Test Pharmacy", DistanceKm: 2.0, Rating: 4.5},
		AvailableMedicines: []models.MatchedMedicine{
			{SearchTerm: "Paracetamol", Name: "Paracetamol 500mg Tablet", Category: "Pain Relief", Price: 85},
		},
		MissingMedicines: []string{},
		TotalPrice:       85,
	}
}

func regulatedStoreResult() models.StoreResult {
	r := otcStoreResult()
	r.AvailableMedicines = append(r.AvailableMedicines, models.MatchedMedicine{
		SearchTerm: "Azithromycin", Name: "Azithromycin 500mg Tablet", Category: "Antibiotics", Price: 100,
		RequiresPrescription: true,
	})
	r.TotalPrice += 100
	return r
}

func TestCreateOrderEndpoint(t *testing.T) {
	srv, sink := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/orders", map[string]interface{}{
		"store":           otcStoreResult(),
		"deliveryType":    "DELIVERY",
		"deliveryAddress": "12 MG Road",
		"paymentMethod":   "UPI",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp orderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.OrderID)

	// subtotal 85, platform 1.70, delivery 30 at 2 km
	assert.InDelta(t, 85.0, resp.Order.Subtotal, 0.001)
	assert.InDelta(t, 1.70, resp.Order.PlatformCharge, 0.001)
	assert.InDelta(t, 30.0, resp.Order.DeliveryCharge, 0.001)
	assert.InDelta(t, 116.70, resp.Order.TotalAmount, 0.001)

	assert.Equal(t, 1, sink.Count())
	stored, ok := sink.Get(resp.OrderID)
	require.True(t, ok)
	assert.Equal(t, models.DeliveryTypeDelivery, stored.DeliveryType)
}

func TestCreateOrderPickup(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/orders", map[string]interface{}{
		"store":         otcStoreResult(),
		"deliveryType":  "PICKUP",
		"paymentMethod": "CASH",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var resp orderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Zero(t, resp.Order.DeliveryCharge)
}

func TestCreateOrderPrescriptionGate(t *testing.T) {
	srv, sink := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/orders", map[string]interface{}{
		"store":         regulatedStoreResult(),
		"deliveryType":  "PICKUP",
		"paymentMethod": "CASH",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	errBody := decodeError(t, rec)
	assert.Equal(t, "PRESCRIPTION_REQUIRED", errBody["code"])

	meta, ok := errBody["metadata"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, []interface{}{"Azithromycin 500mg Tablet"}, meta["medicines"])
	assert.Zero(t, sink.Count())
}

func TestCreateOrderPrescriptionGatePassesWithAttachment(t *testing.T) {
	srv, sink := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/orders", map[string]interface{}{
		"store":         regulatedStoreResult(),
		"deliveryType":  "PICKUP",
		"paymentMethod": "CASH",
		"prescription": map[string]interface{}{
			"fileName":  "rx.pdf",
			"mimeType":  "application/pdf",
			"sizeBytes": 2048,
		},
	})
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, 1, sink.Count())
}

func TestCreateOrderInvalidAttachment(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/orders", map[string]interface{}{
		"store":         otcStoreResult(),
		"deliveryType":  "PICKUP",
		"paymentMethod": "CASH",
		"prescription": map[string]interface{}{
			"fileName":  "rx.gif",
			"mimeType":  "image/gif",
			"sizeBytes": 1024,
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_ATTACHMENT", decodeError(t, rec)["code"])
}

func TestCreateOrderOversizedAttachment(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/orders", map[string]interface{}{
		"store":         otcStoreResult(),
		"deliveryType":  "PICKUP",
		"paymentMethod": "CASH",
		"prescription": map[string]interface{}{
			"fileName":  "rx.pdf",
			"mimeType":  "application/pdf",
			"sizeBytes": 5242881,
		},
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "INVALID_ATTACHMENT", decodeError(t, rec)["code"])
}

func TestCreateOrderSchemaValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	tests := []struct {
		name    string
		payload map[string]interface{}
	}{
		{
			name:    "missing store",
			payload: map[string]interface{}{"deliveryType": "PICKUP", "paymentMethod": "CASH"},
		},
		{
			name:    "missing payment method",
			payload: map[string]interface{}{"store": otcStoreResult(), "deliveryType": "PICKUP"},
		},
		{
			name: "non-integer quantity",
			payload: map[string]interface{}{
				"store": otcStoreResult(), "deliveryType": "PICKUP", "paymentMethod": "CASH",
				"quantities": map[string]interface{}{"Paracetamol 500mg Tablet": "two"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, srv, http.MethodPost, "/api/orders", tt.payload)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "INVALID_ORDER_REQUEST", decodeError(t, rec)["code"])
		})
	}
}

func TestCreateOrderDeliveryRequiresAddress(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/orders", map[string]interface{}{
		"store":         otcStoreResult(),
		"deliveryType":  "DELIVERY",
		"paymentMethod": "UPI",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateOrderUnknownDeliveryType(t *testing.T) {
	srv, _ := newTestServer(t)

	rec := doJSON(t, srv, http.MethodPost, "/api/orders", map[string]interface{}{
		"store":         otcStoreResult(),
		"deliveryType":  "DRONE",
		"paymentMethod": "UPI",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
