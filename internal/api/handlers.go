package api

import (
	"encoding/json"
	"net/http"

	apperrors "medisearch/internal/common/errors"
	"medisearch/internal/common/metrics"
	"medisearch/internal/engine/order"
	"medisearch/internal/engine/search"
	"medisearch/internal/models"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type searchRequest struct {
	Query         string   `json:"query"`
	SessionID     string   `json:"sessionId,omitempty"`
	Latitude      float64  `json:"latitude"`
	Longitude     float64  `json:"longitude"`
	MaxDistanceKm *float64 `json:"maxDistanceKm,omitempty"`
	MinRating     *float64 `json:"minRating,omitempty"`
	SortBy        string   `json:"sortBy,omitempty"`
}

func (r searchRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Query, validation.Required),
		validation.Field(&r.SortBy, validation.In(
			string(models.SortByPriority),
			string(models.SortByNearest),
			string(models.SortByCheapest),
			string(models.SortByRating),
		)),
		validation.Field(&r.MinRating, validation.By(ratingInRange)),
		validation.Field(&r.MaxDistanceKm, validation.By(nonNegativeFloat)),
	)
}

func ratingInRange(value interface{}) error {
	v, _ := value.(*float64)
	if v == nil {
		return nil
	}
	return validation.Validate(*v, validation.Min(0.0), validation.Max(5.0))
}

func nonNegativeFloat(value interface{}) error {
	v, _ := value.(*float64)
	if v == nil {
		return nil
	}
	return validation.Validate(*v, validation.Min(0.0))
}

type searchResponse struct {
	Terms   []string              `json:"terms"`
	Results []*models.StoreResult `json:"results"`
	Count   int                   `json:"count"`
	Message string                `json:"message,omitempty"`
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, apperrors.NewInvalidSearchRequestError("malformed JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, apperrors.NewInvalidSearchRequestError(err.Error()))
		return
	}

	sortMode := models.SortMode(req.SortBy)
	if sortMode == "" {
		sortMode = models.SortByPriority
	}

	resp, err := s.search.Search(r.Context(), search.Request{
		RawQuery:  req.Query,
		SessionID: req.SessionID,
		Location:  models.Location{Latitude: req.Latitude, Longitude: req.Longitude},
		Filters:   models.SearchFilters{MaxDistanceKm: req.MaxDistanceKm, MinRating: req.MinRating},
		SortMode:  sortMode,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if resp.Stale {
		// A newer search from the same session already committed; tell the
		// client to drop this one.
		w.WriteHeader(http.StatusNoContent)
		return
	}

	out := searchResponse{
		Terms:   resp.Query.Terms,
		Results: resp.Results,
		Count:   len(resp.Results),
	}
	if len(resp.Results) == 0 {
		out.Message = "NO_STORES_MATCHED"
	}
	writeJSON(w, http.StatusOK, out)
}

type orderRequest struct {
	Store           models.StoreResult `json:"store"`
	Quantities      map[string]int     `json:"quantities,omitempty"`
	DeliveryType    string             `json:"deliveryType"`
	DeliveryAddress string             `json:"deliveryAddress,omitempty"`
	PaymentMethod   string             `json:"paymentMethod"`
	Prescription    *models.Attachment `json:"prescription,omitempty"`
	ContactEmail    string             `json:"contactEmail,omitempty"`
	ContactPhone    string             `json:"contactPhone,omitempty"`
}

func (r orderRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.DeliveryType, validation.Required, validation.In(
			string(models.DeliveryTypeDelivery),
			string(models.DeliveryTypePickup),
		)),
		validation.Field(&r.DeliveryAddress, validation.When(
			r.DeliveryType == string(models.DeliveryTypeDelivery),
			validation.Required,
		)),
		validation.Field(&r.PaymentMethod, validation.Required),
	)
}

type orderResponse struct {
	OrderID string        `json:"orderId"`
	Order   *models.Order `json:"order"`
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, apperrors.NewInvalidOrderRequestError("unreadable body"))
		return
	}

	if err := validateOrderPayload(body); err != nil {
		writeError(w, err)
		return
	}

	var req orderRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, apperrors.NewInvalidOrderRequestError("malformed JSON body"))
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, apperrors.NewInvalidOrderRequestError(err.Error()))
		return
	}
	if len(req.Store.AvailableMedicines) == 0 {
		writeError(w, apperrors.NewInvalidOrderRequestError("store result has no available medicines"))
		return
	}

	built, err := s.builder.Build(order.BuildRequest{
		Result:          req.Store,
		Quantities:      req.Quantities,
		DeliveryType:    models.DeliveryType(req.DeliveryType),
		DeliveryAddress: req.DeliveryAddress,
		PaymentMethod:   req.PaymentMethod,
		Prescription:    req.Prescription,
		ContactEmail:    req.ContactEmail,
		ContactPhone:    req.ContactPhone,
	})
	if err != nil {
		if se, ok := apperrors.AsStandardError(err); ok && se.Code == apperrors.ErrCodePrescriptionRequired {
			metrics.OrdersBlockedByGate.Inc()
		}
		metrics.OrdersTotal.WithLabelValues("rejected").Inc()
		writeError(w, err)
		return
	}

	orderID, err := s.sink.AddOrder(r.Context(), built)
	if err != nil {
		metrics.OrdersTotal.WithLabelValues("sink_error").Inc()
		writeError(w, err)
		return
	}
	metrics.OrdersTotal.WithLabelValues("placed").Inc()

	if s.notifier != nil {
		s.notifier.OrderPlaced(r.Context(), built, orderID)
	}

	writeJSON(w, http.StatusCreated, orderResponse{OrderID: orderID, Order: built})
}
