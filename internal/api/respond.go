package api

import (
	"encoding/json"
	"io"
	"net/http"

	apperrors "medisearch/internal/common/errors"
)

const maxRequestBody = 1 << 20 // order payloads carry metadata only, never file bytes

func readBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()
	return io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

type errorBody struct {
	Error *apperrors.StandardError `json:"error"`
}

// writeError maps the error taxonomy onto HTTP statuses. Anything that is not
// a StandardError is reported as an opaque 500.
func writeError(w http.ResponseWriter, err error) {
	se, ok := apperrors.AsStandardError(err)
	if !ok {
		se = &apperrors.StandardError{
			Code:    "INTERNAL",
			Message: "Internal server error",
		}
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: se})
		return
	}
	writeJSON(w, statusForCode(se.Code), errorBody{Error: se})
}

func statusForCode(code apperrors.ErrorCode) int {
	switch code {
	case apperrors.ErrCodeEmptyQuery,
		apperrors.ErrCodeInvalidAttachment,
		apperrors.ErrCodeInvalidSearchRequest,
		apperrors.ErrCodeInvalidOrderRequest:
		return http.StatusBadRequest
	case apperrors.ErrCodePrescriptionRequired:
		return http.StatusUnprocessableEntity
	default:
		if apperrors.IsRetryableErrorCode(code) {
			return http.StatusServiceUnavailable
		}
		return http.StatusInternalServerError
	}
}
