// Package errors provides the standardized error taxonomy for the search and
// order engine. Every user-input condition is locally recoverable and maps to
// a typed error the caller can render without a crash.
package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// User-input conditions (recoverable, never retried).
	ErrCodeEmptyQuery           ErrorCode = "EMPTY_QUERY"
	ErrCodePrescriptionRequired ErrorCode = "PRESCRIPTION_REQUIRED"
	ErrCodeInvalidAttachment    ErrorCode = "INVALID_ATTACHMENT"
	ErrCodeInvalidSearchRequest ErrorCode = "INVALID_SEARCH_REQUEST"
	ErrCodeInvalidOrderRequest  ErrorCode = "INVALID_ORDER_REQUEST"

	// Infrastructure conditions (owned by collaborators, retryable).
	ErrCodeStoreFetchFailed  ErrorCode = "STORE_FETCH_FAILED"
	ErrCodeStoreFetchTimeout ErrorCode = "STORE_FETCH_TIMEOUT"
	ErrCodeOrderInsertFailed ErrorCode = "ORDER_INSERT_FAILED"
	ErrCodeCacheUnavailable  ErrorCode = "CACHE_UNAVAILABLE"
	ErrCodeSearchIndexFailed ErrorCode = "SEARCH_INDEX_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// AsStandardError unwraps err into a *StandardError if it carries one.
func AsStandardError(err error) (*StandardError, bool) {
	var se *StandardError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// NewEmptyQueryError creates a non-retryable empty-query error.
func NewEmptyQueryError(raw string) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmptyQuery,
		Message:   "No usable search terms in query",
		Details:   fmt.Sprintf("rawQuery: %q", raw),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPrescriptionRequiredError creates a non-retryable gate error carrying
// the names of the medicines that demand a prescription.
func NewPrescriptionRequiredError(medicines []string) *StandardError {
	return &StandardError{
		Code:      ErrCodePrescriptionRequired,
		Message:   "Order contains medicines that require a prescription",
		Details:   strings.Join(medicines, ", "),
		Retryable: false,
		Metadata:  map[string]interface{}{"medicines": medicines},
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidAttachmentError creates a non-retryable attachment error.
func NewInvalidAttachmentError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidAttachment,
		Message:   "Prescription attachment rejected",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidSearchRequestError creates a non-retryable search validation error.
func NewInvalidSearchRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidSearchRequest,
		Message:   "Search request failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidOrderRequestError creates a non-retryable order validation error.
func NewInvalidOrderRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidOrderRequest,
		Message:   "Order request failed validation",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreFetchFailedError creates a retryable store-provider error.
func NewStoreFetchFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreFetchFailed,
		Message:   "Store inventory fetch failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewStoreFetchTimeoutError creates a retryable store-provider timeout error.
func NewStoreFetchTimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeStoreFetchTimeout,
		Message:   "Store inventory fetch timed out",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewOrderInsertFailedError creates a retryable order-sink error.
func NewOrderInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeOrderInsertFailed,
		Message:   "Order persistence failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewCacheUnavailableError creates a retryable cache error.
func NewCacheUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeCacheUnavailable,
		Message:   "Store snapshot cache unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchIndexFailedError creates a retryable search-index error.
func NewSearchIndexFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchIndexFailed,
		Message:   "Search index query failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// GetRetryCount returns the recommended retry count per error code.
func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeStoreFetchFailed,
		ErrCodeOrderInsertFailed,
		ErrCodeSearchIndexFailed:
		return 3

	case ErrCodeStoreFetchTimeout,
		ErrCodeCacheUnavailable:
		return 2

	default:
		return 0 // User-input conditions: no retry
	}
}

// IsRetryableErrorCode checks if an error code is retryable.
func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "QUERY"):
		return "QUERY"
	case strings.Contains(codeStr, "PRESCRIPTION") || strings.Contains(codeStr, "ATTACHMENT"):
		return "PRESCRIPTION"
	case strings.Contains(codeStr, "ORDER"):
		return "ORDER"
	case strings.Contains(codeStr, "STORE") || strings.Contains(codeStr, "CACHE") || strings.Contains(codeStr, "INDEX"):
		return "STORE_PROVIDER"
	default:
		return "OTHER"
	}
}
