// Package apierror provides the standardized error response structures for the
// API. All errors returned to clients go through this package so that internal
// details (stack traces, SQL errors) never leak into responses.
package apierror

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// ValidationError wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields"`
}

func NewValidation(fields map[string]string) *ValidationError {
	return &ValidationError{Detail: "Validation failed", Fields: fields}
}

// StockError enumerates every under-stocked ingredient of a rejected
// production run in a single response.
type StockError struct {
	Detail     string   `json:"detail"`
	Shortfalls []string `json:"shortfalls"`
}

func NewStock(msg string, shortfalls []string) *StockError {
	return &StockError{Detail: msg, Shortfalls: shortfalls}
}
