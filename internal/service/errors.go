package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Sentinel errors for expected business failures. Handlers translate these
// into HTTP statuses; anything that doesn't match is treated as a persistence
// failure and surfaces as a generic 500.
var (
	ErrNotFound     = errors.New("not found")
	ErrLimitReached = errors.New("plan limit reached")
	ErrValidation   = errors.New("validation failed")
)

// Shortfall describes one under-stocked ingredient of a rejected production
// run: the item's name and how much is missing.
type Shortfall struct {
	Name    string
	Missing decimal.Decimal
	Unit    string
}

func (s Shortfall) String() string {
	return fmt.Sprintf("%q: %s %s missing", s.Name, s.Missing.String(), s.Unit)
}

// InsufficientStockError carries EVERY deficient line of a stock check, not
// just the first, so the caller can report them all in one message.
type InsufficientStockError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientStockError) Error() string {
	names := make([]string, len(e.Shortfalls))
	for i, s := range e.Shortfalls {
		names[i] = s.String()
	}
	return "insufficient stock: " + strings.Join(names, ", ")
}

// ShortfallStrings renders the shortfall list for the response body.
func (e *InsufficientStockError) ShortfallStrings() []string {
	out := make([]string, len(e.Shortfalls))
	for i, s := range e.Shortfalls {
		out[i] = s.String()
	}
	return out
}
