package generator

import (
	"errors"
	"fmt"
)

// Common generation errors
var (
	// ErrNoVendors is returned when purchase orders are requested without vendors.
	ErrNoVendors = errors.New("no vendors to order from")

	// ErrUnknownRegion is returned when a vendor references a region missing from the settings.
	ErrUnknownRegion = errors.New("unknown region")

	// ErrMissingExchangeRate is returned when a currency has no configured exchange rate.
	ErrMissingExchangeRate = errors.New("missing exchange rate")

	// ErrMissingDescriptionCategory is returned when the description configuration
	// has no templates for a category the settings use.
	ErrMissingDescriptionCategory = errors.New("no description templates for category")

	// ErrIDSpaceExhausted is returned when every identifier of a kind has been issued.
	ErrIDSpaceExhausted = errors.New("identifier space exhausted")
)

// GenerationError wraps errors with the stage operation that failed.
type GenerationError struct {
	// Op is the operation that failed (e.g., "GenerateInvoices").
	Op string

	// Err is the underlying error.
	Err error

	// Details identifies the record being generated, if any.
	Details string
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("generator: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("generator: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(op string, err error, details string) *GenerationError {
	return &GenerationError{
		Op:      op,
		Err:     err,
		Details: details,
	}
}
