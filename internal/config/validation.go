package config

import (
	"errors"
	"fmt"
	"strings"

	"apgen/pkg/models"
)

// ErrInvalidSettings is matched by every *ValidationError.
var ErrInvalidSettings = errors.New("invalid settings")

// ValidationError represents an invalid or missing settings value.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s (value: %v)", e.Field, e.Message, e.Value)
}

// Is lets errors.Is(err, ErrInvalidSettings) match any validation error.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidSettings
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// Validate checks the settings for the lookups the generators perform.
// It returns the first problem found.
func (s *Settings) Validate() error {
	checks := []func() error{
		s.validateGeneral,
		s.validateRegions,
		s.validateVendors,
		s.validatePurchaseOrders,
		s.validateInvoices,
		s.validatePayments,
		s.validateItems,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// IsSupportedFormat reports whether format names a known output format.
func IsSupportedFormat(format string) bool {
	switch strings.ToLower(format) {
	case FormatCSV, FormatJSON, FormatXLSX:
		return true
	}
	return false
}

func (s *Settings) validateGeneral() error {
	g := s.General
	if !IsSupportedFormat(g.OutputFormat) {
		return NewValidationError("general.output_format", g.OutputFormat, "unsupported output format")
	}
	start, err := models.ParseDate(g.StartDate)
	if err != nil {
		return NewValidationError("general.start_date", g.StartDate, "expected YYYY-MM-DD")
	}
	end, err := models.ParseDate(g.EndDate)
	if err != nil {
		return NewValidationError("general.end_date", g.EndDate, "expected YYYY-MM-DD")
	}
	if end.Before(start.Time) {
		return NewValidationError("general.end_date", g.EndDate, "must not be before start_date")
	}
	if g.MaxOperationsPerSecond < 0 {
		return NewValidationError("general.max_operations_per_second", g.MaxOperationsPerSecond, "must not be negative")
	}
	return nil
}

func (s *Settings) validateRegions() error {
	if len(s.Regions) == 0 {
		return NewValidationError("regions", nil, "at least one region is required")
	}
	seen := make(map[string]bool, len(s.Regions))
	for i, r := range s.Regions {
		field := fmt.Sprintf("regions[%d]", i)
		if r.Name == "" {
			return NewValidationError(field+".name", r.Name, "is required")
		}
		if seen[r.Name] {
			return NewValidationError(field+".name", r.Name, "duplicate region")
		}
		seen[r.Name] = true
		if len(r.Currencies) == 0 {
			return NewValidationError(field+".currencies", r.Name, "at least one currency is required")
		}
		for _, c := range r.Currencies {
			rate, ok := s.ExchangeRates.Rates[c]
			if !ok {
				return NewValidationError("exchange_rates.rates", c, "missing exchange rate for region currency")
			}
			if rate <= 0 {
				return NewValidationError("exchange_rates.rates."+c, rate, "must be positive")
			}
		}
		if len(r.Countries) == 0 {
			return NewValidationError(field+".countries", r.Name, "at least one country is required")
		}
		if _, ok := r.TaxRates["default"]; !ok {
			return NewValidationError(field+".tax_rates.default", r.Name, "default tax rate is required")
		}
		for category, rate := range r.TaxRates {
			if rate < 0 {
				return NewValidationError(field+".tax_rates."+category, rate, "must not be negative")
			}
		}
	}
	return nil
}

func (s *Settings) validateVendors() error {
	v := s.Vendors
	if v.TotalCount < 0 {
		return NewValidationError("vendors.total_count", v.TotalCount, "must not be negative")
	}
	if len(v.PaymentTerms) == 0 {
		return NewValidationError("vendors.payment_terms", nil, "at least one payment term is required")
	}
	if p := v.AllowedRegionsDistribution.SingleRegion; p < 0 || p > 1 {
		return NewValidationError("vendors.allowed_regions_distribution.single_region", p, "must be within [0, 1]")
	}
	return nil
}

func (s *Settings) validatePurchaseOrders() error {
	po := s.PurchaseOrders
	if po.TotalCount < 0 {
		return NewValidationError("purchase_orders.total_count", po.TotalCount, "must not be negative")
	}
	if po.TotalCount > 0 && s.Vendors.TotalCount == 0 {
		return NewValidationError("vendors.total_count", 0, "purchase orders require at least one vendor")
	}
	if po.MinItems < 0 {
		return NewValidationError("purchase_orders.min_items", po.MinItems, "must not be negative")
	}
	if po.MaxItems < po.MinItems {
		return NewValidationError("purchase_orders.max_items", po.MaxItems, "must be at least min_items")
	}
	return nil
}

func (s *Settings) validateInvoices() error {
	inv := s.Invoices
	if len(inv.Statuses) == 0 {
		return NewValidationError("invoices.statuses", nil, "at least one status is required")
	}
	if len(inv.StatusWeights) != len(inv.Statuses) {
		return NewValidationError("invoices.status_weights", inv.StatusWeights,
			fmt.Sprintf("expected %d weights, one per status", len(inv.Statuses)))
	}
	var total float64
	for _, w := range inv.StatusWeights {
		if w < 0 {
			return NewValidationError("invoices.status_weights", inv.StatusWeights, "weights must not be negative")
		}
		total += w
	}
	if total <= 0 {
		return NewValidationError("invoices.status_weights", inv.StatusWeights, "weights must sum to a positive value")
	}
	for _, status := range inv.Statuses {
		if status == models.InvoiceStatusBlocked && len(inv.BlockReasons) == 0 {
			return NewValidationError("invoices.block_reasons", nil, "required when Blocked is a configured status")
		}
	}
	if p := inv.GRIRProbability; p < 0 || p > 1 {
		return NewValidationError("invoices.grir_probability", p, "must be within [0, 1]")
	}
	return nil
}

func (s *Settings) validatePayments() error {
	if len(s.Payments.Methods) == 0 {
		return NewValidationError("payments.methods", nil, "at least one payment method is required")
	}
	return nil
}

func (s *Settings) validateItems() error {
	if len(s.Items.Categories) == 0 {
		return NewValidationError("items.categories", nil, "at least one category is required")
	}
	seen := make(map[string]bool, len(s.Items.Categories))
	for _, c := range s.Items.Categories {
		if seen[c] {
			return NewValidationError("items.categories", c, "duplicate category")
		}
		seen[c] = true
	}
	return nil
}
