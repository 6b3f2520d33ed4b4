// Package config loads the process configuration (environment) and the
// generation settings (YAML).
//
// Settings are read once, validated, and then treated as immutable: every
// generation stage receives the same *Settings and only reads from it.
package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v2"

	"apgen/pkg/models"
)

// Supported output formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatXLSX = "xlsx"
)

// DefaultStatusWeights are the invoice status weights used when the settings
// list exactly four statuses and no explicit weights.
var DefaultStatusWeights = []float64{0.2, 0.6, 0.15, 0.05}

// Settings is the full generation configuration.
type Settings struct {
	General        GeneralSettings       `yaml:"general"`
	Regions        []Region              `yaml:"regions"`
	Vendors        VendorSettings        `yaml:"vendors"`
	PurchaseOrders PurchaseOrderSettings `yaml:"purchase_orders"`
	Invoices       InvoiceSettings       `yaml:"invoices"`
	Payments       PaymentSettings       `yaml:"payments"`
	Items          ItemSettings          `yaml:"items"`
	ExchangeRates  ExchangeRateSettings  `yaml:"exchange_rates"`
}

// GeneralSettings control the run as a whole.
type GeneralSettings struct {
	OutputFormat           string  `yaml:"output_format"`
	OutputDir              string  `yaml:"output_dir"`
	StartDate              string  `yaml:"start_date"`
	EndDate                string  `yaml:"end_date"`
	MaxOperationsPerSecond float64 `yaml:"max_operations_per_second"`
	Seed                   uint64  `yaml:"seed"` // 0 picks a random seed
}

// Region is a sales/tax region.
type Region struct {
	Name       string             `yaml:"name"`
	Currencies []string           `yaml:"currencies"`
	Countries  []string           `yaml:"countries"`
	TaxRates   map[string]float64 `yaml:"tax_rates"` // category -> rate, plus "default"
}

// VendorSettings parameterize vendor generation.
type VendorSettings struct {
	TotalCount                 int                `yaml:"total_count"`
	PaymentTerms               []string           `yaml:"payment_terms"`
	AllowedRegionsDistribution RegionDistribution `yaml:"allowed_regions_distribution"`
	DescriptionCategory        string             `yaml:"description_category"`
}

// RegionDistribution controls how many regions a vendor serves.
type RegionDistribution struct {
	SingleRegion float64 `yaml:"single_region"`
}

// PurchaseOrderSettings parameterize purchase order generation.
type PurchaseOrderSettings struct {
	TotalCount int `yaml:"total_count"`
	MinItems   int `yaml:"min_items"`
	MaxItems   int `yaml:"max_items"`
}

// InvoiceSettings parameterize invoice generation.
type InvoiceSettings struct {
	Statuses        []string  `yaml:"statuses"`
	StatusWeights   []float64 `yaml:"status_weights"`
	BlockReasons    []string  `yaml:"block_reasons"`
	GRIRProbability float64   `yaml:"grir_probability"`
}

// PaymentSettings parameterize payment generation.
type PaymentSettings struct {
	Methods []string `yaml:"methods"`
}

// ItemSettings list the item categories.
type ItemSettings struct {
	Categories []string `yaml:"categories"`
}

// ExchangeRateSettings convert base prices into a currency.
type ExchangeRateSettings struct {
	BaseCurrency string             `yaml:"base_currency"`
	Rates        map[string]float64 `yaml:"rates"`
}

// LoadSettings reads, defaults and validates the settings YAML at path.
func LoadSettings(path string) (*Settings, error) {
	const op = "LoadSettings"

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read settings file: %w", op, err)
	}

	settings, err := ParseSettings(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %s: %w", op, path, err)
	}
	return settings, nil
}

// ParseSettings decodes settings YAML, expanding ${ENV} references first.
func ParseSettings(data []byte) (*Settings, error) {
	var settings Settings
	expanded := os.ExpandEnv(string(data))
	if err := yaml.UnmarshalStrict([]byte(expanded), &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}

	settings.applyDefaults()

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *Settings) applyDefaults() {
	if s.General.OutputFormat == "" {
		s.General.OutputFormat = FormatCSV
	}
	if s.General.OutputDir == "" {
		s.General.OutputDir = "output"
	}
	if s.Vendors.DescriptionCategory == "" {
		s.Vendors.DescriptionCategory = "Professional Services"
	}
	if len(s.Invoices.StatusWeights) == 0 && len(s.Invoices.Statuses) == len(DefaultStatusWeights) {
		s.Invoices.StatusWeights = append([]float64(nil), DefaultStatusWeights...)
	}
	if s.ExchangeRates.BaseCurrency == "" {
		s.ExchangeRates.BaseCurrency = "USD"
	}
}

// DateRange returns the parsed start and end dates.
func (s *Settings) DateRange() (start, end models.Date, err error) {
	start, err = models.ParseDate(s.General.StartDate)
	if err != nil {
		return start, end, err
	}
	end, err = models.ParseDate(s.General.EndDate)
	return start, end, err
}

// Region looks up a region by name.
func (s *Settings) Region(name string) (*Region, bool) {
	for i := range s.Regions {
		if s.Regions[i].Name == name {
			return &s.Regions[i], true
		}
	}
	return nil, false
}

// RegionNames returns all region names in configuration order.
func (s *Settings) RegionNames() []string {
	names := make([]string, len(s.Regions))
	for i, r := range s.Regions {
		names[i] = r.Name
	}
	return names
}

// TaxRate returns the region's rate for category, falling back to its default rate.
func (r *Region) TaxRate(category string) decimal.Decimal {
	if rate, ok := r.TaxRates[category]; ok {
		return decimal.NewFromFloat(rate)
	}
	return decimal.NewFromFloat(r.TaxRates["default"])
}

// ExchangeRate returns the conversion rate from the base currency.
func (s *Settings) ExchangeRate(currency string) (decimal.Decimal, bool) {
	rate, ok := s.ExchangeRates.Rates[currency]
	if !ok {
		return decimal.Zero, false
	}
	return decimal.NewFromFloat(rate), true
}
