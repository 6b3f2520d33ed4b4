package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalSettings = `
general:
  start_date: "2024-01-01"
  end_date: "2024-01-31"
regions:
  - name: Europe
    currencies: [EUR]
    countries: [Germany]
    tax_rates:
      default: 0.2
      Electronics: 0.19
vendors:
  total_count: 5
  payment_terms: ["Net 30"]
  allowed_regions_distribution:
    single_region: 0.5
purchase_orders:
  total_count: 10
  min_items: 1
  max_items: 3
invoices:
  statuses: [Pending, Approved, Blocked, Paid]
  block_reasons: [Price mismatch]
  grir_probability: 0.05
payments:
  methods: [ACH]
items:
  categories: [Electronics, Furniture]
exchange_rates:
  rates:
    EUR: 0.92
`

func TestParseSettings_Defaults(t *testing.T) {
	s, err := ParseSettings([]byte(minimalSettings))
	require.NoError(t, err)

	assert.Equal(t, FormatCSV, s.General.OutputFormat)
	assert.Equal(t, "output", s.General.OutputDir)
	assert.Equal(t, "Professional Services", s.Vendors.DescriptionCategory)
	assert.Equal(t, DefaultStatusWeights, s.Invoices.StatusWeights)
	assert.Equal(t, "USD", s.ExchangeRates.BaseCurrency)
	assert.Zero(t, s.General.Seed)
}

func TestParseSettings_Lookups(t *testing.T) {
	s, err := ParseSettings([]byte(minimalSettings))
	require.NoError(t, err)

	start, end, err := s.DateRange()
	require.NoError(t, err)
	assert.Equal(t, 30, start.DaysUntil(end))

	region, ok := s.Region("Europe")
	require.True(t, ok)
	assert.True(t, region.TaxRate("Electronics").Equal(decimal.RequireFromString("0.19")))
	assert.True(t, region.TaxRate("Furniture").Equal(decimal.RequireFromString("0.2")))

	_, ok = s.Region("Mars")
	assert.False(t, ok)
	assert.Equal(t, []string{"Europe"}, s.RegionNames())

	rate, ok := s.ExchangeRate("EUR")
	require.True(t, ok)
	assert.True(t, rate.Equal(decimal.RequireFromString("0.92")))
	_, ok = s.ExchangeRate("CHF")
	assert.False(t, ok)
}

func TestParseSettings_ExpandsEnvironment(t *testing.T) {
	t.Setenv("APGEN_TEST_VENDORS", "42")
	data := []byte(minimalSettings + "\n")
	data = []byte(strings.Replace(string(data), "total_count: 5", "total_count: ${APGEN_TEST_VENDORS}", 1))

	s, err := ParseSettings(data)
	require.NoError(t, err)
	assert.Equal(t, 42, s.Vendors.TotalCount)
}

func TestParseSettings_UnknownField(t *testing.T) {
	_, err := ParseSettings([]byte(minimalSettings + "\nunexpected: true\n"))
	assert.Error(t, err)
}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalSettings), 0644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Equal(t, 5, s.Vendors.TotalCount)

	_, err = LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoadSettings_ShippedConfig(t *testing.T) {
	s, err := LoadSettings(filepath.Join("..", "..", "config", "config.yaml"))
	require.NoError(t, err)
	assert.NotEmpty(t, s.Regions)
	assert.Len(t, s.Invoices.StatusWeights, len(s.Invoices.Statuses))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Settings)
		field  string
	}{
		{"unsupported format", func(s *Settings) { s.General.OutputFormat = "parquet" }, "general.output_format"},
		{"bad start date", func(s *Settings) { s.General.StartDate = "01/01/2024" }, "general.start_date"},
		{"end before start", func(s *Settings) { s.General.EndDate = "2023-12-31" }, "general.end_date"},
		{"negative rate", func(s *Settings) { s.General.MaxOperationsPerSecond = -1 }, "general.max_operations_per_second"},
		{"no regions", func(s *Settings) { s.Regions = nil }, "regions"},
		{"currency without rate", func(s *Settings) { s.Regions[0].Currencies = []string{"CHF"} }, "exchange_rates.rates"},
		{"region without countries", func(s *Settings) { s.Regions[0].Countries = nil }, "regions[0].countries"},
		{"region without default tax", func(s *Settings) { delete(s.Regions[0].TaxRates, "default") }, "regions[0].tax_rates.default"},
		{"no payment terms", func(s *Settings) { s.Vendors.PaymentTerms = nil }, "vendors.payment_terms"},
		{"single region probability", func(s *Settings) { s.Vendors.AllowedRegionsDistribution.SingleRegion = 1.5 }, "vendors.allowed_regions_distribution.single_region"},
		{"orders without vendors", func(s *Settings) { s.Vendors.TotalCount = 0 }, "vendors.total_count"},
		{"max below min items", func(s *Settings) { s.PurchaseOrders.MaxItems = 0 }, "purchase_orders.max_items"},
		{"weights misaligned", func(s *Settings) { s.Invoices.StatusWeights = []float64{0.5, 0.5} }, "invoices.status_weights"},
		{"weights all zero", func(s *Settings) { s.Invoices.StatusWeights = []float64{0, 0, 0, 0} }, "invoices.status_weights"},
		{"blocked without reasons", func(s *Settings) { s.Invoices.BlockReasons = nil }, "invoices.block_reasons"},
		{"grir probability", func(s *Settings) { s.Invoices.GRIRProbability = -0.1 }, "invoices.grir_probability"},
		{"no payment methods", func(s *Settings) { s.Payments.Methods = nil }, "payments.methods"},
		{"duplicate category", func(s *Settings) { s.Items.Categories = []string{"A", "A"} }, "items.categories"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := ParseSettings([]byte(minimalSettings))
			require.NoError(t, err)

			tt.mutate(s)
			err = s.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidSettings))

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}

func TestValidate_StatusWeightsWithoutDefault(t *testing.T) {
	data := strings.Replace(minimalSettings, "statuses: [Pending, Approved, Blocked, Paid]", "statuses: [Approved, Paid]", 1)
	_, err := ParseSettings([]byte(data))
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "invoices.status_weights", vErr.Field)
}

func TestIsSupportedFormat(t *testing.T) {
	assert.True(t, IsSupportedFormat("csv"))
	assert.True(t, IsSupportedFormat("JSON"))
	assert.True(t, IsSupportedFormat("xlsx"))
	assert.False(t, IsSupportedFormat("xml"))
	assert.False(t, IsSupportedFormat(""))
}
