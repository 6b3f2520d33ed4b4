package generator

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/require"

	"apgen/internal/config"
	"apgen/pkg/services"
)

const testSettingsYAML = `
general:
  output_format: json
  start_date: "2024-01-01"
  end_date: "2024-03-31"
  max_operations_per_second: 0
regions:
  - name: North America
    currencies: [USD, CAD]
    countries: [USA, Canada]
    tax_rates:
      default: 0.08
      Electronics: 0.1
  - name: Europe
    currencies: [EUR]
    countries: [Germany, France]
    tax_rates:
      default: 0.2
      Electronics: 0.19
  - name: Asia Pacific
    currencies: [JPY]
    countries: [Japan]
    tax_rates:
      default: 0.1
vendors:
  total_count: 20
  payment_terms: ["Net 30", "Net 45", "2% 10 Net 30", "30"]
  allowed_regions_distribution:
    single_region: 0.6
purchase_orders:
  total_count: 50
  min_items: 1
  max_items: 5
invoices:
  statuses: [Pending, Approved, Blocked, Paid]
  block_reasons: [Price mismatch, Missing receipt]
  grir_probability: 0.1
payments:
  methods: [ACH, Wire Transfer, Check]
items:
  categories: [Electronics, Office Supplies, Furniture]
exchange_rates:
  base_currency: USD
  rates:
    USD: 1.0
    CAD: 1.35
    EUR: 0.92
    JPY: 150.0
`

func testSettings(t *testing.T, mutate ...func(*config.Settings)) *config.Settings {
	t.Helper()
	settings, err := config.ParseSettings([]byte(testSettingsYAML))
	require.NoError(t, err)
	for _, m := range mutate {
		m(settings)
	}
	require.NoError(t, settings.Validate())
	return settings
}

func testRuntime(t *testing.T, seed uint64, mutate ...func(*config.Settings)) *Runtime {
	t.Helper()
	return &Runtime{
		Settings: testSettings(t, mutate...),
		Rand:     rand.New(rand.NewPCG(seed, seed)),
	}
}

// stubDescriptions knows a fixed set of categories and returns canned text.
type stubDescriptions struct {
	categories map[string]bool
}

func newStubDescriptions(categories ...string) *stubDescriptions {
	s := &stubDescriptions{categories: make(map[string]bool)}
	for _, c := range categories {
		s.categories[c] = true
	}
	return s
}

func (s *stubDescriptions) HasCategory(category string) bool {
	return s.categories[category]
}

func (s *stubDescriptions) Description(category string) (string, error) {
	if !s.categories[category] {
		return "", fmt.Errorf("unknown category %q", category)
	}
	return "sample " + category, nil
}

func (s *stubDescriptions) ItemDescription(category string) (*services.ItemDescription, error) {
	desc, err := s.Description(category)
	if err != nil {
		return nil, err
	}
	return &services.ItemDescription{Description: desc, Brand: "Acme", Model: "X100"}, nil
}

func allDescriptions() *stubDescriptions {
	return newStubDescriptions("Professional Services", "Electronics", "Office Supplies", "Furniture")
}
