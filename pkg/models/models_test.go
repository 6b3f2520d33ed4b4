package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate(t *testing.T) {
	d, err := ParseDate("2024-02-28")
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01", d.AddDays(2).String())
	assert.Equal(t, 2, d.DaysUntil(d.AddDays(2)))
	assert.Equal(t, -3, d.DaysUntil(d.AddDays(-3)))
	assert.Equal(t, "2024-02-28", NewDate(time.Date(2024, 2, 28, 23, 59, 0, 0, time.UTC)).String())

	_, err = ParseDate("28.02.2024")
	assert.Error(t, err)
}

func TestDate_JSON(t *testing.T) {
	d, _ := ParseDate("2024-12-31")
	data, err := json.Marshal(struct {
		Due Date `json:"due"`
	}{d})
	require.NoError(t, err)
	assert.JSONEq(t, `{"due":"2024-12-31"}`, string(data))

	var decoded Date
	require.NoError(t, json.Unmarshal([]byte(`"2025-01-02"`), &decoded))
	assert.Equal(t, "2025-01-02", decoded.String())
	assert.Error(t, json.Unmarshal([]byte(`20250102`), &decoded))
}

func TestLineItem_Recalculate(t *testing.T) {
	item := LineItem{
		Quantity:  3,
		UnitPrice: decimal.RequireFromString("19.99"),
		TaxRate:   decimal.RequireFromString("0.075"),
	}
	item.Recalculate()

	assert.Equal(t, "59.97", item.TotalPrice.StringFixed(2))
	assert.Equal(t, "4.50", item.TaxAmount.StringFixed(2))

	subtotal, tax := SumTotals([]LineItem{item, item})
	assert.Equal(t, "119.94", subtotal.StringFixed(2))
	assert.Equal(t, "9.00", tax.StringFixed(2))
}

func TestPayability(t *testing.T) {
	for status, want := range map[string]bool{
		InvoiceStatusPending:  false,
		InvoiceStatusApproved: true,
		InvoiceStatusBlocked:  false,
		InvoiceStatusPaid:     true,
	} {
		inv := Invoice{Status: status}
		assert.Equal(t, want, inv.IsPayable(), status)
	}

	v := Vendor{Regions: []string{"Europe"}}
	assert.True(t, v.ServesRegion("Europe"))
	assert.False(t, v.ServesRegion("Asia Pacific"))
}
