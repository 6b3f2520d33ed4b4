package models

import "github.com/shopspring/decimal"

// POStatusOpen is the status of every freshly generated purchase order.
const POStatusOpen = "Open"

// PurchaseOrder is a commitment to buy goods or services from a vendor.
type PurchaseOrder struct {
	PONumber           string          `json:"po_number"`   // "PO" followed by 7 digits
	VendorID           string          `json:"vendor_id"`   // Reference to Vendor.VendorID
	VendorName         string          `json:"vendor_name"` // Denormalized vendor name
	Region             string          `json:"region"`
	PODate             Date            `json:"po_date"`
	Currency           string          `json:"currency"`
	Items              []LineItem      `json:"items"`
	Status             string          `json:"status"`
	ShippingAddress    string          `json:"shipping_address"`
	BillingAddress     string          `json:"billing_address"`
	TermsAndConditions string          `json:"terms_and_conditions"` // Payment terms copied from the vendor
	Notes              string          `json:"notes"`
	TotalAmount        decimal.Decimal `json:"total_amount"` // Sum of Items[].TotalPrice
}

// LineItem is a single ordered (or invoiced) position.
type LineItem struct {
	ItemNumber  string          `json:"item_number"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"` // Quantity x UnitPrice
	Currency    string          `json:"currency"`
	TaxRate     decimal.Decimal `json:"tax_rate"`
	TaxAmount   decimal.Decimal `json:"tax_amount"` // TotalPrice x TaxRate, rounded to cents
	Brand       string          `json:"brand"`
	Model       string          `json:"model"`
}

// Recalculate derives TotalPrice and TaxAmount from quantity, unit price and tax rate.
func (li *LineItem) Recalculate() {
	li.TotalPrice = li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
	li.TaxAmount = li.TotalPrice.Mul(li.TaxRate).Round(2)
}

// SumTotals returns the sum of TotalPrice and TaxAmount over items.
func SumTotals(items []LineItem) (subtotal, tax decimal.Decimal) {
	subtotal, tax = decimal.Zero, decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.TotalPrice)
		tax = tax.Add(item.TaxAmount)
	}
	return subtotal, tax
}
