package models

import "github.com/shopspring/decimal"

// Payment statuses.
const (
	PaymentStatusCompleted = "Completed"
	PaymentStatusPartial   = "Partial"
)

// Payment settles (fully or partially) an approved or paid invoice.
type Payment struct {
	PaymentID     string          `json:"payment_id"`     // "PAY" followed by 7 digits
	InvoiceNumber string          `json:"invoice_number"` // Reference to Invoice.InvoiceNumber
	PONumber      string          `json:"po_number"`
	VendorID      string          `json:"vendor_id"`
	VendorName    string          `json:"vendor_name"`
	PaymentDate   Date            `json:"payment_date"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"` // Completed iff Amount equals the invoice total
	Notes         string          `json:"notes"`
}
