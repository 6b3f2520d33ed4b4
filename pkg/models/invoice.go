package models

import "github.com/shopspring/decimal"

// Invoice statuses recognised by the payment stage.
const (
	InvoiceStatusPending  = "Pending"
	InvoiceStatusApproved = "Approved"
	InvoiceStatusBlocked  = "Blocked"
	InvoiceStatusPaid     = "Paid"
)

// Invoice is a vendor's bill referencing a purchase order.
type Invoice struct {
	InvoiceNumber string          `json:"invoice_number"` // "INV" followed by 7 digits
	PONumber      string          `json:"po_number"`      // Reference to PurchaseOrder.PONumber
	VendorID      string          `json:"vendor_id"`
	VendorName    string          `json:"vendor_name"`
	InvoiceDate   Date            `json:"invoice_date"`
	DueDate       Date            `json:"due_date"`
	Currency      string          `json:"currency"`
	Items         []LineItem      `json:"items"` // Possibly perturbed copies of the PO items
	Subtotal      decimal.Decimal `json:"subtotal"`
	TaxAmount     decimal.Decimal `json:"tax_amount"`
	TotalAmount   decimal.Decimal `json:"total_amount"` // Subtotal + TaxAmount
	Status        string          `json:"status"`
	PaymentTerms  string          `json:"payment_terms"`
	Notes         string          `json:"notes"`
	BlockReason   string          `json:"block_reason,omitempty"` // Set only for Blocked invoices
	GRIRIssue     *GRIRIssue      `json:"grir_issue,omitempty"`
}

// GRIRIssue is a goods-receipt / invoice-receipt reconciliation problem.
type GRIRIssue struct {
	Type        string `json:"type"`
	Description string `json:"description"`
}

// IsPayable reports whether the invoice is eligible for a payment.
func (inv *Invoice) IsPayable() bool {
	return inv.Status == InvoiceStatusApproved || inv.Status == InvoiceStatusPaid
}
