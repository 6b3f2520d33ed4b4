package reconciliation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"apgen/internal/generator"
	"apgen/pkg/models"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(s string) models.Date {
	date, err := models.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return date
}

func lineItem(number string, qty int64, price, rate string) models.LineItem {
	item := models.LineItem{
		ItemNumber: number,
		Category:   "Electronics",
		Quantity:   int(qty),
		UnitPrice:  d(price),
		Currency:   "EUR",
		TaxRate:    d(rate),
	}
	item.Recalculate()
	return item
}

// validDataset is one vendor, one order, one approved invoice and its payment.
func validDataset() *generator.Dataset {
	orderItems := []models.LineItem{
		lineItem("ITEM100001", 2, "10.00", "0.19"),
		lineItem("ITEM100002", 1, "5.50", "0.19"),
	}
	orderTotal, _ := models.SumTotals(orderItems)

	invoiceItems := []models.LineItem{
		lineItem("ITEM100001", 2, "10.40", "0.19"),
	}
	subtotal, tax := models.SumTotals(invoiceItems)

	return &generator.Dataset{
		RunID: "run",
		Seed:  1,
		Vendors: []models.Vendor{{
			VendorID: "V1000001",
			Name:     "Acme",
			Regions:  []string{"Europe"},
			Rating:   4.2,
		}},
		PurchaseOrders: []models.PurchaseOrder{{
			PONumber:    "PO1000001",
			VendorID:    "V1000001",
			VendorName:  "Acme",
			Region:      "Europe",
			PODate:      day("2024-01-10"),
			Currency:    "EUR",
			Items:       orderItems,
			Status:      models.POStatusOpen,
			TotalAmount: orderTotal,
		}},
		Invoices: []models.Invoice{{
			InvoiceNumber: "INV1000001",
			PONumber:      "PO1000001",
			VendorID:      "V1000001",
			InvoiceDate:   day("2024-01-15"),
			DueDate:       day("2024-02-14"),
			Currency:      "EUR",
			Items:         invoiceItems,
			Subtotal:      subtotal,
			TaxAmount:     tax,
			TotalAmount:   subtotal.Add(tax),
			Status:        models.InvoiceStatusApproved,
			PaymentTerms:  "Net 30",
		}},
		Payments: []models.Payment{{
			PaymentID:     "PAY1000001",
			InvoiceNumber: "INV1000001",
			PONumber:      "PO1000001",
			VendorID:      "V1000001",
			PaymentDate:   day("2024-02-14"),
			Amount:        subtotal.Add(tax),
			Currency:      "EUR",
			Status:        models.PaymentStatusCompleted,
		}},
	}
}

func TestReconcile_ValidDataset(t *testing.T) {
	report := NewReconciler().Reconcile(validDataset())

	assert.True(t, report.OK(), "issues: %v", report.Issues)
	assert.Equal(t, map[string]int{
		generator.StageVendors:        1,
		generator.StagePurchaseOrders: 1,
		generator.StageInvoices:       1,
		generator.StagePayments:       1,
	}, report.Checked)
	assert.Equal(t, 1, report.DriftedItems)
	assert.InDelta(t, 3.846, report.MaxPriceDrift, 0.001)
}

func TestReconcile_BrokenInvariants(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*generator.Dataset)
		rule   string
	}{
		{"duplicate vendor", func(ds *generator.Dataset) { ds.Vendors = append(ds.Vendors, ds.Vendors[0]) }, "duplicate_id"},
		{"rating out of range", func(ds *generator.Dataset) { ds.Vendors[0].Rating = 6 }, "rating_range"},
		{"unknown vendor", func(ds *generator.Dataset) { ds.PurchaseOrders[0].VendorID = "V9999999" }, "unknown_vendor"},
		{"region not served", func(ds *generator.Dataset) { ds.PurchaseOrders[0].Region = "Asia Pacific" }, "region_not_served"},
		{"order total", func(ds *generator.Dataset) { ds.PurchaseOrders[0].TotalAmount = d("1") }, "total_mismatch"},
		{"item total", func(ds *generator.Dataset) { ds.PurchaseOrders[0].Items[0].TotalPrice = d("1") }, "item_total_mismatch"},
		{"item tax", func(ds *generator.Dataset) { ds.PurchaseOrders[0].Items[0].TaxAmount = d("1") }, "item_tax_mismatch"},
		{"invoice subtotal", func(ds *generator.Dataset) { ds.Invoices[0].Subtotal = d("1") }, "subtotal_mismatch"},
		{"invoice total", func(ds *generator.Dataset) {
			ds.Invoices[0].TotalAmount = ds.Invoices[0].TotalAmount.Add(d("0.01"))
		}, "total_mismatch"},
		{"due before invoice", func(ds *generator.Dataset) { ds.Invoices[0].DueDate = day("2024-01-01") }, "due_before_invoice"},
		{"blocked without reason", func(ds *generator.Dataset) { ds.Invoices[0].Status = models.InvoiceStatusBlocked }, "missing_block_reason"},
		{"reason without block", func(ds *generator.Dataset) { ds.Invoices[0].BlockReason = "Price" }, "unexpected_block_reason"},
		{"unknown order", func(ds *generator.Dataset) { ds.Invoices[0].PONumber = "PO9999999" }, "unknown_purchase_order"},
		{"invoice before order", func(ds *generator.Dataset) { ds.Invoices[0].InvoiceDate = day("2024-01-10") }, "invoice_before_order"},
		{"unknown item", func(ds *generator.Dataset) { ds.Invoices[0].Items[0].ItemNumber = "ITEM999999" }, "unknown_item"},
		{"payment for pending invoice", func(ds *generator.Dataset) { ds.Invoices[0].Status = models.InvoiceStatusPending }, "unpayable_invoice"},
		{"overpayment", func(ds *generator.Dataset) {
			ds.Payments[0].Amount = ds.Payments[0].Amount.Add(d("1"))
		}, "amount_range"},
		{"partial marked completed", func(ds *generator.Dataset) {
			ds.Payments[0].Amount = ds.Payments[0].Amount.Sub(d("1"))
		}, "status_mismatch"},
		{"paid before invoice", func(ds *generator.Dataset) { ds.Payments[0].PaymentDate = day("2024-01-01") }, "paid_before_invoice"},
		{"unknown invoice", func(ds *generator.Dataset) { ds.Payments[0].InvoiceNumber = "INV9999999" }, "unknown_invoice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds := validDataset()
			tt.mutate(ds)

			report := NewReconciler().Reconcile(ds)
			require.False(t, report.OK())

			rules := make([]string, len(report.Issues))
			for i, issue := range report.Issues {
				rules[i] = issue.Rule
			}
			assert.Contains(t, rules, tt.rule)
		})
	}
}

func TestCalculateDiscrepancy(t *testing.T) {
	assert.Equal(t, 0.0, calculateDiscrepancy(d("10"), d("10.00")))
	assert.Equal(t, 100.0, calculateDiscrepancy(d("0"), d("5")))
	assert.InDelta(t, 5.0, calculateDiscrepancy(d("100"), d("95")), 1e-9)
	assert.InDelta(t, 5.0, calculateDiscrepancy(d("95"), d("100")), 1e-9)
}

func TestIssueString(t *testing.T) {
	issue := Issue{Entity: "payments", ID: "PAY1", Rule: "amount_range", Message: "too much"}
	assert.Equal(t, "payments PAY1: amount_range: too much", issue.String())
}
