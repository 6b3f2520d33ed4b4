// Package reconciliation checks a generated accounts-payable dataset for
// internal consistency: references between entities resolve, amounts add
// up, and dates and statuses agree with each other.
package reconciliation

import (
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"apgen/internal/generator"
	"apgen/internal/logger"
	"apgen/pkg/models"
)

var hundred = decimal.NewFromInt(100)

// Reconciler cross-checks the four collections of a dataset.
type Reconciler struct {
	log zerolog.Logger
}

// NewReconciler creates a new reconciler.
func NewReconciler() *Reconciler {
	return &Reconciler{
		log: logger.WithComponent("reconciler"),
	}
}

// Reconcile inspects ds and returns every broken invariant it finds.
func (r *Reconciler) Reconcile(ds *generator.Dataset) *Report {
	report := newReport()

	vendors := r.checkVendors(ds.Vendors, report)
	orders := r.checkPurchaseOrders(ds.PurchaseOrders, vendors, report)
	invoices := r.checkInvoices(ds.Invoices, orders, report)
	r.checkPayments(ds.Payments, invoices, report)

	event := r.log.Info()
	if !report.OK() {
		event = r.log.Warn()
	}
	event.
		Interface("checked", report.Checked).
		Int("issues", len(report.Issues)).
		Int("drifted_items", report.DriftedItems).
		Float64("max_price_drift_pct", report.MaxPriceDrift).
		Msg("Reconciliation completed")

	return report
}

func (r *Reconciler) checkVendors(vendors []models.Vendor, report *Report) map[string]*models.Vendor {
	const entity = generator.StageVendors

	byID := make(map[string]*models.Vendor, len(vendors))
	for i := range vendors {
		v := &vendors[i]
		report.Checked[entity]++

		if _, dup := byID[v.VendorID]; dup {
			report.addIssue(entity, v.VendorID, "duplicate_id", "vendor id is not unique")
		}
		byID[v.VendorID] = v

		if len(v.Regions) == 0 {
			report.addIssue(entity, v.VendorID, "no_regions", "vendor serves no region")
		}
		if v.Rating < 1 || v.Rating > 5 {
			report.addIssue(entity, v.VendorID, "rating_range", "rating %.1f outside [1, 5]", v.Rating)
		}
	}
	return byID
}

func (r *Reconciler) checkPurchaseOrders(orders []models.PurchaseOrder, vendors map[string]*models.Vendor, report *Report) map[string]*models.PurchaseOrder {
	const entity = generator.StagePurchaseOrders

	byNumber := make(map[string]*models.PurchaseOrder, len(orders))
	for i := range orders {
		po := &orders[i]
		report.Checked[entity]++

		if _, dup := byNumber[po.PONumber]; dup {
			report.addIssue(entity, po.PONumber, "duplicate_id", "purchase order number is not unique")
		}
		byNumber[po.PONumber] = po

		vendor, ok := vendors[po.VendorID]
		switch {
		case !ok:
			report.addIssue(entity, po.PONumber, "unknown_vendor", "vendor %s does not exist", po.VendorID)
		case !vendor.ServesRegion(po.Region):
			report.addIssue(entity, po.PONumber, "region_not_served", "vendor %s does not serve %s", po.VendorID, po.Region)
		}

		for _, item := range po.Items {
			r.checkLineItem(entity, po.PONumber, po.Currency, item, report)
		}
		subtotal, _ := models.SumTotals(po.Items)
		if !subtotal.Equal(po.TotalAmount) {
			report.addIssue(entity, po.PONumber, "total_mismatch",
				"total %s differs from item sum %s", po.TotalAmount, subtotal)
		}
	}
	return byNumber
}

func (r *Reconciler) checkInvoices(invoices []models.Invoice, orders map[string]*models.PurchaseOrder, report *Report) map[string]*models.Invoice {
	const entity = generator.StageInvoices

	byNumber := make(map[string]*models.Invoice, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		report.Checked[entity]++

		if _, dup := byNumber[inv.InvoiceNumber]; dup {
			report.addIssue(entity, inv.InvoiceNumber, "duplicate_id", "invoice number is not unique")
		}
		byNumber[inv.InvoiceNumber] = inv

		r.crossValidateAmounts(inv, report)

		if inv.DueDate.Before(inv.InvoiceDate.Time) {
			report.addIssue(entity, inv.InvoiceNumber, "due_before_invoice",
				"due date %s precedes invoice date %s", inv.DueDate, inv.InvoiceDate)
		}

		switch {
		case inv.Status == models.InvoiceStatusBlocked && inv.BlockReason == "":
			report.addIssue(entity, inv.InvoiceNumber, "missing_block_reason", "blocked invoice has no block reason")
		case inv.Status != models.InvoiceStatusBlocked && inv.BlockReason != "":
			report.addIssue(entity, inv.InvoiceNumber, "unexpected_block_reason", "%s invoice has a block reason", inv.Status)
		}

		po, ok := orders[inv.PONumber]
		if !ok {
			report.addIssue(entity, inv.InvoiceNumber, "unknown_purchase_order", "purchase order %s does not exist", inv.PONumber)
			continue
		}
		if po.VendorID != inv.VendorID {
			report.addIssue(entity, inv.InvoiceNumber, "vendor_mismatch",
				"vendor %s differs from purchase order vendor %s", inv.VendorID, po.VendorID)
		}
		if !inv.InvoiceDate.After(po.PODate.Time) {
			report.addIssue(entity, inv.InvoiceNumber, "invoice_before_order",
				"invoice date %s is not after order date %s", inv.InvoiceDate, po.PODate)
		}
		r.compareWithOrder(inv, po, report)
	}
	return byNumber
}

func (r *Reconciler) checkPayments(payments []models.Payment, invoices map[string]*models.Invoice, report *Report) {
	const entity = generator.StagePayments

	seen := make(map[string]bool, len(payments))
	for i := range payments {
		p := &payments[i]
		report.Checked[entity]++

		if seen[p.PaymentID] {
			report.addIssue(entity, p.PaymentID, "duplicate_id", "payment id is not unique")
		}
		seen[p.PaymentID] = true

		inv, ok := invoices[p.InvoiceNumber]
		if !ok {
			report.addIssue(entity, p.PaymentID, "unknown_invoice", "invoice %s does not exist", p.InvoiceNumber)
			continue
		}
		if !inv.IsPayable() {
			report.addIssue(entity, p.PaymentID, "unpayable_invoice", "invoice %s is %s", inv.InvoiceNumber, inv.Status)
		}
		if p.Currency != inv.Currency {
			report.addIssue(entity, p.PaymentID, "currency_mismatch", "paid in %s, invoiced in %s", p.Currency, inv.Currency)
		}
		if p.Amount.IsNegative() || p.Amount.GreaterThan(inv.TotalAmount) {
			report.addIssue(entity, p.PaymentID, "amount_range",
				"amount %s outside [0, %s]", p.Amount, inv.TotalAmount)
		}

		wantStatus := models.PaymentStatusPartial
		if p.Amount.Equal(inv.TotalAmount) {
			wantStatus = models.PaymentStatusCompleted
		}
		if p.Status != wantStatus {
			report.addIssue(entity, p.PaymentID, "status_mismatch",
				"status %s, expected %s for amount %s of %s", p.Status, wantStatus, p.Amount, inv.TotalAmount)
		}
		if p.PaymentDate.Before(inv.InvoiceDate.Time) {
			report.addIssue(entity, p.PaymentID, "paid_before_invoice",
				"payment date %s precedes invoice date %s", p.PaymentDate, inv.InvoiceDate)
		}
	}
}

func (r *Reconciler) checkLineItem(entity, id, currency string, item models.LineItem, report *Report) {
	want := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
	if !want.Equal(item.TotalPrice) {
		report.addIssue(entity, id, "item_total_mismatch",
			"item %s total %s differs from %d x %s", item.ItemNumber, item.TotalPrice, item.Quantity, item.UnitPrice)
	}
	if wantTax := item.TotalPrice.Mul(item.TaxRate).Round(2); !wantTax.Equal(item.TaxAmount) {
		report.addIssue(entity, id, "item_tax_mismatch",
			"item %s tax %s differs from %s", item.ItemNumber, item.TaxAmount, wantTax)
	}
	if item.Currency != currency {
		report.addIssue(entity, id, "item_currency_mismatch",
			"item %s is in %s, document in %s", item.ItemNumber, item.Currency, currency)
	}
	if item.Quantity < 1 {
		report.addIssue(entity, id, "item_quantity", "item %s has quantity %d", item.ItemNumber, item.Quantity)
	}
}

// crossValidateAmounts checks subtotal + tax = total and that both parts
// match the invoice items.
func (r *Reconciler) crossValidateAmounts(inv *models.Invoice, report *Report) {
	const entity = generator.StageInvoices

	for _, item := range inv.Items {
		r.checkLineItem(entity, inv.InvoiceNumber, inv.Currency, item, report)
	}

	subtotal, tax := models.SumTotals(inv.Items)
	if !subtotal.Equal(inv.Subtotal) {
		report.addIssue(entity, inv.InvoiceNumber, "subtotal_mismatch",
			"subtotal %s differs from item sum %s", inv.Subtotal, subtotal)
	}
	if !tax.Equal(inv.TaxAmount) {
		report.addIssue(entity, inv.InvoiceNumber, "tax_mismatch",
			"tax %s differs from item tax sum %s", inv.TaxAmount, tax)
	}
	if calculated := inv.Subtotal.Add(inv.TaxAmount); !calculated.Equal(inv.TotalAmount) {
		r.log.Warn().
			Str("invoice", inv.InvoiceNumber).
			Str("subtotal", inv.Subtotal.String()).
			Str("tax", inv.TaxAmount.String()).
			Str("total", inv.TotalAmount.String()).
			Msg("Amount calculation discrepancy detected")
		report.addIssue(entity, inv.InvoiceNumber, "total_mismatch",
			"subtotal %s + tax %s = %s, but total is %s", inv.Subtotal, inv.TaxAmount, calculated, inv.TotalAmount)
	}
}

// compareWithOrder matches invoice items to their order items and records
// how far prices and quantities drifted.
func (r *Reconciler) compareWithOrder(inv *models.Invoice, po *models.PurchaseOrder, report *Report) {
	const entity = generator.StageInvoices

	ordered := make(map[string]models.LineItem, len(po.Items))
	for _, item := range po.Items {
		ordered[item.ItemNumber] = item
	}

	if inv.Currency != po.Currency {
		report.addIssue(entity, inv.InvoiceNumber, "currency_mismatch",
			"invoiced in %s, ordered in %s", inv.Currency, po.Currency)
	}

	for _, item := range inv.Items {
		orig, ok := ordered[item.ItemNumber]
		if !ok {
			report.addIssue(entity, inv.InvoiceNumber, "unknown_item", "item %s is not on the purchase order", item.ItemNumber)
			continue
		}

		drift := calculateDiscrepancy(orig.UnitPrice, item.UnitPrice)
		if drift > report.MaxPriceDrift {
			report.MaxPriceDrift = drift
		}
		if drift > 0 || orig.Quantity != item.Quantity {
			report.DriftedItems++
		}
	}
}

// calculateDiscrepancy returns the percentage difference between two amounts
// relative to the larger one.
func calculateDiscrepancy(a, b decimal.Decimal) float64 {
	if a.Equal(b) {
		return 0
	}
	if a.IsZero() || b.IsZero() {
		return 100
	}

	larger, smaller := a.Abs(), b.Abs()
	if smaller.GreaterThan(larger) {
		larger, smaller = smaller, larger
	}
	pct, _ := larger.Sub(smaller).Div(larger).Mul(hundred).Float64()
	return pct
}
