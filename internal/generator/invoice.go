package generator

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"apgen/internal/logger"
	"apgen/internal/ratelimit"
	"apgen/pkg/models"
)

const (
	maxInvoiceDelayDays   = 30
	itemKeepProbability   = 0.95
	priceDriftProbability = 0.1
	qtyDriftProbability   = 0.05
)

var (
	invoiceCounts       = []int{1, 2, 3}
	invoiceCountWeights = []float64{0.8, 0.15, 0.05}

	invoiceNotes = []string{
		"Please process for payment",
		"Discount applied as per contract",
		"Partial delivery - more to follow",
		"Rush processing requested",
		"Credit memo to follow for previous overcharge",
	}

	grirIssues = []models.GRIRIssue{
		{Type: "Quantity Mismatch", Description: "Invoice quantity doesn't match goods received"},
		{Type: "Price Mismatch", Description: "Unit price on invoice differs from PO price"},
		{Type: "Missing Goods Receipt", Description: "No record of goods receipt in the system"},
		{Type: "Delivery Date Mismatch", Description: "Invoice date is earlier than the delivery date"},
	}
)

// InvoiceGenerator bills purchase orders, introducing the price and quantity
// discrepancies an AP clerk would have to reconcile.
type InvoiceGenerator struct {
	rt      *Runtime
	limiter *ratelimit.Limiter
	ids     *idSource
	log     zerolog.Logger
}

// NewInvoiceGenerator creates an invoice generator.
func NewInvoiceGenerator(rt *Runtime) *InvoiceGenerator {
	return &InvoiceGenerator{
		rt:      rt,
		limiter: rt.newLimiter(),
		ids:     newIDSource(rt.Rand, "INV", 7),
		log:     logger.WithComponent("invoice-generator"),
	}
}

// Generate produces one to three invoices per purchase order.
func (g *InvoiceGenerator) Generate(ctx context.Context, orders []models.PurchaseOrder) ([]models.Invoice, error) {
	const op = "GenerateInvoices"

	g.log.Info().Int("purchase_orders", len(orders)).Msg("Generating invoices")

	tracker := g.rt.startStage(StageInvoices, len(orders))
	defer tracker.Finish()

	invoices := make([]models.Invoice, 0, len(orders))
	for i := range orders {
		po := &orders[i]
		if err := step(ctx, g.limiter); err != nil {
			return nil, NewGenerationError(op, err, fmt.Sprintf("purchase order %s", po.PONumber))
		}

		count := invoiceCounts[weightedIndex(g.rt.Rand, invoiceCountWeights)]
		for j := 0; j < count; j++ {
			invoice, err := g.generateOne(po)
			if err != nil {
				return nil, NewGenerationError(op, err, fmt.Sprintf("purchase order %s", po.PONumber))
			}
			invoices = append(invoices, invoice)

			g.rt.Recorder.EntityGenerated(StageInvoices)
			g.rt.Recorder.InvoiceGenerated(invoice.Status)
		}
		_ = tracker.Add(1)
	}

	g.log.Debug().Int("generated", len(invoices)).Msg("Invoices generated")
	return invoices, nil
}

func (g *InvoiceGenerator) generateOne(po *models.PurchaseOrder) (models.Invoice, error) {
	rng := g.rt.Rand
	settings := g.rt.Settings.Invoices

	number, err := g.ids.Next()
	if err != nil {
		return models.Invoice{}, err
	}

	invoiceDate := po.PODate.AddDays(intBetween(rng, 1, maxInvoiceDelayDays))
	items := g.invoiceItems(po.Items)
	subtotal, tax := models.SumTotals(items)

	invoice := models.Invoice{
		InvoiceNumber: number,
		PONumber:      po.PONumber,
		VendorID:      po.VendorID,
		VendorName:    po.VendorName,
		InvoiceDate:   invoiceDate,
		DueDate:       invoiceDate.AddDays(TermsDays(po.TermsAndConditions)),
		Currency:      po.Currency,
		Items:         items,
		Subtotal:      subtotal,
		TaxAmount:     tax,
		TotalAmount:   subtotal.Add(tax),
		Status:        settings.Statuses[weightedIndex(rng, settings.StatusWeights)],
		PaymentTerms:  po.TermsAndConditions,
		Notes:         choice(rng, invoiceNotes),
	}

	if invoice.Status == models.InvoiceStatusBlocked {
		invoice.BlockReason = choice(rng, settings.BlockReasons)
	}
	// GRIR issues are drawn independently of the status.
	if chance(rng, settings.GRIRProbability) {
		issue := choice(rng, grirIssues)
		invoice.GRIRIssue = &issue
	}

	return invoice, nil
}

// invoiceItems copies the PO items that are billed, perturbing some of them.
func (g *InvoiceGenerator) invoiceItems(poItems []models.LineItem) []models.LineItem {
	rng := g.rt.Rand

	items := make([]models.LineItem, 0, len(poItems))
	for _, item := range poItems {
		if !chance(rng, itemKeepProbability) {
			continue
		}
		if chance(rng, priceDriftProbability) {
			item.UnitPrice = item.UnitPrice.Mul(uniformFactor(rng, 0.95, 1.05)).Round(2)
		}
		if chance(rng, qtyDriftProbability) {
			delta := 1
			if rng.IntN(2) == 0 {
				delta = -1
			}
			item.Quantity = max(1, item.Quantity+delta)
		}
		item.Recalculate()
		items = append(items, item)
	}
	return items
}
