package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"apgen/internal/logger"
	"apgen/internal/ratelimit"
	"apgen/pkg/models"
)

const (
	maxLateDays        = 30
	partialProbability = 0.1
)

type paymentTiming int

const (
	paidEarly paymentTiming = iota
	paidOnTime
	paidLate
)

var timingWeights = []float64{0.2, 0.6, 0.2}

// PaymentGenerator settles payable invoices.
type PaymentGenerator struct {
	rt      *Runtime
	limiter *ratelimit.Limiter
	ids     *idSource
	log     zerolog.Logger
}

// NewPaymentGenerator creates a payment generator.
func NewPaymentGenerator(rt *Runtime) *PaymentGenerator {
	return &PaymentGenerator{
		rt:      rt,
		limiter: rt.newLimiter(),
		ids:     newIDSource(rt.Rand, "PAY", 7),
		log:     logger.WithComponent("payment-generator"),
	}
}

// Generate produces one payment for every Approved or Paid invoice. Other
// invoices are skipped.
func (g *PaymentGenerator) Generate(ctx context.Context, invoices []models.Invoice) ([]models.Payment, error) {
	const op = "GeneratePayments"

	g.log.Info().Int("invoices", len(invoices)).Msg("Generating payments")

	tracker := g.rt.startStage(StagePayments, len(invoices))
	defer tracker.Finish()

	var payments []models.Payment
	for i := range invoices {
		invoice := &invoices[i]
		if err := step(ctx, g.limiter); err != nil {
			return nil, NewGenerationError(op, err, fmt.Sprintf("invoice %s", invoice.InvoiceNumber))
		}

		if !invoice.IsPayable() {
			g.rt.Recorder.PaymentSkipped(invoice.Status)
			_ = tracker.Add(1)
			continue
		}

		payment, err := g.generateOne(invoice)
		if err != nil {
			return nil, NewGenerationError(op, err, fmt.Sprintf("invoice %s", invoice.InvoiceNumber))
		}
		payments = append(payments, payment)

		g.rt.Recorder.EntityGenerated(StagePayments)
		g.rt.Recorder.PaymentGenerated(payment.Status)
		_ = tracker.Add(1)
	}

	if payments == nil {
		payments = []models.Payment{}
	}
	g.log.Debug().Int("generated", len(payments)).Msg("Payments generated")
	return payments, nil
}

func (g *PaymentGenerator) generateOne(invoice *models.Invoice) (models.Payment, error) {
	rng := g.rt.Rand

	id, err := g.ids.Next()
	if err != nil {
		return models.Payment{}, err
	}

	paidOn := g.paymentDate(invoice)
	amount, discounted := ApplyEarlyPaymentDiscount(invoice.TotalAmount, invoice.PaymentTerms, invoice.InvoiceDate, paidOn)

	if chance(rng, partialProbability) {
		amount = amount.Mul(uniformFactor(rng, 0.5, 0.99)).Round(2)
	}

	status := models.PaymentStatusPartial
	if amount.Equal(invoice.TotalAmount) {
		status = models.PaymentStatusCompleted
	}

	var notes []string
	switch {
	case paidOn.Before(invoice.DueDate.Time):
		notes = append(notes, "Early payment")
		if discounted {
			notes = append(notes, "2% discount applied")
		}
	case paidOn.After(invoice.DueDate.Time):
		notes = append(notes, "Late payment")
	}
	// Any shortfall against the invoice total is reported, discount included.
	if amount.LessThan(invoice.TotalAmount) {
		remaining := invoice.TotalAmount.Sub(amount)
		notes = append(notes, "Partial payment",
			fmt.Sprintf("Remaining balance: %s %s", remaining.StringFixed(2), invoice.Currency))
	}
	if len(notes) == 0 {
		notes = append(notes, "Payment processed as per terms")
	}

	return models.Payment{
		PaymentID:     id,
		InvoiceNumber: invoice.InvoiceNumber,
		PONumber:      invoice.PONumber,
		VendorID:      invoice.VendorID,
		VendorName:    invoice.VendorName,
		PaymentDate:   paidOn,
		Amount:        amount,
		Currency:      invoice.Currency,
		PaymentMethod: choice(rng, g.rt.Settings.Payments.Methods),
		Status:        status,
		Notes:         strings.Join(notes, "; "),
	}, nil
}

// paymentDate draws the settlement date. Early payment needs at
// least two days between invoice and due date; otherwise it is on time.
func (g *PaymentGenerator) paymentDate(invoice *models.Invoice) models.Date {
	rng := g.rt.Rand
	termDays := invoice.InvoiceDate.DaysUntil(invoice.DueDate)

	switch paymentTiming(weightedIndex(rng, timingWeights)) {
	case paidEarly:
		if termDays >= 2 {
			return invoice.InvoiceDate.AddDays(intBetween(rng, 1, termDays-1))
		}
		return invoice.DueDate
	case paidLate:
		return invoice.DueDate.AddDays(intBetween(rng, 1, maxLateDays))
	default:
		return invoice.DueDate
	}
}
