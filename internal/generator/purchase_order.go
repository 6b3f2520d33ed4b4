package generator

import (
	"context"
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"apgen/internal/config"
	"apgen/internal/logger"
	"apgen/internal/ratelimit"
	"apgen/pkg/models"
	"apgen/pkg/services"
)

const (
	minQuantity  = 1
	maxQuantity  = 100
	minBasePrice = 10.0
	maxBasePrice = 1000.0
)

var poNotes = []string{
	"Please deliver during business hours",
	"Fragile items included, handle with care",
	"Contact provided number before delivery",
	"Installation services required",
	"Rush order, please expedite",
}

// PurchaseOrderGenerator produces purchase orders against generated vendors.
type PurchaseOrderGenerator struct {
	rt           *Runtime
	faker        *gofakeit.Faker
	descriptions services.DescriptionService
	limiter      *ratelimit.Limiter
	poNumbers    *idSource
	itemNumbers  *idSource
	start        models.Date
	days         int
	log          zerolog.Logger
}

// NewPurchaseOrderGenerator creates a purchase order generator.
func NewPurchaseOrderGenerator(rt *Runtime, faker *gofakeit.Faker, descriptions services.DescriptionService) (*PurchaseOrderGenerator, error) {
	start, end, err := rt.Settings.DateRange()
	if err != nil {
		return nil, err
	}
	return &PurchaseOrderGenerator{
		rt:           rt,
		faker:        faker,
		descriptions: descriptions,
		limiter:      rt.newLimiter(),
		poNumbers:    newIDSource(rt.Rand, "PO", 7),
		itemNumbers:  newIDSource(rt.Rand, "ITEM", 6),
		start:        start,
		days:         start.DaysUntil(end),
		log:          logger.WithComponent("po-generator"),
	}, nil
}

// Generate produces purchase_orders.total_count orders.
func (g *PurchaseOrderGenerator) Generate(ctx context.Context, vendors []models.Vendor) ([]models.PurchaseOrder, error) {
	const op = "GeneratePurchaseOrders"

	total := g.rt.Settings.PurchaseOrders.TotalCount
	if total > 0 && len(vendors) == 0 {
		return nil, NewGenerationError(op, ErrNoVendors, "")
	}

	g.log.Info().
		Int("count", total).
		Int("vendors", len(vendors)).
		Msg("Generating purchase orders")

	tracker := g.rt.startStage(StagePurchaseOrders, total)
	defer tracker.Finish()

	orders := make([]models.PurchaseOrder, 0, total)
	for i := 0; i < total; i++ {
		if err := step(ctx, g.limiter); err != nil {
			return nil, NewGenerationError(op, err, fmt.Sprintf("purchase order %d of %d", i+1, total))
		}

		vendor := &vendors[g.rt.Rand.IntN(len(vendors))]
		po, err := g.generateOne(vendor)
		if err != nil {
			return nil, NewGenerationError(op, err, fmt.Sprintf("purchase order for vendor %s", vendor.VendorID))
		}
		orders = append(orders, po)

		g.rt.Recorder.EntityGenerated(StagePurchaseOrders)
		_ = tracker.Add(1)
	}

	return orders, nil
}

func (g *PurchaseOrderGenerator) generateOne(vendor *models.Vendor) (models.PurchaseOrder, error) {
	rng := g.rt.Rand

	regionName := choice(rng, vendor.Regions)
	region, ok := g.rt.Settings.Region(regionName)
	if !ok {
		return models.PurchaseOrder{}, fmt.Errorf("%w: %q", ErrUnknownRegion, regionName)
	}

	poDate := g.start.AddDays(rng.IntN(g.days + 1))
	currency := choice(rng, region.Currencies)

	number, err := g.poNumbers.Next()
	if err != nil {
		return models.PurchaseOrder{}, err
	}

	items, err := g.lineItems(vendor, region, currency)
	if err != nil {
		return models.PurchaseOrder{}, err
	}
	subtotal, _ := models.SumTotals(items)

	return models.PurchaseOrder{
		PONumber:           number,
		VendorID:           vendor.VendorID,
		VendorName:         vendor.Name,
		Region:             region.Name,
		PODate:             poDate,
		Currency:           currency,
		Items:              items,
		Status:             models.POStatusOpen,
		ShippingAddress:    g.address(region),
		BillingAddress:     g.address(region),
		TermsAndConditions: OrderTerms(vendor.PaymentTerms),
		Notes:              choice(rng, poNotes),
		TotalAmount:        subtotal,
	}, nil
}

func (g *PurchaseOrderGenerator) lineItems(vendor *models.Vendor, region *config.Region, currency string) ([]models.LineItem, error) {
	rng := g.rt.Rand
	po := g.rt.Settings.PurchaseOrders

	count := intBetween(rng, po.MinItems, po.MaxItems)
	items := make([]models.LineItem, 0, count)
	for i := 0; i < count; i++ {
		category := choice(rng, vendor.Specializations)

		desc, err := g.descriptions.ItemDescription(category)
		if err != nil {
			return nil, err
		}

		quantity := intBetween(rng, minQuantity, maxQuantity)
		unitPrice, err := g.unitPrice(currency)
		if err != nil {
			return nil, err
		}

		number, err := g.itemNumbers.Next()
		if err != nil {
			return nil, err
		}

		item := models.LineItem{
			ItemNumber:  number,
			Description: desc.Description,
			Category:    category,
			Quantity:    quantity,
			UnitPrice:   unitPrice,
			Currency:    currency,
			TaxRate:     region.TaxRate(category),
			Brand:       desc.Brand,
			Model:       desc.Model,
		}
		item.Recalculate()
		items = append(items, item)
	}
	return items, nil
}

// unitPrice draws a base-currency price and converts it, rounded to cents.
func (g *PurchaseOrderGenerator) unitPrice(currency string) (decimal.Decimal, error) {
	rate, ok := g.rt.Settings.ExchangeRate(currency)
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrMissingExchangeRate, currency)
	}
	base := decimal.NewFromFloat(uniform(g.rt.Rand, minBasePrice, maxBasePrice))
	return base.Mul(rate).Round(2), nil
}

func (g *PurchaseOrderGenerator) address(region *config.Region) string {
	country := choice(g.rt.Rand, region.Countries)
	return fmt.Sprintf("%s, %s, %s", g.faker.Street(), g.faker.City(), country)
}
