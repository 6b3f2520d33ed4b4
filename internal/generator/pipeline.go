// Package generator produces the accounts-payable dataset: vendors, purchase
// orders against them, invoices billing those orders and payments settling
// the payable invoices.
//
// Stages run sequentially on one goroutine and share a single random source,
// so a run is fully determined by its seed and settings.
package generator

import (
	"context"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"apgen/internal/config"
	"apgen/internal/logger"
	"apgen/internal/metrics"
	"apgen/pkg/models"
	"apgen/pkg/services"
)

// Dataset is the complete output of one run.
type Dataset struct {
	RunID          string                 `json:"run_id"`
	Seed           uint64                 `json:"seed"`
	GeneratedAt    time.Time              `json:"generated_at"`
	Vendors        []models.Vendor        `json:"vendors"`
	PurchaseOrders []models.PurchaseOrder `json:"purchase_orders"`
	Invoices       []models.Invoice       `json:"invoices"`
	Payments       []models.Payment       `json:"payments"`
}

// Counts returns the number of records per collection, keyed by stage name.
func (d *Dataset) Counts() map[string]int {
	return map[string]int{
		StageVendors:        len(d.Vendors),
		StagePurchaseOrders: len(d.PurchaseOrders),
		StageInvoices:       len(d.Invoices),
		StagePayments:       len(d.Payments),
	}
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithProgress reports per-stage progress.
func WithProgress(p Progress) Option {
	return func(pl *Pipeline) { pl.rt.Progress = p }
}

// WithRecorder records generation metrics.
func WithRecorder(r *metrics.Recorder) Option {
	return func(pl *Pipeline) { pl.rt.Recorder = r }
}

// Pipeline runs all four stages.
type Pipeline struct {
	rt           *Runtime
	source       *Source
	faker        *gofakeit.Faker
	descriptions services.DescriptionService
}

// NewPipeline checks that descriptions cover every category the settings use
// and prepares a run over source.
func NewPipeline(settings *config.Settings, descriptions services.DescriptionService, source *Source, opts ...Option) (*Pipeline, error) {
	if descriptions == nil || source == nil {
		return nil, fmt.Errorf("pipeline requires descriptions and a random source")
	}

	if err := CheckDescriptions(settings, descriptions); err != nil {
		return nil, err
	}

	pl := &Pipeline{
		rt: &Runtime{
			Settings: settings,
			Rand:     source.Rand,
		},
		source:       source,
		faker:        source.Faker,
		descriptions: descriptions,
	}
	for _, opt := range opts {
		opt(pl)
	}
	if err := pl.rt.validate(); err != nil {
		return nil, err
	}
	return pl, nil
}

// CheckDescriptions reports the first category used by settings that
// descriptions cannot describe.
func CheckDescriptions(settings *config.Settings, descriptions services.DescriptionService) error {
	categories := append([]string{settings.Vendors.DescriptionCategory}, settings.Items.Categories...)
	for _, category := range categories {
		if !descriptions.HasCategory(category) {
			return fmt.Errorf("%w: %q", ErrMissingDescriptionCategory, category)
		}
	}
	return nil
}

// Run generates the dataset. Cancelling ctx stops the run between records.
func (p *Pipeline) Run(ctx context.Context) (*Dataset, error) {
	log := logger.WithRun("pipeline", p.source.RunID, p.source.Seed)
	log.Info().Msg("Starting generation run")

	ds := &Dataset{
		RunID:       p.source.RunID,
		Seed:        p.source.Seed,
		GeneratedAt: time.Now().UTC(),
	}
	start := time.Now()

	var err error
	err = p.stage(StageVendors, func() error {
		ds.Vendors, err = NewVendorGenerator(p.rt, p.faker, p.descriptions).Generate(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(StagePurchaseOrders, func() error {
		gen, err := NewPurchaseOrderGenerator(p.rt, p.faker, p.descriptions)
		if err != nil {
			return err
		}
		ds.PurchaseOrders, err = gen.Generate(ctx, ds.Vendors)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(StageInvoices, func() error {
		ds.Invoices, err = NewInvoiceGenerator(p.rt).Generate(ctx, ds.PurchaseOrders)
		return err
	})
	if err != nil {
		return nil, err
	}

	err = p.stage(StagePayments, func() error {
		ds.Payments, err = NewPaymentGenerator(p.rt).Generate(ctx, ds.Invoices)
		return err
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Int("vendors", len(ds.Vendors)).
		Int("purchase_orders", len(ds.PurchaseOrders)).
		Int("invoices", len(ds.Invoices)).
		Int("payments", len(ds.Payments)).
		Dur("duration", time.Since(start)).
		Msg("Generation run completed")

	return ds, nil
}

func (p *Pipeline) stage(name string, fn func() error) error {
	start := time.Now()
	if err := fn(); err != nil {
		return err
	}
	p.rt.Recorder.ObserveStage(name, time.Since(start))
	return nil
}
