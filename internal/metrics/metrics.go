// Package metrics counts what a generation run produced.
//
// Counters live in a private registry per run. The CLI can dump them in the
// Prometheus text format for node_exporter's textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder holds the run's metrics. A nil *Recorder discards everything.
type Recorder struct {
	registry *prometheus.Registry

	// EntitiesGenerated counts records produced per entity type
	EntitiesGenerated *prometheus.CounterVec

	// InvoiceStatus counts generated invoices per status
	InvoiceStatus *prometheus.CounterVec

	// PaymentStatus counts generated payments per status
	PaymentStatus *prometheus.CounterVec

	// PaymentsSkipped counts invoices that produced no payment, by invoice status
	PaymentsSkipped *prometheus.CounterVec

	// StageDuration records the wall-clock time of each pipeline stage
	StageDuration *prometheus.GaugeVec
}

// NewRecorder creates a recorder with its own registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		EntitiesGenerated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "apgen_entities_generated_total",
				Help: "Total number of generated records",
			},
			[]string{"entity"},
		),
		InvoiceStatus: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "apgen_invoice_status_total",
				Help: "Generated invoices by status",
			},
			[]string{"status"},
		),
		PaymentStatus: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "apgen_payment_status_total",
				Help: "Generated payments by status",
			},
			[]string{"status"},
		),
		PaymentsSkipped: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "apgen_payments_skipped_total",
				Help: "Invoices without a payment, by invoice status",
			},
			[]string{"invoice_status"},
		),
		StageDuration: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "apgen_stage_duration_seconds",
				Help: "Wall-clock duration of each generation stage",
			},
			[]string{"stage"},
		),
	}
}

// EntityGenerated increments the counter for entity.
func (r *Recorder) EntityGenerated(entity string) {
	if r == nil {
		return
	}
	r.EntitiesGenerated.WithLabelValues(entity).Inc()
}

// InvoiceGenerated records an invoice's status.
func (r *Recorder) InvoiceGenerated(status string) {
	if r == nil {
		return
	}
	r.InvoiceStatus.WithLabelValues(status).Inc()
}

// PaymentGenerated records a payment's status.
func (r *Recorder) PaymentGenerated(status string) {
	if r == nil {
		return
	}
	r.PaymentStatus.WithLabelValues(status).Inc()
}

// PaymentSkipped records an invoice that is not eligible for payment.
func (r *Recorder) PaymentSkipped(invoiceStatus string) {
	if r == nil {
		return
	}
	r.PaymentsSkipped.WithLabelValues(invoiceStatus).Inc()
}

// ObserveStage records how long a stage took.
func (r *Recorder) ObserveStage(stage string, d time.Duration) {
	if r == nil {
		return
	}
	r.StageDuration.WithLabelValues(stage).Set(d.Seconds())
}

// Gatherer exposes the registry.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics in the Prometheus text format to path.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
