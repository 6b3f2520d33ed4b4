package generator

import (
	"context"
	"fmt"
	"math/rand/v2"

	"apgen/internal/config"
	"apgen/internal/metrics"
	"apgen/internal/ratelimit"
)

// Stage names, also used as output collection names and metric labels.
const (
	StageVendors        = "vendors"
	StagePurchaseOrders = "purchase_orders"
	StageInvoices       = "invoices"
	StagePayments       = "payments"
)

// Progress reports per-stage progress to the user.
type Progress interface {
	Start(stage string, total int) Tracker
}

// Tracker follows a single stage.
type Tracker interface {
	Add(n int) error
	Finish() error
}

type noopProgress struct{}

func (noopProgress) Start(string, int) Tracker { return noopProgress{} }
func (noopProgress) Add(int) error             { return nil }
func (noopProgress) Finish() error             { return nil }

// Runtime is what every stage shares: read-only settings, the run's random
// source, and optional progress and metrics sinks.
type Runtime struct {
	Settings *config.Settings
	Rand     *rand.Rand
	Progress Progress          // nil reports nothing
	Recorder *metrics.Recorder // nil records nothing
}

func (rt *Runtime) validate() error {
	if rt == nil || rt.Settings == nil || rt.Rand == nil {
		return fmt.Errorf("runtime requires settings and a random source")
	}
	return nil
}

// newLimiter gives each stage its own token bucket.
func (rt *Runtime) newLimiter() *ratelimit.Limiter {
	return ratelimit.New(rt.Settings.General.MaxOperationsPerSecond)
}

func (rt *Runtime) startStage(stage string, total int) Tracker {
	if rt.Progress == nil {
		return noopProgress{}
	}
	return rt.Progress.Start(stage, total)
}

// step paces one record of a stage.
func step(ctx context.Context, limiter *ratelimit.Limiter) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return limiter.Limit(ctx)
}
