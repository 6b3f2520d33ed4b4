package reconciliation

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingManifest is returned when a directory has no manifest.json.
	ErrMissingManifest = errors.New("dataset manifest not found")

	// ErrNotJSONDataset is returned for datasets written in a flattened format.
	ErrNotJSONDataset = errors.New("only json datasets can be read back")
)

// Issue is a broken invariant found in a dataset.
type Issue struct {
	Entity  string // vendors, purchase_orders, invoices or payments
	ID      string // identifier of the offending record
	Rule    string // short rule name, e.g. "total_mismatch"
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s %s: %s: %s", i.Entity, i.ID, i.Rule, i.Message)
}

// Report is the outcome of reconciling a dataset.
type Report struct {
	// Checked counts the records inspected per entity.
	Checked map[string]int

	// Issues lists every broken invariant.
	Issues []Issue

	// MaxPriceDrift is the largest unit price difference between an invoice
	// item and its purchase order item, in percent.
	MaxPriceDrift float64

	// DriftedItems counts invoice items whose price or quantity differs from the order.
	DriftedItems int
}

func newReport() *Report {
	return &Report{Checked: make(map[string]int)}
}

// OK reports whether no invariant was broken.
func (r *Report) OK() bool {
	return len(r.Issues) == 0
}

func (r *Report) addIssue(entity, id, rule, format string, args ...interface{}) {
	r.Issues = append(r.Issues, Issue{
		Entity:  entity,
		ID:      id,
		Rule:    rule,
		Message: fmt.Sprintf(format, args...),
	})
}
