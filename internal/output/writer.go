// Package output serializes generated collections to csv, json or xlsx files
// and records a manifest of the run.
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"apgen/internal/config"
	"apgen/internal/generator"
	"apgen/internal/logger"
)

// ManifestFile is written next to the collections.
const ManifestFile = "manifest.json"

// Writer writes collections into one directory in one format.
type Writer struct {
	dir    string
	format string
	log    zerolog.Logger
}

// NewWriter returns a writer for format into dir.
func NewWriter(dir, format string) (*Writer, error) {
	format = strings.ToLower(format)
	if !config.IsSupportedFormat(format) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	return &Writer{
		dir:    dir,
		format: format,
		log:    logger.WithComponent("output"),
	}, nil
}

// Write stores records as <dir>/<name>.<format> and returns the path.
func (w *Writer) Write(name string, records interface{}) (string, error) {
	const op = "Write"

	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return "", fmt.Errorf("%s: failed to create output directory: %w", op, err)
	}
	path := filepath.Join(w.dir, name+"."+w.format)

	var err error
	switch w.format {
	case config.FormatCSV:
		err = writeCSV(path, records)
	case config.FormatJSON:
		err = writeJSON(path, records)
	case config.FormatXLSX:
		err = writeXLSX(path, name, records)
	default:
		err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, w.format)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %s: %w", op, name, err)
	}

	w.log.Info().Str("collection", name).Str("path", path).Msg("Collection written")
	return path, nil
}

// Manifest describes a written dataset.
type Manifest struct {
	RunID       string         `json:"run_id"`
	Seed        uint64         `json:"seed"`
	GeneratedAt time.Time      `json:"generated_at"`
	Format      string         `json:"format"`
	Counts      map[string]int `json:"counts"`
	Files       []string       `json:"files"`
}

// WriteDataset writes the four collections in generation order followed by
// the manifest. Empty collections are skipped for tabular formats and left
// out of the manifest's file list.
func (w *Writer) WriteDataset(ds *generator.Dataset) (*Manifest, error) {
	collections := []struct {
		name    string
		records interface{}
		count   int
	}{
		{generator.StageVendors, ds.Vendors, len(ds.Vendors)},
		{generator.StagePurchaseOrders, ds.PurchaseOrders, len(ds.PurchaseOrders)},
		{generator.StageInvoices, ds.Invoices, len(ds.Invoices)},
		{generator.StagePayments, ds.Payments, len(ds.Payments)},
	}

	manifest := &Manifest{
		RunID:       ds.RunID,
		Seed:        ds.Seed,
		GeneratedAt: ds.GeneratedAt,
		Format:      w.format,
		Counts:      ds.Counts(),
		Files:       []string{},
	}

	for _, c := range collections {
		if c.count == 0 && w.format != config.FormatJSON {
			w.log.Warn().Str("collection", c.name).Msg("Skipping empty collection")
			continue
		}
		path, err := w.Write(c.name, c.records)
		if err != nil {
			return nil, err
		}
		manifest.Files = append(manifest.Files, filepath.Base(path))
	}

	if err := w.writeManifest(manifest); err != nil {
		return nil, err
	}
	return manifest, nil
}

func (w *Writer) writeManifest(m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	path := filepath.Join(w.dir, ManifestFile)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// Dir returns the output directory.
func (w *Writer) Dir() string {
	return w.dir
}
