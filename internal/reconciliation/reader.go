package reconciliation

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"apgen/internal/config"
	"apgen/internal/generator"
	"apgen/internal/logger"
	"apgen/internal/output"
)

// DataReader loads a dataset previously written by the json output writer.
type DataReader struct {
	dir string
	log zerolog.Logger
}

// NewDataReader creates a reader for the dataset in dir.
func NewDataReader(dir string) *DataReader {
	return &DataReader{
		dir: dir,
		log: logger.WithComponent("reconciliation-reader"),
	}
}

// ReadManifest reads the run manifest.
func (dr *DataReader) ReadManifest() (*output.Manifest, error) {
	const op = "ReadManifest"

	data, err := os.ReadFile(filepath.Join(dr.dir, output.ManifestFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w in %s", op, ErrMissingManifest, dr.dir)
		}
		return nil, fmt.Errorf("%s: failed to read manifest: %w", op, err)
	}

	var m output.Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%s: failed to parse manifest: %w", op, err)
	}
	return &m, nil
}

// ReadDataset reads the manifest and every collection it lists.
func (dr *DataReader) ReadDataset() (*generator.Dataset, error) {
	const op = "ReadDataset"

	manifest, err := dr.ReadManifest()
	if err != nil {
		return nil, err
	}
	if manifest.Format != config.FormatJSON {
		return nil, fmt.Errorf("%s: %w (dataset format is %s)", op, ErrNotJSONDataset, manifest.Format)
	}

	dr.log.Info().
		Str("dir", dr.dir).
		Str("run_id", manifest.RunID).
		Strs("files", manifest.Files).
		Msg("Reading dataset")

	ds := &generator.Dataset{
		RunID:       manifest.RunID,
		Seed:        manifest.Seed,
		GeneratedAt: manifest.GeneratedAt,
	}
	collections := []struct {
		name   string
		target interface{}
	}{
		{generator.StageVendors, &ds.Vendors},
		{generator.StagePurchaseOrders, &ds.PurchaseOrders},
		{generator.StageInvoices, &ds.Invoices},
		{generator.StagePayments, &ds.Payments},
	}
	for _, c := range collections {
		if err := dr.readCollection(c.name, c.target); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
	}

	counts := ds.Counts()
	for name, want := range manifest.Counts {
		if got := counts[name]; got != want {
			dr.log.Warn().
				Str("collection", name).
				Int("manifest", want).
				Int("read", got).
				Msg("Collection size differs from manifest")
		}
	}
	return ds, nil
}

func (dr *DataReader) readCollection(name string, target interface{}) error {
	path := filepath.Join(dr.dir, name+"."+config.FormatJSON)
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	dr.log.Debug().Str("collection", name).Str("path", path).Msg("Collection read")
	return nil
}
