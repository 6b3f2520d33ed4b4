package output

import (
	"encoding/json"
	"fmt"
	"os"
)

// writeJSON writes records as an indented array. Unlike the tabular formats
// an empty collection is written as [].
func writeJSON(path string, records interface{}) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	if string(data) == "null" {
		data = []byte("[]")
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
