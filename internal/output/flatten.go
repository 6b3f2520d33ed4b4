package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
)

// Row is one record flattened to dotted column names.
type Row map[string]string

// Flatten converts a slice of records into rows. Nested objects become dotted
// keys ("contact.email"), arrays are kept as JSON text and nulls are empty.
// An empty slice yields ErrNoData.
func Flatten(records interface{}) ([]Row, error) {
	v := reflect.ValueOf(records)
	if v.Kind() != reflect.Slice {
		return nil, fmt.Errorf("flatten: expected a slice, got %T", records)
	}
	if v.Len() == 0 {
		return nil, ErrNoData
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("flatten: failed to encode records: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var objects []map[string]interface{}
	if err := dec.Decode(&objects); err != nil {
		return nil, fmt.Errorf("flatten: records are not objects: %w", err)
	}

	rows := make([]Row, len(objects))
	for i, obj := range objects {
		row := make(Row)
		if err := flattenInto(row, "", obj); err != nil {
			return nil, err
		}
		rows[i] = row
	}
	return rows, nil
}

func flattenInto(row Row, prefix string, obj map[string]interface{}) error {
	for key, value := range obj {
		name := key
		if prefix != "" {
			name = prefix + "." + key
		}

		switch val := value.(type) {
		case map[string]interface{}:
			if err := flattenInto(row, name, val); err != nil {
				return err
			}
		case []interface{}:
			text, err := json.Marshal(val)
			if err != nil {
				return fmt.Errorf("flatten: %s: %w", name, err)
			}
			row[name] = string(text)
		case nil:
			row[name] = ""
		case string:
			row[name] = val
		default:
			row[name] = fmt.Sprint(val)
		}
	}
	return nil
}

// Columns returns the sorted union of the rows' keys.
func Columns(rows []Row) []string {
	seen := make(map[string]struct{})
	for _, row := range rows {
		for key := range row {
			seen[key] = struct{}{}
		}
	}

	columns := make([]string, 0, len(seen))
	for key := range seen {
		columns = append(columns, key)
	}
	sort.Strings(columns)
	return columns
}
