package output

import "errors"

var (
	// ErrUnsupportedFormat is returned for an output format other than csv, json or xlsx.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrNoData is returned when a tabular writer receives no records.
	ErrNoData = errors.New("no data to write")
)
