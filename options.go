package gridframe

import (
	"github.com/tsawler/gridframe/format"
	"github.com/tsawler/gridframe/tables"
)

// ExtractOptions holds configuration for loading and detection.
type ExtractOptions struct {
	// Source selection
	sheet       int // 1-indexed sheet or table
	sheetName   string
	inputFormat format.Format // Unknown means detect
	encoding    string

	// Detection
	detector string
	minRows  int
	minCols  int
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	config := tables.DefaultConfig()
	return ExtractOptions{
		sheet:       1,
		inputFormat: format.Unknown,
		encoding:    "utf-8",
		detector:    tables.RegionName,
		minRows:     config.MinRows,
		minCols:     config.MinCols,
	}
}

// clone returns a copy of the options. All fields are values.
func (o ExtractOptions) clone() ExtractOptions {
	return o
}

// detectorConfig returns the detector configuration for these options.
func (o ExtractOptions) detectorConfig() tables.Config {
	return tables.Config{
		MinRows: o.minRows,
		MinCols: o.minCols,
	}
}
