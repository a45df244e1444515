package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tsawler/gridframe/delimited"
	"github.com/tsawler/gridframe/format"
	"github.com/tsawler/gridframe/render"
)

// Validate checks if the configuration is valid. All problems are reported
// together.
func (c *Config) Validate() error {
	var errs []error

	if c.Sheet < 1 {
		errs = append(errs, fmt.Errorf("sheet must be at least 1, got %d", c.Sheet))
	}
	if c.MinRows < 1 {
		errs = append(errs, fmt.Errorf("min_rows must be at least 1, got %d", c.MinRows))
	}
	if c.MinCols < 1 {
		errs = append(errs, fmt.Errorf("min_cols must be at least 1, got %d", c.MinCols))
	}
	if _, err := format.Parse(c.InputFormat); err != nil {
		errs = append(errs, err)
	}
	if err := delimited.ValidateEncoding(c.Encoding); err != nil {
		errs = append(errs, err)
	}
	if c.Output != OutputAuto {
		if _, err := render.ParseFormat(c.Output); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Delimiter == "" || strings.ContainsAny(c.Delimiter, "\r\n") {
		errs = append(errs, fmt.Errorf("delimiter must be non-empty and on one line, got %q", c.Delimiter))
	}
	switch c.LogFormat {
	case LogFormatText, LogFormatJSON:
	default:
		errs = append(errs, fmt.Errorf("log_format must be %q or %q, got %q", LogFormatText, LogFormatJSON, c.LogFormat))
	}

	return errors.Join(errs...)
}
