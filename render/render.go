// Package render serializes a unified table into text formats.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/tsawler/gridframe/model"
)

// ErrNoData is returned when there are no records to render.
var ErrNoData = errors.New("no data to render")

// Format names an output format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatTSV      Format = "tsv"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatTable    Format = "table"
)

// Formats lists every supported output format.
func Formats() []Format {
	return []Format{FormatCSV, FormatTSV, FormatMarkdown, FormatJSON, FormatYAML, FormatTable}
}

// ParseFormat resolves a format name. "md" is accepted for markdown.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "md" {
		return FormatMarkdown, nil
	}
	for _, f := range Formats() {
		if string(f) == name {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q", name)
}

// Options controls rendering.
type Options struct {
	// Delimiter separates csv fields. Defaults to ",".
	Delimiter string
}

// Write renders t in format f and writes it to w. Output is built in memory
// first, so nothing is written when rendering fails.
func Write(w io.Writer, f Format, t *model.UnifiedTable, opts Options) error {
	if t.Len() == 0 {
		return ErrNoData
	}

	var buf bytes.Buffer
	switch f {
	case FormatCSV, FormatTSV:
		delim := opts.Delimiter
		if f == FormatTSV {
			delim = "\t"
		}
		out, err := CSV(t.Records, delim)
		if err != nil {
			return err
		}
		buf.WriteString(out)
		buf.WriteByte('\n')
	case FormatMarkdown:
		writeMarkdown(&buf, t)
	case FormatJSON:
		if err := writeJSON(&buf, t); err != nil {
			return err
		}
	case FormatYAML:
		if err := writeYAML(&buf, t); err != nil {
			return err
		}
	case FormatTable:
		writeTable(&buf, t)
	default:
		return fmt.Errorf("unknown output format %q", f)
	}

	_, err := w.Write(buf.Bytes())
	return err
}

// CSV joins records into delimited lines: a header with the first record's
// field names, then one line of values per record. Values are written as is
// with no quoting. Lines are separated by "\n" with no trailing newline.
func CSV(records []model.Record, delim string) (string, error) {
	if len(records) == 0 {
		return "", ErrNoData
	}
	if delim == "" {
		delim = ","
	}

	lines := make([]string, 0, len(records)+1)
	lines = append(lines, strings.Join(records[0].Names(), delim))
	for _, rec := range records {
		lines = append(lines, strings.Join(rec.Values(), delim))
	}
	return strings.Join(lines, "\n"), nil
}

// TSV is CSV with a tab delimiter.
func TSV(records []model.Record) (string, error) {
	return CSV(records, "\t")
}
