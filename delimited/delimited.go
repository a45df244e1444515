// Package delimited reads CSV and TSV files as grids of cell text.
package delimited

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/tsawler/gridframe/grid"
)

// ErrUnknownEncoding is returned for an encoding name Read does not support.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Options controls how delimited text is read.
type Options struct {
	// Comma is the field delimiter. Defaults to ','.
	Comma rune

	// Encoding names the character encoding of the input: "utf-8" (the
	// default), "latin1" or "windows-1252".
	Encoding string
}

// Encodings lists the supported encoding names.
func Encodings() []string {
	return []string{"utf-8", "latin1", "windows-1252"}
}

// lookupEncoding maps an encoding name, or one of its aliases, to a
// decoder. UTF-8 input has a leading byte order mark removed.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	case "latin1", "latin-1", "iso-8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
}

// ValidateEncoding reports whether name is a supported encoding.
func ValidateEncoding(name string) error {
	_, err := lookupEncoding(name)
	return err
}

// ReadFile reads the delimited file at path.
func ReadFile(path string, opts Options) (*grid.Matrix, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f, opts)
}

// Read parses delimited text into a grid. Rows shorter than the widest row
// are padded with blank cells. Empty lines become blank rows so that tables
// separated by them stay apart.
func Read(r io.Reader, opts Options) (*grid.Matrix, error) {
	enc, err := lookupEncoding(opts.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(transform.NewReader(r, enc.NewDecoder()))
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = false

	var rows [][]string
	nextLine := 1
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(rows)+1, err)
		}

		// encoding/csv drops empty lines; put them back as blank rows.
		line, _ := cr.FieldPos(0)
		for ; nextLine < line; nextLine++ {
			rows = append(rows, nil)
		}

		last := len(record) - 1
		endLine, _ := cr.FieldPos(last)
		nextLine = endLine + strings.Count(record[last], "\n") + 1

		rows = append(rows, record)
	}

	return grid.Pad(rows), nil
}
