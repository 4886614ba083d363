// Package csv parses a delimited listing export into an all-text table. It is
// strict by default: a row whose width differs from the header fails the
// load, mirroring what the marketplace tooling expects. Lenient mode skips
// such rows instead and counts them.
package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
)

// ErrNoHeader is returned when the input has no header row.
var ErrNoHeader = errors.New("csv: missing header row")

// utf8BOM is stripped from the first header cell if present.
const utf8BOM = "\uFEFF"

// skipLogLimit caps how many skipped rows are logged in lenient mode.
const skipLogLimit = 400

// Options configures the CSV parser behavior. The zero value parses
// comma-separated input strictly.
type Options struct {
	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// Lenient skips malformed rows (quoting errors, wrong width) instead of
	// failing. Skipped rows are counted in Table.Skipped.
	Lenient bool
}

// Table is a raw, all-text table: a header and rows of equal width.
type Table struct {
	Header []string
	Rows   [][]string

	// Skipped counts rows dropped in lenient mode.
	Skipped int
}

// Index returns the position of column name in the header, or -1.
func (t Table) Index(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Shape returns (rows, columns).
func (t Table) Shape() (int, int) { return len(t.Rows), len(t.Header) }

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// Parse reads the header and every data row from r.
func (p *Parser) Parse(r io.Reader) (Table, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	// Width is enforced below against the header so errors carry both counts.
	cr.FieldsPerRecord = -1
	if p.opt.Lenient {
		cr.LazyQuotes = true
	}

	h, err := cr.Read()
	if err == io.EOF {
		return Table{}, ErrNoHeader
	}
	if err != nil {
		return Table{}, fmt.Errorf("read csv header: %w", err)
	}
	t := Table{Header: normalizeHeaders(h)}

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if p.opt.Lenient && errors.As(err, &pe) {
				t.skip(fmt.Sprintf("Skipping row at line %d: %v", pe.StartLine, err))
				continue
			}
			return Table{}, fmt.Errorf("read csv: %w", err)
		}
		if len(row) != len(t.Header) {
			line, _ := cr.FieldPos(0)
			if p.opt.Lenient {
				t.skip(fmt.Sprintf("Skipping row at line %d: incorrect number of fields (expected %d, got %d)", line, len(t.Header), len(row)))
				continue
			}
			return Table{}, fmt.Errorf("read csv: line %d: expected %d fields, got %d", line, len(t.Header), len(row))
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func (t *Table) skip(msg string) {
	if t.Skipped < skipLogLimit {
		log.Print(msg)
	}
	t.Skipped++
}

// normalizeHeaders trims header cells and strips a UTF-8 BOM from the first.
// Renaming is the schema package's job.
func normalizeHeaders(h []string) []string {
	res := make([]string, len(h))
	for i, col := range h {
		c := col
		if i == 0 {
			c = strings.TrimPrefix(c, utf8BOM)
		}
		res[i] = strings.TrimSpace(c)
	}
	return res
}
