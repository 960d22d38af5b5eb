// Package tabular reads a single spreadsheet-workbook or delimited-text file
// into a sequence of named-column rows. Format is selected by file extension;
// column lookup is case-insensitive.
package tabular

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/jpkgen/jpk_wb_app/internal/apperrors"
)

// Kind describes the native type a decoder exposed for a cell.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindDate
)

// Cell is one decoded cell: the display text plus the native value
// when the source format exposed one. Raw keeps the unformatted source
// text of a numeric cell so amounts can be re-parsed without a float64
// round trip.
type Cell struct {
	Text   string
	Kind   Kind
	Raw    string    // set when Kind == KindNumber
	Number float64   // valid when Kind == KindNumber
	Time   time.Time // valid when Kind == KindDate
}

// Table holds the decoded rows of one source file, keyed by the
// trimmed first-row header texts.
type Table struct {
	Columns []string
	rows    [][]Cell
	index   map[string]int
}

func newTable(columns []string) *Table {
	t := &Table{
		Columns: columns,
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		key := strings.ToLower(strings.TrimSpace(col))
		if _, exists := t.index[key]; !exists {
			t.index[key] = i
		}
	}
	return t
}

func (t *Table) appendRow(cells []Cell) {
	t.rows = append(t.rows, cells)
}

// RowCount returns the number of data rows (the header row excluded).
func (t *Table) RowCount() int {
	return len(t.rows)
}

// HasColumn reports whether the header row contains the named column,
// ignoring case.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Cell returns the cell at the given data row for the named column.
// The second result is false when the column is absent or the row is
// shorter than the header.
func (t *Table) Cell(row int, column string) (Cell, bool) {
	if row < 0 || row >= len(t.rows) {
		return Cell{}, false
	}
	col, ok := t.index[strings.ToLower(strings.TrimSpace(column))]
	if !ok || col >= len(t.rows[row]) {
		return Cell{}, false
	}
	return t.rows[row][col], true
}

// Require verifies that every named column is present, returning a
// MissingColumnError for the first absent one.
func (t *Table) Require(columns ...string) error {
	for _, col := range columns {
		if !t.HasColumn(col) {
			return &MissingColumnError{Column: col}
		}
	}
	return nil
}

// MissingColumnError reports a required column absent from the header row.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("required column %q not found in header row", e.Column)
}

// Decode reads the file at path into a Table. The decoder is selected by
// extension: .xlsx for workbooks, .csv for delimited text. Any other
// extension fails without attempting a parse.
func Decode(path string) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".xlsx":
		return decodeWorkbook(path)
	case ".csv":
		return decodeDelimited(path)
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedFormat, ext)
	}
}
