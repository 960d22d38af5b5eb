package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/jpkgen/jpk_wb_app/internal/apperrors"
)

// detectDelimiter inspects a single line and picks the field delimiter:
// semicolon if one appears outside quoted sections, comma otherwise.
// A semicolon inside a quoted field must not trigger semicolon mode.
func detectDelimiter(line string) rune {
	inQuotes := false
	for _, r := range line {
		switch r {
		case '"':
			inQuotes = !inQuotes
		case ';':
			if !inQuotes {
				return ';'
			}
		}
	}
	return ','
}

// decodeDelimited reads a delimited-text file. The delimiter is inferred
// from the first line only, before any record parsing.
func decodeDelimited(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	firstLine := string(data)
	if idx := strings.IndexAny(firstLine, "\r\n"); idx >= 0 {
		firstLine = firstLine[:idx]
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = detectDelimiter(firstLine)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrEmptyInput, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: %s has no data rows", apperrors.ErrEmptyInput, path)
	}

	columns := make([]string, len(records[0]))
	for i, col := range records[0] {
		columns[i] = strings.TrimSpace(col)
	}

	t := newTable(columns)
	for _, record := range records[1:] {
		cells := make([]Cell, len(record))
		for i, field := range record {
			cells[i] = Cell{Text: strings.TrimSpace(field)}
		}
		t.appendRow(cells)
	}
	return t, nil
}
