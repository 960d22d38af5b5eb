package tabular

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jpkgen/jpk_wb_app/internal/apperrors"
)

// decodeWorkbook reads the first worksheet of an xlsx workbook. The header
// row is row 1; data starts at row 2. Numeric cells keep their raw value so
// serial dates and exact amounts survive number formatting.
func decodeWorkbook(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrEmptyInput, err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return nil, fmt.Errorf("%w: workbook %s has no worksheet", apperrors.ErrEmptyInput, path)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrEmptyInput, err)
	}
	raw, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrEmptyInput, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: worksheet %q has no data rows", apperrors.ErrEmptyInput, sheet)
	}

	columns := make([]string, len(rows[0]))
	for i, col := range rows[0] {
		columns[i] = strings.TrimSpace(col)
	}

	t := newTable(columns)
	for i, row := range rows[1:] {
		cells := make([]Cell, len(columns))
		for j := range columns {
			var text, rawText string
			if j < len(row) {
				text = strings.TrimSpace(row[j])
			}
			// GetRows drops trailing empty cells, so both slices can be ragged.
			if i+1 < len(raw) && j < len(raw[i+1]) {
				rawText = strings.TrimSpace(raw[i+1][j])
			}
			cells[j] = Cell{Text: text}
			if n, err := strconv.ParseFloat(rawText, 64); err == nil && rawText != "" {
				cells[j].Kind = KindNumber
				cells[j].Raw = rawText
				cells[j].Number = n
			}
		}
		t.appendRow(cells)
	}
	return t, nil
}
