package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/jpkgen/jpk_wb_app/internal/apperrors"
	"github.com/jpkgen/jpk_wb_app/internal/core/domain"
	"github.com/jpkgen/jpk_wb_app/internal/tabular"
)

var headerColumns = []string{
	"NIP", "REGON", "NazwaFirmy", "KodKraju", "Wojewodztwo", "Powiat",
	"Gmina", "Ulica", "NrDomu", "NrLokalu", "Miejscowosc", "KodPocztowy",
	"Poczta", "NumerRachunku", "DataOd", "DataDo", "KodWaluty", "KodUrzedu",
}

var requiredPositionColumns = []string{"NrRachunku", "Data", "Kwota", "SaldoKoncowe"}

// RowError identifies a data row that could not be normalized. Row is the
// 1-based row number in the source file, header row included.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

// HeaderFromTable builds the statement header from the first data row.
// All header columns must be present; any further rows are ignored.
// Country and currency codes default to PL and PLN when blank.
func HeaderFromTable(t *tabular.Table) (*domain.HeaderRecord, error) {
	if t.RowCount() < 1 {
		return nil, fmt.Errorf("%w: header file has no data row", apperrors.ErrEmptyInput)
	}
	if err := t.Require(headerColumns...); err != nil {
		return nil, err
	}

	text := func(column string) string {
		c, _ := t.Cell(0, column)
		return strings.TrimSpace(c.Text)
	}
	date := func(column string) *time.Time {
		c, _ := t.Cell(0, column)
		return ParseDate(c)
	}

	h := &domain.HeaderRecord{
		NIP:           text("NIP"),
		REGON:         text("REGON"),
		NazwaFirmy:    text("NazwaFirmy"),
		KodKraju:      text("KodKraju"),
		Wojewodztwo:   text("Wojewodztwo"),
		Powiat:        text("Powiat"),
		Gmina:         text("Gmina"),
		Ulica:         text("Ulica"),
		NrDomu:        text("NrDomu"),
		NrLokalu:      text("NrLokalu"),
		Miejscowosc:   text("Miejscowosc"),
		KodPocztowy:   text("KodPocztowy"),
		Poczta:        text("Poczta"),
		NumerRachunku: stripSpaces(text("NumerRachunku")),
		DataOd:        date("DataOd"),
		DataDo:        date("DataDo"),
		KodWaluty:     strings.ToUpper(text("KodWaluty")),
		KodUrzedu:     text("KodUrzedu"),
	}
	if h.KodKraju == "" {
		h.KodKraju = "PL"
	}
	if h.KodWaluty == "" {
		h.KodWaluty = "PLN"
	}
	return h, nil
}

// PositionsFromTable normalizes every data row of a position file. Rows with
// no parseable date are skipped: silently when the row is entirely blank,
// otherwise reported in the RowError slice. A missing required column fails
// the whole file.
func PositionsFromTable(t *tabular.Table) ([]domain.PositionRecord, []RowError, error) {
	if err := t.Require(requiredPositionColumns...); err != nil {
		return nil, nil, err
	}

	var (
		records []domain.PositionRecord
		rowErrs []RowError
	)
	for i := 0; i < t.RowCount(); i++ {
		text := func(column string) string {
			c, _ := t.Cell(i, column)
			return strings.TrimSpace(c.Text)
		}

		dataCell, _ := t.Cell(i, "Data")
		kwotaCell, _ := t.Cell(i, "Kwota")
		saldoCell, _ := t.Cell(i, "SaldoKoncowe")

		p := domain.PositionRecord{
			NrRachunku:            stripSpaces(text("NrRachunku")),
			Data:                  ParseDate(dataCell),
			Kontrahent:            text("Kontrahent"),
			NrRachunkuKontrahenta: stripSpaces(text("NrRachunkuKontrahenta")),
			Tytul:                 text("Tytul"),
			Kwota:                 ParseDecimal(kwotaCell),
			SaldoKoncowe:          ParseDecimal(saldoCell),
		}

		if p.Data == nil {
			if isBlankPosition(p, dataCell) {
				continue
			}
			rowErrs = append(rowErrs, RowError{
				Row: i + 2, // 1-based, after the header row
				Err: fmt.Errorf("no parseable date in %q", dataCell.Text),
			})
			continue
		}
		records = append(records, p)
	}
	return records, rowErrs, nil
}

func isBlankPosition(p domain.PositionRecord, dataCell tabular.Cell) bool {
	return strings.TrimSpace(dataCell.Text) == "" &&
		p.NrRachunku == "" && p.Kontrahent == "" && p.NrRachunkuKontrahenta == "" &&
		p.Tytul == "" && p.Kwota == nil && p.SaldoKoncowe == nil
}
