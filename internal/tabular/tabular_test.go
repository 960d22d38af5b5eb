package tabular

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jpkgen/jpk_wb_app/internal/apperrors"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDetectDelimiter(t *testing.T) {
	testCases := []struct {
		name     string
		line     string
		expected rune
	}{
		{"semicolon separated", "NrRachunku;Data;Kwota", ';'},
		{"comma separated", "NrRachunku,Data,Kwota", ','},
		{"semicolon only inside quotes", `"Nazwa;Firmy",NIP,REGON`, ','},
		{"semicolon after quoted field", `"Nazwa,Firmy";NIP;REGON`, ';'},
		{"empty line", "", ','},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, detectDelimiter(tc.line))
		})
	}
}

func TestDecodeUnsupportedExtension(t *testing.T) {
	_, err := Decode("statement.xls")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFormat)

	_, err = Decode("statement")
	assert.ErrorIs(t, err, apperrors.ErrUnsupportedFormat)
}

func TestDecodeCSVSemicolon(t *testing.T) {
	path := writeTempFile(t, "positions.csv",
		"NrRachunku;Data;Kwota;SaldoKoncowe\n"+
			"PL61109010140000071219812874;2024-01-15;100,50;1100,50\n"+
			"PL61109010140000071219812874;2024-01-16;-25,00;1075,50\n")

	table, err := Decode(path)
	require.NoError(t, err)
	assert.Equal(t, 2, table.RowCount())

	cell, ok := table.Cell(0, "Kwota")
	require.True(t, ok)
	assert.Equal(t, "100,50", cell.Text)
	assert.Equal(t, KindText, cell.Kind)
}

func TestDecodeCSVQuotedSemicolonStaysOneField(t *testing.T) {
	path := writeTempFile(t, "header.csv",
		"\"NazwaFirmy;Oddzial\",NIP\n"+
			"\"Firma; z oddzialem\",5260250274\n")

	table, err := Decode(path)
	require.NoError(t, err)
	require.Equal(t, 1, table.RowCount())

	cell, ok := table.Cell(0, "NazwaFirmy;Oddzial")
	require.True(t, ok)
	assert.Equal(t, "Firma; z oddzialem", cell.Text)
}

func TestDecodeCSVHeaderOnly(t *testing.T) {
	path := writeTempFile(t, "empty.csv", "NrRachunku,Data,Kwota\n")

	_, err := Decode(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrEmptyInput)
}

func TestColumnLookupIsCaseInsensitive(t *testing.T) {
	path := writeTempFile(t, "h.csv", "NIP,NazwaFirmy\n5260250274,Firma\n")

	table, err := Decode(path)
	require.NoError(t, err)

	assert.True(t, table.HasColumn("nip"))
	assert.True(t, table.HasColumn("NAZWAFIRMY"))
	assert.False(t, table.HasColumn("REGON"))

	cell, ok := table.Cell(0, "nazwafirmy")
	require.True(t, ok)
	assert.Equal(t, "Firma", cell.Text)
}

func TestRequireReportsMissingColumn(t *testing.T) {
	path := writeTempFile(t, "h.csv", "NIP,NazwaFirmy\n5260250274,Firma\n")

	table, err := Decode(path)
	require.NoError(t, err)

	err = table.Require("NIP", "REGON")
	require.Error(t, err)
	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "REGON", missing.Column)
}

func TestDecodeRaggedRow(t *testing.T) {
	path := writeTempFile(t, "ragged.csv", "A,B,C\n1,2\n")

	table, err := Decode(path)
	require.NoError(t, err)

	_, ok := table.Cell(0, "C")
	assert.False(t, ok)
}

func TestDecodeWorkbook(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"NrRachunku", "Data", "Kwota"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"PL61109010140000071219812874", 45307, 100.5}))

	path := filepath.Join(t.TempDir(), "positions.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := Decode(path)
	require.NoError(t, err)
	require.Equal(t, 1, table.RowCount())

	kwota, ok := table.Cell(0, "kwota")
	require.True(t, ok)
	assert.Equal(t, KindNumber, kwota.Kind)
	assert.Equal(t, 100.5, kwota.Number)
	assert.Equal(t, "100.5", kwota.Raw, "numeric cells keep their unformatted source text")

	data, ok := table.Cell(0, "Data")
	require.True(t, ok)
	assert.Equal(t, KindNumber, data.Kind)
	assert.Equal(t, float64(45307), data.Number)
}

func TestDecodeWorkbookHeaderOnly(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"NIP"}))

	path := filepath.Join(t.TempDir(), "header.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	_, err := Decode(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrEmptyInput)
}
