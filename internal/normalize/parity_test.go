package normalize

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jpkgen/jpk_wb_app/internal/tabular"
)

// The same statement data decoded from a workbook and from delimited text
// must normalize to identical records.
func TestPositionFormatParity(t *testing.T) {
	csvTable := decodeCSV(t, "positions.csv",
		"NrRachunku;Data;Kontrahent;NrRachunkuKontrahenta;Tytul;Kwota;SaldoKoncowe\n"+
			"PL61 1090 1014;2024-01-15;Kontrahent A;PL27 1140 2004;faktura 1/2024;100,50;1100,50\n"+
			"PL61 1090 1014;2024-01-16;Kontrahent B;;faktura 2/2024;-25,00;1075,50\n")

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{
		"NrRachunku", "Data", "Kontrahent", "NrRachunkuKontrahenta", "Tytul", "Kwota", "SaldoKoncowe",
	}))
	// 45306 and 45307 are the serial dates for 2024-01-15 and 2024-01-16.
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{
		"PL61 1090 1014", 45306, "Kontrahent A", "PL27 1140 2004", "faktura 1/2024", 100.5, 1100.5,
	}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{
		"PL61 1090 1014", 45307, "Kontrahent B", "", "faktura 2/2024", -25.0, 1075.5,
	}))
	xlsxPath := filepath.Join(t.TempDir(), "positions.xlsx")
	require.NoError(t, f.SaveAs(xlsxPath))
	require.NoError(t, f.Close())

	xlsxTable, err := tabular.Decode(xlsxPath)
	require.NoError(t, err)

	fromCSV, csvErrs, err := PositionsFromTable(csvTable)
	require.NoError(t, err)
	require.Empty(t, csvErrs)
	fromXLSX, xlsxErrs, err := PositionsFromTable(xlsxTable)
	require.NoError(t, err)
	require.Empty(t, xlsxErrs)

	require.Len(t, fromXLSX, len(fromCSV))
	for i := range fromCSV {
		assert.Equal(t, fromCSV[i].NrRachunku, fromXLSX[i].NrRachunku)
		assert.Equal(t, fromCSV[i].Kontrahent, fromXLSX[i].Kontrahent)
		assert.Equal(t, fromCSV[i].NrRachunkuKontrahenta, fromXLSX[i].NrRachunkuKontrahenta)
		assert.Equal(t, fromCSV[i].Tytul, fromXLSX[i].Tytul)
		assert.True(t, fromCSV[i].Data.Equal(*fromXLSX[i].Data))
		assert.True(t, fromCSV[i].Kwota.Equal(*fromXLSX[i].Kwota))
		assert.True(t, fromCSV[i].SaldoKoncowe.Equal(*fromXLSX[i].SaldoKoncowe))
	}
}
