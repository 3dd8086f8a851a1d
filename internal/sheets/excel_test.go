package sheets

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteStyled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.xlsx")
	records := [][]string{
		{"Item", "Qty", "Price"},
		{"Bolt", "10", "0.50"},
		{"Nut", "4"},
	}
	require.NoError(t, WriteStyled(path, records))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetName}, f.GetSheetList())

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Item", "Qty", "Price"}, rows[0])
	assert.Equal(t, "Bolt", rows[1][0])
	assert.Equal(t, "10", rows[1][1])

	styleOf := func(cell string) int {
		id, err := f.GetCellStyle(SheetName, cell)
		require.NoError(t, err)
		return id
	}

	header := styleOf("A1")
	assert.Equal(t, header, styleOf("B1"))
	assert.Equal(t, header, styleOf("C1"))
	assert.Equal(t, styleOf("B2"), styleOf("B3"))
	assert.Equal(t, styleOf("A2"), styleOf("C2"))
	assert.Equal(t, styleOf("A2"), styleOf("C3"), "padded cell still styled")
	assert.NotEqual(t, styleOf("A2"), styleOf("B2"))
	assert.NotEqual(t, header, styleOf("A2"))

	hs, err := f.GetStyle(header)
	require.NoError(t, err)
	require.NotNil(t, hs.Font)
	assert.True(t, hs.Font.Bold)
	require.NotEmpty(t, hs.Fill.Color)
	assert.Contains(t, strings.ToUpper(hs.Fill.Color[0]), HeaderFill)
	require.NotNil(t, hs.Alignment)
	assert.Equal(t, "center", hs.Alignment.Horizontal)

	ss, err := f.GetStyle(styleOf("B2"))
	require.NoError(t, err)
	require.NotEmpty(t, ss.Fill.Color)
	assert.Contains(t, strings.ToUpper(ss.Fill.Color[0]), StripeFill)
	require.NotNil(t, ss.Font)
	assert.Equal(t, "Arial", ss.Font.Family)
}

func TestCellValue(t *testing.T) {
	assert.Equal(t, "10", cellValue("10", true))
	assert.Equal(t, 10.0, cellValue(" 10 ", false))
	assert.Equal(t, "10 kg", cellValue("10 kg", false))
	assert.Equal(t, "", cellValue("  ", false))
	assert.Equal(t, "Inf", cellValue("Inf", false))
	assert.Equal(t, "infinity", cellValue("infinity", false))
	assert.Equal(t, "NaN", cellValue("NaN", false))
}

func TestWriteStyled_NonFiniteWordsStayText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.xlsx")
	require.NoError(t, WriteStyled(path, [][]string{
		{"Inf", "NaN"},
		{"infinity", "42"},
		{"-Inf", "nan"},
	}))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Inf", "NaN"}, {"infinity", "42"}, {"-Inf", "nan"}}, rows)
}
