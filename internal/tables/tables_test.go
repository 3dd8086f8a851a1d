package tables

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Vovarama1992/pdf_convert/internal/pdf/pdftest"
)

// word lays out s as one glyph run starting at x.
func word(x float64, s string) pdf.Text {
	return pdf.Text{X: x, W: 5 * float64(len(s)), FontSize: 10, S: s}
}

func TestCellsFromTexts(t *testing.T) {
	texts := []pdf.Text{
		word(200, "42"),
		word(10, "Widget"),
		word(43, "Pro"),
		{X: 100, W: 0, FontSize: 10, S: "  "},
		word(120, "EUR"),
	}
	assert.Equal(t, []string{"Widget Pro", "EUR", "42"}, cellsFromTexts(texts))
}

func TestCellsFromTexts_GlyphsJoinWithoutSpaces(t *testing.T) {
	texts := []pdf.Text{
		{X: 10, W: 5, FontSize: 10, S: "T"},
		{X: 15, W: 5, FontSize: 10, S: "o"},
		{X: 20, W: 5, FontSize: 10, S: "t"},
	}
	assert.Equal(t, []string{"Tot"}, cellsFromTexts(texts))
}

func TestTablesFromRows(t *testing.T) {
	rows := [][]string{
		{"Quarterly report"},
		{"Item", "Qty", "Price"},
		{"Bolt", "10", "0.50"},
		{"Nut", "4"},
		{},
		{"single", "row"},
		{"Footer"},
		{"A", "B"},
		{"1", "2"},
	}

	got := tablesFromRows(rows)
	require.Len(t, got, 2)
	assert.Equal(t, Table{{"Item", "Qty", "Price"}, {"Bolt", "10", "0.50"}, {"Nut", "4"}}, got[0])
	assert.Equal(t, Table{{"A", "B"}, {"1", "2"}}, got[1])
}

func TestRowCells_TopToBottom(t *testing.T) {
	rows := pdf.Rows{
		{Position: 100, Content: pdf.TextHorizontal{word(10, "low"), word(100, "row")}},
		{Position: 700, Content: pdf.TextHorizontal{word(10, "top"), word(100, "row")}},
	}
	assert.Equal(t, [][]string{{"top", "row"}, {"low", "row"}}, rowCells(rows))
}

type stubExtractor struct {
	tables []Table
	err    error
}

func (s stubExtractor) Name() string { return "stub" }
func (s stubExtractor) ExtractTables(context.Context, string) ([]Table, error) {
	return s.tables, s.err
}

func TestService_ToCSVRoundTrip(t *testing.T) {
	dir := t.TempDir()
	csvPath := filepath.Join(dir, "report.csv")

	svc := NewService(stubExtractor{tables: []Table{
		{{"Item", "Qty"}, {"Bolt, M4", "10"}},
		{{"Total", "10", "EUR"}},
	}})
	n, err := svc.ToCSV(context.Background(), "in.pdf", csvPath)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	records, err := ReadCSV(csvPath)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Item", "Qty"}, {"Bolt, M4", "10"}, {"Total", "10", "EUR"}}, records)
}

func TestService_ToCSVErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := NewService(stubExtractor{}).ToCSV(context.Background(), "in.pdf", filepath.Join(dir, "a.csv"))
	assert.ErrorIs(t, err, ErrNoTables)
	assert.NoFileExists(t, filepath.Join(dir, "a.csv"))

	boom := errors.New("boom")
	_, err = NewService(stubExtractor{err: boom}).ToCSV(context.Background(), "in.pdf", filepath.Join(dir, "b.csv"))
	assert.ErrorIs(t, err, boom)
}

func TestTextLayerExtractor_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4 garbage"), 0o644))

	_, err := NewTextLayerExtractor().ExtractTables(context.Background(), path)
	assert.Error(t, err)
}

func TestService_ImageOnlyPDFHasNoTables(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "scan.pdf")
	pdftest.WritePDF(t, in, 2)

	_, err := NewService(NewTextLayerExtractor()).ToCSV(context.Background(), in, filepath.Join(dir, "scan.csv"))
	assert.ErrorIs(t, err, ErrNoTables)
	assert.NoFileExists(t, filepath.Join(dir, "scan.csv"))
}
