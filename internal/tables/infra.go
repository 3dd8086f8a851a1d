package tables

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/ledongthuc/pdf"
)

const (
	// columnGap is the horizontal whitespace, in points, that separates two cells.
	columnGap = 12.0
	// wordGapRatio of the font size separates two words inside one cell.
	wordGapRatio = 0.2
	minColumns   = 2
	minRows      = 2
)

// TextLayerExtractor finds tables in the PDF text layer: runs of consecutive
// lines that split into at least two whitespace-separated columns.
type TextLayerExtractor struct{}

func NewTextLayerExtractor() *TextLayerExtractor {
	return &TextLayerExtractor{}
}

func (e *TextLayerExtractor) Name() string { return "textlayer" }

func (e *TextLayerExtractor) ExtractTables(ctx context.Context, path string) (tables []Table, err error) {
	// the parser panics on some malformed documents
	defer func() {
		if r := recover(); r != nil {
			tables, err = nil, fmt.Errorf("parse %s: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer f.Close()

	for i := 1; i <= r.NumPage(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		rows, err := p.GetTextByRow()
		if err != nil {
			return nil, fmt.Errorf("page %d: %w", i, err)
		}
		tables = append(tables, tablesFromRows(rowCells(rows))...)
	}

	log.Printf("[tables.textlayer] %d tables in %d pages", len(tables), r.NumPage())
	return tables, nil
}

func rowCells(rows pdf.Rows) [][]string {
	sorted := make(pdf.Rows, len(rows))
	copy(sorted, rows)
	// PDF y grows upwards
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Position > sorted[j].Position })

	out := make([][]string, 0, len(sorted))
	for _, row := range sorted {
		out = append(out, cellsFromTexts(row.Content))
	}
	return out
}

func cellsFromTexts(texts []pdf.Text) []string {
	items := make([]pdf.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) != "" {
			items = append(items, t)
		}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].X < items[j].X })

	var (
		cells []string
		cur   strings.Builder
		end   float64
	)
	for i, t := range items {
		if i > 0 {
			gap := t.X - end
			switch {
			case gap > columnGap:
				cells = append(cells, strings.TrimSpace(cur.String()))
				cur.Reset()
			case gap > t.FontSize*wordGapRatio:
				cur.WriteByte(' ')
			}
		}
		cur.WriteString(t.S)
		if e := t.X + t.W; e > end || i == 0 {
			end = e
		}
	}
	if cur.Len() > 0 {
		cells = append(cells, strings.TrimSpace(cur.String()))
	}
	return cells
}

// tablesFromRows groups consecutive multi-column rows into tables.
func tablesFromRows(rows [][]string) []Table {
	var (
		tables []Table
		cur    Table
	)
	flush := func() {
		if len(cur) >= minRows {
			tables = append(tables, cur)
		}
		cur = nil
	}
	for _, r := range rows {
		if len(r) >= minColumns {
			cur = append(cur, r)
			continue
		}
		flush()
	}
	flush()
	return tables
}
