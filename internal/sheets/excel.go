// Package sheets writes extracted table rows into a styled XLSX workbook.
package sheets

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	SheetName = "Data"

	HeaderFill = "FFC000"
	StripeFill = "E6E6E6"
)

type styles struct {
	header  int
	body    int
	striped int
}

// WriteStyled writes records to path. Row 1 is the header (bold, FFC000
// fill). Body cells in even columns get an E6E6E6 fill. Every cell is
// centred, in Arial 10.
func WriteStyled(path string, records [][]string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	st, err := newStyles(f)
	if err != nil {
		return err
	}

	width := 0
	for _, r := range records {
		if len(r) > width {
			width = len(r)
		}
	}

	for r := range records {
		for c := 0; c < width; c++ {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if c < len(records[r]) {
				if err := f.SetCellValue(SheetName, cell, cellValue(records[r][c], r == 0)); err != nil {
					return fmt.Errorf("set %s: %w", cell, err)
				}
			}
			if err := f.SetCellStyle(SheetName, cell, cell, st.pick(r+1, c+1)); err != nil {
				return fmt.Errorf("style %s: %w", cell, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save xlsx: %w", err)
	}
	return nil
}

func newStyles(f *excelize.File) (styles, error) {
	center := &excelize.Alignment{Horizontal: "center", Vertical: "center"}

	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Family: "Arial", Size: 10},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{HeaderFill}},
		Alignment: center,
	})
	if err != nil {
		return styles{}, fmt.Errorf("header style: %w", err)
	}
	body, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Arial", Size: 10},
		Alignment: center,
	})
	if err != nil {
		return styles{}, fmt.Errorf("body style: %w", err)
	}
	striped, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Family: "Arial", Size: 10},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{StripeFill}},
		Alignment: center,
	})
	if err != nil {
		return styles{}, fmt.Errorf("striped style: %w", err)
	}
	return styles{header: header, body: body, striped: striped}, nil
}

// pick takes 1-based row and column.
func (s styles) pick(row, col int) int {
	switch {
	case row == 1:
		return s.header
	case col%2 == 0:
		return s.striped
	default:
		return s.body
	}
}

// cellValue stores numeric body cells as numbers.
func cellValue(raw string, header bool) any {
	v := strings.TrimSpace(raw)
	if header || v == "" {
		return v
	}
	// ParseFloat also accepts "Inf" and "NaN"; those stay text.
	if n, err := strconv.ParseFloat(v, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		return n
	}
	return v
}
