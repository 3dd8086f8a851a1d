package tables

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
)

type Service struct {
	ext Extractor
}

func NewService(ext Extractor) *Service {
	return &Service{ext: ext}
}

func (s *Service) Engine() string { return s.ext.Name() }

// ToCSV extracts every table from every page and writes them, one after
// another, to csvPath. It returns the number of rows written.
func (s *Service) ToCSV(ctx context.Context, input, csvPath string) (int, error) {
	tables, err := s.ext.ExtractTables(ctx, input)
	if err != nil {
		return 0, err
	}
	if len(tables) == 0 {
		return 0, ErrNoTables
	}

	f, err := os.Create(csvPath)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	rows := 0
	for _, t := range tables {
		for _, row := range t {
			if err := w.Write(row); err != nil {
				return rows, fmt.Errorf("write csv: %w", err)
			}
			rows++
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return rows, fmt.Errorf("write csv: %w", err)
	}
	return rows, f.Close()
}

func ReadCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return records, nil
}
