package pdf

import (
	"context"
	"fmt"
)

type PDFService struct {
	raster Rasterizer
	merger Merger
}

func NewPDFService(r Rasterizer, m Merger) *PDFService {
	return &PDFService{raster: r, merger: m}
}

func (s *PDFService) Convert(ctx context.Context, path string) ([]PDFPage, error) {
	pages, err := s.raster.Rasterize(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.raster.Name(), err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("%s: no pages generated", s.raster.Name())
	}
	return pages, nil
}

func (s *PDFService) Merge(ctx context.Context, inputs []string, output string) error {
	if len(inputs) == 0 {
		return fmt.Errorf("merge: no inputs")
	}
	return s.merger.Merge(ctx, inputs, output)
}

func (s *PDFService) Engine() string { return s.raster.Name() }

func pageName(n int) string {
	return fmt.Sprintf("page_%d.jpg", n)
}
