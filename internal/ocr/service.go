package ocr

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"
)

type Service struct {
	ext   TextExtractor
	limit int
}

func NewService(ext TextExtractor, concurrency int) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{ext: ext, limit: concurrency}
}

// ExtractPages OCRs every image. texts[i] always belongs to images[i].
func (s *Service) ExtractPages(ctx context.Context, images [][]byte) ([]string, error) {
	texts := make([]string, len(images))

	eg, gctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.limit)
	for i, img := range images {
		eg.Go(func() error {
			text, err := s.ext.ExtractText(gctx, img)
			if err != nil {
				return fmt.Errorf("%s page %d: %w", s.ext.Name(), i+1, err)
			}
			texts[i] = strings.TrimSpace(text)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return texts, nil
}

func (s *Service) Engine() string { return s.ext.Name() }
