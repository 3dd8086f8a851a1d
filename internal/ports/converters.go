package ports

import (
	"context"

	"github.com/Vovarama1992/pdf_convert/internal/pdf"
)

type PageRenderer interface {
	Convert(ctx context.Context, path string) ([]pdf.PDFPage, error)
}

type PDFMerger interface {
	Merge(ctx context.Context, inputs []string, output string) error
}

type WordConverter interface {
	Convert(ctx context.Context, input, output string) error
}

type PageReader interface {
	ExtractPages(ctx context.Context, images [][]byte) ([]string, error)
}

type TableWriter interface {
	ToCSV(ctx context.Context, input, csvPath string) (int, error)
}
