package pdf

import "context"

type PDFPage struct {
	Number   int
	Bytes    []byte
	FileName string
	MimeType string
}

// Rasterizer renders every page of a PDF to a JPEG, in page order.
type Rasterizer interface {
	Rasterize(ctx context.Context, path string) ([]PDFPage, error)
	Name() string
}

type Merger interface {
	Merge(ctx context.Context, inputs []string, output string) error
}
