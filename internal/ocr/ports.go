package ocr

import "context"

// TextExtractor runs OCR over one encoded page image.
type TextExtractor interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
	Name() string
}
