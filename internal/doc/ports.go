package doc

import "context"

// WordConverter turns a whole PDF (every page) into a DOCX file at output.
type WordConverter interface {
	ConvertToWord(ctx context.Context, input, output string) error
	Name() string
}
