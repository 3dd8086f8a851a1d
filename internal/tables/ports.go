package tables

import (
	"context"
	"errors"
)

var ErrNoTables = errors.New("no tables found")

// Table is a list of rows; rows may be ragged.
type Table [][]string

type Extractor interface {
	ExtractTables(ctx context.Context, path string) ([]Table, error)
	Name() string
}
