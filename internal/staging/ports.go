package staging

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"
)

var (
	ErrNotFound    = errors.New("staging: not found")
	// ErrInvalidName is a not-found for names that could never be an artifact.
	ErrInvalidName = fmt.Errorf("%w: invalid name", ErrNotFound)
)

// Workspace is a per-request directory named by an opaque ID.
type Workspace struct {
	ID  string
	Dir string
}

func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

type Store interface {
	Create() (*Workspace, error)
	// Resolve maps (id, name) to a file inside the workspace, or ErrNotFound.
	Resolve(id, name string) (string, error)
	Remove(id string) error
	Sweep(now time.Time, ttl time.Duration) (int, error)
}
