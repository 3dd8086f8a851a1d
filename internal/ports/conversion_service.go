package ports

import (
	"context"

	"github.com/Vovarama1992/pdf_convert/internal/staging"
)

type Target string

const (
	TargetWord       Target = "docx"
	TargetImages     Target = "jpg"
	TargetPowerPoint Target = "pptx"
	TargetExcel      Target = "xlsx"
	TargetMerge      Target = "pdf"
)

// Job is one conversion request: staged inputs plus the workspace that
// receives the output.
type Job struct {
	Workspace    *staging.Workspace
	Inputs       []string
	OriginalName string
}

type Artifact struct {
	WorkspaceID string
	Name        string
	ContentType string
	Path        string
	Size        int64
	// Body holds in-memory archives; nil means stream from Path.
	Body []byte
}

type ConversionService interface {
	ToWord(ctx context.Context, job Job) (*Artifact, error)
	ToImages(ctx context.Context, job Job) (*Artifact, error)
	ToPowerPoint(ctx context.Context, job Job) (*Artifact, error)
	ToExcel(ctx context.Context, job Job) (*Artifact, error)
	Merge(ctx context.Context, job Job) (*Artifact, error)
}

// TableExtractionError marks a failure in the PDF-to-CSV step, the one
// failure the forms report verbatim.
type TableExtractionError struct {
	Err error
}

func (e *TableExtractionError) Error() string { return "table extraction: " + e.Err.Error() }
func (e *TableExtractionError) Unwrap() error { return e.Err }
