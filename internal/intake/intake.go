// Package intake validates multipart PDF uploads and writes them into a
// staging workspace.
package intake

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/Vovarama1992/pdf_convert/internal/staging"
)

var (
	ErrNoFilePart     = errors.New("no file part")
	ErrNoSelectedFile = errors.New("no selected file")
	ErrNoFilesToMerge = errors.New("no files to merge")
	ErrNoValidPDFs    = errors.New("no valid pdf files")
	ErrNotAllowed     = errors.New("extension not allowed")
	ErrNotPDF         = errors.New("content is not pdf")
	ErrTooLarge       = errors.New("upload too large")
)

const (
	FieldSingle = "file"
	FieldMulti  = "file[]"

	sniffLen   = 1024
	memoryPart = 32 << 20
)

var pdfMagic = []byte("%PDF-")

type Upload struct {
	// Name is the client-supplied filename. Display only.
	Name string
	Path string
	Size int64
}

type Intake struct {
	maxSize int64
}

func New(maxSize int64) *Intake {
	return &Intake{maxSize: maxSize}
}

func (in *Intake) MaxSize() int64 { return in.maxSize }

// Single reads the "file" field and stores it as input-1.pdf.
func (in *Intake) Single(w http.ResponseWriter, r *http.Request, ws *staging.Workspace) (*Upload, error) {
	form, err := in.parse(w, r)
	if err != nil {
		return nil, err
	}

	headers := form.File[FieldSingle]
	if len(headers) == 0 {
		if _, ok := form.Value[FieldSingle]; ok {
			return nil, ErrNoSelectedFile
		}
		return nil, ErrNoFilePart
	}

	h := headers[0]
	if h.Filename == "" {
		return nil, ErrNoSelectedFile
	}
	if !AllowedFile(h.Filename) {
		return nil, ErrNotAllowed
	}

	up, err := save(h, ws.Path("input-1.pdf"))
	if err != nil {
		return nil, err
	}
	return up, nil
}

// Multiple reads "file[]" (falling back to "file") and stores every PDF part
// in upload order. Parts with a non-PDF extension are skipped.
func (in *Intake) Multiple(w http.ResponseWriter, r *http.Request, ws *staging.Workspace) ([]Upload, error) {
	form, err := in.parse(w, r)
	if err != nil {
		return nil, err
	}

	field := FieldMulti
	headers := form.File[FieldMulti]
	if len(headers) == 0 && len(form.File[FieldSingle]) > 0 {
		field = FieldSingle
		headers = form.File[FieldSingle]
	}

	if _, ok := form.Value[field]; ok {
		return nil, ErrNoFilesToMerge
	}

	var uploads []Upload
	for _, h := range headers {
		if h.Filename == "" {
			return nil, ErrNoFilesToMerge
		}
		if !AllowedFile(h.Filename) {
			continue
		}
		up, err := save(h, ws.Path(fmt.Sprintf("input-%d.pdf", len(uploads)+1)))
		if err != nil {
			return nil, err
		}
		uploads = append(uploads, *up)
	}

	if len(uploads) == 0 {
		return nil, ErrNoValidPDFs
	}
	return uploads, nil
}

func (in *Intake) parse(w http.ResponseWriter, r *http.Request) (*multipart.Form, error) {
	if in.maxSize > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, in.maxSize)
	}
	if err := r.ParseMultipartForm(memoryPart); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return nil, ErrTooLarge
		}
		return nil, fmt.Errorf("%w: %v", ErrNoFilePart, err)
	}
	return r.MultipartForm, nil
}

func save(h *multipart.FileHeader, dst string) (*Upload, error) {
	src, err := h.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	if !bytes.Contains(head, pdfMagic) {
		return nil, ErrNotPDF
	}

	out, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("create staged file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, io.MultiReader(bytes.NewReader(head), src))
	if err != nil {
		return nil, fmt.Errorf("write staged file: %w", err)
	}

	return &Upload{Name: h.Filename, Path: dst, Size: written}, nil
}

func AllowedFile(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".pdf")
}

// UserMessage renders an intake error the way the forms display it.
func UserMessage(err error, maxSize int64) string {
	switch {
	case errors.Is(err, ErrNoFilePart):
		return "No file part"
	case errors.Is(err, ErrNoSelectedFile):
		return "No selected file"
	case errors.Is(err, ErrNoFilesToMerge):
		return "Please select files to merge"
	case errors.Is(err, ErrNoValidPDFs):
		return "No valid PDF files selected"
	case errors.Is(err, ErrNotAllowed):
		return "Only PDF files are allowed"
	case errors.Is(err, ErrNotPDF):
		return "File is not a valid PDF"
	case errors.Is(err, ErrTooLarge):
		return fmt.Sprintf("Upload exceeds %s limit", humanize.Bytes(uint64(maxSize)))
	default:
		return "Failed to read upload"
	}
}
