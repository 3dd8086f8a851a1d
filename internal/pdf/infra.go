package pdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gen2brain/go-fitz"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

const jpegQuality = 75

// ---------------------------------------------------------------------------
// MuPDF
// ---------------------------------------------------------------------------

type FitzRasterizer struct {
	dpi float64
}

// NewFitzRasterizer renders with go-fitz. dpi <= 0 keeps the library default.
func NewFitzRasterizer(dpi float64) *FitzRasterizer {
	return &FitzRasterizer{dpi: dpi}
}

func (r *FitzRasterizer) Name() string { return "fitz" }

func (r *FitzRasterizer) Rasterize(ctx context.Context, path string) ([]PDFPage, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	defer doc.Close()

	n := doc.NumPage()
	pages := make([]PDFPage, 0, n)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var img image.Image
		if r.dpi > 0 {
			img, err = doc.ImageDPI(i, r.dpi)
		} else {
			img, err = doc.Image(i)
		}
		if err != nil {
			return nil, fmt.Errorf("render page %d: %w", i+1, err)
		}

		b, err := EncodeJPEG(img)
		if err != nil {
			return nil, fmt.Errorf("encode page %d: %w", i+1, err)
		}
		pages = append(pages, PDFPage{
			Number:   i + 1,
			Bytes:    b,
			FileName: pageName(i + 1),
			MimeType: "image/jpeg",
		})
	}

	log.Printf("[pdf.fitz] rendered %d pages from %s", len(pages), filepath.Base(path))
	return pages, nil
}

func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ---------------------------------------------------------------------------
// Poppler
// ---------------------------------------------------------------------------

type PopplerPDFConverter struct {
	bin string
	dpi float64
}

func NewPopplerPDFConverter(dpi float64) *PopplerPDFConverter {
	return &PopplerPDFConverter{bin: "pdftoppm", dpi: dpi}
}

func (c *PopplerPDFConverter) Name() string { return "poppler" }

func (c *PopplerPDFConverter) Rasterize(ctx context.Context, path string) ([]PDFPage, error) {
	tmpDir, err := os.MkdirTemp(filepath.Dir(path), "pdftoppm-*")
	if err != nil {
		return nil, err
	}
	defer os.RemoveAll(tmpDir)

	outBase := filepath.Join(tmpDir, "page")

	args := []string{"-jpeg"}
	if c.dpi > 0 {
		args = append(args, "-r", strconv.FormatFloat(c.dpi, 'f', -1, 64))
	}
	args = append(args, path, outBase)

	cmd := exec.CommandContext(ctx, c.bin, args...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("pdftoppm: %w, output: %s", err, string(out))
	}

	// pdftoppm zero-pads the page suffix once the document has 10+ pages
	files, err := filepath.Glob(outBase + "-*.jpg")
	if err != nil {
		return nil, err
	}
	numbered, err := sortByPageSuffix(files, outBase+"-")
	if err != nil {
		return nil, err
	}

	pages := make([]PDFPage, 0, len(numbered))
	for i, fn := range numbered {
		b, err := os.ReadFile(fn)
		if err != nil {
			return nil, err
		}
		pages = append(pages, PDFPage{
			Number:   i + 1,
			Bytes:    b,
			FileName: pageName(i + 1),
			MimeType: "image/jpeg",
		})
	}

	log.Printf("[pdf.poppler] rendered %d pages from %s", len(pages), filepath.Base(path))
	return pages, nil
}

func sortByPageSuffix(files []string, prefix string) ([]string, error) {
	type numbered struct {
		n    int
		path string
	}
	list := make([]numbered, 0, len(files))
	for _, f := range files {
		s := strings.TrimSuffix(strings.TrimPrefix(f, prefix), ".jpg")
		n, err := strconv.Atoi(s)
		if err != nil {
			return nil, fmt.Errorf("unexpected pdftoppm output %q", filepath.Base(f))
		}
		list = append(list, numbered{n: n, path: f})
	}
	sort.Slice(list, func(i, j int) bool { return list[i].n < list[j].n })

	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.path
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// pdfcpu
// ---------------------------------------------------------------------------

type PdfcpuMerger struct {
	conf *model.Configuration
}

func NewPdfcpuMerger() *PdfcpuMerger {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &PdfcpuMerger{conf: conf}
}

func (m *PdfcpuMerger) Merge(ctx context.Context, inputs []string, output string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := api.MergeCreateFile(inputs, output, false, m.conf); err != nil {
		return fmt.Errorf("pdfcpu merge: %w", err)
	}
	pages, err := m.PageCount(output)
	if err != nil {
		return err
	}
	log.Printf("[pdf.pdfcpu] merged %d files into %s (%d pages)", len(inputs), filepath.Base(output), pages)
	return nil
}

func (m *PdfcpuMerger) PageCount(path string) (int, error) {
	n, err := api.PageCountFile(path)
	if err != nil {
		return 0, fmt.Errorf("pdfcpu page count: %w", err)
	}
	return n, nil
}
