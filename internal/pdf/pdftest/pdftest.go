// Package pdftest builds small real PDFs for tests.
package pdftest

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// ShadeStep is the red channel step between pages: page i is painted with
// red = i*ShadeStep.
const ShadeStep = 20

// WritePDF writes a PDF with the given number of pages to path. Each page
// holds one small image whose colour encodes the page number.
func WritePDF(t testing.TB, path string, pages int) {
	t.Helper()

	dir := t.TempDir()
	imgs := make([]string, 0, pages)
	for i := 1; i <= pages; i++ {
		p := filepath.Join(dir, fmt.Sprintf("img-%d.png", i))
		writePNG(t, p, uint8(i*ShadeStep))
		imgs = append(imgs, p)
	}

	conf := model.NewDefaultConfiguration()
	if err := api.ImportImagesFile(imgs, path, pdfcpu.DefaultImportConfig(), conf); err != nil {
		t.Fatalf("build pdf: %v", err)
	}
}

func writePNG(t testing.TB, path string, shade uint8) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.Set(x, y, color.RGBA{shade, 128, 255 - shade, 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create png: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
}
