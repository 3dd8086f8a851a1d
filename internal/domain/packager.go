package domain

import (
	"bytes"
	"fmt"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/Vovarama1992/pdf_convert/internal/pdf"
)

const ArchiveName = "converted_images.zip"

// PackImages zips rendered pages as page_<n>.jpg. JPEG data is stored,
// not deflated.
func PackImages(pages []pdf.PDFPage) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	now := time.Now()

	for i, p := range pages {
		name := p.FileName
		if name == "" {
			name = fmt.Sprintf("page_%d.jpg", i+1)
		}
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Store,
			Modified: now,
		})
		if err != nil {
			return nil, fmt.Errorf("zip entry %s: %w", name, err)
		}
		if _, err := fw.Write(p.Bytes); err != nil {
			return nil, fmt.Errorf("zip write %s: %w", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("zip close: %w", err)
	}
	return buf.Bytes(), nil
}
