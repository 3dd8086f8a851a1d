// Package slides writes minimal PowerPoint (PPTX) decks: one title and one
// body text box per slide.
package slides

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"unicode/utf8"

	"github.com/klauspost/compress/zip"
)

type Slide struct {
	Title string
	Body  string
}

type slideView struct {
	N     int
	ID    int
	RelID string
	Title string
	Lines []string
}

var (
	tmplContentTypes = template.Must(template.New("ct").Parse(contentTypesTmpl))
	tmplApp          = template.Must(template.New("app").Parse(appPropsTmpl))
	tmplPresentation = template.Must(template.New("pres").Parse(presentationTmpl))
	tmplPresRels     = template.Must(template.New("presRels").Parse(presentationRelsTmpl))
	tmplSlide        = template.Must(template.New("slide").Parse(slideTmpl))
)

// PageSlides builds one slide per page text, titled "Page N".
func PageSlides(texts []string) []Slide {
	out := make([]Slide, len(texts))
	for i, t := range texts {
		out[i] = Slide{Title: fmt.Sprintf("Page %d", i+1), Body: t}
	}
	return out
}

func Write(w io.Writer, slides []Slide) error {
	views := make([]slideView, len(slides))
	for i, s := range slides {
		views[i] = slideView{
			N:     i + 1,
			ID:    256 + i,
			RelID: fmt.Sprintf("rId%d", i+3),
			Title: escape(s.Title),
			Lines: bodyLines(s.Body),
		}
	}

	zw := zip.NewWriter(w)

	static := []struct {
		name, body string
	}{
		{"_rels/.rels", rootRels},
		{"docProps/core.xml", coreProps},
		{"ppt/slideMasters/slideMaster1.xml", slideMaster},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", slideMasterRels},
		{"ppt/slideLayouts/slideLayout1.xml", slideLayout},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", slideLayoutRels},
		{"ppt/theme/theme1.xml", theme},
	}

	if err := writeTmpl(zw, "[Content_Types].xml", tmplContentTypes, views); err != nil {
		return err
	}
	for _, p := range static {
		if err := writePart(zw, p.name, []byte(p.body)); err != nil {
			return err
		}
	}
	if err := writeTmpl(zw, "docProps/app.xml", tmplApp, views); err != nil {
		return err
	}
	if err := writeTmpl(zw, "ppt/presentation.xml", tmplPresentation, views); err != nil {
		return err
	}
	if err := writeTmpl(zw, "ppt/_rels/presentation.xml.rels", tmplPresRels, views); err != nil {
		return err
	}
	for _, v := range views {
		if err := writeTmpl(zw, fmt.Sprintf("ppt/slides/slide%d.xml", v.N), tmplSlide, v); err != nil {
			return err
		}
		if err := writePart(zw, fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", v.N), []byte(slideRels)); err != nil {
			return err
		}
	}

	return zw.Close()
}

func WriteFile(path string, slides []Slide) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, slides); err != nil {
		f.Close()
		return fmt.Errorf("write pptx: %w", err)
	}
	return f.Close()
}

func writeTmpl(zw *zip.Writer, name string, t *template.Template, data any) error {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return writePart(zw, name, buf.Bytes())
}

func writePart(zw *zip.Writer, name string, body []byte) error {
	fw, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	_, err = fw.Write(body)
	return err
}

func bodyLines(body string) []string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	lines := strings.Split(body, "\n")
	for i, l := range lines {
		lines[i] = escape(strings.TrimRight(l, " \t"))
	}
	return lines
}

// escape drops runes XML 1.0 cannot carry (OCR output contains form feeds)
// and escapes the rest.
func escape(s string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r == '\t':
			return ' '
		case r < 0x20, r == 0xFFFE, r == 0xFFFF, r >= 0xD800 && r <= 0xDFFF:
			return -1
		case r == utf8.RuneError:
			return -1
		}
		return r
	}, s)

	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(clean))
	return buf.String()
}
