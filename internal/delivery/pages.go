package delivery

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/dustin/go-humanize"
)

//go:embed templates/*.html
var templateFS embed.FS

var tmpl = template.Must(template.ParseFS(templateFS, "templates/*.html"))

type Page struct {
	Path     string
	Title    string
	Hint     string
	Multiple bool
}

var (
	pageWord       = Page{Path: "/pdf_to_word", Title: "PDF to Word", Hint: "Convert a PDF document into an editable .docx file."}
	pageMerge      = Page{Path: "/merge_pdf", Title: "Merge PDF", Hint: "Combine several PDFs into one, in upload order.", Multiple: true}
	pageJPG        = Page{Path: "/pdf_to_jpg", Title: "PDF to JPG", Hint: "Render every page as a JPEG image, packed into a zip."}
	pagePowerPoint = Page{Path: "/pdf_to_powerpoint", Title: "PDF to PowerPoint", Hint: "Build one slide per page from the recognised page text."}
	pageExcel      = Page{Path: "/pdf_to_excel", Title: "PDF to Excel", Hint: "Extract the tables of a PDF into a styled spreadsheet."}

	navPages = []Page{pageWord, pageMerge, pageJPG, pagePowerPoint, pageExcel}
)

type pageView struct {
	Page
	Nav     []Page
	Error   string
	MaxSize string
}

func (h *ConversionHandler) renderForm(w http.ResponseWriter, p Page, status int, errMsg string) {
	h.render(w, "form", status, pageView{
		Page:    p,
		Nav:     navPages,
		Error:   errMsg,
		MaxSize: humanize.Bytes(uint64(h.intake.MaxSize())),
	})
}

func (h *ConversionHandler) render(w http.ResponseWriter, name string, status int, v pageView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, name, v); err != nil {
		h.logError("template render failed", err)
	}
}
