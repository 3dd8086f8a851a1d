package delivery

import (
	"net/http"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

func RegisterRoutes(
	r chi.Router,
	hConv *ConversionHandler,
	hDl *DownloadHandler,
	ratePerMinute int,
) {
	r.With(httputil.RecoverMiddleware).Get("/", hConv.Index)
	r.With(httputil.RecoverMiddleware).Get("/healthz", hDl.Health)
	r.With(httputil.RecoverMiddleware).Get("/download/{id}/{name}", hDl.Download)

	// --- конвертация ---
	r.Group(func(cr chi.Router) {
		cr.Use(httputil.RecoverMiddleware)
		if ratePerMinute > 0 {
			cr.Use(httprate.Limit(ratePerMinute, time.Minute,
				httprate.WithKeyFuncs(httprate.KeyByIP),
				httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
					http.Error(w, "Too many conversions, please wait a minute", http.StatusTooManyRequests)
				}),
			))
		}

		cr.Get("/pdf_to_word", hConv.PDFToWord)
		cr.Post("/pdf_to_word", hConv.PDFToWord)
		cr.Get("/merge_pdf", hConv.MergePDF)
		cr.Post("/merge_pdf", hConv.MergePDF)
		cr.Get("/pdf_to_jpg", hConv.PDFToJPG)
		cr.Post("/pdf_to_jpg", hConv.PDFToJPG)
		cr.Get("/pdf_to_powerpoint", hConv.PDFToPowerPoint)
		cr.Post("/pdf_to_powerpoint", hConv.PDFToPowerPoint)
		cr.Get("/pdf_to_excel", hConv.PDFToExcel)
		cr.Post("/pdf_to_excel", hConv.PDFToExcel)
	})
}
