package delivery

import (
	"errors"
	"mime"
	"net/http"
	"os"
	"path/filepath"

	"github.com/Vovarama1992/go-utils/logger"
	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/Vovarama1992/pdf_convert/internal/staging"
)

type DownloadHandler struct {
	store   staging.Store
	engines map[string]string
	log     *logger.ZapLogger
}

// NewDownloadHandler serves stored artifacts; engines is reported by Health.
func NewDownloadHandler(store staging.Store, engines map[string]string, log *logger.ZapLogger) *DownloadHandler {
	return &DownloadHandler{store: store, engines: engines, log: log}
}

func (h *DownloadHandler) Download(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	name := chi.URLParam(r, "name")

	path, err := h.store.Resolve(id, name)
	if err != nil {
		switch {
		case errors.Is(err, staging.ErrInvalidName):
			h.log.Log(logger.LogEntry{Level: "warn", Message: "download name rejected: " + name, Error: err, Service: serviceName})
		case !errors.Is(err, staging.ErrNotFound):
			h.log.Log(logger.LogEntry{Level: "error", Message: "resolve artifact failed", Error: err, Service: serviceName})
		}
		http.NotFound(w, r)
		return
	}

	f, err := os.Open(path)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		http.NotFound(w, r)
		return
	}

	setAttachmentHeaders(w, name, mime.TypeByExtension(filepath.Ext(name)))
	http.ServeContent(w, r, name, info.ModTime(), f)
}

func (h *DownloadHandler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"status":  "ok",
		"engines": h.engines,
	})
}
