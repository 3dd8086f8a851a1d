package delivery

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/pdf_convert/internal/intake"
	"github.com/Vovarama1992/pdf_convert/internal/ports"
	"github.com/Vovarama1992/pdf_convert/internal/staging"
)

const serviceName = "pdf_convert"

type convertFunc func(ctx context.Context, job ports.Job) (*ports.Artifact, error)

type ConversionHandler struct {
	svc    ports.ConversionService
	store  staging.Store
	intake *intake.Intake
	log    *logger.ZapLogger
}

func NewConversionHandler(svc ports.ConversionService, store staging.Store, in *intake.Intake, log *logger.ZapLogger) *ConversionHandler {
	return &ConversionHandler{
		svc:    svc,
		store:  store,
		intake: in,
		log:    log,
	}
}

func (h *ConversionHandler) Index(w http.ResponseWriter, _ *http.Request) {
	h.render(w, "index", http.StatusOK, pageView{
		Page: Page{Path: "/", Title: "PDF Convert"},
		Nav:  navPages,
	})
}

func (h *ConversionHandler) PDFToWord(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, pageWord, h.svc.ToWord)
}

func (h *ConversionHandler) MergePDF(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, pageMerge, h.svc.Merge)
}

func (h *ConversionHandler) PDFToJPG(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, pageJPG, h.svc.ToImages)
}

func (h *ConversionHandler) PDFToPowerPoint(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, pagePowerPoint, h.svc.ToPowerPoint)
}

func (h *ConversionHandler) PDFToExcel(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, pageExcel, h.svc.ToExcel)
}

func (h *ConversionHandler) handle(w http.ResponseWriter, r *http.Request, p Page, convert convertFunc) {
	if r.Method != http.MethodPost {
		h.renderForm(w, p, http.StatusOK, "")
		return
	}

	ws, err := h.store.Create()
	if err != nil {
		h.logError("workspace create failed", err)
		h.renderForm(w, p, http.StatusInternalServerError, "Could not prepare the upload, please try again")
		return
	}

	job, err := h.stage(w, r, ws, p.Multiple)
	if err != nil {
		h.discardWorkspace(ws)
		h.log.Log(logger.LogEntry{Level: "warn", Message: "upload rejected: " + p.Path, Error: err, Service: serviceName})
		h.renderForm(w, p, http.StatusBadRequest, intake.UserMessage(err, h.intake.MaxSize()))
		return
	}
	defer h.discardInputs(job)

	artifact, err := convert(r.Context(), job)
	if err != nil {
		h.discardWorkspace(ws)

		var tableErr *ports.TableExtractionError
		if errors.As(err, &tableErr) {
			h.log.Log(logger.LogEntry{Level: "warn", Message: "table extraction failed", Error: err, Service: serviceName})
			h.renderForm(w, p, http.StatusUnprocessableEntity, "Error converting PDF to CSV: "+tableErr.Err.Error())
			return
		}

		h.logError("conversion failed: "+p.Path, err)
		h.renderForm(w, p, http.StatusInternalServerError, "Conversion failed, please check the file and try again")
		return
	}

	h.serveArtifact(w, r, artifact)
}

func (h *ConversionHandler) stage(w http.ResponseWriter, r *http.Request, ws *staging.Workspace, multiple bool) (ports.Job, error) {
	job := ports.Job{Workspace: ws}

	if multiple {
		uploads, err := h.intake.Multiple(w, r, ws)
		if err != nil {
			return job, err
		}
		for _, up := range uploads {
			job.Inputs = append(job.Inputs, up.Path)
		}
		job.OriginalName = uploads[0].Name
		return job, nil
	}

	up, err := h.intake.Single(w, r, ws)
	if err != nil {
		return job, err
	}
	job.Inputs = []string{up.Path}
	job.OriginalName = up.Name
	return job, nil
}

func (h *ConversionHandler) serveArtifact(w http.ResponseWriter, r *http.Request, a *ports.Artifact) {
	setAttachmentHeaders(w, a.Name, a.ContentType)
	w.Header().Set("X-Artifact-URL", DownloadURL(a.WorkspaceID, a.Name))

	if a.Body != nil {
		w.Header().Set("Content-Length", strconv.Itoa(len(a.Body)))
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write(a.Body); err != nil {
			h.logError("write artifact failed", err)
		}
		return
	}

	f, err := os.Open(a.Path)
	if err != nil {
		h.logError("open artifact failed", err)
		http.Error(w, "artifact unavailable", http.StatusInternalServerError)
		return
	}
	defer f.Close()

	http.ServeContent(w, r, a.Name, time.Time{}, f)
}

// discardInputs drops the uploaded PDFs once the response is written;
// artifacts stay until the sweeper expires the workspace.
func (h *ConversionHandler) discardInputs(job ports.Job) {
	for _, in := range job.Inputs {
		if err := os.Remove(in); err != nil && !errors.Is(err, os.ErrNotExist) {
			h.logError("remove input failed", err)
		}
	}
}

func (h *ConversionHandler) discardWorkspace(ws *staging.Workspace) {
	if err := h.store.Remove(ws.ID); err != nil {
		h.logError("remove workspace failed", err)
	}
}

func (h *ConversionHandler) logError(msg string, err error) {
	h.log.Log(logger.LogEntry{Level: "error", Message: msg, Error: err, Service: serviceName})
}

func DownloadURL(workspaceID, name string) string {
	return fmt.Sprintf("/download/%s/%s", workspaceID, name)
}

func setAttachmentHeaders(w http.ResponseWriter, name, contentType string) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
}
