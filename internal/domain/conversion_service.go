package domain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Vovarama1992/pdf_convert/internal/error_notificator"
	"github.com/Vovarama1992/pdf_convert/internal/ports"
	"github.com/Vovarama1992/pdf_convert/internal/sheets"
	"github.com/Vovarama1992/pdf_convert/internal/slides"
	"github.com/Vovarama1992/pdf_convert/internal/staging"
	"github.com/Vovarama1992/pdf_convert/internal/tables"
)

const MergedName = "merged_file.pdf"

const (
	ctDocx = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	ctPptx = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
	ctXlsx = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ctZip  = "application/zip"
	ctPDF  = "application/pdf"
)

var ErrEmptyJob = errors.New("job has no inputs")

// ConversionDeps wires the engines behind each conversion. Mirror and
// Notifier are optional.
type ConversionDeps struct {
	Pages    ports.PageRenderer
	Merger   ports.PDFMerger
	Word     ports.WordConverter
	OCR      ports.PageReader
	Tables   ports.TableWriter
	Mirror   ports.ArtifactMirror
	Notifier error_notificator.Notificator
	Logger   *zap.Logger
}

type conversionService struct {
	ConversionDeps
}

func NewConversionService(deps ConversionDeps) ports.ConversionService {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &conversionService{ConversionDeps: deps}
}

func (s *conversionService) ToWord(ctx context.Context, job ports.Job) (*ports.Artifact, error) {
	if err := checkJob(job); err != nil {
		return nil, err
	}
	name := staging.SafeName(job.OriginalName, ".docx")

	if err := s.Word.Convert(ctx, job.Inputs[0], job.Workspace.Path(name)); err != nil {
		return nil, s.fail(ctx, ports.TargetWord, job, err)
	}
	return s.finish(ctx, job, name, ctDocx, nil)
}

func (s *conversionService) ToImages(ctx context.Context, job ports.Job) (*ports.Artifact, error) {
	if err := checkJob(job); err != nil {
		return nil, err
	}

	pages, err := s.Pages.Convert(ctx, job.Inputs[0])
	if err != nil {
		return nil, s.fail(ctx, ports.TargetImages, job, err)
	}
	archive, err := PackImages(pages)
	if err != nil {
		return nil, s.fail(ctx, ports.TargetImages, job, err)
	}
	if err := os.WriteFile(job.Workspace.Path(ArchiveName), archive, 0o644); err != nil {
		return nil, s.fail(ctx, ports.TargetImages, job, err)
	}

	s.Logger.Info("pages rasterized",
		zap.String("workspace", job.Workspace.ID),
		zap.Int("pages", len(pages)),
	)
	return s.finish(ctx, job, ArchiveName, ctZip, archive)
}

func (s *conversionService) ToPowerPoint(ctx context.Context, job ports.Job) (*ports.Artifact, error) {
	if err := checkJob(job); err != nil {
		return nil, err
	}
	name := staging.SafeName(job.OriginalName, ".pptx")

	pages, err := s.Pages.Convert(ctx, job.Inputs[0])
	if err != nil {
		return nil, s.fail(ctx, ports.TargetPowerPoint, job, err)
	}
	images := make([][]byte, len(pages))
	for i, p := range pages {
		images[i] = p.Bytes
	}

	texts, err := s.OCR.ExtractPages(ctx, images)
	if err != nil {
		return nil, s.fail(ctx, ports.TargetPowerPoint, job, err)
	}
	if err := slides.WriteFile(job.Workspace.Path(name), slides.PageSlides(texts)); err != nil {
		return nil, s.fail(ctx, ports.TargetPowerPoint, job, err)
	}
	return s.finish(ctx, job, name, ctPptx, nil)
}

func (s *conversionService) ToExcel(ctx context.Context, job ports.Job) (*ports.Artifact, error) {
	if err := checkJob(job); err != nil {
		return nil, err
	}
	csvPath := job.Workspace.Path(staging.SafeName(job.OriginalName, ".csv"))
	name := staging.SafeName(job.OriginalName, ".xlsx")

	rows, err := s.Tables.ToCSV(ctx, job.Inputs[0], csvPath)
	if err != nil {
		if !errors.Is(err, tables.ErrNoTables) {
			s.notify(ctx, ports.TargetExcel, job, err)
		}
		return nil, &ports.TableExtractionError{Err: err}
	}

	records, err := tables.ReadCSV(csvPath)
	if err != nil {
		return nil, s.fail(ctx, ports.TargetExcel, job, err)
	}
	if err := sheets.WriteStyled(job.Workspace.Path(name), records); err != nil {
		return nil, s.fail(ctx, ports.TargetExcel, job, err)
	}

	s.Logger.Info("tables extracted",
		zap.String("workspace", job.Workspace.ID),
		zap.Int("rows", rows),
	)
	return s.finish(ctx, job, name, ctXlsx, nil)
}

func (s *conversionService) Merge(ctx context.Context, job ports.Job) (*ports.Artifact, error) {
	if err := checkJob(job); err != nil {
		return nil, err
	}

	if err := s.Merger.Merge(ctx, job.Inputs, job.Workspace.Path(MergedName)); err != nil {
		return nil, s.fail(ctx, ports.TargetMerge, job, err)
	}
	return s.finish(ctx, job, MergedName, ctPDF, nil)
}

func (s *conversionService) finish(ctx context.Context, job ports.Job, name, contentType string, body []byte) (*ports.Artifact, error) {
	path := job.Workspace.Path(name)
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat artifact: %w", err)
	}

	a := &ports.Artifact{
		WorkspaceID: job.Workspace.ID,
		Name:        name,
		ContentType: contentType,
		Path:        path,
		Size:        info.Size(),
		Body:        body,
	}

	if s.Mirror != nil {
		url, err := s.Mirror.Publish(ctx, a)
		if err != nil {
			s.Logger.Warn("artifact mirror failed", zap.String("artifact", name), zap.Error(err))
		} else {
			s.Logger.Info("artifact mirrored", zap.String("artifact", name), zap.String("url", url))
		}
	}

	s.Logger.Info("artifact ready",
		zap.String("workspace", a.WorkspaceID),
		zap.String("artifact", a.Name),
		zap.Int64("size", a.Size),
	)
	return a, nil
}

func (s *conversionService) fail(ctx context.Context, target ports.Target, job ports.Job, err error) error {
	s.notify(ctx, target, job, err)
	return fmt.Errorf("%s conversion: %w", target, err)
}

func (s *conversionService) notify(ctx context.Context, target ports.Target, job ports.Job, err error) {
	if s.Notifier == nil || errors.Is(err, context.Canceled) {
		return
	}
	details := fmt.Sprintf("workspace=%s file=%s", job.Workspace.ID, filepath.Base(job.OriginalName))
	if nErr := s.Notifier.Notify(ctx, string(target), err, details); nErr != nil {
		s.Logger.Warn("notify failed", zap.Error(nErr))
	}
}

func checkJob(job ports.Job) error {
	if job.Workspace == nil || len(job.Inputs) == 0 {
		return ErrEmptyJob
	}
	return nil
}
