// Package app wires the configured conversion engines into one dispatcher,
// shared by the HTTP server and the command line tool.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Vovarama1992/pdf_convert/internal/config"
	"github.com/Vovarama1992/pdf_convert/internal/doc"
	"github.com/Vovarama1992/pdf_convert/internal/domain"
	"github.com/Vovarama1992/pdf_convert/internal/error_notificator"
	"github.com/Vovarama1992/pdf_convert/internal/infra"
	"github.com/Vovarama1992/pdf_convert/internal/ocr"
	"github.com/Vovarama1992/pdf_convert/internal/pdf"
	"github.com/Vovarama1992/pdf_convert/internal/ports"
	"github.com/Vovarama1992/pdf_convert/internal/tables"
)

type Engines struct {
	Service ports.ConversionService
	// Names maps each concern to the backend serving it, for /healthz.
	Names map[string]string
}

func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Engines, error) {
	raster, err := newRasterizer(cfg)
	if err != nil {
		return nil, err
	}
	word, err := newWordConverter(cfg)
	if err != nil {
		return nil, err
	}
	reader, err := newTextExtractor(cfg)
	if err != nil {
		return nil, err
	}

	pdfService := pdf.NewPDFService(raster, pdf.NewPdfcpuMerger())
	docService := doc.NewService(word)
	ocrService := ocr.NewService(reader, cfg.OCRConcurrency)
	tableService := tables.NewService(tables.NewTextLayerExtractor())

	notifier := error_notificator.NewService(
		error_notificator.NewInfra(logger.Named("alerts"), cfg.AlertWebhookURL),
	)

	var mirror ports.ArtifactMirror
	if cfg.S3.Enabled() {
		client, err := infra.NewS3Client(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		mirror = domain.NewArtifactMirror(client)
	}

	svc := domain.NewConversionService(domain.ConversionDeps{
		Pages:    pdfService,
		Merger:   pdfService,
		Word:     docService,
		OCR:      ocrService,
		Tables:   tableService,
		Mirror:   mirror,
		Notifier: notifier,
		Logger:   logger.Named("conversion"),
	})

	names := map[string]string{
		"raster": pdfService.Engine(),
		"merge":  "pdfcpu",
		"word":   docService.Engine(),
		"ocr":    ocrService.Engine(),
		"tables": tableService.Engine(),
	}
	if mirror != nil {
		names["mirror"] = "s3"
	}

	return &Engines{Service: svc, Names: names}, nil
}

func newRasterizer(cfg *config.Config) (pdf.Rasterizer, error) {
	switch cfg.RasterEngine {
	case "fitz", "":
		return pdf.NewFitzRasterizer(cfg.RasterDPI), nil
	case "poppler":
		return pdf.NewPopplerPDFConverter(cfg.RasterDPI), nil
	default:
		return nil, fmt.Errorf("unknown RASTER_ENGINE %q", cfg.RasterEngine)
	}
}

func newWordConverter(cfg *config.Config) (doc.WordConverter, error) {
	switch cfg.WordEngine {
	case "libreoffice", "":
		return doc.NewLibreOfficeConverter(cfg.SofficePath), nil
	case "remote":
		if cfg.WordServiceURL == "" {
			return nil, fmt.Errorf("WORD_SERVICE_URL is required for the remote word engine")
		}
		return doc.NewRemoteDocConverter(cfg.WordServiceURL), nil
	default:
		return nil, fmt.Errorf("unknown WORD_ENGINE %q", cfg.WordEngine)
	}
}

func newTextExtractor(cfg *config.Config) (ocr.TextExtractor, error) {
	switch cfg.OCREngine {
	case "tesseract", "":
		return ocr.NewTesseractOCR(cfg.OCRLanguages...), nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY is required for the openai OCR engine")
		}
		return ocr.NewOpenAIVisionOCR(cfg.OpenAIKey, cfg.OpenAIModel, ""), nil
	default:
		return nil, fmt.Errorf("unknown OCR_ENGINE %q", cfg.OCREngine)
	}
}
