package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Vovarama1992/pdf_convert/internal/config"
)

func baseConfig() *config.Config {
	return &config.Config{
		RasterEngine:   "fitz",
		WordEngine:     "libreoffice",
		OCREngine:      "tesseract",
		OCRLanguages:   []string{"eng"},
		OCRConcurrency: 2,
	}
}

func TestBuild_Defaults(t *testing.T) {
	e, err := Build(context.Background(), baseConfig(), zaptest.NewLogger(t))
	require.NoError(t, err)
	require.NotNil(t, e.Service)

	assert.Equal(t, "fitz", e.Names["raster"])
	assert.Equal(t, "libreoffice", e.Names["word"])
	assert.Equal(t, "tesseract", e.Names["ocr"])
	assert.Equal(t, "pdfcpu", e.Names["merge"])
	assert.Equal(t, "textlayer", e.Names["tables"])
	assert.NotContains(t, e.Names, "mirror")
}

func TestBuild_AlternateEngines(t *testing.T) {
	cfg := baseConfig()
	cfg.RasterEngine = "poppler"
	cfg.WordEngine = "remote"
	cfg.WordServiceURL = "http://localhost:8000/convert"
	cfg.OCREngine = "openai"
	cfg.OpenAIKey = "sk-test"
	cfg.OpenAIModel = "gpt-4o-mini"

	e, err := Build(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "poppler", e.Names["raster"])
	assert.Equal(t, "remote", e.Names["word"])
	assert.Equal(t, "openai", e.Names["ocr"])
}

func TestBuild_RejectsUnknownEngines(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"raster", func(c *config.Config) { c.RasterEngine = "ghostscript" }},
		{"word", func(c *config.Config) { c.WordEngine = "pandoc" }},
		{"remote word without url", func(c *config.Config) { c.WordEngine = "remote" }},
		{"ocr", func(c *config.Config) { c.OCREngine = "easyocr" }},
		{"openai without key", func(c *config.Config) { c.OCREngine = "openai" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.mutate(cfg)
			_, err := Build(context.Background(), cfg, zaptest.NewLogger(t))
			assert.Error(t, err)
		})
	}
}
