package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port       string
	StagingDir string

	ArtifactTTL   time.Duration
	SweepInterval time.Duration
	MaxUploadSize int64
	RatePerMinute int

	RasterEngine string
	RasterDPI    float64

	WordEngine     string
	WordServiceURL string
	SofficePath    string

	OCREngine      string
	OCRLanguages   []string
	OCRConcurrency int
	OpenAIKey      string
	OpenAIModel    string

	AlertWebhookURL string

	S3 S3Config
}

type S3Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Region    string
	UseSSL    bool
}

// Enabled reports whether the artifact mirror is configured.
func (c S3Config) Enabled() bool {
	return c.Endpoint != "" && c.Bucket != ""
}

func Load() *Config {
	return &Config{
		Port:       getEnv("PORT", "8080"),
		StagingDir: getEnv("STAGING_DIR", "staging"),

		ArtifactTTL:   getEnvAsDuration("ARTIFACT_TTL", 30*time.Minute),
		SweepInterval: getEnvAsDuration("SWEEP_INTERVAL", 5*time.Minute),
		MaxUploadSize: getEnvAsInt64("MAX_UPLOAD_SIZE", 50*1024*1024),
		RatePerMinute: int(getEnvAsInt64("RATE_LIMIT_PER_MINUTE", 30)),

		RasterEngine: getEnv("RASTER_ENGINE", "fitz"),
		RasterDPI:    getEnvAsFloat("RASTER_DPI", 0),

		WordEngine:     getEnv("WORD_ENGINE", "libreoffice"),
		WordServiceURL: getEnv("WORD_SERVICE_URL", "http://pdf2docx:8000/convert"),
		SofficePath:    getEnv("SOFFICE_PATH", ""),

		OCREngine:      getEnv("OCR_ENGINE", "tesseract"),
		OCRLanguages:   getEnvAsList("OCR_LANGUAGES", []string{"eng"}),
		OCRConcurrency: int(getEnvAsInt64("OCR_CONCURRENCY", 4)),
		OpenAIKey:      getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:    getEnv("OPENAI_MODEL", "gpt-4o-mini"),

		AlertWebhookURL: getEnv("ALERT_WEBHOOK_URL", ""),

		S3: S3Config{
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
			Bucket:    getEnv("S3_BUCKET", ""),
			Region:    getEnv("S3_REGION", ""),
			UseSSL:    getEnvAsBool("S3_USE_SSL", true),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// getEnvAsDuration only accepts positive durations; zero or negative
// values fall back to the default.
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
