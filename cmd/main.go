package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Vovarama1992/go-utils/httputil"
	"github.com/Vovarama1992/go-utils/logger"

	"github.com/Vovarama1992/pdf_convert/internal/app"
	"github.com/Vovarama1992/pdf_convert/internal/config"
	"github.com/Vovarama1992/pdf_convert/internal/delivery"
	"github.com/Vovarama1992/pdf_convert/internal/intake"
	"github.com/Vovarama1992/pdf_convert/internal/staging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {

	// =========================================================================
	// ENV / CONFIG
	// =========================================================================

	_ = godotenv.Load()
	cfg := config.Load()

	baseLogger, _ := zap.NewProduction()
	defer baseLogger.Sync()
	zl := logger.NewZapLogger(baseLogger.Sugar())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// =========================================================================
	// INFRASTRUCTURE
	// =========================================================================

	store, err := staging.NewFSStore(cfg.StagingDir)
	if err != nil {
		log.Fatalf("failed to init staging dir: %v", err)
	}

	initCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	engines, err := app.Build(initCtx, cfg, baseLogger)
	cancel()
	if err != nil {
		log.Fatalf("failed to init engines: %v", err)
	}

	// =========================================================================
	// HTTP ROUTER
	// =========================================================================

	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"Content-Disposition", "X-Artifact-URL", "X-Request-ID"},
	}))
	r.Use(delivery.RequestID)
	r.Use(delivery.Logging(baseLogger.Named("http")))

	// HANDLERS
	convHandler := delivery.NewConversionHandler(engines.Service, store, intake.New(cfg.MaxUploadSize), zl)
	dlHandler := delivery.NewDownloadHandler(store, engines.Names, zl)

	// ROUTES
	delivery.RegisterRoutes(r, convHandler, dlHandler, cfg.RatePerMinute)

	r.With(httputil.RecoverMiddleware).Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(200)
		w.Write([]byte("pong"))
	})

	// =========================================================================
	// BACKGROUND JOBS
	// =========================================================================

	go staging.RunSweeper(ctx, store, cfg.SweepInterval, cfg.ArtifactTTL, baseLogger.Named("sweeper"))

	// =========================================================================
	// START SERVER
	// =========================================================================

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("[server] shutdown error: %v", err)
		}
	}()

	zl.Log(logger.LogEntry{
		Level:   "info",
		Message: "listening at " + addr + " staging=" + store.Root(),
		Service: "pdf_convert",
	})

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server error: %v", err)
	}
}
