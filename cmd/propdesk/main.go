package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	pdhttp "github.com/Mutombe/propdesk/internal/adapter/http"
	"github.com/Mutombe/propdesk/internal/adapter/natskv"
	pdotel "github.com/Mutombe/propdesk/internal/adapter/otel"
	"github.com/Mutombe/propdesk/internal/adapter/restapi"
	"github.com/Mutombe/propdesk/internal/adapter/ristretto"
	"github.com/Mutombe/propdesk/internal/adapter/tiered"
	"github.com/Mutombe/propdesk/internal/adapter/toast"
	"github.com/Mutombe/propdesk/internal/config"
	"github.com/Mutombe/propdesk/internal/logger"
	"github.com/Mutombe/propdesk/internal/middleware"
	"github.com/Mutombe/propdesk/internal/port/cache"
	"github.com/Mutombe/propdesk/internal/query"
	"github.com/Mutombe/propdesk/internal/resilience"
	"github.com/Mutombe/propdesk/internal/service"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logger.New(cfg.Logging)
	slog.SetDefault(log)

	slog.Info("config loaded",
		"port", cfg.Server.Port,
		"backend", cfg.Backend.URL,
		"cache_ttl", cfg.Cache.TTL,
		"l2_bucket", cfg.Cache.L2Bucket,
	)

	ctx := context.Background()

	// --- Telemetry ---
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") != "" {
		shutdown, err := pdotel.Init(ctx, cfg.Logging.Service)
		if err != nil {
			return fmt.Errorf("otel: %w", err)
		}
		defer func() {
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = shutdown(flushCtx)
		}()
		slog.Info("otel exporters started")
	}

	// --- Cache tiers ---
	l1, err := ristretto.New(cfg.Cache.L1MaxSizeMB << 20)
	if err != nil {
		return fmt.Errorf("ristretto: %w", err)
	}

	var store cache.Cache = l1
	if cfg.Cache.L2Bucket != "" {
		l2, err := natskv.Connect(ctx, cfg.NATS.URL, cfg.Cache.L2Bucket, cfg.Cache.L2TTL)
		if err != nil {
			return fmt.Errorf("nats kv: %w", err)
		}
		store = tiered.New(l1, l2, cfg.Cache.TTL)
		slog.Info("shared cache tier active", "bucket", cfg.Cache.L2Bucket)
	}

	// --- Backend client ---
	client := restapi.NewClient(cfg.Backend.URL, cfg.Backend.Token, cfg.Backend.Timeout)
	client.SetBreaker(resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Cooldown))

	// --- Query layer and workspace ---
	toasts := toast.New(0)
	mutator := query.NewMutator(query.NewCache(store, cfg.Cache.TTL), toasts)

	ws := service.NewWorkspace(client, mutator, log, service.Options{
		DebounceDelay: cfg.UI.DebounceDelay,
		PageSize:      cfg.UI.PageSize,
		ExportDir:     cfg.UI.ExportDir,
	})
	defer ws.Close()

	// --- HTTP ---
	handlers := pdhttp.NewHandlers(ws, toasts, log)

	r := chi.NewRouter()
	r.Use(pdhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(middleware.RequestID)
	r.Use(pdhttp.Logger)
	r.Use(pdotel.HTTPMiddleware(cfg.Logging.Service))
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	pdhttp.MountRoutes(r, handlers)

	addr := ":" + cfg.Server.Port

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
