// Package main is the entry point for the DB3D gallery server.
// It loads configuration, connects to Valkey, restores the gallery state,
// sets up routing, and starts the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"db3dgallery/internal/admin"
	"db3dgallery/internal/cache"
	"db3dgallery/internal/catalog"
	"db3dgallery/internal/config"
	"db3dgallery/internal/durable"
	"db3dgallery/internal/handlers"
	"db3dgallery/internal/metrics"
	"db3dgallery/internal/render"
	"db3dgallery/internal/router"
	"db3dgallery/internal/session"
	"db3dgallery/internal/store"
	"db3dgallery/web"
)

func main() {
	// A missing .env file is fine; the environment may already be set.
	_ = godotenv.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"storage", cfg.StorageBackend,
	)

	// Valkey carries sessions and the page cache in every mode. The memory
	// backend runs an embedded server so a laptop needs nothing else.
	var (
		valkeyClient *redis.Client
		backend      durable.Store
	)
	switch cfg.StorageBackend {
	case config.BackendMemory:
		mr, err := miniredis.Run()
		if err != nil {
			slog.Error("failed to start embedded valkey", "error", err)
			os.Exit(1)
		}
		defer mr.Close()
		valkeyClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		backend = durable.NewMemory(cfg.StorageQuotaBytes)
		slog.Warn("memory storage backend: edits are lost on restart")
	default:
		valkeyClient, err = cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		backend = durable.NewValkey(valkeyClient, cfg.StorageNamespace, cfg.StorageQuotaBytes)
	}
	defer valkeyClient.Close()

	defaults := catalog.Builtin()
	if cfg.DefaultsFile != "" {
		defaults, err = catalog.LoadFile(cfg.DefaultsFile)
		if err != nil {
			slog.Error("failed to load defaults file", "path", cfg.DefaultsFile, "error", err)
			os.Exit(1)
		}
		slog.Info("defaults loaded from export", "path", cfg.DefaultsFile, "assets", len(defaults.Assets))
	}

	// Restore the gallery state. Corrupt or missing entries fall back to
	// the defaults inside the stores.
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 10*time.Second)
	overrides := store.LoadOverrides(loadCtx, backend)
	structure := store.LoadStructure(loadCtx, backend, defaults.Assets)
	cancelLoad()

	sessionStore := session.NewStore(valkeyClient, cfg.SessionTTL, cfg.SecureCookies())
	pageCache := cache.NewPageCache(valkeyClient, cfg.PageCacheTTL)

	// Cached pages from a previous run may predate the restored state.
	pageCache.InvalidateAll(context.Background())

	engine := admin.New(admin.Config{
		Password:   cfg.AdminPassword,
		Defaults:   defaults,
		BatchLimit: cfg.BatchConcurrency,
	}, sessionStore, overrides, structure, pageCache)

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	r := router.New(
		sessionStore,
		handlers.NewGallery(renderer, engine, pageCache),
		handlers.NewAuth(renderer, engine),
		handlers.NewAdmin(engine, cfg.MaxUploadBytes),
		metrics.NewCollector(engine),
		router.Options{
			Static:        web.Static(),
			ImagesDir:     cfg.ImagesDir,
			SecureCookies: cfg.SecureCookies(),
		},
	)

	// Uploads of large videos need a generous read timeout.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  2 * time.Minute,
		WriteTimeout: 2 * time.Minute,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr(), "assets", structure.Len(), "overrides", overrides.Len())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
