// Command clipforged runs the generation daemon: the HTTP API, the worker
// dispatch loop, and the pipeline they share.
package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofrs/flock"

	"clipforge/internal/api"
	"clipforge/internal/config"
	"clipforge/internal/integrations"
	"clipforge/internal/integrations/stub"
	"clipforge/internal/logging"
	"clipforge/internal/notifications"
	"clipforge/internal/pipeline"
	"clipforge/internal/videos"
	"clipforge/internal/worker"
	"clipforge/internal/workspace"
)

// staleWorkspaceAge is how long an abandoned run directory survives before
// startup cleanup reclaims it.
const staleWorkspaceAge = 24 * time.Hour

func main() {
	configPath := flag.String("config", "", "configuration file path")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, resolvedPath, exists, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.EnsureDirectories(); err != nil {
		log.Fatalf("prepare directories: %v", err)
	}

	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
	})
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	if exists {
		logger.Info("configuration loaded", logging.String("path", resolvedPath))
	} else {
		logger.Info("no configuration file found, using defaults",
			logging.String("path", resolvedPath))
	}

	lock := flock.New(filepath.Join(cfg.Paths.DataDir, "clipforged.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		log.Fatalf("acquire instance lock: %v", err)
	}
	if !locked {
		log.Fatalf("another clipforged instance is already running")
	}
	defer lock.Unlock() //nolint:errcheck

	store, err := videos.Open(cfg)
	if err != nil {
		log.Fatalf("open video store: %v", err)
	}
	defer store.Close()

	registry := integrations.NewRegistry()
	if err := stub.Register(registry); err != nil {
		log.Fatalf("register adapters: %v", err)
	}

	ws, err := workspace.NewManager(cfg.Paths.WorkspaceDir)
	if err != nil {
		log.Fatalf("prepare workspace: %v", err)
	}
	ws.CleanStale(staleWorkspaceAge, logger)

	notifier := notifications.NewService(cfg)
	runner := pipeline.NewRunner(cfg, store, registry, ws, notifier, logger)

	manager := worker.NewManager(cfg, store, runner, logger)
	if err := manager.Start(ctx); err != nil {
		log.Fatalf("start worker: %v", err)
	}
	defer manager.Stop()

	server := api.NewServer(cfg, store, logger)
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Serve(ctx)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			logger.Error("api server failed", logging.Error(err))
		}
		cancel()
	}
	logger.Info("clipforged shutting down")
}
