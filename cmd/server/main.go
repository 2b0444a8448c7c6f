package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/yourusername/mediafetch-go/api"
	"github.com/yourusername/mediafetch-go/api/handlers"
	"github.com/yourusername/mediafetch-go/internal/app"
	"github.com/yourusername/mediafetch-go/internal/domain"
	"github.com/yourusername/mediafetch-go/internal/infrastructure"
	"github.com/yourusername/mediafetch-go/pkg/logger"
)

const shutdownTimeout = 30 * time.Second

var configPath = flag.String("config", "", "Path to config file (default: ./configs, $HOME/.mediafetch, /etc/mediafetch)")

func main() {
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "mediafetch-server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := app.LoadConfig(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := createDirectories(config); err != nil {
		return err
	}

	log, err := logger.New(logger.Config{
		Level:      config.Logging.Level,
		Format:     config.Logging.Format,
		OutputPath: config.Logging.OutputPath,
	})
	if err != nil {
		log = logger.NewDefault()
		log.Warn("Falling back to stdout logging", zap.Error(err))
	}
	defer log.Sync()

	// download, task and error events go to daily JSON files
	multiLog, err := logger.NewMultiLogger(logger.MultiLoggerConfig{
		Level:   config.Logging.Level,
		LogsDir: config.Logging.LogsDir,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize event logger: %w", err)
	}
	defer multiLog.Close()
	events := logger.NewLoggerAdapter(multiLog)

	log.Info("Starting mediafetch server",
		zap.String("version", handlers.Version),
		zap.String("host", config.Server.Host),
		zap.Int("port", config.Server.Port),
		zap.String("base_dir", config.Download.BaseDir))

	history, err := infrastructure.NewSQLiteHistoryRepository(config.History.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer history.Close()

	notifier := infrastructure.NewNotificationService(&config.Notification, log)

	journals := infrastructure.NewFileJournalStore(config.Download.BaseDir)
	registry := infrastructure.NewJSONTaskRegistry(config.Download.TasksDir(), domain.KindCartoon)

	downloadMgr := app.NewDownloadManager(
		journals,
		registry,
		history,
		infrastructure.NewHTTPFetcher(config.Download.UserAgent, config.Download.RequestTimeout),
		notifier,
		&config.Download,
		log,
	).
		WithVideoFetcher(infrastructure.NewHTTPFetcher(config.Download.UserAgent, config.Download.VideoTimeout)).
		WithEventLogger(events)

	tasks := app.NewTaskService(registry, events, log)
	recovered, err := tasks.RecoverInterrupted()
	if err != nil {
		log.Warn("Failed to recover interrupted tasks", zap.Error(err))
	} else if recovered > 0 {
		log.Info("Marked interrupted tasks as paused", zap.Int("count", recovered))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	router := api.SetupRouter(ctx, api.Services{
		DownloadMgr: downloadMgr,
		Tasks:       tasks,
		Library:     app.NewLibrary(config.Download.BaseDir, journals, log),
		History:     history,
		Events:      events,
		LogsDir:     multiLog.GetLogsDir(),
	}, log)

	addr := fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port)
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		log.Info("HTTP server listening", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("Server forced to shutdown", zap.Error(err))
			return err
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}

	log.Info("Server exited")
	return nil
}

func createDirectories(config *domain.Config) error {
	dirs := []string{
		config.Download.BaseDir,
		config.Download.KindDir(domain.KindManga),
		config.Download.KindDir(domain.KindCartoon),
		config.Download.TasksDir(),
		config.Logging.LogsDir,
		filepath.Dir(config.History.DatabasePath),
	}

	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}
