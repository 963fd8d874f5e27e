package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/unitecon/unitecon/cmd/unitecon/cli"
	"github.com/unitecon/unitecon/internal/app"
	"github.com/unitecon/unitecon/internal/observability"
	"github.com/unitecon/unitecon/internal/report"
	reporthttp "github.com/unitecon/unitecon/internal/report/http"
	"github.com/unitecon/unitecon/internal/view"
	"github.com/unitecon/unitecon/web"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	_ = godotenv.Load()

	if len(os.Args) > 1 && os.Args[1] == "report" {
		if err := runReport(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	serve()
}

// runReport handles the one-shot CLI mode: compute a snapshot file and
// print the summary to stdout.
func runReport(args []string) error {
	flags := flag.NewFlagSet("report", flag.ContinueOnError)
	configPath := flags.String("config", "", "path to the JSON projection snapshot")
	strict := flags.Bool("strict", false, "reject out-of-range rates instead of computing")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if *configPath == "" {
		return fmt.Errorf("usage: unitecon report --config <file.json> [--strict]")
	}

	service := report.NewService(report.NewCache(nil, 0), *strict)
	reportCLI, err := cli.NewReportCLI(service, os.Stdout)
	if err != nil {
		return err
	}
	return reportCLI.Run(context.Background(), *configPath)
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warn("redis ping", slog.Any("error", err))
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Warn("redis close", slog.Any("error", err))
			}
		}()
	}

	cache := report.NewCache(redisClient, cfg.CacheTTL)
	if err := cache.ListenForInvalidation(ctx); err != nil {
		logger.Warn("cache invalidation listener", slog.Any("error", err))
	}
	service := report.NewService(cache, cfg.StrictInput)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	reportHandler, err := reporthttp.NewHandler(logger, service, templates, metrics, web.DefaultConfig)
	if err != nil {
		logger.Error("build report handler", slog.Any("error", err))
		os.Exit(1)
	}

	router := app.NewRouter(app.RouterParams{
		Logger:        logger,
		Config:        cfg,
		ReportHandler: reportHandler,
		Metrics:       metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
