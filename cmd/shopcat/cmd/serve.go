package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/shop-catalog-exporter/internal/api/handlers"
	"github.com/donaldgifford/shop-catalog-exporter/internal/catalog"
	"github.com/donaldgifford/shop-catalog-exporter/internal/config"
	"github.com/donaldgifford/shop-catalog-exporter/internal/engine"
	"github.com/donaldgifford/shop-catalog-exporter/internal/mcp"
	"github.com/donaldgifford/shop-catalog-exporter/internal/notify"
	"github.com/donaldgifford/shop-catalog-exporter/pkg/logger"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run scheduled catalog exports with a status API",
		Long: "Exports the configured store's catalog on a fixed interval and\n" +
			"serves run history, health, and Prometheus metrics over HTTP.",
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	charm := log.NewWithOptions(os.Stderr, log.Options{
		Level: parseLogLevel(cfg.Logging.Level),
	})
	slogger := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	eng := buildEngine(cfg, slogger)

	scheduler, err := engine.NewScheduler(eng, cfg.Schedule.ExportInterval, slogger)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("shopcat", Version))
	handlers.RegisterRunRoutes(api, handlers.NewRunsHandler(eng.History()))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	charm.Info("starting server",
		"addr", addr,
		"store", cfg.Store.Domain,
		"interval", cfg.Schedule.ExportInterval,
	)

	scheduler.Start()

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			charm.Error("server error", "err", err)
		}
	}()

	// Wait for interrupt signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	charm.Info("shutting down")

	<-scheduler.Stop().Done()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	charm.Info("server stopped")
	return nil
}

func buildEngine(cfg *config.Config, slogger *slog.Logger) *engine.Engine {
	client := mcp.NewHTTPClient(cfg.Store.Domain,
		mcp.WithTimeout(cfg.Fetch.Timeout),
		mcp.WithLogger(slogger),
	)

	fetcher := catalog.NewFetcher(client,
		catalog.WithPageSize(cfg.Fetch.PageSize),
		catalog.WithMaxProducts(cfg.Fetch.MaxProductCount()),
		catalog.WithPageDelay(cfg.Fetch.PageDelay),
		catalog.WithFetcherLogger(slogger),
	)

	output := cfg.Output.Path
	if output == "" {
		output = catalog.DefaultOutputPath(cfg.Store.Domain)
	}

	var notifier notify.Notifier = notify.NewNoOpNotifier(slogger)
	if cfg.Notifications.Webhook.Enabled {
		notifier = notify.NewWebhookNotifier(
			cfg.Notifications.Webhook.URL,
			notify.WithWebhookHeaders(cfg.Notifications.Webhook.Headers),
		)
	}

	return engine.New(fetcher, cfg.Store.Domain, output,
		engine.WithLogger(slogger),
		engine.WithNotifier(notifier),
	)
}

func parseLogLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}
