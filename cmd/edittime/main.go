package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	configloader "github.com/foxseedlab/edittime/external/config"
	"github.com/foxseedlab/edittime/external/discord"
	"github.com/foxseedlab/edittime/external/google"
	repositoryimpl "github.com/foxseedlab/edittime/external/repository"
	webhookimpl "github.com/foxseedlab/edittime/external/webhook"
	"github.com/foxseedlab/edittime/internal/config"
	"github.com/foxseedlab/edittime/internal/report"
	"github.com/samber/do/v2"
)

func main() {
	slog.Info("startup: loading configuration")
	cfg := mustLoadConfig()
	initLogger(cfg)
	slog.Info("startup: configuration loaded", "env", cfg.Env, "discord", cfg.DiscordEnabled(), "webhook", cfg.ReportWebhookURL != "", "database", cfg.DatabaseURL != "")

	slog.Info("startup: building dependency graph")
	injector := setupDI(cfg)

	err := run(cfg, injector)
	injector.Shutdown()
	if err != nil {
		slog.Error("report run failed", "error", err)
		os.Exit(1)
	}
	slog.Info("report run completed")
}

func mustLoadConfig() *config.Config {
	cfg, err := configloader.Load()
	if err != nil {
		slog.Error("config validation failed", "error", err)
		os.Exit(1)
	}
	return cfg
}

func initLogger(cfg *config.Config) {
	logLevel := slog.LevelInfo
	if cfg.IsDevelopment() {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))
}

func setupDI(cfg *config.Config) do.Injector {
	injector := do.New()

	do.ProvideValue(injector, cfg)
	google.RegisterDI(injector)
	discord.RegisterDI(injector)
	webhookimpl.RegisterDI(injector)
	repositoryimpl.RegisterDI(injector)
	report.RegisterDI(injector)

	return injector
}

func run(cfg *config.Config, injector do.Injector) error {
	builder, err := do.Invoke[*report.Builder](injector)
	if err != nil {
		return err
	}
	publisher, err := do.Invoke[*report.Publisher](injector)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	_, err = report.BuildAndPublish(ctx, builder, publisher, report.Params{
		Criteria:    cfg.Criteria(time.Now()),
		Rules:       cfg.Rules(),
		Concurrency: cfg.FetchConcurrency,
	}, cfg.RunTimeout(), cfg.PublishTimeout())
	return err
}
