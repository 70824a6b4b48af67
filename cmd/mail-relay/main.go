package main

import (
	"context"
	"log/slog"
	"syscall"

	evbus "github.com/vardius/message-bus"

	"github.com/fivedtech/mail-relay/internal"
	"github.com/fivedtech/mail-relay/internal/adapters"
	"github.com/fivedtech/mail-relay/internal/app"
	"github.com/fivedtech/mail-relay/internal/app/api/core"
	"github.com/fivedtech/mail-relay/internal/app/api/handlers"
	"github.com/fivedtech/mail-relay/internal/app/relay"
	"github.com/fivedtech/mail-relay/internal/app/statistics"
	"github.com/fivedtech/mail-relay/internal/config"
)

// main starts the mail relay.
// The process exits once SIGINT, SIGTERM or SIGHUP is received.
func main() {
	ctx := internal.SignalAwareContext(context.Background(), syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)

	cfg, err := config.GetConfig()
	internal.AssertNoError(err)
	internal.SetupLogging(cfg.Advanced.LogLevel, cfg.Advanced.LogJson)

	slog.Info("Starting mail relay...", "version", internal.Version)
	cfg.LogStartupValues()

	eventBus := evbus.New(cfg.Advanced.EventQueueSize)

	mailer := adapters.NewSmtpMailRepo(cfg.Mail)

	metricsServer := adapters.NewMetricsServer(cfg)
	if cfg.Statistics.Enabled {
		go metricsServer.Run(ctx)
	}

	statisticsCollector, err := statistics.NewStatisticsCollector(cfg, eventBus, metricsServer)
	internal.AssertNoError(err)

	contactRelay, err := relay.NewContactRelay(cfg, eventBus, mailer)
	internal.AssertNoError(err)

	relayApp, err := app.New(cfg, eventBus, contactRelay, statisticsCollector)
	internal.AssertNoError(err)
	internal.AssertNoError(relayApp.Startup(ctx))

	apiFrontend := handlers.NewRestApi(
		handlers.NewContactEndpoint(cfg, relayApp),
		handlers.NewHealthEndpoint(cfg, relayApp),
	)

	webSrv, err := core.NewServer(cfg, apiFrontend)
	internal.AssertNoError(err)

	// blocks until the context gets cancelled
	webSrv.Run(ctx, cfg.Web.ListeningAddress())

	slog.Info("Stopped mail relay")
}
