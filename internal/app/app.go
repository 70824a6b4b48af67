package app

import (
	"context"
	"log/slog"

	evbus "github.com/vardius/message-bus"

	"github.com/fivedtech/mail-relay/internal/config"
)

type App struct {
	Config *config.Config
	bus    evbus.MessageBus

	ContactRelay
	StatisticsCollector
}

func New(
	cfg *config.Config,
	bus evbus.MessageBus,
	relay ContactRelay,
	stats StatisticsCollector,
) (*App, error) {

	a := &App{
		Config: cfg,
		bus:    bus,

		ContactRelay:        relay,
		StatisticsCollector: stats,
	}

	return a, nil
}

// Startup starts the background jobs and checks once if the SMTP server is reachable.
// A failed check is only logged, the relay keeps serving and reports the error per request.
func (a *App) Startup(ctx context.Context) error {
	a.StatisticsCollector.StartBackgroundJobs(ctx)

	startupContext, cancel := context.WithTimeout(ctx, a.Config.Advanced.StartupTimeout)
	defer cancel()

	if err := a.Ready(startupContext); err != nil {
		slog.Error("SMTP verify failed", "error", err)
		return nil
	}

	slog.Info("SMTP server ready to send emails", "host", a.Config.Mail.Host, "port", a.Config.Mail.Port)

	return nil
}
