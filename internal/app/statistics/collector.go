package statistics

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fivedtech/mail-relay/internal/app"
	"github.com/fivedtech/mail-relay/internal/config"
	"github.com/fivedtech/mail-relay/internal/domain"
)

const summaryInterval = 1 * time.Hour

type EventBus interface {
	Subscribe(topic string, fn any) error
}

type MetricsServer interface {
	UpdateSubmissionMetrics(event domain.SubmissionEvent)
}

// Collector receives submission events from the message bus and feeds the metrics server.
type Collector struct {
	cfg *config.Config
	bus EventBus
	ms  MetricsServer

	sent     atomic.Uint64
	rejected atomic.Uint64
	failed   atomic.Uint64
}

func NewStatisticsCollector(cfg *config.Config, bus EventBus, ms MetricsServer) (*Collector, error) {
	c := &Collector{
		cfg: cfg,
		bus: bus,
		ms:  ms,
	}

	err := c.connectToMessageBus()
	if err != nil {
		return nil, fmt.Errorf("failed to setup message bus: %w", err)
	}

	return c, nil
}

// StartBackgroundJobs logs a summary of the processed submissions once per hour and on shutdown.
func (c *Collector) StartBackgroundJobs(ctx context.Context) {
	go func() {
		ticker := time.NewTicker(summaryInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				c.logSummary()
				return
			case <-ticker.C:
				c.logSummary()
			}
		}
	}()
}

func (c *Collector) connectToMessageBus() error {
	for _, topic := range []string{app.TopicSubmissionSent, app.TopicSubmissionRejected, app.TopicSubmissionFailed} {
		if err := c.bus.Subscribe(topic, c.handleSubmissionEvent); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
		}
	}

	return nil
}

func (c *Collector) handleSubmissionEvent(event domain.SubmissionEvent) {
	switch event.Result {
	case domain.SubmissionResultSent:
		c.sent.Add(1)
	case domain.SubmissionResultRejected:
		c.rejected.Add(1)
	case domain.SubmissionResultFailed:
		c.failed.Add(1)
	}

	if c.cfg.Statistics.Enabled && c.ms != nil {
		c.ms.UpdateSubmissionMetrics(event)
	}
}

func (c *Collector) logSummary() {
	sent, rejected, failed := c.Counts()
	slog.Info("contact submissions since startup", "sent", sent, "rejected", rejected, "failed", failed)
}

// Counts returns the number of sent, rejected and failed submissions since startup.
func (c *Collector) Counts() (sent, rejected, failed uint64) {
	return c.sent.Load(), c.rejected.Load(), c.failed.Load()
}
