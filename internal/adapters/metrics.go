package adapters

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fivedtech/mail-relay/internal/config"
	"github.com/fivedtech/mail-relay/internal/domain"
)

type MetricsServer struct {
	*http.Server

	submissionsTotal   *prometheus.CounterVec
	sendDuration       prometheus.Histogram
	lastSentTimestamp  prometheus.Gauge
	lastErrorTimestamp prometheus.Gauge
}

// NewMetricsServer returns a new prometheus server
func NewMetricsServer(cfg *config.Config) *MetricsServer {
	reg := prometheus.NewRegistry()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))

	return &MetricsServer{
		Server: &http.Server{
			Addr:              cfg.Statistics.ListeningAddress,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},

		submissionsTotal: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "mailrelay_submissions_total",
				Help: "Processed contact form submissions by result (sent, rejected, failed).",
			}, []string{"result"},
		),
		sendDuration: promauto.With(reg).NewHistogram(
			prometheus.HistogramOpts{
				Name:    "mailrelay_send_duration_seconds",
				Help:    "Time spent handing a message to the SMTP server.",
				Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
		lastSentTimestamp: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "mailrelay_last_sent_timestamp_seconds",
				Help: "Unix timestamp of the last successfully relayed message.",
			},
		),
		lastErrorTimestamp: promauto.With(reg).NewGauge(
			prometheus.GaugeOpts{
				Name: "mailrelay_last_error_timestamp_seconds",
				Help: "Unix timestamp of the last transport failure.",
			},
		),
	}
}

// Run starts the metrics server
func (m *MetricsServer) Run(ctx context.Context) {
	// Run the metrics server in a goroutine
	go func() {
		if err := m.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics service exited", "address", m.Addr, "error", err)
		}
	}()

	slog.Info("started metrics service", "address", m.Addr)

	// Wait for the context to be done
	<-ctx.Done()

	// Create a context with timeout for the shutdown process
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Attempt to gracefully shutdown the metrics server
	if err := m.Shutdown(shutdownCtx); err != nil {
		slog.Error("metrics service shutdown failed", "address", m.Addr, "error", err)
	} else {
		slog.Info("metrics service shutdown gracefully", "address", m.Addr)
	}
}

// UpdateSubmissionMetrics records the outcome of a processed contact submission.
func (m *MetricsServer) UpdateSubmissionMetrics(event domain.SubmissionEvent) {
	m.submissionsTotal.WithLabelValues(string(event.Result)).Inc()

	switch event.Result {
	case domain.SubmissionResultSent:
		m.sendDuration.Observe(event.Duration.Seconds())
		m.lastSentTimestamp.SetToCurrentTime()
	case domain.SubmissionResultFailed:
		m.sendDuration.Observe(event.Duration.Seconds())
		m.lastErrorTimestamp.SetToCurrentTime()
	}
}
