package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/routegroup"

	"github.com/fivedtech/mail-relay/internal/app/api/core/respond"
	"github.com/fivedtech/mail-relay/internal/app/api/models"
	"github.com/fivedtech/mail-relay/internal/config"
)

type HealthEndpointService interface {
	Ready(ctx context.Context) error
}

// HealthEndpoint serves the liveness and readiness checks.
// A readiness result is reused for web.ready_cache_ttl, a ttl of 0 checks on every request.
type HealthEndpoint struct {
	cfg    *config.Config
	health HealthEndpointService

	mu        sync.Mutex // serializes readiness checks
	checkedAt time.Time
	lastErr   error
}

func NewHealthEndpoint(cfg *config.Config, health HealthEndpointService) *HealthEndpoint {
	return &HealthEndpoint{
		cfg:    cfg,
		health: health,
	}
}

func (e *HealthEndpoint) GetName() string {
	return "HealthEndpoint"
}

func (e *HealthEndpoint) RegisterRoutes(g *routegroup.Bundle) {
	g.HandleFunc("GET /health", e.handleHealthGet())
	g.HandleFunc("GET /health/ready", e.handleReadyGet())
}

// handleHealthGet returns the http.HandlerFunc for the endpoint.
//
// @ID health_handleHealthGet
// @Tags Health
// @Summary Liveness check. The SMTP server is not contacted.
// @Produce json
// @Success 200 {object} models.Health
// @Router /health [get]
func (e *HealthEndpoint) handleHealthGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, models.Health{Ok: true})
	}
}

// handleReadyGet returns the http.HandlerFunc for the endpoint.
//
// @ID health_handleReadyGet
// @Tags Health
// @Summary Readiness check. Connects and authenticates to the SMTP server.
// @Description The result of the last check is reused for a short time.
// @Produce json
// @Success 200 {object} models.Health
// @Failure 503 {object} models.Health
// @Router /health/ready [get]
func (e *HealthEndpoint) handleReadyGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := e.ready(r.Context()); err != nil {
			respond.JSON(w, http.StatusServiceUnavailable, models.Health{Ok: false, Error: err.Error()})
			return
		}

		respond.JSON(w, http.StatusOK, models.Health{Ok: true})
	}
}

// ready returns the cached readiness result or runs a new check once the cache expired.
// Concurrent callers wait for the running check instead of starting their own.
func (e *HealthEndpoint) ready(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	ttl := e.cfg.Web.ReadyCacheTTL
	if ttl > 0 && !e.checkedAt.IsZero() && time.Since(e.checkedAt) < ttl {
		return e.lastErr
	}

	checkCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), e.cfg.Mail.ConnectTimeout)
	defer cancel()

	e.lastErr = e.health.Ready(checkCtx)
	e.checkedAt = time.Now()
	if e.lastErr != nil {
		slog.Warn("readiness check failed", "error", e.lastErr)
	}

	return e.lastErr
}
