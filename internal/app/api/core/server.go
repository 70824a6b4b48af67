package core

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-pkgz/routegroup"

	"github.com/fivedtech/mail-relay/internal"
	"github.com/fivedtech/mail-relay/internal/app/api/core/middleware/cors"
	"github.com/fivedtech/mail-relay/internal/app/api/core/middleware/logging"
	"github.com/fivedtech/mail-relay/internal/app/api/core/middleware/recovery"
	"github.com/fivedtech/mail-relay/internal/app/api/core/middleware/tracing"
	"github.com/fivedtech/mail-relay/internal/app/api/core/respond"
	"github.com/fivedtech/mail-relay/internal/app/api/models"
	"github.com/fivedtech/mail-relay/internal/config"
	"github.com/fivedtech/mail-relay/internal/domain"
)

const (
	RequestIDKey = "X-Request-ID"

	shutdownGracePeriod = 5 * time.Second

	// MsgCorsDenied is returned to browsers calling from an origin that is not allowed.
	MsgCorsDenied = "Not allowed by CORS"
)

type GroupSetupFn func(group *routegroup.Bundle)

type ApiEndpointSetupFunc func() GroupSetupFn

type Server struct {
	cfg     *config.Config
	server  *routegroup.Bundle
	handler http.Handler
}

func NewServer(cfg *config.Config, endpoints ...ApiEndpointSetupFunc) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		server: routegroup.New(http.NewServeMux()),
	}

	for _, setupFunc := range endpoints {
		setupFunc()(s.server.Group())
	}

	s.handler = s.buildMiddlewareChain(s.server)

	return s, nil
}

// Handler returns the router wrapped by all server wide middlewares.
// The middlewares run before route matching, so preflight requests to unknown paths are answered too.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) Run(ctx context.Context, listenAddress string) {
	// Run web service
	srv := &http.Server{
		Addr:              listenAddress,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	srvContext, cancelFn := context.WithCancel(ctx)
	defer cancelFn()
	go func() {
		var err error
		slog.Debug("starting server", "certFile", s.cfg.Web.CertFile, "keyFile", s.cfg.Web.KeyFile)
		if s.cfg.Web.CertFile != "" && s.cfg.Web.KeyFile != "" {
			err = srv.ListenAndServeTLS(s.cfg.Web.CertFile, s.cfg.Web.KeyFile)
		} else {
			err = srv.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("web service exited", "address", listenAddress, "error", err)
		}
		cancelFn()
	}()
	slog.Info("started web service", "address", listenAddress)

	// Wait for the main context to end
	<-srvContext.Done()

	slog.Debug("web service shutting down", "gracePeriod", shutdownGracePeriod)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGracePeriod)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)

	slog.Debug("web service shut down")
}

// buildMiddlewareChain wraps the router, the first middleware in the list is the outermost one.
func (s *Server) buildMiddlewareChain(router http.Handler) http.Handler {
	middlewares := []func(http.Handler) http.Handler{
		recovery.New().Handler,
		tracing.New(
			tracing.WithUpstreamHeader(RequestIDKey),
			tracing.WithHeaderIdentifier(RequestIDKey),
		).Handler,
	}
	if s.cfg.Web.RequestLogging {
		middlewares = append(middlewares, logging.New(
			logging.WithLevel(slog.LevelDebug),
			logging.WithStatusLevels(true),
			logging.WithContextRequestIdKey(tracing.DefaultContextKey),
		).Handler)
	}
	if s.cfg.Web.ExposeHostInfo {
		middlewares = append(middlewares, hostInfoHandler())
	}
	middlewares = append(middlewares, cors.New(
		cors.WithAllowedOrigins(s.cfg.Web.Origins()...),
		cors.WithExposedHeaders(domain.HeaderSubmissionId, RequestIDKey),
		cors.WithMaxAge(s.cfg.Web.CorsMaxAge),
		cors.WithPreflightStatus(http.StatusOK),
		cors.WithDenyCallback(denyCrossOrigin),
	).Handler)

	handler := router
	for i := len(middlewares) - 1; i >= 0; i-- {
		handler = middlewares[i](handler)
	}

	return handler
}

func denyCrossOrigin(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusForbidden, models.NewError(MsgCorsDenied))
}

func hostInfoHandler() func(http.Handler) http.Handler {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "mail-relay"
	}
	hostname += ", version " + internal.Version

	return func(handler http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Served-By", hostname)
			handler.ServeHTTP(w, r)
		})
	}
}
