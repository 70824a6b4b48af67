package cors

import (
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// Middleware is a type that creates a new CORS middleware. The CORS middleware enforces an
// origin allow-list: requests from other origins are rejected before they reach the next handler.
// Requests without an Origin header (curl, server-to-server) are allowed.
// All OPTIONS requests are answered directly, regardless of the requested path.
type Middleware struct {
	o options

	allOrigins     bool   // all origins are allowed
	allowedMethods string // precomputed Access-Control-Allow-Methods header
	allowedHeaders string // precomputed Access-Control-Allow-Headers header
}

// New returns a new CORS middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	m := &Middleware{
		o:              o,
		allOrigins:     slices.Contains(o.allowedOrigins, "*"),
		allowedMethods: strings.Join(o.allowedMethods, ","),
		allowedHeaders: strings.Join(o.allowedHeaders, ","),
	}

	return m
}

// Handler returns the CORS middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Always set Vary headers
		// see https://github.com/rs/cors/issues/10
		w.Header().Add("Vary", "Origin")

		origin := r.Header.Get("Origin")
		if origin != "" && !m.originAllowed(origin) {
			slog.Warn("blocked by CORS", "origin", origin, "method", r.Method, "path", r.URL.Path)
			m.o.denyCallback(w, r)
			return
		}

		// Preflight requests are answered here and stop the chain,
		// the router never sees OPTIONS requests.
		if r.Method == http.MethodOptions {
			m.handlePreflight(w, origin)
			w.WriteHeader(m.o.preflightStatus)
			return
		}

		m.handleNormal(w, origin)
		next.ServeHTTP(w, r) // execute the next handler
	})
}

// region internal-helpers

// handlePreflight writes the CORS headers for an allowed preflight request.
func (m *Middleware) handlePreflight(w http.ResponseWriter, origin string) {
	w.Header().Add("Vary", "Access-Control-Request-Method, Access-Control-Request-Headers")

	if origin == "" {
		w.Header().Set("Access-Control-Allow-Origin", "*")
	} else {
		w.Header().Set("Access-Control-Allow-Origin", origin) // return original origin
	}
	w.Header().Set("Access-Control-Allow-Methods", m.allowedMethods)
	if m.allowedHeaders != "" {
		w.Header().Set("Access-Control-Allow-Headers", m.allowedHeaders)
	}
	if m.o.allowCredentials {
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
	if m.o.maxAge > 0 {
		w.Header().Set("Access-Control-Max-Age", strconv.Itoa(m.o.maxAge))
	}
}

// handleNormal writes the CORS headers for an allowed cross-origin request.
// Same-origin and non-browser requests without an Origin header get no CORS headers.
func (m *Middleware) handleNormal(w http.ResponseWriter, origin string) {
	if origin == "" {
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", origin) // return original origin
	if len(m.o.exposedHeaders) > 0 {
		w.Header().Set("Access-Control-Expose-Headers", strings.Join(m.o.exposedHeaders, ", "))
	}
	if m.o.allowCredentials {
		w.Header().Set("Access-Control-Allow-Credentials", "true")
	}
}

func (m *Middleware) originAllowed(origin string) bool {
	if m.allOrigins {
		return true // everything is allowed
	}

	// scheme and host are case-insensitive, allowed origins are stored lower-cased
	origin = strings.ToLower(origin)

	// check simple origins
	if slices.Contains(m.o.allowedOrigins, origin) {
		return true
	}

	// check wildcard origins
	for _, allowedOrigin := range m.o.allowedOriginPatterns {
		if allowedOrigin.match(origin) {
			return true
		}
	}

	return false
}

// endregion internal-helpers
