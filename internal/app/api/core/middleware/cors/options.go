package cors

import (
	"encoding/json"
	"net/http"
	"strings"
)

// options is a struct that contains options for the CORS middleware.
// It uses the functional options pattern for flexible configuration.
type options struct {
	allowedOrigins        []string   // origins without wildcards
	allowedOriginPatterns []wildcard // origins with wildcards
	allowedMethods        []string
	allowedHeaders        []string
	exposedHeaders        []string // these are in addition to the CORS-safelisted response headers
	allowCredentials      bool
	maxAge                int
	preflightStatus       int
	denyCallback          func(w http.ResponseWriter, r *http.Request)
}

// Option is a type that is used to set options for the CORS middleware.
// It implements the functional options pattern.
type Option func(*options)

// WithAllowedOrigins sets the allow-list of origins. Requests that carry an Origin header
// which is not part of the list are rejected. Requests without an Origin header are always allowed.
// If the special "*" value is present in the list, all origins will be allowed.
// An origin may contain one wildcard (*) to replace 0 or more characters (i.e.: https://*.domain.com).
// By default, no cross-origin caller is allowed.
func WithAllowedOrigins(origins ...string) Option {
	return func(o *options) {
		o.allowedOrigins = nil
		o.allowedOriginPatterns = nil

		for _, origin := range origins {
			origin = strings.ToLower(strings.TrimSpace(origin))
			switch {
			case origin == "":
				continue
			case len(origin) > 1 && strings.Contains(origin, "*"):
				o.allowedOriginPatterns = append(o.allowedOriginPatterns, newWildcard(origin))
			default:
				o.allowedOrigins = append(o.allowedOrigins, origin)
			}
		}
	}
}

// WithAllowedMethods sets the methods that are announced in preflight responses.
// By default, GET, POST and OPTIONS are announced.
func WithAllowedMethods(methods ...string) Option {
	return func(o *options) {
		o.allowedMethods = methods
	}
}

// WithAllowedHeaders sets the request headers that are announced in preflight responses.
// By default, Content-Type and Authorization are announced.
func WithAllowedHeaders(headers ...string) Option {
	return func(o *options) {
		o.allowedHeaders = nil

		for _, header := range headers {
			o.allowedHeaders = append(o.allowedHeaders, http.CanonicalHeaderKey(header))
		}
	}
}

// WithExposedHeaders sets the exposed headers for the CORS middleware.
// By default, no headers are exposed.
func WithExposedHeaders(headers ...string) Option {
	return func(o *options) {
		o.exposedHeaders = nil

		for _, header := range headers {
			o.exposedHeaders = append(o.exposedHeaders, http.CanonicalHeaderKey(header))
		}
	}
}

// WithAllowCredentials sets the allow credentials option for the CORS middleware.
// This setting indicates whether the request can include user credentials like
// cookies, HTTP authentication or client side SSL certificates.
// By default, credentials are allowed.
func WithAllowCredentials(allow bool) Option {
	return func(o *options) {
		o.allowCredentials = allow
	}
}

// WithMaxAge sets the max age (in seconds) of preflight responses.
// A value of 0 means that no Access-Control-Max-Age header is sent back.
// By default, no max age is sent.
func WithMaxAge(age int) Option {
	return func(o *options) {
		o.maxAge = age
	}
}

// WithPreflightStatus sets the status code of successful preflight responses. The default is 200.
func WithPreflightStatus(status int) Option {
	return func(o *options) {
		o.preflightStatus = status
	}
}

// WithDenyCallback sets the function that writes the response for requests from disallowed origins.
// This function completely overrides the default behavior, which writes a 403 JSON response.
func WithDenyCallback(fn func(w http.ResponseWriter, r *http.Request)) Option {
	return func(o *options) {
		o.denyCallback = fn
	}
}

// defaultDenyCallback writes a 403 Forbidden JSON response.
func defaultDenyCallback(w http.ResponseWriter, _ *http.Request) {
	jsonBody, _ := json.Marshal(map[string]any{
		"success": false,
		"error":   "Not allowed by CORS",
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write(jsonBody)
}

// newOptions is a function that returns a new options struct with sane default values.
func newOptions(opts ...Option) options {
	o := options{
		allowedOrigins:   nil,
		allowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		allowedHeaders:   []string{"Content-Type", "Authorization"},
		exposedHeaders:   nil,
		allowCredentials: true,
		maxAge:           0,
		preflightStatus:  http.StatusOK,
		denyCallback:     nil,
	}

	for _, opt := range opts {
		opt(&o)
	}

	if o.denyCallback == nil {
		o.denyCallback = defaultDenyCallback
	}

	return o
}
