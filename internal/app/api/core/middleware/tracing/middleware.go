package tracing

import (
	"context"
	"net/http"
)

type contextKey string

// DefaultContextKey is the context key under which the request id is stored by default.
const DefaultContextKey contextKey = "RequestId"

// maxUpstreamIdLength limits request ids that are accepted from upstream proxies.
const maxUpstreamIdLength = 64

// Middleware is a type that creates a new tracing middleware. The tracing middleware
// can be used to trace requests based on a request ID header or parameter.
type Middleware struct {
	o options
}

// New returns a new tracing middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	m := &Middleware{
		o: o,
	}

	return m
}

// Handler returns the tracing middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqId string

		// read upstream header und re-use it
		if m.o.upstreamReqIdHeader != "" {
			reqId = r.Header.Get(m.o.upstreamReqIdHeader)
			if !validUpstreamId(reqId) {
				reqId = ""
			}
		}

		// generate new id
		if reqId == "" && m.o.generator != nil {
			reqId = m.o.generator()
		}

		// set response header
		if m.o.headerIdentifier != "" && reqId != "" {
			w.Header().Set(m.o.headerIdentifier, reqId)
		}

		// set context value
		if m.o.contextIdentifier != nil {
			ctx := context.WithValue(r.Context(), m.o.contextIdentifier, reqId)
			r = r.WithContext(ctx)
		}

		next.ServeHTTP(w, r) // execute the next handler
	})
}

// RequestId returns the request id stored under DefaultContextKey or an empty string.
func RequestId(ctx context.Context) string {
	reqId, _ := ctx.Value(DefaultContextKey).(string)
	return reqId
}

// region internal-helpers

// validUpstreamId accepts short ids of printable ASCII characters, so that
// upstream values cannot inject line breaks into logs or headers.
func validUpstreamId(id string) bool {
	if id == "" || len(id) > maxUpstreamIdLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}

// endregion internal-helpers
