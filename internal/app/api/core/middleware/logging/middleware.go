package logging

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"
)

// Middleware is a type that creates a new logging middleware. The logging middleware
// logs one structured record per request.
type Middleware struct {
	o options
}

// New returns a new logging middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	m := &Middleware{
		o: o,
	}

	return m
}

// Handler returns the logging middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := newWriterWrapper(w)
		start := time.Now()
		defer func() {
			level := m.levelFor(ww.StatusCode)
			logger := m.logger()
			if !logger.Enabled(r.Context(), level) {
				return
			}

			logger.LogAttrs(context.Background(), level, m.addPrefix(r.Method+" "+r.URL.Path),
				m.extractAttributes(r, start, ww)...)
		}()

		next.ServeHTTP(ww, r)
	})
}

func (m *Middleware) extractAttributes(r *http.Request, start time.Time, ww *writerWrapper) []slog.Attr {
	attrs := []slog.Attr{
		slog.String("protocol", r.Proto),
		slog.Int("status", ww.StatusCode),
		slog.Int64("dataLength", ww.WrittenBytes),
		slog.Duration("duration", time.Since(start)),
		slog.String("clientIP", clientIP(r)),
		slog.String("userAgent", r.UserAgent()),
	}

	if origin := r.Header.Get("Origin"); origin != "" {
		attrs = append(attrs, slog.String("origin", origin))
	}
	if m.o.headerRequestIdKey != "" {
		attrs = append(attrs, slog.String("headerRequestId", r.Header.Get(m.o.headerRequestIdKey)))
	}
	if m.o.contextRequestIdKey != nil {
		reqId, _ := r.Context().Value(m.o.contextRequestIdKey).(string)
		attrs = append(attrs, slog.String("contextRequestId", reqId))
	}

	return attrs
}

// levelFor raises the log level for failed requests if status based levels are enabled.
func (m *Middleware) levelFor(status int) slog.Level {
	if !m.o.statusLevels {
		return m.o.logLevel
	}

	switch {
	case status >= http.StatusInternalServerError:
		return max(m.o.logLevel, slog.LevelError)
	case status >= http.StatusBadRequest:
		return max(m.o.logLevel, slog.LevelWarn)
	default:
		return m.o.logLevel
	}
}

func (m *Middleware) logger() *slog.Logger {
	if m.o.logger != nil {
		return m.o.logger
	}
	return slog.Default()
}

func (m *Middleware) addPrefix(message string) string {
	if m.o.prefix != "" {
		return m.o.prefix + " " + message
	}
	return message
}

// clientIP returns the first X-Forwarded-For entry or the remote address without the port number.
func clientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		first, _, _ := strings.Cut(forwarded, ",")
		return strings.TrimSpace(first)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
