package recovery

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"syscall"
	"testing"
)

func TestMiddleware(t *testing.T) {
	tests := []struct {
		name           string
		options        []Option
		panicSimulator func()
		expectedStatus int
		expectedBody   string
		expectStack    bool
	}{
		{
			name:    "default behavior",
			options: []Option{},
			panicSimulator: func() {
				panic(errors.New("test panic"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Internal Server Error","success":false}`,
		},
		{
			name: "custom error callback",
			options: []Option{
				WithErrCallback(func(err error, stack []byte, w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusTeapot)
					_, _ = w.Write([]byte("custom error"))
				}),
			},
			panicSimulator: func() {
				panic(errors.New("test panic"))
			},
			expectedStatus: http.StatusTeapot,
			expectedBody:   "custom error",
		},
		{
			name: "broken pipe error",
			options: []Option{
				WithBrokenPipeCallback(func(err error, stack []byte, w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(http.StatusServiceUnavailable)
					_, _ = w.Write([]byte("broken pipe"))
				}),
			},
			panicSimulator: func() {
				panic(&os.SyscallError{Syscall: "write", Err: syscall.EPIPE})
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedBody:   "broken pipe",
		},
		{
			name:    "default callback broken pipe error",
			options: nil,
			panicSimulator: func() {
				panic(&os.SyscallError{Err: errors.New("broken pipe")})
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "",
		},
		{
			name:    "default callback non-error value",
			options: nil,
			panicSimulator: func() {
				panic("something went wrong")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"error":"Internal Server Error","success":false}`,
		},
		{
			name: "default callback with stack trace",
			options: []Option{
				WithExposeStackTrace(true),
			},
			panicSimulator: func() {
				panic("something went wrong")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "\"stack\":",
			expectStack:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := append([]Option{WithLogger(slog.New(slog.DiscardHandler))}, tt.options...)
			handler := New(opts...).Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				tt.panicSimulator()
			}))

			req := httptest.NewRequest(http.MethodPost, "/send-email", nil)
			rr := httptest.NewRecorder()

			handler.ServeHTTP(rr, req)

			if rr.Code != tt.expectedStatus {
				t.Errorf("expected status %v, got %v", tt.expectedStatus, rr.Code)
			}
			if !tt.expectStack && rr.Body.String() != tt.expectedBody {
				t.Errorf("expected body %v, got %v", tt.expectedBody, rr.Body.String())
			}
			if tt.expectStack && !strings.Contains(rr.Body.String(), tt.expectedBody) {
				t.Errorf("expected body to contain %v, got %v", tt.expectedBody, rr.Body.String())
			}
		})
	}
}

func TestMiddleware_AbortHandler(t *testing.T) {
	handler := New().Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))

	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Errorf("expected http.ErrAbortHandler to be re-panicked, got %v", rec)
		}
	}()

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestMiddleware_DefaultLogCallback(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, nil))

	handler := New(WithLogger(logger), WithDefaultLogPrefix("[api]")).Handler(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if !strings.Contains(buf.String(), "[api] recovered from panic: boom") {
		t.Errorf("expected panic to be logged, got %s", buf.String())
	}
	if !strings.Contains(buf.String(), "stack=") {
		t.Errorf("expected stack to be logged, got %s", buf.String())
	}
}

func TestIsBrokenPipeError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected bool
	}{
		{
			name:     "broken pipe error",
			err:      &os.SyscallError{Err: errors.New("broken pipe")},
			expected: true,
		},
		{
			name:     "connection reset by peer error",
			err:      &os.SyscallError{Err: errors.New("connection reset by peer")},
			expected: true,
		},
		{
			name:     "wrapped errno",
			err:      &os.SyscallError{Syscall: "write", Err: syscall.ECONNRESET},
			expected: true,
		},
		{
			name:     "other error",
			err:      errors.New("other error"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := isBrokenPipeError(tt.err)
			if result != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, result)
			}
		})
	}
}
