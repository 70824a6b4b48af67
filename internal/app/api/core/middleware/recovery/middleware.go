package recovery

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"runtime/debug"
	"strings"
	"syscall"
)

// Middleware is a type that creates a new recovery middleware. The recovery middleware
// recovers from panics and returns an Internal Server Error response. This middleware should
// be the first middleware in the middleware chain, so that it can recover from panics in other
// middlewares.
type Middleware struct {
	o options
}

// New returns a new recovery middleware with the provided options.
func New(opts ...Option) *Middleware {
	o := newOptions(opts...)

	m := &Middleware{
		o: o,
	}

	return m
}

// Handler returns the recovery middleware handler.
func (m *Middleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec) // let net/http abort the response
			}

			stack := debug.Stack()

			realErr, ok := rec.(error)
			if !ok {
				realErr = fmt.Errorf("%v", rec)
			}

			// Check for a broken connection, as it is not really a
			// condition that warrants a panic stack trace.
			brokenPipe := isBrokenPipeError(realErr)

			if m.o.logCallback != nil {
				m.o.logCallback(realErr, stack, brokenPipe)
			}

			switch {
			case brokenPipe && m.o.brokenPipeCallback != nil:
				m.o.brokenPipeCallback(realErr, stack, w, r)
			case !brokenPipe && m.o.errCallback != nil:
				m.o.errCallback(realErr, stack, w, r)
			default:
				// no callback set, simply recover and do nothing...
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// getDefaultErrCallback returns the default error callback. It writes a JSON response in the
// format of all other API errors with an Internal Server Error status code. If the exposeStackTrace
// option is enabled, the stack trace is included in the response.
func getDefaultErrCallback(o options) func(err error, stack []byte, w http.ResponseWriter, r *http.Request) {
	return func(err error, stack []byte, w http.ResponseWriter, r *http.Request) {
		responseBody := map[string]any{
			"success": false,
			"error":   http.StatusText(http.StatusInternalServerError),
		}
		if o.exposeStackTrace && len(stack) > 0 {
			responseBody["stack"] = string(stack)
		}

		jsonBody, _ := json.Marshal(responseBody)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write(jsonBody)
	}
}

// getDefaultLogCallback returns the default log callback. It logs the error and stack trace
// in Error level.
func getDefaultLogCallback(o options) func(error, []byte, bool) {
	return func(err error, stack []byte, brokenPipe bool) {
		if brokenPipe {
			return // by default, ignore broken pipe errors
		}

		logger := o.logger
		if logger == nil {
			logger = slog.Default()
		}

		message := "recovered from panic: " + err.Error()
		if o.defaultLogPrefix != "" {
			message = o.defaultLogPrefix + " " + message
		}
		logger.Error(message, "stack", string(stack))
	}
}

func isBrokenPipeError(err error) bool {
	if errors.Is(err, syscall.EPIPE) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	var syscallErr *os.SyscallError
	if errors.As(err, &syscallErr) {
		errMsg := strings.ToLower(syscallErr.Err.Error())
		if strings.Contains(errMsg, "broken pipe") ||
			strings.Contains(errMsg, "connection reset by peer") {
			return true
		}
	}

	return false
}
