package internal

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// SignalAwareContext returns a context that gets closed once a given signal is retrieved.
// By default, the following signals are handled: syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP
func SignalAwareContext(ctx context.Context, sig ...os.Signal) context.Context {
	c := make(chan os.Signal, 1)
	if len(sig) == 0 {
		sig = []os.Signal{syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP}
	}
	signal.Notify(c, sig...)
	signalCtx, cancel := context.WithCancel(ctx)

	go func() {
		select {
		case <-ctx.Done():
			// normal shutdown
		case s := <-c:
			slog.Debug("received signal", "signal", s.String())
			cancel()
		}

		signal.Stop(c)
	}()

	return signalCtx
}

// AssertNoError panics if the given error is not nil.
func AssertNoError(err error) {
	if err != nil {
		panic(err)
	}
}

// UniqueStringSlice removes duplicates in the given string slice, the order of the first occurrence is kept.
func UniqueStringSlice(slice []string) []string {
	keys := make(map[string]struct{}, len(slice))
	uniqueSlice := make([]string, 0, len(slice))
	for _, entry := range slice {
		if _, exists := keys[entry]; !exists {
			keys[entry] = struct{}{}
			uniqueSlice = append(uniqueSlice, entry)
		}
	}
	return uniqueSlice
}
