package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

const defaultPort = "5000"

// main checks the health endpoint of a running mail relay and exits with code 0 on a 2xx response,
// 1 otherwise. The URL can be passed as first argument. Without argument, the relay on the
// local PORT (default 5000) is checked.
func main() {
	os.Exit(checkWebEndpointFromArgs(os.Args[1:], os.Getenv))
}

func checkWebEndpointFromArgs(args []string, getenv func(string) string) int {
	url := defaultHealthUrl(getenv)
	if len(args) > 0 && strings.TrimSpace(args[0]) != "" {
		url = strings.TrimSpace(args[0])
	}

	if err := checkWebEndpoint(url, 2*time.Second); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func defaultHealthUrl(getenv func(string) string) string {
	port := getenv("PORT")
	if port == "" {
		port = defaultPort
	}
	return "http://127.0.0.1:" + port + "/health"
}

func checkWebEndpoint(url string, timeout time.Duration) error {
	client := &http.Client{
		Timeout: timeout,
	}

	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("health check failed: unexpected status %d", resp.StatusCode)
	}
	return nil
}
