package logging

import (
	"log/slog"
	"testing"
)

func TestWithLevel(t *testing.T) {
	o := newOptions(WithLevel(slog.LevelWarn))
	if o.logLevel != slog.LevelWarn {
		t.Errorf("expected logLevel to be %v, got %v", slog.LevelWarn, o.logLevel)
	}
}

func TestWithStatusLevels(t *testing.T) {
	o := newOptions(WithStatusLevels(true))
	if !o.statusLevels {
		t.Errorf("expected statusLevels to be true")
	}
}

func TestWithPrefix(t *testing.T) {
	o := newOptions(WithPrefix("PREFIX"))
	if o.prefix != "PREFIX" {
		t.Errorf("expected prefix to be 'PREFIX', got %s", o.prefix)
	}
}

func TestWithContextRequestIdKey(t *testing.T) {
	o := newOptions(WithContextRequestIdKey("RequestId"))
	if o.contextRequestIdKey != "RequestId" {
		t.Errorf("expected contextRequestIdKey to be 'RequestId', got %v", o.contextRequestIdKey)
	}
}

func TestWithHeaderRequestIdKey(t *testing.T) {
	o := newOptions(WithHeaderRequestIdKey("X-Request-Id"))
	if o.headerRequestIdKey != "X-Request-Id" {
		t.Errorf("expected headerRequestIdKey to be 'X-Request-Id', got %s", o.headerRequestIdKey)
	}
}

func TestWithLogger(t *testing.T) {
	logger := slog.Default()
	o := newOptions(WithLogger(logger))
	if o.logger != logger {
		t.Errorf("expected logger to be set")
	}
}

func TestNewOptionsDefaults(t *testing.T) {
	o := newOptions()

	if o.logLevel != slog.LevelInfo {
		t.Errorf("expected default logLevel to be %v, got %v", slog.LevelInfo, o.logLevel)
	}
	if o.statusLevels {
		t.Errorf("expected statusLevels to be false")
	}
	if o.logger != nil {
		t.Errorf("expected logger to be nil")
	}
	if o.prefix != "" {
		t.Errorf("expected prefix to be empty, got %s", o.prefix)
	}
	if o.contextRequestIdKey != nil {
		t.Errorf("expected contextRequestIdKey to be nil, got %v", o.contextRequestIdKey)
	}
}
