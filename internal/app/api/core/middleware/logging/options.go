package logging

import "log/slog"

// options is a struct that contains options for the logging middleware.
// It uses the functional options pattern for flexible configuration.
type options struct {
	logLevel     slog.Level
	statusLevels bool
	logger       *slog.Logger
	prefix       string

	contextRequestIdKey any
	headerRequestIdKey  string
}

// Option is a type that is used to set options for the logging middleware.
// It implements the functional options pattern.
type Option func(*options)

// WithLevel is a method that sets the log level for the logging middleware.
// The default value is slog.LevelInfo.
func WithLevel(level slog.Level) Option {
	return func(o *options) {
		o.logLevel = level
	}
}

// WithStatusLevels enables status based log levels: client errors (4xx) are logged at least
// at warn level, server errors (5xx) at least at error level.
// The default value is false.
func WithStatusLevels(enabled bool) Option {
	return func(o *options) {
		o.statusLevels = enabled
	}
}

// WithPrefix is a method that sets the prefix for the logging middleware.
// If a prefix is set, it will be prepended to each log message. A space will
// be added between the prefix and the log message.
// The default value is an empty string.
func WithPrefix(prefix string) Option {
	return func(o *options) {
		o.prefix = prefix
	}
}

// WithContextRequestIdKey is a method that sets the key for the request ID in the
// request context. If a key is set, the logging middleware will use this key to
// retrieve the request ID from the request context.
// The default value is nil, meaning the request ID will not be logged.
func WithContextRequestIdKey(key any) Option {
	return func(o *options) {
		o.contextRequestIdKey = key
	}
}

// WithHeaderRequestIdKey is a method that sets the key for the request ID in the
// request headers. If a key is set, the logging middleware will use this key to
// retrieve the request ID from the request headers.
// The default value is an empty string, meaning the request ID will not be logged.
func WithHeaderRequestIdKey(key string) Option {
	return func(o *options) {
		o.headerRequestIdKey = key
	}
}

// WithLogger is a method that sets the logger for the logging middleware.
// The default logger is slog.Default() at the time of the request.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// newOptions is a function that returns a new options struct with sane default values.
func newOptions(opts ...Option) options {
	o := options{
		logLevel:            slog.LevelInfo,
		statusLevels:        false,
		logger:              nil,
		prefix:              "",
		contextRequestIdKey: nil,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
