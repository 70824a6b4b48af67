package tracing

import "github.com/google/uuid"

// options is a struct that contains options for the tracing middleware.
// It uses the functional options pattern for flexible configuration.
type options struct {
	upstreamReqIdHeader string
	headerIdentifier    string
	contextIdentifier   any
	generator           func() string
}

// Option is a type that is used to set options for the tracing middleware.
// It implements the functional options pattern.
type Option func(*options)

// WithIdGenerator sets the function that generates new request ids.
// By default, random UUIDs (version 4) are used. If the generator is nil, no request id will be generated.
func WithIdGenerator(generator func() string) Option {
	return func(o *options) {
		o.generator = generator
	}
}

// WithHeaderIdentifier specifies the header name for the request id that is added to the response headers.
// If the identifier is empty, the request id will not be added to the response headers.
func WithHeaderIdentifier(identifier string) Option {
	return func(o *options) {
		o.headerIdentifier = identifier
	}
}

// WithUpstreamHeader sets the upstream header name, that should be used to fetch the request id.
// If no valid upstream header is found, a new id will be generated.
func WithUpstreamHeader(header string) Option {
	return func(o *options) {
		o.upstreamReqIdHeader = header
	}
}

// WithContextIdentifier specifies the value-key for the request id that is added to the request context.
// If the identifier is nil, the request id will not be added to the context.
// If the request id is added to the context, it can be retrieved with:
// `id := r.Context().Value(THE-IDENTIFIER).(string)`
func WithContextIdentifier(identifier any) Option {
	return func(o *options) {
		o.contextIdentifier = identifier
	}
}

// newOptions is a function that returns a new options struct with sane default values.
func newOptions(opts ...Option) options {
	o := options{
		headerIdentifier:  "X-Request-Id",
		contextIdentifier: DefaultContextKey,
		generator:         uuid.NewString,
	}

	for _, opt := range opts {
		opt(&o)
	}

	return o
}
