package config

import (
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/fivedtech/mail-relay/internal"
)

// WebConfig contains the configuration for the web server.
type WebConfig struct {
	// RequestLogging enables logging of all HTTP requests.
	RequestLogging bool `yaml:"request_logging" envconfig:"REQUEST_LOGGING"`
	// ExposeHostInfo sets whether the host information should be exposed in a response header.
	ExposeHostInfo bool `yaml:"expose_host_info" envconfig:"EXPOSE_HOST_INFO"`
	// Host is the address the web server binds to. Empty means all interfaces.
	Host string `yaml:"host" envconfig:"HOST"`
	// Port is the listening port of the web server.
	Port int `yaml:"port" envconfig:"PORT" validate:"min=1,max=65535"`
	// FrontendUrlLocal is the origin of the frontend development server.
	FrontendUrlLocal string `yaml:"frontend_url_local" envconfig:"FRONTEND_URL_LOCAL"`
	// FrontendUrlProd is the origin of the deployed frontend.
	FrontendUrlProd string `yaml:"frontend_url_prod" envconfig:"FRONTEND_URL_PROD"`
	// AllowedOrigins are additional origins that may call the relay cross-origin.
	// An origin may contain one wildcard, e.g. https://*.netlify.app.
	AllowedOrigins []string `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	// CorsMaxAge is the time in seconds browsers may cache a preflight response. 0 disables the header.
	CorsMaxAge int `yaml:"cors_max_age" envconfig:"CORS_MAX_AGE" validate:"min=0"`
	// ReadyCacheTTL is the time a result of the SMTP readiness check is reused by the readiness endpoint.
	ReadyCacheTTL time.Duration `yaml:"ready_cache_ttl" envconfig:"READY_CACHE_TTL" validate:"gte=0"`
	// MaxBodyBytes limits the size of a contact form request body.
	MaxBodyBytes int64 `yaml:"max_body_bytes" envconfig:"MAX_BODY_BYTES" validate:"min=1"`
	// CertFile is the path to the TLS certificate file.
	CertFile string `yaml:"cert_file" envconfig:"CERT_FILE"`
	// KeyFile is the path to the TLS certificate key file.
	KeyFile string `yaml:"key_file" envconfig:"KEY_FILE"`
}

func (c *WebConfig) Sanitize() {
	c.FrontendUrlLocal = strings.TrimRight(strings.TrimSpace(c.FrontendUrlLocal), "/")
	c.FrontendUrlProd = strings.TrimRight(strings.TrimSpace(c.FrontendUrlProd), "/")

	origins := make([]string, 0, len(c.AllowedOrigins))
	for _, origin := range c.AllowedOrigins {
		origin = strings.TrimRight(strings.TrimSpace(origin), "/")
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	c.AllowedOrigins = origins
}

// Origins returns the complete allow-list of cross-origin callers. Blank entries are skipped.
func (c *WebConfig) Origins() []string {
	origins := make([]string, 0, len(c.AllowedOrigins)+2)
	if c.FrontendUrlLocal != "" {
		origins = append(origins, c.FrontendUrlLocal)
	}
	origins = append(origins, c.AllowedOrigins...)
	if c.FrontendUrlProd != "" {
		origins = append(origins, c.FrontendUrlProd)
	}

	return internal.UniqueStringSlice(origins)
}

// ListeningAddress returns the host:port combination the web server listens on.
func (c *WebConfig) ListeningAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
