package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/a8m/envsubst"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config is the root configuration of the mail relay. It is populated once at startup.
type Config struct {
	Advanced struct {
		// LogLevel is one of debug, info, warn or error.
		LogLevel string `yaml:"log_level" envconfig:"LOG_LEVEL"`
		// LogJson switches the log output to JSON.
		LogJson bool `yaml:"log_json" envconfig:"LOG_JSON"`
		// StartupTimeout limits the SMTP readiness check that runs at startup.
		StartupTimeout time.Duration `yaml:"startup_timeout" envconfig:"STARTUP_TIMEOUT" validate:"gt=0"`
		// EventQueueSize is the queue size of every message bus subscriber.
		EventQueueSize int `yaml:"event_queue_size" envconfig:"EVENT_QUEUE_SIZE" validate:"min=1"`
	} `yaml:"advanced"`

	Statistics StatisticsConfig `yaml:"statistics"`

	Mail MailConfig `yaml:"mail"`

	Relay RelayConfig `yaml:"relay"`

	Web WebConfig `yaml:"web"`
}

// LogStartupValues logs the non-secret parts of the configuration.
func (c *Config) LogStartupValues() {
	slog.Debug("configuration loaded", "logLevel", c.Advanced.LogLevel)

	slog.Debug("mail configuration",
		"host", c.Mail.Host,
		"port", c.Mail.Port,
		"encryption", c.Mail.Encryption,
		"authType", c.Mail.AuthType,
		"from", c.Mail.Sender(),
		"recipients", c.Mail.Recipients,
		"cc", c.Mail.Cc,
		"bcc", c.Mail.Bcc,
		"strictEmailValidation", c.Relay.StrictEmailValidation)

	slog.Debug("web configuration",
		"listeningAddress", c.Web.ListeningAddress(),
		"allowedOrigins", c.Web.Origins(),
		"requestLogging", c.Web.RequestLogging,
		"metricsEnabled", c.Statistics.Enabled)
}

// Sanitize derives defaults that depend on other values.
func (c *Config) Sanitize() {
	c.Advanced.LogLevel = strings.ToLower(strings.TrimSpace(c.Advanced.LogLevel))
	c.Mail.Sanitize()
	c.Web.Sanitize()
}

// Validate checks the configuration and returns all problems at once.
func (c *Config) Validate() error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(yamlFieldName)

	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("failed to validate configuration: %w", err)
	}

	problems := make([]error, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		// strip the root element from the namespace
		_, name, _ := strings.Cut(fieldErr.Namespace(), ".")
		problems = append(problems, fmt.Errorf("%s: failed on %s", name, fieldErr.Tag()))
	}

	return fmt.Errorf("invalid configuration: %w", errors.Join(problems...))
}

func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Advanced.LogLevel = "info"
	cfg.Advanced.StartupTimeout = 30 * time.Second
	cfg.Advanced.EventQueueSize = 100

	cfg.Statistics = StatisticsConfig{
		Enabled:          false,
		ListeningAddress: ":8787",
	}

	cfg.Mail = MailConfig{
		Port:           465,
		Secure:         true,
		CertValidation: true,
		AuthType:       MailAuthPlain,
		ConnectTimeout: 30 * time.Second,
		SendTimeout:    30 * time.Second,
		FromName:       "5D Tech Website",
	}

	cfg.Relay = RelayConfig{
		StrictEmailValidation: false,
	}

	cfg.Web = WebConfig{
		RequestLogging:   false,
		Port:             5000,
		FrontendUrlLocal: "http://localhost:5173",
		FrontendUrlProd:  "https://5dtech.netlify.app",
		AllowedOrigins:   []string{"http://localhost:8080"},
		MaxBodyBytes:     1 << 20,
		ReadyCacheTTL:    30 * time.Second,
	}

	return cfg
}

// GetConfig returns the configuration. Values are layered: built-in defaults, the optional YAML
// file (environment references like ${EMAIL_HOST} are expanded) and finally the environment.
// The result is sanitized and validated.
func GetConfig() (*Config, error) {
	cfg := defaultConfig()

	cfgFileName := "config.yml"
	if envCfgFileName := os.Getenv("MAIL_RELAY_CONFIG"); envCfgFileName != "" {
		cfgFileName = envCfgFileName
	}

	if err := loadConfigFile(cfg, cfgFileName); err != nil {
		return nil, fmt.Errorf("failed to load config from yaml: %w", err)
	}

	if err := loadConfigEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from environment: %w", err)
	}

	cfg.Sanitize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func loadConfigFile(cfg any, filename string) error {
	data, err := envsubst.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("config file not found, using defaults and environment", "file", filename)
			return nil
		}
		return fmt.Errorf("failed to read %s: %w", filename, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to decode %s: %w", filename, err)
	}

	return nil
}

func loadConfigEnv(cfg any) error {
	return envconfig.Process("", cfg)
}

func yamlFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}
