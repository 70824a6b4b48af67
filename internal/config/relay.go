package config

// RelayConfig contains the behaviour switches of the contact form relay.
type RelayConfig struct {
	// StrictEmailValidation additionally checks the syntax of the visitor's email address.
	// By default only the presence of required fields is checked, the frontend validates the format.
	StrictEmailValidation bool `yaml:"strict_email_validation" envconfig:"STRICT_EMAIL_VALIDATION"`
	// SubjectPrefix is prepended to the subject of every relayed mail.
	SubjectPrefix string `yaml:"subject_prefix" envconfig:"EMAIL_SUBJECT_PREFIX"`
}

// StatisticsConfig contains the configuration of the prometheus metrics endpoint.
type StatisticsConfig struct {
	// Enabled starts the metrics web server.
	Enabled bool `yaml:"enabled" envconfig:"METRICS_ENABLED"`
	// ListeningAddress is the address of the metrics web server.
	ListeningAddress string `yaml:"listening_address" envconfig:"METRICS_ADDRESS" validate:"required_if=Enabled true"`
}
