package config

import (
	"net/mail"
	"strings"
	"time"
)

type MailEncryption string

const (
	MailEncryptionNone     MailEncryption = "none"
	MailEncryptionTLS      MailEncryption = "tls"
	MailEncryptionStartTLS MailEncryption = "starttls"
)

type MailAuthType string

const (
	MailAuthNone    MailAuthType = "none"
	MailAuthPlain   MailAuthType = "plain"
	MailAuthLogin   MailAuthType = "login"
	MailAuthCramMD5 MailAuthType = "crammd5"
)

// MailConfig contains the configuration of the outbound SMTP transport.
type MailConfig struct {
	// Host is the hostname or IP address of the SMTP server.
	Host string `yaml:"host" envconfig:"EMAIL_HOST" validate:"required"`
	// Port is the port of the SMTP server.
	Port int `yaml:"port" envconfig:"EMAIL_PORT" validate:"min=1,max=65535"`
	// Secure selects implicit TLS (true) or STARTTLS (false) if Encryption is not set explicitly.
	Secure bool `yaml:"secure" envconfig:"EMAIL_SECURE"`
	// Encryption is the SMTP encryption type, one of none, tls or starttls.
	Encryption MailEncryption `yaml:"encryption" envconfig:"EMAIL_ENCRYPTION" validate:"oneof=none tls starttls"`
	// CertValidation enables the validation of the SMTP server certificate.
	CertValidation bool `yaml:"cert_validation" envconfig:"EMAIL_CERT_VALIDATION"`
	// Username is used for SMTP authentication.
	Username string `yaml:"username" envconfig:"EMAIL_USER" validate:"required_unless=AuthType none"`
	// Password is used for SMTP authentication.
	Password string `yaml:"password" envconfig:"EMAIL_PASS" validate:"required_unless=AuthType none"`
	// AuthType is the SMTP authentication type, one of none, plain, login or crammd5.
	AuthType MailAuthType `yaml:"auth_type" envconfig:"EMAIL_AUTHTYPE" validate:"oneof=none plain login crammd5"`
	// ConnectTimeout limits the time to establish the SMTP connection.
	ConnectTimeout time.Duration `yaml:"connect_timeout" envconfig:"EMAIL_CONNECT_TIMEOUT" validate:"gt=0"`
	// SendTimeout limits the time to transmit a single message.
	SendTimeout time.Duration `yaml:"send_timeout" envconfig:"EMAIL_SEND_TIMEOUT" validate:"gt=0"`

	// From is the fixed sender address of all relayed mails. Defaults to Username.
	From string `yaml:"from" envconfig:"EMAIL_FROM" validate:"required,email"`
	// FromName is the display name of the sender.
	FromName string `yaml:"from_name" envconfig:"EMAIL_FROM_NAME"`
	// Recipients receive every contact form submission. Defaults to From.
	Recipients []string `yaml:"recipients" envconfig:"EMAIL_TO" validate:"required,min=1,dive,email"`
	// Cc receives a visible copy of every relayed mail.
	Cc []string `yaml:"cc" envconfig:"EMAIL_CC" validate:"omitempty,dive,email"`
	// Bcc receives a hidden copy of every relayed mail, e.g. a CRM inbox.
	Bcc []string `yaml:"bcc" envconfig:"EMAIL_BCC" validate:"omitempty,dive,email"`
}

// Sanitize fills derived values that were not configured explicitly.
func (c *MailConfig) Sanitize() {
	if c.Encryption == "" {
		if c.Secure {
			c.Encryption = MailEncryptionTLS
		} else {
			c.Encryption = MailEncryptionStartTLS
		}
	}
	if c.AuthType == "" {
		c.AuthType = MailAuthPlain
	}
	if c.From == "" {
		c.From = c.Username
	}

	c.Recipients = withoutBlanks(c.Recipients)
	if len(c.Recipients) == 0 && c.From != "" {
		c.Recipients = append(c.Recipients, c.From)
	}
	c.Cc = withoutBlanks(c.Cc)
	c.Bcc = withoutBlanks(c.Bcc)
}

func withoutBlanks(addresses []string) []string {
	result := make([]string, 0, len(addresses))
	for _, address := range addresses {
		if address = strings.TrimSpace(address); address != "" {
			result = append(result, address)
		}
	}
	return result
}

// Sender returns the formatted sender identity, e.g. "5D Tech Website" <mail@example.com>.
func (c *MailConfig) Sender() string {
	if c.FromName == "" {
		return c.From
	}

	addr := mail.Address{Name: c.FromName, Address: c.From}
	return addr.String()
}
