package adapters

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"slices"
	"time"

	mail "github.com/xhit/go-simple-mail/v2"

	"github.com/fivedtech/mail-relay/internal"
	"github.com/fivedtech/mail-relay/internal/config"
	"github.com/fivedtech/mail-relay/internal/domain"
)

type MailRepo struct {
	cfg *config.MailConfig
}

// NewSmtpMailRepo creates a new MailRepo instance.
func NewSmtpMailRepo(cfg config.MailConfig) MailRepo {
	return MailRepo{cfg: &cfg}
}

// Send sends a mail using SMTP. A new connection is established for every message.
func (r MailRepo) Send(ctx context.Context, subject, body string, to []string, options *domain.MailOptions) error {
	if options == nil {
		options = &domain.MailOptions{}
	}
	r.setDefaultOptions(r.cfg.Sender(), options)

	if len(to) == 0 {
		return errors.New("missing email recipient")
	}

	uniqueTo := internal.UniqueStringSlice(to)
	email := mail.NewMSG()
	email.SetFrom(r.cfg.Sender()).
		AddTo(uniqueTo...).
		SetReplyTo(options.ReplyTo).
		SetSubject(subject).
		SetBody(mail.TextPlain, body)

	// the underlying mail library does not allow the same address to appear in TO, CC and BCC
	var cc []string
	if len(options.Cc) > 0 {
		cc = RemoveDuplicates(internal.UniqueStringSlice(options.Cc), uniqueTo)
		email.AddCc(cc...)
	}
	if len(options.Bcc) > 0 {
		bcc := RemoveDuplicates(internal.UniqueStringSlice(options.Bcc), uniqueTo)
		bcc = RemoveDuplicates(bcc, cc)
		email.AddBcc(bcc...)
	}
	if options.HtmlBody != "" {
		email.AddAlternative(mail.TextHTML, options.HtmlBody)
	}
	for name, value := range options.Headers {
		email.AddHeader(name, value)
	}

	if email.Error != nil {
		return fmt.Errorf("failed to build email: %w", email.Error)
	}

	client, err := r.connect(ctx)
	if err != nil {
		return err
	}

	// the client is closed by the library once the message was sent (keep-alive is disabled)
	err = email.Send(client)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// Verify connects and authenticates to the SMTP server and closes the connection again.
func (r MailRepo) Verify(ctx context.Context) error {
	client, err := r.connect(ctx)
	if err != nil {
		return err
	}

	if err := client.Close(); err != nil {
		return fmt.Errorf("failed to close SMTP connection: %w", err)
	}

	return nil
}

func (r MailRepo) connect(ctx context.Context) (*mail.SMTPClient, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	srv := r.getMailServer()
	if deadline, ok := ctx.Deadline(); ok {
		remaining := time.Until(deadline)
		srv.ConnectTimeout = min(srv.ConnectTimeout, remaining)
		srv.SendTimeout = min(srv.SendTimeout, remaining)
	}

	client, err := srv.Connect()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to SMTP server: %w", err)
	}

	return client, nil
}

func (r MailRepo) setDefaultOptions(sender string, options *domain.MailOptions) {
	if options.ReplyTo == "" {
		options.ReplyTo = sender
	}
}

func (r MailRepo) getMailServer() *mail.SMTPServer {
	srv := mail.NewSMTPClient()

	srv.ConnectTimeout = r.cfg.ConnectTimeout
	srv.SendTimeout = r.cfg.SendTimeout
	srv.KeepAlive = false
	srv.Host = r.cfg.Host
	srv.Port = r.cfg.Port
	srv.Username = r.cfg.Username
	srv.Password = r.cfg.Password

	switch r.cfg.Encryption {
	case config.MailEncryptionTLS:
		srv.Encryption = mail.EncryptionSSLTLS
	case config.MailEncryptionStartTLS:
		srv.Encryption = mail.EncryptionSTARTTLS
	default: // MailEncryptionNone
		srv.Encryption = mail.EncryptionNone
	}
	srv.TLSConfig = &tls.Config{ServerName: srv.Host, InsecureSkipVerify: !r.cfg.CertValidation}
	switch r.cfg.AuthType {
	case config.MailAuthNone:
		srv.Authentication = mail.AuthNone
	case config.MailAuthLogin:
		srv.Authentication = mail.AuthLogin
	case config.MailAuthCramMD5:
		srv.Authentication = mail.AuthCRAMMD5
	default: // MailAuthPlain
		srv.Authentication = mail.AuthPlain
	}

	return srv
}

// RemoveDuplicates removes addresses from the given string slice which are contained in the remove slice.
func RemoveDuplicates(slice []string, remove []string) []string {
	uniqueSlice := make([]string, 0, len(slice))
	for _, entry := range slice {
		if !slices.Contains(remove, entry) {
			uniqueSlice = append(uniqueSlice, entry)
		}
	}
	return uniqueSlice
}
