package adapters

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mail "github.com/xhit/go-simple-mail/v2"

	"github.com/fivedtech/mail-relay/internal/config"
	"github.com/fivedtech/mail-relay/internal/domain"
)

func testMailConfig() config.MailConfig {
	return config.MailConfig{
		Host:           "127.0.0.1",
		Port:           2525,
		Encryption:     config.MailEncryptionNone,
		CertValidation: true,
		AuthType:       config.MailAuthNone,
		ConnectTimeout: time.Second,
		SendTimeout:    time.Second,
		From:           "relay@example.com",
		FromName:       "5D Tech Website",
		Recipients:     []string{"team@example.com"},
	}
}

// closedPort returns a local port that refuses connections.
func closedPort(t *testing.T) int {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := l.Addr().(*net.TCPAddr).Port
	require.NoError(t, l.Close())

	return port
}

func TestRemoveDuplicates(t *testing.T) {
	tests := []struct {
		name   string
		slice  []string
		remove []string
		want   []string
	}{
		{"nothing to remove", []string{"a", "b"}, nil, []string{"a", "b"}},
		{"remove one", []string{"a", "b", "c"}, []string{"b"}, []string{"a", "c"}},
		{"remove all", []string{"a", "b"}, []string{"b", "a"}, []string{}},
		{"remove unknown", []string{"a"}, []string{"x", "y"}, []string{"a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemoveDuplicates(tt.slice, tt.remove))
		})
	}
}

func TestMailRepo_getMailServer(t *testing.T) {
	cfg := testMailConfig()
	cfg.Username = "user"
	cfg.Password = "pass"

	tests := []struct {
		encryption     config.MailEncryption
		authType       config.MailAuthType
		wantEncryption any
		wantAuth       any
	}{
		{config.MailEncryptionNone, config.MailAuthNone, mail.EncryptionNone, mail.AuthNone},
		{config.MailEncryptionTLS, config.MailAuthPlain, mail.EncryptionSSLTLS, mail.AuthPlain},
		{config.MailEncryptionStartTLS, config.MailAuthLogin, mail.EncryptionSTARTTLS, mail.AuthLogin},
		{config.MailEncryptionStartTLS, config.MailAuthCramMD5, mail.EncryptionSTARTTLS, mail.AuthCRAMMD5},
	}

	for _, tt := range tests {
		t.Run(string(tt.encryption)+"/"+string(tt.authType), func(t *testing.T) {
			cfg.Encryption = tt.encryption
			cfg.AuthType = tt.authType

			srv := NewSmtpMailRepo(cfg).getMailServer()

			assert.Equal(t, tt.wantEncryption, srv.Encryption)
			assert.Equal(t, tt.wantAuth, srv.Authentication)
			assert.Equal(t, "127.0.0.1", srv.Host)
			assert.Equal(t, 2525, srv.Port)
			assert.Equal(t, "user", srv.Username)
			assert.Equal(t, time.Second, srv.ConnectTimeout)
			assert.False(t, srv.TLSConfig.InsecureSkipVerify)
		})
	}
}

func TestMailRepo_Send_MissingRecipient(t *testing.T) {
	repo := NewSmtpMailRepo(testMailConfig())

	err := repo.Send(context.Background(), "subject", "body", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing email recipient")
}

func TestMailRepo_Send_CancelledContext(t *testing.T) {
	repo := NewSmtpMailRepo(testMailConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Send(ctx, "subject", "body", []string{"team@example.com"}, &domain.MailOptions{
		ReplyTo: "visitor@example.com",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMailRepo_Send_ConnectionRefused(t *testing.T) {
	cfg := testMailConfig()
	cfg.Port = closedPort(t)
	repo := NewSmtpMailRepo(cfg)

	err := repo.Send(context.Background(), "subject", "body", []string{"team@example.com"}, &domain.MailOptions{
		HtmlBody: "<p>body</p>",
		Headers:  map[string]string{"X-Submission-Id": "1234"},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to SMTP server")
}

func TestMailRepo_Verify_ConnectionRefused(t *testing.T) {
	cfg := testMailConfig()
	cfg.Port = closedPort(t)
	repo := NewSmtpMailRepo(cfg)

	err := repo.Verify(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to SMTP server")
}
