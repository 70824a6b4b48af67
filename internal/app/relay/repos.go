package relay

import (
	"context"

	"github.com/fivedtech/mail-relay/internal/domain"
)

type Mailer interface {
	Send(ctx context.Context, subject, body string, to []string, options *domain.MailOptions) error
	Verify(ctx context.Context) error
}

type EventBus interface {
	Publish(topic string, args ...any)
}
