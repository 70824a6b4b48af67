package relay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fivedtech/mail-relay/internal/app"
	"github.com/fivedtech/mail-relay/internal/config"
	"github.com/fivedtech/mail-relay/internal/domain"
)

// Manager relays contact submissions to the configured recipients. It holds no per-request state.
type Manager struct {
	cfg        *config.Config
	tplHandler *TemplateHandler
	validator  *submissionValidator

	bus    EventBus
	mailer Mailer
}

func NewContactRelay(cfg *config.Config, bus EventBus, mailer Mailer) (*Manager, error) {
	tplHandler, err := newTemplateHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize template handler: %w", err)
	}

	m := &Manager{
		cfg:        cfg,
		tplHandler: tplHandler,
		validator:  newSubmissionValidator(cfg.Relay.StrictEmailValidation),

		bus:    bus,
		mailer: mailer,
	}

	return m, nil
}

// Submit validates the submission and hands exactly one mail to the transport.
// Failures are never retried; submitting the same data twice sends two mails.
func (m Manager) Submit(ctx context.Context, submission domain.ContactSubmission) (*domain.SubmissionReceipt, error) {
	id := uuid.NewString()

	if err := m.validator.Validate(submission); err != nil {
		slog.Debug("rejected contact submission", "submission", id, "error", err)
		m.publish(app.TopicSubmissionRejected, domain.SubmissionEvent{
			ID:          id,
			ProjectType: submission.ProjectType,
			Result:      domain.SubmissionResultRejected,
			Error:       err.Error(),
		})
		return nil, err
	}

	txtMail, htmlMail, err := m.tplHandler.GetContactMail(submission)
	if err != nil {
		return nil, fmt.Errorf("failed to get mail body: %w", err)
	}
	txtMailStr, _ := io.ReadAll(txtMail)
	htmlMailStr, _ := io.ReadAll(htmlMail)

	mailOptions := domain.MailOptions{
		ReplyTo:  m.replyTo(id, submission.Email),
		HtmlBody: string(htmlMailStr),
		Cc:       m.cfg.Mail.Cc,
		Bcc:      m.cfg.Mail.Bcc,
		Headers:  map[string]string{domain.HeaderSubmissionId: id},
	}

	start := time.Now()
	err = m.mailer.Send(ctx, m.subject(submission), strings.TrimSpace(string(txtMailStr)), m.cfg.Mail.Recipients,
		&mailOptions)
	duration := time.Since(start)
	if err != nil {
		slog.Error("email send error", "submission", id, "duration", duration, "error", err)
		m.publish(app.TopicSubmissionFailed, domain.SubmissionEvent{
			ID:          id,
			ProjectType: submission.ProjectType,
			Result:      domain.SubmissionResultFailed,
			Duration:    duration,
			Error:       err.Error(),
		})
		return nil, &domain.TransportError{Err: err}
	}

	slog.Info("contact mail sent", "submission", id, "projectType", submission.ProjectType, "duration", duration)
	m.publish(app.TopicSubmissionSent, domain.SubmissionEvent{
		ID:          id,
		ProjectType: submission.ProjectType,
		Result:      domain.SubmissionResultSent,
		Duration:    duration,
	})

	return &domain.SubmissionReceipt{ID: id}, nil
}

// Ready checks that the SMTP server accepts connections with the configured credentials.
func (m Manager) Ready(ctx context.Context) error {
	if err := m.mailer.Verify(ctx); err != nil {
		return &domain.TransportError{Err: err}
	}
	return nil
}

func (m Manager) subject(submission domain.ContactSubmission) string {
	subject := fmt.Sprintf("New enquiry from %s - %s", submission.Name, submission.ProjectType)
	if m.cfg.Relay.SubjectPrefix != "" {
		subject = m.cfg.Relay.SubjectPrefix + " " + subject
	}

	// collapse line breaks, they must never reach the mail header
	return strings.Join(strings.Fields(subject), " ")
}

// replyTo returns the visitor address if it can be used as a mail header. Otherwise, the transport
// falls back to the sender and the address is only part of the mail body.
func (m Manager) replyTo(id, email string) string {
	addr, err := mail.ParseAddress(strings.TrimSpace(email))
	if err != nil {
		slog.Warn("visitor email is not a valid reply-to address", "submission", id, "email", email)
		return ""
	}
	return addr.Address
}

func (m Manager) publish(topic string, event domain.SubmissionEvent) {
	if m.bus == nil {
		return
	}
	m.bus.Publish(topic, event)
}
