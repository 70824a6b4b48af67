package app

import (
	"context"

	"github.com/fivedtech/mail-relay/internal/domain"
)

type ContactRelay interface {
	Submit(ctx context.Context, submission domain.ContactSubmission) (*domain.SubmissionReceipt, error)
	Ready(ctx context.Context) error
}

type StatisticsCollector interface {
	StartBackgroundJobs(ctx context.Context)
}
