package domain

import "time"

type SubmissionResult string

const (
	SubmissionResultSent     SubmissionResult = "sent"
	SubmissionResultRejected SubmissionResult = "rejected"
	SubmissionResultFailed   SubmissionResult = "failed"
)

// SubmissionEvent is published on the message bus once a contact submission has been processed.
type SubmissionEvent struct {
	ID          string
	ProjectType string
	Result      SubmissionResult
	Duration    time.Duration // time spent in the mail transport, zero for rejected submissions
	Error       string
}
