package domain

// HeaderSubmissionId carries the submission id in the relayed mail and in the HTTP response.
const HeaderSubmissionId = "X-Submission-Id"

type MailOptions struct {
	ReplyTo  string // defaults to the sender
	HtmlBody string // if html body is empty, a text-only email will be sent
	Cc       []string
	Bcc      []string
	Headers  map[string]string // additional message headers, e.g. X-Submission-Id
}
