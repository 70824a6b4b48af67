package domain

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidData = errors.New("invalid data")
var ErrTransport = errors.New("mail transport failure")

// MsgMissingFields is returned to the client if one or more required fields are empty.
const MsgMissingFields = "Missing required fields."

// ValidationError describes a rejected contact submission. It is never retried.
type ValidationError struct {
	Message string
	Fields  []string // JSON names of the offending fields, may be empty
}

// NewMissingFieldsError returns a ValidationError for the given empty fields.
func NewMissingFieldsError(fields ...string) *ValidationError {
	return &ValidationError{
		Message: MsgMissingFields,
		Fields:  fields,
	}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(e.Fields, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidData
}

// TransportError wraps a failure of the outbound mail transport.
// The message of the underlying error is exposed unchanged.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return ErrTransport.Error()
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrTransport}
	}
	return []error{ErrTransport, e.Err}
}
