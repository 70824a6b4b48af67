package models

// Error represents an error response.
type Error struct {
	Success bool     `json:"success"`          // Always false.
	Error   string   `json:"error"`            // Error message.
	Fields  []string `json:"fields,omitempty"` // Names of the offending request fields, if known.
}

// Health represents the response of the health endpoints.
type Health struct {
	Ok    bool   `json:"ok"`
	Error string `json:"error,omitempty"` // Reason why the relay is not ready.
}

// NewError returns a new error response with the given message.
func NewError(message string, fields ...string) Error {
	return Error{
		Success: false,
		Error:   message,
		Fields:  fields,
	}
}
