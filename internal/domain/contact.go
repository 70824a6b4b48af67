package domain

// NotAvailable is rendered for optional fields that were left empty.
const NotAvailable = "N/A"

// ContactSubmission is a single contact form entry. It only lives for the duration of one request.
type ContactSubmission struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required"`
	Phone       string `json:"phone,omitempty"`
	Company     string `json:"company,omitempty"`
	ProjectType string `json:"projectType" validate:"required"`
	Budget      string `json:"budget" validate:"required"`
	Timeline    string `json:"timeline" validate:"required"`
	Message     string `json:"message" validate:"required"`
}

// PhoneOrDefault returns the phone number or N/A.
func (c ContactSubmission) PhoneOrDefault() string {
	return valueOrDefault(c.Phone)
}

// CompanyOrDefault returns the company name or N/A.
func (c ContactSubmission) CompanyOrDefault() string {
	return valueOrDefault(c.Company)
}

func valueOrDefault(s string) string {
	if s == "" {
		return NotAvailable
	}
	return s
}

// SubmissionReceipt confirms that a contact submission was handed to the mail transport.
type SubmissionReceipt struct {
	ID string
}
