package models

import "github.com/fivedtech/mail-relay/internal/domain"

// MsgEmailSent is returned to the client once the mail was accepted by the SMTP server.
const MsgEmailSent = "Email sent successfully!"

// MsgInvalidBody is returned to the client if the request body could not be decoded.
const MsgInvalidBody = "Invalid request body."

// ContactRequest is the form data submitted by a website visitor.
type ContactRequest struct {
	Name        string `json:"name" example:"Jane Doe"`                            // Visitor name.
	Email       string `json:"email" example:"jane@example.com"`                   // Visitor email address, used as reply-to.
	Phone       string `json:"phone,omitempty" example:"+49 123 456"`              // Optional phone number.
	Company     string `json:"company,omitempty" example:"ACME Inc."`              // Optional company name.
	ProjectType string `json:"projectType" example:"Web Application"`              // Kind of project.
	Budget      string `json:"budget" example:"10k-25k"`                           // Budget range.
	Timeline    string `json:"timeline" example:"3 months"`                        // Desired timeline.
	Message     string `json:"message" example:"We would like to build a portal."` // Free text message.
}

// ContactResponse is returned once the submission was relayed.
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func NewDomainContactSubmission(src *ContactRequest) domain.ContactSubmission {
	return domain.ContactSubmission{
		Name:        src.Name,
		Email:       src.Email,
		Phone:       src.Phone,
		Company:     src.Company,
		ProjectType: src.ProjectType,
		Budget:      src.Budget,
		Timeline:    src.Timeline,
		Message:     src.Message,
	}
}

func NewContactResponse() ContactResponse {
	return ContactResponse{
		Success: true,
		Message: MsgEmailSent,
	}
}
