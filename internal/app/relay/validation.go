package relay

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/fivedtech/mail-relay/internal/domain"
)

const msgInvalidEmail = "Invalid email address."

type submissionValidator struct {
	validate    *validator.Validate
	strictEmail bool
}

func newSubmissionValidator(strictEmail bool) *submissionValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return &submissionValidator{
		validate:    validate,
		strictEmail: strictEmail,
	}
}

// Validate checks that all required fields are present. The email syntax is only checked in strict mode.
func (v *submissionValidator) Validate(submission domain.ContactSubmission) error {
	if err := v.validate.Struct(submission); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return fmt.Errorf("failed to validate submission: %w", err)
		}

		missing := make([]string, 0, len(validationErrors))
		for _, fieldErr := range validationErrors {
			missing = append(missing, fieldErr.Field())
		}
		return domain.NewMissingFieldsError(missing...)
	}

	if v.strictEmail {
		if err := v.validate.Var(submission.Email, "email"); err != nil {
			return &domain.ValidationError{Message: msgInvalidEmail, Fields: []string{"email"}}
		}
	}

	return nil
}
