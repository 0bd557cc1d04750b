package models

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validation failures surfaced to the handler layer. The honeypot result is
// deliberately indistinguishable from other rejections in the HTTP response.
var (
	ErrMissingFields = errors.New("missing required fields")
	ErrInvalidEmail  = errors.New("invalid email format")
)

// Matches local@domain.tld with no whitespace and exactly one @, the same
// shape the public form enforces client-side.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// The builtin "email" tag accepts addresses without a dotted domain,
	// which the form should reject.
	if err := v.RegisterValidation("contact_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	}); err != nil {
		panic(err)
	}
	return v
}

// ContactRequest represents a contact form submission as posted by the client.
// Website is a honeypot: hidden on the real form, so any non-blank value
// marks the submission as bot-originated.
type ContactRequest struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,contact_email"`
	Company string `json:"company"`
	Message string `json:"message" validate:"required"`
	Website string `json:"website"`
}

// IsBot reports whether the honeypot field was filled in
func (r *ContactRequest) IsBot() bool {
	return strings.TrimSpace(r.Website) != ""
}

// Validate checks required fields and email shape. Missing fields take
// precedence over email format so the caller gets one actionable reason.
func (r *ContactRequest) Validate() error {
	trimmed := ContactRequest{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Message: strings.TrimSpace(r.Message),
	}

	err := validate.Struct(&trimmed)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) {
		return ErrMissingFields
	}

	for _, fe := range fieldErrors {
		if fe.Tag() == "required" {
			return ErrMissingFields
		}
	}
	return ErrInvalidEmail
}

// RequestMeta is captured by the server at request time and attached to the
// outgoing email for audit purposes only. It is never supplied by the caller.
type RequestMeta struct {
	SubmittedAt time.Time
	ClientIP    string
	UserAgent   string
}

// ContactSubmission is a validated submission plus its request metadata,
// ready for composition. It lives only for the duration of one request.
type ContactSubmission struct {
	Name    string
	Email   string
	Company string
	Message string
	Meta    RequestMeta
}

// Submission builds the transient submission entity from a validated request
func (r *ContactRequest) Submission(meta RequestMeta) *ContactSubmission {
	return &ContactSubmission{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Company: strings.TrimSpace(r.Company),
		Message: r.Message,
		Meta:    meta,
	}
}

// ContactResponse represents the JSON body returned for the contact route
type ContactResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
