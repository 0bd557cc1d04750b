package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validRequest() ContactRequest {
	return ContactRequest{
		Name:    "Ann",
		Email:   "ann@example.com",
		Message: "Hello",
	}
}

func TestContactRequest_Validate_RequiredFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ContactRequest)
	}{
		{"missing name", func(r *ContactRequest) { r.Name = "" }},
		{"missing email", func(r *ContactRequest) { r.Email = "" }},
		{"missing message", func(r *ContactRequest) { r.Message = "" }},
		{"blank name", func(r *ContactRequest) { r.Name = "   " }},
		{"blank message", func(r *ContactRequest) { r.Message = "\n\t" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(&req)
			assert.ErrorIs(t, req.Validate(), ErrMissingFields)
		})
	}
}

func TestContactRequest_Validate_EmailShape(t *testing.T) {
	tests := []struct {
		email string
		valid bool
	}{
		{"ann@example.com", true},
		{"a.b+c@sub.example.co", true},
		{"not-an-email", false},
		{"a@b", false},
		{"a @b.com", false},
		{"a@b@c.com", false},
		{"@example.com", false},
		{"ann@.com", false},
		{"ann@example..com", true}, // lax by design: only the local@domain.tld shape is enforced
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			req := validRequest()
			req.Email = tt.email
			err := req.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidEmail)
			}
		})
	}
}

func TestContactRequest_Validate_MissingFieldsTakePrecedence(t *testing.T) {
	req := ContactRequest{Email: "not-an-email"}
	assert.ErrorIs(t, req.Validate(), ErrMissingFields)
}

func TestContactRequest_Validate_CompanyOptional(t *testing.T) {
	req := validRequest()
	req.Company = ""
	assert.NoError(t, req.Validate())
}

func TestContactRequest_IsBot(t *testing.T) {
	req := validRequest()
	assert.False(t, req.IsBot())

	req.Website = "  "
	assert.False(t, req.IsBot())

	req.Website = "http://spam.example"
	assert.True(t, req.IsBot())
}

func TestContactRequest_Submission(t *testing.T) {
	req := ContactRequest{
		Name:    "  Ann  ",
		Email:   " ann@example.com ",
		Company: " Precept ",
		Message: "Hello\nWorld",
	}
	meta := RequestMeta{
		SubmittedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		ClientIP:    "203.0.113.7",
		UserAgent:   "curl/8.0",
	}

	sub := req.Submission(meta)
	assert.Equal(t, "Ann", sub.Name)
	assert.Equal(t, "ann@example.com", sub.Email)
	assert.Equal(t, "Precept", sub.Company)
	assert.Equal(t, "Hello\nWorld", sub.Message)
	assert.Equal(t, meta, sub.Meta)
}
