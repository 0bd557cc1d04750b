package mailer

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/precept-hq/contact-api/config"
	"github.com/precept-hq/contact-api/internal/models"
)

func testComposer() *Composer {
	return NewComposer(config.MailConfig{
		User:      "relay@precept.example",
		Recipient: "inbox@precept.example",
	})
}

func testSubmission() *models.ContactSubmission {
	return &models.ContactSubmission{
		Name:    "Ann",
		Email:   "ann@example.com",
		Company: "Precept",
		Message: "Hello",
		Meta: models.RequestMeta{
			SubmittedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			ClientIP:    "203.0.113.7",
			UserAgent:   "curl/8.0",
		},
	}
}

func TestComposer_Compose(t *testing.T) {
	msg, err := testComposer().Compose(testSubmission())
	require.NoError(t, err)

	assert.Equal(t, "relay@precept.example", msg.From)
	assert.Equal(t, "inbox@precept.example", msg.To)
	assert.Equal(t, "Precept Contact Form - New Message from Ann", msg.Subject)

	assert.Contains(t, msg.HTMLBody, "Ann")
	assert.Contains(t, msg.HTMLBody, "ann@example.com")
	assert.Contains(t, msg.HTMLBody, "Hello")
	assert.Contains(t, msg.HTMLBody, "203.0.113.7")
	assert.Contains(t, msg.HTMLBody, "curl/8.0")

	assert.Contains(t, msg.TextBody, "Name: Ann")
	assert.Contains(t, msg.TextBody, "IP: 203.0.113.7")
	assert.Equal(t, msg.TextBody, strings.TrimSpace(msg.TextBody))
	assert.NotContains(t, msg.TextBody, "<")
}

func TestComposer_Compose_CompanyPlaceholder(t *testing.T) {
	sub := testSubmission()
	sub.Company = ""

	msg, err := testComposer().Compose(sub)
	require.NoError(t, err)

	assert.Contains(t, msg.HTMLBody, "Not provided")
	assert.Contains(t, msg.TextBody, "Company: Not provided")
}

func TestComposer_Compose_NewlinesBecomeLineBreaks(t *testing.T) {
	sub := testSubmission()
	sub.Message = "line one\nline two\r\nline three"

	msg, err := testComposer().Compose(sub)
	require.NoError(t, err)

	assert.Contains(t, msg.HTMLBody, "line one<br>line two<br>line three")
	assert.Contains(t, msg.TextBody, "line one\nline two")
}

func TestComposer_Compose_EscapesUserInput(t *testing.T) {
	sub := testSubmission()
	sub.Name = "<b>Ann</b>"
	sub.Message = "<script>alert('x')</script>"

	msg, err := testComposer().Compose(sub)
	require.NoError(t, err)

	assert.NotContains(t, msg.HTMLBody, "<b>Ann</b>")
	assert.NotContains(t, msg.HTMLBody, "<script>")
	assert.Contains(t, msg.HTMLBody, "&lt;script&gt;")
}

func TestMessage_Bytes(t *testing.T) {
	msg := &Message{
		From:     "relay@precept.example",
		FromName: "Precept Contact Form",
		To:       "inbox@precept.example",
		Subject:  "Precept Contact Form - New Message from Ann",
		TextBody: "plain text part",
		HTMLBody: "<p>html part</p>",
	}

	raw := string(msg.Bytes())

	assert.Contains(t, raw, "From: \"Precept Contact Form\" <relay@precept.example>\r\n")
	assert.Contains(t, raw, "To: inbox@precept.example\r\n")
	assert.Contains(t, raw, "Subject: Precept Contact Form - New Message from Ann\r\n")
	assert.Contains(t, raw, "MIME-Version: 1.0\r\n")
	assert.Contains(t, raw, "multipart/alternative")
	assert.Contains(t, raw, "Content-Type: text/plain; charset=UTF-8")
	assert.Contains(t, raw, "Content-Type: text/html; charset=UTF-8")

	// Text part precedes the HTML part so non-HTML clients fall back cleanly.
	assert.Less(t, strings.Index(raw, "plain text part"), strings.Index(raw, "<p>html part</p>"))

	// Closing boundary terminates the message.
	assert.True(t, strings.HasSuffix(raw, "--\r\n"))
}
