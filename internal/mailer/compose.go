package mailer

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/precept-hq/contact-api/config"
	"github.com/precept-hq/contact-api/internal/models"
)

const (
	subjectPrefix      = "Precept Contact Form - New Message from "
	companyPlaceholder = "Not provided"
	timestampLayout    = "2006-01-02 15:04:05 MST"
)

// htmlBody escapes every user-supplied field; Message is pre-rendered into
// MessageHTML with newlines converted to <br>.
var htmlBody = template.Must(template.New("contact_html").Parse(`<h2>New Contact Form Submission - Precept</h2>
<div style="background: #f8fafc; padding: 20px; border-radius: 8px; font-family: Arial, sans-serif;">
  <h3 style="color: #3b82f6; margin-bottom: 15px;">Contact Details</h3>
  <p><strong>Name:</strong> {{.Name}}</p>
  <p><strong>Email:</strong> {{.Email}}</p>
  <p><strong>Company:</strong> {{.Company}}</p>

  <h3 style="color: #3b82f6; margin: 20px 0 15px 0;">Message</h3>
  <div style="background: white; padding: 15px; border-radius: 5px; border-left: 4px solid #3b82f6;">
    {{.MessageHTML}}
  </div>

  <hr style="margin: 20px 0; border: none; border-top: 1px solid #e5e7eb;">
  <p style="font-size: 12px; color: #666;">
    <strong>Submitted:</strong> {{.SubmittedAt}}<br>
    <strong>IP:</strong> {{.ClientIP}}<br>
    <strong>User Agent:</strong> {{.UserAgent}}
  </p>
</div>`))

type htmlBodyData struct {
	Name        string
	Email       string
	Company     string
	MessageHTML template.HTML
	SubmittedAt string
	ClientIP    string
	UserAgent   string
}

// Composer builds the outgoing email for a validated submission. Sender and
// recipient come from configuration only, never from caller input.
type Composer struct {
	from      string
	recipient string
}

func NewComposer(cfg config.MailConfig) *Composer {
	return &Composer{
		from:      cfg.User,
		recipient: cfg.Recipient,
	}
}

// Compose renders the HTML and plain-text bodies for a submission
func (c *Composer) Compose(sub *models.ContactSubmission) (*Message, error) {
	company := sub.Company
	if company == "" {
		company = companyPlaceholder
	}
	submittedAt := sub.Meta.SubmittedAt.Format(timestampLayout)

	var html strings.Builder
	err := htmlBody.Execute(&html, htmlBodyData{
		Name:        sub.Name,
		Email:       sub.Email,
		Company:     company,
		MessageHTML: renderMessageHTML(sub.Message),
		SubmittedAt: submittedAt,
		ClientIP:    sub.Meta.ClientIP,
		UserAgent:   sub.Meta.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("render html body: %w", err)
	}

	text := fmt.Sprintf(`Precept Contact Form Submission

Name: %s
Email: %s
Company: %s

Message:
%s

Submitted: %s
IP: %s
User Agent: %s`,
		sub.Name, sub.Email, company, strings.TrimSpace(sub.Message),
		submittedAt, sub.Meta.ClientIP, sub.Meta.UserAgent)

	return &Message{
		From:     c.from,
		FromName: "Precept Contact Form",
		To:       c.recipient,
		Subject:  subjectPrefix + sub.Name,
		TextBody: strings.TrimSpace(text),
		HTMLBody: html.String(),
	}, nil
}

// renderMessageHTML escapes the message body and preserves line breaks
func renderMessageHTML(message string) template.HTML {
	escaped := template.HTMLEscapeString(message)
	escaped = strings.ReplaceAll(escaped, "\r\n", "\n")
	escaped = strings.ReplaceAll(escaped, "\n", "<br>")
	return template.HTML(escaped) //nolint:gosec // escaped above
}
