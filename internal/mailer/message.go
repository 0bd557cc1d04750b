package mailer

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"mime"
	"net/mail"
	"strings"
	"time"
)

// Message is a composed email ready for a single dispatch attempt.
type Message struct {
	From     string
	FromName string
	To       string
	Subject  string
	TextBody string
	HTMLBody string
}

// Bytes renders the message as an RFC 2822 multipart/alternative body.
// The plain-text part comes first so clients that cannot render HTML
// fall back to it.
func (m *Message) Bytes() []byte {
	boundary := randomBoundary("alt")

	var b strings.Builder
	from := mail.Address{Name: m.FromName, Address: m.From}
	b.WriteString(fmt.Sprintf("From: %s\r\n", from.String()))
	b.WriteString(fmt.Sprintf("To: %s\r\n", m.To))
	b.WriteString(fmt.Sprintf("Subject: %s\r\n", mime.QEncoding.Encode("utf-8", m.Subject)))
	b.WriteString(fmt.Sprintf("Date: %s\r\n", time.Now().Format(time.RFC1123Z)))
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString(fmt.Sprintf("Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary))

	b.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	b.WriteString("Content-Type: text/plain; charset=UTF-8\r\n\r\n")
	b.WriteString(m.TextBody)
	b.WriteString("\r\n\r\n")

	b.WriteString(fmt.Sprintf("--%s\r\n", boundary))
	b.WriteString("Content-Type: text/html; charset=UTF-8\r\n\r\n")
	b.WriteString(m.HTMLBody)
	b.WriteString("\r\n\r\n")

	b.WriteString(fmt.Sprintf("--%s--\r\n", boundary))
	return []byte(b.String())
}

func randomBoundary(prefix string) string {
	buf := make([]byte, 12)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%s-%d", prefix, time.Now().UnixNano())
	}
	return fmt.Sprintf("%s-%s", prefix, hex.EncodeToString(buf))
}
