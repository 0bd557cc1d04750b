package mailer

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/smtp"
	"strconv"
	"time"

	"github.com/precept-hq/contact-api/config"
)

// Dispatcher transmits a composed message to the mail relay.
// Exactly one delivery attempt per call; retries are the caller's decision.
type Dispatcher interface {
	Send(ctx context.Context, msg *Message) error
}

// SMTPDispatcher submits messages over STARTTLS with authenticated sessions.
// Three independent timeouts bound the attempt: connection establishment,
// protocol greeting, and overall socket activity.
type SMTPDispatcher struct {
	cfg config.MailConfig
}

func NewSMTPDispatcher(cfg config.MailConfig) *SMTPDispatcher {
	return &SMTPDispatcher{cfg: cfg}
}

func (d *SMTPDispatcher) Send(ctx context.Context, msg *Message) error {
	addr := net.JoinHostPort(d.cfg.Host, strconv.Itoa(d.cfg.Port))

	dialer := &net.Dialer{Timeout: d.cfg.ConnectTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("smtp connect %s: %w", addr, err)
	}

	// NewClient reads the server banner, so the greeting timeout applies here.
	if err := conn.SetDeadline(time.Now().Add(d.cfg.GreetingTimeout)); err != nil {
		conn.Close()
		return fmt.Errorf("smtp set greeting deadline: %w", err)
	}
	client, err := smtp.NewClient(conn, d.cfg.Host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp greeting: %w", err)
	}
	defer client.Close()

	// A single deadline bounds the rest of the session.
	if err := conn.SetDeadline(time.Now().Add(d.cfg.SocketTimeout)); err != nil {
		return fmt.Errorf("smtp set socket deadline: %w", err)
	}

	// InsecureSkipVerify and the low floor keep compatibility with relays
	// that negotiate older cipher suites. Controlled by configuration.
	tlsConfig := &tls.Config{
		ServerName:         d.cfg.Host,
		InsecureSkipVerify: d.cfg.InsecureSkipVerify, //nolint:gosec // explicit config choice
		MinVersion:         tls.VersionTLS10,
	}
	if err := client.StartTLS(tlsConfig); err != nil {
		return fmt.Errorf("smtp starttls: %w", err)
	}

	auth := smtp.PlainAuth("", d.cfg.User, d.cfg.Password, d.cfg.Host)
	if err := client.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}

	if err := client.Mail(msg.From); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := client.Rcpt(msg.To); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg.Bytes()); err != nil {
		return fmt.Errorf("smtp write body: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp finish body: %w", err)
	}

	if err := client.Quit(); err != nil {
		return fmt.Errorf("smtp quit: %w", err)
	}
	return nil
}
