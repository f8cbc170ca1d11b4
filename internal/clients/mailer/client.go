// Package mailer sends plain-text notification emails over SMTP.
package mailer

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	portssvc "github.com/NotariaHQ/notaria_backend/internal/core/ports/services"
)

// Client sends mail through a single SMTP relay. A client with an empty host
// silently drops every message, which keeps local development mail-free.
type Client struct {
	host   string
	port   string
	user   string
	pass   string
	sender string
}

// NewClient creates an SMTP mailer.
func NewClient(host, port, user, pass, sender string) *Client {
	return &Client{host: host, port: port, user: user, pass: pass, sender: sender}
}

// Ensure Client implements the mailer port
var _ portssvc.Mailer = (*Client)(nil)

// SendEmail sends a plain-text message. The context is honored only up to the
// blocking SMTP dial; net/smtp has no native cancellation.
func (c *Client) SendEmail(ctx context.Context, to, subject, body string) error {
	if c.host == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", c.sender)
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	msg.WriteString("MIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n")
	msg.WriteString(body)

	var auth smtp.Auth
	if c.user != "" {
		auth = smtp.PlainAuth("", c.user, c.pass, c.host)
	}

	addr := c.host + ":" + c.port
	if err := smtp.SendMail(addr, auth, c.sender, []string{to}, []byte(msg.String())); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
