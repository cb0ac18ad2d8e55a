// Package mailer defines the outbound message model and the delivery
// transport abstraction. The dispatcher depends only on Transport, so the
// SMTP adapter can be swapped for a fake in tests or another provider in
// production.
package mailer

import (
	"bytes"
	"context"
	"fmt"

	"github.com/google/uuid"
	mail "gopkg.in/mail.v2"

	"github.com/REINA-08/autamedica-reboot-deploy/config"
)

// Delivery outcome values reported by a Transport.
const (
	StatusSent   = "sent"
	StatusFailed = "failed"
)

// Attachment is a file carried by a message.
type Attachment struct {
	Filename string
	MIMEType string
	Content  []byte
}

// Message is one outbound email: recipients, rendered body, custom headers,
// attachments and free-form tags for delivery metadata.
type Message struct {
	To          []string
	Subject     string
	HTMLBody    string
	Headers     map[string]string
	Attachments []Attachment
	Tags        []string
}

// Result reports the outcome of a single delivery.
type Result struct {
	MessageID string
	Status    string
}

// Transport delivers a single message. Implementations must enforce their
// own network timeouts; a timeout is reported as an ordinary error.
type Transport interface {
	Send(ctx context.Context, msg *Message) (*Result, error)
}

// SMTPTransport delivers messages over SMTP using the configured account.
type SMTPTransport struct {
	dialer *mail.Dialer
	from   string
}

func NewSMTPTransport(cfg config.SMTPConfig) *SMTPTransport {
	return &SMTPTransport{
		dialer: mail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
	}
}

func (t *SMTPTransport) Send(ctx context.Context, msg *Message) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(msg.To) == 0 {
		return nil, fmt.Errorf("message has no recipients")
	}

	m := mail.NewMessage()
	m.SetHeader("From", t.from)
	m.SetHeader("To", msg.To...)
	m.SetHeader("Subject", msg.Subject)
	for name, value := range msg.Headers {
		m.SetHeader(name, value)
	}
	m.SetBody("text/html", msg.HTMLBody)

	for _, a := range msg.Attachments {
		attachment := a
		m.AttachReader(attachment.Filename, bytes.NewReader(attachment.Content),
			mail.SetHeader(map[string][]string{
				"Content-Type": {attachment.MIMEType},
			}))
	}

	if err := t.dialer.DialAndSend(m); err != nil {
		return nil, err
	}

	return &Result{MessageID: uuid.NewString(), Status: StatusSent}, nil
}
