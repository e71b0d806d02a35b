// Package notify sends report notifications by email.
package notify

import (
	"context"
	"errors"
)

// ErrNoRecipients is returned when a message has no To addresses.
var ErrNoRecipients = errors.New("no recipients")

// Attachment is a file sent with a message.
type Attachment struct {
	FileName    string
	ContentType string
	Data        []byte
}

// Message is an HTML email.
type Message struct {
	To          []string
	Subject     string
	HTML        string
	Attachments []Attachment
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// Noop discards every message. It is used when SMTP is not configured.
type Noop struct{}

func (Noop) Send(ctx context.Context, msg Message) error {
	return ctx.Err()
}
