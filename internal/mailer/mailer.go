// Package mailer sends transactional email.
package mailer

import (
	"context"
	"fmt"

	"childrenlk/internal/config"
	"childrenlk/internal/middleware"
)

// Message is a rendered email addressed to one recipient.
type Message struct {
	To       string
	ToName   string
	Subject  string
	Text     string
	HTML     string
	Template string
}

// Mailer delivers messages.
type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// New builds the mailer selected by cfg.MailProvider.
func New(cfg *config.Config) (Mailer, error) {
	switch cfg.MailProvider {
	case "sendgrid":
		return NewSendGrid(cfg.SendGridAPIKey, cfg.MailFromName, cfg.MailFromAddress), nil
	case "console":
		return Console{}, nil
	default:
		return nil, fmt.Errorf("unsupported mail provider %q", cfg.MailProvider)
	}
}

// Console writes messages to the application log. Used in development.
type Console struct{}

func (Console) Send(ctx context.Context, msg Message) error {
	middleware.Logger.InfoContext(ctx, "email (console)",
		"to", msg.To,
		"subject", msg.Subject,
		"template", msg.Template,
		"body", msg.Text,
	)
	return nil
}
