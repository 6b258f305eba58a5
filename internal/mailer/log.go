package mailer

import (
	"context"
	"log/slog"
)

// LogMailer writes mail to the structured log instead of sending it.
// Used in development and in tests, where codes need to be visible
// without a mail provider.
type LogMailer struct {
	Logger *slog.Logger
}

func (m *LogMailer) Send(_ context.Context, msg Message) error {
	m.Logger.Info("outgoing mail",
		slog.String("to", msg.To),
		slog.String("subject", msg.Subject),
		slog.String("body", msg.Body),
	)
	return nil
}
