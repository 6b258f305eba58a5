// Package mailer delivers transactional mail. Delivery is best-effort:
// callers fire it from a goroutine and log failures rather than failing
// the request that triggered the send.
package mailer

import "context"

type Message struct {
	To      string
	Subject string
	Body    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
