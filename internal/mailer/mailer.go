// Package mailer is the outbound email delivery collaborator.
package mailer

import "context"

// Mailer sends one message synchronously. Implementations must not retry;
// retry policy belongs to the caller.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
