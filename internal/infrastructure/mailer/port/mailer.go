package port

import "context"

// Email is one outbound message. Recipients are already filtered to verified
// addresses by the caller; the mailer does not re-check them.
type Email struct {
	To      []string
	Subject string
	Body    string
}

// Mailer sends email. Implementations are best-effort transports: callers in
// this codebase treat a returned error as log-and-drop, never as a reason to
// fail the triggering operation.
type Mailer interface {
	Send(ctx context.Context, e Email) error
}
