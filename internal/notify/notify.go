// Package notify carries the outbound notification port. Delivery is
// best-effort: a failed notification is logged by the caller and never rolls
// back the operation that triggered it.
package notify

import (
	"context"
	"log/slog"
)

// Notifier sends a message to an account holder.
type Notifier interface {
	Notify(ctx context.Context, recipient, subject, body string) error
}

// LogNotifier writes notifications to the log instead of delivering them.
// It is the default when no broker is configured.
type LogNotifier struct {
	log *slog.Logger
}

// NewLogNotifier constructs a notifier backed by the given logger.
func NewLogNotifier(log *slog.Logger) *LogNotifier { return &LogNotifier{log: log} }

func (n *LogNotifier) Notify(_ context.Context, recipient, subject, _ string) error {
	n.log.Info("notification", "recipient", recipient, "subject", subject)
	return nil
}
