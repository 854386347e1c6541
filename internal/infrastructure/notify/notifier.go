package notify

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier records outgoing notifications in the service log. The real
// delivery channel (email, SMS) is owned by an external collaborator; this
// implementation keeps the workflow observable without it.
type LogNotifier struct {
	logger zerolog.Logger
}

// NewLogNotifier creates a new LogNotifier.
func NewLogNotifier(logger zerolog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Notify logs the notification. Never fails; the caller treats delivery as
// fire-and-forget.
func (n *LogNotifier) Notify(ctx context.Context, recipient, subject, body string) {
	n.logger.Info().
		Str("recipient", recipient).
		Str("subject", subject).
		Str("body", body).
		Msg("notification dispatched")
}
