package notification

import (
	"context"
	"log/slog"
)

const (
	// TemplateAuthenticate is the SMS template used for OTP delivery.
	TemplateAuthenticate = "authenticate"
)

// Message describes an SMS notification payload. Tokens are substituted into
// the provider-side template.
type Message struct {
	Phone    string
	Template string
	Tokens   map[string]string
}

// Notifier delivers notifications to the SMS channel.
type Notifier interface {
	Send(ctx context.Context, message Message) error
}

// LoggerNotifier is a stub implementation that writes notifications to the logger.
type LoggerNotifier struct {
	logger *slog.Logger
}

// NewLoggerNotifier constructs a logging notifier stub.
func NewLoggerNotifier(logger *slog.Logger) *LoggerNotifier {
	return &LoggerNotifier{logger: logger}
}

// Send writes the message to the structured logger.
func (n *LoggerNotifier) Send(_ context.Context, message Message) error {
	if n == nil || n.logger == nil {
		return nil
	}
	n.logger.Info("notification", "phone", message.Phone, "template", message.Template, "tokens", message.Tokens)
	return nil
}
