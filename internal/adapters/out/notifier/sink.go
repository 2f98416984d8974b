// Package notifier provides the outbound notification adapter. The real
// delivery channel (SMS gateway, push service) sits behind it; this
// implementation records reminders in the structured log so the sweep can be
// observed end to end without an external dependency.
package notifier

import (
	"context"
	"log/slog"

	"settlement/internal/core/domain/model/kernel"
)

// LogNotificationSink implements ports.NotificationSink by writing each
// reminder to the structured log.
type LogNotificationSink struct {
	logger *slog.Logger
}

// NewLogNotificationSink creates a new log-backed notification sink.
func NewLogNotificationSink(logger *slog.Logger) *LogNotificationSink {
	return &LogNotificationSink{
		logger: logger.With("component", "notification_sink"),
	}
}

// SendReminder notifies the customer that their delivery is approaching.
func (s *LogNotificationSink) SendReminder(ctx context.Context, customerID kernel.UUID, deliveryID kernel.UUID) error {
	s.logger.InfoContext(ctx, "delivery reminder sent",
		"customer_id", customerID.String(),
		"delivery_id", deliveryID.String(),
	)
	return nil
}
