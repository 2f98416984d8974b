package commands

import (
	"context"
	"log/slog"

	"settlement/internal/core/ports"
)

// SendDeliveryRemindersCommandHandler notifies customers of upcoming pickups.
// Each delivery is reminded at most once; a failed notification is logged and
// skipped so one unreachable customer does not stall the sweep.
type SendDeliveryRemindersCommandHandler struct {
	uowFactory DeliveryUoWFactory
	sink       ports.NotificationSink
	logger     *slog.Logger
}

// NewSendDeliveryRemindersCommandHandler creates a handler for reminder sweeps.
func NewSendDeliveryRemindersCommandHandler(uowFactory DeliveryUoWFactory,
	sink ports.NotificationSink, logger *slog.Logger) SendDeliveryRemindersCommandHandler {
	return SendDeliveryRemindersCommandHandler{
		uowFactory: uowFactory,
		sink:       sink,
		logger:     logger.With("component", "send_delivery_reminders"),
	}
}

// Handle processes one sweep. The reminder flag is persisted only after the
// notification was handed to the sink, so a crashed sweep retries rather than
// drops.
func (h *SendDeliveryRemindersCommandHandler) Handle(ctx context.Context, cmd SendDeliveryRemindersCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	due, err := deliveryRepo.GetDueForReminder(ctx, cmd.From(), cmd.To())
	if err != nil {
		return err
	}

	for _, aggregate := range due {
		if err = h.sink.SendReminder(ctx, aggregate.CustomerID(), aggregate.ID()); err != nil {
			h.logger.Warn("reminder notification failed",
				"delivery_id", aggregate.ID().String(),
				"error", err)
			continue
		}

		if err = aggregate.MarkReminderSent(); err != nil {
			return err
		}
		if err = deliveryRepo.Update(ctx, aggregate); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
