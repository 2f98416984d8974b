package commands

import (
	"context"

	"settlement/internal/core/domain/model/delivery"
)

// MarkDeliveryCompletedCommandHandler transitions a delivery to Completed
// and records the pickup vehicle's plate. Confirmation is untouched; the
// customer confirms or denies separately.
type MarkDeliveryCompletedCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewMarkDeliveryCompletedCommandHandler creates a handler for pickup completion.
func NewMarkDeliveryCompletedCommandHandler(uowFactory DeliveryUoWFactory) MarkDeliveryCompletedCommandHandler {
	return MarkDeliveryCompletedCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command. Only Assigned or InProgress deliveries may
// complete; anything else rejects with delivery.ErrInvalidStateTransition.
func (h *MarkDeliveryCompletedCommandHandler) Handle(ctx context.Context, cmd MarkDeliveryCompletedCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return transitionDelivery(ctx, h.uowFactory, cmd.DeliveryID(), func(d *delivery.Delivery) error {
		return d.MarkCompleted(cmd.LicensePlate())
	})
}
