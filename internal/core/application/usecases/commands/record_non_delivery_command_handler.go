package commands

import (
	"context"

	"settlement/internal/core/domain/model/delivery"
)

// RecordNonDeliveryCommandHandler cancels a pending delivery on the driver's
// behalf, keeping the attribution distinct from customer cancellations.
type RecordNonDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewRecordNonDeliveryCommandHandler creates a handler for failed pickups.
func NewRecordNonDeliveryCommandHandler(uowFactory DeliveryUoWFactory) RecordNonDeliveryCommandHandler {
	return RecordNonDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command with the same guard as customer cancellation.
func (h *RecordNonDeliveryCommandHandler) Handle(ctx context.Context, cmd RecordNonDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return transitionDelivery(ctx, h.uowFactory, cmd.DeliveryID(), func(d *delivery.Delivery) error {
		return d.RecordNonDelivery(cmd.Reason())
	})
}
