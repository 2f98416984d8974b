package commands

import (
	"context"

	"settlement/internal/core/domain/model/delivery"
)

// CancelDeliveryCommandHandler cancels a pending delivery on the customer's
// behalf.
type CancelDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewCancelDeliveryCommandHandler creates a handler for customer cancellation.
func NewCancelDeliveryCommandHandler(uowFactory DeliveryUoWFactory) CancelDeliveryCommandHandler {
	return CancelDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command. Only Assigned or InProgress deliveries with a
// pending confirmation may cancel.
func (h *CancelDeliveryCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return transitionDelivery(ctx, h.uowFactory, cmd.DeliveryID(), func(d *delivery.Delivery) error {
		return d.Cancel(cmd.Reason())
	})
}
