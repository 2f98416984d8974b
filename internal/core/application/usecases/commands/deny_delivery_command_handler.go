package commands

import (
	"context"

	"settlement/internal/core/domain/model/delivery"
)

// DenyDeliveryCommandHandler marks a completed delivery as denied by the
// customer and stores the dispute reason.
type DenyDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewDenyDeliveryCommandHandler creates a handler for delivery denial.
func NewDenyDeliveryCommandHandler(uowFactory DeliveryUoWFactory) DenyDeliveryCommandHandler {
	return DenyDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command. Denial has the same guard as confirmation.
func (h *DenyDeliveryCommandHandler) Handle(ctx context.Context, cmd DenyDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return transitionDelivery(ctx, h.uowFactory, cmd.DeliveryID(), func(d *delivery.Delivery) error {
		return d.Deny(cmd.Reason())
	})
}
