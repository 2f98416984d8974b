package commands

import (
	"context"
	"time"

	"settlement/internal/core/domain/model/delivery"
)

// ConfirmDeliveryCommandHandler marks a completed delivery as confirmed by
// the customer and stamps the confirmation time.
type ConfirmDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewConfirmDeliveryCommandHandler creates a handler for delivery confirmation.
func NewConfirmDeliveryCommandHandler(uowFactory DeliveryUoWFactory) ConfirmDeliveryCommandHandler {
	return ConfirmDeliveryCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command. Confirmation requires a Completed delivery
// still awaiting the customer's verdict.
func (h *ConfirmDeliveryCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return transitionDelivery(ctx, h.uowFactory, cmd.DeliveryID(), func(d *delivery.Delivery) error {
		return d.Confirm(time.Now())
	})
}
