package commands

import (
	"context"

	"settlement/internal/core/domain/model/delivery"
	"settlement/internal/core/domain/model/kernel"
)

// MarkDeliveryInProgressCommandHandler transitions a delivery from Assigned
// to InProgress when the driver starts the pickup.
type MarkDeliveryInProgressCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

// NewMarkDeliveryInProgressCommandHandler creates a handler for pickup starts.
func NewMarkDeliveryInProgressCommandHandler(uowFactory DeliveryUoWFactory) MarkDeliveryInProgressCommandHandler {
	return MarkDeliveryInProgressCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the command. A delivery that is not Assigned rejects the
// transition with delivery.ErrInvalidStateTransition.
func (h *MarkDeliveryInProgressCommandHandler) Handle(ctx context.Context, cmd MarkDeliveryInProgressCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return transitionDelivery(ctx, h.uowFactory, cmd.DeliveryID(), func(d *delivery.Delivery) error {
		return d.MarkInProgress()
	})
}

// transitionDelivery runs one load-mutate-store cycle for a delivery inside a
// fresh transaction. Shared by all single-aggregate state commands.
func transitionDelivery(ctx context.Context, uowFactory DeliveryUoWFactory,
	deliveryID kernel.UUID, mutate func(*delivery.Delivery) error) error {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	deliveryRepo := uow.DeliveryRepository()
	aggregate, err := deliveryRepo.Get(ctx, deliveryID)
	if err != nil {
		return err
	}

	if err = mutate(aggregate); err != nil {
		return err
	}

	if err = deliveryRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
