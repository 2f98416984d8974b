package commands

import (
	"context"

	"settlement/internal/core/domain/model/delivery"
	"settlement/internal/core/ports"
)

// CreateDeliveryCommandHandler handles the business logic for scheduling a
// pickup. Resolves the order's customer so the delivery carries it from the
// start, then persists the new aggregate.
type CreateDeliveryCommandHandler struct {
	uowFactory    DeliveryUoWFactory
	orderProvider ports.OrderProvider
}

// NewCreateDeliveryCommandHandler creates a handler for delivery scheduling.
func NewCreateDeliveryCommandHandler(uowFactory DeliveryUoWFactory,
	orderProvider ports.OrderProvider) CreateDeliveryCommandHandler {
	return CreateDeliveryCommandHandler{
		uowFactory:    uowFactory,
		orderProvider: orderProvider,
	}
}

// Handle processes the delivery creation command.
// The new delivery starts in Assigned status awaiting the customer's pickup.
func (h *CreateDeliveryCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	orderInfo, err := h.orderProvider.GetOrder(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	aggregate, err := delivery.NewDelivery(cmd.DeliveryID(), cmd.OrderID(),
		cmd.DriverID(), orderInfo.CustomerID, cmd.DeliveryDate())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.DeliveryRepository().Add(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
