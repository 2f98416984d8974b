package commands

import (
	"context"
	"errors"

	"settlement/internal/core/domain/model/delivery"
	"settlement/internal/core/ports"
)

// ErrUnknownCategory is returned when a set-items request references a
// category id missing from the catalog. The whole batch is rejected.
var ErrUnknownCategory = errors.New("unknown item category")

// SetDeliveryItemsCommandHandler replaces a delivery's itemized weight
// entries. Categories are validated against the catalog before anything is
// written so a bad entry never leaves a partial item set behind.
type SetDeliveryItemsCommandHandler struct {
	uowFactory DeliveryUoWFactory
	catalog    ports.CategoryCatalog
}

// NewSetDeliveryItemsCommandHandler creates a handler for item replacement.
func NewSetDeliveryItemsCommandHandler(uowFactory DeliveryUoWFactory,
	catalog ports.CategoryCatalog) SetDeliveryItemsCommandHandler {
	return SetDeliveryItemsCommandHandler{
		uowFactory: uowFactory,
		catalog:    catalog,
	}
}

// Handle processes the command. Unknown categories reject the batch with
// ErrUnknownCategory; duplicate categories are rejected by the aggregate.
func (h *SetDeliveryItemsCommandHandler) Handle(ctx context.Context, cmd SetDeliveryItemsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	items := make([]*delivery.Item, 0, len(cmd.Items()))
	for _, input := range cmd.Items() {
		known, err := h.catalog.Exists(ctx, input.CategoryID)
		if err != nil {
			return err
		}
		if !known {
			return ErrUnknownCategory
		}

		item, err := delivery.NewItem(input.CategoryID, input.Weight)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	return transitionDelivery(ctx, h.uowFactory, cmd.DeliveryID(), func(d *delivery.Delivery) error {
		return d.ReplaceItems(items)
	})
}
