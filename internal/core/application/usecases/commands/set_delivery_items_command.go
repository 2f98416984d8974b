package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var (
	ErrSetDeliveryItemsCommandIsNotConstructed = errors.New(
		"SetDeliveryItemsCommand must be created via NewSetDeliveryItemsCommand constructor",
	)
	ErrItemsAreRequired = errors.New("at least one item is required")
)

// ItemInput is one weighed category entry in a set-items request.
type ItemInput struct {
	CategoryID kernel.UUID
	Weight     kernel.Weight
}

// SetDeliveryItemsCommand represents the driver submitting the weighed item
// set for a delivery. The set replaces any previously recorded items.
type SetDeliveryItemsCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	items      []ItemInput

	guard guard.ConstructorGuard
}

// NewSetDeliveryItemsCommand creates a command to replace a delivery's items.
// Every entry must carry a valid category id and constructed weight.
func NewSetDeliveryItemsCommand(deliveryID kernel.UUID, items []ItemInput) (SetDeliveryItemsCommand, error) {
	command := SetDeliveryItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setItems(items),
	); err != nil {
		return SetDeliveryItemsCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SetDeliveryItemsCommand) Validate() error {
	return c.guard.Validate(ErrSetDeliveryItemsCommandIsNotConstructed)
}

// DeliveryID returns the delivery whose items are replaced.
func (c SetDeliveryItemsCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Items returns the submitted item entries.
func (c SetDeliveryItemsCommand) Items() []ItemInput {
	return c.items
}

func (c *SetDeliveryItemsCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deliveryID = id
	return nil
}

func (c *SetDeliveryItemsCommand) setItems(items []ItemInput) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}

	for _, item := range items {
		if err := item.CategoryID.Validate(); err != nil {
			return err
		}
		if err := item.Weight.Validate(); err != nil {
			return err
		}
	}

	c.items = items
	return nil
}
