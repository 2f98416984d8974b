package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var ErrMarkDeliveryInProgressCommandIsNotConstructed = errors.New(
	"MarkDeliveryInProgressCommand must be created via NewMarkDeliveryInProgressCommand constructor",
)

// MarkDeliveryInProgressCommand represents the driver reporting that pickup
// has started for a delivery.
type MarkDeliveryInProgressCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID

	guard guard.ConstructorGuard
}

// NewMarkDeliveryInProgressCommand creates a command to start a pickup.
func NewMarkDeliveryInProgressCommand(deliveryID kernel.UUID) (MarkDeliveryInProgressCommand, error) {
	command := MarkDeliveryInProgressCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setDeliveryID(deliveryID); err != nil {
		return MarkDeliveryInProgressCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDeliveryInProgressCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveryInProgressCommandIsNotConstructed)
}

// DeliveryID returns the delivery to transition.
func (c MarkDeliveryInProgressCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

func (c *MarkDeliveryInProgressCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deliveryID = id
	return nil
}
