package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var ErrMarkDeliveryCompletedCommandIsNotConstructed = errors.New(
	"MarkDeliveryCompletedCommand must be created via NewMarkDeliveryCompletedCommand constructor",
)

// MarkDeliveryCompletedCommand represents the driver reporting a finished
// pickup, optionally recording the vehicle's license plate.
type MarkDeliveryCompletedCommand struct { //nolint:recvcheck //using for validation
	deliveryID   kernel.UUID
	licensePlate string

	guard guard.ConstructorGuard
}

// NewMarkDeliveryCompletedCommand creates a command to complete a pickup.
// The license plate may be empty.
func NewMarkDeliveryCompletedCommand(deliveryID kernel.UUID,
	licensePlate string) (MarkDeliveryCompletedCommand, error) {
	command := MarkDeliveryCompletedCommand{
		licensePlate: licensePlate,
		guard:        guard.NewConstructorGuard(),
	}

	if err := command.setDeliveryID(deliveryID); err != nil {
		return MarkDeliveryCompletedCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c MarkDeliveryCompletedCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveryCompletedCommandIsNotConstructed)
}

// DeliveryID returns the delivery to complete.
func (c MarkDeliveryCompletedCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// LicensePlate returns the reported vehicle plate, possibly empty.
func (c MarkDeliveryCompletedCommand) LicensePlate() string {
	return c.licensePlate
}

func (c *MarkDeliveryCompletedCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deliveryID = id
	return nil
}
