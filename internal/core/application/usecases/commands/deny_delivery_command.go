package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var (
	ErrDenyDeliveryCommandIsNotConstructed = errors.New(
		"DenyDeliveryCommand must be created via NewDenyDeliveryCommand constructor",
	)
	ErrReasonIsRequired = errors.New("reason is required")
)

// DenyDeliveryCommand represents the customer disputing a completed pickup.
// No settlement occurs for a denied delivery.
type DenyDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

// NewDenyDeliveryCommand creates a command to deny a delivery.
// A non-empty reason is mandatory.
func NewDenyDeliveryCommand(deliveryID kernel.UUID, reason string) (DenyDeliveryCommand, error) {
	command := DenyDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setReason(reason),
	); err != nil {
		return DenyDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c DenyDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrDenyDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery to deny.
func (c DenyDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Reason returns the customer's stated reason.
func (c DenyDeliveryCommand) Reason() string {
	return c.reason
}

func (c *DenyDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deliveryID = id
	return nil
}

func (c *DenyDeliveryCommand) setReason(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	c.reason = reason
	return nil
}
