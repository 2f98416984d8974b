package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var ErrRecordNonDeliveryCommandIsNotConstructed = errors.New(
	"RecordNonDeliveryCommand must be created via NewRecordNonDeliveryCommand constructor",
)

// RecordNonDeliveryCommand represents the driver reporting that the pickup
// could not happen. The outcome matches a customer cancellation but is
// attributed to the driver.
type RecordNonDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	reason     string

	guard guard.ConstructorGuard
}

// NewRecordNonDeliveryCommand creates a command to record a failed pickup.
// A non-empty reason is mandatory.
func NewRecordNonDeliveryCommand(deliveryID kernel.UUID, reason string) (RecordNonDeliveryCommand, error) {
	command := RecordNonDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setReason(reason),
	); err != nil {
		return RecordNonDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c RecordNonDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrRecordNonDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the delivery that failed.
func (c RecordNonDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// Reason returns the driver's stated reason.
func (c RecordNonDeliveryCommand) Reason() string {
	return c.reason
}

func (c *RecordNonDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deliveryID = id
	return nil
}

func (c *RecordNonDeliveryCommand) setReason(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	c.reason = reason
	return nil
}
