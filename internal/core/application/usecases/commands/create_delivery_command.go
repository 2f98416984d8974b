package commands

import (
	"errors"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"
)

var (
	ErrCreateDeliveryCommandIsNotConstructed = errors.New(
		"CreateDeliveryCommand must be created via NewCreateDeliveryCommand constructor",
	)
	ErrDeliveryDateIsRequired = errors.New("delivery date is required")
)

// CreateDeliveryCommand represents a request to schedule a new pickup for an
// order with an assigned driver. Automatically generates the delivery's ID.
type CreateDeliveryCommand struct { //nolint:recvcheck //using for validation
	deliveryID   kernel.UUID
	orderID      kernel.UUID
	driverID     kernel.UUID
	deliveryDate time.Time

	guard guard.ConstructorGuard
}

// NewCreateDeliveryCommand creates a command to schedule a new delivery.
// Validates that the order and driver ids are valid and a delivery date is set.
func NewCreateDeliveryCommand(orderID kernel.UUID, driverID kernel.UUID,
	deliveryDate time.Time) (CreateDeliveryCommand, error) {
	command := CreateDeliveryCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(kernel.NewUUID()),
		command.setOrderID(orderID),
		command.setDriverID(driverID),
		command.setDeliveryDate(deliveryDate),
	); err != nil {
		return CreateDeliveryCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryCommandIsNotConstructed)
}

// DeliveryID returns the generated delivery ID.
func (c CreateDeliveryCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// OrderID returns the order the pickup belongs to.
func (c CreateDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// DriverID returns the assigned driver.
func (c CreateDeliveryCommand) DriverID() kernel.UUID {
	return c.driverID
}

// DeliveryDate returns the scheduled pickup date.
func (c CreateDeliveryCommand) DeliveryDate() time.Time {
	return c.deliveryDate
}

func (c *CreateDeliveryCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deliveryID = id
	return nil
}

func (c *CreateDeliveryCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.orderID = id
	return nil
}

func (c *CreateDeliveryCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.driverID = id
	return nil
}

func (c *CreateDeliveryCommand) setDeliveryDate(date time.Time) error {
	if date.IsZero() {
		return ErrDeliveryDateIsRequired
	}

	c.deliveryDate = date
	return nil
}
