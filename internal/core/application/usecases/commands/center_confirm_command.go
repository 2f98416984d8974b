package commands

import (
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCenterConfirmCommandIsNotConstructed = errors.New(
	"CenterConfirmCommand must be created via NewCenterConfirmCommand constructor",
)

// CenterConfirmCommand represents the driver settling a completed pickup at
// the collection center. Settlement computes and credits the customer and
// driver amounts and nets outstanding shortfalls.
type CenterConfirmCommand struct { //nolint:recvcheck //using for validation
	deliveryID kernel.UUID
	driverID   kernel.UUID

	guard guard.ConstructorGuard
}

// NewCenterConfirmCommand creates a command to settle a delivery on behalf of
// the given driver.
func NewCenterConfirmCommand(deliveryID kernel.UUID, driverID kernel.UUID) (CenterConfirmCommand, error) {
	command := CenterConfirmCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDeliveryID(deliveryID),
		command.setDriverID(driverID),
	); err != nil {
		return CenterConfirmCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c CenterConfirmCommand) Validate() error {
	return c.guard.Validate(ErrCenterConfirmCommandIsNotConstructed)
}

// DeliveryID returns the delivery to settle.
func (c CenterConfirmCommand) DeliveryID() kernel.UUID {
	return c.deliveryID
}

// DriverID returns the settling driver.
func (c CenterConfirmCommand) DriverID() kernel.UUID {
	return c.driverID
}

func (c *CenterConfirmCommand) setDeliveryID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.deliveryID = id
	return nil
}

func (c *CenterConfirmCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.driverID = id
	return nil
}

// ShortfallNotice tells the caller a new shortfall was recorded during this
// settlement, for display to the driver.
type ShortfallNotice struct {
	Magnitude      decimal.Decimal
	EstimatedRange string
}

// CenterConfirmResult carries the settlement outcome back to the caller.
type CenterConfirmResult struct {
	TotalWeight    string
	CustomerAmount decimal.Decimal
	DriverAmount   decimal.Decimal
	VisitCount     int
	Currency       string
	Shortfall      *ShortfallNotice
}
