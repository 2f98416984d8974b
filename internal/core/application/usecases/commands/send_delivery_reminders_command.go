package commands

import (
	"errors"
	"time"

	"settlement/internal/pkg/guard"
)

var (
	ErrSendDeliveryRemindersCommandIsNotConstructed = errors.New(
		"SendDeliveryRemindersCommand must be created via NewSendDeliveryRemindersCommand constructor",
	)
	ErrReminderWindowIsInvalid = errors.New("reminder window end must be after its start")
)

// SendDeliveryRemindersCommand represents one sweep over deliveries whose
// scheduled date falls inside [from, to) and that have not been reminded yet.
type SendDeliveryRemindersCommand struct { //nolint:recvcheck //using for validation
	from time.Time
	to   time.Time

	guard guard.ConstructorGuard
}

// NewSendDeliveryRemindersCommand creates a sweep command for the given
// window.
func NewSendDeliveryRemindersCommand(from time.Time, to time.Time) (SendDeliveryRemindersCommand, error) {
	command := SendDeliveryRemindersCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := command.setWindow(from, to); err != nil {
		return SendDeliveryRemindersCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
func (c SendDeliveryRemindersCommand) Validate() error {
	return c.guard.Validate(ErrSendDeliveryRemindersCommandIsNotConstructed)
}

// From returns the inclusive window start.
func (c SendDeliveryRemindersCommand) From() time.Time {
	return c.from
}

// To returns the exclusive window end.
func (c SendDeliveryRemindersCommand) To() time.Time {
	return c.to
}

func (c *SendDeliveryRemindersCommand) setWindow(from time.Time, to time.Time) error {
	if from.IsZero() || to.IsZero() || !to.After(from) {
		return ErrReminderWindowIsInvalid
	}

	c.from = from
	c.to = to
	return nil
}
