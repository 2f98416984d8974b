package delivery

import (
	"errors"
	"fmt"
)

// Status represents the lifecycle state of a delivery.
// It implements a state machine with an explicit transition table so that
// every guard is decided in one place instead of scattered checks.
//
// State transitions:
//
//	Assigned ──> InProgress ──> Completed
//	    │             │
//	    └──────┬──────┘
//	           v
//	       Cancelled
//
// Assigned may also move straight to Completed when the driver reports the
// pickup only after finishing it. Completed and Cancelled are terminal.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusAssigned is the initial status when a driver is assigned to an order.
	StatusAssigned

	// StatusInProgress indicates the driver has started the pickup.
	StatusInProgress

	// StatusCompleted indicates the driver finished the physical pickup.
	// Confirmation and settlement only happen from this status.
	StatusCompleted

	// StatusCancelled indicates the pickup was called off before completion.
	// This is a terminal status.
	StatusCancelled
)

// statusEvent identifies a transition request against the status table.
type statusEvent int

const (
	eventStart statusEvent = iota
	eventComplete
	eventCancel
)

// statusTransitions is the full state-transition table for delivery statuses.
// Missing entries mean the transition is rejected; there are no silent no-ops.
var statusTransitions = map[Status]map[statusEvent]Status{
	StatusAssigned: {
		eventStart:    StatusInProgress,
		eventComplete: StatusCompleted,
		eventCancel:   StatusCancelled,
	},
	StatusInProgress: {
		eventComplete: StatusCompleted,
		eventCancel:   StatusCancelled,
	},
}

// apply resolves an event against the transition table.
// Returns the next status and whether the transition is allowed.
func (s Status) apply(event statusEvent) (Status, bool) {
	next, ok := statusTransitions[s][event]
	return next, ok
}

// ErrInvalidStateTransition is the sentinel error for every rejected
// status or confirmation transition.
var ErrInvalidStateTransition = errors.New("invalid state transition")

// InvalidStateTransitionError reports a rejected transition with enough
// context to render a user-facing message: the attempted operation, the
// delivery's current state pair, and what the operation requires.
type InvalidStateTransitionError struct {
	Op           string
	Status       Status
	Confirmation ConfirmationStatus
	Required     string
}

func newInvalidStateTransitionError(op string, d *Delivery, required string) *InvalidStateTransitionError {
	return &InvalidStateTransitionError{
		Op:           op,
		Status:       d.status,
		Confirmation: d.confirmationStatus,
		Required:     required,
	}
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("invalid state transition: %s requires %s, delivery is %s/%s",
		e.Op, e.Required, e.Status, e.Confirmation)
}

func (e *InvalidStateTransitionError) Unwrap() error {
	return ErrInvalidStateTransition
}

// getStatusStrings returns a map of Status values to their string representations.
func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:    "Unknown",
		StatusAssigned:   "Assigned",
		StatusInProgress: "InProgress",
		StatusCompleted:  "Completed",
		StatusCancelled:  "Cancelled",
	}
}

// getValidStatusStrings returns a map of only valid Status values.
func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // StatusUnknown is intentionally excluded as it's invalid
	return map[Status]string{
		StatusAssigned:   "Assigned",
		StatusInProgress: "InProgress",
		StatusCompleted:  "Completed",
		StatusCancelled:  "Cancelled",
	}
}

// Validate checks if the Status value is one of the defined lifecycle states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return fmt.Errorf("%d is not a valid delivery status", s)
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further status transitions exist.
func (s Status) IsTerminal() bool {
	return len(statusTransitions[s]) == 0
}
