package delivery

import "fmt"

// ConfirmationStatus represents the customer's verdict on a completed delivery.
// It is a sub-state of StatusCompleted: a delivery may only leave
// ConfirmationPending once its status is Completed, which the Delivery
// aggregate enforces alongside the table below.
//
// State transitions:
//
//	Pending ──┬──> Confirmed
//	          └──> Denied
//
// Confirmed and Denied are terminal.
type ConfirmationStatus int

const (
	// ConfirmationUnknown represents an invalid or undefined confirmation status.
	ConfirmationUnknown ConfirmationStatus = iota

	// ConfirmationPending is the initial confirmation status of every delivery.
	ConfirmationPending

	// ConfirmationConfirmed indicates the customer accepted the completed delivery.
	ConfirmationConfirmed

	// ConfirmationDenied indicates the customer rejected the completed delivery.
	// No settlement occurs for denied deliveries.
	ConfirmationDenied
)

// confirmationEvent identifies a transition request against the confirmation table.
type confirmationEvent int

const (
	eventConfirm confirmationEvent = iota
	eventDeny
)

// confirmationTransitions is the transition table for confirmation statuses.
// Missing entries mean the transition is rejected.
var confirmationTransitions = map[ConfirmationStatus]map[confirmationEvent]ConfirmationStatus{
	ConfirmationPending: {
		eventConfirm: ConfirmationConfirmed,
		eventDeny:    ConfirmationDenied,
	},
}

// apply resolves an event against the transition table.
func (s ConfirmationStatus) apply(event confirmationEvent) (ConfirmationStatus, bool) {
	next, ok := confirmationTransitions[s][event]
	return next, ok
}

// getConfirmationStatusStrings returns a map of ConfirmationStatus values
// to their string representations.
func getConfirmationStatusStrings() map[ConfirmationStatus]string {
	return map[ConfirmationStatus]string{
		ConfirmationUnknown:   "Unknown",
		ConfirmationPending:   "Pending",
		ConfirmationConfirmed: "Confirmed",
		ConfirmationDenied:    "Denied",
	}
}

// Validate checks if the ConfirmationStatus value is one of the defined states.
func (s ConfirmationStatus) Validate() error {
	switch s {
	case ConfirmationPending, ConfirmationConfirmed, ConfirmationDenied:
		return nil
	default:
		return fmt.Errorf("%d is not a valid confirmation status", s)
	}
}

// String returns the human-readable name of the confirmation status.
func (s ConfirmationStatus) String() string {
	if str, ok := getConfirmationStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}
