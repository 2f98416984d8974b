// Package delivery provides the domain model for physical pickups and their
// settlement lifecycle. It implements the Delivery aggregate root with the
// status and confirmation state machines, and the per-category weight items
// the settlement math is computed from.
//
// The package includes:
//   - Delivery: The aggregate root owning lifecycle state and weight items
//   - Item: One (delivery, category) weight entry
//   - Status / ConfirmationStatus: Explicit transition-table state machines
//   - InvalidStateTransitionError: The typed rejection for every guard violation
//
// Key business rules:
//   - Confirmation may only leave Pending while the delivery is Completed
//   - Cancellation is only possible from Assigned/InProgress while Pending
//   - The item set is replaced wholesale with at most one entry per category
//   - Every rejected transition is reported, never silently ignored
package delivery
