package delivery

import (
	"errors"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"
)

// Actors a cancellation is attributed to.
const (
	// CancelledByCustomer marks a cancellation requested by the order's customer.
	CancelledByCustomer = "customer"
	// CancelledByDriver marks a non-delivery recorded by the assigned driver.
	CancelledByDriver = "driver"
)

var (
	// ErrDeliveryIsNotConstructed is returned when a Delivery instance was not
	// created through NewDelivery or RestoreDelivery.
	ErrDeliveryIsNotConstructed = errors.New("Delivery must be created via NewDelivery or RestoreDelivery constructors")
	// ErrDeliveryDateIsRequired is returned when creating a delivery without a scheduled date.
	ErrDeliveryDateIsRequired = errs.NewValueIsRequiredError("delivery date")
	// ErrReasonIsRequired is returned when denying or cancelling without a reason.
	ErrReasonIsRequired = errs.NewValueIsRequiredError("reason")
	// ErrDuplicateItemCategory is returned when ReplaceItems receives two entries
	// for the same category.
	ErrDuplicateItemCategory = errors.New("at most one item per category is allowed")
	// ErrReminderAlreadySent is returned when marking a reminder twice.
	ErrReminderAlreadySent = errors.New("reminder was already sent for this delivery")
)

// Delivery represents one physical pickup tied to an order and a driver.
// It is the aggregate root of the settlement engine: it owns the itemized
// weight entries and the status/confirmation state machine every settlement
// guard is decided against.
//
// Delivery follows these invariants:
//   - confirmationStatus may only leave Pending while status is Completed
//   - status may only become Cancelled from Assigned/InProgress, and only
//     while confirmationStatus is Pending
//   - at most one weight item exists per category; ReplaceItems swaps the
//     whole set and recomputes the delivered weight
//   - terminal states are Cancelled, Completed+Confirmed, Completed+Denied
//
// All transitions consult explicit transition tables; a rejected transition
// returns an *InvalidStateTransitionError, never a silent no-op.
type Delivery struct {
	// id is the unique identifier of the pickup
	id kernel.UUID
	// orderID references the order this pickup fulfils
	orderID kernel.UUID
	// driverID is the assigned driver
	driverID kernel.UUID
	// customerID is the order's customer, denormalized at creation so
	// visit-count and shortfall queries need no join to the order tables
	customerID kernel.UUID

	status             Status
	confirmationStatus ConfirmationStatus

	// items are the per-category weight entries captured by the driver
	items []*Item
	// deliveredWeight is the derived total; kept for deliveries settled
	// before itemization existed
	deliveredWeight kernel.Weight

	licensePlate *string
	denialReason *string
	cancelReason *string
	cancelledBy  *string
	confirmedAt  *time.Time

	// deliveryDate is the scheduled pickup date used by the reminder sweep
	deliveryDate time.Time
	reminderSent bool

	guard guard.ConstructorGuard
}

// NewDelivery creates a delivery for an order that was just assigned a driver.
// The delivery starts in Assigned status with confirmation Pending and no items.
func NewDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	driverID kernel.UUID,
	customerID kernel.UUID,
	deliveryDate time.Time,
) (*Delivery, error) {
	d := &Delivery{
		status:             StatusAssigned,
		confirmationStatus: ConfirmationPending,
		deliveredWeight:    kernel.ZeroWeight(),
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setDriverID(driverID),
		d.setCustomerID(customerID),
		d.setDeliveryDate(deliveryDate),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDelivery reconstructs a Delivery aggregate from persistent storage,
// including its weight items and confirmation state.
func RestoreDelivery(
	id kernel.UUID,
	orderID kernel.UUID,
	driverID kernel.UUID,
	customerID kernel.UUID,
	status Status,
	confirmationStatus ConfirmationStatus,
	items []*Item,
	deliveredWeight kernel.Weight,
	licensePlate *string,
	denialReason *string,
	cancelReason *string,
	cancelledBy *string,
	confirmedAt *time.Time,
	deliveryDate time.Time,
	reminderSent bool,
) (*Delivery, error) {
	d := &Delivery{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setOrderID(orderID),
		d.setDriverID(driverID),
		d.setCustomerID(customerID),
		status.Validate(),
		confirmationStatus.Validate(),
		d.setItems(items),
		deliveredWeight.Validate(),
		d.setDeliveryDate(deliveryDate),
	); err != nil {
		return nil, err
	}

	d.status = status
	d.confirmationStatus = confirmationStatus
	d.deliveredWeight = deliveredWeight
	d.licensePlate = licensePlate
	d.denialReason = denialReason
	d.cancelReason = cancelReason
	d.cancelledBy = cancelledBy
	d.confirmedAt = confirmedAt
	d.reminderSent = reminderSent

	return d, nil
}

// Validate ensures the Delivery instance was properly constructed.
func (d *Delivery) Validate() error {
	if d == nil {
		return ErrDeliveryIsNotConstructed
	}
	return d.guard.Validate(ErrDeliveryIsNotConstructed)
}

// IsEqual compares two deliveries by their unique identifiers.
func (d *Delivery) IsEqual(other *Delivery) bool {
	return other != nil && d.id.IsEqual(other.id)
}

// ID returns the delivery's unique identifier.
func (d *Delivery) ID() kernel.UUID { return d.id }

// OrderID returns the identifier of the fulfilled order.
func (d *Delivery) OrderID() kernel.UUID { return d.orderID }

// DriverID returns the assigned driver's identifier.
func (d *Delivery) DriverID() kernel.UUID { return d.driverID }

// CustomerID returns the order's customer identifier.
func (d *Delivery) CustomerID() kernel.UUID { return d.customerID }

// Status returns the current lifecycle status.
func (d *Delivery) Status() Status { return d.status }

// ConfirmationStatus returns the customer's current verdict.
func (d *Delivery) ConfirmationStatus() ConfirmationStatus { return d.confirmationStatus }

// Items returns the per-category weight entries.
func (d *Delivery) Items() []*Item { return d.items }

// DeliveredWeight returns the persisted derived total weight.
func (d *Delivery) DeliveredWeight() kernel.Weight { return d.deliveredWeight }

// LicensePlate returns the vehicle plate recorded at completion, if any.
func (d *Delivery) LicensePlate() *string { return d.licensePlate }

// DenialReason returns the customer's denial reason, if any.
func (d *Delivery) DenialReason() *string { return d.denialReason }

// CancelReason returns the cancellation reason, if any.
func (d *Delivery) CancelReason() *string { return d.cancelReason }

// CancelledBy returns who the cancellation is attributed to, if cancelled.
func (d *Delivery) CancelledBy() *string { return d.cancelledBy }

// ConfirmedAt returns the confirmation timestamp, if confirmed.
func (d *Delivery) ConfirmedAt() *time.Time { return d.confirmedAt }

// DeliveryDate returns the scheduled pickup date.
func (d *Delivery) DeliveryDate() time.Time { return d.deliveryDate }

// ReminderSent reports whether the upcoming-pickup reminder went out.
func (d *Delivery) ReminderSent() bool { return d.reminderSent }

// MarkInProgress records that the driver started the pickup.
// Allowed only from Assigned.
func (d *Delivery) MarkInProgress() error {
	next, ok := d.status.apply(eventStart)
	if !ok {
		return newInvalidStateTransitionError("start", d, "status Assigned")
	}

	d.status = next
	return nil
}

// MarkCompleted records that the driver finished the physical pickup and
// stores the vehicle license plate when provided. Confirmation is untouched.
// Allowed from Assigned and InProgress.
func (d *Delivery) MarkCompleted(licensePlate string) error {
	next, ok := d.status.apply(eventComplete)
	if !ok {
		return newInvalidStateTransitionError("complete", d, "status Assigned or InProgress")
	}

	d.status = next
	if licensePlate != "" {
		d.licensePlate = &licensePlate
	}
	return nil
}

// Confirm records the customer's acceptance of a completed delivery.
// Requires status Completed and confirmation Pending. Confirmation does not
// trigger settlement; center confirm is a separate driver action.
func (d *Delivery) Confirm(now time.Time) error {
	if d.status != StatusCompleted {
		return newInvalidStateTransitionError("confirm", d, "status Completed and confirmation Pending")
	}

	next, ok := d.confirmationStatus.apply(eventConfirm)
	if !ok {
		return newInvalidStateTransitionError("confirm", d, "status Completed and confirmation Pending")
	}

	d.confirmationStatus = next
	d.confirmedAt = &now
	return nil
}

// Deny records the customer's rejection of a completed delivery.
// Same guard as Confirm; the reason is required. No settlement follows.
func (d *Delivery) Deny(reason string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	if d.status != StatusCompleted {
		return newInvalidStateTransitionError("deny", d, "status Completed and confirmation Pending")
	}

	next, ok := d.confirmationStatus.apply(eventDeny)
	if !ok {
		return newInvalidStateTransitionError("deny", d, "status Completed and confirmation Pending")
	}

	d.confirmationStatus = next
	d.denialReason = &reason
	return nil
}

// Cancel calls the pickup off on the customer's behalf.
// Requires status Assigned or InProgress with confirmation Pending.
func (d *Delivery) Cancel(reason string) error {
	return d.cancel("cancel", reason, CancelledByCustomer)
}

// RecordNonDelivery calls the pickup off on the driver's behalf, for example
// when nobody was home. Same guard and outcome as Cancel, attributed to the
// driver instead of the customer.
func (d *Delivery) RecordNonDelivery(reason string) error {
	return d.cancel("record non-delivery", reason, CancelledByDriver)
}

func (d *Delivery) cancel(op, reason, actor string) error {
	if reason == "" {
		return ErrReasonIsRequired
	}

	if d.confirmationStatus != ConfirmationPending {
		return newInvalidStateTransitionError(op, d, "confirmation Pending")
	}

	next, ok := d.status.apply(eventCancel)
	if !ok {
		return newInvalidStateTransitionError(op, d, "status Assigned or InProgress")
	}

	d.status = next
	d.cancelReason = &reason
	d.cancelledBy = &actor
	return nil
}

// ReplaceItems swaps the delivery's entire item set and recomputes the
// delivered weight as the sum of the new items. Rejects duplicate categories
// and anything on a cancelled delivery; nothing is written on rejection.
func (d *Delivery) ReplaceItems(items []*Item) error {
	if d.status == StatusCancelled {
		return newInvalidStateTransitionError("replace items", d, "status Assigned, InProgress or Completed")
	}

	if err := validateItems(items); err != nil {
		return err
	}

	total := kernel.ZeroWeight()
	for _, item := range items {
		total = total.Add(item.Weight())
	}

	d.items = items
	d.deliveredWeight = total
	return nil
}

// TotalWeight returns the sum of the item weights when items exist, falling
// back to the persisted delivered weight for deliveries captured before
// itemization existed.
func (d *Delivery) TotalWeight() kernel.Weight {
	if len(d.items) == 0 {
		return d.deliveredWeight
	}

	total := kernel.ZeroWeight()
	for _, item := range d.items {
		total = total.Add(item.Weight())
	}
	return total
}

// MarkReminderSent flags that the upcoming-pickup reminder went out.
// Returns ErrReminderAlreadySent on a second call so the sweep stays
// at-most-once per delivery.
func (d *Delivery) MarkReminderSent() error {
	if d.reminderSent {
		return ErrReminderAlreadySent
	}

	d.reminderSent = true
	return nil
}

// EnsureSettleable verifies the delivery is ready for center confirm.
// Drivers settle only completed pickups.
func (d *Delivery) EnsureSettleable() error {
	if d.status != StatusCompleted {
		return newInvalidStateTransitionError("center confirm", d, "status Completed")
	}
	return nil
}

// EnsureSurveyable verifies the delivery may receive a post-delivery survey.
// Surveys are accepted only after the customer confirmed the pickup.
func (d *Delivery) EnsureSurveyable() error {
	if d.status != StatusCompleted || d.confirmationStatus != ConfirmationConfirmed {
		return newInvalidStateTransitionError("submit survey", d, "status Completed and confirmation Confirmed")
	}
	return nil
}

func validateItems(items []*Item) error {
	seen := make(map[kernel.UUID]struct{}, len(items))
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
		if _, ok := seen[item.CategoryID()]; ok {
			return ErrDuplicateItemCategory
		}
		seen[item.CategoryID()] = struct{}{}
	}
	return nil
}

func (d *Delivery) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Delivery) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	d.orderID = orderID
	return nil
}

func (d *Delivery) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	d.driverID = driverID
	return nil
}

func (d *Delivery) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	d.customerID = customerID
	return nil
}

func (d *Delivery) setDeliveryDate(deliveryDate time.Time) error {
	if deliveryDate.IsZero() {
		return ErrDeliveryDateIsRequired
	}
	d.deliveryDate = deliveryDate
	return nil
}

func (d *Delivery) setItems(items []*Item) error {
	if err := validateItems(items); err != nil {
		return err
	}
	d.items = items
	return nil
}
