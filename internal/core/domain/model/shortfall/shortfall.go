// Package shortfall provides the domain model for under-delivery records.
// A Shortfall is created when a settled delivery weighs in below the minimum
// configured for the order's declared weight range, and is closed exactly once
// when a later delivery's payout absorbs it.
package shortfall

import (
	"errors"
	"fmt"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrShortfallIsNotConstructed is returned when a Shortfall was not created
	// through NewShortfall or RestoreShortfall.
	ErrShortfallIsNotConstructed = errors.New("Shortfall must be created via NewShortfall or RestoreShortfall constructors")
	// ErrNoShortfall is returned when the delivered weight meets or exceeds the
	// minimum: records exist only for genuine shortfalls.
	ErrNoShortfall = errors.New("delivered weight meets the minimum, nothing to record")
	// ErrShortfallAlreadyDeducted is returned when closing a record twice.
	// Closed records are immutable.
	ErrShortfallAlreadyDeducted = errors.New("shortfall was already deducted")
	// ErrEstimatedRangeIsRequired is returned when creating a record without
	// the order's declared weight range label.
	ErrEstimatedRangeIsRequired = errs.NewValueIsRequiredError("estimated range")
)

// Shortfall is one under-delivery event for a customer. Its amount is the
// strictly negative gap between delivered and minimum weight; the record stays
// outstanding until a later delivery's settlement nets it against that
// delivery's payout and closes it.
//
// Invariants:
//   - Amount() < 0 for every record in existence
//   - once deducted, the record never changes again
type Shortfall struct {
	id         kernel.UUID
	customerID kernel.UUID
	// deliveryID is the delivery that produced the shortfall;
	// nil only for records entered manually by support staff
	deliveryID *kernel.UUID

	// estimatedRange is the order's declared weight range label, e.g. "5-10"
	estimatedRange string
	minimumWeight  kernel.Weight
	deliveredWeight kernel.Weight
	// amount = delivered - minimum, always negative
	amount decimal.Decimal

	isDeducted  bool
	deductedFrom *kernel.UUID
	deductedAt   *time.Time

	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewShortfall records an under-delivery detected at settlement time.
// The amount is derived as delivered minus minimum and must come out strictly
// negative; ErrNoShortfall is returned otherwise so callers never store
// non-shortfalls.
func NewShortfall(
	customerID kernel.UUID,
	deliveryID kernel.UUID,
	estimatedRange string,
	minimumWeight kernel.Weight,
	deliveredWeight kernel.Weight,
	now time.Time,
) (*Shortfall, error) {
	if !deliveredWeight.LessThan(minimumWeight) {
		return nil, ErrNoShortfall
	}
	if err := deliveryID.Validate(); err != nil {
		return nil, err
	}

	amount := deliveredWeight.Value().Sub(minimumWeight.Value())
	return RestoreShortfall(
		kernel.NewUUID(), customerID, &deliveryID,
		estimatedRange, minimumWeight, deliveredWeight, amount,
		false, nil, nil, now,
	)
}

// RestoreShortfall reconstructs a Shortfall from persistent storage.
// A nil deliveryID marks a manual entry. The amount must be strictly negative.
func RestoreShortfall(
	id kernel.UUID,
	customerID kernel.UUID,
	deliveryID *kernel.UUID,
	estimatedRange string,
	minimumWeight kernel.Weight,
	deliveredWeight kernel.Weight,
	amount decimal.Decimal,
	isDeducted bool,
	deductedFrom *kernel.UUID,
	deductedAt *time.Time,
	createdAt time.Time,
) (*Shortfall, error) {
	s := &Shortfall{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setCustomerID(customerID),
		s.setEstimatedRange(estimatedRange),
		minimumWeight.Validate(),
		deliveredWeight.Validate(),
		s.setAmount(amount),
	); err != nil {
		return nil, err
	}

	if deliveryID != nil {
		if err := deliveryID.Validate(); err != nil {
			return nil, err
		}
	}

	s.deliveryID = deliveryID
	s.minimumWeight = minimumWeight
	s.deliveredWeight = deliveredWeight
	s.isDeducted = isDeducted
	s.deductedFrom = deductedFrom
	s.deductedAt = deductedAt
	s.createdAt = createdAt

	return s, nil
}

// Validate ensures the Shortfall was properly constructed.
func (s *Shortfall) Validate() error {
	if s == nil {
		return ErrShortfallIsNotConstructed
	}
	return s.guard.Validate(ErrShortfallIsNotConstructed)
}

// ID returns the record's unique identifier.
func (s *Shortfall) ID() kernel.UUID { return s.id }

// CustomerID returns the customer the shortfall belongs to.
func (s *Shortfall) CustomerID() kernel.UUID { return s.customerID }

// DeliveryID returns the delivery that produced the shortfall,
// or nil for manual entries.
func (s *Shortfall) DeliveryID() *kernel.UUID { return s.deliveryID }

// EstimatedRange returns the order's declared weight range label.
func (s *Shortfall) EstimatedRange() string { return s.estimatedRange }

// MinimumWeight returns the configured minimum for the declared range.
func (s *Shortfall) MinimumWeight() kernel.Weight { return s.minimumWeight }

// DeliveredWeight returns the weight actually delivered.
func (s *Shortfall) DeliveredWeight() kernel.Weight { return s.deliveredWeight }

// Amount returns the strictly negative shortfall amount in kilograms.
func (s *Shortfall) Amount() decimal.Decimal { return s.amount }

// Magnitude returns the absolute shortfall in kilograms.
func (s *Shortfall) Magnitude() decimal.Decimal { return s.amount.Abs() }

// IsDeducted reports whether the record has been closed.
func (s *Shortfall) IsDeducted() bool { return s.isDeducted }

// DeductedFrom returns the delivery whose settlement absorbed the shortfall.
func (s *Shortfall) DeductedFrom() *kernel.UUID { return s.deductedFrom }

// DeductedAt returns when the record was closed.
func (s *Shortfall) DeductedAt() *time.Time { return s.deductedAt }

// CreatedAt returns when the shortfall was recorded.
func (s *Shortfall) CreatedAt() time.Time { return s.createdAt }

// Close marks the shortfall as deducted by the given delivery's settlement.
// Returns ErrShortfallAlreadyDeducted on a second call; closed records never
// reopen or change.
func (s *Shortfall) Close(deductingDelivery kernel.UUID, now time.Time) error {
	if s.isDeducted {
		return ErrShortfallAlreadyDeducted
	}
	if err := deductingDelivery.Validate(); err != nil {
		return err
	}

	s.isDeducted = true
	s.deductedFrom = &deductingDelivery
	s.deductedAt = &now
	return nil
}

func (s *Shortfall) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Shortfall) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	s.customerID = customerID
	return nil
}

func (s *Shortfall) setEstimatedRange(estimatedRange string) error {
	if estimatedRange == "" {
		return ErrEstimatedRangeIsRequired
	}
	s.estimatedRange = estimatedRange
	return nil
}

func (s *Shortfall) setAmount(amount decimal.Decimal) error {
	if !amount.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("shortfall amount",
			fmt.Errorf("%s is not negative", amount))
	}
	s.amount = amount
	return nil
}
