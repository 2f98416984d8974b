package kernel

import (
	"fmt"

	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// weightScale is the number of decimal places weights are rendered with.
// Arithmetic keeps full precision; rounding happens only at presentation.
const weightScale = 2

// ErrWeightIsNotConstructed is returned when attempting to use an improperly initialized Weight.
// Weights must be created using NewWeight, NewWeightFromString, or ZeroWeight.
var ErrWeightIsNotConstructed = errs.NewValueIsRequiredError(
	"weight must be created via NewWeight, NewWeightFromString, or ZeroWeight constructors")

// Weight represents a non-negative mass in kilograms as a fixed-point decimal.
// Weight is an immutable value object; the zero value is invalid and fails
// validation - use the constructors to create instances.
//
// Example:
//
//	w, err := kernel.NewWeightFromString("12.50")
//	if err != nil {
//	    // handle validation error
//	}
//	total := w.Add(other)
type Weight struct {
	value decimal.Decimal

	guard guard.ConstructorGuard
}

// NewWeight creates a Weight from a decimal value.
// Returns an error if the value is negative.
func NewWeight(value decimal.Decimal) (Weight, error) {
	if value.IsNegative() {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%s is negative", value))
	}

	return Weight{
		value: value,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// NewWeightFromString parses a Weight from its decimal string representation.
// Returns an error for unparseable or negative input.
func NewWeightFromString(s string) (Weight, error) {
	value, err := decimal.NewFromString(s)
	if err != nil {
		return Weight{}, errs.NewValueIsInvalidErrorWithCause("weight", err)
	}

	return NewWeight(value)
}

// ZeroWeight creates a valid Weight of exactly zero kilograms.
func ZeroWeight() Weight {
	return Weight{
		value: decimal.Zero,
		guard: guard.NewConstructorGuard(),
	}
}

// Value returns the underlying decimal value at full precision.
func (w Weight) Value() decimal.Decimal {
	return w.value
}

// Add returns the sum of two weights.
func (w Weight) Add(other Weight) Weight {
	return Weight{
		value: w.value.Add(other.value),
		guard: guard.NewConstructorGuard(),
	}
}

// LessThan reports whether w is strictly smaller than other.
func (w Weight) LessThan(other Weight) bool {
	return w.value.LessThan(other.value)
}

// IsZero reports whether the weight is exactly zero.
func (w Weight) IsZero() bool {
	return w.value.IsZero()
}

// IsEqual compares two weights by numeric value.
func (w Weight) IsEqual(other Weight) bool {
	return w.value.Equal(other.value)
}

// String renders the weight with two decimal places, e.g. "20.50".
func (w Weight) String() string {
	return w.value.StringFixed(weightScale)
}

// Validate checks that the Weight was created through a constructor.
func (w Weight) Validate() error {
	return w.guard.Validate(ErrWeightIsNotConstructed)
}
