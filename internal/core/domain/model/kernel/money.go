package kernel

import (
	"fmt"

	"settlement/internal/pkg/errs"
	"settlement/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of decimal places monetary amounts are rounded to.
const moneyScale = 2

// ErrMoneyIsNotConstructed is returned when attempting to use an improperly initialized Money.
// Money must be created using the NewMoney constructor.
var ErrMoneyIsNotConstructed = errs.NewValueIsRequiredError(
	"money must be created via NewMoney constructor")

// ErrCurrencyIsRequired is returned when creating Money without a currency code.
var ErrCurrencyIsRequired = errs.NewValueIsRequiredError("currency")

// Money represents a monetary amount in a single currency as a fixed-point decimal.
// Money is an immutable value object; the zero value is invalid and fails
// validation - use NewMoney to create instances.
//
// Amounts keep full precision through intermediate arithmetic; Round applies the
// two-decimal-place presentation used by wallet credits.
//
// Example:
//
//	amount := rate.Mul(totalWeight)
//	payout, err := kernel.NewMoney(amount, "IRR")
//	if err != nil {
//	    // handle validation error
//	}
type Money struct {
	amount   decimal.Decimal
	currency string

	guard guard.ConstructorGuard
}

// NewMoney creates a Money value with the given amount and currency code.
// The currency must be non-empty; the amount may carry any sign.
func NewMoney(amount decimal.Decimal, currency string) (Money, error) {
	if currency == "" {
		return Money{}, ErrCurrencyIsRequired
	}

	return Money{
		amount:   amount,
		currency: currency,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// Amount returns the underlying decimal amount at full precision.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code.
func (m Money) Currency() string {
	return m.currency
}

// IsPositive reports whether the amount is strictly greater than zero.
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// Round returns the amount rounded to two decimal places in the same currency.
func (m Money) Round() Money {
	return Money{
		amount:   m.amount.Round(moneyScale),
		currency: m.currency,
		guard:    guard.NewConstructorGuard(),
	}
}

// IsEqual compares two Money values by amount and currency.
func (m Money) IsEqual(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// String renders the amount with two decimal places and the currency code,
// e.g. "20500.00 IRR".
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(moneyScale), m.currency)
}

// Validate checks that the Money was created through NewMoney.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}
