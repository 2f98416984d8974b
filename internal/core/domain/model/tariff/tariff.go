// Package tariff provides the typed settlement configuration snapshot.
// The three tunables the settlement math depends on - per-kg rate, weight-range
// minimums, and driver payout tiers - are fetched once per settlement call and
// passed in explicitly, so malformed configuration can never surface from
// inside the money math. A component that is absent from the snapshot simply
// contributes zero: no rate means no customer amount, no minimums means no
// shortfall detection, no tiers means no driver payout.
package tariff

import (
	"fmt"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Rate is the per-kilogram customer rate and its currency.
type Rate struct {
	amount   decimal.Decimal
	currency string
}

// NewRate creates a per-kg rate. The amount must be positive and the currency
// non-empty.
func NewRate(amount decimal.Decimal, currency string) (Rate, error) {
	if !amount.IsPositive() {
		return Rate{}, errs.NewValueIsInvalidErrorWithCause("rate",
			fmt.Errorf("%s is not positive", amount))
	}
	if currency == "" {
		return Rate{}, errs.NewValueIsRequiredError("currency")
	}

	return Rate{amount: amount, currency: currency}, nil
}

// Amount returns the per-kg amount.
func (r Rate) Amount() decimal.Decimal { return r.amount }

// Currency returns the rate's currency code.
func (r Rate) Currency() string { return r.currency }

// RangeMinimum is the minimum acceptable total weight for one declared
// weight-range label, e.g. label "5-10" with minimum 5 kg.
type RangeMinimum struct {
	label   string
	minimum kernel.Weight
}

// NewRangeMinimum creates a minimum entry for a range label.
func NewRangeMinimum(label string, minimum kernel.Weight) (RangeMinimum, error) {
	if label == "" {
		return RangeMinimum{}, errs.NewValueIsRequiredError("range label")
	}
	if err := minimum.Validate(); err != nil {
		return RangeMinimum{}, err
	}

	return RangeMinimum{label: label, minimum: minimum}, nil
}

// Label returns the declared range label.
func (m RangeMinimum) Label() string { return m.label }

// Minimum returns the minimum acceptable weight for the range.
func (m RangeMinimum) Minimum() kernel.Weight { return m.minimum }

// PayoutTier is one driver payout band: deliveries whose visit count falls in
// [MinVisits, MaxVisits] earn the tier's per-kg rate. A nil MaxVisits means
// "and above".
type PayoutTier struct {
	minVisits int
	maxVisits *int
	rate      decimal.Decimal
}

// NewPayoutTier creates a payout band. minVisits must be at least 1, maxVisits
// (when bounded) must not undercut minVisits, and the rate must not be negative.
func NewPayoutTier(minVisits int, maxVisits *int, rate decimal.Decimal) (PayoutTier, error) {
	if minVisits < 1 {
		return PayoutTier{}, errs.NewValueIsOutOfRangeError("minVisits", minVisits, 1, "unbounded")
	}
	if maxVisits != nil && *maxVisits < minVisits {
		return PayoutTier{}, errs.NewValueIsInvalidErrorWithCause("maxVisits",
			fmt.Errorf("%d is below minVisits %d", *maxVisits, minVisits))
	}
	if rate.IsNegative() {
		return PayoutTier{}, errs.NewValueIsInvalidErrorWithCause("tier rate",
			fmt.Errorf("%s is negative", rate))
	}

	return PayoutTier{minVisits: minVisits, maxVisits: maxVisits, rate: rate}, nil
}

// MinVisits returns the inclusive lower bound of the band.
func (t PayoutTier) MinVisits() int { return t.minVisits }

// MaxVisits returns the inclusive upper bound, or nil for an open-ended band.
func (t PayoutTier) MaxVisits() *int { return t.maxVisits }

// Rate returns the tier's per-kg driver rate.
func (t PayoutTier) Rate() decimal.Decimal { return t.rate }

// contains reports whether the visit count falls inside the band.
func (t PayoutTier) contains(visitCount int) bool {
	if visitCount < t.minVisits {
		return false
	}
	return t.maxVisits == nil || visitCount <= *t.maxVisits
}

// Snapshot is the complete settlement configuration at one point in time.
// Any component may be absent; lookups then report the degraded zero value.
type Snapshot struct {
	rate     *Rate
	minimums []RangeMinimum
	tiers    []PayoutTier
}

// NewSnapshot assembles a configuration snapshot. A nil rate, empty minimums,
// or empty tiers are all legal and mean that component contributes nothing.
func NewSnapshot(rate *Rate, minimums []RangeMinimum, tiers []PayoutTier) Snapshot {
	return Snapshot{rate: rate, minimums: minimums, tiers: tiers}
}

// Rate returns the per-kg customer rate and whether one is configured.
func (s Snapshot) Rate() (Rate, bool) {
	if s.rate == nil {
		return Rate{}, false
	}
	return *s.rate, true
}

// MinimumFor returns the minimum weight configured for the given range label
// and whether one exists. An unknown label disables shortfall detection for
// that order.
func (s Snapshot) MinimumFor(label string) (kernel.Weight, bool) {
	for _, m := range s.minimums {
		if m.label == label {
			return m.minimum, true
		}
	}
	return kernel.Weight{}, false
}

// DriverRateFor returns the per-kg driver rate of the first tier containing
// the visit count, or zero when no tier matches.
func (s Snapshot) DriverRateFor(visitCount int) decimal.Decimal {
	for _, t := range s.tiers {
		if t.contains(visitCount) {
			return t.rate
		}
	}
	return decimal.Zero
}
