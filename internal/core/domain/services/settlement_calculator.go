package services

import (
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/shortfall"
	"settlement/internal/core/domain/model/tariff"
	"settlement/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ShortfallDetection describes an under-delivery found during settlement: the
// delivered total fell below the minimum configured for the order's declared
// weight range. The caller records it as a new outstanding shortfall; it is
// never deducted inside the same settlement, only by a later one.
type ShortfallDetection struct {
	EstimatedRange  string
	MinimumWeight   kernel.Weight
	DeliveredWeight kernel.Weight
}

// Magnitude returns the positive size of the gap between minimum and delivered
// weight.
func (d ShortfallDetection) Magnitude() decimal.Decimal {
	return d.MinimumWeight.Value().Sub(d.DeliveredWeight.Value())
}

// Settlement is the computed outcome of one center-confirm call. Amounts are
// rounded to two decimal places; intermediate arithmetic is exact.
type Settlement struct {
	TotalWeight    kernel.Weight
	Rate           decimal.Decimal
	BaseAmount     decimal.Decimal
	Deduction      decimal.Decimal
	CustomerAmount decimal.Decimal
	DriverRate     decimal.Decimal
	DriverAmount   decimal.Decimal
	VisitCount     int
	Currency       string
	NewShortfall   *ShortfallDetection
}

// SettlementCalculator is a domain service computing the amounts owed to the
// customer and the driver for one confirmed pickup.
//
// Business rules:
//   - The customer earns rate x total weight, minus the value of all
//     outstanding shortfalls from prior deliveries, clamped at zero.
//   - The driver earns the payout-tier rate for the customer's visit count,
//     times total weight.
//   - A delivery below its range minimum produces a new shortfall detection,
//     which never reduces its own settlement.
//   - Missing configuration degrades to a zero contribution; the calculator
//     never fails on an absent rate, minimum, or tier.
//
// The calculator is pure. Loading the shortfall set, counting visits, and
// committing the resulting ledger writes are the caller's responsibility.
type SettlementCalculator struct{}

// NewSettlementCalculator creates a new SettlementCalculator instance.
func NewSettlementCalculator() SettlementCalculator {
	return SettlementCalculator{}
}

// Calculate computes the settlement for one delivery.
//
// Parameters:
//   - totalWeight: the delivery's itemized total weight
//   - rangeLabel: the order's declared weight range, empty when none was declared
//   - outstanding: open shortfalls of this customer from prior deliveries, FIFO
//   - snapshot: the tariff configuration fetched for this settlement
//   - visitCount: this customer's confirmed-visit ordinal, starting at 1
//
// Returns the computed Settlement or a validation error when the inputs
// themselves are malformed.
func (c SettlementCalculator) Calculate(totalWeight kernel.Weight, rangeLabel string,
	outstanding []*shortfall.Shortfall, snapshot tariff.Snapshot, visitCount int) (Settlement, error) {
	if err := totalWeight.Validate(); err != nil {
		return Settlement{}, err
	}
	if visitCount < 1 {
		return Settlement{}, errs.NewValueIsOutOfRangeError("visitCount", visitCount, 1, "unbounded")
	}
	for _, s := range outstanding {
		if err := s.Validate(); err != nil {
			return Settlement{}, err
		}
	}

	result := Settlement{TotalWeight: totalWeight, VisitCount: visitCount}

	rateAmount := decimal.Zero
	if rate, ok := snapshot.Rate(); ok {
		rateAmount = rate.Amount()
		result.Currency = rate.Currency()
	}

	result.Rate = rateAmount
	result.BaseAmount = rateAmount.Mul(totalWeight.Value())
	result.Deduction = rateAmount.Mul(outstandingMagnitude(outstanding))

	customerAmount := result.BaseAmount.Sub(result.Deduction)
	if customerAmount.IsNegative() {
		customerAmount = decimal.Zero
	}
	result.CustomerAmount = customerAmount.Round(2)
	result.DriverRate = snapshot.DriverRateFor(visitCount)
	result.DriverAmount = result.DriverRate.Mul(totalWeight.Value()).Round(2)

	result.NewShortfall = c.detectShortfall(totalWeight, rangeLabel, snapshot)

	return result, nil
}

// detectShortfall reports an under-delivery when the order declared a weight
// range, a minimum is configured for it, and the delivered total fell short.
func (c SettlementCalculator) detectShortfall(totalWeight kernel.Weight,
	rangeLabel string, snapshot tariff.Snapshot) *ShortfallDetection {
	if rangeLabel == "" {
		return nil
	}

	minimum, ok := snapshot.MinimumFor(rangeLabel)
	if !ok {
		return nil
	}
	if !totalWeight.LessThan(minimum) {
		return nil
	}

	return &ShortfallDetection{
		EstimatedRange:  rangeLabel,
		MinimumWeight:   minimum,
		DeliveredWeight: totalWeight,
	}
}

func outstandingMagnitude(outstanding []*shortfall.Shortfall) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range outstanding {
		sum = sum.Add(s.Magnitude())
	}
	return sum
}
