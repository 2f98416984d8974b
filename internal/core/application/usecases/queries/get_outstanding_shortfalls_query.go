package queries

import (
	"errors"
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOutstandingShortfallsQueryIsNotConstructed = errors.New(
	"GetOutstandingShortfallsQuery must be created via NewGetOutstandingShortfallsQuery constructor",
)

// GetOutstandingShortfallsQuery retrieves a customer's open shortfall records,
// oldest first, for display before the next settlement nets them.
type GetOutstandingShortfallsQuery struct {
	customerID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetOutstandingShortfallsQuery creates a query for the given customer.
func NewGetOutstandingShortfallsQuery(customerID kernel.UUID) (GetOutstandingShortfallsQuery, error) {
	if err := customerID.Validate(); err != nil {
		return GetOutstandingShortfallsQuery{}, err
	}

	return GetOutstandingShortfallsQuery{
		customerID: customerID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOutstandingShortfallsQuery) Validate() error {
	return q.guard.Validate(ErrGetOutstandingShortfallsQueryIsNotConstructed)
}

// CustomerID returns the customer whose shortfalls are listed.
func (q GetOutstandingShortfallsQuery) CustomerID() kernel.UUID {
	return q.customerID
}

// GetOutstandingShortfallsQueryResponse is one open shortfall record.
// Amount is negative; DeliveryID is nil for manually entered records.
type GetOutstandingShortfallsQueryResponse struct {
	ID              kernel.UUID
	DeliveryID      *kernel.UUID
	EstimatedRange  string
	MinimumWeight   decimal.Decimal
	DeliveredWeight decimal.Decimal
	Amount          decimal.Decimal
	CreatedAt       time.Time
}
