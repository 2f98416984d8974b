package ports

import (
	"context"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/shortfall"
)

// ShortfallRepository defines the persistence contract for the shortfall
// ledger. Records are append-mostly: once closed they are never reopened.
type ShortfallRepository interface {
	// Add persists a new shortfall record.
	Add(ctx context.Context, aggregate *shortfall.Shortfall) error

	// Update persists the closing of a shortfall record.
	Update(ctx context.Context, aggregate *shortfall.Shortfall) error

	// GetOutstandingForCustomer retrieves the customer's open shortfalls
	// ordered oldest first. When called inside a unit-of-work transaction the
	// returned rows are locked FOR UPDATE, serializing concurrent settlements
	// of the same customer.
	GetOutstandingForCustomer(ctx context.Context, customerID kernel.UUID) ([]*shortfall.Shortfall, error)
}
