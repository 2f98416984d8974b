package ports

import (
	"context"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/tariff"
)

// SettlementConfigProvider assembles the tariff snapshot used by one
// settlement call. Missing or malformed configuration degrades to the zero
// contribution of the affected component and is logged by the provider,
// never surfaced as an error into the settlement math.
type SettlementConfigProvider interface {
	Snapshot(ctx context.Context) (tariff.Snapshot, error)
}

// OrderInfo is the slice of an order the settlement engine needs: who the
// pickup belongs to and which weight range the customer declared.
type OrderInfo struct {
	ID                   kernel.UUID
	CustomerID           kernel.UUID
	EstimatedWeightRange string
}

// OrderProvider resolves order details owned by the ordering subsystem.
type OrderProvider interface {
	// GetOrder retrieves order info by id.
	// Returns errs.ObjectNotFoundError when the order does not exist.
	GetOrder(ctx context.Context, id kernel.UUID) (OrderInfo, error)
}

// CategoryCatalog validates item category identifiers against the catalog
// owned by the ordering subsystem.
type CategoryCatalog interface {
	// Exists reports whether the category id is known.
	Exists(ctx context.Context, categoryID kernel.UUID) (bool, error)
}

// NotificationSink delivers customer-facing notifications. Implementations
// are external channels (SMS, push); failures are logged by the caller and
// never abort the surrounding operation.
type NotificationSink interface {
	// SendReminder notifies the customer that their delivery is approaching.
	SendReminder(ctx context.Context, customerID kernel.UUID, deliveryID kernel.UUID) error
}
