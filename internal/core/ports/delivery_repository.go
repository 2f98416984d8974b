// Package ports defines repository and collaborator interfaces for the
// settlement domain. These interfaces establish contracts between the domain
// layer and infrastructure, enabling dependency inversion and testability.
package ports

import (
	"context"
	"time"

	"settlement/internal/core/domain/model/delivery"
	"settlement/internal/core/domain/model/kernel"
)

// DeliveryRepository defines the persistence contract for delivery aggregates.
// Provides methods for storing, retrieving, and querying deliveries with their
// complete state including the itemized weight entries.
type DeliveryRepository interface {
	// Add persists a new delivery aggregate to storage.
	// The delivery must be valid and not already exist in the repository.
	Add(ctx context.Context, aggregate *delivery.Delivery) error

	// Update persists changes to an existing delivery aggregate, including
	// full replacement of its item set.
	Update(ctx context.Context, aggregate *delivery.Delivery) error

	// Get retrieves a delivery aggregate by its unique identifier.
	// Returns the complete delivery with all items.
	Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error)

	// GetDueForReminder retrieves deliveries whose scheduled date falls inside
	// [from, to), that have not yet been reminded, and that are still awaiting
	// pickup (Assigned or InProgress).
	GetDueForReminder(ctx context.Context, from time.Time, to time.Time) ([]*delivery.Delivery, error)

	// CountConfirmedForCustomer counts the customer's deliveries that are both
	// Completed and Confirmed, excluding the given delivery. Used to derive
	// the visit count during settlement.
	CountConfirmedForCustomer(ctx context.Context, customerID kernel.UUID, excluding kernel.UUID) (int, error)
}
