package queries

import (
	"context"
	"time"

	"settlement/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOutstandingShortfallsQueryHandler reads open shortfall records straight
// from the database, bypassing the aggregate, for display purposes.
type GetOutstandingShortfallsQueryHandler struct {
	db *gorm.DB
}

// NewGetOutstandingShortfallsQueryHandler creates a handler for shortfall listings.
// Requires a GORM database connection for query execution.
func NewGetOutstandingShortfallsQueryHandler(db *gorm.DB) GetOutstandingShortfallsQueryHandler {
	return GetOutstandingShortfallsQueryHandler{db: db}
}

// Handle executes the query. Results come back oldest first, matching the
// FIFO order in which settlement will net them.
func (h GetOutstandingShortfallsQueryHandler) Handle(
	ctx context.Context,
	query GetOutstandingShortfallsQuery,
) ([]GetOutstandingShortfallsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	shortfalls := make([]GetOutstandingShortfallsQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			delivery_id,
			estimated_range,
			minimum_weight,
			delivered_weight,
			amount,
			created_at
		FROM shortfalls
		WHERE customer_id = ? AND is_deducted = false
		ORDER BY created_at ASC
	`, query.CustomerID().Bytes()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var resp GetOutstandingShortfallsQueryResponse
		var id uuid.UUID
		var deliveryID *uuid.UUID
		var minimumWeight, deliveredWeight, amount decimal.Decimal
		var createdAt time.Time

		err = rows.Scan(
			&id,
			&deliveryID,
			&resp.EstimatedRange,
			&minimumWeight,
			&deliveredWeight,
			&amount,
			&createdAt,
		)
		if err != nil {
			return nil, err
		}

		recordID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = recordID

		if deliveryID != nil {
			dID, dErr := kernel.UUIDFromBytes((*deliveryID)[:])
			if dErr != nil {
				return nil, dErr
			}
			resp.DeliveryID = &dID
		}

		resp.MinimumWeight = minimumWeight
		resp.DeliveredWeight = deliveredWeight
		resp.Amount = amount
		resp.CreatedAt = createdAt
		shortfalls = append(shortfalls, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return shortfalls, nil
}
