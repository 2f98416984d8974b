// Package orderrepo provides a read-only adapter over the ordering
// subsystem's tables. Settlement never mutates orders; it only resolves the
// customer and declared weight range behind a delivery.
package orderrepo

import (
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/ports"

	"github.com/google/uuid"
)

// OrderDTO represents the slice of the orders table the settlement engine
// reads. The ordering subsystem owns the full row; only the columns needed
// for settlement are mapped here.
type OrderDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	CustomerID           uuid.UUID `gorm:"type:uuid;not null;index"`
	EstimatedWeightRange string    `gorm:"type:varchar(64);not null"`
}

// TableName specifies the database table name for order rows.
func (OrderDTO) TableName() string {
	return "orders"
}

// toInfo converts an order row to the port-level order info.
func toInfo(dto OrderDTO) (ports.OrderInfo, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OrderInfo{}, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return ports.OrderInfo{}, err
	}

	return ports.OrderInfo{
		ID:                   id,
		CustomerID:           customerID,
		EstimatedWeightRange: dto.EstimatedWeightRange,
	}, nil
}
