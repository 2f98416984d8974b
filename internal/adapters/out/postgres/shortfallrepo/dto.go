// Package shortfallrepo provides data transfer objects and mapping functions for shortfall persistence.
// Shortfall records make up the under-delivery ledger that settlement nets against.
package shortfallrepo

import (
	"time"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/shortfall"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShortfallDTO represents the database structure for persisting shortfall records.
type ShortfallDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CustomerID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	DeliveryID      *uuid.UUID      `gorm:"type:uuid;index"`
	EstimatedRange  string          `gorm:"type:varchar(64);not null"`
	MinimumWeight   decimal.Decimal `gorm:"type:decimal(15,3);not null"`
	DeliveredWeight decimal.Decimal `gorm:"type:decimal(15,3);not null"`
	Amount          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	IsDeducted      bool            `gorm:"not null;default:false;index"`
	DeductedFrom    *uuid.UUID      `gorm:"type:uuid"`
	DeductedAt      *time.Time      `gorm:"type:timestamptz"`
	CreatedAt       time.Time       `gorm:"type:timestamptz;not null"`
}

// TableName specifies the database table name for shortfall records.
// Overrides GORM's default naming convention to use "shortfalls" instead of "shortfall_dtos".
func (ShortfallDTO) TableName() string {
	return "shortfalls"
}

// fromDomain converts a shortfall domain aggregate to its database representation.
func fromDomain(aggregate *shortfall.Shortfall) ShortfallDTO {
	var deliveryID *uuid.UUID
	if aggregate.DeliveryID() != nil {
		raw := aggregate.DeliveryID().Bytes()
		deliveryID = &raw
	}

	var deductedFrom *uuid.UUID
	if aggregate.DeductedFrom() != nil {
		raw := aggregate.DeductedFrom().Bytes()
		deductedFrom = &raw
	}

	return ShortfallDTO{
		ID:              aggregate.ID().Bytes(),
		CustomerID:      aggregate.CustomerID().Bytes(),
		DeliveryID:      deliveryID,
		EstimatedRange:  aggregate.EstimatedRange(),
		MinimumWeight:   aggregate.MinimumWeight().Value(),
		DeliveredWeight: aggregate.DeliveredWeight().Value(),
		Amount:          aggregate.Amount(),
		IsDeducted:      aggregate.IsDeducted(),
		DeductedFrom:    deductedFrom,
		DeductedAt:      aggregate.DeductedAt(),
		CreatedAt:       aggregate.CreatedAt(),
	}
}

// toDomain converts a database DTO to a shortfall domain aggregate.
func toDomain(dto ShortfallDTO) (*shortfall.Shortfall, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	var deliveryID *kernel.UUID
	if dto.DeliveryID != nil {
		dID, deliveryErr := kernel.UUIDFromBytes((*dto.DeliveryID)[:])
		if deliveryErr != nil {
			return nil, deliveryErr
		}
		deliveryID = &dID
	}

	var deductedFrom *kernel.UUID
	if dto.DeductedFrom != nil {
		dID, deductedErr := kernel.UUIDFromBytes((*dto.DeductedFrom)[:])
		if deductedErr != nil {
			return nil, deductedErr
		}
		deductedFrom = &dID
	}

	minimumWeight, err := kernel.NewWeight(dto.MinimumWeight)
	if err != nil {
		return nil, err
	}

	deliveredWeight, err := kernel.NewWeight(dto.DeliveredWeight)
	if err != nil {
		return nil, err
	}

	return shortfall.RestoreShortfall(
		id,
		customerID,
		deliveryID,
		dto.EstimatedRange,
		minimumWeight,
		deliveredWeight,
		dto.Amount,
		dto.IsDeducted,
		deductedFrom,
		dto.DeductedAt,
		dto.CreatedAt,
	)
}
