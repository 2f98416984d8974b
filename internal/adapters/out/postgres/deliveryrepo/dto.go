// Package deliveryrepo provides data transfer objects and mapping functions for delivery persistence.
// This package implements the repository pattern for the delivery domain aggregate, handling
// the conversion between domain entities and database representations.
package deliveryrepo

import (
	"time"

	"settlement/internal/core/domain/model/delivery"
	"settlement/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DeliveryDTO represents the database structure for persisting delivery aggregates.
// Maps delivery domain entities to relational database tables with proper foreign key relationships.
type DeliveryDTO struct {
	ID                 uuid.UUID         `gorm:"type:uuid;primaryKey"`
	OrderID            uuid.UUID         `gorm:"type:uuid;not null;index"`
	DriverID           uuid.UUID         `gorm:"type:uuid;not null;index"`
	CustomerID         uuid.UUID         `gorm:"type:uuid;not null;index"`
	Status             int               `gorm:"type:int;not null"`
	ConfirmationStatus int               `gorm:"type:int;not null"`
	DeliveredWeight    decimal.Decimal   `gorm:"type:decimal(15,3);not null"`
	LicensePlate       *string           `gorm:"type:varchar(32)"`
	DenialReason       *string           `gorm:"type:text"`
	CancelReason       *string           `gorm:"type:text"`
	CancelledBy        *string           `gorm:"type:varchar(32)"`
	ConfirmedAt        *time.Time        `gorm:"type:timestamptz"`
	DeliveryDate       time.Time         `gorm:"type:timestamptz;not null;index"`
	ReminderSent       bool              `gorm:"not null;default:false"`
	Items              []DeliveryItemDTO `gorm:"foreignKey:DeliveryID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for delivery entities.
// Overrides GORM's default naming convention to use "deliveries" instead of "delivery_dtos".
func (DeliveryDTO) TableName() string {
	return "deliveries"
}

// DeliveryItemDTO represents the database structure for persisting weighed item entries.
// Links to delivery via foreign key and references the waste category catalog.
type DeliveryItemDTO struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey"`
	DeliveryID uuid.UUID       `gorm:"type:uuid;not null;index"`
	CategoryID uuid.UUID       `gorm:"type:uuid;not null"`
	Weight     decimal.Decimal `gorm:"type:decimal(15,3);not null"`
}

// TableName specifies the database table name for delivery item entities.
// Overrides GORM's default naming convention to use "delivery_items" instead of "delivery_item_dtos".
func (DeliveryItemDTO) TableName() string {
	return "delivery_items"
}

// fromDomain converts a delivery domain aggregate to its database representation.
// Maps all aggregate entities including weighed items and their current state.
func fromDomain(aggregate *delivery.Delivery) DeliveryDTO {
	deliveryID := aggregate.ID().Bytes()
	items := make([]DeliveryItemDTO, 0, len(aggregate.Items()))

	for _, item := range aggregate.Items() {
		items = append(items, DeliveryItemDTO{
			ID:         item.ID().Bytes(),
			DeliveryID: deliveryID,
			CategoryID: item.CategoryID().Bytes(),
			Weight:     item.Weight().Value(),
		})
	}

	return DeliveryDTO{
		ID:                 deliveryID,
		OrderID:            aggregate.OrderID().Bytes(),
		DriverID:           aggregate.DriverID().Bytes(),
		CustomerID:         aggregate.CustomerID().Bytes(),
		Status:             int(aggregate.Status()),
		ConfirmationStatus: int(aggregate.ConfirmationStatus()),
		DeliveredWeight:    aggregate.DeliveredWeight().Value(),
		LicensePlate:       aggregate.LicensePlate(),
		DenialReason:       aggregate.DenialReason(),
		CancelReason:       aggregate.CancelReason(),
		CancelledBy:        aggregate.CancelledBy(),
		ConfirmedAt:        aggregate.ConfirmedAt(),
		DeliveryDate:       aggregate.DeliveryDate(),
		ReminderSent:       aggregate.ReminderSent(),
		Items:              items,
	}
}

// toDomain converts a database DTO to a delivery domain aggregate.
// Reconstructs the complete aggregate including all weighed items using RestoreDelivery.
func toDomain(dto DeliveryDTO) (*delivery.Delivery, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	driverID, err := kernel.UUIDFromBytes(dto.DriverID[:])
	if err != nil {
		return nil, err
	}

	customerID, err := kernel.UUIDFromBytes(dto.CustomerID[:])
	if err != nil {
		return nil, err
	}

	deliveredWeight, err := kernel.NewWeight(dto.DeliveredWeight)
	if err != nil {
		return nil, err
	}

	items := make([]*delivery.Item, 0, len(dto.Items))
	for _, itemDto := range dto.Items {
		item, itemErr := itemToDomain(itemDto)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	return delivery.RestoreDelivery(
		id,
		orderID,
		driverID,
		customerID,
		delivery.Status(dto.Status),
		delivery.ConfirmationStatus(dto.ConfirmationStatus),
		items,
		deliveredWeight,
		dto.LicensePlate,
		dto.DenialReason,
		dto.CancelReason,
		dto.CancelledBy,
		dto.ConfirmedAt,
		dto.DeliveryDate,
		dto.ReminderSent,
	)
}

// itemToDomain converts a delivery item DTO to domain entity.
// Uses RestoreItem to reconstruct the entity with its persisted state.
func itemToDomain(dto DeliveryItemDTO) (*delivery.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	categoryID, err := kernel.UUIDFromBytes(dto.CategoryID[:])
	if err != nil {
		return nil, err
	}

	weight, err := kernel.NewWeight(dto.Weight)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreItem(id, categoryID, weight)
}
