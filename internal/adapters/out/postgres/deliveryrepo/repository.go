package deliveryrepo

import (
	"context"
	"errors"
	"time"

	"settlement/internal/core/domain/model/delivery"
	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormDeliveryRepository implements DeliveryRepository using GORM.
type GormDeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormDeliveryRepository creates a new GORM delivery repository.
func NewGormDeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormDeliveryRepository {
	return &GormDeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new delivery to the database.
func (r *GormDeliveryRepository) Add(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing delivery to the database.
// The item set is authoritative: rows missing from the aggregate are removed
// before the upsert, since item replacement issues fresh identifiers and
// would otherwise leave the previous rows behind.
func (r *GormDeliveryRepository) Update(ctx context.Context, aggregate *delivery.Delivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	keep := make([]uuid.UUID, 0, len(dto.Items))
	for _, item := range dto.Items {
		keep = append(keep, item.ID)
	}

	stale := r.db.WithContext(ctx).Where("delivery_id = ?", dto.ID)
	if len(keep) > 0 {
		stale = stale.Where("id NOT IN ?", keep)
	}
	if err := stale.Delete(&DeliveryItemDTO{}).Error; err != nil {
		return err
	}

	// Use Session with FullSaveAssociations to properly update nested associations
	result := r.db.WithContext(ctx).Session(&gorm.Session{FullSaveAssociations: true}).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves a delivery by ID.
func (r *GormDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DeliveryDTO
	if err := r.db.WithContext(ctx).Preload("Items").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetDueForReminder retrieves deliveries scheduled inside the given window that
// have not been reminded yet. Only deliveries still waiting for the driver to
// finish are returned; terminal deliveries need no reminder.
func (r *GormDeliveryRepository) GetDueForReminder(ctx context.Context, from, to time.Time) ([]*delivery.Delivery, error) {
	var dtos []DeliveryDTO
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("delivery_date >= ? AND delivery_date < ?", from, to).
		Where("reminder_sent = false").
		Where("status IN ?", []int{int(delivery.StatusAssigned), int(delivery.StatusInProgress)}).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	deliveries := make([]*delivery.Delivery, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		deliveries = append(deliveries, d)
	}

	return deliveries, nil
}

// CountConfirmedForCustomer counts the customer's confirmed deliveries,
// excluding the given delivery. The settlement handler adds one for the
// delivery being settled, so excluding it here keeps the count stable no
// matter when the confirmation row was written.
func (r *GormDeliveryRepository) CountConfirmedForCustomer(ctx context.Context, customerID kernel.UUID, excluding kernel.UUID) (int, error) {
	if err := customerID.Validate(); err != nil {
		return 0, err
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&DeliveryDTO{}).
		Where("customer_id = ?", customerID.Bytes()).
		Where("status = ? AND confirmation_status = ?", int(delivery.StatusCompleted), int(delivery.ConfirmationConfirmed)).
		Where("id <> ?", excluding.Bytes()).
		Count(&count).Error; err != nil {
		return 0, err
	}

	return int(count), nil
}
