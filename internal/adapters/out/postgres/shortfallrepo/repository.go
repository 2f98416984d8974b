package shortfallrepo

import (
	"context"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/shortfall"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormShortfallRepository implements ShortfallRepository using GORM.
type GormShortfallRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormShortfallRepository creates a new GORM shortfall repository.
func NewGormShortfallRepository(db *gorm.DB, tracker aggregateTracker) *GormShortfallRepository {
	return &GormShortfallRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new shortfall record to the database.
func (r *GormShortfallRepository) Add(ctx context.Context, aggregate *shortfall.Shortfall) error {
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

// Update saves an existing shortfall record to the database.
func (r *GormShortfallRepository) Update(ctx context.Context, aggregate *shortfall.Shortfall) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)

	result := r.db.WithContext(ctx).Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetOutstandingForCustomer retrieves the customer's open shortfall records,
// oldest first. When called inside a transaction the rows are locked with
// SELECT FOR UPDATE so concurrent settlements for the same customer serialize
// instead of double-deducting.
func (r *GormShortfallRepository) GetOutstandingForCustomer(ctx context.Context, customerID kernel.UUID) ([]*shortfall.Shortfall, error) {
	if err := customerID.Validate(); err != nil {
		return nil, err
	}

	var dtos []ShortfallDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("customer_id = ? AND is_deducted = false", customerID.Bytes()).
		Order("created_at ASC").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	shortfalls := make([]*shortfall.Shortfall, 0, len(dtos))
	for _, dto := range dtos {
		s, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		shortfalls = append(shortfalls, s)
	}

	return shortfalls, nil
}
