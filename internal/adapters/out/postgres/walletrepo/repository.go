package walletrepo

import (
	"context"
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/domain/model/wallet"
	"settlement/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormWalletRepository implements WalletRepository using GORM.
type GormWalletRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormWalletRepository creates a new GORM wallet repository.
func NewGormWalletRepository(db *gorm.DB, tracker aggregateTracker) *GormWalletRepository {
	return &GormWalletRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new wallet to the database.
func (r *GormWalletRepository) Add(ctx context.Context, aggregate *wallet.Wallet) error {
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

// Update saves the wallet balance and appends any new ledger entries.
// Existing transaction rows are immutable, so the conflict clause skips rows
// already present instead of rewriting them.
func (r *GormWalletRepository) Update(ctx context.Context, aggregate *wallet.Wallet) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	transactions := dto.Transactions
	dto.Transactions = nil

	result := r.db.WithContext(ctx).Omit("Transactions").Save(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if len(transactions) > 0 {
		if err := r.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&transactions).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// GetByOwner retrieves the wallet for an owner, locking the row for the
// duration of the surrounding transaction so concurrent credits serialize.
func (r *GormWalletRepository) GetByOwner(ctx context.Context, ownerID kernel.UUID) (*wallet.Wallet, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	var dto WalletDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Transactions").
		First(&dto, "owner_id = ?", ownerID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("wallet", ownerID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}
