package categoryrepo

import (
	"context"

	"settlement/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormCategoryCatalog implements ports.CategoryCatalog using GORM.
type GormCategoryCatalog struct {
	db *gorm.DB
}

// NewGormCategoryCatalog creates a new GORM category catalog.
func NewGormCategoryCatalog(db *gorm.DB) *GormCategoryCatalog {
	return &GormCategoryCatalog{db: db}
}

// Exists reports whether the category ID is present in the catalog.
func (c *GormCategoryCatalog) Exists(ctx context.Context, categoryID kernel.UUID) (bool, error) {
	if err := categoryID.Validate(); err != nil {
		return false, err
	}

	var count int64
	err := c.db.WithContext(ctx).
		Model(&CategoryDTO{}).
		Where("id = ?", categoryID.Bytes()).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}
