// Package categoryrepo provides a read-only adapter over the item category
// catalog owned by the ordering subsystem. The settlement engine only checks
// that a category exists before recording delivered weights against it.
package categoryrepo

import (
	"github.com/google/uuid"
)

// CategoryDTO represents the slice of the categories table the settlement
// engine reads.
type CategoryDTO struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name string    `gorm:"type:varchar(128);not null"`
}

// TableName specifies the database table name for category rows.
func (CategoryDTO) TableName() string {
	return "categories"
}
