package orderrepo

import (
	"context"
	"errors"

	"settlement/internal/core/domain/model/kernel"
	"settlement/internal/core/ports"
	"settlement/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOrderProvider implements ports.OrderProvider using GORM.
type GormOrderProvider struct {
	db *gorm.DB
}

// NewGormOrderProvider creates a new GORM order provider.
func NewGormOrderProvider(db *gorm.DB) *GormOrderProvider {
	return &GormOrderProvider{db: db}
}

// GetOrder retrieves order info by ID.
func (p *GormOrderProvider) GetOrder(ctx context.Context, id kernel.UUID) (ports.OrderInfo, error) {
	if err := id.Validate(); err != nil {
		return ports.OrderInfo{}, err
	}

	var dto OrderDTO
	if err := p.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ports.OrderInfo{}, errs.NewObjectNotFoundError("order", id.String())
		}
		return ports.OrderInfo{}, err
	}

	return toInfo(dto)
}
