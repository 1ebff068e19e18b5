package persistence

import (
	"context"
	"errors"

	"github.com/cohaus/backend/internal/domain/billing"
	"github.com/cohaus/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormPaymentStatusRepository implements PaymentStatusRepository using GORM
type GormPaymentStatusRepository struct {
	db *gorm.DB
}

// NewGormPaymentStatusRepository creates a new GormPaymentStatusRepository
func NewGormPaymentStatusRepository(db *gorm.DB) *GormPaymentStatusRepository {
	return &GormPaymentStatusRepository{db: db}
}

// FindByCharge finds the payment status for a charge. Absence is a normal
// condition before first send, so it returns nil rather than an error.
func (r *GormPaymentStatusRepository) FindByCharge(ctx context.Context, chargeID uuid.UUID) (*billing.PaymentStatus, error) {
	var model models.PaymentStatusModel
	if err := r.db.WithContext(ctx).
		Where("charge_id = ?", chargeID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Create persists a new payment status record
func (r *GormPaymentStatusRepository) Create(ctx context.Context, status *billing.PaymentStatus) error {
	model := models.PaymentStatusModelFromDomain(status)
	return r.db.WithContext(ctx).Create(model).Error
}
