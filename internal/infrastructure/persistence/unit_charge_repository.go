package persistence

import (
	"context"
	"errors"

	"github.com/cohaus/backend/internal/domain/billing"
	"github.com/cohaus/backend/internal/domain/shared"
	"github.com/cohaus/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormUnitChargeRepository implements UnitChargeRepository using GORM
type GormUnitChargeRepository struct {
	db *gorm.DB
}

// NewGormUnitChargeRepository creates a new GormUnitChargeRepository
func NewGormUnitChargeRepository(db *gorm.DB) *GormUnitChargeRepository {
	return &GormUnitChargeRepository{db: db}
}

// FindByID finds a charge by its ID
func (r *GormUnitChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.UnitCharge, error) {
	var model models.UnitChargeModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCycle finds a cycle's charges. Charges follow their unit's stable
// allocation order so listings line up with the recompute output.
func (r *GormUnitChargeRepository) FindByCycle(ctx context.Context, cycleID uuid.UUID) ([]billing.UnitCharge, error) {
	var chargeModels []models.UnitChargeModel
	if err := r.db.WithContext(ctx).
		Joins("JOIN units ON units.id = unit_charges.unit_id").
		Where("unit_charges.cycle_id = ?", cycleID).
		Order("units.created_at ASC, units.id ASC").
		Find(&chargeModels).Error; err != nil {
		return nil, err
	}
	charges := make([]billing.UnitCharge, len(chargeModels))
	for i, model := range chargeModels {
		charges[i] = *model.ToDomain()
	}
	return charges, nil
}

// FindByCycleAndUnit finds the charge for one unit in a cycle
func (r *GormUnitChargeRepository) FindByCycleAndUnit(ctx context.Context, cycleID, unitID uuid.UUID) (*billing.UnitCharge, error) {
	var model models.UnitChargeModel
	if err := r.db.WithContext(ctx).
		Where("cycle_id = ? AND unit_id = ?", cycleID, unitID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// AnySentInCycle reports whether any charge in the cycle has been sent
func (r *GormUnitChargeRepository) AnySentInCycle(ctx context.Context, cycleID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.UnitChargeModel{}).
		Where("cycle_id = ? AND is_sent = ?", cycleID, true).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteByCycle removes all charges for a cycle ahead of a full recompute
func (r *GormUnitChargeRepository) DeleteByCycle(ctx context.Context, cycleID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.UnitChargeModel{}, "cycle_id = ?", cycleID).Error
}

// Save creates or updates a charge
func (r *GormUnitChargeRepository) Save(ctx context.Context, charge *billing.UnitCharge) error {
	model := models.UnitChargeModelFromDomain(charge)
	return r.db.WithContext(ctx).Save(model).Error
}
