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

// GormUnitRepository implements UnitRepository using GORM
type GormUnitRepository struct {
	db *gorm.DB
}

// NewGormUnitRepository creates a new GormUnitRepository
func NewGormUnitRepository(db *gorm.DB) *GormUnitRepository {
	return &GormUnitRepository{db: db}
}

// FindByID finds a unit by its ID
func (r *GormUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Unit, error) {
	var model models.UnitModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindActiveByBuilding finds a building's active units in stable allocation
// order. The order decides which units absorb the equal-split remainder, so
// it must not change between recomputes.
func (r *GormUnitRepository) FindActiveByBuilding(ctx context.Context, buildingID uuid.UUID) ([]billing.Unit, error) {
	var unitModels []models.UnitModel
	if err := r.db.WithContext(ctx).
		Where("building_id = ? AND active = ?", buildingID, true).
		Order("created_at ASC, id ASC").
		Find(&unitModels).Error; err != nil {
		return nil, err
	}
	units := make([]billing.Unit, len(unitModels))
	for i, model := range unitModels {
		units[i] = *model.ToDomain()
	}
	return units, nil
}

// FindByBuilding finds all units of a building, active or not
func (r *GormUnitRepository) FindByBuilding(ctx context.Context, buildingID uuid.UUID) ([]billing.Unit, error) {
	var unitModels []models.UnitModel
	if err := r.db.WithContext(ctx).
		Where("building_id = ?", buildingID).
		Order("created_at ASC, id ASC").
		Find(&unitModels).Error; err != nil {
		return nil, err
	}
	units := make([]billing.Unit, len(unitModels))
	for i, model := range unitModels {
		units[i] = *model.ToDomain()
	}
	return units, nil
}

// Save creates or updates a unit
func (r *GormUnitRepository) Save(ctx context.Context, unit *billing.Unit) error {
	model := models.UnitModelFromDomain(unit)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a unit
func (r *GormUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.UnitModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
