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

// GormBuildingRepository implements BuildingRepository using GORM
type GormBuildingRepository struct {
	db *gorm.DB
}

// NewGormBuildingRepository creates a new GormBuildingRepository
func NewGormBuildingRepository(db *gorm.DB) *GormBuildingRepository {
	return &GormBuildingRepository{db: db}
}

// FindByID finds a building by its ID
func (r *GormBuildingRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Building, error) {
	var model models.BuildingModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all buildings
func (r *GormBuildingRepository) FindAll(ctx context.Context) ([]billing.Building, error) {
	var buildingModels []models.BuildingModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&buildingModels).Error; err != nil {
		return nil, err
	}
	buildings := make([]billing.Building, len(buildingModels))
	for i, model := range buildingModels {
		buildings[i] = *model.ToDomain()
	}
	return buildings, nil
}

// Save creates or updates a building
func (r *GormBuildingRepository) Save(ctx context.Context, building *billing.Building) error {
	model := models.BuildingModelFromDomain(building)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a building
func (r *GormBuildingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.BuildingModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
