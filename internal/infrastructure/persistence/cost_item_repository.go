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

// GormCostItemRepository implements CostItemRepository using GORM
type GormCostItemRepository struct {
	db *gorm.DB
}

// NewGormCostItemRepository creates a new GormCostItemRepository
func NewGormCostItemRepository(db *gorm.DB) *GormCostItemRepository {
	return &GormCostItemRepository{db: db}
}

// FindByID finds a cost item by its ID
func (r *GormCostItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.CostItem, error) {
	var model models.CostItemModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCycle finds a cycle's items ordered by position
func (r *GormCostItemRepository) FindByCycle(ctx context.Context, cycleID uuid.UUID) ([]billing.CostItem, error) {
	var itemModels []models.CostItemModel
	if err := r.db.WithContext(ctx).
		Where("cycle_id = ?", cycleID).
		Order("position ASC, created_at ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}
	items := make([]billing.CostItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// Save creates or updates a cost item
func (r *GormCostItemRepository) Save(ctx context.Context, item *billing.CostItem) error {
	model := models.CostItemModelFromDomain(item)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete removes a cost item
func (r *GormCostItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.CostItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
