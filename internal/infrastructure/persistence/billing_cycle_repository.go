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

// GormBillingCycleRepository implements BillingCycleRepository using GORM
type GormBillingCycleRepository struct {
	db *gorm.DB
}

// NewGormBillingCycleRepository creates a new GormBillingCycleRepository
func NewGormBillingCycleRepository(db *gorm.DB) *GormBillingCycleRepository {
	return &GormBillingCycleRepository{db: db}
}

// FindByID finds a cycle by its ID
func (r *GormBillingCycleRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.BillingCycle, error) {
	var model models.BillingCycleModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBuildingMonth finds the cycle for a (building, year, month)
func (r *GormBillingCycleRepository) FindByBuildingMonth(ctx context.Context, buildingID uuid.UUID, year, month int) (*billing.BillingCycle, error) {
	var model models.BillingCycleModel
	if err := r.db.WithContext(ctx).
		Where("building_id = ? AND year = ? AND month = ?", buildingID, year, month).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByBuilding finds all cycles of a building, newest first
func (r *GormBillingCycleRepository) FindByBuilding(ctx context.Context, buildingID uuid.UUID) ([]billing.BillingCycle, error) {
	var cycleModels []models.BillingCycleModel
	if err := r.db.WithContext(ctx).
		Where("building_id = ?", buildingID).
		Order("year DESC, month DESC").
		Find(&cycleModels).Error; err != nil {
		return nil, err
	}
	cycles := make([]billing.BillingCycle, len(cycleModels))
	for i, model := range cycleModels {
		cycles[i] = *model.ToDomain()
	}
	return cycles, nil
}

// Save creates or updates a cycle
func (r *GormBillingCycleRepository) Save(ctx context.Context, cycle *billing.BillingCycle) error {
	model := models.BillingCycleModelFromDomain(cycle)
	return r.db.WithContext(ctx).Save(model).Error
}

// SaveWithVersion updates a cycle only if the stored version still matches
// expectedVersion. A zero-row update means another writer got there first.
func (r *GormBillingCycleRepository) SaveWithVersion(ctx context.Context, cycle *billing.BillingCycle, expectedVersion int) error {
	model := models.BillingCycleModelFromDomain(cycle)
	// Column map instead of a struct update: a recompute can legitimately
	// derive a zero total, and struct updates skip zero-valued fields.
	result := r.db.WithContext(ctx).
		Model(&models.BillingCycleModel{}).
		Where("id = ? AND version = ?", cycle.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":       model.Status,
			"total_amount": model.TotalAmount,
			"due_date":     model.DueDate,
			"sent_at":      model.SentAt,
			"version":      model.Version,
			"updated_at":   model.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}
