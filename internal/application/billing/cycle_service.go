package billing

import (
	"context"
	"errors"

	"github.com/cohaus/backend/internal/domain/billing"
	"github.com/cohaus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CycleService manages billing cycle access and cost item authoring.
// Cycles are created lazily: fetching a (building, year, month) that has
// never been billed creates the draft cycle on the spot.
type CycleService struct {
	buildingRepo billing.BuildingRepository
	cycleRepo    billing.BillingCycleRepository
	itemRepo     billing.CostItemRepository
}

// NewCycleService creates a new CycleService
func NewCycleService(
	buildingRepo billing.BuildingRepository,
	cycleRepo billing.BillingCycleRepository,
	itemRepo billing.CostItemRepository,
) *CycleService {
	return &CycleService{
		buildingRepo: buildingRepo,
		cycleRepo:    cycleRepo,
		itemRepo:     itemRepo,
	}
}

// GetOrCreateCycle returns the cycle for a building month, creating the
// draft lazily on first access
func (s *CycleService) GetOrCreateCycle(ctx context.Context, buildingID uuid.UUID, year, month int) (*billing.BillingCycle, error) {
	if _, err := s.buildingRepo.FindByID(ctx, buildingID); err != nil {
		return nil, err
	}

	cycle, err := s.cycleRepo.FindByBuildingMonth(ctx, buildingID, year, month)
	if err == nil {
		return cycle, nil
	}
	if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	cycle, err = billing.NewBillingCycle(buildingID, year, month)
	if err != nil {
		return nil, err
	}
	if err := s.cycleRepo.Save(ctx, cycle); err != nil {
		return nil, err
	}
	return cycle, nil
}

// GetCycle returns a cycle by ID
func (s *CycleService) GetCycle(ctx context.Context, cycleID uuid.UUID) (*billing.BillingCycle, error) {
	return s.cycleRepo.FindByID(ctx, cycleID)
}

// ListCycles returns all cycles of a building, newest first
func (s *CycleService) ListCycles(ctx context.Context, buildingID uuid.UUID) ([]billing.BillingCycle, error) {
	if _, err := s.buildingRepo.FindByID(ctx, buildingID); err != nil {
		return nil, err
	}
	return s.cycleRepo.FindByBuilding(ctx, buildingID)
}

// ListCostItems returns a cycle's cost items in position order
func (s *CycleService) ListCostItems(ctx context.Context, cycleID uuid.UUID) ([]billing.CostItem, error) {
	if _, err := s.cycleRepo.FindByID(ctx, cycleID); err != nil {
		return nil, err
	}
	return s.itemRepo.FindByCycle(ctx, cycleID)
}

// AddCostItem appends a cost item to a draft cycle. Sent cycles are frozen:
// their items can no longer change.
func (s *CycleService) AddCostItem(ctx context.Context, item *billing.CostItem) error {
	cycle, err := s.cycleRepo.FindByID(ctx, item.CycleID)
	if err != nil {
		return err
	}
	if cycle.IsSent() {
		return billing.ErrCycleLocked
	}
	return s.itemRepo.Save(ctx, item)
}

// RemoveCostItem removes a cost item from a draft cycle
func (s *CycleService) RemoveCostItem(ctx context.Context, itemID uuid.UUID) error {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return err
	}
	cycle, err := s.cycleRepo.FindByID(ctx, item.CycleID)
	if err != nil {
		return err
	}
	if cycle.IsSent() {
		return billing.ErrCycleLocked
	}
	return s.itemRepo.Delete(ctx, itemID)
}
