package billing

import (
	"context"

	"github.com/cohaus/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShareRatioStatus reports the advisory share ratio invariant for a building
type ShareRatioStatus struct {
	Sum      decimal.Decimal `json:"sum"`
	Balanced bool            `json:"balanced"`
	Required bool            `json:"required"` // true when the building allocates by share ratio
}

// BuildingService manages building and unit records. These are thin
// authoring operations; all billing semantics live in ChargeService and
// InvoiceService.
type BuildingService struct {
	buildingRepo billing.BuildingRepository
	unitRepo     billing.UnitRepository
}

// NewBuildingService creates a new BuildingService
func NewBuildingService(buildingRepo billing.BuildingRepository, unitRepo billing.UnitRepository) *BuildingService {
	return &BuildingService{buildingRepo: buildingRepo, unitRepo: unitRepo}
}

// CreateBuilding persists a new building
func (s *BuildingService) CreateBuilding(ctx context.Context, building *billing.Building) error {
	return s.buildingRepo.Save(ctx, building)
}

// GetBuilding returns a building by ID
func (s *BuildingService) GetBuilding(ctx context.Context, id uuid.UUID) (*billing.Building, error) {
	return s.buildingRepo.FindByID(ctx, id)
}

// ListBuildings returns all buildings
func (s *BuildingService) ListBuildings(ctx context.Context) ([]billing.Building, error) {
	return s.buildingRepo.FindAll(ctx)
}

// UpdateBuilding persists building changes
func (s *BuildingService) UpdateBuilding(ctx context.Context, building *billing.Building) error {
	return s.buildingRepo.Save(ctx, building)
}

// CreateUnit persists a new unit after checking its building exists
func (s *BuildingService) CreateUnit(ctx context.Context, unit *billing.Unit) error {
	if _, err := s.buildingRepo.FindByID(ctx, unit.BuildingID); err != nil {
		return err
	}
	return s.unitRepo.Save(ctx, unit)
}

// ListUnits returns all units of a building
func (s *BuildingService) ListUnits(ctx context.Context, buildingID uuid.UUID) ([]billing.Unit, error) {
	if _, err := s.buildingRepo.FindByID(ctx, buildingID); err != nil {
		return nil, err
	}
	return s.unitRepo.FindByBuilding(ctx, buildingID)
}

// GetUnit returns a unit by ID
func (s *BuildingService) GetUnit(ctx context.Context, id uuid.UUID) (*billing.Unit, error) {
	return s.unitRepo.FindByID(ctx, id)
}

// UpdateUnit persists unit changes
func (s *BuildingService) UpdateUnit(ctx context.Context, unit *billing.Unit) error {
	return s.unitRepo.Save(ctx, unit)
}

// CheckShareRatios re-derives the advisory share ratio status from the
// building's current active units
func (s *BuildingService) CheckShareRatios(ctx context.Context, buildingID uuid.UUID) (*ShareRatioStatus, error) {
	building, err := s.buildingRepo.FindByID(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	units, err := s.unitRepo.FindActiveByBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	return &ShareRatioStatus{
		Sum:      billing.SumShareRatios(units),
		Balanced: billing.ShareRatiosBalanced(units),
		Required: building.UsesShareRatio(),
	}, nil
}
