package billing

import (
	"context"

	"github.com/google/uuid"
)

// BuildingRepository defines the interface for building persistence
type BuildingRepository interface {
	// FindByID finds a building by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Building, error)

	// FindAll finds all buildings
	FindAll(ctx context.Context) ([]Building, error)

	// Save creates or updates a building
	Save(ctx context.Context, building *Building) error

	// Delete removes a building
	Delete(ctx context.Context, id uuid.UUID) error
}

// UnitRepository defines the interface for unit persistence
type UnitRepository interface {
	// FindByID finds a unit by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Unit, error)

	// FindActiveByBuilding finds a building's active units in stable
	// allocation order (created_at, then ID)
	FindActiveByBuilding(ctx context.Context, buildingID uuid.UUID) ([]Unit, error)

	// FindByBuilding finds all units of a building, active or not
	FindByBuilding(ctx context.Context, buildingID uuid.UUID) ([]Unit, error)

	// Save creates or updates a unit
	Save(ctx context.Context, unit *Unit) error

	// Delete removes a unit
	Delete(ctx context.Context, id uuid.UUID) error
}

// BillingCycleRepository defines the interface for billing cycle persistence
type BillingCycleRepository interface {
	// FindByID finds a cycle by ID
	FindByID(ctx context.Context, id uuid.UUID) (*BillingCycle, error)

	// FindByBuildingMonth finds the cycle for a (building, year, month)
	FindByBuildingMonth(ctx context.Context, buildingID uuid.UUID, year, month int) (*BillingCycle, error)

	// FindByBuilding finds all cycles of a building, newest first
	FindByBuilding(ctx context.Context, buildingID uuid.UUID) ([]BillingCycle, error)

	// Save creates or updates a cycle
	Save(ctx context.Context, cycle *BillingCycle) error

	// SaveWithVersion updates a cycle only if the stored version matches
	// expectedVersion, returning ErrConcurrencyConflict otherwise
	SaveWithVersion(ctx context.Context, cycle *BillingCycle, expectedVersion int) error
}

// CostItemRepository defines the interface for cost item persistence
type CostItemRepository interface {
	// FindByID finds a cost item by ID
	FindByID(ctx context.Context, id uuid.UUID) (*CostItem, error)

	// FindByCycle finds a cycle's items ordered by position
	FindByCycle(ctx context.Context, cycleID uuid.UUID) ([]CostItem, error)

	// Save creates or updates a cost item
	Save(ctx context.Context, item *CostItem) error

	// Delete removes a cost item
	Delete(ctx context.Context, id uuid.UUID) error
}

// UnitChargeRepository defines the interface for unit charge persistence
type UnitChargeRepository interface {
	// FindByID finds a charge by ID
	FindByID(ctx context.Context, id uuid.UUID) (*UnitCharge, error)

	// FindByCycle finds a cycle's charges in stable unit order
	FindByCycle(ctx context.Context, cycleID uuid.UUID) ([]UnitCharge, error)

	// FindByCycleAndUnit finds the charge for one unit in a cycle
	FindByCycleAndUnit(ctx context.Context, cycleID, unitID uuid.UUID) (*UnitCharge, error)

	// AnySentInCycle reports whether any charge in the cycle has been sent
	AnySentInCycle(ctx context.Context, cycleID uuid.UUID) (bool, error)

	// DeleteByCycle removes all charges for a cycle (full recompute)
	DeleteByCycle(ctx context.Context, cycleID uuid.UUID) error

	// Save creates or updates a charge
	Save(ctx context.Context, charge *UnitCharge) error
}

// PaymentStatusRepository defines the interface for payment status persistence
type PaymentStatusRepository interface {
	// FindByCharge finds the payment status for a charge, nil when absent
	FindByCharge(ctx context.Context, chargeID uuid.UUID) (*PaymentStatus, error)

	// Create persists a new payment status record
	Create(ctx context.Context, status *PaymentStatus) error
}
