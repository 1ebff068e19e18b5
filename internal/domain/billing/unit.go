package billing

import (
	"github.com/cohaus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ShareRatioTolerance is the accepted deviation of the share ratio sum from 100
var ShareRatioTolerance = decimal.NewFromFloat(0.1)

// Unit represents a rentable unit (room) within a building.
// The share ratio percentage is optional: buildings using equal allocation
// never consult it.
type Unit struct {
	shared.BaseAggregateRoot
	BuildingID        uuid.UUID        `json:"building_id"`
	DisplayName       string           `json:"display_name"`
	ShareRatioPercent *decimal.Decimal `json:"share_ratio_percent,omitempty"` // 0-100
	TenantName        string           `json:"tenant_name"`
	TenantPhone       string           `json:"tenant_phone"`
	Active            bool             `json:"active"`
}

// NewUnit creates a new unit in a building
func NewUnit(buildingID uuid.UUID, displayName string, shareRatioPercent *decimal.Decimal) (*Unit, error) {
	if buildingID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUILDING", "Building ID cannot be empty")
	}
	if displayName == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Unit display name cannot be empty")
	}
	if shareRatioPercent != nil {
		if shareRatioPercent.IsNegative() || shareRatioPercent.GreaterThan(decimal.NewFromInt(100)) {
			return nil, shared.NewDomainError("INVALID_SHARE_RATIO", "Share ratio must be between 0 and 100")
		}
	}

	return &Unit{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BuildingID:        buildingID,
		DisplayName:       displayName,
		ShareRatioPercent: shareRatioPercent,
		Active:            true,
	}, nil
}

// SetTenant sets the tenant contact for notification dispatch
func (u *Unit) SetTenant(name, phone string) {
	u.TenantName = name
	u.TenantPhone = phone
	u.IncrementVersion()
}

// Deactivate marks the unit as inactive (excluded from allocation)
func (u *Unit) Deactivate() {
	u.Active = false
	u.IncrementVersion()
}

// ShareRatio returns the unit's share ratio, or zero when unset
func (u *Unit) ShareRatio() decimal.Decimal {
	if u.ShareRatioPercent == nil {
		return decimal.Zero
	}
	return *u.ShareRatioPercent
}

// SumShareRatios returns the sum of share ratio percentages over the given units
func SumShareRatios(units []Unit) decimal.Decimal {
	sum := decimal.Zero
	for i := range units {
		sum = sum.Add(units[i].ShareRatio())
	}
	return sum
}

// ShareRatiosBalanced reports whether the units' share ratios sum to 100
// within the accepted tolerance. The check is advisory: it gates invoice
// sending but recompute blocking is a configuration policy.
func ShareRatiosBalanced(units []Unit) bool {
	diff := SumShareRatios(units).Sub(decimal.NewFromInt(100)).Abs()
	return diff.LessThanOrEqual(ShareRatioTolerance)
}
