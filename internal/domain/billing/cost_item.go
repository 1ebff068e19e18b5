package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/cohaus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ItemScope determines whether a cost item applies to all units or a subset
type ItemScope string

const (
	// ScopeShared items are distributed across all active units
	ScopeShared ItemScope = "SHARED"
	// ScopePerUnit items apply only to their target unit set
	ScopePerUnit ItemScope = "PER_UNIT"
)

// IsValid checks if the scope is a valid ItemScope
func (s ItemScope) IsValid() bool {
	return s == ScopeShared || s == ScopePerUnit
}

// UnitIDList is a list of unit IDs stored as JSONB
type UnitIDList []uuid.UUID

// Value implements driver.Valuer interface for GORM to store as JSONB
func (l UnitIDList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (l *UnitIDList) Scan(value interface{}) error {
	if value == nil {
		*l = UnitIDList{}
		return nil
	}
	bytes, err := jsonBytes(value)
	if err != nil {
		return errors.New("failed to scan UnitIDList: unsupported type")
	}
	if len(bytes) == 0 {
		*l = UnitIDList{}
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// Contains reports whether the list contains the given unit ID
func (l UnitIDList) Contains(id uuid.UUID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// UnitAmountMap maps unit IDs to explicitly negotiated amounts, stored as JSONB
type UnitAmountMap map[uuid.UUID]int64

// Value implements driver.Valuer interface for GORM to store as JSONB
func (m UnitAmountMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (m *UnitAmountMap) Scan(value interface{}) error {
	if value == nil {
		*m = UnitAmountMap{}
		return nil
	}
	bytes, err := jsonBytes(value)
	if err != nil {
		return errors.New("failed to scan UnitAmountMap: unsupported type")
	}
	if len(bytes) == 0 {
		*m = UnitAmountMap{}
		return nil
	}
	return json.Unmarshal(bytes, m)
}

func jsonBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, errors.New("unsupported type")
	}
}

// CostItem represents a named amount to be allocated within a billing cycle.
// Shared items are distributed across all active units by the building's
// allocation method; per-unit items apply to their target set, either split
// equally or with explicitly negotiated amounts.
type CostItem struct {
	shared.BaseAggregateRoot
	CycleID          uuid.UUID        `json:"cycle_id"`
	Name             string           `json:"name"`
	Category         string           `json:"category"`
	TotalAmount      int64            `json:"total_amount"` // whole currency units
	Scope            ItemScope        `json:"scope"`
	AllocationMethod AllocationMethod `json:"allocation_method,omitempty"` // shared items only
	TargetUnitIDs    UnitIDList       `json:"target_unit_ids,omitempty"`   // per-unit items
	UnitAmounts      UnitAmountMap    `json:"unit_amounts,omitempty"`      // per-unit items, authoritative
	Position         int              `json:"position"`                    // stable ordering within the cycle
}

// NewSharedCostItem creates a cost item distributed across all active units
func NewSharedCostItem(cycleID uuid.UUID, name, category string, totalAmount int64, method AllocationMethod, position int) (*CostItem, error) {
	if cycleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CYCLE", "Cycle ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Cost item name cannot be empty")
	}
	if totalAmount < 0 {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Cost item amount cannot be negative")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_ALLOCATION_METHOD", "Allocation method is not valid")
	}

	return &CostItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CycleID:           cycleID,
		Name:              name,
		Category:          category,
		TotalAmount:       totalAmount,
		Scope:             ScopeShared,
		AllocationMethod:  method,
		Position:          position,
	}, nil
}

// NewPerUnitCostItem creates a cost item applied to a target unit set.
// Without an explicit amount map the target set must be non-empty: the total
// is split equally (rounded per unit) across it. With an explicit map, the
// map is authoritative and need not sum to the item total.
func NewPerUnitCostItem(cycleID uuid.UUID, name, category string, totalAmount int64, targets UnitIDList, amounts UnitAmountMap, position int) (*CostItem, error) {
	if cycleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CYCLE", "Cycle ID cannot be empty")
	}
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Cost item name cannot be empty")
	}
	if totalAmount < 0 {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Cost item amount cannot be negative")
	}
	if len(amounts) == 0 && len(targets) == 0 {
		return nil, shared.NewDomainError("INVALID_TARGETS", "Per-unit item without explicit amounts requires a non-empty target set")
	}

	return &CostItem{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CycleID:           cycleID,
		Name:              name,
		Category:          category,
		TotalAmount:       totalAmount,
		Scope:             ScopePerUnit,
		TargetUnitIDs:     targets,
		UnitAmounts:       amounts,
		Position:          position,
	}, nil
}

// IsShared returns true for items distributed across all active units
func (i *CostItem) IsShared() bool {
	return i.Scope == ScopeShared
}

// HasExplicitAmounts returns true when the item carries a negotiated amount map
func (i *CostItem) HasExplicitAmounts() bool {
	return len(i.UnitAmounts) > 0
}
