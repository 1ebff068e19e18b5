package billing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Allocation engine: distributes a cost item's total across units. All
// functions are pure; persistence happens at the application layer.

// AllocateEqual splits a total evenly across the given units. The caller
// supplies the unit order: the first `total mod n` units receive one extra
// currency unit, so the allocated sum always equals the total exactly.
func AllocateEqual(total int64, unitIDs []uuid.UUID) map[uuid.UUID]int64 {
	result := make(map[uuid.UUID]int64, len(unitIDs))
	if len(unitIDs) == 0 || total <= 0 {
		return result
	}

	n := int64(len(unitIDs))
	base := total / n
	remainder := total - base*n
	for i, id := range unitIDs {
		amount := base
		if int64(i) < remainder {
			amount++
		}
		result[id] = amount
	}
	return result
}

// AllocateByShareRatio gives each unit round(total * ratio / 100), computed
// independently per unit. The allocated sum can drift from the total by a
// few currency units; the drift is accepted, not redistributed.
func AllocateByShareRatio(total int64, units []Unit) map[uuid.UUID]int64 {
	result := make(map[uuid.UUID]int64, len(units))
	if len(units) == 0 || total <= 0 {
		return result
	}

	totalDec := decimal.NewFromInt(total)
	hundred := decimal.NewFromInt(100)
	for i := range units {
		amount := totalDec.Mul(units[i].ShareRatio()).Div(hundred).Round(0).IntPart()
		result[units[i].ID] = amount
	}
	return result
}

// AllocateShared distributes a shared item's total across units by the
// building's allocation method.
func AllocateShared(total int64, units []Unit, method AllocationMethod) map[uuid.UUID]int64 {
	if method == AllocationShareRatio {
		return AllocateByShareRatio(total, units)
	}
	ids := make([]uuid.UUID, len(units))
	for i := range units {
		ids[i] = units[i].ID
	}
	return AllocateEqual(total, ids)
}

// AllocatePerUnit resolves a per-unit item. An explicit amount map is
// authoritative and used verbatim; otherwise the total is split across the
// target set at round(total / targetCount) per unit, rounded independently.
func AllocatePerUnit(item *CostItem) map[uuid.UUID]int64 {
	if item.HasExplicitAmounts() {
		result := make(map[uuid.UUID]int64, len(item.UnitAmounts))
		for id, amount := range item.UnitAmounts {
			result[id] = amount
		}
		return result
	}

	result := make(map[uuid.UUID]int64, len(item.TargetUnitIDs))
	if len(item.TargetUnitIDs) == 0 || item.TotalAmount <= 0 {
		return result
	}
	perUnit := decimal.NewFromInt(item.TotalAmount).
		Div(decimal.NewFromInt(int64(len(item.TargetUnitIDs)))).
		Round(0).IntPart()
	for _, id := range item.TargetUnitIDs {
		result[id] = perUnit
	}
	return result
}
