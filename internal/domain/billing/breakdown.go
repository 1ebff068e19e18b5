package billing

import "github.com/google/uuid"

// ComputedCharge pairs a unit with its assembled breakdown before persistence
type ComputedCharge struct {
	UnitID    uuid.UUID
	Breakdown Breakdown
}

// ComputeBreakdowns assembles the per-unit breakdowns for a cycle. Items must
// arrive in position order and units in stable allocation order; breakdown
// lines follow item order, and allocations of zero or less are dropped rather
// than recorded as zero line items. Every unit gets a computed charge, even
// when nothing was allocated to it.
//
// The function is pure: it performs no I/O and callers persist the result as
// a separate step.
func ComputeBreakdowns(method AllocationMethod, units []Unit, items []CostItem) []ComputedCharge {
	breakdowns := make(map[uuid.UUID]Breakdown, len(units))

	for i := range items {
		item := &items[i]
		var alloc map[uuid.UUID]int64
		if item.IsShared() {
			// Allocated once per item across all units.
			alloc = AllocateShared(item.TotalAmount, units, item.sharedMethod(method))
		} else {
			alloc = AllocatePerUnit(item)
		}
		for j := range units {
			if amount, ok := alloc[units[j].ID]; ok && amount > 0 {
				breakdowns[units[j].ID] = append(breakdowns[units[j].ID], BreakdownLine{
					ItemName: item.Name,
					Amount:   amount,
				})
			}
		}
	}

	result := make([]ComputedCharge, len(units))
	for i := range units {
		result[i] = ComputedCharge{UnitID: units[i].ID, Breakdown: breakdowns[units[i].ID]}
	}
	return result
}

// sharedMethod resolves the allocation method for a shared item: the item's
// own method wins when set, otherwise the building default applies.
func (i *CostItem) sharedMethod(buildingDefault AllocationMethod) AllocationMethod {
	if i.AllocationMethod.IsValid() {
		return i.AllocationMethod
	}
	return buildingDefault
}
