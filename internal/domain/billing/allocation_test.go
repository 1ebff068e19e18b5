package billing

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ratio(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

func makeUnits(t *testing.T, buildingID uuid.UUID, ratios ...*decimal.Decimal) []Unit {
	t.Helper()
	units := make([]Unit, len(ratios))
	for i, r := range ratios {
		u, err := NewUnit(buildingID, string(rune('A'+i))+"호", r)
		require.NoError(t, err)
		units[i] = *u
	}
	return units
}

func TestAllocateEqual(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	t.Run("remainder goes to first units in order", func(t *testing.T) {
		result := AllocateEqual(10000, ids)
		assert.Equal(t, int64(3334), result[ids[0]])
		assert.Equal(t, int64(3333), result[ids[1]])
		assert.Equal(t, int64(3333), result[ids[2]])
	})

	t.Run("sum always equals total", func(t *testing.T) {
		for _, total := range []int64{1, 2, 99, 100, 101, 9999, 10000, 123457} {
			result := AllocateEqual(total, ids)
			var sum int64
			for _, v := range result {
				sum += v
			}
			assert.Equal(t, total, sum, "total %d leaked during allocation", total)
		}
	})

	t.Run("max and min differ by at most one", func(t *testing.T) {
		for _, total := range []int64{1, 7, 1000, 99999} {
			result := AllocateEqual(total, ids)
			var minV, maxV int64 = result[ids[0]], result[ids[0]]
			for _, v := range result {
				if v < minV {
					minV = v
				}
				if v > maxV {
					maxV = v
				}
			}
			assert.LessOrEqual(t, maxV-minV, int64(1))
		}
	})

	t.Run("no units yields empty allocation", func(t *testing.T) {
		assert.Empty(t, AllocateEqual(10000, nil))
	})

	t.Run("zero total yields empty allocation", func(t *testing.T) {
		assert.Empty(t, AllocateEqual(0, ids))
	})
}

func TestAllocateByShareRatio(t *testing.T) {
	buildingID := uuid.New()

	t.Run("independent rounding drifts and is tolerated", func(t *testing.T) {
		units := makeUnits(t, buildingID, ratio(50), ratio(30), ratio(20))
		result := AllocateByShareRatio(999, units)

		assert.Equal(t, int64(500), result[units[0].ID]) // round(499.5)
		assert.Equal(t, int64(300), result[units[1].ID]) // round(299.7)
		assert.Equal(t, int64(200), result[units[2].ID]) // round(199.8)

		var sum int64
		for _, v := range result {
			sum += v
		}
		assert.Equal(t, int64(1000), sum, "drift of one unit against total 999 is expected")
	})

	t.Run("exact ratios allocate exactly", func(t *testing.T) {
		units := makeUnits(t, buildingID, ratio(50), ratio(30), ratio(20))
		result := AllocateByShareRatio(1000, units)
		assert.Equal(t, int64(500), result[units[0].ID])
		assert.Equal(t, int64(300), result[units[1].ID])
		assert.Equal(t, int64(200), result[units[2].ID])
	})

	t.Run("unit without ratio receives zero", func(t *testing.T) {
		units := makeUnits(t, buildingID, ratio(100), nil)
		result := AllocateByShareRatio(5000, units)
		assert.Equal(t, int64(5000), result[units[0].ID])
		assert.Equal(t, int64(0), result[units[1].ID])
	})
}

func TestAllocateShared(t *testing.T) {
	buildingID := uuid.New()
	units := makeUnits(t, buildingID, ratio(60), ratio(40))

	t.Run("equal method ignores ratios", func(t *testing.T) {
		result := AllocateShared(100, units, AllocationEqual)
		assert.Equal(t, int64(50), result[units[0].ID])
		assert.Equal(t, int64(50), result[units[1].ID])
	})

	t.Run("share ratio method applies ratios", func(t *testing.T) {
		result := AllocateShared(100, units, AllocationShareRatio)
		assert.Equal(t, int64(60), result[units[0].ID])
		assert.Equal(t, int64(40), result[units[1].ID])
	})
}

func TestAllocatePerUnit(t *testing.T) {
	cycleID := uuid.New()
	u1, u2, u3 := uuid.New(), uuid.New(), uuid.New()

	t.Run("explicit amounts are authoritative", func(t *testing.T) {
		item, err := NewPerUnitCostItem(cycleID, "인터넷", "utility", 30000,
			nil, UnitAmountMap{u1: 12000, u2: 9000}, 0)
		require.NoError(t, err)

		result := AllocatePerUnit(item)
		assert.Equal(t, int64(12000), result[u1])
		assert.Equal(t, int64(9000), result[u2])
		assert.Len(t, result, 2, "explicit amounts need not cover the total")
	})

	t.Run("equal split across target set with independent rounding", func(t *testing.T) {
		item, err := NewPerUnitCostItem(cycleID, "주차비", "parking", 1000,
			UnitIDList{u1, u2, u3}, nil, 0)
		require.NoError(t, err)

		result := AllocatePerUnit(item)
		// round(1000/3) = 333 per unit; 999 != 1000, leakage accepted
		assert.Equal(t, int64(333), result[u1])
		assert.Equal(t, int64(333), result[u2])
		assert.Equal(t, int64(333), result[u3])
	})

	t.Run("empty target set yields nothing", func(t *testing.T) {
		item := &CostItem{Scope: ScopePerUnit, TotalAmount: 1000}
		assert.Empty(t, AllocatePerUnit(item))
	})
}
