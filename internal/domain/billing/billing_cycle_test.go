package billing

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBillingCycle(t *testing.T) {
	buildingID := uuid.New()

	t.Run("creates draft cycle", func(t *testing.T) {
		cycle, err := NewBillingCycle(buildingID, 2024, 3)
		require.NoError(t, err)
		assert.Equal(t, CycleStatusDraft, cycle.Status)
		assert.True(t, cycle.IsDraft())
		assert.Nil(t, cycle.DueDate)
		assert.Equal(t, "2024-03", cycle.PeriodLabel())
	})

	t.Run("rejects invalid month", func(t *testing.T) {
		_, err := NewBillingCycle(buildingID, 2024, 13)
		assert.Error(t, err)

		_, err = NewBillingCycle(buildingID, 2024, 0)
		assert.Error(t, err)
	})

	t.Run("rejects nil building", func(t *testing.T) {
		_, err := NewBillingCycle(uuid.Nil, 2024, 3)
		assert.Error(t, err)
	})
}

func TestBillingCycle_MarkSent(t *testing.T) {
	buildingID := uuid.New()
	dueDate := date(2024, time.April, 30)

	t.Run("transitions draft to sent and fixes due date", func(t *testing.T) {
		cycle, err := NewBillingCycle(buildingID, 2024, 3)
		require.NoError(t, err)

		require.NoError(t, cycle.MarkSent(dueDate))
		assert.True(t, cycle.IsSent())
		require.NotNil(t, cycle.DueDate)
		assert.Equal(t, dueDate, *cycle.DueDate)
		assert.NotNil(t, cycle.SentAt)
	})

	t.Run("resend keeps the original due date", func(t *testing.T) {
		cycle, err := NewBillingCycle(buildingID, 2024, 3)
		require.NoError(t, err)
		require.NoError(t, cycle.MarkSent(dueDate))

		later := date(2024, time.May, 31)
		require.NoError(t, cycle.MarkSent(later))
		assert.Equal(t, dueDate, *cycle.DueDate)
	})
}

func TestUnitCharge_MarkSent(t *testing.T) {
	charge, err := NewUnitCharge(uuid.New(), uuid.New(), Breakdown{{ItemName: "관리비", Amount: 50000}}, 2500)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), charge.AmountTotal)
	assert.Equal(t, int64(52500), charge.AmountAfterDue)
	assert.False(t, charge.IsSent)

	charge.MarkSent()
	require.True(t, charge.IsSent)
	require.NotNil(t, charge.SentAt)
	first := *charge.SentAt

	// Monotonic: a second send never resets the flag or the timestamp.
	charge.MarkSent()
	assert.True(t, charge.IsSent)
	assert.Equal(t, first, *charge.SentAt)
}

func TestShareRatiosBalanced(t *testing.T) {
	buildingID := uuid.New()

	tests := []struct {
		name     string
		ratios   []float64
		balanced bool
	}{
		{"exactly 100", []float64{50, 30, 20}, true},
		{"within tolerance high", []float64{50, 30, 20.1}, true},
		{"within tolerance low", []float64{50, 30, 19.9}, true},
		{"outside tolerance", []float64{50, 30, 20.2}, false},
		{"far off", []float64{50, 30}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			units := make([]Unit, len(tt.ratios))
			for i, r := range tt.ratios {
				u, err := NewUnit(buildingID, "unit", ratio(r))
				require.NoError(t, err)
				units[i] = *u
			}
			assert.Equal(t, tt.balanced, ShareRatiosBalanced(units))
		})
	}
}
