package billing

import (
	"fmt"
	"time"

	"github.com/cohaus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CycleStatus represents the lifecycle state of a billing cycle
type CycleStatus string

const (
	// CycleStatusDraft allows cost item edits and charge recomputes
	CycleStatusDraft CycleStatus = "DRAFT"
	// CycleStatusSent is terminal; charges are frozen once invoices go out
	CycleStatusSent CycleStatus = "SENT"
)

// IsValid checks if the status is a valid CycleStatus
func (s CycleStatus) IsValid() bool {
	return s == CycleStatusDraft || s == CycleStatusSent
}

// String returns the string representation of CycleStatus
func (s CycleStatus) String() string {
	return string(s)
}

// BillingCycle represents one month's billing period for one building.
// It is created lazily on first access to a (building, year, month) and
// moves through a one-way draft -> sent transition.
type BillingCycle struct {
	shared.BaseAggregateRoot
	BuildingID  uuid.UUID   `json:"building_id"`
	Year        int         `json:"year"`
	Month       int         `json:"month"` // 1-12
	Status      CycleStatus `json:"status"`
	TotalAmount int64       `json:"total_amount"` // derived from unit charges
	DueDate     *time.Time  `json:"due_date,omitempty"`
	SentAt      *time.Time  `json:"sent_at,omitempty"`
}

// NewBillingCycle creates a new draft cycle for a building month
func NewBillingCycle(buildingID uuid.UUID, year, month int) (*BillingCycle, error) {
	if buildingID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_BUILDING", "Building ID cannot be empty")
	}
	if year < 2000 || year > 2200 {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Year is out of range")
	}
	if month < 1 || month > 12 {
		return nil, shared.NewDomainError("INVALID_PERIOD", "Month must be between 1 and 12")
	}

	return &BillingCycle{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		BuildingID:        buildingID,
		Year:              year,
		Month:             month,
		Status:            CycleStatusDraft,
	}, nil
}

// IsDraft returns true if the cycle can still be recomputed
func (c *BillingCycle) IsDraft() bool {
	return c.Status == CycleStatusDraft
}

// IsSent returns true if the cycle has been sent (terminal)
func (c *BillingCycle) IsSent() bool {
	return c.Status == CycleStatusSent
}

// PeriodLabel returns the human-readable cycle period (e.g. "2024-03")
func (c *BillingCycle) PeriodLabel() string {
	return fmt.Sprintf("%04d-%02d", c.Year, c.Month)
}

// SetTotalAmount updates the derived total after a recompute
func (c *BillingCycle) SetTotalAmount(total int64) {
	c.TotalAmount = total
	c.IncrementVersion()
}

// MarkSent transitions the cycle to sent and fixes the due date.
// The due date is set at first send and never recalculated afterwards,
// so a resend keeps the original value.
func (c *BillingCycle) MarkSent(dueDate time.Time) error {
	if c.Status == CycleStatusSent {
		// Resend of an already-sent cycle: keep the original due date.
		return nil
	}
	now := time.Now()
	c.Status = CycleStatusSent
	c.DueDate = &dueDate
	c.SentAt = &now
	c.IncrementVersion()
	return nil
}
