package billing

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/cohaus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// BreakdownLine is one item's contribution to a unit's charge
type BreakdownLine struct {
	ItemName string `json:"item_name"`
	Amount   int64  `json:"amount"`
}

// Breakdown is the ordered list of item contributions, stored as JSONB
type Breakdown []BreakdownLine

// Value implements driver.Valuer interface for GORM to store as JSONB
func (b Breakdown) Value() (driver.Value, error) {
	if b == nil {
		return "[]", nil
	}
	return json.Marshal(b)
}

// Scan implements sql.Scanner interface for GORM to read from JSONB
func (b *Breakdown) Scan(value interface{}) error {
	if value == nil {
		*b = Breakdown{}
		return nil
	}
	bytes, err := jsonBytes(value)
	if err != nil {
		return errors.New("failed to scan Breakdown: unsupported type")
	}
	if len(bytes) == 0 {
		*b = Breakdown{}
		return nil
	}
	return json.Unmarshal(bytes, b)
}

// Total returns the sum of all line amounts
func (b Breakdown) Total() int64 {
	var sum int64
	for _, line := range b {
		sum += line.Amount
	}
	return sum
}

// UnitCharge is the computed per-unit result of allocating one billing cycle.
// Charges are fully regenerated on every recompute while the cycle is draft;
// IsSent is monotonic and never reset once an invoice goes out.
type UnitCharge struct {
	shared.BaseAggregateRoot
	CycleID        uuid.UUID  `json:"cycle_id"`
	UnitID         uuid.UUID  `json:"unit_id"`
	AmountTotal    int64      `json:"amount_total"`
	Breakdown      Breakdown  `json:"breakdown"`
	LateFeeAmount  int64      `json:"late_fee_amount"`
	AmountAfterDue int64      `json:"amount_after_due"`
	IsSent         bool       `json:"is_sent"`
	SentAt         *time.Time `json:"sent_at,omitempty"`
}

// NewUnitCharge creates an unsent charge for a unit in a cycle
func NewUnitCharge(cycleID, unitID uuid.UUID, breakdown Breakdown, lateFee int64) (*UnitCharge, error) {
	if cycleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CYCLE", "Cycle ID cannot be empty")
	}
	if unitID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_UNIT", "Unit ID cannot be empty")
	}
	if lateFee < 0 {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Late fee cannot be negative")
	}

	total := breakdown.Total()
	return &UnitCharge{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CycleID:           cycleID,
		UnitID:            unitID,
		AmountTotal:       total,
		Breakdown:         breakdown,
		LateFeeAmount:     lateFee,
		AmountAfterDue:    total + lateFee,
		IsSent:            false,
	}, nil
}

// MarkSent flips the charge to sent exactly once; repeated calls keep the
// original timestamp.
func (c *UnitCharge) MarkSent() {
	if c.IsSent {
		return
	}
	now := time.Now()
	c.IsSent = true
	c.SentAt = &now
	c.IncrementVersion()
}
