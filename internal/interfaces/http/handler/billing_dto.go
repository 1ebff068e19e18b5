package handler

import (
	"time"

	"github.com/cohaus/backend/internal/domain/billing"
	"github.com/google/uuid"
)

// BuildingResponse represents a building in API responses
type BuildingResponse struct {
	ID                    uuid.UUID `json:"id"`
	Name                  string    `json:"name"`
	Address               string    `json:"address"`
	AllocationMethod      string    `json:"allocation_method"`
	BillingPeriodStartDay int       `json:"billing_period_start_day"`
	BillingPeriodEndDay   int       `json:"billing_period_end_day"`
	DueDay                int       `json:"due_day"`
	LateFeeRatePercent    string    `json:"late_fee_rate_percent"`
	BankName              string    `json:"bank_name,omitempty"`
	BankAccount           string    `json:"bank_account,omitempty"`
	AccountHolder         string    `json:"account_holder,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func toBuildingResponse(b *billing.Building) BuildingResponse {
	return BuildingResponse{
		ID:                    b.ID,
		Name:                  b.Name,
		Address:               b.Address,
		AllocationMethod:      b.AllocationMethod.String(),
		BillingPeriodStartDay: b.BillingPeriodStartDay,
		BillingPeriodEndDay:   b.BillingPeriodEndDay,
		DueDay:                b.DueDay,
		LateFeeRatePercent:    b.LateFeeRatePercent.String(),
		BankName:              b.BankName,
		BankAccount:           b.BankAccount,
		AccountHolder:         b.AccountHolder,
		CreatedAt:             b.CreatedAt,
		UpdatedAt:             b.UpdatedAt,
	}
}

func toBuildingResponses(buildings []billing.Building) []BuildingResponse {
	out := make([]BuildingResponse, 0, len(buildings))
	for i := range buildings {
		out = append(out, toBuildingResponse(&buildings[i]))
	}
	return out
}

// UnitResponse represents a unit in API responses
type UnitResponse struct {
	ID                uuid.UUID `json:"id"`
	BuildingID        uuid.UUID `json:"building_id"`
	DisplayName       string    `json:"display_name"`
	ShareRatioPercent *string   `json:"share_ratio_percent,omitempty"`
	TenantName        string    `json:"tenant_name,omitempty"`
	TenantPhone       string    `json:"tenant_phone,omitempty"`
	Active            bool      `json:"active"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func toUnitResponse(u *billing.Unit) UnitResponse {
	resp := UnitResponse{
		ID:          u.ID,
		BuildingID:  u.BuildingID,
		DisplayName: u.DisplayName,
		TenantName:  u.TenantName,
		TenantPhone: u.TenantPhone,
		Active:      u.Active,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
	if u.ShareRatioPercent != nil {
		ratio := u.ShareRatioPercent.String()
		resp.ShareRatioPercent = &ratio
	}
	return resp
}

func toUnitResponses(units []billing.Unit) []UnitResponse {
	out := make([]UnitResponse, 0, len(units))
	for i := range units {
		out = append(out, toUnitResponse(&units[i]))
	}
	return out
}

// CycleResponse represents a billing cycle in API responses
type CycleResponse struct {
	ID          uuid.UUID  `json:"id"`
	BuildingID  uuid.UUID  `json:"building_id"`
	Year        int        `json:"year"`
	Month       int        `json:"month"`
	Period      string     `json:"period"`
	Status      string     `json:"status"`
	TotalAmount int64      `json:"total_amount"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	SentAt      *time.Time `json:"sent_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toCycleResponse(c *billing.BillingCycle) CycleResponse {
	return CycleResponse{
		ID:          c.ID,
		BuildingID:  c.BuildingID,
		Year:        c.Year,
		Month:       c.Month,
		Period:      c.PeriodLabel(),
		Status:      c.Status.String(),
		TotalAmount: c.TotalAmount,
		DueDate:     c.DueDate,
		SentAt:      c.SentAt,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func toCycleResponses(cycles []billing.BillingCycle) []CycleResponse {
	out := make([]CycleResponse, 0, len(cycles))
	for i := range cycles {
		out = append(out, toCycleResponse(&cycles[i]))
	}
	return out
}

// CostItemResponse represents a cost item in API responses
type CostItemResponse struct {
	ID               uuid.UUID           `json:"id"`
	CycleID          uuid.UUID           `json:"cycle_id"`
	Name             string              `json:"name"`
	Category         string              `json:"category,omitempty"`
	TotalAmount      int64               `json:"total_amount"`
	Scope            string              `json:"scope"`
	AllocationMethod string              `json:"allocation_method,omitempty"`
	TargetUnitIDs    []uuid.UUID         `json:"target_unit_ids,omitempty"`
	UnitAmounts      map[uuid.UUID]int64 `json:"unit_amounts,omitempty"`
	Position         int                 `json:"position"`
	CreatedAt        time.Time           `json:"created_at"`
}

func toCostItemResponse(i *billing.CostItem) CostItemResponse {
	return CostItemResponse{
		ID:               i.ID,
		CycleID:          i.CycleID,
		Name:             i.Name,
		Category:         i.Category,
		TotalAmount:      i.TotalAmount,
		Scope:            string(i.Scope),
		AllocationMethod: i.AllocationMethod.String(),
		TargetUnitIDs:    i.TargetUnitIDs,
		UnitAmounts:      i.UnitAmounts,
		Position:         i.Position,
		CreatedAt:        i.CreatedAt,
	}
}

func toCostItemResponses(items []billing.CostItem) []CostItemResponse {
	out := make([]CostItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toCostItemResponse(&items[i]))
	}
	return out
}

// ChargeLineResponse represents one breakdown line of a unit charge
type ChargeLineResponse struct {
	ItemName string `json:"item_name"`
	Amount   int64  `json:"amount"`
}

// ChargeResponse represents a computed unit charge in API responses
type ChargeResponse struct {
	ID             uuid.UUID            `json:"id"`
	CycleID        uuid.UUID            `json:"cycle_id"`
	UnitID         uuid.UUID            `json:"unit_id"`
	Breakdown      []ChargeLineResponse `json:"breakdown"`
	AmountTotal    int64                `json:"amount_total"`
	LateFeeAmount  int64                `json:"late_fee_amount"`
	AmountAfterDue int64                `json:"amount_after_due"`
	IsSent         bool                 `json:"is_sent"`
	SentAt         *time.Time           `json:"sent_at,omitempty"`
	CreatedAt      time.Time            `json:"created_at"`
}

func toChargeResponse(c *billing.UnitCharge) ChargeResponse {
	lines := make([]ChargeLineResponse, 0, len(c.Breakdown))
	for _, line := range c.Breakdown {
		lines = append(lines, ChargeLineResponse{ItemName: line.ItemName, Amount: line.Amount})
	}
	return ChargeResponse{
		ID:             c.ID,
		CycleID:        c.CycleID,
		UnitID:         c.UnitID,
		Breakdown:      lines,
		AmountTotal:    c.AmountTotal,
		LateFeeAmount:  c.LateFeeAmount,
		AmountAfterDue: c.AmountAfterDue,
		IsSent:         c.IsSent,
		SentAt:         c.SentAt,
		CreatedAt:      c.CreatedAt,
	}
}

func toChargeResponses(charges []billing.UnitCharge) []ChargeResponse {
	out := make([]ChargeResponse, 0, len(charges))
	for i := range charges {
		out = append(out, toChargeResponse(&charges[i]))
	}
	return out
}
