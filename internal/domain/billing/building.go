package billing

import (
	"github.com/cohaus/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// AllocationMethod determines how shared cost items are distributed across units
type AllocationMethod string

const (
	// AllocationEqual splits a shared item evenly, assigning the integer
	// remainder to the first units in order so the sum matches exactly.
	AllocationEqual AllocationMethod = "EQUAL"
	// AllocationShareRatio splits a shared item by each unit's share ratio
	// percentage, rounded independently per unit.
	AllocationShareRatio AllocationMethod = "SHARE_RATIO"
)

// IsValid checks if the method is a valid AllocationMethod
func (m AllocationMethod) IsValid() bool {
	return m == AllocationEqual || m == AllocationShareRatio
}

// String returns the string representation of AllocationMethod
func (m AllocationMethod) String() string {
	return string(m)
}

// Building represents a shared-housing building aggregate root.
// It owns the billing configuration applied to every cycle: the allocation
// method, the billing period window, the payment due day and the late fee rate.
type Building struct {
	shared.BaseAggregateRoot
	Name                  string           `json:"name"`
	Address               string           `json:"address"`
	AllocationMethod      AllocationMethod `json:"allocation_method"`
	BillingPeriodStartDay int              `json:"billing_period_start_day"` // 1-31
	BillingPeriodEndDay   int              `json:"billing_period_end_day"`   // 1-31
	DueDay                int              `json:"due_day"`                  // 1-31, clamped at resolution
	LateFeeRatePercent    decimal.Decimal  `json:"late_fee_rate_percent"`
	BankName              string           `json:"bank_name"`
	BankAccount           string           `json:"bank_account"`
	AccountHolder         string           `json:"account_holder"`
}

// NewBuilding creates a new building with its billing configuration
func NewBuilding(
	name string,
	address string,
	method AllocationMethod,
	periodStartDay, periodEndDay, dueDay int,
	lateFeeRatePercent decimal.Decimal,
) (*Building, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Building name cannot be empty")
	}
	if len(name) > 100 {
		return nil, shared.NewDomainError("INVALID_NAME", "Building name cannot exceed 100 characters")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_ALLOCATION_METHOD", "Allocation method is not valid")
	}
	if periodStartDay < 1 || periodStartDay > 31 {
		return nil, shared.NewDomainError("INVALID_PERIOD_DAY", "Billing period start day must be between 1 and 31")
	}
	if periodEndDay < 1 || periodEndDay > 31 {
		return nil, shared.NewDomainError("INVALID_PERIOD_DAY", "Billing period end day must be between 1 and 31")
	}
	if dueDay < 1 || dueDay > 31 {
		return nil, shared.NewDomainError("INVALID_DUE_DAY", "Due day must be between 1 and 31")
	}
	if lateFeeRatePercent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_LATE_FEE_RATE", "Late fee rate cannot be negative")
	}

	return &Building{
		BaseAggregateRoot:     shared.NewBaseAggregateRoot(),
		Name:                  name,
		Address:               address,
		AllocationMethod:      method,
		BillingPeriodStartDay: periodStartDay,
		BillingPeriodEndDay:   periodEndDay,
		DueDay:                dueDay,
		LateFeeRatePercent:    lateFeeRatePercent,
	}, nil
}

// SetBankDetails sets the bank transfer details included in invoice messages
func (b *Building) SetBankDetails(bankName, bankAccount, accountHolder string) {
	b.BankName = bankName
	b.BankAccount = bankAccount
	b.AccountHolder = accountHolder
	b.IncrementVersion()
}

// UsesShareRatio returns true if shared items are allocated by share ratio
func (b *Building) UsesShareRatio() bool {
	return b.AllocationMethod == AllocationShareRatio
}
