package models

import (
	"time"

	"github.com/cohaus/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BuildingModel is the persistence model for the Building aggregate root.
type BuildingModel struct {
	AggregateModel
	Name                  string                   `gorm:"type:varchar(100);not null"`
	Address               string                   `gorm:"type:varchar(300)"`
	AllocationMethod      billing.AllocationMethod `gorm:"type:varchar(20);not null"`
	BillingPeriodStartDay int                      `gorm:"not null"`
	BillingPeriodEndDay   int                      `gorm:"not null"`
	DueDay                int                      `gorm:"not null"`
	LateFeeRatePercent    decimal.Decimal          `gorm:"type:decimal(6,3);not null;default:0"`
	BankName              string                   `gorm:"type:varchar(100)"`
	BankAccount           string                   `gorm:"type:varchar(100)"`
	AccountHolder         string                   `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (BuildingModel) TableName() string {
	return "buildings"
}

// ToDomain converts the persistence model to a domain Building entity.
func (m *BuildingModel) ToDomain() *billing.Building {
	return &billing.Building{
		BaseAggregateRoot:     m.ToDomainAggregateRoot(),
		Name:                  m.Name,
		Address:               m.Address,
		AllocationMethod:      m.AllocationMethod,
		BillingPeriodStartDay: m.BillingPeriodStartDay,
		BillingPeriodEndDay:   m.BillingPeriodEndDay,
		DueDay:                m.DueDay,
		LateFeeRatePercent:    m.LateFeeRatePercent,
		BankName:              m.BankName,
		BankAccount:           m.BankAccount,
		AccountHolder:         m.AccountHolder,
	}
}

// FromDomain populates the persistence model from a domain Building entity.
func (m *BuildingModel) FromDomain(b *billing.Building) {
	m.FromDomainAggregateRoot(b.BaseAggregateRoot)
	m.Name = b.Name
	m.Address = b.Address
	m.AllocationMethod = b.AllocationMethod
	m.BillingPeriodStartDay = b.BillingPeriodStartDay
	m.BillingPeriodEndDay = b.BillingPeriodEndDay
	m.DueDay = b.DueDay
	m.LateFeeRatePercent = b.LateFeeRatePercent
	m.BankName = b.BankName
	m.BankAccount = b.BankAccount
	m.AccountHolder = b.AccountHolder
}

// BuildingModelFromDomain creates a new persistence model from a domain Building.
func BuildingModelFromDomain(b *billing.Building) *BuildingModel {
	m := &BuildingModel{}
	m.FromDomain(b)
	return m
}

// UnitModel is the persistence model for the Unit aggregate root.
type UnitModel struct {
	AggregateModel
	BuildingID        uuid.UUID        `gorm:"type:uuid;not null;index"`
	DisplayName       string           `gorm:"type:varchar(100);not null"`
	ShareRatioPercent *decimal.Decimal `gorm:"type:decimal(6,3)"`
	TenantName        string           `gorm:"type:varchar(100)"`
	TenantPhone       string           `gorm:"type:varchar(30)"`
	Active            bool             `gorm:"not null;default:true;index"`
}

// TableName returns the table name for GORM
func (UnitModel) TableName() string {
	return "units"
}

// ToDomain converts the persistence model to a domain Unit entity.
func (m *UnitModel) ToDomain() *billing.Unit {
	return &billing.Unit{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		BuildingID:        m.BuildingID,
		DisplayName:       m.DisplayName,
		ShareRatioPercent: m.ShareRatioPercent,
		TenantName:        m.TenantName,
		TenantPhone:       m.TenantPhone,
		Active:            m.Active,
	}
}

// FromDomain populates the persistence model from a domain Unit entity.
func (m *UnitModel) FromDomain(u *billing.Unit) {
	m.FromDomainAggregateRoot(u.BaseAggregateRoot)
	m.BuildingID = u.BuildingID
	m.DisplayName = u.DisplayName
	m.ShareRatioPercent = u.ShareRatioPercent
	m.TenantName = u.TenantName
	m.TenantPhone = u.TenantPhone
	m.Active = u.Active
}

// UnitModelFromDomain creates a new persistence model from a domain Unit.
func UnitModelFromDomain(u *billing.Unit) *UnitModel {
	m := &UnitModel{}
	m.FromDomain(u)
	return m
}

// BillingCycleModel is the persistence model for the BillingCycle aggregate root.
type BillingCycleModel struct {
	AggregateModel
	BuildingID  uuid.UUID           `gorm:"type:uuid;not null;uniqueIndex:idx_cycle_building_month,priority:1"`
	Year        int                 `gorm:"not null;uniqueIndex:idx_cycle_building_month,priority:2"`
	Month       int                 `gorm:"not null;uniqueIndex:idx_cycle_building_month,priority:3"`
	Status      billing.CycleStatus `gorm:"type:varchar(20);not null;default:'DRAFT';index"`
	TotalAmount int64               `gorm:"not null;default:0"`
	DueDate     *time.Time
	SentAt      *time.Time
}

// TableName returns the table name for GORM
func (BillingCycleModel) TableName() string {
	return "billing_cycles"
}

// ToDomain converts the persistence model to a domain BillingCycle entity.
func (m *BillingCycleModel) ToDomain() *billing.BillingCycle {
	return &billing.BillingCycle{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		BuildingID:        m.BuildingID,
		Year:              m.Year,
		Month:             m.Month,
		Status:            m.Status,
		TotalAmount:       m.TotalAmount,
		DueDate:           m.DueDate,
		SentAt:            m.SentAt,
	}
}

// FromDomain populates the persistence model from a domain BillingCycle entity.
func (m *BillingCycleModel) FromDomain(c *billing.BillingCycle) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.BuildingID = c.BuildingID
	m.Year = c.Year
	m.Month = c.Month
	m.Status = c.Status
	m.TotalAmount = c.TotalAmount
	m.DueDate = c.DueDate
	m.SentAt = c.SentAt
}

// BillingCycleModelFromDomain creates a new persistence model from a domain BillingCycle.
func BillingCycleModelFromDomain(c *billing.BillingCycle) *BillingCycleModel {
	m := &BillingCycleModel{}
	m.FromDomain(c)
	return m
}

// CostItemModel is the persistence model for the CostItem aggregate root.
type CostItemModel struct {
	AggregateModel
	CycleID          uuid.UUID                `gorm:"type:uuid;not null;index"`
	Name             string                   `gorm:"type:varchar(100);not null"`
	Category         string                   `gorm:"type:varchar(50);index"`
	TotalAmount      int64                    `gorm:"not null"`
	Scope            billing.ItemScope        `gorm:"type:varchar(20);not null"`
	AllocationMethod billing.AllocationMethod `gorm:"type:varchar(20)"`
	TargetUnitIDs    billing.UnitIDList       `gorm:"type:jsonb;default:'[]'"`
	UnitAmounts      billing.UnitAmountMap    `gorm:"type:jsonb;default:'{}'"`
	Position         int                      `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (CostItemModel) TableName() string {
	return "cost_items"
}

// ToDomain converts the persistence model to a domain CostItem entity.
func (m *CostItemModel) ToDomain() *billing.CostItem {
	return &billing.CostItem{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CycleID:           m.CycleID,
		Name:              m.Name,
		Category:          m.Category,
		TotalAmount:       m.TotalAmount,
		Scope:             m.Scope,
		AllocationMethod:  m.AllocationMethod,
		TargetUnitIDs:     m.TargetUnitIDs,
		UnitAmounts:       m.UnitAmounts,
		Position:          m.Position,
	}
}

// FromDomain populates the persistence model from a domain CostItem entity.
func (m *CostItemModel) FromDomain(i *billing.CostItem) {
	m.FromDomainAggregateRoot(i.BaseAggregateRoot)
	m.CycleID = i.CycleID
	m.Name = i.Name
	m.Category = i.Category
	m.TotalAmount = i.TotalAmount
	m.Scope = i.Scope
	m.AllocationMethod = i.AllocationMethod
	m.TargetUnitIDs = i.TargetUnitIDs
	m.UnitAmounts = i.UnitAmounts
	m.Position = i.Position
}

// CostItemModelFromDomain creates a new persistence model from a domain CostItem.
func CostItemModelFromDomain(i *billing.CostItem) *CostItemModel {
	m := &CostItemModel{}
	m.FromDomain(i)
	return m
}

// UnitChargeModel is the persistence model for the UnitCharge aggregate root.
type UnitChargeModel struct {
	AggregateModel
	CycleID        uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_charge_cycle_unit,priority:1"`
	UnitID         uuid.UUID         `gorm:"type:uuid;not null;uniqueIndex:idx_charge_cycle_unit,priority:2"`
	AmountTotal    int64             `gorm:"not null"`
	Breakdown      billing.Breakdown `gorm:"type:jsonb;default:'[]'"`
	LateFeeAmount  int64             `gorm:"not null;default:0"`
	AmountAfterDue int64             `gorm:"not null"`
	IsSent         bool              `gorm:"not null;default:false;index"`
	SentAt         *time.Time
}

// TableName returns the table name for GORM
func (UnitChargeModel) TableName() string {
	return "unit_charges"
}

// ToDomain converts the persistence model to a domain UnitCharge entity.
func (m *UnitChargeModel) ToDomain() *billing.UnitCharge {
	return &billing.UnitCharge{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		CycleID:           m.CycleID,
		UnitID:            m.UnitID,
		AmountTotal:       m.AmountTotal,
		Breakdown:         m.Breakdown,
		LateFeeAmount:     m.LateFeeAmount,
		AmountAfterDue:    m.AmountAfterDue,
		IsSent:            m.IsSent,
		SentAt:            m.SentAt,
	}
}

// FromDomain populates the persistence model from a domain UnitCharge entity.
func (m *UnitChargeModel) FromDomain(c *billing.UnitCharge) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.CycleID = c.CycleID
	m.UnitID = c.UnitID
	m.AmountTotal = c.AmountTotal
	m.Breakdown = c.Breakdown
	m.LateFeeAmount = c.LateFeeAmount
	m.AmountAfterDue = c.AmountAfterDue
	m.IsSent = c.IsSent
	m.SentAt = c.SentAt
}

// UnitChargeModelFromDomain creates a new persistence model from a domain UnitCharge.
func UnitChargeModelFromDomain(c *billing.UnitCharge) *UnitChargeModel {
	m := &UnitChargeModel{}
	m.FromDomain(c)
	return m
}

// PaymentStatusModel is the persistence model for the PaymentStatus aggregate root.
type PaymentStatusModel struct {
	AggregateModel
	ChargeID   uuid.UUID            `gorm:"type:uuid;not null;uniqueIndex"`
	Status     billing.PaymentState `gorm:"type:varchar(20);not null;default:'UNPAID'"`
	PaidAmount int64                `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (PaymentStatusModel) TableName() string {
	return "payment_statuses"
}

// ToDomain converts the persistence model to a domain PaymentStatus entity.
func (m *PaymentStatusModel) ToDomain() *billing.PaymentStatus {
	return &billing.PaymentStatus{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		ChargeID:          m.ChargeID,
		Status:            m.Status,
		PaidAmount:        m.PaidAmount,
	}
}

// FromDomain populates the persistence model from a domain PaymentStatus entity.
func (m *PaymentStatusModel) FromDomain(p *billing.PaymentStatus) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.ChargeID = p.ChargeID
	m.Status = p.Status
	m.PaidAmount = p.PaidAmount
}

// PaymentStatusModelFromDomain creates a new persistence model from a domain PaymentStatus.
func PaymentStatusModelFromDomain(p *billing.PaymentStatus) *PaymentStatusModel {
	m := &PaymentStatusModel{}
	m.FromDomain(p)
	return m
}
