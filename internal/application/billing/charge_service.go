package billing

import (
	"context"
	"time"

	"github.com/cohaus/backend/internal/domain/billing"
	"github.com/cohaus/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// defaultCycleLockTTL bounds how long a crashed writer can hold a cycle lock
const defaultCycleLockTTL = 30 * time.Second

// RecomputePolicy controls how a share ratio mismatch is treated during
// recompute. Sending is always blocked on mismatch; recomputing only warns
// unless blocking is enabled.
type RecomputePolicy struct {
	BlockOnShareMismatch bool
}

// RecomputeResult summarizes a completed recompute
type RecomputeResult struct {
	CycleID     uuid.UUID `json:"cycle_id"`
	UnitCount   int       `json:"unit_count"`
	ItemCount   int       `json:"item_count"`
	TotalAmount int64     `json:"total_amount"`
	Warnings    []string  `json:"warnings,omitempty"`
}

// ChargeService orchestrates the allocation engine over a billing cycle:
// it fully regenerates the cycle's unit charges from its cost items.
type ChargeService struct {
	buildingRepo billing.BuildingRepository
	unitRepo     billing.UnitRepository
	cycleRepo    billing.BillingCycleRepository
	itemRepo     billing.CostItemRepository
	chargeRepo   billing.UnitChargeRepository
	lock         shared.CycleLock
	lockTTL      time.Duration
	policy       RecomputePolicy
}

// ChargeServiceOption is a functional option for configuring ChargeService
type ChargeServiceOption func(*ChargeService)

// WithRecomputePolicy sets the share mismatch policy
func WithRecomputePolicy(policy RecomputePolicy) ChargeServiceOption {
	return func(s *ChargeService) {
		s.policy = policy
	}
}

// WithLockTTL overrides the default cycle lock TTL
func WithLockTTL(ttl time.Duration) ChargeServiceOption {
	return func(s *ChargeService) {
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

// NewChargeService creates a new ChargeService
func NewChargeService(
	buildingRepo billing.BuildingRepository,
	unitRepo billing.UnitRepository,
	cycleRepo billing.BillingCycleRepository,
	itemRepo billing.CostItemRepository,
	chargeRepo billing.UnitChargeRepository,
	lock shared.CycleLock,
	opts ...ChargeServiceOption,
) *ChargeService {
	s := &ChargeService{
		buildingRepo: buildingRepo,
		unitRepo:     unitRepo,
		cycleRepo:    cycleRepo,
		itemRepo:     itemRepo,
		chargeRepo:   chargeRepo,
		lock:         lock,
		lockTTL:      defaultCycleLockTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Recompute deletes and rebuilds every unit charge of a draft cycle.
// The operation is destructive by design and idempotent: unchanged inputs
// produce identical breakdowns and totals. It is refused outright once any
// charge in the cycle has been sent.
func (s *ChargeService) Recompute(ctx context.Context, cycleID uuid.UUID) (*RecomputeResult, error) {
	acquired, err := s.lock.Acquire(ctx, lockKey(cycleID), s.lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, shared.ErrConcurrencyConflict
	}
	defer func() { _ = s.lock.Release(ctx, lockKey(cycleID)) }()

	cycle, err := s.cycleRepo.FindByID(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	expectedVersion := cycle.GetVersion()

	if cycle.IsSent() {
		return nil, billing.ErrCycleLocked
	}
	sent, err := s.chargeRepo.AnySentInCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	if sent {
		return nil, billing.ErrCycleLocked
	}

	building, err := s.buildingRepo.FindByID(ctx, cycle.BuildingID)
	if err != nil {
		return nil, err
	}
	units, err := s.unitRepo.FindActiveByBuilding(ctx, building.ID)
	if err != nil {
		return nil, err
	}
	items, err := s.itemRepo.FindByCycle(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	result := &RecomputeResult{CycleID: cycleID, UnitCount: len(units), ItemCount: len(items)}
	if building.UsesShareRatio() && !billing.ShareRatiosBalanced(units) {
		if s.policy.BlockOnShareMismatch {
			return nil, billing.ErrShareRatioMismatch
		}
		result.Warnings = append(result.Warnings,
			"unit share ratios do not sum to 100%; share-ratio allocations will drift")
	}

	if err := s.chargeRepo.DeleteByCycle(ctx, cycleID); err != nil {
		return nil, err
	}

	computed := billing.ComputeBreakdowns(building.AllocationMethod, units, items)
	var cycleTotal int64
	for _, c := range computed {
		lateFee := lateFeeFor(c.Breakdown.Total(), building.LateFeeRatePercent)
		charge, err := billing.NewUnitCharge(cycleID, c.UnitID, c.Breakdown, lateFee)
		if err != nil {
			return nil, err
		}
		if err := s.chargeRepo.Save(ctx, charge); err != nil {
			return nil, err
		}
		cycleTotal += charge.AmountTotal
	}

	cycle.SetTotalAmount(cycleTotal)
	if err := s.cycleRepo.SaveWithVersion(ctx, cycle, expectedVersion); err != nil {
		return nil, err
	}

	result.TotalAmount = cycleTotal
	return result, nil
}

// GetCharges returns the computed charges of a cycle
func (s *ChargeService) GetCharges(ctx context.Context, cycleID uuid.UUID) ([]billing.UnitCharge, error) {
	if _, err := s.cycleRepo.FindByID(ctx, cycleID); err != nil {
		return nil, err
	}
	return s.chargeRepo.FindByCycle(ctx, cycleID)
}

// lateFeeFor computes round(total * rate / 100)
func lateFeeFor(total int64, ratePercent decimal.Decimal) int64 {
	if total <= 0 || ratePercent.IsZero() {
		return 0
	}
	return decimal.NewFromInt(total).Mul(ratePercent).Div(decimal.NewFromInt(100)).Round(0).IntPart()
}

func lockKey(cycleID uuid.UUID) string {
	return "billing:cycle:" + cycleID.String()
}
