package billing

import (
	"context"
	"time"

	"github.com/cohaus/backend/internal/domain/billing"
	"github.com/cohaus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// NotificationSender dispatches a rendered invoice message to a tenant.
// Transport (SMS gateway, timeouts, retries) lives behind this interface;
// the engine is only responsible for rendering the message.
type NotificationSender interface {
	Send(ctx context.Context, phone, message string) error
}

// SendGate is the result of a send precondition check
type SendGate struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`  // domain error code when blocked
	Message string `json:"message,omitempty"` // human-readable explanation
}

// UnitSendFailure records one unit whose send could not be completed
type UnitSendFailure struct {
	UnitID  uuid.UUID `json:"unit_id"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

// SendResult summarizes a send batch. Per-unit failures are collected, never
// thrown: once the gate passes, the batch always runs to completion.
type SendResult struct {
	CycleID  uuid.UUID         `json:"cycle_id"`
	DueDate  time.Time         `json:"due_date"`
	Sent     int               `json:"sent"`
	Resent   int               `json:"resent"`
	Failed   int               `json:"failed"`
	Failures []UnitSendFailure `json:"failures,omitempty"`
}

// InvoiceService governs the one-way draft -> sent transition of a billing
// cycle: it gates sending, marks charges sent exactly once, derives the due
// date and creates the initial payment status records.
type InvoiceService struct {
	buildingRepo billing.BuildingRepository
	unitRepo     billing.UnitRepository
	cycleRepo    billing.BillingCycleRepository
	chargeRepo   billing.UnitChargeRepository
	paymentRepo  billing.PaymentStatusRepository
	sender       NotificationSender
	lock         shared.CycleLock
	lockTTL      time.Duration
}

// InvoiceServiceOption is a functional option for configuring InvoiceService
type InvoiceServiceOption func(*InvoiceService)

// WithSendLockTTL overrides the default cycle lock TTL for send batches
func WithSendLockTTL(ttl time.Duration) InvoiceServiceOption {
	return func(s *InvoiceService) {
		if ttl > 0 {
			s.lockTTL = ttl
		}
	}
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(
	buildingRepo billing.BuildingRepository,
	unitRepo billing.UnitRepository,
	cycleRepo billing.BillingCycleRepository,
	chargeRepo billing.UnitChargeRepository,
	paymentRepo billing.PaymentStatusRepository,
	sender NotificationSender,
	lock shared.CycleLock,
	opts ...InvoiceServiceOption,
) *InvoiceService {
	s := &InvoiceService{
		buildingRepo: buildingRepo,
		unitRepo:     unitRepo,
		cycleRepo:    cycleRepo,
		chargeRepo:   chargeRepo,
		paymentRepo:  paymentRepo,
		sender:       sender,
		lock:         lock,
		lockTTL:      defaultCycleLockTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CanSend checks the send preconditions for a cycle without side effects.
// Validity is re-derived from current records on every call; nothing is
// cached between checks.
func (s *InvoiceService) CanSend(ctx context.Context, cycleID uuid.UUID, today time.Time) (*SendGate, error) {
	cycle, err := s.cycleRepo.FindByID(ctx, cycleID)
	if err != nil {
		return nil, err
	}
	building, err := s.buildingRepo.FindByID(ctx, cycle.BuildingID)
	if err != nil {
		return nil, err
	}
	if gateErr := s.checkGate(ctx, cycle, building, today); gateErr != nil {
		return &SendGate{Allowed: false, Reason: gateErr.Code, Message: gateErr.Message}, nil
	}
	return &SendGate{Allowed: true}, nil
}

// checkGate returns the blocking domain error, or nil when sending is allowed
func (s *InvoiceService) checkGate(ctx context.Context, cycle *billing.BillingCycle, building *billing.Building, today time.Time) *shared.DomainError {
	_, periodEnd := billing.ResolveBillingPeriod(
		cycle.Year, cycle.Month,
		building.BillingPeriodStartDay, building.BillingPeriodEndDay,
	)
	// Sending is blocked until the cost period has fully elapsed.
	if !today.After(periodEnd) {
		return billing.ErrPeriodNotElapsed
	}

	if building.UsesShareRatio() {
		units, err := s.unitRepo.FindActiveByBuilding(ctx, building.ID)
		if err != nil {
			return shared.NewDomainError("INTERNAL", err.Error())
		}
		if !billing.ShareRatiosBalanced(units) {
			return billing.ErrShareRatioMismatch
		}
	}

	charges, err := s.chargeRepo.FindByCycle(ctx, cycle.ID)
	if err != nil {
		return shared.NewDomainError("INTERNAL", err.Error())
	}
	if len(charges) == 0 {
		return billing.ErrNoCharges
	}
	return nil
}

// Send dispatches invoices for the selected units of a cycle. An empty unit
// selection means every unit with a charge. Already-sent units are resent:
// they get a fresh notification, never a second payment status row, and no
// change to their sent timestamp. Per-unit dispatch failures are collected
// in the result and never roll back that unit's sent flag.
func (s *InvoiceService) Send(ctx context.Context, cycleID uuid.UUID, unitIDs []uuid.UUID, today time.Time) (*SendResult, error) {
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
	building, err := s.buildingRepo.FindByID(ctx, cycle.BuildingID)
	if err != nil {
		return nil, err
	}
	if gateErr := s.checkGate(ctx, cycle, building, today); gateErr != nil {
		return nil, gateErr
	}

	// Fixed at first send, never recalculated afterwards.
	dueDate := billing.ResolveDueDate(cycle.Year, cycle.Month, building.DueDay)
	if cycle.DueDate != nil {
		dueDate = *cycle.DueDate
	}

	if len(unitIDs) == 0 {
		charges, err := s.chargeRepo.FindByCycle(ctx, cycleID)
		if err != nil {
			return nil, err
		}
		for i := range charges {
			unitIDs = append(unitIDs, charges[i].UnitID)
		}
	}

	result := &SendResult{CycleID: cycleID, DueDate: dueDate}
	for _, unitID := range unitIDs {
		s.sendToUnit(ctx, cycle, building, unitID, dueDate, result)
	}

	if err := cycle.MarkSent(dueDate); err != nil {
		return nil, err
	}
	if err := s.cycleRepo.SaveWithVersion(ctx, cycle, expectedVersion); err != nil {
		return nil, err
	}
	return result, nil
}

// sendToUnit performs the idempotent per-unit send. Each unit is handled
// independently so that one failure never aborts the rest of the batch.
func (s *InvoiceService) sendToUnit(
	ctx context.Context,
	cycle *billing.BillingCycle,
	building *billing.Building,
	unitID uuid.UUID,
	dueDate time.Time,
	result *SendResult,
) {
	fail := func(code, message string) {
		result.Failed++
		result.Failures = append(result.Failures, UnitSendFailure{UnitID: unitID, Code: code, Message: message})
	}

	charge, err := s.chargeRepo.FindByCycleAndUnit(ctx, cycle.ID, unitID)
	if err != nil {
		fail("NOT_FOUND", "No charge computed for this unit")
		return
	}
	unit, err := s.unitRepo.FindByID(ctx, unitID)
	if err != nil {
		fail("NOT_FOUND", "Unit not found")
		return
	}

	resend := charge.IsSent
	if !resend {
		charge.MarkSent()
		if err := s.chargeRepo.Save(ctx, charge); err != nil {
			fail("INTERNAL", err.Error())
			return
		}
	}

	// Check-then-create, on resends too: a retried send must not produce a
	// second payment status row, and a send that failed after marking the
	// charge sent still gets its row on the next attempt.
	existing, err := s.paymentRepo.FindByCharge(ctx, charge.ID)
	if err != nil {
		fail("INTERNAL", err.Error())
		return
	}
	if existing == nil {
		status, err := billing.NewPaymentStatus(charge.ID)
		if err != nil {
			fail("INTERNAL", err.Error())
			return
		}
		if err := s.paymentRepo.Create(ctx, status); err != nil {
			fail("INTERNAL", err.Error())
			return
		}
	}

	message := RenderInvoiceMessage(building, cycle, unit, charge, dueDate)
	if err := s.sender.Send(ctx, unit.TenantPhone, message); err != nil {
		// The sent flag stays: retries are idempotent and only redeliver.
		fail("DISPATCH_FAILED", err.Error())
		return
	}

	if resend {
		result.Resent++
	} else {
		result.Sent++
	}
}
