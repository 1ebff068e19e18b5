package billing

import (
	"context"
	"sync"
	"time"

	"github.com/cohaus/backend/internal/domain/billing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// =============================================================================
// Mock repositories shared by the billing application service tests
// =============================================================================

type MockBuildingRepository struct {
	mock.Mock
}

func (m *MockBuildingRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Building, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Building), args.Error(1)
}

func (m *MockBuildingRepository) FindAll(ctx context.Context) ([]billing.Building, error) {
	args := m.Called(ctx)
	return args.Get(0).([]billing.Building), args.Error(1)
}

func (m *MockBuildingRepository) Save(ctx context.Context, building *billing.Building) error {
	args := m.Called(ctx, building)
	return args.Error(0)
}

func (m *MockBuildingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUnitRepository struct {
	mock.Mock
}

func (m *MockUnitRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.Unit, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindActiveByBuilding(ctx context.Context, buildingID uuid.UUID) ([]billing.Unit, error) {
	args := m.Called(ctx, buildingID)
	return args.Get(0).([]billing.Unit), args.Error(1)
}

func (m *MockUnitRepository) FindByBuilding(ctx context.Context, buildingID uuid.UUID) ([]billing.Unit, error) {
	args := m.Called(ctx, buildingID)
	return args.Get(0).([]billing.Unit), args.Error(1)
}

func (m *MockUnitRepository) Save(ctx context.Context, unit *billing.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

func (m *MockUnitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockBillingCycleRepository struct {
	mock.Mock
}

func (m *MockBillingCycleRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.BillingCycle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.BillingCycle), args.Error(1)
}

func (m *MockBillingCycleRepository) FindByBuildingMonth(ctx context.Context, buildingID uuid.UUID, year, month int) (*billing.BillingCycle, error) {
	args := m.Called(ctx, buildingID, year, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.BillingCycle), args.Error(1)
}

func (m *MockBillingCycleRepository) FindByBuilding(ctx context.Context, buildingID uuid.UUID) ([]billing.BillingCycle, error) {
	args := m.Called(ctx, buildingID)
	return args.Get(0).([]billing.BillingCycle), args.Error(1)
}

func (m *MockBillingCycleRepository) Save(ctx context.Context, cycle *billing.BillingCycle) error {
	args := m.Called(ctx, cycle)
	return args.Error(0)
}

func (m *MockBillingCycleRepository) SaveWithVersion(ctx context.Context, cycle *billing.BillingCycle, expectedVersion int) error {
	args := m.Called(ctx, cycle, expectedVersion)
	return args.Error(0)
}

type MockCostItemRepository struct {
	mock.Mock
}

func (m *MockCostItemRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.CostItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.CostItem), args.Error(1)
}

func (m *MockCostItemRepository) FindByCycle(ctx context.Context, cycleID uuid.UUID) ([]billing.CostItem, error) {
	args := m.Called(ctx, cycleID)
	return args.Get(0).([]billing.CostItem), args.Error(1)
}

func (m *MockCostItemRepository) Save(ctx context.Context, item *billing.CostItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockCostItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUnitChargeRepository struct {
	mock.Mock
}

func (m *MockUnitChargeRepository) FindByID(ctx context.Context, id uuid.UUID) (*billing.UnitCharge, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.UnitCharge), args.Error(1)
}

func (m *MockUnitChargeRepository) FindByCycle(ctx context.Context, cycleID uuid.UUID) ([]billing.UnitCharge, error) {
	args := m.Called(ctx, cycleID)
	return args.Get(0).([]billing.UnitCharge), args.Error(1)
}

func (m *MockUnitChargeRepository) FindByCycleAndUnit(ctx context.Context, cycleID, unitID uuid.UUID) (*billing.UnitCharge, error) {
	args := m.Called(ctx, cycleID, unitID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.UnitCharge), args.Error(1)
}

func (m *MockUnitChargeRepository) AnySentInCycle(ctx context.Context, cycleID uuid.UUID) (bool, error) {
	args := m.Called(ctx, cycleID)
	return args.Bool(0), args.Error(1)
}

func (m *MockUnitChargeRepository) DeleteByCycle(ctx context.Context, cycleID uuid.UUID) error {
	args := m.Called(ctx, cycleID)
	return args.Error(0)
}

func (m *MockUnitChargeRepository) Save(ctx context.Context, charge *billing.UnitCharge) error {
	args := m.Called(ctx, charge)
	return args.Error(0)
}

type MockPaymentStatusRepository struct {
	mock.Mock
}

func (m *MockPaymentStatusRepository) FindByCharge(ctx context.Context, chargeID uuid.UUID) (*billing.PaymentStatus, error) {
	args := m.Called(ctx, chargeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.PaymentStatus), args.Error(1)
}

func (m *MockPaymentStatusRepository) Create(ctx context.Context, status *billing.PaymentStatus) error {
	args := m.Called(ctx, status)
	return args.Error(0)
}

type MockNotificationSender struct {
	mock.Mock
}

func (m *MockNotificationSender) Send(ctx context.Context, phone, message string) error {
	args := m.Called(ctx, phone, message)
	return args.Error(0)
}

// stubLock is a process-local CycleLock for service tests
type stubLock struct {
	mu   sync.Mutex
	held map[string]bool
}

func newStubLock() *stubLock {
	return &stubLock{held: make(map[string]bool)}
}

func (l *stubLock) Acquire(_ context.Context, key string, _ time.Duration) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] {
		return false, nil
	}
	l.held[key] = true
	return true, nil
}

func (l *stubLock) Release(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.held, key)
	return nil
}

func (l *stubLock) Close() error { return nil }
