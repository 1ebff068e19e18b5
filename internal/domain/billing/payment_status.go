package billing

import (
	"github.com/cohaus/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// PaymentState represents the collection state of a sent unit charge
type PaymentState string

const (
	PaymentStateUnpaid  PaymentState = "UNPAID"
	PaymentStatePartial PaymentState = "PARTIAL"
	PaymentStatePaid    PaymentState = "PAID"
)

// IsValid checks if the state is a valid PaymentState
func (s PaymentState) IsValid() bool {
	switch s {
	case PaymentStateUnpaid, PaymentStatePartial, PaymentStatePaid:
		return true
	}
	return false
}

// PaymentStatus tracks collection for one sent unit charge. The billing
// engine only ever creates it (exactly one per charge, at first send); the
// collection workflow owns all later mutations.
type PaymentStatus struct {
	shared.BaseAggregateRoot
	ChargeID   uuid.UUID    `json:"charge_id"`
	Status     PaymentState `json:"status"`
	PaidAmount int64        `json:"paid_amount"`
}

// NewPaymentStatus creates the initial unpaid record for a sent charge
func NewPaymentStatus(chargeID uuid.UUID) (*PaymentStatus, error) {
	if chargeID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CHARGE", "Charge ID cannot be empty")
	}
	return &PaymentStatus{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		ChargeID:          chargeID,
		Status:            PaymentStateUnpaid,
		PaidAmount:        0,
	}, nil
}
