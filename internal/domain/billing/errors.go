package billing

import "github.com/cohaus/backend/internal/domain/shared"

// Billing-specific domain errors
var (
	// ErrCycleLocked is returned when a recompute is attempted after any
	// charge in the cycle has been sent
	ErrCycleLocked = shared.NewDomainError("CYCLE_LOCKED", "Cycle has sent charges and can no longer be recomputed")
	// ErrShareRatioMismatch is returned when share ratios do not sum to 100
	// within tolerance
	ErrShareRatioMismatch = shared.NewDomainError("SHARE_RATIO_MISMATCH", "Unit share ratios do not sum to 100%")
	// ErrPeriodNotElapsed is returned when a send is attempted on or before
	// the billing period's end date
	ErrPeriodNotElapsed = shared.NewDomainError("PERIOD_NOT_ELAPSED", "Billing period has not fully elapsed")
	// ErrNoCharges is returned when a send is attempted before any recompute
	ErrNoCharges = shared.NewDomainError("NO_CHARGES", "Cycle has no unit charges; recompute first")
)
