package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Validation and input error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeConflict is used for general resource conflicts
	ErrCodeConflict = "ERR_CONFLICT"
	// ErrCodeConcurrencyConflict is used when optimistic locking fails
	ErrCodeConcurrencyConflict = "ERR_CONCURRENCY_CONFLICT"
)

// Business rule error codes
const (
	// ErrCodeInvalidState is used when an operation is invalid for current state
	ErrCodeInvalidState = "ERR_INVALID_STATE"
	// ErrCodeBusinessRule is used for generic business rule violations
	ErrCodeBusinessRule = "ERR_BUSINESS_RULE"
	// ErrCodeCycleLocked is used when a sent cycle is recomputed or edited
	ErrCodeCycleLocked = "ERR_CYCLE_LOCKED"
	// ErrCodeShareRatioMismatch is used when unit share ratios do not sum to 100%
	ErrCodeShareRatioMismatch = "ERR_SHARE_RATIO_MISMATCH"
	// ErrCodePeriodNotElapsed is used when invoices are sent before the period ends
	ErrCodePeriodNotElapsed = "ERR_PERIOD_NOT_ELAPSED"
	// ErrCodeNoCharges is used when invoices are sent before any recompute
	ErrCodeNoCharges = "ERR_NO_CHARGES"
	// ErrCodeDispatchFailed is used when the notification gateway rejects a message
	ErrCodeDispatchFailed = "ERR_DISPATCH_FAILED"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Validation and input errors -> 400 Bad Request
	ErrCodeValidation:   http.StatusBadRequest,
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,
	ErrCodeInvalidJSON:  http.StatusBadRequest,

	// Resource errors
	ErrCodeNotFound:            http.StatusNotFound,
	ErrCodeAlreadyExists:       http.StatusConflict,
	ErrCodeConflict:            http.StatusConflict,
	ErrCodeConcurrencyConflict: http.StatusConflict,

	// Business rule errors -> 422 Unprocessable Entity
	// A locked cycle is a conflict with already-sent state, not a bad entity.
	ErrCodeInvalidState:       http.StatusUnprocessableEntity,
	ErrCodeBusinessRule:       http.StatusUnprocessableEntity,
	ErrCodeCycleLocked:        http.StatusConflict,
	ErrCodeShareRatioMismatch: http.StatusUnprocessableEntity,
	ErrCodePeriodNotElapsed:   http.StatusUnprocessableEntity,
	ErrCodeNoCharges:          http.StatusUnprocessableEntity,
	ErrCodeDispatchFailed:     http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps raw domain error codes to standardized API codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":            ErrCodeNotFound,
	"ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"INVALID_INPUT":        ErrCodeInvalidInput,
	"INVALID_STATE":        ErrCodeInvalidState,
	"CONCURRENCY_CONFLICT": ErrCodeConcurrencyConflict,
	"INTERNAL":             ErrCodeInternal,

	"CYCLE_LOCKED":         ErrCodeCycleLocked,
	"SHARE_RATIO_MISMATCH": ErrCodeShareRatioMismatch,
	"PERIOD_NOT_ELAPSED":   ErrCodePeriodNotElapsed,
	"NO_CHARGES":           ErrCodeNoCharges,
	"DISPATCH_FAILED":      ErrCodeDispatchFailed,

	// Constructor validation failures all map to the validation family.
	"INVALID_NAME":              ErrCodeValidation,
	"INVALID_ALLOCATION_METHOD": ErrCodeValidation,
	"INVALID_PERIOD_DAY":        ErrCodeValidation,
	"INVALID_DUE_DAY":           ErrCodeValidation,
	"INVALID_LATE_FEE_RATE":     ErrCodeValidation,
	"INVALID_SHARE_RATIO":       ErrCodeValidation,
	"INVALID_BUILDING":          ErrCodeValidation,
	"INVALID_CYCLE":             ErrCodeValidation,
	"INVALID_PERIOD":            ErrCodeValidation,
	"INVALID_AMOUNT":            ErrCodeValidation,
	"INVALID_TARGETS":           ErrCodeValidation,
}

// NormalizeErrorCode converts a raw domain error code to the standardized format
// If the code is already in the new format or unknown, returns it as-is
func NormalizeErrorCode(code string) string {
	if newCode, ok := DomainErrorCodeMapping[code]; ok {
		return newCode
	}
	return code
}
