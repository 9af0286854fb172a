package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Gating errors
	ErrMsgWheelPaused     = "wheel is paused"
	ErrMsgOutsideWindow   = "outside the wheel's active window"
	ErrMsgWheelNotStarted = "wheel has not started"
	ErrMsgWheelEnded      = "wheel has ended"

	// Resolution errors
	ErrMsgAlreadyPlayed  = "participant has already played this wheel"
	ErrMsgOutOfStock     = "no prize is in stock"
	ErrMsgWheelNotFound  = "wheel not found"
	ErrMsgStockExhausted = "prize stock already exhausted"

	// Claim errors
	ErrMsgSpinNotFound         = "spin not found"
	ErrMsgProofAlreadyAttached = "proof already attached"
	ErrMsgInvalidClaimStatus   = "invalid claim status transition"

	// Transport errors
	ErrMsgNetworkFailure = "network failure"
	ErrMsgUploadFailure  = "upload failure"

	// Auth errors
	ErrMsgUnauthorized = "unauthorized"

	// Input errors
	ErrMsgInvalidInput = "invalid input"

	// Database/System errors
	ErrMsgDatabaseError = "database error"
	ErrMsgTxClosed      = "tx is closed"
)

var (
	// ErrWheelPaused is returned when the host has paused the wheel
	ErrWheelPaused = errors.New(ErrMsgWheelPaused)
	// ErrOutsideWindow is returned when now is before startTime or after endTime
	ErrOutsideWindow = errors.New(ErrMsgOutsideWindow)
	// ErrWheelNotStarted narrows ErrOutsideWindow to "too early"
	ErrWheelNotStarted = fmt.Errorf("%w: %s", ErrOutsideWindow, ErrMsgWheelNotStarted)
	// ErrWheelEnded narrows ErrOutsideWindow to "too late"
	ErrWheelEnded = fmt.Errorf("%w: %s", ErrOutsideWindow, ErrMsgWheelEnded)

	// ErrAlreadyPlayed is returned when a spin already exists for (wheel, participant)
	ErrAlreadyPlayed = errors.New(ErrMsgAlreadyPlayed)
	// ErrOutOfStock is returned when every prize in the pool is exhausted
	ErrOutOfStock = errors.New(ErrMsgOutOfStock)
	// ErrWheelNotFound is returned when no wheel exists for the code
	ErrWheelNotFound = errors.New(ErrMsgWheelNotFound)
	// ErrStockExhausted is returned by a conditional decrement that lost the race
	ErrStockExhausted = errors.New(ErrMsgStockExhausted)

	ErrSpinNotFound         = errors.New(ErrMsgSpinNotFound)
	ErrProofAlreadyAttached = errors.New(ErrMsgProofAlreadyAttached)
	ErrInvalidClaimStatus   = errors.New(ErrMsgInvalidClaimStatus)

	ErrNetworkFailure = errors.New(ErrMsgNetworkFailure)
	ErrUploadFailure  = errors.New(ErrMsgUploadFailure)

	ErrUnauthorized = errors.New(ErrMsgUnauthorized)
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)

	ErrDatabaseError = errors.New(ErrMsgDatabaseError)
)

// Stable error codes carried over the HTTP API so clients can rebuild the
// sentinel error on their side.
const (
	ErrCodeWheelPaused     = "wheel_paused"
	ErrCodeWheelNotStarted = "wheel_not_started"
	ErrCodeWheelEnded      = "wheel_ended"
	ErrCodeOutsideWindow   = "outside_window"
	ErrCodeAlreadyPlayed   = "already_played"
	ErrCodeOutOfStock      = "out_of_stock"
	ErrCodeWheelNotFound   = "wheel_not_found"
	ErrCodeSpinNotFound    = "spin_not_found"
	ErrCodeProofAttached   = "proof_attached"
	ErrCodeInvalidStatus   = "invalid_claim_status"
	ErrCodeUploadFailure   = "upload_failure"
	ErrCodeUnauthorized    = "unauthorized"
	ErrCodeInvalidInput    = "invalid_input"
	ErrCodeStockContention = "stock_contention"
	ErrCodeInternal        = "internal"
)

var codedErrors = []struct {
	code string
	err  error
}{
	// narrower errors first so errors.Is matches them before their parent
	{ErrCodeWheelNotStarted, ErrWheelNotStarted},
	{ErrCodeWheelEnded, ErrWheelEnded},
	{ErrCodeOutsideWindow, ErrOutsideWindow},
	{ErrCodeWheelPaused, ErrWheelPaused},
	{ErrCodeAlreadyPlayed, ErrAlreadyPlayed},
	{ErrCodeOutOfStock, ErrOutOfStock},
	{ErrCodeWheelNotFound, ErrWheelNotFound},
	{ErrCodeSpinNotFound, ErrSpinNotFound},
	{ErrCodeProofAttached, ErrProofAlreadyAttached},
	{ErrCodeInvalidStatus, ErrInvalidClaimStatus},
	{ErrCodeUploadFailure, ErrUploadFailure},
	{ErrCodeUnauthorized, ErrUnauthorized},
	{ErrCodeInvalidInput, ErrInvalidInput},
	{ErrCodeStockContention, ErrStockExhausted},
}

// ErrorCode returns the API code for err, or ErrCodeInternal when err is not a
// known domain error.
func ErrorCode(err error) string {
	for _, c := range codedErrors {
		if errors.Is(err, c.err) {
			return c.code
		}
	}
	return ErrCodeInternal
}

// ErrorFromCode is the inverse of ErrorCode. Unknown codes return nil.
func ErrorFromCode(code string) error {
	for _, c := range codedErrors {
		if c.code == code {
			return c.err
		}
	}
	return nil
}
