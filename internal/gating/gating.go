// Package gating decides whether a wheel accepts draws at a given instant.
package gating

import (
	"time"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
)

// Decision is the outcome of CanDraw. Reason is nil when Eligible.
type Decision struct {
	Eligible bool
	Reason   error
}

// Err returns the blocking reason, or nil.
func (d Decision) Err() error {
	if d.Eligible {
		return nil
	}
	return d.Reason
}

// CanDraw checks, in order, the pause flag and then the time window. Window
// bounds are inclusive and a missing bound is open. It does not look at stock
// or prior spins.
func CanDraw(w *domain.Wheel, now time.Time) Decision {
	if w == nil {
		return Decision{Reason: domain.ErrWheelNotFound}
	}
	if w.Paused {
		return Decision{Reason: domain.ErrWheelPaused}
	}
	if w.StartTime != nil && now.Before(*w.StartTime) {
		return Decision{Reason: domain.ErrWheelNotStarted}
	}
	if w.EndTime != nil && now.After(*w.EndTime) {
		return Decision{Reason: domain.ErrWheelEnded}
	}
	return Decision{Eligible: true}
}

// Eligibility converts a decision into its API shape.
func (d Decision) Eligibility() domain.Eligibility {
	if d.Eligible {
		return domain.Eligibility{Eligible: true}
	}
	return domain.Eligibility{Reason: domain.ErrorCode(d.Reason)}
}
