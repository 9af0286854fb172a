package repository

import (
	"context"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
)

// Wheel defines the interface for wheel persistence
type Wheel interface {
	// GetWheel returns domain.ErrWheelNotFound when no wheel has the code.
	GetWheel(ctx context.Context, code string) (*domain.Wheel, error)
	// UpsertWheel replaces the wheel definition and its prize list.
	UpsertWheel(ctx context.Context, wheel *domain.Wheel) error
	SetPaused(ctx context.Context, code string, paused bool) error
}
