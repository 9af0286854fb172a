package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
)

// Spin defines the interface for spin record persistence
type Spin interface {
	// FindSpin returns the spin for (code, participantKey), or nil when the
	// participant has not played.
	FindSpin(ctx context.Context, code, participantKey string) (*domain.SpinRecord, error)
	GetSpin(ctx context.Context, id uuid.UUID) (*domain.SpinRecord, error)

	// ListPendingSpins returns the participant's spins that are pending and
	// have no proof yet, newest first.
	ListPendingSpins(ctx context.Context, participantKey string) ([]domain.SpinRecord, error)

	// AttachProof sets the proof reference and moves the spin to claimed in
	// one step. It fails with domain.ErrProofAlreadyAttached when a proof is
	// already present.
	AttachProof(ctx context.Context, id uuid.UUID, proofRef string) error

	// SetClaimStatusIfMatches moves the spin to next only when it is still in
	// expected, and returns the rows affected.
	SetClaimStatusIfMatches(ctx context.Context, id uuid.UUID, expected, next domain.ClaimStatus) (int64, error)

	// ReopenClaim moves a claimed spin carrying proofRef back to pending and
	// clears the proof, returning the rows affected.
	ReopenClaim(ctx context.Context, id uuid.UUID, proofRef string) (int64, error)

	ListRecentWinners(ctx context.Context, code string, limit int) ([]domain.SpinRecord, error)
}

// Draw is everything the draw resolver needs from storage.
type Draw interface {
	Wheel
	Spin
	BeginDrawTx(ctx context.Context) (DrawTx, error)
}
