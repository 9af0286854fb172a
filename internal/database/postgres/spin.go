package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
)

// SpinRepository implements repository.Spin for PostgreSQL
type SpinRepository struct {
	db *pgxpool.Pool
}

// NewSpinRepository creates a new SpinRepository
func NewSpinRepository(db *pgxpool.Pool) *SpinRepository {
	return &SpinRepository{db: db}
}

// FindSpin returns nil, nil when the participant has not played the wheel
func (r *SpinRepository) FindSpin(ctx context.Context, code, participantKey string) (*domain.SpinRecord, error) {
	return findSpin(ctx, r.db, code, participantKey)
}

// GetSpin retrieves a spin by ID
func (r *SpinRepository) GetSpin(ctx context.Context, id uuid.UUID) (*domain.SpinRecord, error) {
	spin, err := scanSpin(r.db.QueryRow(ctx, queryGetSpin, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSpinNotFound
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToGetSpin, err)
	}
	return spin, nil
}

// ListPendingSpins returns spins still waiting for a proof, newest first
func (r *SpinRepository) ListPendingSpins(ctx context.Context, participantKey string) ([]domain.SpinRecord, error) {
	rows, err := r.db.Query(ctx, queryListPendingSpins, participantKey)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListSpins, err)
	}
	spins, err := collectSpins(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListSpins, err)
	}
	return spins, nil
}

// AttachProof stores the proof reference and marks the spin claimed. The
// update only matches a pending spin with no proof, so two concurrent
// submissions cannot both succeed.
func (r *SpinRepository) AttachProof(ctx context.Context, id uuid.UUID, proofRef string) error {
	tag, err := r.db.Exec(ctx, queryAttachProof, id, proofRef)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToAttachProof, err)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// Nothing matched; work out why.
	spin, err := r.GetSpin(ctx, id)
	if err != nil {
		return err
	}
	if spin.ProofRef != nil {
		return domain.ErrProofAlreadyAttached
	}
	return domain.ErrInvalidClaimStatus
}

// SetClaimStatusIfMatches performs a compare-and-swap on the claim status.
// Returns the number of rows affected (0 if the status didn't match).
func (r *SpinRepository) SetClaimStatusIfMatches(
	ctx context.Context,
	id uuid.UUID,
	expected, next domain.ClaimStatus,
) (int64, error) {
	tag, err := r.db.Exec(ctx, querySetClaimStatusIfMatches, id, string(expected), string(next))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToSetClaimStatus, err)
	}
	return tag.RowsAffected(), nil
}

// ReopenClaim clears a rejected proof and puts the spin back to pending
func (r *SpinRepository) ReopenClaim(ctx context.Context, id uuid.UUID, proofRef string) (int64, error) {
	tag, err := r.db.Exec(ctx, queryReopenClaim, id, proofRef)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", ErrMsgFailedToSetClaimStatus, err)
	}
	return tag.RowsAffected(), nil
}

// ListRecentWinners returns the latest spins on a wheel, newest first
func (r *SpinRepository) ListRecentWinners(ctx context.Context, code string, limit int) ([]domain.SpinRecord, error) {
	rows, err := r.db.Query(ctx, queryListRecentWinners, code, limit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListSpins, err)
	}
	spins, err := collectSpins(rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToListSpins, err)
	}
	return spins, nil
}
