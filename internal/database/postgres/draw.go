package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/repository"
)

// DrawRepository implements repository.Draw for PostgreSQL
type DrawRepository struct {
	*WheelRepository
	*SpinRepository
	db *pgxpool.Pool
}

// NewDrawRepository creates a new DrawRepository
func NewDrawRepository(db *pgxpool.Pool) *DrawRepository {
	return &DrawRepository{
		WheelRepository: NewWheelRepository(db),
		SpinRepository:  NewSpinRepository(db),
		db:              db,
	}
}

// BeginDrawTx starts the transaction that commits one draw
func (r *DrawRepository) BeginDrawTx(ctx context.Context) (repository.DrawTx, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	return &drawTx{tx: tx}, nil
}

// drawTx implements repository.DrawTx. It takes no row locks: the unique
// constraint on spins and the guarded stock update serialise the writes.
type drawTx struct {
	tx pgx.Tx
}

func (t *drawTx) Commit(ctx context.Context) error {
	return t.tx.Commit(ctx)
}

func (t *drawTx) Rollback(ctx context.Context) error {
	return t.tx.Rollback(ctx)
}

func (t *drawTx) GetWheel(ctx context.Context, code string) (*domain.Wheel, error) {
	return getWheel(ctx, t.tx, code)
}

func (t *drawTx) FindSpin(ctx context.Context, code, participantKey string) (*domain.SpinRecord, error) {
	return findSpin(ctx, t.tx, code, participantKey)
}

func (t *drawTx) CreateSpin(ctx context.Context, spin *domain.SpinRecord) error {
	_, err := t.tx.Exec(ctx, queryInsertSpin,
		spin.ID, spin.WheelCode, spin.ParticipantKey, spin.ParticipantName, spin.ParticipantAvatar,
		spin.PrizeID, spin.PrizeLabel, string(spin.ClaimStatus), spin.ProofRef, spin.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, ConstraintSpinsOnePerParticipant) {
			return domain.ErrAlreadyPlayed
		}
		return fmt.Errorf("%s: %w", ErrMsgFailedToCreateSpin, err)
	}
	return nil
}

func (t *drawTx) DecrementStock(ctx context.Context, code, prizeID string) error {
	tag, err := t.tx.Exec(ctx, queryDecrementStock, code, prizeID)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToDecrementStock, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrStockExhausted
	}
	return nil
}
