package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/repository"
)

// WheelRepository implements repository.Wheel for PostgreSQL
type WheelRepository struct {
	db *pgxpool.Pool
}

// NewWheelRepository creates a new WheelRepository
func NewWheelRepository(db *pgxpool.Pool) *WheelRepository {
	return &WheelRepository{db: db}
}

// GetWheel loads the wheel and its prizes in slice order
func (r *WheelRepository) GetWheel(ctx context.Context, code string) (*domain.Wheel, error) {
	return getWheel(ctx, r.db, code)
}

// UpsertWheel writes the wheel row and replaces its prize list in one transaction
func (r *WheelRepository) UpsertWheel(ctx context.Context, wheel *domain.Wheel) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToBeginTransaction, err)
	}
	defer repository.SafeRollback(ctx, tx)

	err = tx.QueryRow(ctx, queryUpsertWheel,
		wheel.Code, wheel.Title, wheel.HostName, wheel.Paused, wheel.StartTime, wheel.EndTime,
	).Scan(&wheel.UpdatedAt)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToUpsertWheel, err)
	}

	batch := &pgx.Batch{}
	batch.Queue(queryDeletePrizes, wheel.Code)
	for i, p := range wheel.Prizes {
		batch.Queue(queryInsertPrize, wheel.Code, p.ID, i, p.Label, p.Weight, p.Stock, p.Color)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToReplacePrizes, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToCommitTransaction, err)
	}
	return nil
}

// SetPaused toggles the host pause flag
func (r *WheelRepository) SetPaused(ctx context.Context, code string, paused bool) error {
	tag, err := r.db.Exec(ctx, querySetPaused, code, paused)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedToSetPaused, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrWheelNotFound
	}
	return nil
}
