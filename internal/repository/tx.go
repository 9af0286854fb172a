package repository

import (
	"context"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
)

// Tx defines the interface for transactional operations
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// DrawTx is the unit of work that commits one draw. Everything done through
// it becomes visible together on Commit or not at all.
type DrawTx interface {
	Tx

	// GetWheel reads the wheel and its prizes inside the transaction.
	GetWheel(ctx context.Context, code string) (*domain.Wheel, error)

	// FindSpin returns the existing spin for (code, participantKey), or nil.
	FindSpin(ctx context.Context, code, participantKey string) (*domain.SpinRecord, error)

	// CreateSpin inserts the record. A second record for the same
	// (code, participantKey) fails with domain.ErrAlreadyPlayed.
	CreateSpin(ctx context.Context, spin *domain.SpinRecord) error

	// DecrementStock takes one unit of stock when stock > 0 and leaves
	// unlimited prizes untouched. It fails with domain.ErrStockExhausted when
	// the prize has no stock left.
	DecrementStock(ctx context.Context, code, prizeID string) error
}
