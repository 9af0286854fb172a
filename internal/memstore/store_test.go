package memstore

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/repository"
)

func seeded(t *testing.T, prizes ...domain.Prize) *Store {
	t.Helper()
	s := New()
	require.NoError(t, s.UpsertWheel(context.Background(), &domain.Wheel{Code: "W", Prizes: prizes}))
	return s
}

func spinFor(key string, p domain.Prize) *domain.SpinRecord {
	return &domain.SpinRecord{
		ID:             uuid.New(),
		WheelCode:      "W",
		ParticipantKey: key,
		PrizeID:        p.ID,
		PrizeLabel:     p.Label,
		ClaimStatus:    domain.ClaimStatusPending,
		CreatedAt:      time.Now(),
	}
}

func draw(ctx context.Context, s *Store, spin *domain.SpinRecord) error {
	tx, err := s.BeginDrawTx(ctx)
	if err != nil {
		return err
	}
	defer repository.SafeRollback(ctx, tx)
	if err := tx.CreateSpin(ctx, spin); err != nil {
		return err
	}
	if err := tx.DecrementStock(ctx, spin.WheelCode, spin.PrizeID); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func TestStore_GetWheelReturnsCopy(t *testing.T) {
	s := seeded(t, domain.Prize{ID: "a", Label: "A", Weight: 1, Stock: 2})
	ctx := context.Background()

	w, err := s.GetWheel(ctx, "W")
	require.NoError(t, err)
	w.Prizes[0].Stock = 0

	again, err := s.GetWheel(ctx, "W")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Prizes[0].Stock)

	_, err = s.GetWheel(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrWheelNotFound)
}

func TestDrawTx_RollbackDiscardsWrites(t *testing.T) {
	p := domain.Prize{ID: "a", Label: "A", Weight: 1, Stock: 1}
	s := seeded(t, p)
	ctx := context.Background()

	tx, err := s.BeginDrawTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.CreateSpin(ctx, spinFor("k", p)))
	require.NoError(t, tx.DecrementStock(ctx, "W", "a"))

	inTx, err := tx.GetWheel(ctx, "W")
	require.NoError(t, err)
	assert.Equal(t, 0, inTx.Prizes[0].Stock, "tx sees its own decrement")

	require.NoError(t, tx.Rollback(ctx))
	assert.Error(t, tx.Rollback(ctx), "second rollback reports a closed tx")

	w, _ := s.GetWheel(ctx, "W")
	assert.Equal(t, 1, w.Prizes[0].Stock)
	spin, err := s.FindSpin(ctx, "W", "k")
	require.NoError(t, err)
	assert.Nil(t, spin)
}

func TestDrawTx_StockAndUniqueness(t *testing.T) {
	limited := domain.Prize{ID: "a", Label: "A", Weight: 1, Stock: 1}
	free := domain.Prize{ID: "b", Label: "B", Weight: 1, Stock: domain.UnlimitedStock}
	s := seeded(t, limited, free)
	ctx := context.Background()

	require.NoError(t, draw(ctx, s, spinFor("one", limited)))
	assert.ErrorIs(t, draw(ctx, s, spinFor("two", limited)), domain.ErrStockExhausted)
	assert.ErrorIs(t, draw(ctx, s, spinFor("one", free)), domain.ErrAlreadyPlayed)
	require.NoError(t, draw(ctx, s, spinFor("three", free)))

	w, _ := s.GetWheel(ctx, "W")
	assert.Equal(t, 0, w.Prizes[0].Stock)
	assert.Equal(t, domain.UnlimitedStock, w.Prizes[1].Stock)
}

func TestDrawTx_Concurrent(t *testing.T) {
	p := domain.Prize{ID: "a", Label: "A", Weight: 1, Stock: 5}
	s := seeded(t, p)
	ctx := context.Background()

	var wg sync.WaitGroup
	var mu sync.Mutex
	ok := 0
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if draw(ctx, s, spinFor(uuid.NewString(), p)) == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, ok)
	w, _ := s.GetWheel(ctx, "W")
	assert.Equal(t, 0, w.Prizes[0].Stock)
}

func TestBeginDrawTx_HonoursContext(t *testing.T) {
	s := seeded(t, domain.Prize{ID: "a", Label: "A", Weight: 1, Stock: 1})
	tx, err := s.BeginDrawTx(context.Background())
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(context.Background()) }()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = s.BeginDrawTx(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClaims(t *testing.T) {
	p := domain.Prize{ID: "a", Label: "A", Weight: 1, Stock: domain.UnlimitedStock}
	s := seeded(t, p)
	ctx := context.Background()

	spin := spinFor("k", p)
	require.NoError(t, draw(ctx, s, spin))

	pending, err := s.ListPendingSpins(ctx, "k")
	require.NoError(t, err)
	require.Len(t, pending, 1)

	require.NoError(t, s.AttachProof(ctx, spin.ID, "ref"))
	assert.ErrorIs(t, s.AttachProof(ctx, spin.ID, "ref2"), domain.ErrProofAlreadyAttached)
	assert.ErrorIs(t, s.AttachProof(ctx, uuid.New(), "ref"), domain.ErrSpinNotFound)

	pending, err = s.ListPendingSpins(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, pending)

	n, err := s.ReopenClaim(ctx, spin.ID, "other")
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = s.ReopenClaim(ctx, spin.ID, "ref")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	pending, err = s.ListPendingSpins(ctx, "k")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	require.NoError(t, s.AttachProof(ctx, spin.ID, "ref2"))

	n, err = s.SetClaimStatusIfMatches(ctx, spin.ID, domain.ClaimStatusPending, domain.ClaimStatusDelivered)
	require.NoError(t, err)
	assert.Zero(t, n)
	n, err = s.SetClaimStatusIfMatches(ctx, spin.ID, domain.ClaimStatusClaimed, domain.ClaimStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	winners, err := s.ListRecentWinners(ctx, "W", 10)
	require.NoError(t, err)
	require.Len(t, winners, 1)
	assert.Equal(t, domain.ClaimStatusDelivered, winners[0].ClaimStatus)
}
