package claim

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/event"
	"github.com/osse101/LuckyWheel_Go/internal/memstore"
	"github.com/osse101/LuckyWheel_Go/internal/storage"
)

var pngBytes = []byte{
	0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A,
	0x00, 0x00, 0x00, 0x0D, 0x49, 0x48, 0x44, 0x52,
	0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
	0x08, 0x06, 0x00, 0x00, 0x00, 0x1F, 0x15, 0xC4, 0x89,
}

type fixture struct {
	store  *memstore.Store
	proofs *storage.FileStore
	bus    *event.MemoryBus
	svc    Service
	dir    string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memstore.New()
	require.NoError(t, store.UpsertWheel(context.Background(), &domain.Wheel{
		Code:   "LUCKY",
		Prizes: []domain.Prize{{ID: "50k", Label: "50,000", Weight: 1, Stock: domain.UnlimitedStock}},
	}))
	dir := t.TempDir()
	proofs, err := storage.NewFileStore(dir, 1024)
	require.NoError(t, err)
	bus := event.NewMemoryBus()
	return &fixture{
		store:  store,
		proofs: proofs,
		bus:    bus,
		svc:    NewService(store, proofs, bus, 0),
		dir:    dir,
	}
}

func (f *fixture) addSpin(t *testing.T, key string, createdAt time.Time) *domain.SpinRecord {
	t.Helper()
	ctx := context.Background()
	spin := &domain.SpinRecord{
		ID:              uuid.New(),
		WheelCode:       "LUCKY",
		ParticipantKey:  key,
		ParticipantName: key,
		PrizeID:         "50k",
		PrizeLabel:      "50,000",
		CreatedAt:       createdAt,
		ClaimStatus:     domain.ClaimStatusPending,
	}
	tx, err := f.store.BeginDrawTx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.CreateSpin(ctx, spin))
	require.NoError(t, tx.Commit(ctx))
	return spin
}

func TestListPending(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	spin := f.addSpin(t, "alice@example.com", time.Now())
	f.addSpin(t, "bob@example.com", time.Now())

	pending, err := f.svc.ListPending(ctx, " Alice@Example.com")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, spin.ID, pending[0].ID)

	_, err = f.svc.ListPending(ctx, "  ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubmitProof_Success(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	spin := f.addSpin(t, "alice@example.com", time.Now())

	var published []event.Event
	f.bus.Subscribe(event.ProofSubmitted, func(_ context.Context, e event.Event) error {
		published = append(published, e)
		return nil
	})

	got, err := f.svc.SubmitProof(ctx, spin.ID, "alice@example.com", bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimStatusClaimed, got.ClaimStatus)
	require.NotNil(t, got.ProofRef)

	stored, err := f.store.GetSpin(ctx, spin.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimStatusClaimed, stored.ClaimStatus)
	assert.Equal(t, *got.ProofRef, *stored.ProofRef)

	require.Len(t, published, 1)
	assert.Equal(t, "LUCKY", published[0].WheelCode())

	pending, err := f.svc.ListPending(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Empty(t, pending)

	rc, mime, err := f.svc.OpenProof(ctx, spin.ID)
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "image/png", mime)
	assert.Equal(t, pngBytes, data)
}

func TestSubmitProof_Rejections(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	spin := f.addSpin(t, "alice@example.com", time.Now())

	t.Run("unknown spin", func(t *testing.T) {
		_, err := f.svc.SubmitProof(ctx, uuid.New(), "alice@example.com", bytes.NewReader(pngBytes))
		assert.ErrorIs(t, err, domain.ErrSpinNotFound)
	})

	t.Run("someone else's spin", func(t *testing.T) {
		_, err := f.svc.SubmitProof(ctx, spin.ID, "mallory@example.com", bytes.NewReader(pngBytes))
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("not an image", func(t *testing.T) {
		_, err := f.svc.SubmitProof(ctx, spin.ID, "alice@example.com", bytes.NewReader([]byte("hello world")))
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		stored, err := f.store.GetSpin(ctx, spin.ID)
		require.NoError(t, err)
		assert.True(t, stored.AwaitingProof())
	})

	t.Run("second submission", func(t *testing.T) {
		_, err := f.svc.SubmitProof(ctx, spin.ID, "alice@example.com", bytes.NewReader(pngBytes))
		require.NoError(t, err)
		_, err = f.svc.SubmitProof(ctx, spin.ID, "alice@example.com", bytes.NewReader(pngBytes))
		assert.ErrorIs(t, err, domain.ErrProofAlreadyAttached)
	})
}

func TestSubmitProof_DeliveredWithoutProof(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	spin := f.addSpin(t, "alice@example.com", time.Now())

	_, err := f.svc.SetStatus(ctx, spin.ID, domain.ClaimStatusDelivered)
	require.NoError(t, err)

	_, err = f.svc.SubmitProof(ctx, spin.ID, "alice@example.com", bytes.NewReader(pngBytes))
	assert.ErrorIs(t, err, domain.ErrInvalidClaimStatus)
}

// racingProofs lets another submission win between Save and AttachProof.
type racingProofs struct {
	storage.ProofStore
	deleted atomic.Int32
	onSave  func()
}

func (r *racingProofs) Save(ctx context.Context, id uuid.UUID, rd io.Reader) (string, error) {
	ref, err := r.ProofStore.Save(ctx, id, rd)
	if err == nil && r.onSave != nil {
		r.onSave()
	}
	return ref, err
}

func (r *racingProofs) Delete(ctx context.Context, ref string) error {
	r.deleted.Add(1)
	return r.ProofStore.Delete(ctx, ref)
}

func TestSubmitProof_LosingRaceRemovesFile(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	spin := f.addSpin(t, "alice@example.com", time.Now())

	proofs := &racingProofs{ProofStore: f.proofs}
	proofs.onSave = func() {
		require.NoError(t, f.store.AttachProof(ctx, spin.ID, "winner.png"))
	}
	svc := NewService(f.store, proofs, nil, 0)

	_, err := svc.SubmitProof(ctx, spin.ID, "alice@example.com", bytes.NewReader(pngBytes))
	assert.ErrorIs(t, err, domain.ErrProofAlreadyAttached)
	assert.Equal(t, int32(1), proofs.deleted.Load())

	stored, err := f.store.GetSpin(ctx, spin.ID)
	require.NoError(t, err)
	assert.Equal(t, "winner.png", *stored.ProofRef)
}

func TestSubmitProof_ConcurrentOnlyOneWins(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	spin := f.addSpin(t, "alice@example.com", time.Now())

	const n = 8
	var wg sync.WaitGroup
	var wins, attached atomic.Int32
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.SubmitProof(ctx, spin.ID, "alice@example.com", bytes.NewReader(pngBytes))
			switch {
			case err == nil:
				wins.Add(1)
			case errors.Is(err, domain.ErrProofAlreadyAttached), errors.Is(err, domain.ErrInvalidClaimStatus):
				attached.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), wins.Load())
	assert.Equal(t, int32(n-1), attached.Load())
}

func TestSetStatus(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	spin := f.addSpin(t, "alice@example.com", time.Now())

	var changes []event.ClaimStatusChangedPayloadV1
	f.bus.Subscribe(event.ClaimStatusChanged, func(_ context.Context, e event.Event) error {
		changes = append(changes, e.Payload.(event.ClaimStatusChangedPayloadV1))
		return nil
	})

	got, err := f.svc.SetStatus(ctx, spin.ID, domain.ClaimStatusClaimed)
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimStatusClaimed, got.ClaimStatus)

	// same status is a no-op
	_, err = f.svc.SetStatus(ctx, spin.ID, domain.ClaimStatusClaimed)
	require.NoError(t, err)

	_, err = f.svc.SetStatus(ctx, spin.ID, domain.ClaimStatusDelivered)
	require.NoError(t, err)

	_, err = f.svc.SetStatus(ctx, spin.ID, domain.ClaimStatusPending)
	assert.ErrorIs(t, err, domain.ErrInvalidClaimStatus, "delivered is final")

	_, err = f.svc.SetStatus(ctx, spin.ID, domain.ClaimStatus("lost"))
	assert.ErrorIs(t, err, domain.ErrInvalidClaimStatus)

	_, err = f.svc.SetStatus(ctx, uuid.New(), domain.ClaimStatusDelivered)
	assert.ErrorIs(t, err, domain.ErrSpinNotFound)

	require.Len(t, changes, 2)
	assert.Equal(t, domain.ClaimStatusPending, changes[0].From)
	assert.Equal(t, domain.ClaimStatusClaimed, changes[0].To)
	assert.Equal(t, domain.ClaimStatusDelivered, changes[1].To)
}

func TestSetStatus_RejectedProofReopensClaim(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	spin := f.addSpin(t, "alice@example.com", time.Now())

	first, err := f.svc.SubmitProof(ctx, spin.ID, "alice@example.com", bytes.NewReader(pngBytes))
	require.NoError(t, err)
	rejectedRef := *first.ProofRef

	got, err := f.svc.SetStatus(ctx, spin.ID, domain.ClaimStatusPending)
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimStatusPending, got.ClaimStatus)
	assert.Nil(t, got.ProofRef)

	_, _, err = f.proofs.Open(ctx, rejectedRef)
	assert.ErrorIs(t, err, storage.ErrProofNotFound)

	pending, err := f.svc.ListPending(ctx, "alice@example.com")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, spin.ID, pending[0].ID)

	second, err := f.svc.SubmitProof(ctx, spin.ID, "alice@example.com", bytes.NewReader(pngBytes))
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimStatusClaimed, second.ClaimStatus)
	assert.NotEqual(t, rejectedRef, *second.ProofRef)
}

func TestRecentWinners(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	for i, key := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		f.addSpin(t, key, base.Add(time.Duration(i)*time.Minute))
	}

	winners, err := f.svc.RecentWinners(ctx, "lucky", 2)
	require.NoError(t, err)
	require.Len(t, winners, 2)
	assert.Equal(t, "c@x.com", winners[0].ParticipantKey)
	assert.Equal(t, "b@x.com", winners[1].ParticipantKey)

	all, err := f.svc.RecentWinners(ctx, "LUCKY", 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	_, err = f.svc.RecentWinners(ctx, "", 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestOpenProof_NoProof(t *testing.T) {
	f := newFixture(t)
	spin := f.addSpin(t, "alice@example.com", time.Now())

	_, _, err := f.svc.OpenProof(context.Background(), spin.ID)
	assert.ErrorIs(t, err, storage.ErrProofNotFound)
}
