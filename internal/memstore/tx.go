package memstore

import (
	"context"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/repository"
)

type stockTake struct {
	code, prizeID string
}

// drawTx stages writes and applies them under the store lock on Commit.
type drawTx struct {
	store  *Store
	spins  []*domain.SpinRecord
	takes  []stockTake
	closed bool
}

func (t *drawTx) GetWheel(ctx context.Context, code string) (*domain.Wheel, error) {
	if t.closed {
		return nil, repository.ErrTxClosed
	}
	w, err := t.store.GetWheel(ctx, code)
	if err != nil {
		return nil, err
	}
	for _, take := range t.takes {
		if take.code != code {
			continue
		}
		for i := range w.Prizes {
			if w.Prizes[i].ID == take.prizeID && w.Prizes[i].Stock > 0 {
				w.Prizes[i].Stock--
			}
		}
	}
	return w, nil
}

func (t *drawTx) FindSpin(ctx context.Context, code, participantKey string) (*domain.SpinRecord, error) {
	if t.closed {
		return nil, repository.ErrTxClosed
	}
	for _, s := range t.spins {
		if s.WheelCode == code && s.ParticipantKey == participantKey {
			return cloneSpin(s), nil
		}
	}
	return t.store.FindSpin(ctx, code, participantKey)
}

func (t *drawTx) CreateSpin(ctx context.Context, spin *domain.SpinRecord) error {
	existing, err := t.FindSpin(ctx, spin.WheelCode, spin.ParticipantKey)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrAlreadyPlayed
	}
	t.spins = append(t.spins, cloneSpin(spin))
	return nil
}

func (t *drawTx) DecrementStock(ctx context.Context, code, prizeID string) error {
	w, err := t.GetWheel(ctx, code)
	if err != nil {
		return err
	}
	p, ok := w.PrizeByID(prizeID)
	if !ok || p.Stock == 0 {
		return domain.ErrStockExhausted
	}
	if !p.Unlimited() {
		t.takes = append(t.takes, stockTake{code: code, prizeID: prizeID})
	}
	return nil
}

// Commit re-checks every staged write against the live state, so a wheel
// reconfigured while the transaction was open cannot be overdrawn.
func (t *drawTx) Commit(_ context.Context) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	defer t.release()

	s := t.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, spin := range t.spins {
		if _, ok := s.byParticipant[spinKey{spin.WheelCode, spin.ParticipantKey}]; ok {
			return domain.ErrAlreadyPlayed
		}
	}
	need := make(map[stockTake]int, len(t.takes))
	for _, take := range t.takes {
		need[take]++
	}
	for take, n := range need {
		w, ok := s.wheels[take.code]
		if !ok {
			return domain.ErrWheelNotFound
		}
		p, ok := w.PrizeByID(take.prizeID)
		if !ok || (!p.Unlimited() && p.Stock < n) {
			return domain.ErrStockExhausted
		}
	}

	for take, n := range need {
		w := s.wheels[take.code]
		for i := range w.Prizes {
			if w.Prizes[i].ID == take.prizeID && !w.Prizes[i].Unlimited() {
				w.Prizes[i].Stock -= n
			}
		}
	}
	for _, spin := range t.spins {
		s.spins[spin.ID] = spin
		s.byParticipant[spinKey{spin.WheelCode, spin.ParticipantKey}] = spin.ID
	}
	return nil
}

func (t *drawTx) Rollback(_ context.Context) error {
	if t.closed {
		return repository.ErrTxClosed
	}
	t.release()
	return nil
}

func (t *drawTx) release() {
	t.closed = true
	t.spins = nil
	t.takes = nil
	<-t.store.txSem
}
