// Package memstore is an in-process implementation of repository.Draw used by
// the player demo, local development and service tests. Draw transactions are
// serialised and their writes are applied on Commit.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/repository"
)

type spinKey struct {
	code, participant string
}

// Store holds wheels and spins in memory.
type Store struct {
	mu            sync.RWMutex
	wheels        map[string]*domain.Wheel
	spins         map[uuid.UUID]*domain.SpinRecord
	byParticipant map[spinKey]uuid.UUID

	txSem chan struct{}
	now   func() time.Time
}

// New returns an empty store.
func New() *Store {
	return &Store{
		wheels:        make(map[string]*domain.Wheel),
		spins:         make(map[uuid.UUID]*domain.SpinRecord),
		byParticipant: make(map[spinKey]uuid.UUID),
		txSem:         make(chan struct{}, 1),
		now:           time.Now,
	}
}

var _ repository.Draw = (*Store)(nil)

// Ping always succeeds; it lets the store stand in for the database pool in
// readiness checks.
func (s *Store) Ping(context.Context) error {
	return nil
}

func (s *Store) GetWheel(_ context.Context, code string) (*domain.Wheel, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wheels[code]
	if !ok {
		return nil, domain.ErrWheelNotFound
	}
	return w.Clone(), nil
}

func (s *Store) UpsertWheel(_ context.Context, wheel *domain.Wheel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	wheel.UpdatedAt = s.now().UTC()
	s.wheels[wheel.Code] = wheel.Clone()
	return nil
}

func (s *Store) SetPaused(_ context.Context, code string, paused bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	w, ok := s.wheels[code]
	if !ok {
		return domain.ErrWheelNotFound
	}
	w.Paused = paused
	w.UpdatedAt = s.now().UTC()
	return nil
}

func (s *Store) FindSpin(_ context.Context, code, participantKey string) (*domain.SpinRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.findSpinLocked(code, participantKey), nil
}

func (s *Store) findSpinLocked(code, participantKey string) *domain.SpinRecord {
	id, ok := s.byParticipant[spinKey{code, participantKey}]
	if !ok {
		return nil
	}
	return cloneSpin(s.spins[id])
}

func (s *Store) GetSpin(_ context.Context, id uuid.UUID) (*domain.SpinRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	spin, ok := s.spins[id]
	if !ok {
		return nil, domain.ErrSpinNotFound
	}
	return cloneSpin(spin), nil
}

func (s *Store) ListPendingSpins(_ context.Context, participantKey string) ([]domain.SpinRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SpinRecord, 0)
	for _, spin := range s.spins {
		if spin.ParticipantKey == participantKey && spin.AwaitingProof() {
			out = append(out, *cloneSpin(spin))
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (s *Store) AttachProof(_ context.Context, id uuid.UUID, proofRef string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	spin, ok := s.spins[id]
	if !ok {
		return domain.ErrSpinNotFound
	}
	if spin.ProofRef != nil {
		return domain.ErrProofAlreadyAttached
	}
	if spin.ClaimStatus != domain.ClaimStatusPending {
		return domain.ErrInvalidClaimStatus
	}
	ref := proofRef
	spin.ProofRef = &ref
	spin.ClaimStatus = domain.ClaimStatusClaimed
	return nil
}

func (s *Store) SetClaimStatusIfMatches(_ context.Context, id uuid.UUID, expected, next domain.ClaimStatus) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	spin, ok := s.spins[id]
	if !ok || spin.ClaimStatus != expected {
		return 0, nil
	}
	spin.ClaimStatus = next
	return 1, nil
}

func (s *Store) ReopenClaim(_ context.Context, id uuid.UUID, proofRef string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	spin, ok := s.spins[id]
	if !ok || spin.ClaimStatus != domain.ClaimStatusClaimed || spin.ProofRef == nil || *spin.ProofRef != proofRef {
		return 0, nil
	}
	spin.ClaimStatus = domain.ClaimStatusPending
	spin.ProofRef = nil
	return 1, nil
}

func (s *Store) ListRecentWinners(_ context.Context, code string, limit int) ([]domain.SpinRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.SpinRecord, 0)
	for _, spin := range s.spins {
		if spin.WheelCode == code {
			out = append(out, *cloneSpin(spin))
		}
	}
	sortNewestFirst(out)
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// BeginDrawTx blocks until no other draw transaction is open or ctx is done.
func (s *Store) BeginDrawTx(ctx context.Context) (repository.DrawTx, error) {
	select {
	case s.txSem <- struct{}{}:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return &drawTx{store: s}, nil
}

func sortNewestFirst(spins []domain.SpinRecord) {
	sort.Slice(spins, func(i, j int) bool {
		return spins[i].CreatedAt.After(spins[j].CreatedAt)
	})
}

func cloneSpin(s *domain.SpinRecord) *domain.SpinRecord {
	if s == nil {
		return nil
	}
	c := *s
	if s.ProofRef != nil {
		ref := *s.ProofRef
		c.ProofRef = &ref
	}
	return &c
}
