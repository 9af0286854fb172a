// Package claim handles what happens after a win: pending-claim listing,
// proof submission and the host's claim status updates.
package claim

import (
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/event"
	"github.com/osse101/LuckyWheel_Go/internal/logger"
	"github.com/osse101/LuckyWheel_Go/internal/metrics"
	"github.com/osse101/LuckyWheel_Go/internal/repository"
	"github.com/osse101/LuckyWheel_Go/internal/storage"
)

// Service defines the interface for claim operations
type Service interface {
	// ListPending returns the participant's spins still awaiting proof.
	ListPending(ctx context.Context, participantKey string) ([]domain.SpinRecord, error)
	// SubmitProof stores the proof and attaches it, moving the spin to claimed.
	SubmitProof(ctx context.Context, spinID uuid.UUID, participantKey string, proof io.Reader) (*domain.SpinRecord, error)
	// SetStatus is the host's status update.
	SetStatus(ctx context.Context, spinID uuid.UUID, next domain.ClaimStatus) (*domain.SpinRecord, error)
	RecentWinners(ctx context.Context, wheelCode string, limit int) ([]domain.SpinRecord, error)
	OpenProof(ctx context.Context, spinID uuid.UUID) (io.ReadCloser, string, error)
}

type service struct {
	repo         repository.Spin
	proofs       storage.ProofStore
	bus          event.Bus
	defaultLimit int
}

// NewService creates a new claim service. bus may be nil.
func NewService(repo repository.Spin, proofs storage.ProofStore, bus event.Bus, defaultLimit int) Service {
	if defaultLimit <= 0 {
		defaultLimit = DefaultRecentWinnersLimit
	}
	return &service{
		repo:         repo,
		proofs:       proofs,
		bus:          bus,
		defaultLimit: defaultLimit,
	}
}

func (s *service) ListPending(ctx context.Context, participantKey string) ([]domain.SpinRecord, error) {
	key := domain.NormalizeParticipantKey(participantKey)
	if key == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingParticipant)
	}
	return s.repo.ListPendingSpins(ctx, key)
}

func (s *service) SubmitProof(ctx context.Context, spinID uuid.UUID, participantKey string, proof io.Reader) (*domain.SpinRecord, error) {
	log := logger.FromContext(ctx)
	spin, err := s.submitProof(ctx, spinID, domain.NormalizeParticipantKey(participantKey), proof)
	if err != nil {
		metrics.ProofsSubmitted.WithLabelValues(metrics.OutcomeFailure).Inc()
		log.Info(LogMsgProofRejected, "spin_id", spinID, "reason", domain.ErrorCode(err))
		return nil, err
	}
	metrics.ProofsSubmitted.WithLabelValues(metrics.OutcomeSuccess).Inc()

	s.publish(ctx, event.NewProofSubmittedEvent(spin))
	log.Info(LogMsgProofAttached, "spin_id", spin.ID, "wheel_code", spin.WheelCode)
	return spin, nil
}

func (s *service) submitProof(ctx context.Context, spinID uuid.UUID, key string, proof io.Reader) (*domain.SpinRecord, error) {
	spin, err := s.repo.GetSpin(ctx, spinID)
	if err != nil {
		return nil, err
	}
	if spin.ParticipantKey != key {
		return nil, domain.ErrUnauthorized
	}
	if spin.ProofRef != nil {
		return nil, domain.ErrProofAlreadyAttached
	}
	if spin.ClaimStatus != domain.ClaimStatusPending {
		return nil, domain.ErrInvalidClaimStatus
	}

	ref, err := s.proofs.Save(ctx, spinID, proof)
	if err != nil {
		return nil, err
	}
	if err := s.repo.AttachProof(ctx, spinID, ref); err != nil {
		// a concurrent submission won; do not leave an orphaned file
		if delErr := s.proofs.Delete(ctx, ref); delErr != nil {
			logger.FromContext(ctx).Warn(LogMsgOrphanedProof, "ref", ref, "error", delErr)
		}
		return nil, err
	}

	spin.ProofRef = &ref
	spin.ClaimStatus = domain.ClaimStatusClaimed
	return spin, nil
}

func (s *service) SetStatus(ctx context.Context, spinID uuid.UUID, next domain.ClaimStatus) (*domain.SpinRecord, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidClaimStatus, next)
	}

	spin, err := s.repo.GetSpin(ctx, spinID)
	if err != nil {
		return nil, err
	}
	current := spin.ClaimStatus
	if current == next {
		return spin, nil
	}
	if !current.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s to %s", domain.ErrInvalidClaimStatus, current, next)
	}

	var n int64
	reopened := next == domain.ClaimStatusPending && spin.ProofRef != nil
	if reopened {
		n, err = s.repo.ReopenClaim(ctx, spinID, *spin.ProofRef)
	} else {
		n, err = s.repo.SetClaimStatusIfMatches(ctx, spinID, current, next)
	}
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// someone else moved it first
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidClaimStatus, ErrMsgConcurrentUpdate)
	}

	// a rejected proof is discarded so the participant can submit again
	if reopened {
		if delErr := s.proofs.Delete(ctx, *spin.ProofRef); delErr != nil {
			logger.FromContext(ctx).Warn(LogMsgOrphanedProof, "ref", *spin.ProofRef, "error", delErr)
		}
		spin.ProofRef = nil
	}
	spin.ClaimStatus = next
	s.publish(ctx, event.NewClaimStatusChangedEvent(spin, current, next))
	logger.FromContext(ctx).Info(LogMsgStatusChanged, "spin_id", spinID, "from", current, "to", next)
	return spin, nil
}

func (s *service) RecentWinners(ctx context.Context, wheelCode string, limit int) ([]domain.SpinRecord, error) {
	code := domain.NormalizeWheelCode(wheelCode)
	if code == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingCode)
	}
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if limit > MaxRecentWinnersLimit {
		limit = MaxRecentWinnersLimit
	}
	return s.repo.ListRecentWinners(ctx, code, limit)
}

func (s *service) OpenProof(ctx context.Context, spinID uuid.UUID) (io.ReadCloser, string, error) {
	spin, err := s.repo.GetSpin(ctx, spinID)
	if err != nil {
		return nil, "", err
	}
	if spin.ProofRef == nil {
		return nil, "", storage.ErrProofNotFound
	}
	return s.proofs.Open(ctx, *spin.ProofRef)
}

func (s *service) publish(ctx context.Context, e event.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.Publish(ctx, e); err != nil {
		logger.FromContext(ctx).Warn(LogMsgEventPublishFail, "event_type", e.Type, "error", err)
	}
}
