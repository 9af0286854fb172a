// Package draw resolves a participant's single draw on a wheel: it enforces
// the gating order, selects a prize and commits the spin together with the
// stock decrement.
package draw

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/event"
	"github.com/osse101/LuckyWheel_Go/internal/gating"
	"github.com/osse101/LuckyWheel_Go/internal/logger"
	"github.com/osse101/LuckyWheel_Go/internal/metrics"
	"github.com/osse101/LuckyWheel_Go/internal/prizepool"
	"github.com/osse101/LuckyWheel_Go/internal/repository"
	"github.com/osse101/LuckyWheel_Go/internal/telemetry"
	"github.com/osse101/LuckyWheel_Go/internal/utils"
)

// Service defines the interface for draw operations
type Service interface {
	// ResolveDraw checks, in order: wheel exists, not paused, inside the
	// window, participant has not played, some prize in stock. The first
	// failing check is returned and nothing is written.
	ResolveDraw(ctx context.Context, wheelCode string, participant domain.Participant) (*domain.DrawResult, error)

	// Eligibility runs the same checks without drawing. It is advisory.
	Eligibility(ctx context.Context, wheelCode, participantKey string) (*domain.Eligibility, error)
}

// CacheInvalidator drops cached copies of a wheel whose stock changed
type CacheInvalidator interface {
	Invalidate(code string)
}

type service struct {
	repo        repository.Draw
	bus         event.Bus
	rng         utils.RandomSource
	cache       CacheInvalidator
	maxAttempts int
	now         func() time.Time
	tracer      trace.Tracer
}

// NewService creates a new draw service. bus and cache may be nil.
func NewService(repo repository.Draw, bus event.Bus, rng utils.RandomSource, cache CacheInvalidator, maxAttempts int) Service {
	if rng == nil {
		rng = utils.DefaultRNG()
	}
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	return &service{
		repo:        repo,
		bus:         bus,
		rng:         rng,
		cache:       cache,
		maxAttempts: maxAttempts,
		now:         time.Now,
		tracer:      telemetry.Tracer(),
	}
}

func (s *service) ResolveDraw(ctx context.Context, wheelCode string, participant domain.Participant) (*domain.DrawResult, error) {
	code := domain.NormalizeWheelCode(wheelCode)
	participant.Key = domain.NormalizeParticipantKey(participant.Key)

	ctx, span := s.tracer.Start(ctx, SpanResolveDraw, trace.WithAttributes(attribute.String(AttrWheelCode, code)))
	defer span.End()
	ctx = logger.WithParticipant(ctx, participant.Key)
	log := logger.FromContext(ctx)

	start := time.Now()
	result, attempts, err := s.resolve(ctx, code, participant)
	metrics.DrawDuration.Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.Int(AttrAttempts, attempts))

	if err != nil {
		outcome := domain.ErrorCode(err)
		metrics.DrawsTotal.WithLabelValues(outcome).Inc()
		span.SetAttributes(attribute.String(AttrOutcome, outcome))
		if outcome == domain.ErrCodeInternal {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		log.Info(LogMsgDrawRejected, "wheel_code", code, "reason", outcome)
		return nil, err
	}

	metrics.DrawsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	span.SetAttributes(
		attribute.String(AttrOutcome, metrics.OutcomeSuccess),
		attribute.String(AttrPrizeID, result.Prize.ID),
	)

	if s.cache != nil {
		s.cache.Invalidate(code)
	}
	if s.bus != nil {
		if err := s.bus.Publish(ctx, event.NewSpinResolvedEvent(result)); err != nil {
			log.Warn(LogMsgEventPublishFail, "error", err)
		}
	}

	log.Info(LogMsgDrawResolved,
		"wheel_code", code,
		"spin_id", result.Spin.ID,
		"prize_id", result.Prize.ID,
		"attempts", attempts)
	return result, nil
}

// resolve runs the precondition checks once outside the transaction so that a
// rejected draw never opens one, then commits with bounded retries.
func (s *service) resolve(ctx context.Context, code string, participant domain.Participant) (*domain.DrawResult, int, error) {
	if code == "" {
		return nil, 0, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingCode)
	}
	if participant.Key == "" {
		return nil, 0, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgMissingParticipant)
	}

	w, err := s.repo.GetWheel(ctx, code)
	if err != nil {
		return nil, 0, err
	}
	if err := s.check(ctx, s.repo, w, participant.Key); err != nil {
		return nil, 0, err
	}

	for attempt := 1; ; attempt++ {
		result, err := s.commit(ctx, code, participant)
		if errors.Is(err, domain.ErrStockExhausted) && attempt < s.maxAttempts {
			metrics.DrawRetries.Inc()
			logger.FromContext(ctx).Debug(LogMsgStockRaceLost, "wheel_code", code, "attempt", attempt)
			continue
		}
		return result, attempt, err
	}
}

type spinFinder interface {
	FindSpin(ctx context.Context, code, participantKey string) (*domain.SpinRecord, error)
}

// check applies gating, then the one-spin rule, then stock.
func (s *service) check(ctx context.Context, spins spinFinder, w *domain.Wheel, participantKey string) error {
	if err := gating.CanDraw(w, s.now()).Err(); err != nil {
		return err
	}
	existing, err := spins.FindSpin(ctx, w.Code, participantKey)
	if err != nil {
		return err
	}
	if existing != nil {
		return domain.ErrAlreadyPlayed
	}
	pool, err := prizepool.FromWheel(w)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrOutOfStock, err)
	}
	if pool.OutOfStock() {
		return domain.ErrOutOfStock
	}
	return nil
}

// commit repeats the checks against the transaction's view, selects a prize
// and writes the spin and the stock decrement together.
func (s *service) commit(ctx context.Context, code string, participant domain.Participant) (*domain.DrawResult, error) {
	tx, err := s.repo.BeginDrawTx(ctx)
	if err != nil {
		return nil, err
	}
	defer repository.SafeRollback(ctx, tx)

	w, err := tx.GetWheel(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := s.check(ctx, tx, w, participant.Key); err != nil {
		return nil, err
	}

	pool, err := prizepool.FromWheel(w)
	if err != nil {
		return nil, err
	}
	prize, index, err := pool.Draw(s.rng)
	if err != nil {
		return nil, err
	}

	spin := &domain.SpinRecord{
		ID:                uuid.New(),
		WheelCode:         code,
		ParticipantKey:    participant.Key,
		ParticipantName:   participant.Name,
		ParticipantAvatar: participant.AvatarURL,
		PrizeID:           prize.ID,
		PrizeLabel:        prize.Label,
		ClaimStatus:       domain.ClaimStatusPending,
		CreatedAt:         s.now().UTC(),
	}
	if err := tx.CreateSpin(ctx, spin); err != nil {
		return nil, err
	}
	if err := tx.DecrementStock(ctx, code, prize.ID); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		if errors.Is(err, domain.ErrAlreadyPlayed) || errors.Is(err, domain.ErrStockExhausted) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgCommitFailed, err)
	}

	if !prize.Unlimited() {
		prize.Stock--
	}
	return &domain.DrawResult{
		Spin:       *spin,
		Prize:      prize,
		SliceIndex: index,
		SliceCount: pool.Len(),
	}, nil
}

func (s *service) Eligibility(ctx context.Context, wheelCode, participantKey string) (*domain.Eligibility, error) {
	code := domain.NormalizeWheelCode(wheelCode)
	key := domain.NormalizeParticipantKey(participantKey)
	if code == "" || key == "" {
		return nil, domain.ErrInvalidInput
	}

	w, err := s.repo.GetWheel(ctx, code)
	if err != nil {
		return nil, err
	}
	if err := s.check(ctx, s.repo, w, key); err != nil {
		if domain.ErrorCode(err) == domain.ErrCodeInternal {
			return nil, err
		}
		return &domain.Eligibility{Reason: domain.ErrorCode(err)}, nil
	}
	return &domain.Eligibility{Eligible: true}, nil
}
