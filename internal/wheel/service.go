// Package wheel manages wheel definitions: host upserts, the pause switch and
// cached reads for participants.
package wheel

import (
	"context"
	"fmt"
	"time"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/logger"
	"github.com/osse101/LuckyWheel_Go/internal/prizepool"
	"github.com/osse101/LuckyWheel_Go/internal/repository"
)

// Service defines the interface for wheel operations
type Service interface {
	Get(ctx context.Context, code string) (*domain.Wheel, error)
	Upsert(ctx context.Context, w *domain.Wheel) (*domain.Wheel, error)
	SetPaused(ctx context.Context, code string, paused bool) (*domain.Wheel, error)
	// Invalidate drops a cached wheel, e.g. after a draw changed its stock.
	Invalidate(code string)
}

type service struct {
	repo  repository.Wheel
	cache *wheelCache
}

// NewService creates a new wheel service
func NewService(repo repository.Wheel, cacheSize int, cacheTTL time.Duration) Service {
	if cacheSize <= 0 {
		cacheSize = DefaultCacheSize
	}
	return &service{
		repo:  repo,
		cache: newWheelCache(cacheSize, cacheTTL),
	}
}

func (s *service) Get(ctx context.Context, code string) (*domain.Wheel, error) {
	code = domain.NormalizeWheelCode(code)
	if code == "" {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyCode)
	}
	if w, ok := s.cache.Get(code); ok {
		return w, nil
	}
	w, err := s.repo.GetWheel(ctx, code)
	if err != nil {
		return nil, err
	}
	s.cache.Set(code, w)
	return w, nil
}

// Upsert validates the definition and replaces the stored wheel.
func (s *service) Upsert(ctx context.Context, w *domain.Wheel) (*domain.Wheel, error) {
	if err := Validate(w); err != nil {
		return nil, err
	}
	w = w.Clone()
	w.Code = domain.NormalizeWheelCode(w.Code)

	if err := s.repo.UpsertWheel(ctx, w); err != nil {
		return nil, err
	}
	s.cache.Invalidate(w.Code)

	logger.FromContext(ctx).Info(LogMsgWheelUpserted, "code", w.Code, "prizes", len(w.Prizes))
	return w, nil
}

func (s *service) SetPaused(ctx context.Context, code string, paused bool) (*domain.Wheel, error) {
	code = domain.NormalizeWheelCode(code)
	if err := s.repo.SetPaused(ctx, code, paused); err != nil {
		return nil, err
	}
	s.cache.Invalidate(code)

	logger.FromContext(ctx).Info(LogMsgWheelPaused, "code", code, "paused", paused)
	return s.Get(ctx, code)
}

func (s *service) Invalidate(code string) {
	s.cache.Invalidate(domain.NormalizeWheelCode(code))
}

// Validate checks a definition before it is stored: a code, a usable prize
// pool and an ordered window.
func Validate(w *domain.Wheel) error {
	if w == nil || domain.NormalizeWheelCode(w.Code) == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgEmptyCode)
	}
	if _, err := prizepool.New(w.Prizes); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if w.StartTime != nil && w.EndTime != nil && w.EndTime.Before(*w.StartTime) {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgWindowOrder)
	}
	return nil
}
