package wheel

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
)

type MockRepo struct {
	mock.Mock
}

func (m *MockRepo) GetWheel(ctx context.Context, code string) (*domain.Wheel, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Wheel), args.Error(1)
}

func (m *MockRepo) UpsertWheel(ctx context.Context, w *domain.Wheel) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockRepo) SetPaused(ctx context.Context, code string, paused bool) error {
	args := m.Called(ctx, code, paused)
	return args.Error(0)
}

func sampleWheel() *domain.Wheel {
	return &domain.Wheel{
		Code: "abc",
		Prizes: []domain.Prize{
			{ID: "50k", Label: "50,000", Weight: 0.4, Stock: 10},
			{ID: "100k", Label: "100,000", Weight: 0.6, Stock: domain.UnlimitedStock},
		},
	}
}

func TestGet_UsesCache(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo, 8, time.Minute)
	ctx := context.Background()

	stored := sampleWheel()
	stored.Code = "ABC"
	repo.On("GetWheel", ctx, "ABC").Return(stored, nil).Once()

	w1, err := svc.Get(ctx, " abc ")
	require.NoError(t, err)
	w2, err := svc.Get(ctx, "ABC")
	require.NoError(t, err)

	assert.Equal(t, w1, w2)
	w1.Prizes[0].Stock = 0
	w3, _ := svc.Get(ctx, "ABC")
	assert.Equal(t, 10, w3.Prizes[0].Stock, "cached wheel is handed out as a copy")
	repo.AssertExpectations(t)
}

func TestGet_NotFoundIsNotCached(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo, 8, time.Minute)
	ctx := context.Background()

	repo.On("GetWheel", ctx, "NOPE").Return(nil, domain.ErrWheelNotFound).Twice()

	_, err := svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrWheelNotFound)
	_, err = svc.Get(ctx, "nope")
	assert.ErrorIs(t, err, domain.ErrWheelNotFound)
	repo.AssertExpectations(t)
}

func TestUpsert_NormalizesAndInvalidates(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo, 8, time.Minute)
	ctx := context.Background()

	old := sampleWheel()
	old.Code = "ABC"
	repo.On("GetWheel", ctx, "ABC").Return(old, nil).Once()
	_, err := svc.Get(ctx, "ABC")
	require.NoError(t, err)

	repo.On("UpsertWheel", ctx, mock.MatchedBy(func(w *domain.Wheel) bool {
		return w.Code == "ABC"
	})).Return(nil).Once()

	stored, err := svc.Upsert(ctx, sampleWheel())
	require.NoError(t, err)
	assert.Equal(t, "ABC", stored.Code)

	updated := sampleWheel()
	updated.Code = "ABC"
	updated.Title = "new"
	repo.On("GetWheel", ctx, "ABC").Return(updated, nil).Once()
	got, err := svc.Get(ctx, "ABC")
	require.NoError(t, err)
	assert.Equal(t, "new", got.Title)
	repo.AssertExpectations(t)
}

func TestValidate(t *testing.T) {
	start := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	end := start.Add(-time.Hour)

	tests := []struct {
		name   string
		mutate func(w *domain.Wheel)
		ok     bool
	}{
		{"valid", func(*domain.Wheel) {}, true},
		{"missing code", func(w *domain.Wheel) { w.Code = " " }, false},
		{"empty pool", func(w *domain.Wheel) { w.Prizes = nil }, false},
		{"duplicate prize", func(w *domain.Wheel) { w.Prizes[1].ID = w.Prizes[0].ID }, false},
		{"negative weight", func(w *domain.Wheel) { w.Prizes[0].Weight = -1 }, false},
		{"stock below unlimited", func(w *domain.Wheel) { w.Prizes[0].Stock = -2 }, false},
		{"window reversed", func(w *domain.Wheel) { w.StartTime, w.EndTime = &start, &end }, false},
		{"open window", func(w *domain.Wheel) { w.StartTime = &start }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := sampleWheel()
			tt.mutate(w)
			err := Validate(w)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
			}
		})
	}
}

func TestSetPaused(t *testing.T) {
	repo := new(MockRepo)
	svc := NewService(repo, 8, time.Minute)
	ctx := context.Background()

	paused := sampleWheel()
	paused.Code = "ABC"
	paused.Paused = true
	repo.On("SetPaused", ctx, "ABC", true).Return(nil).Once()
	repo.On("GetWheel", ctx, "ABC").Return(paused, nil).Once()

	w, err := svc.SetPaused(ctx, "abc", true)
	require.NoError(t, err)
	assert.True(t, w.Paused)

	repo.On("SetPaused", ctx, "GONE", true).Return(domain.ErrWheelNotFound).Once()
	_, err = svc.SetPaused(ctx, "gone", true)
	assert.ErrorIs(t, err, domain.ErrWheelNotFound)
	repo.AssertExpectations(t)
}
