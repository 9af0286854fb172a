package gating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
)

func TestCanDraw(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	tests := []struct {
		name    string
		wheel   *domain.Wheel
		wantErr error
	}{
		{"open wheel", &domain.Wheel{}, nil},
		{"nil wheel", nil, domain.ErrWheelNotFound},
		{"paused", &domain.Wheel{Paused: true}, domain.ErrWheelPaused},
		{"paused wins over window", &domain.Wheel{Paused: true, StartTime: &after}, domain.ErrWheelPaused},
		{"not started", &domain.Wheel{StartTime: &after}, domain.ErrWheelNotStarted},
		{"ended", &domain.Wheel{EndTime: &before}, domain.ErrWheelEnded},
		{"start bound inclusive", &domain.Wheel{StartTime: &now}, nil},
		{"end bound inclusive", &domain.Wheel{EndTime: &now}, nil},
		{"inside window", &domain.Wheel{StartTime: &before, EndTime: &after}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := CanDraw(tt.wheel, now)
			if tt.wantErr == nil {
				assert.True(t, d.Eligible)
				assert.NoError(t, d.Err())
				return
			}
			assert.False(t, d.Eligible)
			assert.ErrorIs(t, d.Err(), tt.wantErr)
		})
	}
}

func TestCanDraw_WindowErrorsAreOutsideWindow(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)

	d := CanDraw(&domain.Wheel{EndTime: &past}, now)

	assert.ErrorIs(t, d.Err(), domain.ErrOutsideWindow)
	assert.Equal(t, domain.Eligibility{Reason: domain.ErrCodeWheelEnded}, d.Eligibility())
}
