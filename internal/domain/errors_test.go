package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"paused", ErrWheelPaused, ErrCodeWheelPaused},
		{"not started is more specific than outside window", ErrWheelNotStarted, ErrCodeWheelNotStarted},
		{"ended", ErrWheelEnded, ErrCodeWheelEnded},
		{"bare outside window", ErrOutsideWindow, ErrCodeOutsideWindow},
		{"wrapped already played", fmt.Errorf("draw: %w", ErrAlreadyPlayed), ErrCodeAlreadyPlayed},
		{"unknown", errors.New("boom"), ErrCodeInternal},
		{"nil", nil, ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorCode(tt.err))
		})
	}
}

func TestErrorFromCode(t *testing.T) {
	assert.ErrorIs(t, ErrorFromCode(ErrCodeOutOfStock), ErrOutOfStock)
	assert.ErrorIs(t, ErrorFromCode(ErrCodeWheelEnded), ErrOutsideWindow, "narrow window errors still match the parent")
	assert.Nil(t, ErrorFromCode("nope"))
}

func TestClaimStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, ClaimStatusPending.CanTransitionTo(ClaimStatusClaimed))
	assert.True(t, ClaimStatusPending.CanTransitionTo(ClaimStatusDelivered))
	assert.True(t, ClaimStatusClaimed.CanTransitionTo(ClaimStatusDelivered))
	assert.True(t, ClaimStatusClaimed.CanTransitionTo(ClaimStatusPending))
	assert.False(t, ClaimStatusDelivered.CanTransitionTo(ClaimStatusPending))
	assert.False(t, ClaimStatusPending.CanTransitionTo(ClaimStatusPending))
	assert.False(t, ClaimStatus("lost").Valid())
}

func TestWheel_Clone(t *testing.T) {
	w := &Wheel{Code: "ABC", Prizes: []Prize{{ID: "a", Stock: 1}}}
	c := w.Clone()
	c.Prizes[0].Stock = 0

	assert.Equal(t, 1, w.Prizes[0].Stock)
	assert.Nil(t, (*Wheel)(nil).Clone())
}
