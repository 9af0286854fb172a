package event

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
)

func TestMemoryBus_DeliversToEverySubscriber(t *testing.T) {
	bus := NewMemoryBus()
	var got []string
	for _, name := range []string{"sse", "metrics"} {
		bus.Subscribe(ProofSubmitted, func(_ context.Context, e Event) error {
			got = append(got, name+":"+e.WheelCode())
			return nil
		})
	}
	bus.Subscribe(SpinResolved, func(context.Context, Event) error {
		t.Fatal("wrong type delivered")
		return nil
	})

	spin := &domain.SpinRecord{ID: uuid.New(), WheelCode: "TET"}
	require.NoError(t, bus.Publish(context.Background(), NewProofSubmittedEvent(spin)))
	assert.Equal(t, []string{"sse:TET", "metrics:TET"}, got)
}

func TestMemoryBus_NoSubscribers(t *testing.T) {
	assert.NoError(t, NewMemoryBus().Publish(context.Background(), Event{Type: SpinResolved}))
}

func TestMemoryBus_JoinsHandlerErrors(t *testing.T) {
	bus := NewMemoryBus()
	errA := errors.New("discord down")
	errB := errors.New("disk full")
	calls := 0
	for _, err := range []error{errA, nil, errB} {
		bus.Subscribe(SpinResolved, func(context.Context, Event) error {
			calls++
			return err
		})
	}

	err := bus.Publish(context.Background(), Event{Type: SpinResolved})
	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.ErrorIs(t, err, errA)
	assert.ErrorIs(t, err, errB)
	assert.Contains(t, err.Error(), "2 handler(s) failed")
}

func TestSubscribeAll(t *testing.T) {
	bus := NewMemoryBus()
	var seen []Type
	SubscribeAll(bus, func(_ context.Context, e Event) error {
		seen = append(seen, e.Type)
		return nil
	}, SpinResolved, ClaimStatusChanged)

	for _, typ := range []Type{SpinResolved, ProofSubmitted, ClaimStatusChanged} {
		require.NoError(t, bus.Publish(context.Background(), Event{Type: typ}))
	}
	assert.Equal(t, []Type{SpinResolved, ClaimStatusChanged}, seen)
}

func TestSpinResolvedEvent_CarriesWheelCode(t *testing.T) {
	result := &domain.DrawResult{
		Spin: domain.SpinRecord{
			ID:             uuid.New(),
			WheelCode:      "ABC",
			ParticipantKey: "a@example.com",
			CreatedAt:      time.Unix(1700000000, 0),
		},
		Prize:      domain.Prize{ID: "50k", Label: "50,000"},
		SliceIndex: 2,
	}

	e := NewSpinResolvedEvent(result)
	assert.Equal(t, SpinResolved, e.Type)
	assert.Equal(t, EventSchemaVersion, e.Version)
	assert.Equal(t, "ABC", e.WheelCode())

	payload, err := DecodePayload[SpinResolvedPayloadV1](e.Payload)
	require.NoError(t, err)
	assert.Equal(t, "50k", payload.PrizeID)
	assert.Equal(t, 2, payload.SliceIndex)
	assert.Equal(t, int64(1700000000), payload.Timestamp)
}

func TestProofSubmittedEvent_WithoutRef(t *testing.T) {
	e := NewProofSubmittedEvent(&domain.SpinRecord{ID: uuid.New(), WheelCode: "ABC"})
	payload, err := DecodePayload[ProofSubmittedPayloadV1](e.Payload)
	require.NoError(t, err)
	assert.Empty(t, payload.ProofRef)
}

func TestDecodePayload_FromJSONMap(t *testing.T) {
	raw := map[string]interface{}{"spin_id": "x", "from": "pending", "to": "claimed"}
	payload, err := DecodePayload[ClaimStatusChangedPayloadV1](raw)
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimStatusClaimed, payload.To)
}

func TestEvent_WheelCodeWithoutMetadata(t *testing.T) {
	assert.Equal(t, "", Event{Type: SpinResolved}.WheelCode())
}
