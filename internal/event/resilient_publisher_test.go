package event

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
)

// flakyBus fails the first failures publishes, then accepts everything
type flakyBus struct {
	mu       sync.Mutex
	failures int
	attempts int
	accepted []Event
}

var errSubscriberDown = errors.New("announcer unavailable")

func (b *flakyBus) Publish(_ context.Context, e Event) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.attempts++
	if b.failures < 0 || b.attempts <= b.failures {
		return errSubscriberDown
	}
	b.accepted = append(b.accepted, e)
	return nil
}

func (b *flakyBus) Subscribe(Type, Handler) {}

func (b *flakyBus) counts() (attempts, accepted int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.attempts, len(b.accepted)
}

func resolvedEvent(code string) Event {
	return NewSpinResolvedEvent(&domain.DrawResult{
		Spin: domain.SpinRecord{
			ID:             uuid.New(),
			WheelCode:      code,
			ParticipantKey: "alice@example.com",
			CreatedAt:      time.Now(),
		},
		Prize: domain.Prize{ID: "p1", Label: "Voucher"},
	})
}

func newPublisher(t *testing.T, bus Bus, retries int) (*ResilientPublisher, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	rp, err := NewResilientPublisher(bus, retries, 5*time.Millisecond, path)
	require.NoError(t, err)
	return rp, path
}

func readDeadLetters(t *testing.T, path string) []DeadLetterEntry {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	var entries []DeadLetterEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var e DeadLetterEntry
		require.NoError(t, json.Unmarshal(sc.Bytes(), &e))
		entries = append(entries, e)
	}
	return entries
}

func TestResilientPublisher_DeliversFirstTime(t *testing.T) {
	bus := &flakyBus{}
	rp, path := newPublisher(t, bus, 3)

	require.NoError(t, rp.Publish(context.Background(), resolvedEvent("DEMO")))
	require.NoError(t, rp.Shutdown(context.Background()))

	attempts, accepted := bus.counts()
	assert.Equal(t, 1, attempts)
	assert.Equal(t, 1, accepted)
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_RetriesUntilDelivered(t *testing.T) {
	bus := &flakyBus{failures: 2}
	rp, path := newPublisher(t, bus, 5)
	defer rp.Shutdown(context.Background())

	require.NoError(t, rp.Publish(context.Background(), resolvedEvent("DEMO")))

	assert.Eventually(t, func() bool {
		_, accepted := bus.counts()
		return accepted == 1
	}, time.Second, 5*time.Millisecond)

	attempts, _ := bus.counts()
	assert.Equal(t, 3, attempts)
	assert.Empty(t, readDeadLetters(t, path))
}

func TestResilientPublisher_ExhaustedGoesToDeadLetter(t *testing.T) {
	bus := &flakyBus{failures: -1}
	rp, path := newPublisher(t, bus, 2)

	require.NoError(t, rp.Publish(context.Background(), resolvedEvent("TET")))

	assert.Eventually(t, func() bool {
		attempts, _ := bus.counts()
		return attempts == 3
	}, time.Second, 5*time.Millisecond)
	require.NoError(t, rp.Shutdown(context.Background()))

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, DeadLetterSchemaVersion, entries[0].SchemaVersion)
	assert.Equal(t, SpinResolved, entries[0].Event.Type)
	assert.Equal(t, "TET", entries[0].WheelCode)
	assert.Equal(t, 2, entries[0].Attempts)
	assert.Equal(t, errSubscriberDown.Error(), entries[0].LastError)
}

func TestResilientPublisher_ShutdownFlushesPendingRetries(t *testing.T) {
	bus := &flakyBus{failures: -1}
	path := filepath.Join(t.TempDir(), "deadletter.jsonl")
	rp, err := NewResilientPublisher(bus, 5, time.Hour, path)
	require.NoError(t, err)

	require.NoError(t, rp.Publish(context.Background(), resolvedEvent("DEMO")))
	require.NoError(t, rp.Shutdown(context.Background()))

	entries := readDeadLetters(t, path)
	require.Len(t, entries, 1)
	assert.GreaterOrEqual(t, entries[0].Attempts, 1)
	assert.NoError(t, rp.Shutdown(context.Background()), "second shutdown is a no-op")
}

func TestResilientPublisher_ShutdownHonoursContext(t *testing.T) {
	bus := &flakyBus{}
	rp, _ := newPublisher(t, bus, 1)
	defer rp.Shutdown(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// The worker may finish before the select sees the cancelled context.
	err := rp.Shutdown(ctx)
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestResilientPublisher_SubscribeDelegates(t *testing.T) {
	inner := NewMemoryBus()
	rp, _ := newPublisher(t, inner, 1)
	defer rp.Shutdown(context.Background())

	got := make(chan string, 1)
	rp.Subscribe(SpinResolved, func(_ context.Context, e Event) error {
		got <- e.WheelCode()
		return nil
	})
	require.NoError(t, rp.Publish(context.Background(), resolvedEvent("DEMO")))
	assert.Equal(t, "DEMO", <-got)
}

func TestCalculateRetryDelay(t *testing.T) {
	base := 2 * time.Second
	assert.Equal(t, 2*time.Second, CalculateRetryDelay(base, 1))
	assert.Equal(t, 4*time.Second, CalculateRetryDelay(base, 2))
	assert.Equal(t, 32*time.Second, CalculateRetryDelay(base, 5))
}
