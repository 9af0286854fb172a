package rotation

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/LuckyWheel_Go/internal/utils"
)

const epsilon = 1e-6

func newTestPlanner(t *testing.T) *Planner {
	t.Helper()
	p, err := NewPlanner(Config{})
	require.NoError(t, err)
	return p
}

func TestNewPlanner_RejectsTooFewTurns(t *testing.T) {
	_, err := NewPlanner(Config{OptimisticTurns: 4})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewPlanner(Config{ReconcileTurns: 2})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewPlanner(Config{OptimisticTurns: 5, ReconcileTurns: 3})
	assert.NoError(t, err)
}

func TestPlanner_PointerAngle(t *testing.T) {
	assert.Equal(t, DefaultPointerAngle, newTestPlanner(t).PointerAngle())

	zero := 0.0
	p, err := NewPlanner(Config{PointerAngle: &zero})
	require.NoError(t, err)
	assert.Zero(t, p.PointerAngle(), "a pointer at 3 o'clock is a valid setting")

	_, err = p.Start(4, &utils.FixedRNG{Values: []float64{0.3}})
	require.NoError(t, err)
	final, err := p.Reconcile(2, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, SliceUnderPointer(final.To, 0, 4))
	assert.InDelta(t, LandingRemainder(0, 2, 4), Normalize(final.To), epsilon)

	wrapped := -90.0
	p, err = NewPlanner(Config{PointerAngle: &wrapped})
	require.NoError(t, err)
	assert.Equal(t, 270.0, p.PointerAngle())
}

func TestPlanner_Start(t *testing.T) {
	p := newTestPlanner(t)

	plan, err := p.Start(8, &utils.FixedRNG{Values: []float64{0.5}})
	require.NoError(t, err)

	assert.Equal(t, 0.0, plan.From)
	assert.InDelta(t, float64(DefaultOptimisticTurns)*360+180, plan.To, epsilon)
	assert.Equal(t, DefaultOptimisticDuration, plan.Duration)
	assert.Equal(t, PhaseOptimistic, p.Phase())

	_, err = p.Start(8, utils.DefaultRNG())
	assert.ErrorIs(t, err, ErrPlanInFlight, "a second spin cannot start while one is in flight")
}

func TestPlanner_Reconcile_LandsOnSlice(t *testing.T) {
	rng := utils.NewSeededRNG(1)

	for n := 1; n <= 12; n++ {
		for i := 0; i < n; i++ {
			p := newTestPlanner(t)
			optimistic, err := p.Start(n, rng)
			require.NoError(t, err)

			final, err := p.Reconcile(i, n, 0)
			require.NoError(t, err)

			assert.Greater(t, final.To, optimistic.To, "n=%d i=%d: final must be past target0", n, i)
			assert.InDelta(t, LandingRemainder(DefaultPointerAngle, i, n), Normalize(final.To), epsilon)
			assert.Equal(t, i, SliceUnderPointer(final.To, DefaultPointerAngle, n), "n=%d i=%d", n, i)
			assert.GreaterOrEqual(t, final.To-optimistic.To, float64(MinReconcileTurns-1)*360)
		}
	}
}

func TestPlanner_Reconcile_ContinuesFromElapsed(t *testing.T) {
	p := newTestPlanner(t)
	optimistic, err := p.Start(4, &utils.FixedRNG{Values: []float64{0}})
	require.NoError(t, err)

	elapsed := optimistic.Duration / 2
	final, err := p.Reconcile(1, 4, elapsed)
	require.NoError(t, err)

	assert.InDelta(t, optimistic.At(elapsed), final.From, epsilon)
	assert.Equal(t, PhaseReconciled, p.Phase())

	rest := p.Finish()
	assert.InDelta(t, final.To, rest, epsilon)
	assert.Equal(t, PhaseIdle, p.Phase())
}

func TestPlanner_Reconcile_Errors(t *testing.T) {
	p := newTestPlanner(t)

	_, err := p.Reconcile(0, 4, 0)
	assert.ErrorIs(t, err, ErrNoPlanInFlight)

	_, err = p.Start(4, utils.DefaultRNG())
	require.NoError(t, err)

	_, err = p.Reconcile(0, 5, 0)
	assert.ErrorIs(t, err, ErrSliceCountChanged)

	_, err = p.Reconcile(4, 4, 0)
	assert.ErrorIs(t, err, ErrSliceIndexOutRange)
}

func TestPlanner_Cancel_ResetsBaseline(t *testing.T) {
	p := newTestPlanner(t)
	plan, err := p.Start(6, &utils.FixedRNG{Values: []float64{0.25}})
	require.NoError(t, err)

	rest := p.Cancel()

	assert.InDelta(t, math.Mod(plan.To, 360), rest, epsilon)
	assert.Less(t, rest, 360.0)
	assert.Equal(t, PhaseIdle, p.Phase())

	again, err := p.Start(6, utils.DefaultRNG())
	require.NoError(t, err, "retry is allowed after cancel")
	assert.InDelta(t, rest, again.From, epsilon)
}

func TestEaseOutCubic(t *testing.T) {
	assert.Equal(t, 0.0, EaseOutCubic(-1))
	assert.Equal(t, 1.0, EaseOutCubic(2))
	assert.InDelta(t, 0.875, EaseOutCubic(0.5), epsilon)

	prev := 0.0
	for i := 1; i <= 100; i++ {
		v := EaseOutCubic(float64(i) / 100)
		assert.GreaterOrEqual(t, v, prev)
		prev = v
	}
}

func TestPlan_At(t *testing.T) {
	plan := Plan{From: 10, To: 110, Duration: time.Second}

	assert.Equal(t, 10.0, plan.At(0))
	assert.InDelta(t, 97.5, plan.At(500*time.Millisecond), epsilon)
	assert.Equal(t, 110.0, plan.At(2*time.Second))
	assert.Equal(t, 5.0, Plan{From: 0, To: 5}.At(0), "zero duration jumps to the end")
}

func TestNormalize(t *testing.T) {
	assert.InDelta(t, 350.0, Normalize(-10), epsilon)
	assert.InDelta(t, 0.0, Normalize(720), epsilon)
	assert.InDelta(t, 45.0, Normalize(405), epsilon)
}
