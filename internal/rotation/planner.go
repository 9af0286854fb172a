// Package rotation plans the wheel animation for a draw whose outcome is not
// known when the spin starts.
//
// A draw spins in two phases. Start launches an optimistic spin toward a
// random far target so the wheel moves immediately. Once the server returns
// the winning slice, Reconcile extends the spin so it comes to rest with that
// slice's centre under the pointer. Cancel puts the wheel back to a clean
// baseline when the draw fails.
package rotation

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/osse101/LuckyWheel_Go/internal/utils"
)

var (
	ErrInvalidConfig      = errors.New(ErrMsgInvalidConfig)
	ErrPlanInFlight       = errors.New(ErrMsgPlanInFlight)
	ErrNoPlanInFlight     = errors.New(ErrMsgNoPlanInFlight)
	ErrSliceCountChanged  = errors.New(ErrMsgSliceCountChanged)
	ErrSliceIndexOutRange = errors.New(ErrMsgSliceIndexOutRange)
)

// Config tunes the planner. Zero values take the defaults; a nil
// PointerAngle means DefaultPointerAngle.
type Config struct {
	PointerAngle       *float64
	OptimisticTurns    int
	ReconcileTurns     int
	OptimisticDuration time.Duration
	ReconcileDuration  time.Duration
}

func (c Config) withDefaults() Config {
	pointer := DefaultPointerAngle
	if c.PointerAngle != nil {
		pointer = Normalize(*c.PointerAngle)
	}
	c.PointerAngle = &pointer
	if c.OptimisticTurns == 0 {
		c.OptimisticTurns = DefaultOptimisticTurns
	}
	if c.ReconcileTurns == 0 {
		c.ReconcileTurns = DefaultReconcileTurns
	}
	if c.OptimisticDuration == 0 {
		c.OptimisticDuration = DefaultOptimisticDuration
	}
	if c.ReconcileDuration == 0 {
		c.ReconcileDuration = DefaultReconcileDuration
	}
	return c
}

// Phase is where the planner is in a draw.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseOptimistic
	PhaseReconciled
)

// Plan is one eased animation segment, in absolute degrees.
type Plan struct {
	From     float64
	To       float64
	Duration time.Duration
}

// At samples the animation after elapsed time, easing out cubically.
func (p Plan) At(elapsed time.Duration) float64 {
	if p.Duration <= 0 || elapsed >= p.Duration {
		return p.To
	}
	if elapsed <= 0 {
		return p.From
	}
	t := float64(elapsed) / float64(p.Duration)
	return p.From + (p.To-p.From)*EaseOutCubic(t)
}

// EaseOutCubic maps t in [0, 1] to 1-(1-t)^3.
func EaseOutCubic(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	inv := 1 - t
	return 1 - inv*inv*inv
}

// Planner keeps the rotation state of one rendered wheel. It is safe for
// concurrent use, although a session only ever drives one draw at a time.
type Planner struct {
	mu sync.Mutex

	cfg        Config
	rotation   float64
	optimistic Plan
	final      Plan
	sliceCount int
	phase      Phase
}

// NewPlanner validates cfg and returns a planner at rotation 0.
func NewPlanner(cfg Config) (*Planner, error) {
	cfg = cfg.withDefaults()
	if cfg.OptimisticTurns < MinOptimisticTurns {
		return nil, fmt.Errorf("%w: optimistic turns %d < %d", ErrInvalidConfig, cfg.OptimisticTurns, MinOptimisticTurns)
	}
	if cfg.ReconcileTurns < MinReconcileTurns {
		return nil, fmt.Errorf("%w: reconcile turns %d < %d", ErrInvalidConfig, cfg.ReconcileTurns, MinReconcileTurns)
	}
	if cfg.OptimisticDuration < 0 || cfg.ReconcileDuration < 0 {
		return nil, fmt.Errorf("%w: negative duration", ErrInvalidConfig)
	}
	return &Planner{cfg: cfg}, nil
}

// Rotation is the resting angle of the wheel in absolute degrees.
func (p *Planner) Rotation() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rotation
}

// PointerAngle is the angle the winning slice lands under.
func (p *Planner) PointerAngle() float64 {
	return *p.cfg.PointerAngle
}

// Phase reports the current phase.
func (p *Planner) Phase() Phase {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.phase
}

// Start begins the optimistic phase:
// target0 = rotation + K0*360 + rng*360.
func (p *Planner) Start(sliceCount int, rng utils.RandomSource) (Plan, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.phase != PhaseIdle {
		return Plan{}, ErrPlanInFlight
	}
	if sliceCount <= 0 {
		return Plan{}, fmt.Errorf("%w: %d slices", ErrSliceIndexOutRange, sliceCount)
	}

	target := p.rotation + float64(p.cfg.OptimisticTurns)*fullTurn + rng.Float64()*fullTurn
	p.optimistic = Plan{From: p.rotation, To: target, Duration: p.cfg.OptimisticDuration}
	p.sliceCount = sliceCount
	p.phase = PhaseOptimistic
	return p.optimistic, nil
}

// Reconcile retargets the spin so that slice index lands under the pointer.
// elapsed is how long the optimistic animation has been running; the
// returned plan continues from that point.
//
// final = target0 - (target0 mod 360) + K1*360 + ((P - c_i) mod 360), which
// is always past target0, so the wheel never reverses.
func (p *Planner) Reconcile(index, sliceCount int, elapsed time.Duration) (Plan, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.phase != PhaseOptimistic {
		return Plan{}, ErrNoPlanInFlight
	}
	if sliceCount != p.sliceCount {
		return Plan{}, fmt.Errorf("%w: started with %d, got %d", ErrSliceCountChanged, p.sliceCount, sliceCount)
	}
	if index < 0 || index >= sliceCount {
		return Plan{}, fmt.Errorf("%w: %d of %d", ErrSliceIndexOutRange, index, sliceCount)
	}

	target0 := p.optimistic.To
	remainder := LandingRemainder(*p.cfg.PointerAngle, index, sliceCount)
	final := target0 - Normalize(target0) + float64(p.cfg.ReconcileTurns)*fullTurn + remainder

	p.final = Plan{From: p.optimistic.At(elapsed), To: final, Duration: p.cfg.ReconcileDuration}
	p.phase = PhaseReconciled
	return p.final, nil
}

// Finish records that the reconciled animation has come to rest.
func (p *Planner) Finish() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.phase == PhaseReconciled {
		p.rotation = p.final.To
	}
	p.phase = PhaseIdle
	return p.rotation
}

// Cancel abandons an in-flight spin and resets the wheel to
// target0 mod 360 so that a retry starts from a small, deterministic angle.
func (p *Planner) Cancel() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.phase != PhaseIdle {
		p.rotation = Normalize(p.optimistic.To)
	}
	p.phase = PhaseIdle
	return p.rotation
}

// SliceCenter is the angle of the centre of slice index on a wheel with
// sliceCount slices: index*360/N + 180/N.
func SliceCenter(index, sliceCount int) float64 {
	width := fullTurn / float64(sliceCount)
	return float64(index)*width + width/2
}

// LandingRemainder is the rotation modulo 360 that puts the centre of slice
// index under a pointer at pointerAngle.
func LandingRemainder(pointerAngle float64, index, sliceCount int) float64 {
	return Normalize(pointerAngle - SliceCenter(index, sliceCount))
}

// SliceUnderPointer inverts LandingRemainder: which slice sits under the
// pointer for a given rotation.
func SliceUnderPointer(rotation, pointerAngle float64, sliceCount int) int {
	width := fullTurn / float64(sliceCount)
	angle := Normalize(pointerAngle - rotation)
	i := int(math.Floor(angle / width))
	if i >= sliceCount {
		i = sliceCount - 1
	}
	return i
}

// Normalize maps any angle into [0, 360).
func Normalize(angle float64) float64 {
	m := math.Mod(angle, fullTurn)
	if m < 0 {
		m += fullTurn
	}
	if m >= fullTurn {
		m = 0
	}
	return m
}
