// Package session drives one participant's play-through of a wheel: sign in,
// draw once, then claim the prize or leave the claim for later.
//
// A Session is an explicit value; nothing is kept in package state, so any
// number of sessions can run side by side. Draw resolution and proof upload
// suspend on the backend, and the session refuses a second draw while the
// first is unresolved.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/LuckyWheel_Go/internal/domain"
	"github.com/osse101/LuckyWheel_Go/internal/gating"
	"github.com/osse101/LuckyWheel_Go/internal/logger"
	"github.com/osse101/LuckyWheel_Go/internal/rotation"
	"github.com/osse101/LuckyWheel_Go/internal/utils"
)

var (
	ErrInvalidTransition = errors.New(ErrMsgInvalidTransition)
	ErrDrawInFlight      = errors.New(ErrMsgDrawInFlight)
	ErrUploadInFlight    = errors.New(ErrMsgUploadInFlight)
	ErrBusy              = errors.New(ErrMsgBusy)
	ErrNotAuthenticated  = errors.New(ErrMsgNotAuthenticated)
	ErrNoWheel           = errors.New(ErrMsgNoWheel)
)

// Config tunes a session. Zero values take the defaults.
type Config struct {
	WinBannerDelay time.Duration
	Rotation       rotation.Config
	RNG            utils.RandomSource
	Now            func() time.Time
	Sleep          func(ctx context.Context, d time.Duration) error
	// OnTransition is called with the session locked; it must not call
	// back into the session.
	OnTransition func(from, to State)
}

// Snapshot is a copy of the session's observable state
type Snapshot struct {
	State             State
	Participant       *domain.Participant
	WheelCode         string
	Wheel             *domain.Wheel
	PendingPrizeLabel string
	PendingSpinID     uuid.UUID
	Pending           []domain.SpinRecord
	Rotation          float64
	Drawing           bool
}

// DrawOutcome is a resolved draw together with the two animation segments.
// Reconciled is false when the wheel changed shape mid-draw and the renderer
// should snap to the result instead of animating.
type DrawOutcome struct {
	Result     *domain.DrawResult
	Optimistic rotation.Plan
	Final      rotation.Plan
	Reconciled bool
}

type operation int

const (
	opNone operation = iota
	opLoad
	opDraw
	opUpload
)

func (o operation) String() string {
	switch o {
	case opLoad:
		return "load"
	case opDraw:
		return "draw"
	case opUpload:
		return "upload"
	default:
		return "none"
	}
}

// Session is one participant's state machine
type Session struct {
	mu      sync.Mutex
	backend Backend
	planner *rotation.Planner
	cfg     Config

	state             State
	identity          *Identity
	wheelCode         string
	wheel             *domain.Wheel
	pendingPrizeLabel string
	pendingSpinID     uuid.UUID
	pending           []domain.SpinRecord

	op operation
	// gen changes on logout so that a call still in flight from the old
	// identity does not write into the new session state
	gen uint64
}

// New creates a session in Loading.
func New(backend Backend, cfg Config) (*Session, error) {
	if backend == nil {
		return nil, errors.New(ErrMsgNilBackend)
	}
	planner, err := rotation.NewPlanner(cfg.Rotation)
	if err != nil {
		return nil, err
	}
	if cfg.WinBannerDelay < 0 {
		cfg.WinBannerDelay = 0
	}
	if cfg.RNG == nil {
		cfg.RNG = utils.DefaultRNG()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Sleep == nil {
		cfg.Sleep = sleep
	}
	return &Session{backend: backend, planner: planner, cfg: cfg, state: StateLoading}, nil
}

// State returns the current state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snapshot returns a copy of the session's state
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{
		State:             s.state,
		WheelCode:         s.wheelCode,
		Wheel:             s.wheel.Clone(),
		PendingPrizeLabel: s.pendingPrizeLabel,
		PendingSpinID:     s.pendingSpinID,
		Pending:           append([]domain.SpinRecord(nil), s.pending...),
		Rotation:          s.planner.Rotation(),
		Drawing:           s.op == opDraw,
	}
	if s.identity != nil {
		p := s.identity.Participant
		snap.Participant = &p
	}
	return snap
}

// Start leaves Loading. With an identity and a wheel code the session goes
// straight to Playing; otherwise it waits in Idle.
func (s *Session) Start(ctx context.Context, id *Identity, wheelCode string) error {
	s.mu.Lock()
	if s.state != StateLoading {
		err := s.transitionErr(StateIdle)
		s.mu.Unlock()
		return err
	}
	if id != nil {
		cp := *id
		s.identity = &cp
	}
	s.wheelCode = domain.NormalizeWheelCode(wheelCode)
	if s.identity == nil || s.wheelCode == "" {
		s.transitionLocked(StateIdle)
		s.mu.Unlock()
		return nil
	}
	s.op = opLoad
	s.mu.Unlock()

	return s.openWheel(ctx, s.wheelCode, StateIdle)
}

// Authenticate signs the participant in from Idle. When a wheel code is
// already known the session moves on to Playing.
func (s *Session) Authenticate(ctx context.Context, p domain.Participant) error {
	s.mu.Lock()
	if err := s.beginLocked(opLoad, false, StateIdle); err != nil {
		s.mu.Unlock()
		return err
	}
	gen := s.gen
	s.mu.Unlock()

	id, err := s.backend.Authenticate(ctx, p)

	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return err
	}
	if err != nil {
		s.op = opNone
		s.mu.Unlock()
		return err
	}
	s.identity = &id
	code := s.wheelCode
	if code == "" {
		s.op = opNone
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	return s.openWheel(ctx, code, StateIdle)
}

// OpenWheel selects the wheel to play, from Idle once authenticated or from
// Playing to switch wheels.
func (s *Session) OpenWheel(ctx context.Context, code string) error {
	code = domain.NormalizeWheelCode(code)
	if code == "" {
		return fmt.Errorf("%w: %s", domain.ErrInvalidInput, ErrMsgNoWheel)
	}

	s.mu.Lock()
	if err := s.beginLocked(opLoad, true, StateIdle, StatePlaying); err != nil {
		s.mu.Unlock()
		return err
	}
	fallback := s.state
	s.mu.Unlock()

	return s.openWheel(ctx, code, fallback)
}

// openWheel runs with opLoad held. On failure the session stays in (or
// returns to) fallback.
func (s *Session) openWheel(ctx context.Context, code string, fallback State) error {
	s.mu.Lock()
	id := *s.identity
	gen := s.gen
	s.mu.Unlock()

	w, err := s.backend.LoadWheel(ctx, id, code)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return err
	}
	if err != nil {
		s.op = opNone
		if s.state == StateLoading {
			s.transitionLocked(fallback)
		}
		return err
	}
	s.wheel = w
	s.wheelCode = w.Code
	s.enterPlayingLocked(ctx)
	return nil
}

// enterPlayingLocked moves to Playing and resurfaces unclaimed prizes. The
// session stays busy until the pending list is back. The list is refreshed
// best effort: a failure keeps the previous list and Reconcile can be called
// again.
func (s *Session) enterPlayingLocked(ctx context.Context) {
	s.transitionLocked(StatePlaying)
	s.pendingPrizeLabel = ""
	s.pendingSpinID = uuid.Nil
	s.op = opLoad

	id := *s.identity
	gen := s.gen
	s.mu.Unlock()
	pending, err := s.backend.ListPendingSpins(ctx, id)
	s.mu.Lock()

	if s.gen != gen {
		return
	}
	s.op = opNone
	log := logger.FromContext(ctx)
	if err != nil {
		log.Warn(LogMsgReconcileFailed, "error", err)
		return
	}
	s.pending = pending
	log.Debug(LogMsgReconciled, "pending", len(pending))
}

// Reconcile re-queries the participant's pending claims. It is idempotent.
func (s *Session) Reconcile(ctx context.Context) ([]domain.SpinRecord, error) {
	s.mu.Lock()
	if s.identity == nil {
		s.mu.Unlock()
		return nil, ErrNotAuthenticated
	}
	id := *s.identity
	gen := s.gen
	s.mu.Unlock()

	pending, err := s.backend.ListPendingSpins(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen == gen {
		s.pending = pending
	}
	return append([]domain.SpinRecord(nil), pending...), nil
}

// Draw spins the wheel. The optimistic rotation starts before the backend
// answers; on success it is reconciled to the winning slice and, after the
// win banner, the session moves to Claiming. Any failure cancels the
// rotation and leaves the session in Playing.
func (s *Session) Draw(ctx context.Context) (*DrawOutcome, error) {
	s.mu.Lock()
	if err := s.beginLocked(opDraw, true, StatePlaying); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	if s.wheel == nil {
		s.op = opNone
		s.mu.Unlock()
		return nil, ErrNoWheel
	}
	id := *s.identity
	w := s.wheel.Clone()
	gen := s.gen

	// advisory; the backend decides
	if d := gating.CanDraw(w, s.cfg.Now()); !d.Eligible {
		s.op = opNone
		s.mu.Unlock()
		return nil, d.Reason
	}

	optimistic, err := s.planner.Start(len(w.Prizes), s.cfg.RNG)
	if err != nil {
		s.op = opNone
		s.mu.Unlock()
		return nil, err
	}
	started := s.cfg.Now()
	s.mu.Unlock()

	log := logger.FromContext(ctx)
	result, err := s.backend.ResolveDraw(ctx, id, w.Code)
	if err != nil {
		log.Info(LogMsgDrawFailed, "wheel_code", w.Code, "reason", domain.ErrorCode(err))

		// after a logout the planner may already carry the next identity's spin
		s.mu.Lock()
		current := s.gen == gen
		if current {
			s.planner.Cancel()
			s.op = opNone
		}
		s.mu.Unlock()

		if current && errors.Is(err, domain.ErrAlreadyPlayed) {
			// the earlier win may still be waiting for its proof
			_, _ = s.Reconcile(ctx)
		}
		return nil, err
	}

	outcome := &DrawOutcome{Result: result, Optimistic: optimistic}
	s.mu.Lock()
	if s.gen != gen {
		s.mu.Unlock()
		return outcome, nil
	}
	final, err := s.planner.Reconcile(result.SliceIndex, result.SliceCount, s.cfg.Now().Sub(started))
	if err != nil {
		s.planner.Cancel()
		log.Warn(LogMsgRotationMismatch, "wheel_code", w.Code, "error", err)
	} else {
		outcome.Final = final
		outcome.Reconciled = true
	}
	s.mu.Unlock()

	// a cancelled ctx only cuts the banner short; the spin is committed
	_ = s.cfg.Sleep(ctx, s.cfg.WinBannerDelay)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return outcome, nil
	}
	if outcome.Reconciled {
		s.planner.Finish()
	}
	s.op = opNone
	s.pendingPrizeLabel = result.Prize.Label
	s.pendingSpinID = result.Spin.ID
	s.addPendingLocked(result.Spin)
	s.transitionLocked(StateClaiming)
	return outcome, nil
}

// SubmitProof uploads proof for the prize being claimed and finishes the
// session. On failure the session stays in Claiming and the spin stays
// pending, so it comes back on the next reconciliation.
func (s *Session) SubmitProof(ctx context.Context, proof io.Reader) (*domain.SpinRecord, error) {
	s.mu.Lock()
	if err := s.beginLocked(opUpload, true, StateClaiming); err != nil {
		s.mu.Unlock()
		return nil, err
	}
	id := *s.identity
	spinID := s.pendingSpinID
	gen := s.gen
	s.mu.Unlock()

	rec, err := s.backend.SubmitProof(ctx, id, spinID, proof)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return rec, err
	}
	s.op = opNone
	if err != nil {
		logger.FromContext(ctx).Warn(LogMsgProofSubmitFailed, "spin_id", spinID, "reason", domain.ErrorCode(err))
		return nil, err
	}

	s.removePendingLocked(spinID)
	s.pendingPrizeLabel = ""
	s.pendingSpinID = uuid.Nil
	s.transitionLocked(StateFinished)
	return rec, nil
}

// SkipClaim leaves the claim screen without proof. The spin stays pending
// and is offered again by reconciliation.
func (s *Session) SkipClaim(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.beginLocked(opNone, true, StateClaiming); err != nil {
		return err
	}
	s.enterPlayingLocked(ctx)
	return nil
}

// ResumeClaim reopens the claim screen for a pending spin found by
// reconciliation.
func (s *Session) ResumeClaim(_ context.Context, spinID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.beginLocked(opNone, true, StatePlaying); err != nil {
		return err
	}
	for _, p := range s.pending {
		if p.ID == spinID {
			s.pendingPrizeLabel = p.PrizeLabel
			s.pendingSpinID = p.ID
			s.transitionLocked(StateClaiming)
			return nil
		}
	}
	return domain.ErrSpinNotFound
}

// Logout returns to Idle from any signed-in state. A draw or upload still in
// flight completes on the backend but no longer touches this session.
func (s *Session) Logout(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateIdle:
		s.gen++
		s.op = opNone
		s.identity = nil
		return nil
	case StateLoading:
		return s.transitionErr(StateIdle)
	}

	s.planner.Cancel()
	s.gen++
	s.op = opNone
	s.identity = nil
	s.pending = nil
	s.pendingPrizeLabel = ""
	s.pendingSpinID = uuid.Nil
	s.transitionLocked(StateIdle)
	return nil
}

// beginLocked checks that the session may start op from one of states.
// opNone only checks, it does not claim the session.
func (s *Session) beginLocked(op operation, needIdentity bool, states ...State) error {
	switch s.op {
	case opNone:
	case opDraw:
		return ErrDrawInFlight
	case opUpload:
		return ErrUploadInFlight
	default:
		return ErrBusy
	}
	if needIdentity && s.identity == nil {
		return ErrNotAuthenticated
	}
	for _, st := range states {
		if s.state == st {
			s.op = op
			return nil
		}
	}
	return fmt.Errorf("%w: %s not allowed in %s", ErrInvalidTransition, op, s.state)
}

func (s *Session) transitionErr(next State) error {
	return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, s.state, next)
}

func (s *Session) transitionLocked(next State) {
	from := s.state
	if from != next && !from.CanTransitionTo(next) {
		// callers check states first; reaching here is a bug
		panic(fmt.Sprintf("session: illegal transition %s to %s", from, next))
	}
	s.state = next
	logger.Debug(LogMsgTransition, "from", from.String(), "to", next.String())
	if s.cfg.OnTransition != nil {
		s.cfg.OnTransition(from, next)
	}
}

func (s *Session) addPendingLocked(rec domain.SpinRecord) {
	for _, p := range s.pending {
		if p.ID == rec.ID {
			return
		}
	}
	s.pending = append(s.pending, rec)
}

func (s *Session) removePendingLocked(id uuid.UUID) {
	out := s.pending[:0]
	for _, p := range s.pending {
		if p.ID != id {
			out = append(out, p)
		}
	}
	s.pending = out
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
