package rotation

import "time"

const (
	// DefaultPointerAngle puts the pointer at the top of a wheel drawn with
	// 0 degrees at three o'clock and angles growing clockwise.
	DefaultPointerAngle = 270.0

	DefaultOptimisticTurns = 10
	DefaultReconcileTurns  = 5

	MinOptimisticTurns = 5
	MinReconcileTurns  = 3

	DefaultOptimisticDuration = 20 * time.Second
	DefaultReconcileDuration  = 5 * time.Second

	fullTurn = 360.0
)

const (
	ErrMsgInvalidConfig      = "invalid rotation config"
	ErrMsgPlanInFlight       = "a rotation is already in flight"
	ErrMsgNoPlanInFlight     = "no optimistic rotation in flight"
	ErrMsgSliceCountChanged  = "slice count changed during a draw"
	ErrMsgSliceIndexOutRange = "slice index out of range"
)
