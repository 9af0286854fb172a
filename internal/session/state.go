package session

// State is where a participant's session is. Loading and Idle are entry
// states; Finished ends the session but not the claim.
type State int

const (
	StateLoading State = iota
	StateIdle
	StatePlaying
	StateClaiming
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StateClaiming:
		return "claiming"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// allowed lists the legal moves between states
var allowed = map[State][]State{
	StateLoading:  {StateIdle, StatePlaying},
	StateIdle:     {StatePlaying},
	StatePlaying:  {StatePlaying, StateClaiming, StateIdle},
	StateClaiming: {StateFinished, StatePlaying, StateIdle},
	StateFinished: {StateIdle},
}

// CanTransitionTo reports whether moving from s to next is legal
func (s State) CanTransitionTo(next State) bool {
	for _, n := range allowed[s] {
		if n == next {
			return true
		}
	}
	return false
}
