package tracker

// state is the tracker's replay state machine. Transitions only go through
// idle: idle -> recording -> idle and idle -> replaying -> idle. A replay
// can never start while recording and vice versa.
type state int32

const (
	stateIdle state = iota
	stateRecording
	stateReplaying
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateRecording:
		return "recording"
	case stateReplaying:
		return "replaying"
	default:
		return "unknown"
	}
}

// enter moves from idle to next. It reports false if the tracker is busy.
func (t *Tracker) enter(next state) bool {
	return t.state.CompareAndSwap(int32(stateIdle), int32(next))
}

// leave returns to idle from the given state.
func (t *Tracker) leave(from state) {
	t.state.CompareAndSwap(int32(from), int32(stateIdle))
}

func (t *Tracker) current() state {
	return state(t.state.Load())
}
