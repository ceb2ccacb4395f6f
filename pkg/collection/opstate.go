package collection

// Phase is the lifecycle of one asynchronous operation
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInFlight
	PhaseSucceeded
	PhaseFailed
)

// OpState is a small state machine for an operation that can be retried:
// Idle -> InFlight -> Succeeded or Failed -> InFlight -> ... The error
// message is only held in the Failed phase, so "loading with a stale error
// from a previous run" cannot be represented.
type OpState struct {
	phase Phase
	err   string
}

// Begin moves to InFlight and clears any previous error. It returns false if
// the operation is already in flight, which callers use as a re-entrancy
// guard.
func (s *OpState) Begin() bool {
	if s.phase == PhaseInFlight {
		return false
	}
	s.phase = PhaseInFlight
	s.err = ""
	return true
}

// Succeed moves InFlight -> Succeeded
func (s *OpState) Succeed() {
	s.phase = PhaseSucceeded
	s.err = ""
}

// Fail moves InFlight -> Failed with a message
func (s *OpState) Fail(msg string) {
	s.phase = PhaseFailed
	s.err = msg
}

// Phase returns the current phase
func (s *OpState) Phase() Phase {
	return s.phase
}

// InFlight reports whether the operation is running
func (s *OpState) InFlight() bool {
	return s.phase == PhaseInFlight
}

// Err returns the failure message, empty unless the phase is Failed
func (s *OpState) Err() string {
	if s.phase != PhaseFailed {
		return ""
	}
	return s.err
}
