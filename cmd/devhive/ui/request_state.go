package ui

// Phase is the lifecycle position of a page's single request slot.
type Phase int

const (
	PhaseIdle     Phase = iota // nothing requested yet
	PhasePending               // request in flight
	PhaseResolved              // last request succeeded
	PhaseFailed                // last request failed
)

// RequestState is the one state machine shared by all four pages. Each page
// owns exactly one instance; nothing else reads or writes it.
//
// Every submission gets a sequence number. A response that comes back
// carrying a stale sequence is ignored, so when a second submission
// supersedes the first, the last submission wins regardless of network
// ordering.
type RequestState[T any] struct {
	phase  Phase
	seq    int
	data   T
	errMsg string
}

// Begin moves the slot to pending and returns the sequence number the
// eventual response must present.
func (s *RequestState[T]) Begin() int {
	s.seq++
	s.phase = PhasePending
	s.errMsg = ""
	return s.seq
}

// Resolve completes the request with data. Stale sequences are dropped and
// reported false.
func (s *RequestState[T]) Resolve(seq int, data T) bool {
	if seq != s.seq || s.phase != PhasePending {
		return false
	}
	s.phase = PhaseResolved
	s.data = data
	s.errMsg = ""
	return true
}

// Fail completes the request with a user-facing message. Stale sequences are
// dropped and reported false.
func (s *RequestState[T]) Fail(seq int, message string) bool {
	if seq != s.seq || s.phase != PhasePending {
		return false
	}
	s.phase = PhaseFailed
	s.errMsg = message
	return true
}

// Phase returns the current lifecycle position.
func (s *RequestState[T]) Phase() Phase { return s.phase }

// Pending reports whether a request is in flight.
func (s *RequestState[T]) Pending() bool { return s.phase == PhasePending }

// Data returns the resolved value. Only meaningful in PhaseResolved.
func (s *RequestState[T]) Data() T { return s.data }

// Err returns the failure message. Only meaningful in PhaseFailed.
func (s *RequestState[T]) Err() string { return s.errMsg }
