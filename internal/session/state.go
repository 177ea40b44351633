package session

import "github.com/duna-ai/duna/internal/analyzer"

type Phase int

const (
	Idle Phase = iota
	Validating
	InFlight
	Succeeded
	Failed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case InFlight:
		return "in_flight"
	case Succeeded:
		return "succeeded"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// State is a snapshot of a session. Result is set only when Succeeded,
// Message and Err only when Failed.
type State struct {
	Phase   Phase
	Result  *analyzer.Result
	Message string
	Err     error
}

// Busy reports whether a submission is being validated or is in flight.
func (s State) Busy() bool {
	return s.Phase == Validating || s.Phase == InFlight
}
