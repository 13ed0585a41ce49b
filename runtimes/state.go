package runtimes

type State uint8

const (
	StateUninitialized State = iota
	StateInitializing
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitializing:
		return "initializing"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Status is the observable lifecycle of a Host.
// Loading holds until initialization has finished, successfully or not.
type Status struct {
	State   State
	Loading bool
	Ready   bool
	Err     error
}
