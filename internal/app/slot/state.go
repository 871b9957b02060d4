package slot

import "fmt"

// Phase is the discrete state of a slot.
type Phase int

// Slot phases. An action-triggered slot that was never used reports
// Uninitialized, which renderers treat as idle.
const (
	Uninitialized Phase = iota
	Fetching
	Success
	Error
)

var phaseNames = [...]string{
	Uninitialized: "uninitialized",
	Fetching:      "fetching",
	Success:       "success",
	Error:         "error",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// MarshalText encodes the phase by name so view models serialize readably.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Settled reports whether the phase is terminal for the current call.
func (p Phase) Settled() bool {
	return p == Success || p == Error
}

// State is a snapshot of a slot.
//
// Data is non-nil exactly when Phase is Success and Err is non-empty exactly
// when Phase is Error. Call identifies the call that produced the snapshot:
// the issued call while Fetching, the completed call otherwise.
type State[T any] struct {
	Phase Phase
	Data  *T
	Err   string
	Call  uint64
}
