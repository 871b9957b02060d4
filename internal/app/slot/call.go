package slot

import "context"

// Call is a handle on one issued remote operation.
type Call struct {
	id   uint64
	done chan struct{}
	err  error
}

func newCall(id uint64) *Call {
	return &Call{id: id, done: make(chan struct{})}
}

// ID returns the slot-local sequence number of the call, starting at 1.
func (c *Call) ID() uint64 {
	return c.id
}

// Done returns a channel that is closed once the call's result has been
// applied to the slot and subscribers have been notified.
func (c *Call) Done() <-chan struct{} {
	return c.done
}

// Wait blocks until the call completes or ctx is done, and returns the
// call's error. A ctx error is returned if ctx ends first; the call itself
// keeps running.
func (c *Call) Wait(ctx context.Context) error {
	select {
	case <-c.done:
		return c.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
