// Package workers runs the long-lived background loops of a process as one
// group bound to a context.
package workers

import "context"

// Worker is a background loop. Run blocks until ctx is done or the loop
// fails, and returns ctx.Err() on cancellation.
type Worker interface {
	Run(ctx context.Context) error
}

// Func adapts a function to [Worker].
type Func func(ctx context.Context) error

func (f Func) Run(ctx context.Context) error {
	return f(ctx)
}
