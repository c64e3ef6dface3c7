package rctx

import "context"

// State holds per-execution metadata the spider attaches before invoking a
// runner.
type State struct {
	// Attempt is the 1-based execution attempt for the current task.
	Attempt int
}

type ctxKey struct{}

// WithState returns a child context carrying the given execution state.
func WithState(parent context.Context, s *State) context.Context {
	return context.WithValue(parent, ctxKey{}, s)
}

// From extracts the execution state from context if present.
func From(ctx context.Context) (*State, bool) {
	v := ctx.Value(ctxKey{})
	if v == nil {
		return nil, false
	}
	st, ok := v.(*State)
	return st, ok
}
