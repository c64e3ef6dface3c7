package spiderkit

import "context"

// Item is produced by a runner while executing a task. The two
// implementations are *Task (fed back into the queue) and *Object (routed to
// storage); the spider dispatches on this tag, never on contents.
type Item interface {
	item()
}

func (*Task) item()   {}
func (*Object) item() {}

// EmitFunc routes one produced item. The spider supplies it to Run so that
// output is consumed incrementally: each emitted item is enqueued or stored
// before the runner continues, and output a runner never emits is simply
// discarded. A non-nil return means the queue or storage rejected the item;
// the runner must stop and propagate that error unchanged.
type EmitFunc func(Item) error

// Runner is the extension point of the system: a handler that declares
// interest in tasks via Match and produces tasks and objects via Run.
type Runner interface {
	// Match is a pure predicate deciding whether this runner is a candidate
	// for the task. It must be fast, side-effect free and never panic.
	Match(t *Task) bool

	// Run executes the task, emitting produced items one at a time. It
	// returns nil on success, one of the control signals (ErrAbortTask,
	// ErrSkipRunner, ErrRetryTask) to steer dispatch, any error received
	// from emit unchanged, or any other error to report an unclassified
	// fault (treated as a retry).
	Run(ctx context.Context, t *Task, emit EmitFunc) error
}

// Predicate is a match predicate over tasks, used to compose stricter
// runners out of a base check plus extensions.
type Predicate func(*Task) bool

// MatchAll combines predicates with logical AND. Runners layering checks on
// top of a base predicate should compose explicitly:
//
//	func (r *myRunner) Match(t *Task) bool {
//		return MatchAll(r.BaseRunner.Match, MatchKind("download"))(t)
//	}
func MatchAll(preds ...Predicate) Predicate {
	return func(t *Task) bool {
		for _, p := range preds {
			if !p(t) {
				return false
			}
		}
		return true
	}
}

// MatchKind returns a predicate accepting tasks of the given kind.
func MatchKind(kind string) Predicate {
	return func(t *Task) bool { return t != nil && t.Kind() == kind }
}

// BaseRunner carries the shared runner plumbing: an immutable configuration
// mapping set at construction time (shared clients, policy knobs) and the
// base Match predicate. Concrete runners embed it and extend Match by
// composition.
type BaseRunner struct {
	Conf Conf
}

// NewBaseRunner creates a BaseRunner with the given configuration. The map
// is copied and treated as read-only from then on.
func NewBaseRunner(conf Conf) BaseRunner {
	return BaseRunner{Conf: conf.clone()}
}

// Match is the base predicate: any non-nil task is a candidate. Subtypes AND
// their own checks on top of it.
func (BaseRunner) Match(t *Task) bool { return t != nil }

// Run produces nothing. Subtypes override it.
func (BaseRunner) Run(ctx context.Context, t *Task, emit EmitFunc) error { return nil }
