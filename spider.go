package spiderkit

import (
	"context"
	"errors"

	"github.com/SpiderKit/spiderkit-go/internal/rctx"
)

// DefaultMaxRetries is the number of re-attempts granted to a faulting task
// when SpiderConfig.MaxRetries is left zero (so three executions in total).
const DefaultMaxRetries = 2

// SpiderConfig defines the collaborators of a Spider.
type SpiderConfig struct {
	// Queue holds pending tasks. Defaults to a fresh MemoryQueue.
	Queue Queue
	// Storage receives extracted objects. Defaults to a fresh MemoryStorage.
	Storage Storage
	// Logger is used for dispatch events. Defaults to FmtLogger.
	Logger Logger
	// MaxRetries is the number of re-attempts granted to a task after a
	// Retry or unclassified fault. Zero means DefaultMaxRetries; a negative
	// value disables retrying entirely.
	MaxRetries int
}

// Spider owns the runner registry, the pending-task queue and the storage
// sink, and drives the dispatch loop. It is an explicitly constructed value
// with no process-wide state: callers thread it through their code.
//
// A Spider is single-threaded: runners execute strictly sequentially in
// registration order and produced items are routed in production order.
type Spider struct {
	queue      Queue
	storage    Storage
	log        Logger
	maxRetries int

	runners []Runner

	// attempts counts executions per task identity, so the retry bound
	// holds across re-enqueues without mutating the task itself.
	attempts map[string]int
}

// NewSpider creates a spider from the given configuration.
func NewSpider(cfg SpiderConfig) *Spider {
	q := cfg.Queue
	if q == nil {
		q = NewMemoryQueue()
	}
	st := cfg.Storage
	if st == nil {
		st = NewMemoryStorage()
	}
	l := cfg.Logger
	if l == nil {
		l = NewFmtLogger()
	}
	mr := cfg.MaxRetries
	if mr == 0 {
		mr = DefaultMaxRetries
	} else if mr < 0 {
		mr = 0
	}
	return &Spider{
		queue:      q,
		storage:    st,
		log:        l,
		maxRetries: mr,
		attempts:   make(map[string]int),
	}
}

// Register appends runners to the registry. Registration order is
// significant: it is the dispatch order for every task.
func (s *Spider) Register(runners ...Runner) {
	s.runners = append(s.runners, runners...)
}

// Submit seeds the queue with a task before (or during) a run.
// Deduplication applies: submitting an already-seen identity is a no-op.
func (s *Spider) Submit(t *Task) error {
	fresh, err := s.queue.Push(t)
	if err != nil {
		return err
	}
	if !fresh {
		s.log.Debugf("task %s already seen, not queuing", t.ID())
	}
	return nil
}

// Run drains the queue: tasks are popped FIFO and dispatched to every
// matching runner in registration order until nothing is pending. Runner
// faults never escape; Run only fails when the context is cancelled or the
// queue or storage itself breaks. Cancellation is honored between task
// iterations, so a half-processed task finishes its current runner first and
// items already routed stay routed.
func (s *Spider) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			s.log.Infof("run interrupted: %v", err)
			return err
		}
		n, err := s.queue.Len()
		if err != nil {
			return err
		}
		if n == 0 {
			s.log.Infof("queue empty, terminating run")
			return nil
		}
		t, err := s.queue.Pop()
		if errors.Is(err, ErrEmptyQueue) {
			// a queue drained between Len and Pop is still a clean finish
			return nil
		}
		if err != nil {
			return err
		}
		if err := s.runTask(ctx, t); err != nil {
			return err
		}
	}
}

// runTask dispatches one task to every matching runner. The returned error
// is always an infrastructure failure (queue or storage); runner outcomes
// are absorbed into the control flow.
func (s *Spider) runTask(ctx context.Context, t *Task) error {
	attempt := s.attempts[t.ID()] + 1
	s.attempts[t.ID()] = attempt
	rc := rctx.WithState(ctx, &rctx.State{Attempt: attempt})

	s.log.Debugf("starting task %s (kind=%s attempt=%d)", t.ID(), t.Kind(), attempt)

	// A task re-enters the queue at most once per attempt, no matter how
	// many runners fault on it.
	requeued := false

	for _, r := range s.runners {
		if !r.Match(t) {
			continue
		}

		var infraErr error
		emit := func(it Item) error {
			switch v := it.(type) {
			case *Task:
				if _, err := s.queue.Push(v); err != nil {
					infraErr = err
					return err
				}
			case *Object:
				if err := s.storage.Put(v); err != nil {
					infraErr = err
					return err
				}
			}
			return nil
		}

		err := r.Run(rc, t, emit)
		if infraErr != nil {
			return infraErr
		}

		switch {
		case err == nil:
			// next runner

		case errors.Is(err, ErrAbortTask):
			s.log.Infof("task %s aborted", t.ID())
			return nil

		case errors.Is(err, ErrSkipRunner):
			s.log.Debugf("runner skipped task %s", t.ID())

		default:
			if !errors.Is(err, ErrRetryTask) {
				s.log.Warnf("task %s failed with unclassified error, treating as retry: %v", t.ID(), err)
			}
			if requeued {
				continue
			}
			if attempt > s.maxRetries {
				s.log.Infof("task %s exhausted its %d retries, dropping", t.ID(), s.maxRetries)
				continue
			}
			s.log.Infof("task %s scheduled for retry %d/%d", t.ID(), attempt, s.maxRetries)
			if qerr := s.queue.Requeue(t); qerr != nil {
				return qerr
			}
			requeued = true
		}
	}

	s.log.Debugf("task %s done", t.ID())
	return nil
}
