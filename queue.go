package spiderkit

// Queue holds pending tasks in FIFO order and rejects identities it has
// already seen. The seen set grows monotonically for the lifetime of one
// run; there is no eviction.
type Queue interface {
	// Push appends the task unless its identity was already seen. It
	// returns whether the task was newly enqueued.
	Push(t *Task) (bool, error)

	// Requeue appends the task unconditionally, bypassing the seen check.
	// This is the retry path: a retried task is a re-attempt of the same
	// logical unit, not a new one.
	Requeue(t *Task) error

	// Pop removes and returns the oldest pending task. It returns
	// ErrEmptyQueue when nothing is pending.
	Pop() (*Task, error)

	// Len returns the number of pending tasks.
	Len() (int, error)
}

// MemoryQueue is the in-process reference Queue: a slice of pending tasks
// plus a set of seen identities.
//
// It will grow without bound on large crawls; use RedisQueue for anything
// beyond a single modest run.
type MemoryQueue struct {
	pending []*Task
	seen    map[string]struct{}
}

// NewMemoryQueue creates an empty in-memory queue.
func NewMemoryQueue() *MemoryQueue {
	return &MemoryQueue{seen: make(map[string]struct{})}
}

// Push implements Queue.
func (q *MemoryQueue) Push(t *Task) (bool, error) {
	if _, dup := q.seen[t.ID()]; dup {
		return false, nil
	}
	q.seen[t.ID()] = struct{}{}
	q.pending = append(q.pending, t)
	return true, nil
}

// Requeue implements Queue.
func (q *MemoryQueue) Requeue(t *Task) error {
	q.pending = append(q.pending, t)
	return nil
}

// Pop implements Queue.
func (q *MemoryQueue) Pop() (*Task, error) {
	if len(q.pending) == 0 {
		return nil, ErrEmptyQueue
	}
	t := q.pending[0]
	q.pending = q.pending[1:]
	return t, nil
}

// Len implements Queue.
func (q *MemoryQueue) Len() (int, error) {
	return len(q.pending), nil
}
