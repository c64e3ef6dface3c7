package spiderkit

import "errors"

// ErrEmptyQueue is returned by Pop when no tasks are pending. The spider uses
// it as its termination signal; callers driving a queue directly should check
// for it with errors.Is.
var ErrEmptyQueue = errors.New("spiderkit: queue is empty")

// ErrNoAttribute is returned when reading or deleting an attribute an Object
// does not carry.
var ErrNoAttribute = errors.New("spiderkit: no such attribute")

// ErrNotTask is returned when decoding a wire payload that does not describe a task.
var ErrNotTask = errors.New("spiderkit: payload is not a task")

// Control signals. A runner returns one of these (possibly wrapped) from Run
// to steer the dispatch loop. They are decisions, not failures, and never
// surface from Spider.Run.

// ErrAbortTask stops all further processing of the current task: the raising
// runner's unproduced output is discarded and no remaining runner executes
// for this task.
var ErrAbortTask = errors.New("spiderkit: abort task")

// ErrSkipRunner makes the current runner decline the task at execution time.
// Dispatch continues with the next matching runner.
var ErrSkipRunner = errors.New("spiderkit: skip runner")

// ErrRetryTask reports a transient failure: the task is re-enqueued at the
// tail, bypassing deduplication since it is the same logical unit, and
// dispatch continues with the next matching runner for the current attempt.
var ErrRetryTask = errors.New("spiderkit: retry task")
