package spiderkit

import (
	"fmt"
	"sort"
	"strings"

	"github.com/SpiderKit/spiderkit-go/internal/identity"
)

// Task represents a unit of pending work. Tasks are immutable after creation:
// the identity is derived once from the kind and the attribute set, and the
// queue relies on it never changing.
type Task struct {
	kind  string
	id    string
	attrs map[string]any
}

// NewTask creates a task of the given kind. The attribute map is copied, so
// later mutation of the caller's map does not affect the task. Two tasks with
// the same kind and attribute set share the same identity, regardless of map
// insertion order.
func NewTask(kind string, attrs map[string]any) *Task {
	cp := copyMap(attrs)
	return &Task{
		kind:  kind,
		id:    identity.For(kind, cp),
		attrs: cp,
	}
}

// Kind returns the task discriminator used by runners' Match predicates.
func (t *Task) Kind() string { return t.kind }

// ID returns the deduplication identity of the task.
func (t *Task) ID() string { return t.id }

// Get returns the attribute for key and whether it is present.
func (t *Task) Get(key string) (any, bool) {
	v, ok := t.attrs[key]
	return v, ok
}

// String returns the string attribute for key, or "" when absent or not a string.
func (t *Task) String(key string) string {
	s, _ := t.attrs[key].(string)
	return s
}

// Int returns the integer attribute for key, or 0 when absent. Values that
// went through a JSON round-trip decode as float64 and are accepted too.
func (t *Task) Int(key string) int {
	switch v := t.attrs[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	}
	return 0
}

// Attrs returns a copy of the attribute map.
func (t *Task) Attrs() map[string]any {
	return copyMap(t.attrs)
}

// ToMap returns the wire form of the task: the attribute map plus a "_kind"
// entry. Identity is not carried; it is re-derived on decode.
func (t *Task) ToMap() map[string]any {
	m := copyMap(t.attrs)
	m["_kind"] = t.kind
	return m
}

// TaskFromMap rebuilds a task from its wire form. It returns ErrNotTask when
// the "_kind" entry is missing or not a string. The rebuilt task has the same
// identity as the original.
func TaskFromMap(m map[string]any) (*Task, error) {
	kind, ok := m["_kind"].(string)
	if !ok || kind == "" {
		return nil, ErrNotTask
	}
	attrs := copyMap(m)
	delete(attrs, "_kind")
	return NewTask(kind, attrs), nil
}

func (t *Task) GoString() string { return t.debugString() }

func (t *Task) debugString() string {
	keys := make([]string, 0, len(t.attrs))
	for k := range t.attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, t.attrs[k]))
	}
	return fmt.Sprintf("Task(%s, %s)", t.kind, strings.Join(parts, ", "))
}

func copyMap(m map[string]any) map[string]any {
	cp := make(map[string]any, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return cp
}
