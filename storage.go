package spiderkit

// Storage is the sink for extracted objects, grouped by kind. The spider is
// the only writer; runners hand objects over through emit and never touch
// storage directly.
type Storage interface {
	// Put appends the object under its kind. Ownership transfers to the
	// storage; the spider holds no further reference.
	Put(o *Object) error
}

// MemoryStorage is the in-process reference Storage: kind mapped to the
// ordered sequence of objects stored under it.
type MemoryStorage struct {
	byKind map[string][]*Object
	kinds  []string
}

// NewMemoryStorage creates an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{byKind: make(map[string][]*Object)}
}

// Put implements Storage.
func (s *MemoryStorage) Put(o *Object) error {
	if _, ok := s.byKind[o.Kind()]; !ok {
		s.kinds = append(s.kinds, o.Kind())
	}
	s.byKind[o.Kind()] = append(s.byKind[o.Kind()], o)
	return nil
}

// Objects returns the objects stored under kind, in insertion order.
func (s *MemoryStorage) Objects(kind string) []*Object {
	return s.byKind[kind]
}

// Kinds returns the stored kinds in first-seen order.
func (s *MemoryStorage) Kinds() []string {
	return s.kinds
}

// Count returns the total number of stored objects.
func (s *MemoryStorage) Count() int {
	n := 0
	for _, objs := range s.byKind {
		n += len(objs)
	}
	return n
}
