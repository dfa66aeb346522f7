// Package store provides the normalized entity container every
// collection in the engine is built on: a map keyed by entity id plus
// an insertion-ordered id list, with change notification for the
// persistence layer.
package store

import (
	"log/slog"
	"sync"
)

// Entity is any record carrying a unique string id.
type Entity interface {
	EntityID() string
}

// Snapshot is a copy of the store state, for serialization and tests.
type Snapshot[T Entity] struct {
	Entities map[string]T `json:"entities"`
	IDs      []string     `json:"ids"`
}

// Store holds entities of one kind. The id list records insertion
// order and is stable across updates. At every point the id list is
// exactly the key set of the entity map; all mutations go through the
// public surface to keep that invariant.
type Store[T Entity] struct {
	name   string
	logger *slog.Logger

	mu       sync.RWMutex
	entities map[string]T
	ids      []string

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// New creates an empty store. The name labels log lines only.
func New[T Entity](name string, logger *slog.Logger) *Store[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store[T]{
		name:     name,
		logger:   logger,
		entities: make(map[string]T),
		subs:     make(map[int]func()),
	}
}

// GetAll returns all entities in insertion order.
func (s *Store[T]) GetAll() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]T, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.entities[id])
	}
	return out
}

// FindByID returns the entity stored under id.
func (s *Store[T]) FindByID(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entities[id]
	return e, ok
}

// Find returns, in insertion order, every entity matching pred.
func (s *Store[T]) Find(pred func(T) bool) []T {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []T
	for _, id := range s.ids {
		if e := s.entities[id]; pred(e) {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of stored entities.
func (s *Store[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.ids)
}

// Insert stores the record under its id, overwriting any existing
// record and appending the id on first insertion. A record without an
// id is refused and logged; the store is the single place that
// enforces "every stored record has an id".
func (s *Store[T]) Insert(record T) {
	id := record.EntityID()
	if id == "" {
		s.logger.Warn("refusing to insert entity without id", "store", s.name)
		return
	}

	s.mu.Lock()
	if _, ok := s.entities[id]; !ok {
		s.ids = append(s.ids, id)
	}
	s.entities[id] = record
	s.mu.Unlock()

	s.notify()
}

// Update applies mutate to the record stored under id. Unknown ids
// are a no-op; the id of the record never changes.
func (s *Store[T]) Update(id string, mutate func(*T)) bool {
	s.mu.Lock()
	e, ok := s.entities[id]
	if ok {
		mutate(&e)
		s.entities[id] = e
	}
	s.mu.Unlock()

	if ok {
		s.notify()
	}
	return ok
}

// UpsertMany inserts or overwrites each record in the batch. Records
// without an id are skipped. The operation is idempotent; within one
// batch the last record for an id wins.
func (s *Store[T]) UpsertMany(records []T) {
	changed := false

	s.mu.Lock()
	for _, record := range records {
		id := record.EntityID()
		if id == "" {
			s.logger.Warn("skipping entity without id", "store", s.name)
			continue
		}
		if _, ok := s.entities[id]; !ok {
			s.ids = append(s.ids, id)
		}
		s.entities[id] = record
		changed = true
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Remove deletes the record stored under id. Removing an unknown id
// is a no-op.
func (s *Store[T]) Remove(id string) {
	s.mu.Lock()
	_, ok := s.entities[id]
	if ok {
		delete(s.entities, id)
		for i, existing := range s.ids {
			if existing == id {
				s.ids = append(s.ids[:i], s.ids[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()

	if ok {
		s.notify()
	}
}

// State returns a copy of the current store state.
func (s *Store[T]) State() Snapshot[T] {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot[T]{
		Entities: make(map[string]T, len(s.entities)),
		IDs:      make([]string, len(s.ids)),
	}
	for id, e := range s.entities {
		snap.Entities[id] = e
	}
	copy(snap.IDs, s.ids)
	return snap
}

// Subscribe registers fn to run after every mutation. Notifications
// fire synchronously in mutation order, outside the write lock. The
// returned function removes the subscription.
func (s *Store[T]) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store[T]) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
