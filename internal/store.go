package internal

import (
	"sort"
	"sync/atomic"
)

// Store is one frame of a chain of key-value mappings. Reads fall through to
// the parent chain. Writes go to the nearest frame which already owns the key,
// or to the local frame if none does.
//
// Stores are not synchronized. An interpreter and all its frames belong to a
// single goroutine.
type Store[T any] struct {
	vars   map[string]T
	parent *Store[T]
	id     uintptr
}

// storeIDs is the source of unique store IDs.
var storeIDs uintptr

// NewStore creates a store frame chained to parent, which may be nil. The
// initial mapping is copied.
func NewStore[T any](parent *Store[T], init map[string]T) *Store[T] {
	s := &Store[T]{
		vars:   make(map[string]T, len(init)),
		parent: parent,
		id:     atomic.AddUintptr(&storeIDs, 1),
	}
	for k, v := range init {
		s.vars[k] = v
	}
	return s
}

// ID returns the store's unique ID.
func (s *Store[T]) ID() uintptr {
	return s.id
}

// Parent returns the parent frame, or nil at the root.
func (s *Store[T]) Parent() *Store[T] {
	return s.parent
}

// Get returns the value of key in the nearest frame that owns it.
func (s *Store[T]) Get(key string) (v T, ok bool) {
	for ; s != nil; s = s.parent {
		if v, ok = s.vars[key]; ok {
			return v, true
		}
	}
	return v, false
}

// GetLocal returns the value of key only if this frame owns it.
func (s *Store[T]) GetLocal(key string) (v T, ok bool) {
	v, ok = s.vars[key]
	return v, ok
}

// Owner returns the nearest frame, starting with s, which owns key, or nil if
// no frame in the chain does.
func (s *Store[T]) Owner(key string) *Store[T] {
	for ; s != nil; s = s.parent {
		if _, ok := s.vars[key]; ok {
			return s
		}
	}
	return nil
}

// Resolve returns the frame to which Set would write key.
func (s *Store[T]) Resolve(key string) *Store[T] {
	if o := s.Owner(key); o != nil {
		return o
	}
	return s
}

// Set writes key in the nearest frame which owns it, or in s if none does.
func (s *Store[T]) Set(key string, v T) {
	s.Resolve(key).vars[key] = v
}

// SetLocal writes key in s regardless of ancestor ownership.
func (s *Store[T]) SetLocal(key string, v T) {
	s.vars[key] = v
}

// Merge writes every entry of m locally.
func (s *Store[T]) Merge(m map[string]T) {
	for k, v := range m {
		s.vars[k] = v
	}
}

// Flatten returns a single-level snapshot of every visible key, with the
// closest frame winning.
func (s *Store[T]) Flatten() map[string]T {
	r := make(map[string]T)
	for ; s != nil; s = s.parent {
		for k, v := range s.vars {
			if _, ok := r[k]; !ok {
				r[k] = v
			}
		}
	}
	return r
}

// Keys returns the sorted names of every visible key.
func (s *Store[T]) Keys() []string {
	m := s.Flatten()
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
