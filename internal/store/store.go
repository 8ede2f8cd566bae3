// Package store holds the in-memory keyed collection shared by every list exercise.
package store

import (
	"fmt"
	"sync"

	"labkit/internal/errors"
	"labkit/internal/logging"
)

// Option configures a Store.
type Option[K comparable, V any] func(*Store[K, V])

// WithValidator rejects records failing fn before they are stored.
func WithValidator[K comparable, V any](fn func(V) error) Option[K, V] {
	return func(s *Store[K, V]) { s.validate = fn }
}

// WithSequence assigns ids from a counter starting at 1. assign must return
// the record with its id set to the given value.
func WithSequence[K comparable, V any](assign func(v V, id int64) V) Option[K, V] {
	return func(s *Store[K, V]) { s.assign = assign }
}

// WithClone copies records on the way in and out so callers never share
// mutable state (slices, maps) with the store.
func WithClone[K comparable, V any](fn func(V) V) Option[K, V] {
	return func(s *Store[K, V]) { s.clone = fn }
}

// WithDuplicateMessage sets the user-facing message for duplicate keys.
func WithDuplicateMessage[K comparable, V any](msg string) Option[K, V] {
	return func(s *Store[K, V]) { s.duplicateMsg = msg }
}

// Store is an insertion-ordered collection keyed by keyOf(record).
// It is safe for concurrent use.
type Store[K comparable, V any] struct {
	mu           sync.RWMutex
	resource     string
	keyOf        func(V) K
	validate     func(V) error
	assign       func(V, int64) V
	clone        func(V) V
	duplicateMsg string

	items map[K]V
	order []K
	seq   int64
}

// New creates an empty store. resource names the record kind in errors.
func New[K comparable, V any](resource string, keyOf func(V) K, opts ...Option[K, V]) *Store[K, V] {
	s := &Store[K, V]{
		resource: resource,
		keyOf:    keyOf,
		items:    make(map[K]V),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add inserts a record at the end. With a sequence configured the record
// gets the next id; the counter only advances when the insert succeeds.
func (s *Store[K, V]) Add(v V) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(v)
}

func (s *Store[K, V]) add(v V) (V, error) {
	if s.assign != nil {
		v = s.assign(v, s.seq+1)
	}
	if err := s.check(v); err != nil {
		var zero V
		return zero, err
	}

	k := s.keyOf(v)
	if _, exists := s.items[k]; exists {
		var zero V
		return zero, errors.NewDuplicateKeyError(s.resource, fmt.Sprint(k), s.duplicateMsg)
	}

	if s.assign != nil {
		s.seq++
	}
	s.items[k] = s.copy(v)
	s.order = append(s.order, k)
	logging.Debugf("store: %s %v added (%d total)\n", s.resource, k, len(s.order))
	return s.copy(v), nil
}

// Update replaces the record at k with patch(current). The patch may not
// change the key. On any error the store is left unchanged.
func (s *Store[K, V]) Update(k K, patch func(V) (V, error)) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[k]
	if !ok {
		var zero V
		return zero, errors.NewNotFoundError(s.resource, fmt.Sprint(k))
	}
	next, err := patch(s.copy(current))
	if err != nil {
		var zero V
		return zero, err
	}
	return s.replace(k, next)
}

// Upsert patches the record at k, or inserts create() when k is absent,
// under one lock.
func (s *Store[K, V]) Upsert(k K, create func() V, patch func(V) (V, error)) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[k]
	if !ok {
		return s.add(create())
	}
	next, err := patch(s.copy(current))
	if err != nil {
		var zero V
		return zero, err
	}
	return s.replace(k, next)
}

// UpdateOrRemove patches the record at k. When patch returns keep false the
// record is deleted and the patched value is returned. NotFound when absent.
func (s *Store[K, V]) UpdateOrRemove(k K, patch func(V) (next V, keep bool, err error)) (V, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var zero V
	current, ok := s.items[k]
	if !ok {
		return zero, errors.NewNotFoundError(s.resource, fmt.Sprint(k))
	}
	next, keep, err := patch(s.copy(current))
	if err != nil {
		return zero, err
	}
	if !keep {
		s.remove(k)
		return next, nil
	}
	return s.replace(k, next)
}

func (s *Store[K, V]) replace(k K, next V) (V, error) {
	var zero V
	if s.keyOf(next) != k {
		return zero, errors.NewInvalidInputError("id", s.keyOf(next), fmt.Sprintf("%s id cannot change", s.resource))
	}
	if err := s.check(next); err != nil {
		return zero, err
	}

	s.items[k] = s.copy(next)
	logging.Debugf("store: %s %v updated\n", s.resource, k)
	return s.copy(next), nil
}

// Toggle applies flip to the record at k; NotFound when absent.
func (s *Store[K, V]) Toggle(k K, flip func(V) V) (V, error) {
	return s.Update(k, func(v V) (V, error) { return flip(v), nil })
}

// Remove deletes the record at k and reports whether it existed.
// Removing a missing key is a no-op.
func (s *Store[K, V]) Remove(k K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remove(k)
}

func (s *Store[K, V]) remove(k K) bool {
	if _, ok := s.items[k]; !ok {
		return false
	}
	delete(s.items, k)
	for i, key := range s.order {
		if key == k {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	logging.Debugf("store: %s %v removed (%d total)\n", s.resource, k, len(s.order))
	return true
}

// Get returns the record at k.
func (s *Store[K, V]) Get(k K) (V, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.items[k]
	if !ok {
		return v, false
	}
	return s.copy(v), true
}

// Has reports whether k is present.
func (s *Store[K, V]) Has(k K) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.items[k]
	return ok
}

// All returns a snapshot of every record in insertion order.
func (s *Store[K, V]) All() []V {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]V, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.copy(s.items[k]))
	}
	return out
}

// Keys returns the keys in insertion order.
func (s *Store[K, V]) Keys() []K {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]K, len(s.order))
	copy(out, s.order)
	return out
}

// Len returns the number of records.
func (s *Store[K, V]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.order)
}

// Clear removes every record but keeps the id sequence running.
func (s *Store[K, V]) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[K]V)
	s.order = nil
}

// Reset removes every record and restarts the id sequence at 1.
func (s *Store[K, V]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make(map[K]V)
	s.order = nil
	s.seq = 0
}

// NextID is the id the next sequenced Add will receive.
func (s *Store[K, V]) NextID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.seq + 1
}

func (s *Store[K, V]) check(v V) error {
	if s.validate == nil {
		return nil
	}
	return s.validate(v)
}

func (s *Store[K, V]) copy(v V) V {
	if s.clone == nil {
		return v
	}
	return s.clone(v)
}
