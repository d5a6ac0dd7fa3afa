package ecs

import (
	"iter"
	"log/slog"

	"github.com/kamstrup/intmap"
)

const (
	storeBlockSize = 64
)

// AnyStore is the type-erased view of a Store that the Catalog keeps for every kind.
type AnyStore interface {
	Kind() Kind
	Len() int
	Contains(e Entity) bool
	Entities() iter.Seq[Entity]
	// Value returns a pointer to the component of e boxed in an interface.
	Value(e Entity) (any, bool)
	Stats() StoreStats

	removeEntity(e Entity) bool
	maybeCompact()
	hold(n int)
}

// StoreStats describes the occupancy of a single store.
type StoreStats struct {
	Kind         string
	Len          int
	Slots        int
	Replacements uint64
}

// Store owns every live component of type T, keyed by entity.
// Components are kept in blocks so pointers handed out by Get stay valid while
// other entries are appended. Iteration follows insertion order.
type Store[T any] struct {
	kind    Kind
	catalog *Catalog

	blocks []*[storeBlockSize]T
	owners []Entity // slot -> entity, Nil for a hole
	index  *intmap.Map[Entity, int]
	holes  int

	// queued structural ops for this store, see Catalog.enqueue
	pending int
	// iterations over a standalone store, compaction waits for zero
	depth int

	replacements uint64
}

// NewStore creates a standalone store that does not belong to any catalog.
func NewStore[T any]() *Store[T] {
	return newStore[T](nil)
}

func newStore[T any](catalog *Catalog) *Store[T] {
	return &Store[T]{
		kind:    KindOf[T](),
		catalog: catalog,
		index:   intmap.New[Entity, int](64),
	}
}

func (s *Store[T]) Kind() Kind {
	return s.kind
}

// Len returns the number of entities holding a T.
func (s *Store[T]) Len() int {
	return s.index.Len()
}

// Contains reports whether e holds a T.
func (s *Store[T]) Contains(e Entity) bool {
	return s.index.Has(e)
}

// Add stores a copy of value for e. An existing value is replaced in place and
// keeps its position in iteration order.
//
// Adding to an id the owning registry never issued is a no-op. New entries
// requested while the catalog is iterating are applied when the query returns.
func (s *Store[T]) Add(e Entity, value T) {
	if !s.valid(e) {
		s.logger().Warn("add to unissued entity ignored", "entity", uint64(e), "kind", s.kind.String())
		return
	}

	if s.deferring() && (s.pending > 0 || !s.index.Has(e)) {
		s.queue(opAdd, e, func() { s.Add(e, value) })
		return
	}

	if i, ok := s.index.Get(e); ok {
		*s.at(i) = value
		s.replacements++
		s.logger().Debug("component replaced", "entity", uint64(e), "kind", s.kind.String())
		return
	}

	s.insert(e, value)
}

// Get returns a pointer to the component held by e.
// The pointer stays valid until the next structural change to this store.
func (s *Store[T]) Get(e Entity) (*T, error) {
	if i, ok := s.index.Get(e); ok {
		return s.at(i), nil
	}
	if !s.valid(e) {
		return nil, &InvalidEntityError{Entity: e, Kind: s.kind}
	}
	return nil, &ComponentNotFoundError{Entity: e, Kind: s.kind}
}

// Remove erases the component held by e, if any.
func (s *Store[T]) Remove(e Entity) {
	if s.deferring() {
		if s.pending == 0 && !s.index.Has(e) {
			return
		}
		s.queue(opRemove, e, func() { s.removeEntity(e) })
		return
	}
	s.removeEntity(e)
}

// Entities iterates the entities holding a T in insertion order.
func (s *Store[T]) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for e := range s.All() {
			if !yield(e) {
				return
			}
		}
	}
}

// All iterates entities and their components in insertion order.
// Entries added during iteration are not visited.
func (s *Store[T]) All() iter.Seq2[Entity, *T] {
	return func(yield func(Entity, *T) bool) {
		s.lock()
		defer s.unlock()

		n := len(s.owners)
		for i := 0; i < n; i++ {
			owner := s.owners[i]
			if owner == Nil {
				continue
			}
			if !yield(owner, s.at(i)) {
				return
			}
		}
	}
}

// Value implements AnyStore.
func (s *Store[T]) Value(e Entity) (any, bool) {
	ptr, err := s.Get(e)
	if err != nil {
		return nil, false
	}
	return ptr, true
}

// Replacements returns how many Add calls overwrote an existing value.
func (s *Store[T]) Replacements() uint64 {
	return s.replacements
}

func (s *Store[T]) Stats() StoreStats {
	return StoreStats{
		Kind:         s.kind.String(),
		Len:          s.Len(),
		Slots:        len(s.owners),
		Replacements: s.replacements,
	}
}

func (s *Store[T]) lookup(e Entity) (*T, bool) {
	i, ok := s.index.Get(e)
	if !ok {
		return nil, false
	}
	return s.at(i), true
}

func (s *Store[T]) at(i int) *T {
	return &s.blocks[i/storeBlockSize][i%storeBlockSize]
}

func (s *Store[T]) insert(e Entity, value T) {
	i := len(s.owners)
	if i/storeBlockSize >= len(s.blocks) {
		s.blocks = append(s.blocks, new([storeBlockSize]T))
	}
	*s.at(i) = value
	s.owners = append(s.owners, e)
	s.index.Put(e, i)
}

func (s *Store[T]) removeEntity(e Entity) bool {
	i, ok := s.index.Get(e)
	if !ok {
		return false
	}

	s.index.Del(e)
	var zero T
	*s.at(i) = zero
	s.owners[i] = Nil
	s.holes++
	s.maybeCompact()
	return true
}

func (s *Store[T]) maybeCompact() {
	if s.canCompact() && s.holes*2 > len(s.owners) {
		s.compact()
	}
}

// compact closes the holes left by removals while keeping insertion order.
func (s *Store[T]) compact() {
	write := 0
	for read, owner := range s.owners {
		if owner == Nil {
			continue
		}
		if read != write {
			*s.at(write) = *s.at(read)
			s.owners[write] = owner
			s.index.Put(owner, write)
		}
		write++
	}

	var zero T
	for i := write; i < len(s.owners); i++ {
		*s.at(i) = zero
	}

	keep := (write + storeBlockSize - 1) / storeBlockSize
	for i := keep; i < len(s.blocks); i++ {
		s.blocks[i] = nil
	}
	s.blocks = s.blocks[:keep]
	s.owners = s.owners[:write]
	s.holes = 0
}

func (s *Store[T]) valid(e Entity) bool {
	if e == Nil {
		return false
	}
	if s.catalog == nil {
		return true
	}
	return s.catalog.issued(e)
}

func (s *Store[T]) deferring() bool {
	return s.catalog != nil && s.catalog.Iterating()
}

func (s *Store[T]) canCompact() bool {
	if s.depth > 0 {
		return false
	}
	return s.catalog == nil || !s.catalog.Iterating()
}

// hold adjusts the queued op count for changes queued outside the store, such
// as a destroy that will sweep it.
func (s *Store[T]) hold(n int) {
	s.pending += n
}

func (s *Store[T]) queue(op opKind, e Entity, apply func()) {
	s.pending++
	s.catalog.enqueue(command{
		op:     op,
		entity: e,
		kind:   s.kind,
		apply: func() {
			s.pending--
			apply()
		},
	})
}

func (s *Store[T]) lock() {
	if s.catalog != nil {
		s.catalog.begin()
		return
	}
	s.depth++
}

func (s *Store[T]) unlock() {
	if s.catalog != nil {
		s.catalog.end()
		return
	}
	s.depth--
	s.maybeCompact()
}

func (s *Store[T]) logger() *slog.Logger {
	if s.catalog == nil {
		return discardLogger
	}
	return s.catalog.log
}
