package recs

import (
	"iter"
	"reflect"
	"slices"
)

// Pool is the storage of one component type: a sparse set mapping entity
// indices to a densely packed array of values.
//
// Pools address entities by index only. They know nothing about versions;
// the World guarantees that a pool never holds an entry for a dead entity.
//
// Removal swaps the last dense element into the freed position, so dense
// order is unspecified and changes on removal.
type Pool[T any] struct {
	sparse   []uint32 // entity index -> dense position + 1; 0 when absent
	entities []uint32 // dense owner index of values[i]
	values   []T
	version  uint64 // bumped on every structural change
}

// NewPool returns an empty pool.
func NewPool[T any]() *Pool[T] {
	return &Pool[T]{}
}

// Insert stores v for index. When index already has a value it is replaced
// in place and the previous value is returned with true.
func (p *Pool[T]) Insert(index uint32, v T) (T, bool) {
	if pos, ok := p.position(index); ok {
		old := p.values[pos]
		p.values[pos] = v
		return old, true
	}
	if int(index) >= len(p.sparse) {
		p.sparse = extendSlice(p.sparse, int(index)+1-len(p.sparse))
	}
	p.entities = append(p.entities, index)
	p.values = append(p.values, v)
	p.sparse[index] = uint32(len(p.entities))
	p.version++
	var zero T
	return zero, false
}

// Remove deletes the value of index and returns it. It reports false, and
// changes nothing, when index has no value.
func (p *Pool[T]) Remove(index uint32) (T, bool) {
	var zero T
	pos, ok := p.position(index)
	if !ok {
		return zero, false
	}
	removed := p.values[pos]
	last := len(p.entities) - 1
	if pos < last {
		moved := p.entities[last]
		p.entities[pos] = moved
		p.values[pos] = p.values[last]
		p.sparse[moved] = uint32(pos + 1)
	}
	p.values[last] = zero
	p.entities = p.entities[:last]
	p.values = p.values[:last]
	p.sparse[index] = 0
	p.version++
	return removed, true
}

// Get returns a copy of the value of index.
func (p *Pool[T]) Get(index uint32) (T, bool) {
	if pos, ok := p.position(index); ok {
		return p.values[pos], true
	}
	var zero T
	return zero, false
}

// GetMut returns a pointer to the value of index, or nil. The pointer is
// valid until the next structural change of the pool.
func (p *Pool[T]) GetMut(index uint32) *T {
	if pos, ok := p.position(index); ok {
		return &p.values[pos]
	}
	return nil
}

// Contains reports whether index has a value.
func (p *Pool[T]) Contains(index uint32) bool {
	_, ok := p.position(index)
	return ok
}

// Len returns the number of stored values.
func (p *Pool[T]) Len() int {
	return len(p.entities)
}

// Entities returns a copy of the dense list of owner indices.
func (p *Pool[T]) Entities() []uint32 {
	return slices.Clone(p.entities)
}

// All iterates over (index, value) pairs in dense order. Each call starts a
// fresh pass. Inserting a new index into or removing from the pool while the
// iteration is running panics with ErrViewInvalidated.
func (p *Pool[T]) All() iter.Seq2[uint32, *T] {
	return func(yield func(uint32, *T) bool) {
		v := p.version
		for i := 0; i < len(p.entities); i++ {
			if !yield(p.entities[i], &p.values[i]) {
				return
			}
			if p.version != v {
				panic(ErrViewInvalidated)
			}
		}
	}
}

// Clear removes every value, keeping allocated capacity.
func (p *Pool[T]) Clear() {
	for _, idx := range p.entities {
		p.sparse[idx] = 0
	}
	clear(p.values)
	p.entities = p.entities[:0]
	p.values = p.values[:0]
	p.version++
}

func (p *Pool[T]) position(index uint32) (int, bool) {
	if int(index) >= len(p.sparse) {
		return 0, false
	}
	pos := p.sparse[index]
	if pos == 0 {
		return 0, false
	}
	return int(pos - 1), true
}

// PoolReader is the read-only surface of a pool owned by a World. Values may
// be modified through the pointers it hands out, but entries can only be
// attached or detached through the World, which keeps entity bookkeeping in
// step with the pool.
type PoolReader[T any] struct {
	pool *Pool[T]
}

// Get returns a copy of the value of index.
func (r PoolReader[T]) Get(index uint32) (T, bool) { return r.pool.Get(index) }

// Contains reports whether index has a value.
func (r PoolReader[T]) Contains(index uint32) bool { return r.pool.Contains(index) }

// Len returns the number of stored values.
func (r PoolReader[T]) Len() int { return r.pool.Len() }

// Entities returns a copy of the dense list of owner indices.
func (r PoolReader[T]) Entities() []uint32 { return r.pool.Entities() }

// All iterates over (index, value) pairs in dense order, with the same
// invalidation rule as Pool.All.
func (r PoolReader[T]) All() iter.Seq2[uint32, *T] { return r.pool.All() }

// anyPool is the type-erased surface the World needs to manage pools it
// cannot name statically: lifecycle, membership probes and dense iteration.
type anyPool interface {
	componentType() reflect.Type
	contains(index uint32) bool
	remove(index uint32) bool
	dense() []uint32
	size() int
	structVersion() uint64
	reset()
}

var _ anyPool = (*Pool[struct{}])(nil)

func (p *Pool[T]) componentType() reflect.Type { return reflect.TypeFor[T]() }
func (p *Pool[T]) contains(index uint32) bool  { return p.Contains(index) }
func (p *Pool[T]) dense() []uint32             { return p.entities }
func (p *Pool[T]) size() int                   { return len(p.entities) }
func (p *Pool[T]) structVersion() uint64       { return p.version }
func (p *Pool[T]) reset()                      { p.Clear() }

func (p *Pool[T]) remove(index uint32) bool {
	_, ok := p.Remove(index)
	return ok
}
