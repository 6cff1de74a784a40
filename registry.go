package recs

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// poolRegistry owns one type-erased pool per component id. A pool is created
// the first time its type is assigned and is never replaced afterwards.
type poolRegistry struct {
	pools   []anyPool // indexed by ComponentID; nil until first assignment
	version uint64    // bumped whenever a pool is created
}

func (r *poolRegistry) get(id ComponentID) anyPool {
	if int(id) >= len(r.pools) {
		return nil
	}
	return r.pools[id]
}

func (r *poolRegistry) put(id ComponentID, p anyPool) {
	if int(id) >= len(r.pools) {
		r.pools = extendSlice(r.pools, int(id)+1-len(r.pools))
	}
	r.pools[id] = p
	r.version++
}

// each calls fn for every existing pool.
func (r *poolRegistry) each(fn func(id ComponentID, p anyPool)) {
	for id, p := range r.pools {
		if p != nil {
			fn(ComponentID(id), p)
		}
	}
}

// poolAs recovers the concrete pool behind erased. A mismatch means the
// registry routed a type id to the wrong storage, which is a bug in this
// package rather than in the caller, so it is logged and raised as a panic.
func poolAs[T any](w *World, erased anyPool) *Pool[T] {
	p, ok := erased.(*Pool[T])
	if !ok {
		err := fmt.Errorf("%w: want %v, have %v", ErrPoolTypeMismatch, reflect.TypeFor[T](), erased.componentType())
		w.log.Error("internal fault", zap.Error(err))
		panic(err)
	}
	return p
}

// lookupPool returns T's pool without creating it. Neither the type id nor
// the pool is registered when T has never been assigned.
func lookupPool[T any](w *World) (*Pool[T], ComponentID) {
	id, ok := w.components.lookup(reflect.TypeFor[T]())
	if !ok {
		return nil, 0
	}
	erased := w.pools.get(id)
	if erased == nil {
		return nil, id
	}
	return poolAs[T](w, erased), id
}

// ensurePool returns T's pool, creating it on first use.
func ensurePool[T any](w *World) (*Pool[T], ComponentID) {
	t := reflect.TypeFor[T]()
	id := w.components.getCompTypeID(t)
	if erased := w.pools.get(id); erased != nil {
		return poolAs[T](w, erased), id
	}
	p := NewPool[T]()
	w.pools.put(id, p)
	w.log.Debug("pool created",
		zap.Stringer("type", t),
		zap.Uint32("component_id", uint32(id)),
	)
	return p, id
}
