package recs

import (
	"iter"
	"reflect"
)

// queryPlan caches the pools a list type resolves to. A plan goes stale when
// the World creates a new pool, since a type that had no pool may have one
// now; pools are never replaced, so an existing slot stays valid.
type queryPlan struct {
	types        []reflect.Type
	pools        []anyPool // nil where the type has no pool yet
	poolsVersion uint64
	resolved     bool
}

func (p *queryPlan) isStale(w *World) bool {
	return !p.resolved || p.poolsVersion != w.pools.version
}

func (p *queryPlan) refresh(w *World) {
	for i, t := range p.types {
		p.pools[i] = nil
		if id, ok := w.components.lookup(t); ok {
			p.pools[i] = w.pools.get(id)
		}
	}
	p.poolsVersion = w.pools.version
	p.resolved = true
}

func planFor[L List[L]](w *World) *queryPlan {
	key := reflect.TypeFor[L]()
	plan, ok := w.plans[key]
	if !ok {
		var l L
		types := l.appendTypes(nil)
		plan = &queryPlan{
			types: types,
			pools: make([]anyPool, len(types)),
		}
		w.plans[key] = plan
	}
	if plan.isStale(w) {
		plan.refresh(w)
	}
	return plan
}

// Query steps through every live entity that has all component types of L.
//
// The pool with the fewest entries drives the iteration and every other pool
// is probed for membership. Order is unspecified. A type that has never been
// assigned makes the result empty; querying never creates a pool.
//
// Attaching a listed type to a new entity, detaching one, or destroying an
// entity that has one invalidates the query: the next call to Next panics
// with ErrViewInvalidated. Call Reset to start over after mutating. For a
// query over Nil, creating or destroying any entity invalidates it.
//
// Example:
//
//	q := recs.NewQuery[recs.Cons[Position, recs.Nil]](w)
//	for q.Next() {
//	    q.Get().Head.X++
//	}
type Query[L List[L]] struct {
	world      *World
	plan       *queryPlan
	driver     anyPool // nil for an empty list
	versions   []uint64
	cur        L
	entVersion uint64
	cursor     int
	curEnt     Entity
	empty      bool // some listed type has no pool
}

// NewQuery creates a Query over the component types of L.
func NewQuery[L List[L]](w *World) *Query[L] {
	q := &Query[L]{world: w}
	q.Reset()
	return q
}

// Reset rewinds the query and re-selects its driving pool, picking up pools
// and structural changes made since the last pass.
func (q *Query[L]) Reset() {
	w := q.world
	q.plan = planFor[L](w)
	q.driver = nil
	q.empty = false
	q.cursor = -1
	q.versions = q.versions[:0]
	for _, p := range q.plan.pools {
		if p == nil {
			q.empty = true
			q.versions = append(q.versions, 0)
			continue
		}
		q.versions = append(q.versions, p.structVersion())
		if q.driver == nil || p.size() < q.driver.size() {
			q.driver = p
		}
	}
	q.entVersion = w.entities.version
}

// Next advances to the next matching entity and reports whether there was
// one.
func (q *Query[L]) Next() bool {
	if q.empty {
		return false
	}
	q.checkValid()
	w := q.world
	if q.driver == nil {
		slots := w.entities.slots
		for q.cursor++; q.cursor < len(slots); q.cursor++ {
			if slots[q.cursor].alive {
				q.curEnt = w.entities.current(uint32(q.cursor))
				return true
			}
		}
		return false
	}
	dense := q.driver.dense()
	for q.cursor++; q.cursor < len(dense); q.cursor++ {
		idx := dense[q.cursor]
		if q.matches(idx) {
			q.curEnt = w.entities.current(idx)
			q.cur = q.cur.build(w, q.plan.pools, idx)
			return true
		}
	}
	return false
}

// Entity returns the current entity. Only valid after Next returned true.
func (q *Query[L]) Entity() Entity {
	return q.curEnt
}

// Get returns the components of the current entity. Only valid after Next
// returned true.
func (q *Query[L]) Get() L {
	return q.cur
}

// Count returns the number of matching entities and rewinds the query.
func (q *Query[L]) Count() int {
	q.Reset()
	n := 0
	for q.Next() {
		n++
	}
	q.Reset()
	return n
}

// Entities collects the matching entities into a new slice and rewinds the
// query.
func (q *Query[L]) Entities() []Entity {
	q.Reset()
	var ents []Entity
	for q.Next() {
		ents = append(ents, q.curEnt)
	}
	q.Reset()
	return ents
}

func (q *Query[L]) matches(idx uint32) bool {
	for _, p := range q.plan.pools {
		if p != q.driver && !p.contains(idx) {
			return false
		}
	}
	return true
}

func (q *Query[L]) checkValid() {
	if q.driver == nil {
		if q.entVersion != q.world.entities.version {
			panic(ErrViewInvalidated)
		}
		return
	}
	for i, p := range q.plan.pools {
		if p.structVersion() != q.versions[i] {
			panic(ErrViewInvalidated)
		}
	}
}

// View returns a sequence over every live entity that has all component
// types of L, paired with pointers to those components.
//
// Each range over the sequence starts a fresh pass. The invalidation rules of
// Query apply while a pass is running.
func View[L List[L]](w *World) iter.Seq2[Entity, L] {
	return func(yield func(Entity, L) bool) {
		q := NewQuery[L](w)
		for q.Next() {
			if !yield(q.curEnt, q.cur) {
				return
			}
		}
	}
}
