// Package recs provides a sparse-set Entity Component System for Go.
//
// A World hands out generational entity handles and stores every component
// type in its own Pool. Pools are created lazily the first time a type is
// assigned, so component types need no registration and no shared interface.
// Views intersect any number of pools, described by a Cons list of types:
//
//	type Position struct{ X, Y float64 }
//	type Velocity struct{ DX, DY float64 }
//
//	w := recs.NewWorld()
//	e := w.CreateEntity()
//	_ = recs.Assign(w, e, Position{})
//	_ = recs.Assign(w, e, Velocity{DX: 1})
//
//	for e, c := range recs.View[recs.Cons[Position, recs.Cons[Velocity, recs.Nil]]](w) {
//	    pos, vel := c.Head, c.Tail.Head
//	    pos.X += vel.DX
//	    _ = e
//	}
//
// A World is not safe for concurrent use. Independent Worlds share nothing
// and may be driven from different goroutines.
package recs

import (
	"fmt"
	"math"
)

// Entity is a generational handle. ID addresses a slot in the World's entity
// table and Version is the slot's generation at the time the handle was
// issued. A handle whose Version is older than its slot's current generation
// is dead and is rejected by every operation that accepts one.
//
// Versions are 32-bit and wrap after 2^32 destroy/create cycles of the same
// slot, at which point a very old handle could alias a new one. The table
// does not guard against this.
//
// Slots start at version 0, so the zero Entity is a valid handle: it names
// the first entity a World creates. Use InvalidEntity for "no entity".
type Entity struct {
	// ID is the slot index of the entity.
	ID uint32
	// Version is the slot generation the handle was issued for.
	Version uint32
}

// InvalidEntity is a handle that no World ever issues. It is never alive.
var InvalidEntity = Entity{ID: math.MaxUint32}

// IsValid reports whether e is not InvalidEntity. A valid handle may still
// be dead; use World.IsAlive for that.
func (e Entity) IsValid() bool {
	return e.ID != math.MaxUint32
}

// String implements fmt.Stringer.
func (e Entity) String() string {
	return fmt.Sprintf("Entity(%dv%d)", e.ID, e.Version)
}

// entitySlot holds the allocator state of one entity index.
type entitySlot struct {
	mask    bitset // component ids attached to the live occupant
	version uint32 // only ever increases
	alive   bool
}

// entityRegistry issues and recycles entity handles.
type entityRegistry struct {
	slots   []entitySlot
	freeIDs []uint32 // LIFO stack of recycled indices
	alive   int
	version uint64 // bumped on every create and destroy
}

func newEntityRegistry(capacity int) entityRegistry {
	return entityRegistry{
		slots:   make([]entitySlot, 0, capacity),
		freeIDs: make([]uint32, 0, capacity/4),
	}
}

// create returns a fresh handle, reusing the most recently freed index when
// one exists. A reused slot already carries the version bumped by destroy.
func (r *entityRegistry) create() Entity {
	var id uint32
	if last := len(r.freeIDs) - 1; last >= 0 {
		id = r.freeIDs[last]
		r.freeIDs = r.freeIDs[:last]
	} else {
		if uint64(len(r.slots)) >= math.MaxUint32 {
			panic("recs: entity table full")
		}
		id = uint32(len(r.slots))
		r.slots = append(r.slots, entitySlot{})
	}
	s := &r.slots[id]
	s.alive = true
	r.alive++
	r.version++
	return Entity{ID: id, Version: s.version}
}

// destroy frees the slot of e and bumps its version so that e, and every
// copy of it, is dead from now on.
func (r *entityRegistry) destroy(e Entity) error {
	if !r.isAlive(e) {
		return fmt.Errorf("recs: destroy %v: %w", e, ErrStaleEntity)
	}
	s := &r.slots[e.ID]
	s.alive = false
	s.version++
	s.mask.clear()
	r.freeIDs = append(r.freeIDs, e.ID)
	r.alive--
	r.version++
	return nil
}

func (r *entityRegistry) isAlive(e Entity) bool {
	if int(e.ID) >= len(r.slots) {
		return false
	}
	s := &r.slots[e.ID]
	return s.alive && s.version == e.Version
}

// current rebuilds the live handle of index id. The caller guarantees the
// slot is alive.
func (r *entityRegistry) current(id uint32) Entity {
	return Entity{ID: id, Version: r.slots[id].version}
}

// reset frees every live slot, bumping versions so that no handle issued
// before the reset survives it.
func (r *entityRegistry) reset() {
	r.freeIDs = r.freeIDs[:0]
	for i := len(r.slots) - 1; i >= 0; i-- {
		s := &r.slots[i]
		if s.alive {
			s.alive = false
			s.version++
		}
		s.mask.clear()
		r.freeIDs = append(r.freeIDs, uint32(i))
	}
	r.alive = 0
	r.version++
}
