package recs

// Assign attaches val to e as its component of type T, creating T's pool on
// first use. An existing T on e is overwritten in place.
//
// Returns ErrDeadEntity, and changes nothing, when e is not alive.
func Assign[T any](w *World, e Entity, val T) error {
	if err := w.checkAlive("assign", e); err != nil {
		return err
	}
	p, id := ensurePool[T](w)
	p.Insert(e.ID, val)
	w.entities.slots[e.ID].mask.set(id)
	return nil
}

// AssignDefault attaches T's default value to e. The default is the zero
// value unless T implements Defaulter[T].
func AssignDefault[T any](w *World, e Entity) error {
	return Assign(w, e, defaultOf[T]())
}

// Remove detaches e's component of type T and returns it. It reports false
// when e is dead or has no T.
func Remove[T any](w *World, e Entity) (T, bool) {
	var zero T
	if !w.entities.isAlive(e) {
		return zero, false
	}
	p, id := lookupPool[T](w)
	if p == nil {
		return zero, false
	}
	val, ok := p.Remove(e.ID)
	if ok {
		w.entities.slots[e.ID].mask.unset(id)
	}
	return val, ok
}

// Get returns a copy of e's component of type T. Use GetMut to modify the
// stored value.
func Get[T any](w *World, e Entity) (T, bool) {
	var zero T
	if !w.entities.isAlive(e) {
		return zero, false
	}
	p, _ := lookupPool[T](w)
	if p == nil {
		return zero, false
	}
	return p.Get(e.ID)
}

// GetMut returns a pointer to e's component of type T, or nil when e is dead
// or has no T. The pointer stays valid until T's pool is structurally
// changed (a T is attached to a new entity or detached from any entity).
func GetMut[T any](w *World, e Entity) *T {
	if !w.entities.isAlive(e) {
		return nil
	}
	p, _ := lookupPool[T](w)
	if p == nil {
		return nil
	}
	return p.GetMut(e.ID)
}

// Has reports whether e is alive and has a component of type T.
func Has[T any](w *World, e Entity) bool {
	if !w.entities.isAlive(e) {
		return false
	}
	p, _ := lookupPool[T](w)
	return p != nil && p.Contains(e.ID)
}

// Count returns the number of entities with a component of type T.
func Count[T any](w *World) int {
	p, _ := lookupPool[T](w)
	if p == nil {
		return 0
	}
	return p.Len()
}

// PoolOf returns a read-only view of T's pool for bulk reads. It reports
// false when no T was ever assigned.
func PoolOf[T any](w *World) (PoolReader[T], bool) {
	p, _ := lookupPool[T](w)
	if p == nil {
		return PoolReader[T]{}, false
	}
	return PoolReader[T]{pool: p}, true
}
