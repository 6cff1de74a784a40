package recs

import "errors"

// Builder creates entities that start out with a component of type T and
// gives direct access to T on any entity. It holds on to T's pool, so it
// skips the type lookup that the package-level functions pay on each call.
type Builder[T any] struct {
	world  *World
	pool   *Pool[T]
	compID ComponentID
}

// NewBuilder returns a Builder for T, creating T's pool if needed.
func NewBuilder[T any](w *World) *Builder[T] {
	p, id := ensurePool[T](w)
	return &Builder[T]{world: w, pool: p, compID: id}
}

// NewEntity creates an entity carrying T's default value.
func (b *Builder[T]) NewEntity() Entity {
	return b.NewEntityWithValue(defaultOf[T]())
}

// NewEntityWithValue creates an entity carrying comp.
func (b *Builder[T]) NewEntityWithValue(comp T) Entity {
	e := b.world.entities.create()
	b.attach(e, comp)
	return e
}

// NewEntities creates count entities carrying T's default value.
func (b *Builder[T]) NewEntities(count int) []Entity {
	return b.NewEntitiesWithValueSet(count, defaultOf[T]())
}

// NewEntitiesWithValueSet creates count entities, each carrying a copy of
// comp.
func (b *Builder[T]) NewEntitiesWithValueSet(count int, comp T) []Entity {
	if count <= 0 {
		return nil
	}
	ents := make([]Entity, count)
	for i := range ents {
		e := b.world.entities.create()
		b.attach(e, comp)
		ents[i] = e
	}
	return ents
}

// Get returns a pointer to e's T, or nil.
func (b *Builder[T]) Get(e Entity) *T {
	if !b.world.entities.isAlive(e) {
		return nil
	}
	return b.pool.GetMut(e.ID)
}

// Set attaches or overwrites e's T.
func (b *Builder[T]) Set(e Entity, comp T) error {
	if err := b.world.checkAlive("set", e); err != nil {
		return err
	}
	b.attach(e, comp)
	return nil
}

// SetBatch sets comp on every entity of ents. Dead entities are skipped and
// reported together in the returned error.
func (b *Builder[T]) SetBatch(ents []Entity, comp T) error {
	var errs []error
	for _, e := range ents {
		if err := b.Set(e, comp); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (b *Builder[T]) attach(e Entity, comp T) {
	b.pool.Insert(e.ID, comp)
	b.world.entities.slots[e.ID].mask.set(b.compID)
}
