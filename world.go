package recs

import (
	"fmt"
	"reflect"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultInitialCapacity = 1024

// World owns the entity table and every component pool. It is the single
// entry point of the package; all component operations take a *World.
type World struct {
	log        *zap.Logger
	resources  *Resources
	plans      map[reflect.Type]*queryPlan // resolved view plans per list type
	components componentRegistry
	pools      poolRegistry
	entities   entityRegistry
	id         uuid.UUID
}

type worldConfig struct {
	logger          *zap.Logger
	initialCapacity int
}

// Option configures a World.
type Option func(*worldConfig)

// WithInitialCapacity reserves room for n entities. The entity table still
// grows past n on demand.
func WithInitialCapacity(n int) Option {
	return func(c *worldConfig) {
		if n >= 0 {
			c.initialCapacity = n
		}
	}
}

// WithLogger sets the logger used for pool lifecycle and internal faults.
// The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(c *worldConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewWorld creates an empty World.
func NewWorld(opts ...Option) *World {
	cfg := worldConfig{
		logger:          zap.NewNop(),
		initialCapacity: defaultInitialCapacity,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	id := uuid.New()
	return &World{
		id:         id,
		log:        cfg.logger.With(zap.String("world", id.String())),
		resources:  &Resources{},
		plans:      make(map[reflect.Type]*queryPlan),
		components: newComponentRegistry(),
		entities:   newEntityRegistry(cfg.initialCapacity),
	}
}

// ID returns the unique identifier of this World instance.
func (w *World) ID() uuid.UUID {
	return w.id
}

// Resources returns the World's singleton data store.
func (w *World) Resources() *Resources {
	return w.resources
}

// CreateEntity creates a new entity with no components.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// CreateEntities creates count entities with no components and returns them.
func (w *World) CreateEntities(count int) []Entity {
	if count <= 0 {
		return nil
	}
	ents := make([]Entity, count)
	for i := range ents {
		ents[i] = w.entities.create()
	}
	return ents
}

// IsAlive reports whether e refers to a live entity of this World.
func (w *World) IsAlive(e Entity) bool {
	return w.entities.isAlive(e)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.entities.alive
}

// DestroyEntity removes every component of e and frees its slot. The slot
// is recycled by a later CreateEntity under a newer version. Destroying a
// dead entity returns ErrDeadEntity and changes nothing.
func (w *World) DestroyEntity(e Entity) error {
	if !w.entities.isAlive(e) {
		return fmt.Errorf("recs: destroy %v: %w", e, ErrDeadEntity)
	}
	w.entities.slots[e.ID].mask.each(func(id ComponentID) {
		w.pools.get(id).remove(e.ID)
	})
	return w.entities.destroy(e)
}

// Clear destroys every entity and empties every pool. Component types and
// their pools stay registered.
func (w *World) Clear() {
	w.entities.reset()
	w.pools.each(func(_ ComponentID, p anyPool) {
		p.reset()
	})
	w.log.Debug("world cleared")
}

// checkAlive wraps ErrDeadEntity for op when e is not alive.
func (w *World) checkAlive(op string, e Entity) error {
	if w.entities.isAlive(e) {
		return nil
	}
	return fmt.Errorf("recs: %s %v: %w", op, e, ErrDeadEntity)
}
