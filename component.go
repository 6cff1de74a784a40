package recs

import "reflect"

// ComponentID is the per-World identifier of a component type. Ids are
// assigned in order of first use, starting at 0, and are never reused.
type ComponentID uint32

// componentRegistry maps Go types to ComponentIDs. It only records identity;
// storage lives in the poolRegistry.
type componentRegistry struct {
	compTypeMap  map[reflect.Type]ComponentID
	compIDToType []reflect.Type
}

func newComponentRegistry() componentRegistry {
	return componentRegistry{
		compTypeMap:  make(map[reflect.Type]ComponentID, 16),
		compIDToType: make([]reflect.Type, 0, 16),
	}
}

// getCompTypeID registers or fetches the ComponentID for t.
func (r *componentRegistry) getCompTypeID(t reflect.Type) ComponentID {
	if id, ok := r.compTypeMap[t]; ok {
		return id
	}
	id := ComponentID(len(r.compIDToType))
	r.compTypeMap[t] = id
	r.compIDToType = append(r.compIDToType, t)
	return id
}

// lookup returns the ComponentID of t without registering it.
func (r *componentRegistry) lookup(t reflect.Type) (ComponentID, bool) {
	id, ok := r.compTypeMap[t]
	return id, ok
}

// typeOf returns the Go type registered under id.
func (r *componentRegistry) typeOf(id ComponentID) reflect.Type {
	return r.compIDToType[id]
}

// Defaulter is implemented by component types whose default value is not
// their zero value. AssignDefault is the only operation that consults it.
type Defaulter[T any] interface {
	Default() T
}

// defaultOf returns T's default value.
func defaultOf[T any]() T {
	var zero T
	if d, ok := any(zero).(Defaulter[T]); ok {
		return d.Default()
	}
	if d, ok := any(&zero).(Defaulter[T]); ok {
		return d.Default()
	}
	return zero
}
