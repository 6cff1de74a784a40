package recs

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	// ErrResourceExists is returned when a resource of the same type is
	// already stored.
	ErrResourceExists = errors.New("recs: resource already exists")
	// ErrNilResource is returned when adding a nil resource.
	ErrNilResource = errors.New("recs: nil resource")
)

// Resources holds World-wide singleton data, at most one value per type,
// such as configuration or timing state shared by systems. Slots freed by
// Remove are reused by later adds.
type Resources struct {
	items   []any
	types   map[reflect.Type]int
	freeIDs []int
}

// Add stores res and returns its slot id.
func (r *Resources) Add(res any) (int, error) {
	if res == nil {
		return -1, ErrNilResource
	}
	t := reflect.TypeOf(res)
	if r.types == nil {
		r.types = make(map[reflect.Type]int)
	}
	if _, ok := r.types[t]; ok {
		return -1, fmt.Errorf("recs: add %v: %w", t, ErrResourceExists)
	}
	var id int
	if last := len(r.freeIDs) - 1; last >= 0 {
		id = r.freeIDs[last]
		r.freeIDs = r.freeIDs[:last]
		r.items[id] = res
	} else {
		r.items = append(r.items, res)
		id = len(r.items) - 1
	}
	r.types[t] = id
	return id, nil
}

// Has reports whether slot id holds a resource.
func (r *Resources) Has(id int) bool {
	return id >= 0 && id < len(r.items) && r.items[id] != nil
}

// Get returns the resource in slot id, or nil.
func (r *Resources) Get(id int) any {
	if !r.Has(id) {
		return nil
	}
	return r.items[id]
}

// Remove frees slot id. Removing an empty slot does nothing.
func (r *Resources) Remove(id int) {
	if !r.Has(id) {
		return
	}
	delete(r.types, reflect.TypeOf(r.items[id]))
	r.items[id] = nil
	r.freeIDs = append(r.freeIDs, id)
}

// Len returns the number of stored resources.
func (r *Resources) Len() int {
	return len(r.types)
}

// Clear removes every resource.
func (r *Resources) Clear() {
	clear(r.items)
	r.items = r.items[:0]
	clear(r.types)
	r.freeIDs = r.freeIDs[:0]
}

// AddResource stores res under type *T.
func AddResource[T any](r *Resources, res *T) (int, error) {
	if res == nil {
		return -1, ErrNilResource
	}
	return r.Add(res)
}

// GetResource returns the stored *T and its slot id, or nil and -1.
func GetResource[T any](r *Resources) (*T, int) {
	if id, ok := r.types[reflect.TypeFor[*T]()]; ok {
		return r.items[id].(*T), id
	}
	return nil, -1
}

// HasResource reports whether a *T is stored.
func HasResource[T any](r *Resources) bool {
	_, ok := r.types[reflect.TypeFor[*T]()]
	return ok
}

// RemoveResource removes the stored *T, if any.
func RemoveResource[T any](r *Resources) {
	if id, ok := r.types[reflect.TypeFor[*T]()]; ok {
		r.Remove(id)
	}
}
