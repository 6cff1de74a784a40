package recs

import "reflect"

// List is a type-level list of component types, built from Cons cells and
// terminated by Nil. A view over Position and Velocity is written as
//
//	recs.Cons[Position, recs.Cons[Velocity, recs.Nil]]
//
// There is no upper bound on the length of a list: every operation over a
// list is one rule for Cons (handle the head, then delegate to the tail) and
// one rule for Nil (stop). The interface is sealed; only Cons and Nil
// implement it.
type List[L any] interface {
	// appendTypes appends the component types of the list, head first.
	appendTypes(dst []reflect.Type) []reflect.Type
	// build binds the list to the components of entity index, one pool per
	// position, in the order appendTypes reported them.
	build(w *World, pools []anyPool, index uint32) L
}

// Nil is the empty component list. A view over Nil yields every live entity.
type Nil struct{}

func (Nil) appendTypes(dst []reflect.Type) []reflect.Type { return dst }

func (Nil) build(*World, []anyPool, uint32) Nil { return Nil{} }

// Cons prepends component type H to list T. When yielded by a view, Head
// points at the entity's H and Tail holds the rest of the components.
type Cons[H any, T List[T]] struct {
	Head *H
	Tail T
}

func (Cons[H, T]) appendTypes(dst []reflect.Type) []reflect.Type {
	var tail T
	return tail.appendTypes(append(dst, reflect.TypeFor[H]()))
}

func (Cons[H, T]) build(w *World, pools []anyPool, index uint32) Cons[H, T] {
	var tail T
	return Cons[H, T]{
		Head: poolAs[H](w, pools[0]).GetMut(index),
		Tail: tail.build(w, pools[1:], index),
	}
}
