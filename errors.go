package recs

import "errors"

var (
	// ErrDeadEntity is returned when an operation references an entity whose
	// version no longer matches its slot, either because it was destroyed or
	// because it never existed in this World.
	ErrDeadEntity = errors.New("recs: dead entity")

	// ErrStaleEntity is returned by the entity allocator when a destroy targets
	// a slot that is already free or has moved on to a newer version.
	ErrStaleEntity = errors.New("recs: stale entity")

	// ErrPoolTypeMismatch signals that a component id resolved to a pool of a
	// different Go type. It is an internal fault and is raised as a panic.
	ErrPoolTypeMismatch = errors.New("recs: pool type mismatch")

	// ErrViewInvalidated is the panic value used when a pool read by an
	// in-progress iteration is structurally modified.
	ErrViewInvalidated = errors.New("recs: view invalidated by structural mutation")
)
