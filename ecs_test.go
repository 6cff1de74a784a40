package recs_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edwinsyarief/recs"
)

// --- Test Components ---
type Position struct{ X, Y float32 }
type Velocity struct{ VX, VY float32 }
type Health struct{ Current, Max int }
type Tag struct{}

// Armor has a non-zero default.
type Armor struct{ Value int }

func (Armor) Default() Armor { return Armor{Value: 10} }

// Shield declares its default on the pointer receiver.
type Shield struct{ Charge int }

func (*Shield) Default() Shield { return Shield{Charge: 3} }

func hasPool[T any](w *recs.World) bool {
	_, ok := recs.PoolOf[T](w)
	return ok
}

func TestCreateEntity(t *testing.T) {
	w := recs.NewWorld()
	e1 := w.CreateEntity()
	e2 := w.CreateEntity()

	assert.Equal(t, recs.Entity{ID: 0, Version: 0}, e1)
	assert.Equal(t, recs.Entity{ID: 1, Version: 0}, e2)
	assert.True(t, w.IsAlive(e1))
	assert.Equal(t, 2, w.Len())

	ents := w.CreateEntities(3)
	assert.Len(t, ents, 3)
	assert.Equal(t, 5, w.Len())
	assert.Nil(t, w.CreateEntities(0))
}

func TestWorldsAreIndependent(t *testing.T) {
	a := recs.NewWorld()
	b := recs.NewWorld()
	assert.NotEqual(t, a.ID(), b.ID())

	e := a.CreateEntity()
	require.NoError(t, recs.Assign(a, e, Position{X: 1}))
	assert.False(t, recs.Has[Position](b, e))
	assert.False(t, hasPool[Position](b))
}

func TestAssignAndGet(t *testing.T) {
	w := recs.NewWorld()
	e := w.CreateEntity()

	require.NoError(t, recs.Assign(w, e, Position{X: 10, Y: 20}))
	p, ok := recs.Get[Position](w, e)
	require.True(t, ok)
	assert.Equal(t, Position{X: 10, Y: 20}, p)
	assert.True(t, recs.Has[Position](w, e))
	assert.False(t, recs.Has[Velocity](w, e))

	_, ok = recs.Get[Velocity](w, e)
	assert.False(t, ok)
	assert.Nil(t, recs.GetMut[Velocity](w, e))
}

func TestAssignOverwrites(t *testing.T) {
	w := recs.NewWorld()
	e1 := w.CreateEntity()

	require.NoError(t, recs.Assign(w, e1, Position{X: 1}))
	require.NoError(t, recs.Assign(w, e1, Position{X: 2}))

	p, ok := recs.Get[Position](w, e1)
	require.True(t, ok)
	assert.Equal(t, float32(2), p.X)
	assert.Equal(t, 1, recs.Count[Position](w))
	pool, ok := recs.PoolOf[Position](w)
	require.True(t, ok)
	assert.Equal(t, 1, pool.Len())
}

func TestGetMutWritesThrough(t *testing.T) {
	w := recs.NewWorld()
	e := w.CreateEntity()
	require.NoError(t, recs.Assign(w, e, Health{Current: 50, Max: 100}))

	h := recs.GetMut[Health](w, e)
	require.NotNil(t, h)
	h.Current = 75

	got, _ := recs.Get[Health](w, e)
	assert.Equal(t, 75, got.Current)
}

func TestAssignDefault(t *testing.T) {
	w := recs.NewWorld()
	e := w.CreateEntity()

	require.NoError(t, recs.AssignDefault[Position](w, e))
	require.NoError(t, recs.AssignDefault[Armor](w, e))
	require.NoError(t, recs.AssignDefault[Shield](w, e))

	p, _ := recs.Get[Position](w, e)
	assert.Zero(t, p)
	a, _ := recs.Get[Armor](w, e)
	assert.Equal(t, 10, a.Value)
	s, _ := recs.Get[Shield](w, e)
	assert.Equal(t, 3, s.Charge)
}

func TestRemoveComponent(t *testing.T) {
	w := recs.NewWorld()
	e := w.CreateEntity()
	require.NoError(t, recs.Assign(w, e, Velocity{VX: 3}))

	v, ok := recs.Remove[Velocity](w, e)
	require.True(t, ok)
	assert.Equal(t, Velocity{VX: 3}, v)
	assert.False(t, recs.Has[Velocity](w, e))

	_, ok = recs.Remove[Velocity](w, e)
	assert.False(t, ok)
	_, ok = recs.Remove[Health](w, e)
	assert.False(t, ok, "no pool yet")
	assert.False(t, hasPool[Health](w), "remove must not create a pool")
	assert.True(t, w.IsAlive(e))
}

func TestDestroyEntity(t *testing.T) {
	w := recs.NewWorld()
	e := w.CreateEntity()
	require.NoError(t, recs.Assign(w, e, Position{X: 1}))
	require.NoError(t, recs.Assign(w, e, Tag{}))

	require.NoError(t, w.DestroyEntity(e))
	assert.False(t, w.IsAlive(e))
	assert.Equal(t, 0, w.Len())

	_, ok := recs.Get[Position](w, e)
	assert.False(t, ok)
	assert.False(t, recs.Has[Tag](w, e))
	assert.Nil(t, recs.GetMut[Position](w, e))
	assert.Equal(t, 0, recs.Count[Position](w))
	assert.Equal(t, 0, recs.Count[Tag](w))

	err := w.DestroyEntity(e)
	require.ErrorIs(t, err, recs.ErrDeadEntity)
}

func TestDeadEntityRejected(t *testing.T) {
	w := recs.NewWorld()
	e1 := w.CreateEntity()
	require.NoError(t, w.DestroyEntity(e1))

	err := recs.Assign(w, e1, Position{X: 5})
	require.ErrorIs(t, err, recs.ErrDeadEntity)
	assert.Contains(t, err.Error(), e1.String())
	require.ErrorIs(t, recs.AssignDefault[Position](w, e1), recs.ErrDeadEntity)

	_, ok := recs.Remove[Position](w, e1)
	assert.False(t, ok)

	require.ErrorIs(t, recs.Assign(w, recs.InvalidEntity, Position{}), recs.ErrDeadEntity)
	assert.False(t, w.IsAlive(recs.InvalidEntity))

	never := recs.Entity{ID: 42}
	require.ErrorIs(t, recs.Assign(w, never, Position{}), recs.ErrDeadEntity)
	require.ErrorIs(t, w.DestroyEntity(never), recs.ErrDeadEntity)
}

func TestRecycledEntityIsFresh(t *testing.T) {
	w := recs.NewWorld()
	old := w.CreateEntity()
	require.NoError(t, recs.Assign(w, old, Position{X: 9}))
	require.NoError(t, w.DestroyEntity(old))

	fresh := w.CreateEntity()
	assert.Equal(t, old.ID, fresh.ID)
	assert.Greater(t, fresh.Version, old.Version)
	assert.False(t, w.IsAlive(old))
	assert.False(t, recs.Has[Position](w, fresh), "components do not survive recycling")

	require.NoError(t, recs.Assign(w, fresh, Position{X: 1}))
	_, ok := recs.Get[Position](w, old)
	assert.False(t, ok, "stale handle must not see the new occupant")
}

func TestClear(t *testing.T) {
	w := recs.NewWorld()
	ents := w.CreateEntities(10)
	for _, e := range ents {
		require.NoError(t, recs.Assign(w, e, Position{}))
	}
	pool, ok := recs.PoolOf[Position](w)
	require.True(t, ok)

	w.Clear()
	assert.Equal(t, 0, w.Len())
	assert.Equal(t, 0, recs.Count[Position](w))
	assert.Equal(t, 0, pool.Len())
	assert.True(t, hasPool[Position](w), "pools survive a clear")
	for _, e := range ents {
		assert.False(t, w.IsAlive(e))
	}

	e := w.CreateEntity()
	require.NoError(t, recs.Assign(w, e, Position{X: 1}))
	assert.Equal(t, 1, recs.Count[Position](w))
	assert.Equal(t, 1, pool.Len())
}

func TestPoolOfBulkRead(t *testing.T) {
	w := recs.NewWorld()
	for i := range 5 {
		e := w.CreateEntity()
		require.NoError(t, recs.Assign(w, e, Health{Current: i}))
	}
	pool, ok := recs.PoolOf[Health](w)
	require.True(t, ok)
	sum := 0
	for _, h := range pool.All() {
		sum += h.Current
	}
	assert.Equal(t, 0+1+2+3+4, sum)
}

func TestPoolOfIsReadOnly(t *testing.T) {
	w := recs.NewWorld()
	a := w.CreateEntity()
	b := w.CreateEntity()
	require.NoError(t, recs.Assign(w, a, Health{Current: 1}))

	pool, ok := recs.PoolOf[Health](w)
	require.True(t, ok)
	rt := reflect.TypeOf(pool)
	for _, name := range []string{"Insert", "Remove", "Clear", "GetMut"} {
		_, found := rt.MethodByName(name)
		assert.False(t, found, "reader exposes %s", name)
	}

	// scribbling over the returned indices leaves the pool intact
	ents := pool.Entities()
	require.Equal(t, []uint32{a.ID}, ents)
	ents[0] = b.ID
	assert.True(t, pool.Contains(a.ID))
	assert.False(t, pool.Contains(b.ID))

	require.NoError(t, w.DestroyEntity(b))
	assert.Equal(t, []recs.Entity{a}, collect[recs.Cons[Health, recs.Nil]](w))
	c := w.CreateEntity()
	assert.Equal(t, b.ID, c.ID)
	assert.False(t, recs.Has[Health](w, c), "recycled slot starts empty")

	// values stay writable through the iterator
	for _, h := range pool.All() {
		h.Current = 5
	}
	got, _ := recs.Get[Health](w, a)
	assert.Equal(t, 5, got.Current)
}
