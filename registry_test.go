package recs

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type testVelocity struct{ DX, DY float64 }

func TestEnsurePoolCreatesOnce(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	w := NewWorld(WithLogger(zap.New(core)))

	p1, id1 := ensurePool[testPosition](w)
	p2, id2 := ensurePool[testPosition](w)
	assert.Same(t, p1, p2)
	assert.Equal(t, id1, id2)

	_, id3 := ensurePool[testVelocity](w)
	assert.NotEqual(t, id1, id3)
	assert.Equal(t, uint64(2), w.pools.version)

	created := logs.FilterMessage("pool created").All()
	require.Len(t, created, 2)
	assert.Equal(t, w.ID().String(), created[0].ContextMap()["world"])
}

func TestLookupPoolDoesNotCreate(t *testing.T) {
	w := NewWorld()
	p, _ := lookupPool[testPosition](w)
	assert.Nil(t, p)
	_, registered := w.components.lookup(reflect.TypeFor[testPosition]())
	assert.False(t, registered)
	assert.Zero(t, w.pools.version)
}

func TestPoolAsMismatchIsFault(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	w := NewWorld(WithLogger(zap.New(core)))
	_, id := ensurePool[testPosition](w)

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, ErrPoolTypeMismatch)
		assert.Equal(t, 1, logs.FilterMessage("internal fault").Len())
	}()
	poolAs[testVelocity](w, w.pools.get(id))
}

func TestDestroyPurgesOnlyOwnedPools(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	other := w.CreateEntity()
	require.NoError(t, Assign(w, e, testPosition{X: 1}))
	require.NoError(t, Assign(w, other, testVelocity{DX: 1}))

	_, posID := lookupPool[testPosition](w)
	assert.True(t, w.entities.slots[e.ID].mask.has(posID))

	require.NoError(t, w.DestroyEntity(e))
	assert.Equal(t, 0, Count[testPosition](w))
	assert.Equal(t, 1, Count[testVelocity](w))
	assert.False(t, w.entities.slots[e.ID].mask.has(posID))
}

func TestRemoveClearsMaskBit(t *testing.T) {
	w := NewWorld()
	e := w.CreateEntity()
	require.NoError(t, Assign(w, e, testPosition{}))
	_, id := lookupPool[testPosition](w)

	_, ok := Remove[testPosition](w, e)
	require.True(t, ok)
	assert.False(t, w.entities.slots[e.ID].mask.has(id))
}

func TestQueryPlanGoesStaleOnNewPool(t *testing.T) {
	w := NewWorld()
	type list = Cons[testPosition, Cons[testVelocity, Nil]]

	plan := planFor[list](w)
	assert.Equal(t, []anyPool{nil, nil}, plan.pools)

	e := w.CreateEntity()
	require.NoError(t, Assign(w, e, testPosition{}))
	assert.True(t, plan.isStale(w))

	same := planFor[list](w)
	assert.Same(t, plan, same)
	assert.NotNil(t, plan.pools[0])
	assert.Nil(t, plan.pools[1])
	assert.False(t, plan.isStale(w))
}

func TestComponentIDsAreUnbounded(t *testing.T) {
	w := NewWorld()
	// burn through more ids than a 256-bit mask could hold
	for i := range 300 {
		fields := []reflect.StructField{
			{Name: fmt.Sprintf("F%d", i), Type: reflect.TypeOf(0)},
		}
		w.components.getCompTypeID(reflect.StructOf(fields))
	}

	e := w.CreateEntity()
	require.NoError(t, Assign(w, e, testPosition{X: 1}))
	_, id := lookupPool[testPosition](w)
	assert.Equal(t, ComponentID(300), id)
	assert.True(t, Has[testPosition](w, e))

	require.NoError(t, w.DestroyEntity(e))
	assert.Equal(t, 0, Count[testPosition](w))
}
