package ecs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComponent_BasicLifecycle(t *testing.T) {
	w := NewWorld()
	e := w.NewEntity()

	AddComponent(w, e.ID(), Position{X: 10, Y: 20})

	require.True(t, HasComponent[Position](w, e.ID()))
	got := MustGetComponent[Position](w, e.ID())
	assert.Equal(t, Position{X: 10, Y: 20}, *got)
}

func TestAddComponent_TwiceOverwrites(t *testing.T) {
	w := NewWorld()
	e := w.NewEntity()

	AddComponent(w, e.ID(), Position{X: 1, Y: 1})
	AddComponent(w, e.ID(), Position{X: 2, Y: 2})

	pool, _ := poolFor[Position](w)
	assert.Equal(t, 1, pool.size(), "second add must overwrite, not append")
	assert.Equal(t, Position{X: 2, Y: 2}, *MustGetComponent[Position](w, e.ID()))
}

func TestRemoveComponent_IsIdentityWithAdd(t *testing.T) {
	w := NewWorld()
	e := w.NewEntity()
	AddComponent(w, e.ID(), Position{X: 5, Y: 5})
	AddComponent(w, e.ID(), Velocity{X: 1, Y: 1})

	RemoveComponent[Position](w, e.ID())

	assert.False(t, HasComponent[Position](w, e.ID()))
	assert.True(t, HasComponent[Velocity](w, e.ID()), "removing Position must not disturb Velocity")

	posPool, _ := poolFor[Position](w)
	velPool, _ := poolFor[Velocity](w)
	assert.Equal(t, 0, posPool.size())
	assert.Equal(t, 1, velPool.size())
}

func TestRemoveComponent_NoopWhenAbsent(t *testing.T) {
	w := NewWorld()
	e := w.NewEntity()
	require.NotPanics(t, func() { RemoveComponent[Position](w, e.ID()) })
}

func TestRemoveComponent_NoopWhenPoolNeverRegistered(t *testing.T) {
	w := NewWorld()
	e := w.NewEntity()
	require.NotPanics(t, func() { RemoveComponent[Velocity](w, e.ID()) })
	assert.False(t, HasComponent[Velocity](w, e.ID()))
}

func TestMustGetComponent_PanicsWhenMissing(t *testing.T) {
	w := NewWorld()
	e := w.NewEntity()
	assert.Panics(t, func() { MustGetComponent[Position](w, e.ID()) })
}

func TestTryGetComponent_IsNonPanicking(t *testing.T) {
	w := NewWorld()
	e := w.NewEntity()

	ptr, ok := TryGetComponent[Position](w, e.ID())
	assert.False(t, ok)
	assert.Nil(t, ptr)

	AddComponent(w, e.ID(), Position{X: 3, Y: 4})
	ptr, ok = TryGetComponent[Position](w, e.ID())
	assert.True(t, ok)
	assert.Equal(t, Position{X: 3, Y: 4}, *ptr)
}

// TestSwapAndPop_PreservesOtherEntities drives entities 0..3 through Position
// insertion in order, removes entity 1, and checks the dense/owner/sparse
// invariants hold for the survivors (spec.md §8 scenario 4).
func TestSwapAndPop_PreservesOtherEntities(t *testing.T) {
	w := NewWorld()
	ids := make([]EntityID, 4)
	for i := range ids {
		ids[i] = w.NewEntity().ID()
		AddComponent(w, ids[i], Position{X: float64(i)})
	}

	RemoveComponent[Position](w, ids[1])

	pool, _ := poolFor[Position](w)
	assert.Equal(t, 3, pool.size())
	assert.False(t, pool.has(ids[1]))

	for _, id := range []EntityID{ids[0], ids[2], ids[3]} {
		require.True(t, pool.has(id))
		idx := pool.indexForEntity[id]
		assert.Equal(t, id, pool.ownerAtIndex[idx])
		assert.Equal(t, float64(id), pool.dense[idx].X)
	}
}

func TestPoolCapacityExhausted_Panics(t *testing.T) {
	w := NewWorld()
	w.nextBit = maxComponentKinds

	assert.Panics(t, func() { registerPool[Position](w) })
}
