package ecs

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEach2_DriverIsSmallestPool_OrderIndependentOfAdditionOrder(t *testing.T) {
	w := NewWorld()

	ids := make([]EntityID, 1000)
	for i := range ids {
		ids[i] = w.NewEntity().ID()
		AddComponent(w, ids[i], Position{X: float64(i)})
	}
	// Velocity goes on every 100th entity in reverse order, so Velocity's
	// dense order (900, 800, ..., 0) differs from Position's (0, 1, ..., 999).
	var withVel []EntityID
	for i := 900; i >= 0; i -= 100 {
		AddComponent(w, ids[i], Velocity{X: float64(i)})
		withVel = append(withVel, ids[i])
	}
	require.Len(t, withVel, 10)

	var got []EntityID
	Each2(w, func(id EntityID, pos *Position, vel *Velocity) {
		got = append(got, id)
	})

	velPool, _ := poolFor[Velocity](w)
	assert.Equal(t, velPool.ownerIDs(), got, "the smaller Velocity pool must drive iteration")

	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })
	sort.Slice(withVel, func(i, j int) bool { return withVel[i] < withVel[j] })
	assert.Equal(t, withVel, got)
}

func TestEach2_UpdatesComponentsInPlace(t *testing.T) {
	w := NewWorld()
	e := w.NewEntity()
	AddComponent(w, e.ID(), Position{X: 0, Y: 0})
	AddComponent(w, e.ID(), Velocity{X: 2, Y: 3})

	Each2(w, func(id EntityID, pos *Position, vel *Velocity) {
		pos.X += vel.X
		pos.Y += vel.Y
	})

	got := MustGetComponent[Position](w, e.ID())
	assert.Equal(t, Position{X: 2, Y: 3}, *got)
}

func TestEach2_EmptyPoolShortCircuits(t *testing.T) {
	w := NewWorld()
	e := w.NewEntity()
	AddComponent(w, e.ID(), Position{X: 1})

	calls := 0
	Each2(w, func(id EntityID, pos *Position, vel *Velocity) { calls++ })
	assert.Zero(t, calls)
}

func TestEach2_QueryCompleteness(t *testing.T) {
	w := NewWorld()
	expect := map[EntityID]bool{}
	for i := 0; i < 50; i++ {
		e := w.NewEntity()
		AddComponent(w, e.ID(), Position{X: float64(i)})
		if i%3 == 0 {
			AddComponent(w, e.ID(), Velocity{X: float64(i)})
			expect[e.ID()] = true
		}
	}

	got := map[EntityID]bool{}
	Each2(w, func(id EntityID, pos *Position, vel *Velocity) { got[id] = true })

	assert.Equal(t, expect, got)
}

func TestQueryBuilder_WithAndWithout(t *testing.T) {
	w := NewWorld()
	e1 := w.NewEntity()
	AddComponent(w, e1.ID(), Position{})
	e2 := w.NewEntity()
	AddComponent(w, e2.ID(), Position{})
	AddComponent(w, e2.ID(), Velocity{})

	q := NewQuery(w)
	With[Position](q)
	Without[Velocity](q)
	result := q.Build()

	assert.Equal(t, []EntityID{e1.ID()}, result.Entities())
}

func TestAliasingGuard_PanicsOnStructuralMutationDuringIteration(t *testing.T) {
	w := NewWorld()
	e := w.NewEntity()
	AddComponent(w, e.ID(), Position{})

	assert.Panics(t, func() {
		Each1(w, func(id EntityID, pos *Position) {
			RemoveComponent[Position](w, id)
		})
	})
}

func TestEach1_NoMaskCheckNeeded(t *testing.T) {
	w := NewWorld()
	var ids []EntityID
	for i := 0; i < 5; i++ {
		e := w.NewEntity()
		AddComponent(w, e.ID(), Position{X: float64(i)})
		ids = append(ids, e.ID())
	}

	var visited []EntityID
	Each1(w, func(id EntityID, pos *Position) { visited = append(visited, id) })

	sort.Slice(visited, func(i, j int) bool { return visited[i] < visited[j] })
	assert.Equal(t, ids, visited)
}
