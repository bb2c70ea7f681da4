/*
Package ecs is a minimalist, single-threaded Entity Component System core.

It stores per-entity data in contiguous, cache-friendly arrays using the
sparse-set technique: one ComponentPool per registered component kind, each
holding a dense array of values, a parallel array of owning entity ids, and a
sparse array mapping an entity id back to its dense index.

Basic usage:

	world := ecs.NewWorld()

	e := world.NewEntity()
	ecs.AddComponent(world, e.ID(), Position{X: 1, Y: 2})
	ecs.AddComponent(world, e.ID(), Velocity{X: 0, Y: 1})

	ecs.Each2(world, func(id ecs.EntityID, pos *Position, vel *Velocity) {
		pos.X += vel.X
		pos.Y += vel.Y
	})

There is no archetype table, no automatic system scheduler, and no change
tracking — see SPEC_FULL.md for the full list of non-goals. Everything here
runs synchronously on a single goroutine; the World and its pools form one
aggregate resource, and structural mutation of a pool while a query over it
is in flight is undefined (optionally caught in debug builds, see
DebugChecks).
*/
package ecs
