package ecs

import "fmt"

// EntityID is a stable, non-negative integer identifier: a dense index into
// the World's entity table. Unlike some sparse-set ECS designs, it carries no
// generation counter — see DESIGN.md for why that choice was kept.
type EntityID uint32

// entityRow is the World-owned, canonical record for one entity slot.
// Its index into World.entities is the EntityID.
type entityRow struct {
	mask  Mask
	alive bool
}

// Entity is a cheap value handle callers pass around. It carries a cached
// mask snapshot and a back-reference to its owning World; the snapshot may
// lag the World's canonical entityRow.mask if the entity is mutated through
// another handle or through a bare EntityID. The canonical mask always lives
// in World.entities.
type Entity struct {
	id    EntityID
	world *World
	mask  Mask
	alive bool
}

// ID returns the entity's stable identifier.
func (e Entity) ID() EntityID { return e.id }

// Alive reports the handle's cached liveness. Call World.IsAlive for the
// canonical, up-to-date answer.
func (e Entity) Alive() bool { return e.alive }

func (e Entity) String() string {
	if !e.alive {
		return fmt.Sprintf("Entity(%d, dead)", e.id)
	}
	return fmt.Sprintf("Entity(%d)", e.id)
}

// refresh re-reads the canonical row and updates the handle's cached fields.
func (e *Entity) refresh() {
	row := &e.world.entities[e.id]
	e.mask = row.mask
	e.alive = row.alive
}

// Destroy is the Entity-handle form of World.Destroy; it also resets the
// caller's handle to a dead, empty-mask state.
func (e *Entity) Destroy() {
	e.world.Destroy(e.id)
	e.alive = false
	e.mask = Mask{}
}

// NewEntity allocates a fresh entity, recycling a freed id when one is
// available (LIFO), or appending a new row otherwise.
func (w *World) NewEntity() Entity {
	var id EntityID
	if n := len(w.freeIDs); n > 0 {
		id = w.freeIDs[n-1]
		w.freeIDs = w.freeIDs[:n-1]
		row := &w.entities[id]
		row.mask = Mask{}
		row.alive = true
	} else {
		id = EntityID(len(w.entities))
		w.entities = append(w.entities, entityRow{alive: true})
	}
	return Entity{id: id, world: w, alive: true}
}

// Entity looks up a live entity by id. Panics on an out-of-range id or a
// dead one — both are programming-model errors per the bounds-violation and
// use-after-destroy error classes.
func (w *World) Entity(id EntityID) Entity {
	w.checkAlive(id)
	row := &w.entities[id]
	return Entity{id: id, world: w, mask: row.mask, alive: row.alive}
}

// IsAlive reports whether id currently names a live entity. Out-of-range ids
// are reported as not alive rather than panicking, since liveness checks are
// commonly used defensively by callers holding a stale id.
func (w *World) IsAlive(id EntityID) bool {
	if int(id) >= len(w.entities) {
		return false
	}
	return w.entities[id].alive
}

// EntityCount returns the number of currently-live entities.
func (w *World) EntityCount() int {
	return len(w.entities) - len(w.freeIDs)
}

// Destroy removes an entity and every component it owns, then pushes its id
// onto the free stack for reuse. A no-op on an already-dead id.
func (w *World) Destroy(id EntityID) {
	if int(id) >= len(w.entities) {
		return
	}
	row := &w.entities[id]
	if !row.alive {
		return
	}
	for _, p := range w.pools {
		if hasBit(row.mask, p.bitPos()) {
			w.guardMutation(p.bitPos())
			p.removeEntity(id)
		}
	}
	row.mask = Mask{}
	row.alive = false
	w.freeIDs = append(w.freeIDs, id)
}

// checkAlive panics with a typed error if id is out of range or dead.
func (w *World) checkAlive(id EntityID) {
	if int(id) >= len(w.entities) {
		w.logFatal("entity id out of range", entityIDField(id))
		panic(EntityOutOfRangeError{ID: id, Len: len(w.entities)})
	}
	if !w.entities[id].alive {
		w.logFatal("use of dead entity id", entityIDField(id))
		panic(EntityNotAliveError{ID: id})
	}
}
