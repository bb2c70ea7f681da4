package ecs

import "reflect"

// maxComponentKinds bounds how many distinct component kinds a World can
// register, matching the width of LockMask (mask.Mask256). Registering one
// more kind than this panics with PoolCapacityExceededError.
const maxComponentKinds = 256

// poolBase is the type-erased face every ComponentPool[T] presents to the
// World, so Destroy and the queries can touch a pool without knowing T.
type poolBase interface {
	bitPos() int
	removeEntity(id EntityID)
	clear()
	size() int
	ownerIDs() []EntityID
}

// removeEntity adapts swapRemove to the type-erased poolBase interface.
func (p *ComponentPool[T]) removeEntity(id EntityID) {
	p.swapRemove(id)
}

// ownerIDs exposes the dense owner-id array driving query iteration without
// requiring the caller to know T.
func (p *ComponentPool[T]) ownerIDs() []EntityID {
	return p.ownerAtIndex
}

// registerPool returns the pool for T, lazily creating and assigning it the
// next available bit on first access. Registration is idempotent: repeated
// calls for the same T return the same pool.
func registerPool[T any](w *World) *ComponentPool[T] {
	key := reflect.TypeOf((*T)(nil)).Elem()
	if idx, ok := w.poolIndex[key]; ok {
		return w.pools[idx].(*ComponentPool[T])
	}

	if w.nextBit >= maxComponentKinds {
		var zero T
		typeName := reflect.TypeOf(zero).String()
		w.logFatal("component pool capacity exhausted", componentTypeField(typeName))
		panic(PoolCapacityExceededError{Type: typeName, Max: maxComponentKinds})
	}

	pool := newComponentPool[T](w.nextBit)
	pool.ensureSparseLen(len(w.entities))
	w.nextBit++

	idx := len(w.pools)
	w.pools = append(w.pools, pool)
	w.poolIndex[key] = idx
	return pool
}

// poolFor looks up the pool for T without creating one. The ok result is
// false if T has never been registered in this World.
func poolFor[T any](w *World) (*ComponentPool[T], bool) {
	key := reflect.TypeOf((*T)(nil)).Elem()
	idx, ok := w.poolIndex[key]
	if !ok {
		return nil, false
	}
	return w.pools[idx].(*ComponentPool[T]), true
}

// AddComponent inserts component value of kind T for id, or overwrites it if
// id already owns one of that kind.
func AddComponent[T any](w *World, id EntityID, value T) {
	w.checkAlive(id)
	pool := registerPool[T](w)
	pool.ensureSparseLen(len(w.entities))
	row := &w.entities[id]
	if !hasBit(row.mask, pool.bit) {
		w.guardMutation(pool.bit)
		row.mask.Mark(pool.bit)
	}
	pool.upsert(id, value)
}

// RemoveComponent removes the component of kind T from id. A no-op if id
// does not own one, or if T has never been registered.
func RemoveComponent[T any](w *World, id EntityID) {
	w.checkAlive(id)
	pool, ok := poolFor[T](w)
	if !ok {
		return
	}
	if !hasBit(w.entities[id].mask, pool.bit) {
		return
	}
	w.guardMutation(pool.bit)
	pool.swapRemove(id)
	w.entities[id].mask.Unmark(pool.bit)
}

// HasComponent reports whether id owns a component of kind T. This is the
// canonical membership test: a bit test against the entity's mask.
func HasComponent[T any](w *World, id EntityID) bool {
	w.checkAlive(id)
	pool, ok := poolFor[T](w)
	if !ok {
		return false
	}
	return hasBit(w.entities[id].mask, pool.bit)
}

// MustGetComponent returns a mutable pointer to id's component of kind T.
// Panics with ComponentNotFoundError if id does not own one — the fatal-
// assertion surface for the "missing component" error class.
func MustGetComponent[T any](w *World, id EntityID) *T {
	w.checkAlive(id)
	pool, ok := poolFor[T](w)
	if !ok {
		w.missingComponent(id, typeNameOf[T]())
	}
	ptr := pool.get(id)
	if ptr == nil {
		w.missingComponent(id, typeNameOf[T]())
	}
	return ptr
}

// TryGetComponent is the non-panicking alternative to MustGetComponent, the
// documented alternative §4.3/§7 permits for callers that prefer a typed
// ok-bool over a fatal assertion.
func TryGetComponent[T any](w *World, id EntityID) (*T, bool) {
	w.checkAlive(id)
	pool, ok := poolFor[T](w)
	if !ok {
		return nil, false
	}
	ptr := pool.get(id)
	return ptr, ptr != nil
}

func (w *World) missingComponent(id EntityID, typeName string) {
	w.logFatal("missing component", entityIDField(id), componentTypeField(typeName))
	panic(ComponentNotFoundError{EntityID: id, Type: typeName})
}

func typeNameOf[T any]() string {
	var zero T
	return reflect.TypeOf(zero).String()
}
