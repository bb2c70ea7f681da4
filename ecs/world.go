package ecs

import (
	"reflect"

	"go.uber.org/zap"
)

// DebugChecks toggles the best-effort aliasing guard described in spec.md
// §9: while true (the default), structural mutation of a pool that an
// in-flight query iterator holds locked panics with AliasingViolationError
// instead of silently corrupting storage. Disable it in hot release builds
// once a caller trusts its own query/mutation discipline.
var DebugChecks = true

// World owns all entity storage and every registered ComponentPool. At most
// one mutator may be active on a World at a time; see spec.md §5 for the
// full concurrency contract.
type World struct {
	entities  []entityRow
	freeIDs   []EntityID
	pools     []poolBase
	poolIndex map[reflect.Type]int
	nextBit   int
	iterLocks LockMask
	log       *zap.Logger
}

// WorldOption configures a World at construction time, following the
// functional-options idiom.
type WorldOption func(*World)

// WithLogger attaches a structured logger used on fatal-assertion paths.
// Defaults to zap.NewNop() when omitted.
func WithLogger(log *zap.Logger) WorldOption {
	return func(w *World) { w.log = log }
}

// WithInitialEntityCapacity preallocates room for n entities up front.
func WithInitialEntityCapacity(n int) WorldOption {
	return func(w *World) {
		w.entities = make([]entityRow, 0, n)
		w.freeIDs = make([]EntityID, 0, n)
	}
}

// NewWorld constructs an empty World: no entities, no pools, nextBit at its
// initial position.
func NewWorld(opts ...WorldOption) *World {
	w := &World{
		poolIndex: make(map[reflect.Type]int),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Clear returns the World to its freshly-constructed state. All outstanding
// Entity handles become invalid; respecting that is the caller's
// responsibility.
func (w *World) Clear() {
	w.entities = nil
	w.freeIDs = nil
	w.pools = nil
	w.poolIndex = make(map[reflect.Type]int)
	w.nextBit = 0
	w.iterLocks = LockMask{}
}

// guardMutation panics with AliasingViolationError when DebugChecks is
// enabled and bit is currently locked by an in-flight query iterator.
func (w *World) guardMutation(bit int) {
	if !DebugChecks {
		return
	}
	if hasLockBit(w.iterLocks, bit) {
		w.logFatal("aliasing violation", zap.Int("bit", bit))
		panic(AliasingViolationError{BitPos: bit})
	}
}

func (w *World) logFatal(msg string, fields ...zap.Field) {
	w.log.Error(msg, fields...)
}

func entityIDField(id EntityID) zap.Field {
	return zap.Uint32("entity_id", uint32(id))
}

func componentTypeField(name string) zap.Field {
	return zap.String("component_type", name)
}
