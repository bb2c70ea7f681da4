package ecs

import "github.com/TheBitDrifter/mask"

// Mask is the membership bitset backing both an entity's component
// membership and a query's combined filter. A pool's bit position is
// Mark/Unmark-ed on an entity's Mask; ContainsAll answers the spec's
// "(mask & M) == M" test without hand-rolled integer bit arithmetic.
// ContainsAny and ContainsNone answer the OR/NOT halves of Query's filter
// the same way.
type Mask = mask.Mask

// LockMask tracks which pool bit positions are currently owned by an
// in-flight query iterator, for the debug-mode aliasing guard (see
// World.guardMutation). Mask256 comfortably covers maxComponentKinds.
type LockMask = mask.Mask256

// hasBit reports whether m has the given bit position set. Mask exposes set
// algebra (Mark/Unmark/ContainsAll/ContainsAny) rather than a single-bit
// test, so a single-bit probe mask is built on the fly.
func hasBit(m Mask, bit int) bool {
	var probe Mask
	probe.Mark(bit)
	return m.ContainsAll(probe)
}

// combinedMask builds the OR of every bit in bits, used as the filter for an
// N-ary query (spec's "combined mask").
func combinedMask(bits ...int) Mask {
	var m Mask
	for _, b := range bits {
		m.Mark(b)
	}
	return m
}

// hasLockBit reports whether bit is currently held in a LockMask.
func hasLockBit(m LockMask, bit int) bool {
	var probe LockMask
	probe.Mark(bit)
	return m.ContainsAll(probe)
}

// lockBits marks every bit in bits as locked, returning the updated mask.
func lockBits(m LockMask, bits ...int) LockMask {
	for _, b := range bits {
		m.Mark(b)
	}
	return m
}

// unlockBits clears every bit in bits from the mask, returning the result.
func unlockBits(m LockMask, bits ...int) LockMask {
	for _, b := range bits {
		m.Unmark(b)
	}
	return m
}
