package ecs

// Each1 visits every entity owning a component of kind T1. Presence in the
// pool's dense array implies ownership, so no mask check is needed — the
// single-kind case from spec.md §4.4.
func Each1[T1 any](w *World, fn func(EntityID, *T1)) {
	pool, ok := poolFor[T1](w)
	if !ok {
		return
	}
	defer w.lockForQuery(pool.bit)()
	owners := pool.ownerIDs()
	for i := range owners {
		fn(owners[i], &pool.dense[i])
	}
}

// Each2 visits every entity owning components of both T1 and T2, driving
// iteration by whichever pool is smaller.
func Each2[T1, T2 any](w *World, fn func(EntityID, *T1, *T2)) {
	p1, ok1 := poolFor[T1](w)
	p2, ok2 := poolFor[T2](w)
	if !ok1 || !ok2 {
		return
	}
	defer w.lockForQuery(p1.bit, p2.bit)()
	combined := combinedMask(p1.bit, p2.bit)
	driver := p1.ownerIDs()
	if p2.size() < p1.size() {
		driver = p2.ownerIDs()
	}
	for _, e := range driver {
		if !w.entities[e].mask.ContainsAll(combined) {
			continue
		}
		fn(e, p1.get(e), p2.get(e))
	}
}

// Each3 visits every entity owning components of T1, T2, and T3.
func Each3[T1, T2, T3 any](w *World, fn func(EntityID, *T1, *T2, *T3)) {
	p1, ok1 := poolFor[T1](w)
	p2, ok2 := poolFor[T2](w)
	p3, ok3 := poolFor[T3](w)
	if !ok1 || !ok2 || !ok3 {
		return
	}
	defer w.lockForQuery(p1.bit, p2.bit, p3.bit)()
	combined := combinedMask(p1.bit, p2.bit, p3.bit)
	driver := smallestOwners(p1, p2, p3)
	for _, e := range driver {
		if !w.entities[e].mask.ContainsAll(combined) {
			continue
		}
		fn(e, p1.get(e), p2.get(e), p3.get(e))
	}
}

// Each4 visits every entity owning components of T1 through T4.
func Each4[T1, T2, T3, T4 any](w *World, fn func(EntityID, *T1, *T2, *T3, *T4)) {
	p1, ok1 := poolFor[T1](w)
	p2, ok2 := poolFor[T2](w)
	p3, ok3 := poolFor[T3](w)
	p4, ok4 := poolFor[T4](w)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return
	}
	defer w.lockForQuery(p1.bit, p2.bit, p3.bit, p4.bit)()
	combined := combinedMask(p1.bit, p2.bit, p3.bit, p4.bit)
	driver := smallestOwners(p1, p2, p3, p4)
	for _, e := range driver {
		if !w.entities[e].mask.ContainsAll(combined) {
			continue
		}
		fn(e, p1.get(e), p2.get(e), p3.get(e), p4.get(e))
	}
}

// Each5 visits every entity owning components of T1 through T5.
func Each5[T1, T2, T3, T4, T5 any](w *World, fn func(EntityID, *T1, *T2, *T3, *T4, *T5)) {
	p1, ok1 := poolFor[T1](w)
	p2, ok2 := poolFor[T2](w)
	p3, ok3 := poolFor[T3](w)
	p4, ok4 := poolFor[T4](w)
	p5, ok5 := poolFor[T5](w)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 {
		return
	}
	defer w.lockForQuery(p1.bit, p2.bit, p3.bit, p4.bit, p5.bit)()
	combined := combinedMask(p1.bit, p2.bit, p3.bit, p4.bit, p5.bit)
	driver := smallestOwners(p1, p2, p3, p4, p5)
	for _, e := range driver {
		if !w.entities[e].mask.ContainsAll(combined) {
			continue
		}
		fn(e, p1.get(e), p2.get(e), p3.get(e), p4.get(e), p5.get(e))
	}
}

// Each6 visits every entity owning components of T1 through T6, the upper
// arity the reference design enumerates by hand.
func Each6[T1, T2, T3, T4, T5, T6 any](w *World, fn func(EntityID, *T1, *T2, *T3, *T4, *T5, *T6)) {
	p1, ok1 := poolFor[T1](w)
	p2, ok2 := poolFor[T2](w)
	p3, ok3 := poolFor[T3](w)
	p4, ok4 := poolFor[T4](w)
	p5, ok5 := poolFor[T5](w)
	p6, ok6 := poolFor[T6](w)
	if !ok1 || !ok2 || !ok3 || !ok4 || !ok5 || !ok6 {
		return
	}
	defer w.lockForQuery(p1.bit, p2.bit, p3.bit, p4.bit, p5.bit, p6.bit)()
	combined := combinedMask(p1.bit, p2.bit, p3.bit, p4.bit, p5.bit, p6.bit)
	driver := smallestOwners(p1, p2, p3, p4, p5, p6)
	for _, e := range driver {
		if !w.entities[e].mask.ContainsAll(combined) {
			continue
		}
		fn(e, p1.get(e), p2.get(e), p3.get(e), p4.get(e), p5.get(e), p6.get(e))
	}
}

// smallestOwners returns the owner-id slice of whichever participating pool
// has the fewest entries — the "driver pool" from spec.md §4.4.
func smallestOwners(pools ...poolBase) []EntityID {
	best := 0
	for i := 1; i < len(pools); i++ {
		if pools[i].size() < pools[best].size() {
			best = i
		}
	}
	return pools[best].ownerIDs()
}

// lockForQuery marks bits as held by an in-flight iterator and returns the
// func that releases them; callers defer the returned func so the lock is
// released even if the visitor function panics.
func (w *World) lockForQuery(bits ...int) func() {
	w.iterLocks = lockBits(w.iterLocks, bits...)
	return func() { w.iterLocks = unlockBits(w.iterLocks, bits...) }
}

// Query provides a fluent, id-only builder on top of the same pools and
// masks the typed EachN iterators use. It is an additive convenience: the
// mandatory N-ary AND semantics of spec.md §4.4 live in EachN above.
type Query struct {
	world      *World
	include    []int
	exclude    []int
	includeAny []int
	excludeAny []int
}

// NewQuery starts a new query against w.
func NewQuery(w *World) *Query {
	return &Query{world: w}
}

// With requires entities to own a component of kind T.
func With[T any](q *Query) *Query {
	q.include = append(q.include, registerPool[T](q.world).bit)
	return q
}

// Without excludes entities that own a component of kind T.
func Without[T any](q *Query) *Query {
	q.exclude = append(q.exclude, registerPool[T](q.world).bit)
	return q
}

// WithAny requires entities to own at least one component among the kinds
// passed to WithAny across the life of the query.
func WithAny[T any](q *Query) *Query {
	q.includeAny = append(q.includeAny, registerPool[T](q.world).bit)
	return q
}

// WithoutAny excludes entities owning any component among the kinds passed
// to WithoutAny.
func WithoutAny[T any](q *Query) *Query {
	q.excludeAny = append(q.excludeAny, registerPool[T](q.world).bit)
	return q
}

// Build evaluates the query and returns the matching entity ids. Each of the
// four criteria lists is folded into a single combined Mask up front, so
// matching an entity is a handful of whole-mask comparisons rather than a
// per-bit scan — the same mask-algebra shape warehouse's query evaluator
// uses for its AND/OR/NOT nodes.
func (q *Query) Build() *QueryResult {
	if len(q.include) == 0 && len(q.includeAny) == 0 {
		return &QueryResult{world: q.world}
	}

	includeMask := combinedMask(q.include...)
	excludeMask := combinedMask(q.exclude...)
	includeAnyMask := combinedMask(q.includeAny...)
	excludeAnyMask := combinedMask(q.excludeAny...)

	var candidates []EntityID
	if len(q.include) > 0 {
		pools, ok := poolsAtBits(q.world, q.include)
		if !ok {
			return &QueryResult{world: q.world}
		}
		candidates = smallestOwners(pools...)
	} else {
		seen := make(map[EntityID]bool)
		for _, bit := range q.includeAny {
			if pool, ok := poolAtBit(q.world, bit); ok {
				for _, e := range pool.ownerIDs() {
					seen[e] = true
				}
			}
		}
		candidates = make([]EntityID, 0, len(seen))
		for e := range seen {
			candidates = append(candidates, e)
		}
	}

	matched := make([]EntityID, 0, len(candidates))
	for _, e := range candidates {
		if q.matches(e, includeMask, excludeMask, includeAnyMask, excludeAnyMask) {
			matched = append(matched, e)
		}
	}
	return &QueryResult{entities: matched, world: q.world}
}

// poolsAtBits resolves every bit to its pool, the same driver-pool input
// EachN's smallestOwners already expects — reused here rather than
// duplicating a hand-rolled smallest-storage scan.
func poolsAtBits(w *World, bits []int) ([]poolBase, bool) {
	pools := make([]poolBase, 0, len(bits))
	for _, bit := range bits {
		p, ok := poolAtBit(w, bit)
		if !ok {
			return nil, false
		}
		pools = append(pools, p)
	}
	return pools, true
}

func (q *Query) matches(e EntityID, includeMask, excludeMask, includeAnyMask, excludeAnyMask Mask) bool {
	archeMask := q.world.entities[e].mask
	if !archeMask.ContainsAll(includeMask) {
		return false
	}
	if !archeMask.ContainsNone(excludeMask) {
		return false
	}
	if len(q.includeAny) > 0 && !archeMask.ContainsAny(includeAnyMask) {
		return false
	}
	if !archeMask.ContainsNone(excludeAnyMask) {
		return false
	}
	return true
}

func poolIndexAtBit(w *World, bit int) (int, bool) {
	for i, p := range w.pools {
		if p.bitPos() == bit {
			return i, true
		}
	}
	return 0, false
}

func poolAtBit(w *World, bit int) (poolBase, bool) {
	idx, ok := poolIndexAtBit(w, bit)
	if !ok {
		return nil, false
	}
	return w.pools[idx], true
}

// QueryResult is the id-only result of Query.Build.
type QueryResult struct {
	entities []EntityID
	world    *World
}

// Entities returns the matching entity ids.
func (qr *QueryResult) Entities() []EntityID { return qr.entities }

// Len returns how many entities matched.
func (qr *QueryResult) Len() int { return len(qr.entities) }

// Empty reports whether no entities matched.
func (qr *QueryResult) Empty() bool { return len(qr.entities) == 0 }

// ForEach visits every matching entity id.
func (qr *QueryResult) ForEach(fn func(EntityID)) {
	for _, e := range qr.entities {
		fn(e)
	}
}
