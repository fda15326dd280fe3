package collide

// PairKey identifies an unordered pair of bodies. Lo orders before Hi by
// index, then version, so both directions of a check produce the same key.
// Versions keep a reused arena slot from matching its previous occupant.
type PairKey struct {
	Lo, Hi Handle
}

// MakePairKey returns the key for the unordered pair (a, b).
func MakePairKey(a, b Handle) PairKey {
	if a.Index > b.Index || (a.Index == b.Index && a.Version > b.Version) {
		a, b = b, a
	}
	return PairKey{Lo: a, Hi: b}
}

// Registry remembers which pairs were already evaluated in the current
// detection pass.
type Registry struct {
	seen map[PairKey]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{seen: make(map[PairKey]struct{})}
}

// Reset forgets every pair. Safe to call on an empty registry.
func (r *Registry) Reset() {
	if len(r.seen) > 0 {
		clear(r.seen)
	}
}

// Mark records the pair and reports whether it was new in this pass.
func (r *Registry) Mark(a, b Handle) bool {
	key := MakePairKey(a, b)
	if _, ok := r.seen[key]; ok {
		return false
	}
	r.seen[key] = struct{}{}
	return true
}

// Seen reports whether the pair was evaluated in this pass.
func (r *Registry) Seen(a, b Handle) bool {
	_, ok := r.seen[MakePairKey(a, b)]
	return ok
}

// Len returns the number of pairs evaluated in this pass.
func (r *Registry) Len() int {
	return len(r.seen)
}
