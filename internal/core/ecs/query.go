package ecs

// Each2 iterates over entities that have both component A and B, in
// ascending entity index.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	n := len(sa.data)
	if len(sb.data) < n {
		n = len(sb.data)
	}
	for i := 0; i < n; i++ {
		a, b := sa.data[i], sb.data[i]
		if a == nil || b == nil || sa.ids[i] != sb.ids[i] {
			continue
		}
		fn(sa.ids[i], a, b)
	}
}

// Each3 iterates over entities that have components A, B, and C.
func Each3[A, B, C any](sa *Store[A], sb *Store[B], sc *Store[C], fn func(EntityID, *A, *B, *C)) {
	Each2(sa, sb, func(id EntityID, a *A, b *B) {
		if c, ok := sc.Get(id); ok {
			fn(id, a, b, c)
		}
	})
}
