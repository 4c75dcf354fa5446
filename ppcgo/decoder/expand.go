package decoder

// walk calls fn for every index pattern p covers in layout l, with the
// record bit of that index. It is the single source of truth for both table
// expansion and validation.
func walk[T any](l Layout, p Pattern[T], fn func(idx Index, rc bool)) {
	if l.Saturated() {
		for i := uint32(0); i < 1<<ExtBits; i++ {
			fn(Index(i<<PrimaryBits|p.Value), i&1 != 0)
		}
		return
	}
	// bits of the index above the group's field, plus the pattern's own
	// magnitude columns, are operand bits
	wide := p.Magnitude + ExtBits - l.Sh - l.Count
	for i := uint32(0); i < 1<<wide; i++ {
		for f := uint32(0); ; f = (f - p.Free) & p.Free {
			for j := uint32(0); j < 1<<l.Sh; j++ {
				k := (((i << (l.Count - p.Magnitude)) | p.Value | f) << l.Sh) | j
				fn(Index(k<<PrimaryBits|l.Primary), k&1 != 0)
			}
			if f == p.Free {
				break
			}
		}
	}
}

// expand writes every pattern of a group into t, later entries overwriting
// earlier ones.
func expand[T any](t *[TableSize]T, l Layout, patterns []Pattern[T]) {
	for _, p := range patterns {
		p := p
		walk(l, p, func(idx Index, rc bool) {
			if rc {
				t[idx] = p.Rc
			} else {
				t[idx] = p.Plain
			}
		})
	}
}
