package decoder

import (
	"errors"
	"fmt"
)

var (
	ErrOverlap    = errors.New("overlapping opcode patterns")
	ErrBadPattern = errors.New("malformed opcode pattern")
)

// SpecError describes one defect of an opcode specification.
type SpecError struct {
	Group   string
	Pattern string
	Index   Index
	Other   string
	Err     error
}

func (e *SpecError) Error() string {
	if errors.Is(e.Err, ErrOverlap) {
		return fmt.Sprintf("group %s: %q overlaps %q at index %#05x: %v", e.Group, e.Pattern, e.Other, uint32(e.Index), e.Err)
	}
	return fmt.Sprintf("group %s: %q: %v", e.Group, e.Pattern, e.Err)
}

func (e *SpecError) Unwrap() error {
	return e.Err
}

// checkLayout reports whether the entry fits its group's layout; walk is
// only safe on entries that pass.
func checkLayout(l Layout, p Pattern[string]) error {
	if l.Saturated() {
		if p.Value > PrimaryMask {
			return fmt.Errorf("%w: primary opcode %#x out of range", ErrBadPattern, p.Value)
		}
		if p.Free != 0 || p.Magnitude != 0 {
			return fmt.Errorf("%w: primary opcodes take no wildcard bits", ErrBadPattern)
		}
		return nil
	}
	if l.Primary > PrimaryMask {
		return fmt.Errorf("%w: primary opcode %#x out of range", ErrBadPattern, l.Primary)
	}
	if l.Count+l.Sh > ExtBits {
		return fmt.Errorf("%w: field of %d bits at offset %d exceeds %d bits", ErrBadPattern, l.Count, l.Sh, ExtBits)
	}
	if p.Magnitude > l.Count {
		return fmt.Errorf("%w: magnitude %d wider than the %d-bit field", ErrBadPattern, p.Magnitude, l.Count)
	}
	width := l.Count - p.Magnitude
	if p.Value>>width != 0 {
		return fmt.Errorf("%w: value %#x wider than %d bits", ErrBadPattern, p.Value, width)
	}
	if p.Free>>width != 0 || p.Free&p.Value != 0 {
		return fmt.Errorf("%w: free bits %#x outside the value field", ErrBadPattern, p.Free)
	}
	return nil
}

// Validate checks every entry of the given groups against its layout, and
// that no two entries, in the same group or not, cover the same index.
// All problems are reported, joined.
func Validate(gs []Group) error {
	var errs []error
	owner := make([]string, TableSize)
	for _, g := range gs {
		for _, p := range g.Patterns {
			if p.Plain == "" || p.Rc == "" {
				errs = append(errs, &SpecError{Group: g.Name, Pattern: fmt.Sprintf("%#x", p.Value), Err: fmt.Errorf("%w: missing mnemonic", ErrBadPattern)})
				continue
			}
			if err := checkLayout(g.Layout, p); err != nil {
				errs = append(errs, &SpecError{Group: g.Name, Pattern: p.Plain, Err: err})
				continue
			}
			// one report per pair of entries
			seen := make(map[string]struct{})
			walk(g.Layout, p, func(idx Index, _ bool) {
				if owner[idx] != "" {
					if _, ok := seen[owner[idx]]; !ok {
						seen[owner[idx]] = struct{}{}
						errs = append(errs, &SpecError{Group: g.Name, Pattern: p.Plain, Index: idx, Other: owner[idx], Err: ErrOverlap})
					}
					return
				}
				owner[idx] = p.Plain
			})
		}
	}
	return errors.Join(errs...)
}
