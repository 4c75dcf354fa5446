package decoder

import "fmt"

// Pattern is one opcode entry of a group: the value of the group's extended
// field and the two payloads selected by the record bit.
//
// Magnitude widens the entry by that many low-order extended bits, for forms
// whose extended opcode is shorter than the group's field (A-form entries in
// a 10-bit X-form group). Free lists don't-care bits inside the extended
// field; VMX128 forms keep register-number bits there.
type Pattern[T any] struct {
	Value     uint32
	Plain     T
	Rc        T
	Magnitude uint32
	Free      uint32
}

// P builds a pattern for extended value v. Entries without a record form
// pass the same payload twice.
func P[T any](v uint32, plain, rc T) Pattern[T] {
	return Pattern[T]{Value: v, Plain: plain, Rc: rc}
}

// Columns returns a copy of p covering 2^n values of the high extended bits.
func (p Pattern[T]) Columns(n uint32) Pattern[T] {
	if n > ExtBits {
		panic(fmt.Errorf("pattern %#x: magnitude %d exceeds the extended field", p.Value, n))
	}
	p.Magnitude = n
	return p
}

// Ignore returns a copy of p treating the bits of mask as don't-care.
func (p Pattern[T]) Ignore(mask uint32) Pattern[T] {
	if mask&p.Value != 0 {
		panic(fmt.Errorf("pattern %#x: free bits %#x intersect the value", p.Value, mask))
	}
	p.Free |= mask
	return p
}

// Layout describes where a group's extended opcode sits in the index.
//
// Count is the width of the extended field and Sh the number of index bits
// below it, the lowest of which is the record bit. A Sh of ExtBits or more
// marks the primary-opcode table, where Value is the primary opcode itself.
type Layout struct {
	Primary uint32
	Count   uint32
	Sh      uint32
}

func (l Layout) Saturated() bool {
	return l.Sh >= ExtBits
}

func (l Layout) String() string {
	if l.Saturated() {
		return "primary"
	}
	return fmt.Sprintf("%#02x", l.Primary)
}

// Group is the opcode specification for one layout, naming every entry by
// its mnemonic. Plain and record forms carry distinct mnemonics.
type Group struct {
	Name     string
	Layout   Layout
	Patterns []Pattern[string]
}

// project maps every mnemonic of g through fn.
func project[T any](g Group, fn func(mnemonic string) T) []Pattern[T] {
	out := make([]Pattern[T], len(g.Patterns))
	for i, p := range g.Patterns {
		out[i] = Pattern[T]{
			Value:     p.Value,
			Plain:     fn(p.Plain),
			Rc:        fn(p.Rc),
			Magnitude: p.Magnitude,
			Free:      p.Free,
		}
	}
	return out
}
