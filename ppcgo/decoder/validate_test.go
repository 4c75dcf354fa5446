package decoder

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateSpecification(t *testing.T) {
	require.NoError(t, Validate(Groups()))
}

func TestValidateOverlap(t *testing.T) {
	x := Layout{Primary: 0x1F, Count: 10, Sh: 1}
	fp := Layout{Primary: 0x3F, Count: 10, Sh: 1}
	cases := []struct {
		name  string
		gs    []Group
		first string
		other string
	}{
		{
			name: "same group",
			gs: []Group{{Name: "x", Layout: x, Patterns: []Pattern[string]{
				rc(0x10A, "add"), op(0x10A, "dup"),
			}}},
			first: "dup", other: "add",
		},
		{
			name: "columns",
			gs: []Group{{Name: "fp", Layout: fp, Patterns: []Pattern[string]{
				rc(0x12, "fdiv").Columns(5), op(0x032, "clash"),
			}}},
			first: "clash", other: "fdiv",
		},
		{
			name: "free bits",
			gs: []Group{{Name: "vmx", Layout: Layout{Primary: 0x04, Count: 11}, Patterns: []Pattern[string]{
				op(0x003, "lvsl128").Ignore(0x00C), op(0x00B, "clash"),
			}}},
			first: "clash", other: "lvsl128",
		},
		{
			name: "across groups",
			gs: []Group{
				{Name: "primary", Layout: Layout{Count: PrimaryBits, Sh: ExtBits}, Patterns: []Pattern[string]{op(0x1F, "x")}},
				{Name: "x", Layout: x, Patterns: []Pattern[string]{rc(0x10A, "add")}},
			},
			first: "add", other: "x",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := Validate(c.gs)
			require.ErrorIs(t, err, ErrOverlap)
			require.NotErrorIs(t, err, ErrBadPattern)
			var se *SpecError
			require.True(t, errors.As(err, &se))
			require.Equal(t, c.first, se.Pattern)
			require.Equal(t, c.other, se.Other)
			require.Contains(t, err.Error(), "overlaps")
		})
	}
}

func TestValidateBadPattern(t *testing.T) {
	x := Layout{Primary: 0x1F, Count: 10, Sh: 1}
	cases := []struct {
		name string
		g    Group
	}{
		{"value too wide", Group{Name: "x", Layout: x, Patterns: []Pattern[string]{op(0x400, "wide")}}},
		{"value inside columns", Group{Name: "x", Layout: x, Patterns: []Pattern[string]{op(0x20, "a").Columns(5)}}},
		{"primary out of range", Group{Name: "p", Layout: Layout{Sh: ExtBits}, Patterns: []Pattern[string]{op(0x40, "p")}}},
		{"primary with wildcards", Group{Name: "p", Layout: Layout{Sh: ExtBits}, Patterns: []Pattern[string]{op(0x01, "p").Ignore(0x2)}}},
		{"field too wide", Group{Name: "w", Layout: Layout{Primary: 0x04, Count: 11, Sh: 1}, Patterns: []Pattern[string]{op(0x1, "w")}}},
		{"group primary out of range", Group{Name: "w", Layout: Layout{Primary: 0x40, Count: 10, Sh: 1}, Patterns: []Pattern[string]{op(0x1, "w")}}},
		{"free bits outside field", Group{Name: "x", Layout: x, Patterns: []Pattern[string]{op(0x1, "f").Ignore(0x400)}}},
		{"missing mnemonic", Group{Name: "x", Layout: x, Patterns: []Pattern[string]{P(0x1, "a", "")}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := Validate([]Group{c.g})
			require.ErrorIs(t, err, ErrBadPattern)
			require.NotErrorIs(t, err, ErrOverlap)
		})
	}
}

func TestValidateReportsAll(t *testing.T) {
	x := Layout{Primary: 0x1F, Count: 10, Sh: 1}
	err := Validate([]Group{{Name: "x", Layout: x, Patterns: []Pattern[string]{
		op(0x400, "wide"),
		rc(0x10A, "add"),
		op(0x10A, "dup"),
	}}})
	require.ErrorIs(t, err, ErrOverlap)
	require.ErrorIs(t, err, ErrBadPattern)
	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok)
	require.Len(t, joined.Unwrap(), 2)
}

func TestPatternModifiers(t *testing.T) {
	p := rc(0x12, "fdiv").Columns(5)
	require.Equal(t, uint32(5), p.Magnitude)
	require.Equal(t, "fdiv.", p.Rc)

	q := op(0x003, "lvx").Ignore(0x004).Ignore(0x008)
	require.Equal(t, uint32(0x00C), q.Free)

	require.Panics(t, func() { op(0x1, "x").Ignore(0x1) })
	require.Panics(t, func() { op(0x1, "x").Columns(ExtBits + 1) })

	require.Equal(t, "bcl", lk(0x10, "bc").Rc)
	require.Equal(t, "sc", op(0x11, "sc").Rc)
}

func TestWalk(t *testing.T) {
	count := func(l Layout, p Pattern[string]) (n, rcs int) {
		seen := make(map[Index]bool)
		walk(l, p, func(idx Index, rc bool) {
			require.False(t, seen[idx], "index %#x visited twice", uint32(idx))
			if l.Saturated() {
				require.Equal(t, p.Value, idx.Primary())
			} else {
				require.Equal(t, l.Primary, idx.Primary())
			}
			seen[idx] = true
			n++
			if rc {
				rcs++
			}
		})
		return n, rcs
	}
	cases := []struct {
		name string
		l    Layout
		p    Pattern[string]
		n    int
		rcs  int
	}{
		{"primary", Layout{Sh: ExtBits}, op(0x0E, "addi"), 2048, 1024},
		{"x form", Layout{Primary: 0x1F, Count: 10, Sh: 1}, rc(0x10A, "add"), 2, 1},
		{"a form", Layout{Primary: 0x3F, Count: 10, Sh: 1}, rc(0x15, "fadd").Columns(5), 64, 32},
		{"md form", Layout{Primary: 0x1E, Count: 4, Sh: 1}, rc(0x0, "rldicl"), 128, 64},
		{"ds form", Layout{Primary: 0x3A, Count: 2}, op(0x2, "lwa"), 512, 0},
		{"vx128", Layout{Primary: 0x05, Count: 11}, op(0x010, "vaddfp128").Ignore(0x42F), 64, 32},
		{"vx", Layout{Primary: 0x04, Count: 11}, op(0x000, "vaddubm"), 1, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			n, rcs := count(c.l, c.p)
			require.Equal(t, c.n, n)
			require.Equal(t, c.rcs, rcs)
		})
	}
}

func TestExpandLaterEntriesWin(t *testing.T) {
	tbl := new([TableSize]string)
	l := Layout{Primary: 0x1F, Count: 10, Sh: 1}
	expand(tbl, l, []Pattern[string]{rc(0x10A, "add"), rc(0x10A, "plus")})
	require.Equal(t, "plus", tbl[IndexOf(0x7C000214)])
	require.Equal(t, "plus.", tbl[IndexOf(0x7C000215)])
	require.Equal(t, "", tbl[IndexOf(0x7C000216)])
}

func TestLayoutString(t *testing.T) {
	require.Equal(t, "primary", Layout{Sh: ExtBits}.String())
	require.Equal(t, "0x1f", Layout{Primary: 0x1F, Count: 10, Sh: 1}.String())
}
