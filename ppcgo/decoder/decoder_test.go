package decoder

import (
	"errors"
	"fmt"
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

func newTestDecoder(t testing.TB, opts ...Option) *Decoder {
	d, err := New(stubHandlers{}, stubJITHandlers{}, opts...)
	require.NoError(t, err)
	return d
}

// expectDecode checks all three tables agree with the expected mnemonic.
func expectDecode(t *testing.T, d *Decoder, s *ppc.State, word uint32, name string) {
	t.Helper()
	s.Instr = ppc.Instr(word)
	require.Equal(t, name, d.DecodeName(word), "name of %08x", word)
	require.Equal(t, name, ranJIT(s, d.DecodeJIT(word)), "jit handler of %08x", word)
	if word != ppc.NopWord {
		require.Equal(t, name, ran(s, d.Decode(word)), "handler of %08x", word)
	}
}

func TestEveryPattern(t *testing.T) {
	d := newTestDecoder(t)
	s := ppc.NewState()
	for _, g := range d.Groups() {
		g := g
		t.Run(g.Name, func(t *testing.T) {
			l := g.Layout
			for _, p := range g.Patterns {
				if l.Saturated() {
					word := p.Value << 26
					expectDecode(t, d, s, word, p.Plain)
					expectDecode(t, d, s, word|1, p.Rc)
					expectDecode(t, d, s, word|0x03FFFFFE, p.Plain)
					continue
				}
				k := p.Value << l.Sh
				word := l.Primary<<26 | k
				name := p.Plain
				if k&1 != 0 {
					name = p.Rc
				}
				expectDecode(t, d, s, word, name)
				if l.Sh > 0 {
					expectDecode(t, d, s, word|1, p.Rc)
				}
				// free bits and magnitude columns select the same entry
				expectDecode(t, d, s, word|p.Free<<l.Sh, name)
				if p.Magnitude > 0 {
					cols := uint32(1)<<p.Magnitude - 1
					expectDecode(t, d, s, word|cols<<(l.Count-p.Magnitude+l.Sh), name)
				}
				// register and immediate fields
				expectDecode(t, d, s, word|0x03FFF800, name)
			}
		})
	}
}

func TestRecordForms(t *testing.T) {
	d := newTestDecoder(t)
	s := ppc.NewState()
	cases := []struct {
		word uint32
		name string
	}{
		{0x7C000214, "add"},
		{0x7C000215, "add."},
		{0x7C000614, "addo"},
		{0x7C000615, "addo."},
		{0x7C632214, "add"},
		{0x5483103A, "rlwinm"},
		{0x5483103B, "rlwinm."},
		{0x78630020, "rldicl"},
		{0x78630021, "rldicl."},
		{0x48000010, "b"},
		{0x48000011, "bl"},
		{0x4E800020, "bclr"},
		{0x4E800021, "bclrl"},
		{0x4E800420, "bcctr"},
		{0x4E800421, "bcctrl"},
		{0x7C64012D, "stwcx."},
		{0x7C6401AD, "stdcx."},
		{0x10011006, "vcmpequb"},
		{0x10011406, "vcmpequb."},
		{0x18011000, "vcmpeqfp128"},
		{0x18011040, "vcmpeqfp128."},
		{0xFC21102A, "fadd"},
		{0xFC21102B, "fadd."},
		{0xEC2100B2, "fmuls"},
	}
	for _, c := range cases {
		expectDecode(t, d, s, c.word, c.name)
	}
}

func TestNopFastPath(t *testing.T) {
	d := newTestDecoder(t)
	s := ppc.NewState()
	require.Equal(t, "nop", ran(s, d.Decode(ppc.NopWord)))
	require.Equal(t, "ori", d.DecodeName(ppc.NopWord))
	require.Equal(t, "ori", ranJIT(s, d.DecodeJIT(ppc.NopWord)))
	// the table itself still holds ori
	require.Equal(t, "ori", ran(s, d.Table().At(IndexOf(ppc.NopWord))))
	// any other ori takes the table path
	require.Equal(t, "ori", ran(s, d.Decode(0x60630001)))
}

func TestInvalid(t *testing.T) {
	d := newTestDecoder(t)
	s := ppc.NewState()
	for _, word := range []uint32{
		0x00000000, // primary 0
		0x04000000, // primary 1
		0x4C000022, // group 0x13, xo 0x011
		0x7C0007FE, // group 0x1F, xo 0x3FF
		0xE8000003, // ds-load, xo 3
		0xF8000002, // ds-store, xo 2
		0x10000001, // vmx, odd VX value
	} {
		expectDecode(t, d, s, word, InvalidName)
	}
	names := d.NameTable()
	require.Equal(t, TableSize, names.Len())
	names.Range(func(idx Index, name string) bool {
		require.NotEmpty(t, name, "index %#x", uint32(idx))
		return true
	})
}

func TestUnimplemented(t *testing.T) {
	d, err := New(stubHandlers{missing: map[string]bool{"add.": true}}, stubJITHandlers{})
	require.NoError(t, err)
	s := ppc.NewState()
	require.Equal(t, "add", ran(s, d.Decode(0x7C000214)))
	require.Equal(t, "unimplemented add.", ran(s, d.Decode(0x7C000215)))
	require.Equal(t, "add.", d.DecodeName(0x7C000215))
}

func TestDecodeConsistency(t *testing.T) {
	d := newTestDecoder(t)
	s := ppc.NewState()
	table, jitTable := d.Table(), d.JITTable()
	d.NameTable().Range(func(idx Index, name string) bool {
		s.Instr = ppc.Instr(wordOf(idx))
		require.Equal(t, name, ran(s, table.At(idx)), "index %#x", uint32(idx))
		require.Equal(t, name, ranJIT(s, jitTable.At(idx)), "index %#x", uint32(idx))
		return true
	})
}

func TestIsBranchMatchesNames(t *testing.T) {
	d := newTestDecoder(t)
	branches := map[string]bool{
		"b": true, "bl": true, "bc": true, "bcl": true,
		"bclr": true, "bclrl": true, "bcctr": true, "bcctrl": true,
		"rfid": true,
	}
	d.NameTable().Range(func(idx Index, name string) bool {
		require.Equal(t, branches[name], IsBranch(idx), "%s at %#x", name, uint32(idx))
		return true
	})
	require.True(t, d.IsBranch(0x4E800020))
	require.False(t, d.IsBranch(0x4C00012C))
}

func TestMnemonics(t *testing.T) {
	d := newTestDecoder(t)
	ms := d.Mnemonics()
	require.IsIncreasing(t, ms)
	require.Contains(t, ms, "add")
	require.Contains(t, ms, "add.")
	require.Contains(t, ms, "vsldoi128")
	require.Contains(t, ms, "bcctrl")
	require.NotContains(t, ms, InvalidName)
}

func TestGroupsAreCopies(t *testing.T) {
	gs := Groups()
	gs[0].Patterns[0].Plain = "changed"
	require.NotEqual(t, "changed", Groups()[0].Patterns[0].Plain)

	d := newTestDecoder(t, WithGroups(gs))
	gs[0].Patterns[0].Plain = "again"
	require.Equal(t, "changed", d.Groups()[0].Patterns[0].Plain)
	require.Equal(t, "changed", d.DecodeName(gs[0].Patterns[0].Value<<26))
}

func TestNewRejectsOverlap(t *testing.T) {
	gs := append(Groups(), Group{
		Name:     "clash",
		Layout:   Layout{Primary: 0x1F, Count: 10, Sh: 1},
		Patterns: []Pattern[string]{rc(0x10A, "plus")},
	})
	_, err := New(stubHandlers{}, stubJITHandlers{}, WithGroups(gs))
	require.ErrorIs(t, err, ErrOverlap)
	var se *SpecError
	require.True(t, errors.As(err, &se))
	require.Equal(t, "plus", se.Pattern)
	require.Equal(t, "add", se.Other)
	require.Equal(t, IndexOf(0x7C000214), se.Index)
}

func TestConcurrentDecode(t *testing.T) {
	d := newTestDecoder(t)
	want := make([]string, 1<<12)
	for i := range want {
		want[i] = d.DecodeName(bits.Reverse32(uint32(i)) | uint32(i))
	}
	var g errgroup.Group
	for w := 0; w < 8; w++ {
		g.Go(func() error {
			for i := range want {
				word := bits.Reverse32(uint32(i)) | uint32(i)
				if got := d.DecodeName(word); got != want[i] {
					return fmt.Errorf("word %08x: got %q, want %q", word, got, want[i])
				}
				if d.Decode(word) == nil || d.DecodeJIT(word) == nil {
					return fmt.Errorf("word %08x: nil handler", word)
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func BenchmarkDecode(b *testing.B) {
	d := newTestDecoder(b)
	benchmarks := []struct {
		name string
		word uint32
	}{
		{"Nop", ppc.NopWord},
		{"Add", 0x7C632214},
		{"Branch", 0x4E800020},
		{"VMX128", 0x14011050},
		{"Invalid", 0x00000000},
	}
	for _, bm := range benchmarks {
		b.Run(bm.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = d.Decode(bm.word)
			}
		})
	}
	b.Run("Name", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			_ = d.DecodeName(uint32(i))
		}
	})
}

func BenchmarkNew(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_ = newTestDecoder(b)
	}
}
