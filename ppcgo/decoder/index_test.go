package decoder

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexOf(t *testing.T) {
	cases := []struct {
		instr   uint32
		primary uint32
		ext     uint32
	}{
		{0x7C000214, 0x1F, 0x214},
		{0x7C632215, 0x1F, 0x215},
		{0x60000000, 0x18, 0},
		{0x4E800020, 0x13, 0x020},
		{0xFFFFFFFF, 0x3F, 0x7FF},
		{0x00000000, 0, 0},
	}
	for _, c := range cases {
		idx := IndexOf(c.instr)
		require.Less(t, uint32(idx), uint32(TableSize))
		require.Equal(t, c.primary, idx.Primary(), "primary of %08x", c.instr)
		require.Equal(t, c.ext, idx.Ext(), "ext of %08x", c.instr)
		require.Equal(t, idx, IndexOf(wordOf(idx)))
	}
	require.Equal(t, uint32(0x10A), IndexOf(0x7C000214).XO())
}

func TestIndexOfIgnoresOperands(t *testing.T) {
	// bits 6..20 carry registers and immediates only
	for _, operands := range []uint32{0, 0x03FFF800, 0x01234000, 0x00631800} {
		require.Equal(t, IndexOf(0x7C000214), IndexOf(0x7C000214|operands))
	}
}

func TestIsBranch(t *testing.T) {
	branches := map[string]uint32{
		"b":      0x48000010,
		"bl":     0x48000011,
		"ba":     0x48000012,
		"bc":     0x40820008,
		"bcl":    0x429F0005,
		"blr":    0x4E800020,
		"blrl":   0x4E800021,
		"bctr":   0x4E800420,
		"bctrl":  0x4E800421,
		"rfid":   0x4C000024,
		"beqlr":  0x4D820020,
		"bdnzlr": 0x4E000020,
	}
	for name, w := range branches {
		require.True(t, IsBranch(IndexOf(w)), name)
	}
	others := map[string]uint32{
		"isync": 0x4C00012C,
		"mcrf":  0x4C000000,
		"crclr": 0x4CC63182,
		"cror":  0x4C221B82,
		"sc":    0x44000002,
		"nop":   0x60000000,
		"li":    0x38600000,
		"add":   0x7C000214,
		"mtlr":  0x7C0803A6,
		"bclr?": 0x4C000022, // xo 0x011, between bclr and rfid
	}
	for name, w := range others {
		require.False(t, IsBranch(IndexOf(w)), name)
	}
}
