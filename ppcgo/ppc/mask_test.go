package ppc

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRotateMask(t *testing.T) {
	cases := []struct {
		mb, me uint32
		want   uint64
	}{
		{0, 0, 1 << 63},
		{63, 63, 1},
		{0, 63, ^uint64(0)},
		{32, 63, 0x00000000_FFFFFFFF},
		{0, 31, 0xFFFFFFFF_00000000},
		{16, 23, 0x0000FF00_00000000},
		// wrap-around through bit 63 back to bit 0
		{60, 3, 0xF0000000_0000000F},
		{63, 0, 0x80000000_00000001},
		{33, 32, ^uint64(0)},
	}
	for _, c := range cases {
		require.Equalf(t, c.want, RotateMask(c.mb, c.me), "mask(%d, %d)", c.mb, c.me)
	}
}

func TestRotateMaskWidth(t *testing.T) {
	for mb := uint32(0); mb < 64; mb++ {
		for me := uint32(0); me < 64; me++ {
			m := RotateMask(mb, me)
			want := int((me-mb)&63) + 1
			require.Equal(t, want, bits.OnesCount64(m), "mask(%d, %d)", mb, me)
			require.NotZero(t, m&(1<<(63-mb)), "bit mb of mask(%d, %d)", mb, me)
			require.NotZero(t, m&(1<<(63-me)), "bit me of mask(%d, %d)", mb, me)
		}
	}
}

func TestRotl(t *testing.T) {
	require.Equal(t, uint64(0x00000003_00000003), Rotl32(0xFFFF0000_80000001, 1))
	require.Equal(t, uint64(0x12345678_12345678), Rotl32(0x12345678, 32))
	require.Equal(t, uint64(0x00000000_00000003), Rotl64(0x80000000_00000001, 1))
	require.Equal(t, uint64(0x80000000_00000001), Rotl64(0x80000000_00000001, 64))
}
