package ppc

import "math/bits"

// RotateMask returns the 64-bit mask with bits mb..me set, in PowerPC bit
// numbering (bit 0 is the most significant). When me < mb the mask wraps
// around through bit 63 back to bit 0.
func RotateMask(mb, me uint32) uint64 {
	mask := ^uint64(0) << (^(me - mb) & 63)
	return (mask >> (mb & 63)) | (mask << ((64 - mb) & 63))
}

// Rotl32 rotates the low word of v and replicates the result into both
// halves, the way the 32-bit rotate instructions define ROTL32.
func Rotl32(v uint64, n uint32) uint64 {
	r := uint64(bits.RotateLeft32(uint32(v), int(n&31)))
	return r | r<<32
}

// Rotl64 rotates v left by n&63 bits.
func Rotl64(v uint64, n uint32) uint64 {
	return bits.RotateLeft64(v, int(n&63))
}
