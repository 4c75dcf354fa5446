// Package ppctest encodes PowerPC instructions and loads small programs,
// for tests of the execution backends.
package ppctest

import (
	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

// ProgramBase is where Program loads code.
const ProgramBase = 0x10000

// Program returns a fresh state with code loaded at ProgramBase and PC on
// its first instruction.
func Program(code ...uint32) *ppc.State {
	s := ppc.NewState()
	for i, w := range code {
		s.Memory.Write32(ProgramBase+uint64(i)*ppc.InstrSize, w)
	}
	s.PC = ProgramBase
	return s
}

func bit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// D encodes a D-form instruction.
func D(op, rt, ra uint32, imm int64) uint32 {
	return op<<26 | rt<<21 | ra<<16 | uint32(uint16(imm))
}

// DS encodes a DS-form instruction; imm must be a multiple of four.
func DS(op, rt, ra uint32, imm int64, xo uint32) uint32 {
	return op<<26 | rt<<21 | ra<<16 | uint32(uint16(imm))&^3 | xo
}

// X encodes an X-form instruction under primary opcode 31.
func X(rt, ra, rb, xo uint32, rc bool) uint32 {
	return ppc.OpcodeX<<26 | rt<<21 | ra<<16 | rb<<11 | xo<<1 | bit(rc)
}

// XO encodes an XO-form arithmetic instruction.
func XO(rt, ra, rb, xo uint32, oe, rc bool) uint32 {
	return ppc.OpcodeX<<26 | rt<<21 | ra<<16 | rb<<11 | bit(oe)<<10 | xo<<1 | bit(rc)
}

// M encodes a 32-bit rotate.
func M(op, rs, ra, sh, mb, me uint32, rc bool) uint32 {
	return op<<26 | rs<<21 | ra<<16 | sh<<11 | mb<<6 | me<<1 | bit(rc)
}

// MD encodes a 64-bit rotate with an immediate shift.
func MD(rs, ra, sh, mb, xo uint32, rc bool) uint32 {
	mbField := (mb&31)<<1 | mb>>5
	return ppc.OpcodeRld<<26 | rs<<21 | ra<<16 | (sh&31)<<11 | mbField<<5 | xo<<2 | (sh>>5)<<1 | bit(rc)
}

// XS encodes sradi.
func XS(rs, ra, sh uint32, rc bool) uint32 {
	return ppc.OpcodeX<<26 | rs<<21 | ra<<16 | (sh&31)<<11 | 0x19D<<2 | (sh>>5)<<1 | bit(rc)
}

// I encodes b, ba, bl and bla.
func I(li int64, aa, lk bool) uint32 {
	return ppc.OpcodeB<<26 | uint32(li)&0x03FFFFFC | bit(aa)<<1 | bit(lk)
}

// B encodes a conditional branch.
func B(bo, bi uint32, bd int64, aa, lk bool) uint32 {
	return ppc.OpcodeBc<<26 | bo<<21 | bi<<16 | uint32(uint16(bd))&0xFFFC | bit(aa)<<1 | bit(lk)
}

// XL encodes an instruction under primary opcode 19.
func XL(bt, ba, bb, xo uint32, lk bool) uint32 {
	return ppc.OpcodeCR<<26 | bt<<21 | ba<<16 | bb<<11 | xo<<1 | bit(lk)
}

// A encodes a floating-point arithmetic instruction.
func A(op, frt, fra, frb, frc, xo uint32, rc bool) uint32 {
	return op<<26 | frt<<21 | fra<<16 | frb<<11 | frc<<6 | xo<<1 | bit(rc)
}

// SPR encodes mfspr (xo 339) and mtspr (xo 467) style moves.
func SPR(rt, spr, xo uint32) uint32 {
	return ppc.OpcodeX<<26 | rt<<21 | (spr&31)<<16 | (spr>>5)<<11 | xo<<1
}

// VX128 encodes a VMX128 instruction with 7-bit register fields; value is
// the opcode bits below bit 11.
func VX128(op, value, vd, va, vb uint32) uint32 {
	return op<<26 | value |
		(vd&31)<<21 | (vd>>5)<<2 |
		(va&31)<<16 | ((va>>5)&1)<<10 | (va>>6)<<5 |
		(vb&31)<<11 | vb>>5
}

// VX128Mem encodes a VMX128 load or store: 7-bit VD, RA and RB.
func VX128Mem(value, vd, ra, rb uint32) uint32 {
	return ppc.OpcodeVMX<<26 | value | (vd&31)<<21 | (vd>>5)<<2 | ra<<16 | rb<<11
}
