package ppc

import "fmt"

// Instr is a raw 32-bit PowerPC instruction word.
//
// The accessors below use the conventional field names of the Power ISA.
// Bit positions in comments use PowerPC numbering, where bit 0 is the most
// significant bit of the word; the shifts use the usual LSB-0 arithmetic.
// Fields are ignored if not applicable to the instruction form.
type Instr uint32

func (i Instr) String() string {
	return fmt.Sprintf("%08x", uint32(i))
}

// Primary is the primary opcode, bits 0..5.
func (i Instr) Primary() uint32 { return uint32(i) >> 26 }

// RD is the target register field, bits 6..10. It doubles as RS, FRT, VD,
// BO and TO depending on the form.
func (i Instr) RD() uint32 { return (uint32(i) >> 21) & 31 }

// RS is an alias of RD for store and logical forms.
func (i Instr) RS() uint32 { return i.RD() }

// RA is bits 11..15. It doubles as BI.
func (i Instr) RA() uint32 { return (uint32(i) >> 16) & 31 }

// RB is bits 16..20. It doubles as SH in the 32-bit rotate forms.
func (i Instr) RB() uint32 { return (uint32(i) >> 11) & 31 }

// RC is the A-form FRC field, bits 21..25.
func (i Instr) RC() uint32 { return (uint32(i) >> 6) & 31 }

// BO and BI are the branch condition fields of B-form and XL-form branches.
func (i Instr) BO() uint32 { return i.RD() }
func (i Instr) BI() uint32 { return i.RA() }

// CRFD is the target CR field of compares and mcrf, bits 6..8.
func (i Instr) CRFD() uint32 { return (uint32(i) >> 23) & 7 }

// CRFS is the source CR field of mcrf, bits 11..13.
func (i Instr) CRFS() uint32 { return (uint32(i) >> 18) & 7 }

// L selects 64-bit compares, bit 10.
func (i Instr) L() bool { return (uint32(i)>>21)&1 != 0 }

// XO is the 10-bit extended opcode of X/XL/XFX-forms, bits 21..30.
func (i Instr) XO() uint32 { return (uint32(i) >> 1) & 0x3FF }

// OE is the overflow-enable bit of XO-forms, bit 21.
func (i Instr) OE() bool { return (uint32(i)>>10)&1 != 0 }

// Rc is the record bit, bit 31.
func (i Instr) Rc() bool { return uint32(i)&1 != 0 }

// LK is the link bit of branches, bit 31.
func (i Instr) LK() bool { return uint32(i)&1 != 0 }

// AA is the absolute-address bit of branches, bit 30.
func (i Instr) AA() bool { return (uint32(i)>>1)&1 != 0 }

// SIMM is the sign-extended 16-bit immediate, bits 16..31.
func (i Instr) SIMM() int64 { return int64(int16(uint16(i))) }

// UIMM is the zero-extended 16-bit immediate, bits 16..31.
func (i Instr) UIMM() uint64 { return uint64(uint16(i)) }

// DS is the sign-extended DS-form displacement (low two bits cleared).
func (i Instr) DS() int64 { return int64(int16(uint16(i) &^ 3)) }

// LI is the sign-extended I-form branch displacement, bits 6..29 || 0b00.
func (i Instr) LI() int64 { return int64(int32(uint32(i)<<6)>>6) &^ 3 }

// BD is the sign-extended B-form branch displacement, bits 16..29 || 0b00.
func (i Instr) BD() int64 { return int64(int16(uint16(i) &^ 3)) }

// SH32, MB32 and ME32 are the M-form rotate fields.
func (i Instr) SH32() uint32 { return i.RB() }
func (i Instr) MB32() uint32 { return (uint32(i) >> 6) & 31 }
func (i Instr) ME32() uint32 { return (uint32(i) >> 1) & 31 }

// SH64 is the 6-bit MD/XS-form shift: sh0:4 in bits 16..20, sh5 in bit 30.
func (i Instr) SH64() uint32 { return i.RB() | ((uint32(i)>>1)&1)<<5 }

// MB64 is the 6-bit MD/MDS-form mask boundary, stored as mb5 || mb0:4 in
// bits 21..26. ME64 shares the same field for rldicr and rldcr.
func (i Instr) MB64() uint32 {
	f := (uint32(i) >> 5) & 0x3F
	return (f&1)<<5 | f>>1
}

func (i Instr) ME64() uint32 { return i.MB64() }

// SPR is the special purpose register number with its two halves swapped
// back into order.
func (i Instr) SPR() uint32 {
	return i.RA() | i.RB()<<5
}

// FXM is the CR field mask of mtcrf/mtocrf, bits 12..19.
func (i Instr) FXM() uint32 { return (uint32(i) >> 12) & 0xFF }

// VD128 is the 7-bit VMX128 target register: VD128l in bits 6..10 and
// VD128h in bits 28..29.
func (i Instr) VD128() uint32 { return i.RD() | ((uint32(i)>>2)&3)<<5 }

// VA128 is the 7-bit VMX128 source A register: VA128l in bits 11..15,
// VA128h in bit 21 and VA128H in bit 26.
func (i Instr) VA128() uint32 {
	return i.RA() | ((uint32(i)>>10)&1)<<5 | ((uint32(i)>>5)&1)<<6
}

// VB128 is the 7-bit VMX128 source B register: VB128l in bits 16..20 and
// VB128h in bits 30..31.
func (i Instr) VB128() uint32 { return i.RB() | (uint32(i)&3)<<5 }

// SIMM5 is the sign-extended 5-bit immediate of vspltis*, in the VA field.
func (i Instr) SIMM5() int32 { return int32(i.RA()<<27) >> 27 }
