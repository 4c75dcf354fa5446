package ppctest

import "github.com/xenon-emu/xcpu/ppcgo/ppc"

// Common encodings, named by their assembler mnemonics.

func Addi(rd, ra uint32, imm int64) uint32  { return D(ppc.OpcodeAddi, rd, ra, imm) }
func Addis(rd, ra uint32, imm int64) uint32 { return D(ppc.OpcodeAddis, rd, ra, imm) }
func Li(rd uint32, imm int64) uint32        { return Addi(rd, 0, imm) }
func Ori(ra, rs uint32, imm uint16) uint32  { return D(ppc.OpcodeOri, rs, ra, int64(imm)) }
func Cmpi(crf uint32, l bool, ra uint32, imm int64) uint32 {
	return D(0x0B, crf<<2|bit(l), ra, imm)
}
func Lwz(rd, ra uint32, imm int64) uint32 { return D(ppc.OpcodeLwz, rd, ra, imm) }
func Stw(rs, ra uint32, imm int64) uint32 { return D(ppc.OpcodeStw, rs, ra, imm) }
func Ld(rd, ra uint32, imm int64) uint32  { return DS(ppc.OpcodeDSLoad, rd, ra, imm, 0) }
func Std(rs, ra uint32, imm int64) uint32 { return DS(ppc.OpcodeDSStore, rs, ra, imm, 0) }

func Add(rd, ra, rb uint32) uint32  { return XO(rd, ra, rb, 0x10A, false, false) }
func Subf(rd, ra, rb uint32) uint32 { return XO(rd, ra, rb, 0x028, false, false) }
func Or(ra, rs, rb uint32) uint32   { return X(rs, ra, rb, 0x1BC, false) }
func Mr(ra, rs uint32) uint32       { return Or(ra, rs, rs) }

func Rlwinm(ra, rs, sh, mb, me uint32) uint32 { return M(ppc.OpcodeRlwinm, rs, ra, sh, mb, me, false) }

func Mtctr(rs uint32) uint32 { return SPR(rs, ppc.SprCTR, 0x1D3) }
func Mflr(rd uint32) uint32  { return SPR(rd, ppc.SprLR, 0x153) }
func Mtlr(rs uint32) uint32  { return SPR(rs, ppc.SprLR, 0x1D3) }

// Bdnz branches by bd while the decremented CTR is non-zero.
func Bdnz(bd int64) uint32 { return B(0x10, 0, bd, false, false) }

// Beq branches by bd when CR field crf has EQ set.
func Beq(crf uint32, bd int64) uint32 { return B(0x0C, crf*4+2, bd, false, false) }

// Blr returns through LR.
func Blr() uint32 { return XL(0x14, 0, 0, ppc.XOBclr, false) }

func Sc() uint32 { return ppc.OpcodeSc<<26 | 2 }

func Icbi(ra, rb uint32) uint32 { return X(0, ra, rb, 0x3D6, false) }

func Nop() uint32 { return ppc.NopWord }
