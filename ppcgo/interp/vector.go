package interp

import (
	"encoding/binary"

	"github.com/holiman/uint256"

	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

// VectorSize is the size of a vector register and of the aligned block
// lvx and stvx transfer.
const VectorSize = 16

// vecOperands picks the register numbers of a vector instruction form.
type vecOperands func(i ppc.Instr) (vd, va, vb uint32)

func vx(i ppc.Instr) (uint32, uint32, uint32)    { return i.RD(), i.RA(), i.RB() }
func vx128(i ppc.Instr) (uint32, uint32, uint32) { return i.VD128(), i.VA128(), i.VB128() }

func vecLogical(regs vecOperands, op func(z, a, b *uint256.Int)) func(s *ppc.State) {
	return func(s *ppc.State) {
		vd, va, vb := regs(s.Instr)
		var z uint256.Int
		op(&z, s.VR[va].Int(), s.VR[vb].Int())
		s.VR[vd].Set(&z)
	}
}

// vecEA is the quadword-aligned effective address of the vector memory forms.
func vecEA(s *ppc.State) uint64 {
	return eaX(s) &^ (VectorSize - 1)
}

func splat32(v uint32) []byte {
	b := make([]byte, VectorSize)
	for i := 0; i < VectorSize; i += 4 {
		binary.BigEndian.PutUint32(b[i:], v)
	}
	return b
}

func (r *Registry) registerVector() {
	and := func(z, a, b *uint256.Int) { z.And(a, b) }
	andc := func(z, a, b *uint256.Int) { z.And(a, new(uint256.Int).Not(b)) }
	or := func(z, a, b *uint256.Int) { z.Or(a, b) }
	xor := func(z, a, b *uint256.Int) { z.Xor(a, b) }
	nor := func(z, a, b *uint256.Int) { z.Not(z.Or(a, b)) }
	for _, f := range []struct {
		regs vecOperands
		sfx  string
	}{{vx, ""}, {vx128, "128"}} {
		r.Register(vecLogical(f.regs, and), "vand"+f.sfx)
		r.Register(vecLogical(f.regs, andc), "vandc"+f.sfx)
		r.Register(vecLogical(f.regs, or), "vor"+f.sfx)
		r.Register(vecLogical(f.regs, xor), "vxor"+f.sfx)
		r.Register(vecLogical(f.regs, nor), "vnor"+f.sfx)
	}
	// vsel takes its mask from vC, vsel128 from vD
	r.Register(func(s *ppc.State) {
		i := s.Instr
		sel(&s.VR[i.RD()], s.VR[i.RA()].Int(), s.VR[i.RB()].Int(), s.VR[i.RC()].Int())
	}, "vsel")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		vd := &s.VR[i.VD128()]
		sel(vd, s.VR[i.VA128()].Int(), s.VR[i.VB128()].Int(), vd.Int())
	}, "vsel128")

	// loads and stores; the 128 forms carry a 7-bit VD
	loadVec := func(vd func(ppc.Instr) uint32) func(s *ppc.State) {
		return func(s *ppc.State) {
			var b [VectorSize]byte
			s.Memory.Read(vecEA(s), b[:])
			s.VR[vd(s.Instr)].SetBytes(b[:])
		}
	}
	storeVec := func(vd func(ppc.Instr) uint32) func(s *ppc.State) {
		return func(s *ppc.State) {
			b := s.VR[vd(s.Instr)].Bytes()
			s.Memory.Write(vecEA(s), b[:])
		}
	}
	r.Register(loadVec(ppc.Instr.RD), "lvx", "lvxl")
	r.Register(storeVec(ppc.Instr.RS), "stvx", "stvxl")
	r.Register(loadVec(ppc.Instr.VD128), "lvx128", "lvxl128")
	r.Register(storeVec(ppc.Instr.VD128), "stvx128", "stvxl128")

	// permute control vectors for unaligned loads
	shiftVec := func(vd func(ppc.Instr) uint32, right bool) func(s *ppc.State) {
		return func(s *ppc.State) {
			sh := byte(eaX(s) & (VectorSize - 1))
			if right {
				sh = VectorSize - sh
			}
			var b [VectorSize]byte
			for n := range b {
				b[n] = sh + byte(n)
			}
			s.VR[vd(s.Instr)].SetBytes(b[:])
		}
	}
	r.Register(shiftVec(ppc.Instr.RD, false), "lvsl")
	r.Register(shiftVec(ppc.Instr.RD, true), "lvsr")
	r.Register(shiftVec(ppc.Instr.VD128, false), "lvsl128")
	r.Register(shiftVec(ppc.Instr.VD128, true), "lvsr128")

	// splats of a sign-extended 5-bit immediate
	r.Register(func(s *ppc.State) {
		v := uint32(uint8(s.Instr.SIMM5()))
		s.VR[s.Instr.RD()].SetBytes(splat32(v | v<<8 | v<<16 | v<<24))
	}, "vspltisb")
	r.Register(func(s *ppc.State) {
		v := uint32(uint16(s.Instr.SIMM5()))
		s.VR[s.Instr.RD()].SetBytes(splat32(v | v<<16))
	}, "vspltish")
	r.Register(func(s *ppc.State) {
		s.VR[s.Instr.RD()].SetBytes(splat32(uint32(s.Instr.SIMM5())))
	}, "vspltisw")
	r.Register(func(s *ppc.State) {
		imm := int32(s.Instr.RB()<<27) >> 27
		s.VR[s.Instr.VD128()].SetBytes(splat32(uint32(imm)))
	}, "vspltisw128")

	r.Register(func(s *ppc.State) {
		var b [VectorSize]byte
		binary.BigEndian.PutUint32(b[12:], s.VSCR)
		s.VR[s.Instr.RD()].SetBytes(b[:])
	}, "mfvscr")
	r.Register(func(s *ppc.State) {
		b := s.VR[s.Instr.RB()].Bytes()
		s.VSCR = binary.BigEndian.Uint32(b[12:])
	}, "mtvscr")
}

// sel sets each bit of vd from b where mask is set, from a elsewhere.
func sel(vd *ppc.Vec128, a, b, mask *uint256.Int) {
	var lo, hi uint256.Int
	lo.And(a, new(uint256.Int).Not(mask))
	hi.And(b, mask)
	vd.Set(lo.Or(&lo, &hi))
}
