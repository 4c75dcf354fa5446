package interp

import (
	"math"
	"math/bits"

	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

// ra0 is the (RA|0) operand: zero when RA names r0.
func ra0(s *ppc.State) uint64 {
	if ra := s.Instr.RA(); ra != 0 {
		return s.GPR[ra]
	}
	return 0
}

func record(s *ppc.State, v uint64) {
	if s.Instr.Rc() {
		s.Record(v)
	}
}

// setOV updates XER[OV] and the sticky XER[SO] for the OE=1 forms.
func setOV(s *ppc.State, ov bool) {
	if !s.Instr.OE() {
		return
	}
	if ov {
		s.XER |= ppc.XerOV | ppc.XerSO
	} else {
		s.XER &^= ppc.XerOV
	}
}

// setRD writes an XO-form result to RD, with OE and Rc handling.
func setRD(s *ppc.State, v uint64, ov bool) {
	setOV(s, ov)
	s.GPR[s.Instr.RD()] = v
	record(s, v)
}

// setRA writes an X-form logical result to RA.
func setRA(s *ppc.State, v uint64) {
	s.GPR[s.Instr.RA()] = v
	record(s, v)
}

func addOverflow(a, b, sum uint64) bool {
	return ((a^sum)&(b^sum))>>63 != 0
}

func (r *Registry) registerInteger() {
	// immediate forms
	r.Register(func(s *ppc.State) {
		i := s.Instr
		s.GPR[i.RD()] = ra0(s) + uint64(i.SIMM())
	}, "addi")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		s.GPR[i.RD()] = ra0(s) + uint64(i.SIMM()<<16)
	}, "addis")
	addic := func(s *ppc.State) {
		i := s.Instr
		sum, carry := bits.Add64(s.GPR[i.RA()], uint64(i.SIMM()), 0)
		s.GPR[i.RD()] = sum
		s.SetCA(carry != 0)
		if i.Primary() == 0x0D {
			s.Record(sum)
		}
	}
	r.Register(addic, "addic", "addic.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		v, carry := bits.Add64(^s.GPR[i.RA()], uint64(i.SIMM()), 1)
		s.GPR[i.RD()] = v
		s.SetCA(carry != 0)
	}, "subfic")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		s.GPR[i.RD()] = uint64(int64(s.GPR[i.RA()]) * i.SIMM())
	}, "mulli")

	// XO-form arithmetic
	r.Register(func(s *ppc.State) {
		i := s.Instr
		a, b := s.GPR[i.RA()], s.GPR[i.RB()]
		v := a + b
		setRD(s, v, addOverflow(a, b, v))
	}, "add", "add.", "addo", "addo.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		a, b := ^s.GPR[i.RA()], s.GPR[i.RB()]
		v := a + b + 1
		setRD(s, v, addOverflow(a, b, v))
	}, "subf", "subf.", "subfo", "subfo.")
	r.Register(func(s *ppc.State) {
		a := s.GPR[s.Instr.RA()]
		setRD(s, -a, a == 1<<63)
	}, "neg", "neg.", "nego", "nego.")

	// carrying forms: rd = x + y + cin
	carrying := func(operands func(s *ppc.State) (x, y, cin uint64)) func(s *ppc.State) {
		return func(s *ppc.State) {
			x, y, cin := operands(s)
			v, carry := bits.Add64(x, y, cin)
			s.SetCA(carry != 0)
			setRD(s, v, addOverflow(x, y, v))
		}
	}
	r.Register(carrying(func(s *ppc.State) (uint64, uint64, uint64) {
		return s.GPR[s.Instr.RA()], s.GPR[s.Instr.RB()], 0
	}), "addc", "addc.", "addco", "addco.")
	r.Register(carrying(func(s *ppc.State) (uint64, uint64, uint64) {
		return s.GPR[s.Instr.RA()], s.GPR[s.Instr.RB()], s.CA()
	}), "adde", "adde.", "addeo", "addeo.")
	r.Register(carrying(func(s *ppc.State) (uint64, uint64, uint64) {
		return s.GPR[s.Instr.RA()], 0, s.CA()
	}), "addze", "addze.", "addzeo", "addzeo.")
	r.Register(carrying(func(s *ppc.State) (uint64, uint64, uint64) {
		return s.GPR[s.Instr.RA()], ^uint64(0), s.CA()
	}), "addme", "addme.", "addmeo", "addmeo.")
	r.Register(carrying(func(s *ppc.State) (uint64, uint64, uint64) {
		return ^s.GPR[s.Instr.RA()], s.GPR[s.Instr.RB()], 1
	}), "subfc", "subfc.", "subfco", "subfco.")
	r.Register(carrying(func(s *ppc.State) (uint64, uint64, uint64) {
		return ^s.GPR[s.Instr.RA()], s.GPR[s.Instr.RB()], s.CA()
	}), "subfe", "subfe.", "subfeo", "subfeo.")
	r.Register(carrying(func(s *ppc.State) (uint64, uint64, uint64) {
		return ^s.GPR[s.Instr.RA()], 0, s.CA()
	}), "subfze", "subfze.", "subfzeo", "subfzeo.")
	r.Register(carrying(func(s *ppc.State) (uint64, uint64, uint64) {
		return ^s.GPR[s.Instr.RA()], ^uint64(0), s.CA()
	}), "subfme", "subfme.", "subfmeo", "subfmeo.")

	// multiply and divide
	r.Register(func(s *ppc.State) {
		i := s.Instr
		v := int64(int32(s.GPR[i.RA()])) * int64(int32(s.GPR[i.RB()]))
		setRD(s, uint64(v), v != int64(int32(v)))
	}, "mullw", "mullw.", "mullwo", "mullwo.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		a, b := int64(s.GPR[i.RA()]), int64(s.GPR[i.RB()])
		hi, lo := mulSigned(a, b)
		setRD(s, lo, hi != uint64(int64(lo)>>63))
	}, "mulld", "mulld.", "mulldo", "mulldo.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		v := int64(int32(s.GPR[i.RA()])) * int64(int32(s.GPR[i.RB()]))
		setRD(s, uint64(v>>32), false)
	}, "mulhw", "mulhw.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		v := uint64(uint32(s.GPR[i.RA()])) * uint64(uint32(s.GPR[i.RB()]))
		setRD(s, v>>32, false)
	}, "mulhwu", "mulhwu.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		hi, _ := mulSigned(int64(s.GPR[i.RA()]), int64(s.GPR[i.RB()]))
		setRD(s, hi, false)
	}, "mulhd", "mulhd.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		hi, _ := bits.Mul64(s.GPR[i.RA()], s.GPR[i.RB()])
		setRD(s, hi, false)
	}, "mulhdu", "mulhdu.")
	// undefined quotients read as zero, with OV set
	r.Register(func(s *ppc.State) {
		i := s.Instr
		a, b := int32(s.GPR[i.RA()]), int32(s.GPR[i.RB()])
		if b == 0 || (a == math.MinInt32 && b == -1) {
			setRD(s, 0, true)
			return
		}
		setRD(s, uint64(uint32(a/b)), false)
	}, "divw", "divw.", "divwo", "divwo.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		a, b := uint32(s.GPR[i.RA()]), uint32(s.GPR[i.RB()])
		if b == 0 {
			setRD(s, 0, true)
			return
		}
		setRD(s, uint64(a/b), false)
	}, "divwu", "divwu.", "divwuo", "divwuo.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		a, b := int64(s.GPR[i.RA()]), int64(s.GPR[i.RB()])
		if b == 0 || (a == math.MinInt64 && b == -1) {
			setRD(s, 0, true)
			return
		}
		setRD(s, uint64(a/b), false)
	}, "divd", "divd.", "divdo", "divdo.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		a, b := s.GPR[i.RA()], s.GPR[i.RB()]
		if b == 0 {
			setRD(s, 0, true)
			return
		}
		setRD(s, a/b, false)
	}, "divdu", "divdu.", "divduo", "divduo.")

	// logical
	logical := func(op func(a, b uint64) uint64) func(s *ppc.State) {
		return func(s *ppc.State) {
			i := s.Instr
			setRA(s, op(s.GPR[i.RS()], s.GPR[i.RB()]))
		}
	}
	r.Register(logical(func(a, b uint64) uint64 { return a & b }), "and", "and.")
	r.Register(logical(func(a, b uint64) uint64 { return a &^ b }), "andc", "andc.")
	r.Register(logical(func(a, b uint64) uint64 { return a | b }), "or", "or.")
	r.Register(logical(func(a, b uint64) uint64 { return a | ^b }), "orc", "orc.")
	r.Register(logical(func(a, b uint64) uint64 { return a ^ b }), "xor", "xor.")
	r.Register(logical(func(a, b uint64) uint64 { return ^(a & b) }), "nand", "nand.")
	r.Register(logical(func(a, b uint64) uint64 { return ^(a | b) }), "nor", "nor.")
	r.Register(logical(func(a, b uint64) uint64 { return ^(a ^ b) }), "eqv", "eqv.")

	immediate := func(op func(a, imm uint64) uint64, rc bool) func(s *ppc.State) {
		return func(s *ppc.State) {
			i := s.Instr
			v := op(s.GPR[i.RS()], i.UIMM())
			s.GPR[i.RA()] = v
			if rc {
				s.Record(v)
			}
		}
	}
	r.Register(immediate(func(a, imm uint64) uint64 { return a | imm }, false), "ori")
	r.Register(immediate(func(a, imm uint64) uint64 { return a | imm<<16 }, false), "oris")
	r.Register(immediate(func(a, imm uint64) uint64 { return a ^ imm }, false), "xori")
	r.Register(immediate(func(a, imm uint64) uint64 { return a ^ imm<<16 }, false), "xoris")
	r.Register(immediate(func(a, imm uint64) uint64 { return a & imm }, true), "andi.")
	r.Register(immediate(func(a, imm uint64) uint64 { return a & (imm << 16) }, true), "andis.")

	unary := func(op func(a uint64) uint64) func(s *ppc.State) {
		return func(s *ppc.State) {
			setRA(s, op(s.GPR[s.Instr.RS()]))
		}
	}
	r.Register(unary(func(a uint64) uint64 { return uint64(int64(int8(a))) }), "extsb", "extsb.")
	r.Register(unary(func(a uint64) uint64 { return uint64(int64(int16(a))) }), "extsh", "extsh.")
	r.Register(unary(func(a uint64) uint64 { return uint64(int64(int32(a))) }), "extsw", "extsw.")
	r.Register(unary(func(a uint64) uint64 { return uint64(bits.LeadingZeros32(uint32(a))) }), "cntlzw", "cntlzw.")
	r.Register(unary(func(a uint64) uint64 { return uint64(bits.LeadingZeros64(a)) }), "cntlzd", "cntlzd.")

	// shifts: amounts past the operand width shift everything out
	r.Register(func(s *ppc.State) {
		i := s.Instr
		n := s.GPR[i.RB()] & 0x3F
		var v uint64
		if n < 32 {
			v = uint64(uint32(s.GPR[i.RS()]) << n)
		}
		setRA(s, v)
	}, "slw", "slw.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		n := s.GPR[i.RB()] & 0x3F
		var v uint64
		if n < 32 {
			v = uint64(uint32(s.GPR[i.RS()]) >> n)
		}
		setRA(s, v)
	}, "srw", "srw.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		n := s.GPR[i.RB()] & 0x7F
		var v uint64
		if n < 64 {
			v = s.GPR[i.RS()] << n
		}
		setRA(s, v)
	}, "sld", "sld.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		n := s.GPR[i.RB()] & 0x7F
		var v uint64
		if n < 64 {
			v = s.GPR[i.RS()] >> n
		}
		setRA(s, v)
	}, "srd", "srd.")
	sraw := func(s *ppc.State, n uint64) {
		v := int32(s.GPR[s.Instr.RS()])
		if n > 31 {
			n = 31
			s.SetCA(v < 0)
		} else {
			s.SetCA(v < 0 && uint32(v)&(1<<n-1) != 0)
		}
		setRA(s, uint64(int64(v>>n)))
	}
	r.Register(func(s *ppc.State) { sraw(s, s.GPR[s.Instr.RB()]&0x3F) }, "sraw", "sraw.")
	r.Register(func(s *ppc.State) { sraw(s, uint64(s.Instr.SH32())) }, "srawi", "srawi.")
	srad := func(s *ppc.State, n uint64) {
		v := int64(s.GPR[s.Instr.RS()])
		if n > 63 {
			n = 63
			s.SetCA(v < 0)
		} else {
			s.SetCA(v < 0 && uint64(v)&(1<<n-1) != 0)
		}
		setRA(s, uint64(v>>n))
	}
	r.Register(func(s *ppc.State) { srad(s, s.GPR[s.Instr.RB()]&0x7F) }, "srad", "srad.")
	r.Register(func(s *ppc.State) { srad(s, uint64(s.Instr.SH64())) }, "sradi", "sradi.")

	// rotates
	r.Register(func(s *ppc.State) {
		i := s.Instr
		m := ppc.RotateMask(i.MB32()+32, i.ME32()+32)
		setRA(s, ppc.Rotl32(s.GPR[i.RS()], i.SH32())&m)
	}, "rlwinm", "rlwinm.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		m := ppc.RotateMask(i.MB32()+32, i.ME32()+32)
		setRA(s, ppc.Rotl32(s.GPR[i.RS()], uint32(s.GPR[i.RB()]))&m)
	}, "rlwnm", "rlwnm.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		m := ppc.RotateMask(i.MB32()+32, i.ME32()+32)
		setRA(s, ppc.Rotl32(s.GPR[i.RS()], i.SH32())&m|s.GPR[i.RA()]&^m)
	}, "rlwimi", "rlwimi.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		setRA(s, ppc.Rotl64(s.GPR[i.RS()], i.SH64())&ppc.RotateMask(i.MB64(), 63))
	}, "rldicl", "rldicl.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		setRA(s, ppc.Rotl64(s.GPR[i.RS()], i.SH64())&ppc.RotateMask(0, i.ME64()))
	}, "rldicr", "rldicr.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		setRA(s, ppc.Rotl64(s.GPR[i.RS()], i.SH64())&ppc.RotateMask(i.MB64(), 63-i.SH64()))
	}, "rldic", "rldic.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		m := ppc.RotateMask(i.MB64(), 63-i.SH64())
		setRA(s, ppc.Rotl64(s.GPR[i.RS()], i.SH64())&m|s.GPR[i.RA()]&^m)
	}, "rldimi", "rldimi.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		setRA(s, ppc.Rotl64(s.GPR[i.RS()], uint32(s.GPR[i.RB()]))&ppc.RotateMask(i.MB64(), 63))
	}, "rldcl", "rldcl.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		setRA(s, ppc.Rotl64(s.GPR[i.RS()], uint32(s.GPR[i.RB()]))&ppc.RotateMask(0, i.ME64()))
	}, "rldcr", "rldcr.")

	// compares: L selects doubleword operands
	r.Register(func(s *ppc.State) {
		i := s.Instr
		a, b := s.GPR[i.RA()], s.GPR[i.RB()]
		if i.L() {
			s.Compare(i.CRFD(), int64(a), int64(b))
		} else {
			s.Compare(i.CRFD(), int64(int32(a)), int64(int32(b)))
		}
	}, "cmp")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		a, b := s.GPR[i.RA()], s.GPR[i.RB()]
		if i.L() {
			s.CompareUnsigned(i.CRFD(), a, b)
		} else {
			s.CompareUnsigned(i.CRFD(), uint64(uint32(a)), uint64(uint32(b)))
		}
	}, "cmpl")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		a := s.GPR[i.RA()]
		if i.L() {
			s.Compare(i.CRFD(), int64(a), i.SIMM())
		} else {
			s.Compare(i.CRFD(), int64(int32(a)), i.SIMM())
		}
	}, "cmpi")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		a := s.GPR[i.RA()]
		if i.L() {
			s.CompareUnsigned(i.CRFD(), a, i.UIMM())
		} else {
			s.CompareUnsigned(i.CRFD(), uint64(uint32(a)), i.UIMM())
		}
	}, "cmpli")
}

// mulSigned returns the 128-bit product of a and b.
func mulSigned(a, b int64) (hi, lo uint64) {
	hi, lo = bits.Mul64(uint64(a), uint64(b))
	if a < 0 {
		hi -= uint64(b)
	}
	if b < 0 {
		hi -= uint64(a)
	}
	return hi, lo
}
