package interp

import (
	"math"

	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

// FPSCR rounding modes, in the RN field (the two low bits).
const (
	rnNearest = 0
	rnZero    = 1
	rnUp      = 2
	rnDown    = 3
)

func fpr(s *ppc.State, n uint32) float64 {
	return math.Float64frombits(s.FPR[n])
}

// setFRT writes a floating-point result, rounding to single precision when
// asked, and copies the FPSCR exception summary into CR1 for Rc=1.
func setFRT(s *ppc.State, v float64, single bool) {
	if single {
		v = float64(float32(v))
	}
	s.FPR[s.Instr.RD()] = math.Float64bits(v)
	recordFP(s)
}

func recordFP(s *ppc.State) {
	if s.Instr.Rc() {
		s.SetCRField(1, s.FPSCR>>28)
	}
}

// roundFP rounds v to an integral value in the FPSCR rounding mode.
func roundFP(v float64, mode uint32) float64 {
	switch mode & 3 {
	case rnZero:
		return math.Trunc(v)
	case rnUp:
		return math.Ceil(v)
	case rnDown:
		return math.Floor(v)
	default:
		return math.RoundToEven(v)
	}
}

// toInt saturates v into [lo, hi]; NaN converts to lo, as the hardware does.
func toInt(v float64, lo, hi int64) int64 {
	switch {
	case math.IsNaN(v), v <= float64(lo):
		return lo
	case v >= float64(hi):
		return hi
	default:
		return int64(v)
	}
}

func (r *Registry) registerFloat() {
	binary := func(op func(a, b float64) float64, single bool) func(s *ppc.State) {
		return func(s *ppc.State) {
			i := s.Instr
			setFRT(s, op(fpr(s, i.RA()), fpr(s, i.RB())), single)
		}
	}
	add := func(a, b float64) float64 { return a + b }
	sub := func(a, b float64) float64 { return a - b }
	div := func(a, b float64) float64 { return a / b }
	r.Register(binary(add, false), "fadd", "fadd.")
	r.Register(binary(add, true), "fadds", "fadds.")
	r.Register(binary(sub, false), "fsub", "fsub.")
	r.Register(binary(sub, true), "fsubs", "fsubs.")
	r.Register(binary(div, false), "fdiv", "fdiv.")
	r.Register(binary(div, true), "fdivs", "fdivs.")

	// fmul multiplies FRA by FRC
	mul := func(single bool) func(s *ppc.State) {
		return func(s *ppc.State) {
			i := s.Instr
			setFRT(s, fpr(s, i.RA())*fpr(s, i.RC()), single)
		}
	}
	r.Register(mul(false), "fmul", "fmul.")
	r.Register(mul(true), "fmuls", "fmuls.")

	// fused multiply-add family: FRA*FRC +/- FRB, optionally negated
	madd := func(negate, subtract, single bool) func(s *ppc.State) {
		return func(s *ppc.State) {
			i := s.Instr
			b := fpr(s, i.RB())
			if subtract {
				b = -b
			}
			v := math.FMA(fpr(s, i.RA()), fpr(s, i.RC()), b)
			if negate {
				v = -v
			}
			setFRT(s, v, single)
		}
	}
	r.Register(madd(false, false, false), "fmadd", "fmadd.")
	r.Register(madd(false, false, true), "fmadds", "fmadds.")
	r.Register(madd(false, true, false), "fmsub", "fmsub.")
	r.Register(madd(false, true, true), "fmsubs", "fmsubs.")
	r.Register(madd(true, false, false), "fnmadd", "fnmadd.")
	r.Register(madd(true, false, true), "fnmadds", "fnmadds.")
	r.Register(madd(true, true, false), "fnmsub", "fnmsub.")
	r.Register(madd(true, true, true), "fnmsubs", "fnmsubs.")

	unary := func(op func(b float64) float64, single bool) func(s *ppc.State) {
		return func(s *ppc.State) {
			setFRT(s, op(fpr(s, s.Instr.RB())), single)
		}
	}
	r.Register(unary(math.Sqrt, false), "fsqrt", "fsqrt.")
	r.Register(unary(math.Sqrt, true), "fsqrts", "fsqrts.")
	r.Register(unary(func(b float64) float64 { return 1 / b }, true), "fres", "fres.")
	r.Register(unary(func(b float64) float64 { return 1 / math.Sqrt(b) }, false), "frsqrte", "frsqrte.")
	r.Register(unary(func(b float64) float64 { return b }, true), "frsp", "frsp.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		v := fpr(s, i.RB())
		if fpr(s, i.RA()) >= 0 {
			v = fpr(s, i.RC())
		}
		setFRT(s, v, false)
	}, "fsel", "fsel.")

	// sign manipulation works on the raw bits, preserving NaN payloads
	bitwise := func(op func(b uint64) uint64) func(s *ppc.State) {
		return func(s *ppc.State) {
			s.FPR[s.Instr.RD()] = op(s.FPR[s.Instr.RB()])
			recordFP(s)
		}
	}
	const sign = uint64(1) << 63
	r.Register(bitwise(func(b uint64) uint64 { return b }), "fmr", "fmr.")
	r.Register(bitwise(func(b uint64) uint64 { return b ^ sign }), "fneg", "fneg.")
	r.Register(bitwise(func(b uint64) uint64 { return b &^ sign }), "fabs", "fabs.")
	r.Register(bitwise(func(b uint64) uint64 { return b | sign }), "fnabs", "fnabs.")

	// conversions
	convert := func(mode func(s *ppc.State) uint32, word bool) func(s *ppc.State) {
		return func(s *ppc.State) {
			v := roundFP(fpr(s, s.Instr.RB()), mode(s))
			if word {
				s.FPR[s.Instr.RD()] = uint64(uint32(toInt(v, math.MinInt32, math.MaxInt32)))
			} else {
				s.FPR[s.Instr.RD()] = uint64(toInt(v, math.MinInt64, math.MaxInt64))
			}
			recordFP(s)
		}
	}
	current := func(s *ppc.State) uint32 { return s.FPSCR & 3 }
	truncate := func(*ppc.State) uint32 { return rnZero }
	r.Register(convert(current, true), "fctiw", "fctiw.")
	r.Register(convert(truncate, true), "fctiwz", "fctiwz.")
	r.Register(convert(current, false), "fctid", "fctid.")
	r.Register(convert(truncate, false), "fctidz", "fctidz.")
	r.Register(func(s *ppc.State) {
		setFRT(s, float64(int64(s.FPR[s.Instr.RB()])), false)
	}, "fcfid", "fcfid.")

	// compares: FL, FG, FE, FU into CR field crfD and FPSCR[FPCC]
	r.Register(func(s *ppc.State) {
		i := s.Instr
		a, b := fpr(s, i.RA()), fpr(s, i.RB())
		var f uint32
		switch {
		case math.IsNaN(a) || math.IsNaN(b):
			f = 0x1
		case a < b:
			f = 0x8
		case a > b:
			f = 0x4
		default:
			f = 0x2
		}
		s.SetCRField(i.CRFD(), f)
		s.FPSCR = s.FPSCR&^(0xF<<12) | f<<12
	}, "fcmpu", "fcmpo")

	// FPSCR moves
	r.Register(func(s *ppc.State) {
		s.FPR[s.Instr.RD()] = uint64(s.FPSCR)
		recordFP(s)
	}, "mffs", "mffs.")
	r.Register(func(s *ppc.State) {
		m := crMask((uint32(s.Instr) >> 17) & 0xFF)
		s.FPSCR = s.FPSCR&^m | uint32(s.FPR[s.Instr.RB()])&m
		recordFP(s)
	}, "mtfsf", "mtfsf.")
	r.Register(func(s *ppc.State) {
		shift := (7 - s.Instr.CRFD()) * 4
		imm := (uint32(s.Instr) >> 12) & 0xF
		s.FPSCR = s.FPSCR&^(0xF<<shift) | imm<<shift
		recordFP(s)
	}, "mtfsfi", "mtfsfi.")
	r.Register(func(s *ppc.State) {
		s.FPSCR |= 1 << (31 - s.Instr.RD())
		recordFP(s)
	}, "mtfsb1", "mtfsb1.")
	r.Register(func(s *ppc.State) {
		s.FPSCR &^= 1 << (31 - s.Instr.RD())
		recordFP(s)
	}, "mtfsb0", "mtfsb0.")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		s.SetCRField(i.CRFD(), (s.FPSCR>>((7-i.CRFS())*4))&0xF)
	}, "mcrfs")
}
