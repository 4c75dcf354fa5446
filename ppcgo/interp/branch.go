package interp

import (
	"fmt"

	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

// BO bits, in LSB-0 order within the 5-bit field.
const (
	boIgnoreCR  = 0x10
	boCRTrue    = 0x08
	boIgnoreCTR = 0x04
	boCTRZero   = 0x02
)

// branchTaken evaluates the BO/BI condition, decrementing CTR when BO asks
// for it.
func branchTaken(s *ppc.State, useCTR bool) bool {
	i := s.Instr
	bo := i.BO()
	ctrOK := true
	if useCTR && bo&boIgnoreCTR == 0 {
		s.CTR--
		ctrOK = (s.CTR == 0) == (bo&boCTRZero != 0)
	}
	condOK := bo&boIgnoreCR != 0 || s.CRBit(i.BI()) == (bo&boCRTrue != 0)
	return ctrOK && condOK
}

func link(s *ppc.State) {
	if s.Instr.LK() {
		s.LR = s.PC + ppc.InstrSize
	}
}

func (r *Registry) registerBranch() {
	r.Register(func(s *ppc.State) {
		i := s.Instr
		target := uint64(i.LI())
		if !i.AA() {
			target += s.PC
		}
		link(s)
		s.NIA = target
	}, "b", "bl")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		taken := branchTaken(s, true)
		link(s)
		if taken {
			target := uint64(i.BD())
			if !i.AA() {
				target += s.PC
			}
			s.NIA = target
		}
	}, "bc", "bcl")
	r.Register(func(s *ppc.State) {
		target := s.LR &^ 3
		taken := branchTaken(s, true)
		link(s)
		if taken {
			s.NIA = target
		}
	}, "bclr", "bclrl")
	// bcctr cannot decrement the register it branches through
	r.Register(func(s *ppc.State) {
		target := s.CTR &^ 3
		taken := branchTaken(s, false)
		link(s)
		if taken {
			s.NIA = target
		}
	}, "bcctr", "bcctrl")
	r.Register(func(s *ppc.State) {
		s.MSR = s.SRR1
		s.NIA = s.SRR0 &^ 3
	}, "rfid")

	r.Register(func(s *ppc.State) {
		if r.cfg.Syscall == nil {
			s.Raise(fmt.Errorf("%w at %#x", ErrSyscall, s.PC))
			return
		}
		if err := r.cfg.Syscall(s); err != nil {
			s.Raise(fmt.Errorf("%w: %w", ErrSyscall, err))
		}
	}, "sc")

	r.Register(func(s *ppc.State) {
		s.SetCRField(s.Instr.CRFD(), s.CRField(s.Instr.CRFS()))
	}, "mcrf")

	crLogical := func(op func(a, b bool) bool) func(s *ppc.State) {
		return func(s *ppc.State) {
			i := s.Instr
			s.SetCRBit(i.RD(), op(s.CRBit(i.RA()), s.CRBit(i.RB())))
		}
	}
	r.Register(crLogical(func(a, b bool) bool { return a && b }), "crand")
	r.Register(crLogical(func(a, b bool) bool { return a && !b }), "crandc")
	r.Register(crLogical(func(a, b bool) bool { return a == b }), "creqv")
	r.Register(crLogical(func(a, b bool) bool { return !(a && b) }), "crnand")
	r.Register(crLogical(func(a, b bool) bool { return !(a || b) }), "crnor")
	r.Register(crLogical(func(a, b bool) bool { return a || b }), "cror")
	r.Register(crLogical(func(a, b bool) bool { return a || !b }), "crorc")
	r.Register(crLogical(func(a, b bool) bool { return a != b }), "crxor")

	// traps: TO bits are lt, gt, eq, ltu, gtu from the most significant
	trap := func(s *ppc.State, a, b int64) {
		to := s.Instr.RD()
		hit := (to&0x10 != 0 && a < b) ||
			(to&0x08 != 0 && a > b) ||
			(to&0x04 != 0 && a == b) ||
			(to&0x02 != 0 && uint64(a) < uint64(b)) ||
			(to&0x01 != 0 && uint64(a) > uint64(b))
		if hit {
			s.Raise(fmt.Errorf("%w at %#x", ErrTrap, s.PC))
		}
	}
	word := func(v uint64) int64 { return int64(int32(v)) }
	r.Register(func(s *ppc.State) {
		i := s.Instr
		trap(s, word(s.GPR[i.RA()]), word(s.GPR[i.RB()]))
	}, "tw")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		trap(s, word(s.GPR[i.RA()]), i.SIMM())
	}, "twi")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		trap(s, int64(s.GPR[i.RA()]), int64(s.GPR[i.RB()]))
	}, "td")
	r.Register(func(s *ppc.State) {
		i := s.Instr
		trap(s, int64(s.GPR[i.RA()]), i.SIMM())
	}, "tdi")
}
