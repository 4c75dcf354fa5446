package interp

import (
	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

// MSR bits that mtmsrd with L=1 may change.
const (
	msrEE = uint64(1) << 15
	msrRI = uint64(1) << 1
)

// crMask expands an FXM field mask into the CR bits it selects.
func crMask(fxm uint32) uint32 {
	var m uint32
	for n := uint32(0); n < 8; n++ {
		if fxm&(0x80>>n) != 0 {
			m |= 0xF << (28 - 4*n)
		}
	}
	return m
}

// oneField reports the mfocrf/mtocrf form, bit 11 of the word.
func oneField(i ppc.Instr) bool {
	return uint32(i)&(1<<20) != 0
}

func (r *Registry) registerSystem() {
	r.Register(func(s *ppc.State) {
		v, err := s.ReadSPR(s.Instr.SPR())
		if err != nil {
			s.Raise(err)
			return
		}
		s.GPR[s.Instr.RD()] = v
	}, "mfspr", "mftb")
	r.Register(func(s *ppc.State) {
		if err := s.WriteSPR(s.Instr.SPR(), s.GPR[s.Instr.RS()]); err != nil {
			s.Raise(err)
		}
	}, "mtspr")

	r.Register(func(s *ppc.State) {
		s.GPR[s.Instr.RD()] = s.MSR
	}, "mfmsr")
	r.Register(func(s *ppc.State) {
		s.MSR = s.MSR&^0xFFFFFFFF | s.GPR[s.Instr.RS()]&0xFFFFFFFF
	}, "mtmsr")
	r.Register(func(s *ppc.State) {
		v := s.GPR[s.Instr.RS()]
		if uint32(s.Instr)&(1<<16) != 0 {
			m := msrEE | msrRI
			s.MSR = s.MSR&^m | v&m
			return
		}
		s.MSR = v
	}, "mtmsrd")

	r.Register(func(s *ppc.State) {
		cr := s.CR
		if oneField(s.Instr) {
			cr &= crMask(s.Instr.FXM())
		}
		s.GPR[s.Instr.RD()] = uint64(cr)
	}, "mfocrf")
	r.Register(func(s *ppc.State) {
		m := crMask(s.Instr.FXM())
		s.CR = s.CR&^m | uint32(s.GPR[s.Instr.RS()])&m
	}, "mtocrf")

	// one thread, no caches, no MMU: ordering, cache and translation
	// management have nothing to do.
	r.Register(func(s *ppc.State) {},
		"sync", "isync", "eieio",
		"dcbf", "dcbi", "dcbst", "dcbt", "dcbtst", "icbi",
		"dst", "dstst", "dss",
		"tlbie", "tlbiel", "tlbsync", "slbia", "slbie", "slbmte")
}
