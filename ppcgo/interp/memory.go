package interp

import (
	"fmt"
	"math"
	"math/bits"

	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

// CacheLineSize is the line size cleared by dcbz.
const CacheLineSize = ppc.CacheLineSize

// ea computes the effective address of a load or store, by form.
type ea func(s *ppc.State) uint64

func eaD(s *ppc.State) uint64  { return ra0(s) + uint64(s.Instr.SIMM()) }
func eaDS(s *ppc.State) uint64 { return ra0(s) + uint64(s.Instr.DS()) }
func eaX(s *ppc.State) uint64  { return ra0(s) + s.GPR[s.Instr.RB()] }

// update forms use RA without the zero special case, then write EA back.
func eaDU(s *ppc.State) uint64  { return s.GPR[s.Instr.RA()] + uint64(s.Instr.SIMM()) }
func eaDSU(s *ppc.State) uint64 { return s.GPR[s.Instr.RA()] + uint64(s.Instr.DS()) }
func eaXU(s *ppc.State) uint64  { return s.GPR[s.Instr.RA()] + s.GPR[s.Instr.RB()] }

func load(addr ea, update bool, read func(m *ppc.Memory, addr uint64) uint64) func(s *ppc.State) {
	return func(s *ppc.State) {
		a := addr(s)
		s.GPR[s.Instr.RD()] = read(s.Memory, a)
		if update {
			s.GPR[s.Instr.RA()] = a
		}
	}
}

func store(addr ea, update bool, write func(m *ppc.Memory, addr, v uint64)) func(s *ppc.State) {
	return func(s *ppc.State) {
		a := addr(s)
		write(s.Memory, a, s.GPR[s.Instr.RS()])
		if update {
			s.GPR[s.Instr.RA()] = a
		}
	}
}

func readU8(m *ppc.Memory, a uint64) uint64  { return uint64(m.Read8(a)) }
func readU16(m *ppc.Memory, a uint64) uint64 { return uint64(m.Read16(a)) }
func readS16(m *ppc.Memory, a uint64) uint64 { return uint64(int64(int16(m.Read16(a)))) }
func readU32(m *ppc.Memory, a uint64) uint64 { return uint64(m.Read32(a)) }
func readS32(m *ppc.Memory, a uint64) uint64 { return uint64(int64(int32(m.Read32(a)))) }
func readU64(m *ppc.Memory, a uint64) uint64 { return m.Read64(a) }

func readRev16(m *ppc.Memory, a uint64) uint64 { return uint64(bits.ReverseBytes16(m.Read16(a))) }
func readRev32(m *ppc.Memory, a uint64) uint64 { return uint64(bits.ReverseBytes32(m.Read32(a))) }
func readRev64(m *ppc.Memory, a uint64) uint64 { return bits.ReverseBytes64(m.Read64(a)) }

func write8(m *ppc.Memory, a, v uint64)  { m.Write8(a, uint8(v)) }
func write16(m *ppc.Memory, a, v uint64) { m.Write16(a, uint16(v)) }
func write32(m *ppc.Memory, a, v uint64) { m.Write32(a, uint32(v)) }
func write64(m *ppc.Memory, a, v uint64) { m.Write64(a, v) }

func writeRev16(m *ppc.Memory, a, v uint64) { m.Write16(a, bits.ReverseBytes16(uint16(v))) }
func writeRev32(m *ppc.Memory, a, v uint64) { m.Write32(a, bits.ReverseBytes32(uint32(v))) }
func writeRev64(m *ppc.Memory, a, v uint64) { m.Write64(a, bits.ReverseBytes64(v)) }

func aligned(s *ppc.State, a, size uint64) bool {
	if a&(size-1) != 0 {
		s.Raise(fmt.Errorf("%w: %d-byte access at %#x", ppc.ErrUnaligned, size, a))
		return false
	}
	return true
}

func (r *Registry) registerMemory() {
	type access struct {
		read  func(m *ppc.Memory, a uint64) uint64
		write func(m *ppc.Memory, a, v uint64)
		names [4]string // D, D-update, X, X-update
	}
	for _, acc := range []access{
		{read: readU8, names: [4]string{"lbz", "lbzu", "lbzx", "lbzux"}},
		{read: readU16, names: [4]string{"lhz", "lhzu", "lhzx", "lhzux"}},
		{read: readS16, names: [4]string{"lha", "lhau", "lhax", "lhaux"}},
		{read: readU32, names: [4]string{"lwz", "lwzu", "lwzx", "lwzux"}},
		{write: write8, names: [4]string{"stb", "stbu", "stbx", "stbux"}},
		{write: write16, names: [4]string{"sth", "sthu", "sthx", "sthux"}},
		{write: write32, names: [4]string{"stw", "stwu", "stwx", "stwux"}},
	} {
		for j, addr := range []ea{eaD, eaDU, eaX, eaXU} {
			update := j%2 == 1
			if acc.read != nil {
				r.Register(load(addr, update, acc.read), acc.names[j])
			} else {
				r.Register(store(addr, update, acc.write), acc.names[j])
			}
		}
	}

	// doublewords and lwa use DS-form displacements
	r.Register(load(eaDS, false, readU64), "ld")
	r.Register(load(eaDSU, true, readU64), "ldu")
	r.Register(load(eaX, false, readU64), "ldx")
	r.Register(load(eaXU, true, readU64), "ldux")
	r.Register(load(eaDS, false, readS32), "lwa")
	r.Register(load(eaX, false, readS32), "lwax")
	r.Register(load(eaXU, true, readS32), "lwaux")
	r.Register(store(eaDS, false, write64), "std")
	r.Register(store(eaDSU, true, write64), "stdu")
	r.Register(store(eaX, false, write64), "stdx")
	r.Register(store(eaXU, true, write64), "stdux")

	r.Register(load(eaX, false, readRev16), "lhbrx")
	r.Register(load(eaX, false, readRev32), "lwbrx")
	r.Register(load(eaX, false, readRev64), "ldbrx")
	r.Register(store(eaX, false, writeRev16), "sthbrx")
	r.Register(store(eaX, false, writeRev32), "stwbrx")
	r.Register(store(eaX, false, writeRev64), "stdbrx")

	r.Register(func(s *ppc.State) {
		a := eaD(s)
		for n := s.Instr.RD(); n < 32; n++ {
			s.GPR[n] = uint64(s.Memory.Read32(a))
			a += 4
		}
	}, "lmw")
	r.Register(func(s *ppc.State) {
		a := eaD(s)
		for n := s.Instr.RS(); n < 32; n++ {
			s.Memory.Write32(a, uint32(s.GPR[n]))
			a += 4
		}
	}, "stmw")

	// load-reserve / store-conditional, single hardware thread: the
	// reservation is lost only to another reserve or a conditional store.
	reserve := func(size uint64, read func(m *ppc.Memory, a uint64) uint64) func(s *ppc.State) {
		return func(s *ppc.State) {
			a := eaX(s)
			if !aligned(s, a, size) {
				return
			}
			s.Reserve = a
			s.ReserveValid = true
			s.GPR[s.Instr.RD()] = read(s.Memory, a)
		}
	}
	conditional := func(size uint64, write func(m *ppc.Memory, a, v uint64)) func(s *ppc.State) {
		return func(s *ppc.State) {
			a := eaX(s)
			if !aligned(s, a, size) {
				return
			}
			ok := s.ReserveValid && s.Reserve == a
			if ok {
				write(s.Memory, a, s.GPR[s.Instr.RS()])
			}
			s.ReserveValid = false
			var f uint32
			if s.XER&ppc.XerSO != 0 {
				f = ppc.CrSO
			}
			if ok {
				f |= ppc.CrEQ
			}
			s.SetCRField(0, f)
		}
	}
	r.Register(reserve(4, readU32), "lwarx")
	r.Register(reserve(8, readU64), "ldarx")
	r.Register(conditional(4, write32), "stwcx.")
	r.Register(conditional(8, write64), "stdcx.")

	r.Register(func(s *ppc.State) {
		var zero [CacheLineSize]byte
		s.Memory.Write(eaX(s)&^(CacheLineSize-1), zero[:])
	}, "dcbz")

	// floating-point loads and stores; singles convert through float32
	loadFP := func(addr ea, update, single bool) func(s *ppc.State) {
		return func(s *ppc.State) {
			a := addr(s)
			if single {
				f := math.Float32frombits(s.Memory.Read32(a))
				s.FPR[s.Instr.RD()] = math.Float64bits(float64(f))
			} else {
				s.FPR[s.Instr.RD()] = s.Memory.Read64(a)
			}
			if update {
				s.GPR[s.Instr.RA()] = a
			}
		}
	}
	storeFP := func(addr ea, update, single bool) func(s *ppc.State) {
		return func(s *ppc.State) {
			a := addr(s)
			v := s.FPR[s.Instr.RS()]
			if single {
				s.Memory.Write32(a, math.Float32bits(float32(math.Float64frombits(v))))
			} else {
				s.Memory.Write64(a, v)
			}
			if update {
				s.GPR[s.Instr.RA()] = a
			}
		}
	}
	for _, fp := range []struct {
		names  [4]string
		store  bool
		single bool
	}{
		{names: [4]string{"lfs", "lfsu", "lfsx", "lfsux"}, single: true},
		{names: [4]string{"lfd", "lfdu", "lfdx", "lfdux"}},
		{names: [4]string{"stfs", "stfsu", "stfsx", "stfsux"}, store: true, single: true},
		{names: [4]string{"stfd", "stfdu", "stfdx", "stfdux"}, store: true},
	} {
		for j, addr := range []ea{eaD, eaDU, eaX, eaXU} {
			if fp.store {
				r.Register(storeFP(addr, j%2 == 1, fp.single), fp.names[j])
			} else {
				r.Register(loadFP(addr, j%2 == 1, fp.single), fp.names[j])
			}
		}
	}
	r.Register(func(s *ppc.State) {
		s.Memory.Write32(eaX(s), uint32(s.FPR[s.Instr.RS()]))
	}, "stfiwx")
}
