package recompiler

import (
	"github.com/xenon-emu/xcpu/ppcgo/jit"
	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

// Native emitters decode their operands once, at translation time, and
// capture them in the emitted op.

// withRecord appends the CR0 update of Rc=1 forms.
func withRecord(b *jit.Builder, instr ppc.Instr, rd uint32) {
	if instr.Rc() {
		b.Emit(func(s *ppc.State) { s.Record(s.GPR[rd]) })
	}
}

func (r *Registry) registerInteger() {
	r.Register(func(_ *ppc.State, b *jit.Builder, instr ppc.Instr) {
		rd, ra, imm := instr.RD(), instr.RA(), uint64(instr.SIMM())
		if instr.Primary() == ppc.OpcodeAddis {
			imm <<= 16
		}
		if ra == 0 {
			// li, lis
			b.Emit(func(s *ppc.State) { s.GPR[rd] = imm })
			return
		}
		b.Emit(func(s *ppc.State) { s.GPR[rd] = s.GPR[ra] + imm })
	}, "addi", "addis")

	immediate := func(op func(a, imm uint64) uint64, shift uint) func(*ppc.State, *jit.Builder, ppc.Instr) {
		return func(_ *ppc.State, b *jit.Builder, instr ppc.Instr) {
			ra, rs, imm := instr.RA(), instr.RS(), instr.UIMM()<<shift
			b.Emit(func(s *ppc.State) { s.GPR[ra] = op(s.GPR[rs], imm) })
		}
	}
	or := func(a, b uint64) uint64 { return a | b }
	xor := func(a, b uint64) uint64 { return a ^ b }
	r.Register(immediate(or, 0), "ori")
	r.Register(immediate(or, 16), "oris")
	r.Register(immediate(xor, 0), "xori")
	r.Register(immediate(xor, 16), "xoris")

	// XO-forms without OE; the OE=1 forms go through the interpreter
	arith := func(op func(a, b uint64) uint64) func(*ppc.State, *jit.Builder, ppc.Instr) {
		return func(_ *ppc.State, b *jit.Builder, instr ppc.Instr) {
			rd, ra, rb := instr.RD(), instr.RA(), instr.RB()
			b.Emit(func(s *ppc.State) { s.GPR[rd] = op(s.GPR[ra], s.GPR[rb]) })
			withRecord(b, instr, rd)
		}
	}
	r.Register(arith(func(a, b uint64) uint64 { return a + b }), "add", "add.")
	r.Register(arith(func(a, b uint64) uint64 { return b - a }), "subf", "subf.")

	// X-form logicals write RA from RS and RB
	logical := func(op func(a, b uint64) uint64) func(*ppc.State, *jit.Builder, ppc.Instr) {
		return func(_ *ppc.State, b *jit.Builder, instr ppc.Instr) {
			ra, rs, rb := instr.RA(), instr.RS(), instr.RB()
			if rs == rb && instr.XO() == 0x1BC && !instr.Rc() {
				// mr
				b.Emit(func(s *ppc.State) { s.GPR[ra] = s.GPR[rs] })
				return
			}
			b.Emit(func(s *ppc.State) { s.GPR[ra] = op(s.GPR[rs], s.GPR[rb]) })
			withRecord(b, instr, ra)
		}
	}
	r.Register(logical(func(a, b uint64) uint64 { return a & b }), "and", "and.")
	r.Register(logical(or), "or", "or.")
	r.Register(logical(xor), "xor", "xor.")

	r.Register(func(_ *ppc.State, b *jit.Builder, instr ppc.Instr) {
		ra, rs, sh := instr.RA(), instr.RS(), instr.SH32()
		mask := ppc.RotateMask(instr.MB32()+32, instr.ME32()+32)
		b.Emit(func(s *ppc.State) { s.GPR[ra] = ppc.Rotl32(s.GPR[rs], sh) & mask })
		withRecord(b, instr, ra)
	}, "rlwinm", "rlwinm.")
}

func (r *Registry) registerBranch() {
	// the target of b is known at translation time
	r.Register(func(_ *ppc.State, b *jit.Builder, instr ppc.Instr) {
		pc := b.PC()
		target := uint64(instr.LI())
		if !instr.AA() {
			target += pc
		}
		if instr.LK() {
			ret := pc + ppc.InstrSize
			b.Emit(func(s *ppc.State) {
				s.LR = ret
				s.NIA = target
			})
		} else {
			b.Emit(func(s *ppc.State) { s.NIA = target })
		}
		b.End()
	}, "b", "bl")
}

func (r *Registry) registerCache() {
	// icbi drops translations of the line; the line itself is not touched
	r.Register(func(_ *ppc.State, b *jit.Builder, instr ppc.Instr) {
		invalidate := b.Invalidator()
		ra, rb := instr.RA(), instr.RB()
		b.Emit(func(s *ppc.State) {
			ea := s.GPR[rb]
			if ra != 0 {
				ea += s.GPR[ra]
			}
			invalidate(ea&^(ppc.CacheLineSize-1), ppc.CacheLineSize)
		})
	}, "icbi")
}
