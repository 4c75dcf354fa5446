package jit

import (
	"fmt"

	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

// Op is one compiled operation. Ops read the instruction being executed from
// the state and redirect control flow through s.NIA.
type Op func(s *ppc.State)

// Fallback compiles an instruction the backend has no native emitter for,
// normally by deferring to the interpreter handler.
type Fallback func(instr ppc.Instr) Op

// Invalidator drops translated code overlapping [addr, addr+size).
type Invalidator func(addr, size uint64)

type step struct {
	pc    uint64
	instr ppc.Instr
	ops   []Op
}

// Builder collects the ops of one basic block, one instruction at a time.
type Builder struct {
	start    uint64
	steps    []step
	ended    bool
	fallback Fallback
	inval    Invalidator
}

func NewBuilder(start uint64, fallback Fallback) *Builder {
	return &Builder{start: start, fallback: fallback}
}

// SetInvalidator connects the builder to the cache its block goes into.
func (b *Builder) SetInvalidator(fn Invalidator) {
	b.inval = fn
}

// Invalidator returns the hook emitted code uses to drop stale translations.
// It is a no-op when the builder has no cache.
func (b *Builder) Invalidator() Invalidator {
	if b.inval == nil {
		return func(addr, size uint64) {}
	}
	return b.inval
}

// Begin starts translating the instruction at pc.
func (b *Builder) Begin(pc uint64, instr ppc.Instr) {
	if b.ended {
		panic(fmt.Errorf("block %#x already ended, cannot add %#x", b.start, pc))
	}
	b.steps = append(b.steps, step{pc: pc, instr: instr})
}

func (b *Builder) current() *step {
	if len(b.steps) == 0 {
		panic(fmt.Errorf("block %#x: emit before begin", b.start))
	}
	return &b.steps[len(b.steps)-1]
}

// PC is the address of the instruction being translated.
func (b *Builder) PC() uint64 {
	return b.current().pc
}

// Emit appends op to the current instruction.
func (b *Builder) Emit(op Op) {
	st := b.current()
	st.ops = append(st.ops, op)
}

// Interpret compiles instr through the fallback.
func (b *Builder) Interpret(instr ppc.Instr) {
	b.Emit(b.fallback(instr))
}

// End terminates the block after the current instruction.
func (b *Builder) End() {
	b.ended = true
}

func (b *Builder) Ended() bool {
	return b.ended
}

// Len is the number of instructions translated so far.
func (b *Builder) Len() int {
	return len(b.steps)
}

// Next is the address following the last translated instruction.
func (b *Builder) Next() uint64 {
	return b.start + uint64(len(b.steps))*ppc.InstrSize
}

func (b *Builder) Finish() *Block {
	return &Block{Start: b.start, End: b.Next(), steps: b.steps}
}

// Block is a compiled straight-line run of instructions.
type Block struct {
	Start uint64
	End   uint64
	steps []step
	stale bool
}

func (blk *Block) Len() int {
	return len(blk.steps)
}

// Contains reports whether addr falls inside the block.
func (blk *Block) Contains(addr uint64) bool {
	return addr >= blk.Start && addr < blk.End
}

// Overlaps reports whether [addr, addr+size) shares a byte with the block.
func (blk *Block) Overlaps(addr, size uint64) bool {
	if size == 0 || addr >= blk.End {
		return false
	}
	return addr >= blk.Start || blk.Start-addr < size
}

// Invalidate marks the block stale: guest code under it has changed. A
// running block stops after the instruction that invalidated it.
func (blk *Block) Invalidate() {
	blk.stale = true
}

func (blk *Block) Stale() bool {
	return blk.stale
}

// Run executes the block from its start and returns the number of retired
// instructions. It leaves the block early when an instruction faults, halts
// the state, redirects control flow or invalidates the block. A faulting
// instruction is not retired: PC stays on it.
func (blk *Block) Run(s *ppc.State) (retired int, outErr error) {
	if s.PC != blk.Start {
		return 0, fmt.Errorf("block %#x entered at %#x", blk.Start, s.PC)
	}
	pc := blk.Start
	defer func() {
		if err := recover(); err != nil {
			outErr = fmt.Errorf("pc %#x: handler panic: %v", pc, err)
		}
	}()
	for n, st := range blk.steps {
		pc, retired = st.pc, n
		s.ClearFault()
		s.Instr = st.instr
		s.NIA = st.pc + ppc.InstrSize
		for _, op := range st.ops {
			op(s)
		}
		if err := s.Fault(); err != nil {
			return n, fmt.Errorf("pc %#x instr %s: %w", st.pc, st.instr, err)
		}
		s.PC = s.NIA
		s.Step++
		if s.Halted || blk.stale || s.PC != st.pc+ppc.InstrSize {
			return n + 1, nil
		}
	}
	return len(blk.steps), nil
}
