package interp

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"

	"github.com/xenon-emu/xcpu/ppcgo/decoder"
	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

// Interpreter executes one instruction at a time through the decoder's
// interpreter table.
type Interpreter struct {
	dec   *decoder.Decoder
	log   log.Logger
	trace bool
}

func New(dec *decoder.Decoder, cfg Config) *Interpreter {
	if cfg.Log == nil {
		cfg.Log = log.Root()
	}
	return &Interpreter{dec: dec, log: cfg.Log, trace: cfg.Trace}
}

// Step executes the instruction at s.PC. A faulting instruction is not
// retired: PC and the step counter are left unchanged.
func (it *Interpreter) Step(s *ppc.State) (outErr error) {
	if s.Halted {
		return nil
	}
	pc := s.PC
	defer func() {
		if err := recover(); err != nil {
			outErr = fmt.Errorf("pc %#x: handler panic: %v", pc, err)
		}
	}()

	s.ClearFault()
	s.Instr = s.Fetch()
	s.NIA = pc + ppc.InstrSize
	if it.trace {
		it.log.Trace("Step", "pc", hexutil.Uint64(pc), "instr", s.Instr, "name", it.dec.DecodeName(uint32(s.Instr)))
	}
	it.dec.Decode(uint32(s.Instr))(s)
	if err := s.Fault(); err != nil {
		return fmt.Errorf("pc %#x instr %s: %w", pc, s.Instr, err)
	}
	s.PC = s.NIA
	s.Step++
	return nil
}

// Run steps until the state halts, an instruction faults, max steps have
// run (zero means no limit) or ctx is done. It returns the number of
// retired instructions.
func (it *Interpreter) Run(ctx context.Context, s *ppc.State, max uint64) (uint64, error) {
	var n uint64
	for !s.Halted && (max == 0 || n < max) {
		if n%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return n, err
			}
		}
		if err := it.Step(s); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
