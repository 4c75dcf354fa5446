package recompiler

import (
	"context"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"

	"github.com/xenon-emu/xcpu/ppcgo/decoder"
	"github.com/xenon-emu/xcpu/ppcgo/jit"
	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

const DefaultMaxBlockLen = 256

type Config struct {
	// MaxBlockLen bounds the instructions of a block without a branch.
	MaxBlockLen int
	Log         log.Logger
}

func DefaultConfig() Config {
	return Config{MaxBlockLen: DefaultMaxBlockLen, Log: log.Root()}
}

// Compiler translates guest code into basic blocks on first execution and
// caches them by start address. Writes to the memory it translates from,
// and icbi, drop the blocks they overlap. A Compiler is not safe for
// concurrent use.
type Compiler struct {
	dec    *decoder.Decoder
	cfg    Config
	blocks map[uint64]*jit.Block

	mem *ppc.Memory
	// codePages counts the cached blocks touching each page, so writes
	// to pages without code skip the block scan.
	codePages map[uint64]int
	running   *jit.Block
}

func New(dec *decoder.Decoder, cfg Config) *Compiler {
	if cfg.MaxBlockLen <= 0 {
		cfg.MaxBlockLen = DefaultMaxBlockLen
	}
	if cfg.Log == nil {
		cfg.Log = log.Root()
	}
	return &Compiler{
		dec:       dec,
		cfg:       cfg,
		blocks:    make(map[uint64]*jit.Block),
		codePages: make(map[uint64]int),
	}
}

// attach watches m for writes. Blocks translated from another memory are
// dropped.
func (c *Compiler) attach(m *ppc.Memory) {
	if c.mem == m {
		return
	}
	if c.mem != nil {
		c.mem.SetWriteHook(nil)
	}
	c.Flush()
	c.mem = m
	m.SetWriteHook(c.written)
}

func (c *Compiler) written(addr, size uint64) {
	for p := addr >> ppc.PageAddrSize; p <= (addr+size-1)>>ppc.PageAddrSize; p++ {
		if c.codePages[p] > 0 {
			c.InvalidateRange(addr, size)
			return
		}
	}
	if c.running != nil && c.running.Overlaps(addr, size) {
		c.running.Invalidate()
	}
}

func (c *Compiler) pages(blk *jit.Block, delta int) {
	for p := blk.Start >> ppc.PageAddrSize; p <= (blk.End-1)>>ppc.PageAddrSize; p++ {
		if c.codePages[p] += delta; c.codePages[p] <= 0 {
			delete(c.codePages, p)
		}
	}
}

// interpreted runs an instruction through its interpreter handler.
func (c *Compiler) interpreted(instr ppc.Instr) jit.Op {
	return jit.Op(c.dec.Decode(uint32(instr)))
}

// build translates instructions from pc until a branch or limit
// instructions, whichever comes first.
func (c *Compiler) build(s *ppc.State, pc uint64, limit int) *jit.Block {
	b := jit.NewBuilder(pc, c.interpreted)
	b.SetInvalidator(c.InvalidateRange)
	for !b.Ended() {
		addr := b.Next()
		w := s.Memory.Read32(addr)
		b.Begin(addr, ppc.Instr(w))
		c.dec.DecodeJIT(w)(s, b, ppc.Instr(w))
		if c.dec.IsBranch(w) || b.Len() >= limit {
			b.End()
		}
	}
	return b.Finish()
}

// Compile returns the block starting at pc, translating it on a cache miss.
func (c *Compiler) Compile(s *ppc.State, pc uint64) *jit.Block {
	c.attach(s.Memory)
	if blk, ok := c.blocks[pc]; ok {
		return blk
	}
	blk := c.build(s, pc, c.cfg.MaxBlockLen)
	c.blocks[pc] = blk
	c.pages(blk, 1)
	c.cfg.Log.Debug("Compiled block", "start", hexutil.Uint64(blk.Start), "end", hexutil.Uint64(blk.End), "instrs", blk.Len())
	return blk
}

// Invalidate drops every cached block that contains addr.
func (c *Compiler) Invalidate(addr uint64) {
	c.InvalidateRange(addr, 1)
}

// InvalidateRange drops every block overlapping [addr, addr+size). A
// running block that overlaps stops after its current instruction.
func (c *Compiler) InvalidateRange(addr, size uint64) {
	for pc, blk := range c.blocks {
		if blk.Overlaps(addr, size) {
			blk.Invalidate()
			c.pages(blk, -1)
			delete(c.blocks, pc)
			c.cfg.Log.Debug("Invalidated block", "start", hexutil.Uint64(blk.Start), "end", hexutil.Uint64(blk.End))
		}
	}
	if c.running != nil && c.running.Overlaps(addr, size) {
		c.running.Invalidate()
	}
}

// Flush drops every cached block.
func (c *Compiler) Flush() {
	for _, blk := range c.blocks {
		blk.Invalidate()
	}
	clear(c.blocks)
	clear(c.codePages)
}

// Blocks is the number of cached blocks.
func (c *Compiler) Blocks() int {
	return len(c.blocks)
}

// Run executes compiled blocks until the state halts, an instruction
// faults, max instructions have retired (zero means no limit) or ctx is
// done. It returns the number of retired instructions.
func (c *Compiler) Run(ctx context.Context, s *ppc.State, max uint64) (uint64, error) {
	var n uint64
	for !s.Halted && (max == 0 || n < max) {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		var budget uint64
		if max != 0 {
			budget = max - n
		}
		retired, err := c.RunBlock(s, budget)
		n += uint64(retired)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// RunBlock executes the block at PC, retiring at most max instructions
// (0 for no bound), and returns the number retired.
func (c *Compiler) RunBlock(s *ppc.State, max uint64) (int, error) {
	blk := c.Compile(s, s.PC)
	// a block that would overrun the budget is rebuilt short, uncached
	if max != 0 && uint64(blk.Len()) > max {
		blk = c.build(s, s.PC, int(max))
	}
	c.running = blk
	retired, err := blk.Run(s)
	c.running = nil
	if err != nil {
		return retired, fmt.Errorf("block %#x: %w", blk.Start, err)
	}
	return retired, nil
}
