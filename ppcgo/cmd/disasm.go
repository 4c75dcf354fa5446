package cmd

import (
	"context"
	"debug/elf"
	"encoding/binary"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ethereum-optimism/optimism/op-service/jsonutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
	"golang.org/x/arch/ppc64/ppc64asm"
	"golang.org/x/sync/errgroup"

	"github.com/xenon-emu/xcpu/ppcgo/decoder"
	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

// Line is one disassembled instruction.
type Line struct {
	Addr     uint64
	Word     uint32
	Mnemonic string
	Operands string
	Branch   bool
}

func (l Line) String() string {
	s := fmt.Sprintf("%016x: %08x  %-12s", l.Addr, l.Word, l.Mnemonic)
	if l.Operands != "" {
		s += " " + l.Operands
	}
	if l.Branch {
		s += "  ; branch"
	}
	return s
}

// GNUOperands renders w in GNU syntax, or "" when ppc64asm does not know
// the instruction.
func GNUOperands(w uint32, pc uint64) string {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], w)
	inst, err := ppc64asm.Decode(buf[:], binary.BigEndian)
	if err != nil {
		return ""
	}
	return ppc64asm.GNUSyntax(inst, pc)
}

// Disassemble decodes words, loaded from start, using up to workers
// goroutines that share dec. Lines are returned in address order.
func Disassemble(ctx context.Context, dec *decoder.Decoder, start uint64, words []uint32, workers int, operands bool) ([]Line, error) {
	if workers < 1 {
		return nil, fmt.Errorf("need at least one worker, got %d", workers)
	}
	lines := make([]Line, len(words))
	chunk := (len(words) + workers - 1) / workers
	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(words); lo += chunk {
		lo, hi := lo, min(lo+chunk, len(words))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				addr := start + uint64(i)*ppc.InstrSize
				w := words[i]
				lines[i] = Line{Addr: addr, Word: w, Mnemonic: dec.DecodeName(w), Branch: dec.IsBranch(w)}
				if operands {
					lines[i].Operands = GNUOperands(w, addr)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lines, nil
}

func disasmSource(ctx *cli.Context) (*ppc.State, ppc.SortedSymbols, error) {
	if elfPath := ctx.Path(DisasmELFFlag.Name); elfPath != "" {
		f, err := elf.Open(elfPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open ELF file %q: %w", elfPath, err)
		}
		defer f.Close()
		state, err := ppc.LoadELF(f)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load ELF data: %w", err)
		}
		syms, err := ppc.Symbols(f)
		if err != nil && !errors.Is(err, elf.ErrNoSymbols) {
			return nil, nil, err
		}
		return state, syms, nil
	}
	if statePath := ctx.Path(DisasmStateFlag.Name); statePath != "" {
		state, err := jsonutil.LoadJSON[ppc.State](statePath)
		if err != nil {
			return nil, nil, err
		}
		if state.Memory == nil {
			state.Memory = ppc.NewMemory()
		}
		return state, nil, nil
	}
	return nil, nil, fmt.Errorf("either --%s or --%s is required", DisasmELFFlag.Name, DisasmStateFlag.Name)
}

func Disasm(ctx *cli.Context) error {
	state, syms, err := disasmSource(ctx)
	if err != nil {
		return err
	}
	start := state.PC
	if s := ctx.String(DisasmStartFlag.Name); s != "" {
		if start, err = strconv.ParseUint(s, 0, 64); err != nil {
			return fmt.Errorf("invalid start address %q: %w", s, err)
		}
	}
	count := ctx.Int(DisasmCountFlag.Name)
	if count < 0 {
		return fmt.Errorf("negative instruction count %d", count)
	}
	// memory is not safe for concurrent reads, fetch before fanning out
	words := make([]uint32, count)
	for i := range words {
		words[i] = state.Memory.Read32(start + uint64(i)*ppc.InstrSize)
	}

	dec, err := NewDecoder(log.Root())
	if err != nil {
		return err
	}
	lines, err := Disassemble(ctx.Context, dec, start, words, ctx.Int(DisasmWorkersFlag.Name), ctx.Bool(DisasmOperandsFlag.Name))
	if err != nil {
		return err
	}
	out := ctx.App.Writer
	for _, line := range lines {
		if len(syms) > 0 {
			if sym := syms.FindSymbol(line.Addr); sym.Value == line.Addr && sym.Name != "" && !strings.HasPrefix(sym.Name, "!") {
				fmt.Fprintf(out, "\n<%s>:\n", sym.Name)
			}
		}
		fmt.Fprintln(out, line)
	}
	return nil
}

var DisasmCommand = &cli.Command{
	Name:        "disasm",
	Usage:       "Disassemble a range of guest memory",
	Description: "Disassemble instructions of an ELF file or JSON state, decoding them concurrently with a shared decoder",
	Action:      Disasm,
	Flags: []cli.Flag{
		DisasmELFFlag,
		DisasmStateFlag,
		DisasmStartFlag,
		DisasmCountFlag,
		DisasmOperandsFlag,
		DisasmWorkersFlag,
	},
}
