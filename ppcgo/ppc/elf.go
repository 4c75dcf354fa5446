package ppc

import (
	"bytes"
	"debug/elf"
	"encoding/binary"
	"fmt"
	"io"
	"sort"
)

func LoadELF(f *elf.File) (*State, error) {
	if f.Machine != elf.EM_PPC64 && f.Machine != elf.EM_PPC {
		return nil, fmt.Errorf("ELF is not PowerPC, but got %q", f.Machine.String())
	}
	if f.ByteOrder != binary.BigEndian {
		return nil, fmt.Errorf("ELF is not big-endian")
	}
	out := NewState()

	for i, prog := range f.Progs {
		if prog.Type != elf.PT_LOAD {
			continue
		}
		r := io.Reader(io.NewSectionReader(prog, 0, int64(prog.Filesz)))
		if prog.Filesz != prog.Memsz {
			if prog.Filesz < prog.Memsz {
				r = io.MultiReader(r, bytes.NewReader(make([]byte, prog.Memsz-prog.Filesz)))
			} else {
				return nil, fmt.Errorf("invalid PT_LOAD program segment %d, file size (%d) > mem size (%d)", i, prog.Filesz, prog.Memsz)
			}
		}
		if err := out.Memory.SetMemoryRange(prog.Vaddr, r); err != nil {
			return nil, fmt.Errorf("failed to read program segment %d: %w", i, err)
		}
	}

	out.PC = f.Entry
	if opd := f.Section(".opd"); opd != nil && f.Entry >= opd.Addr && f.Entry < opd.Addr+opd.Size {
		// ELFv1: the entry point is a function descriptor, holding the code
		// address and then the TOC pointer.
		out.PC = out.Memory.Read64(f.Entry)
		out.GPR[2] = out.Memory.Read64(f.Entry + 8)
	}
	// 64-bit mode
	if f.Class == elf.ELFCLASS64 {
		out.MSR |= 1 << 63
	}
	return out, nil
}

type SortedSymbols []elf.Symbol

// FindSymbol finds the symbol that intersects with the given addr, or nil if none exists
func (s SortedSymbols) FindSymbol(addr uint64) elf.Symbol {
	// find first symbol with higher start. Or n if no such symbol exists
	i := sort.Search(len(s), func(i int) bool {
		return s[i].Value > addr
	})
	if i == 0 {
		return elf.Symbol{Name: "!start", Value: 0}
	}
	out := &s[i-1]
	if out.Value+out.Size < addr { // addr may be pointing to a gap between symbols
		return elf.Symbol{Name: "!gap", Value: addr}
	}
	return *out
}

func Symbols(f *elf.File) (SortedSymbols, error) {
	symbols, err := f.Symbols()
	if err != nil {
		return nil, fmt.Errorf("failed to read symbols data: %w", err)
	}
	// not every ELF has sorted symbols
	out := make(SortedSymbols, len(symbols))
	copy(out, symbols)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Value < out[j].Value
	})
	return out, nil
}
