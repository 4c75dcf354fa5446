package cmd

import (
	"debug/elf"
	"errors"
	"fmt"
	"sort"

	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

type Symbol struct {
	Name  string `json:"name"`
	Start uint64 `json:"start"`
	Size  uint64 `json:"size"`
}

type Metadata struct {
	Symbols []Symbol `json:"symbols"`
}

// MakeMetadata collects the symbols of an ELF, sorted by address. An ELF
// without a symbol table yields empty metadata.
func MakeMetadata(elfProgram *elf.File) (*Metadata, error) {
	syms, err := ppc.Symbols(elfProgram)
	if errors.Is(err, elf.ErrNoSymbols) {
		return &Metadata{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load symbols: %w", err)
	}
	out := &Metadata{Symbols: make([]Symbol, 0, len(syms))}
	for _, s := range syms {
		out.Symbols = append(out.Symbols, Symbol{Name: s.Name, Start: s.Value, Size: s.Size})
	}
	return out, nil
}

func (m *Metadata) LookupSymbol(addr uint64) string {
	if len(m.Symbols) == 0 {
		return "!unknown"
	}
	// find first symbol with higher start. Or n if no such symbol exists
	i := sort.Search(len(m.Symbols), func(i int) bool {
		return m.Symbols[i].Start > addr
	})
	if i == 0 {
		return "!start"
	}
	out := &m.Symbols[i-1]
	if out.Start+out.Size < addr { // addr may be pointing to a gap between symbols
		return "!gap"
	}
	return out.Name
}
