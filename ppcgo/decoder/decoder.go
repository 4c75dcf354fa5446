package decoder

import (
	"fmt"
	"sort"

	"github.com/xenon-emu/xcpu/ppcgo/jit"
	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

// InvalidName is the mnemonic of every index no pattern covers.
const InvalidName = "invalid"

// Handler executes one instruction. The instruction word is s.Instr; faults
// are reported through s.Raise.
type Handler func(s *ppc.State)

// JITHandler translates one instruction into b.
type JITHandler func(s *ppc.State, b *jit.Builder, instr ppc.Instr)

// Handlers resolves mnemonics to the handlers of one backend.
type Handlers[H any] interface {
	// Lookup returns the handler implementing mnemonic, if any.
	Lookup(mnemonic string) (H, bool)
	// Invalid handles words that decode to no instruction.
	Invalid() H
	// Unimplemented handles a decodable instruction without a handler.
	Unimplemented(mnemonic string) H
}

// InterpHandlers are the handlers of the interpreter, which Decode serves
// the canonical no-op from without a table lookup.
type InterpHandlers interface {
	Handlers[Handler]
	Nop() Handler
}

type config struct {
	groups []Group
}

type Option func(c *config)

// WithGroups replaces the built-in opcode specification.
func WithGroups(gs []Group) Option {
	return func(c *config) {
		c.groups = cloneGroups(gs)
	}
}

// Decoder holds the three decode tables. It is immutable once New returns,
// and safe for concurrent use.
type Decoder struct {
	groups []Group

	nop      Handler
	table    [TableSize]Handler
	jitTable [TableSize]JITHandler
	names    [TableSize]string
}

// New validates the opcode specification and builds every table from it.
func New(interp InterpHandlers, jitHandlers Handlers[JITHandler], opts ...Option) (*Decoder, error) {
	cfg := config{groups: groups}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := Validate(cfg.groups); err != nil {
		return nil, fmt.Errorf("invalid opcode specification: %w", err)
	}

	d := &Decoder{groups: cfg.groups, nop: interp.Nop()}
	invalid, invalidJIT := interp.Invalid(), jitHandlers.Invalid()
	for i := range d.table {
		d.table[i] = invalid
		d.jitTable[i] = invalidJIT
		d.names[i] = InvalidName
	}

	handlers := resolver(interp)
	jitHandlerFor := resolver(jitHandlers)
	for _, g := range d.groups {
		expand(&d.names, g.Layout, project(g, func(m string) string { return m }))
		expand(&d.table, g.Layout, project(g, handlers))
		expand(&d.jitTable, g.Layout, project(g, jitHandlerFor))
	}
	return d, nil
}

// resolver looks each mnemonic up once.
func resolver[H any](h Handlers[H]) func(string) H {
	cache := make(map[string]H)
	return func(mnemonic string) H {
		if fn, ok := cache[mnemonic]; ok {
			return fn
		}
		fn, ok := h.Lookup(mnemonic)
		if !ok {
			fn = h.Unimplemented(mnemonic)
		}
		cache[mnemonic] = fn
		return fn
	}
}

// Decode returns the interpreter handler of instr.
func (d *Decoder) Decode(instr uint32) Handler {
	if instr == ppc.NopWord {
		return d.nop
	}
	return d.table[IndexOf(instr)]
}

// DecodeJIT returns the JIT handler of instr.
func (d *Decoder) DecodeJIT(instr uint32) JITHandler {
	return d.jitTable[IndexOf(instr)]
}

// DecodeName returns the mnemonic of instr. The no-op word is named after
// the instruction it encodes, "ori".
func (d *Decoder) DecodeName(instr uint32) string {
	return d.names[IndexOf(instr)]
}

// IsBranch reports whether instr transfers control.
func (d *Decoder) IsBranch(instr uint32) bool {
	return IsBranch(IndexOf(instr))
}

// View is read-only access to one decode table.
type View[T any] struct {
	t *[TableSize]T
}

func (v View[T]) At(idx Index) T {
	return v.t[idx&IndexMask]
}

func (v View[T]) Len() int {
	return len(v.t)
}

// Range calls fn for every index in order, until fn returns false.
func (v View[T]) Range(fn func(idx Index, entry T) bool) {
	for i := range v.t {
		if !fn(Index(i), v.t[i]) {
			return
		}
	}
}

func (d *Decoder) Table() View[Handler] {
	return View[Handler]{t: &d.table}
}

func (d *Decoder) JITTable() View[JITHandler] {
	return View[JITHandler]{t: &d.jitTable}
}

func (d *Decoder) NameTable() View[string] {
	return View[string]{t: &d.names}
}

// Groups returns a copy of the opcode groups the tables were built from.
func (d *Decoder) Groups() []Group {
	return cloneGroups(d.groups)
}

// Mnemonics lists every distinct mnemonic of the opcode groups, sorted.
func (d *Decoder) Mnemonics() []string {
	set := make(map[string]struct{})
	for _, g := range d.groups {
		for _, p := range g.Patterns {
			set[p.Plain] = struct{}{}
			set[p.Rc] = struct{}{}
		}
	}
	out := make([]string, 0, len(set))
	for m := range set {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}
