package recompiler

import (
	"sort"

	"github.com/xenon-emu/xcpu/ppcgo/decoder"
	"github.com/xenon-emu/xcpu/ppcgo/jit"
	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

// Registry maps mnemonics to JIT emitters. Instructions without a native
// emitter are translated into a call of their interpreter handler.
type Registry struct {
	emitters map[string]decoder.JITHandler
}

var _ decoder.Handlers[decoder.JITHandler] = (*Registry)(nil)

func NewRegistry() *Registry {
	r := &Registry{emitters: make(map[string]decoder.JITHandler)}
	r.registerInteger()
	r.registerBranch()
	r.registerCache()
	return r
}

// Register binds h to every given mnemonic, replacing earlier bindings.
func (r *Registry) Register(h decoder.JITHandler, mnemonics ...string) {
	for _, m := range mnemonics {
		r.emitters[m] = h
	}
}

func (r *Registry) Lookup(mnemonic string) (decoder.JITHandler, bool) {
	h, ok := r.emitters[mnemonic]
	return h, ok
}

// Mnemonics lists the mnemonics with a native emitter, sorted.
func (r *Registry) Mnemonics() []string {
	out := make([]string, 0, len(r.emitters))
	for m := range r.emitters {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

// Invalid defers to the interpreter, which applies its invalid-instruction
// policy, and ends the block.
func (r *Registry) Invalid() decoder.JITHandler {
	return func(s *ppc.State, b *jit.Builder, instr ppc.Instr) {
		b.Interpret(instr)
		b.End()
	}
}

func (r *Registry) Unimplemented(mnemonic string) decoder.JITHandler {
	return interpret
}

func interpret(s *ppc.State, b *jit.Builder, instr ppc.Instr) {
	b.Interpret(instr)
}
