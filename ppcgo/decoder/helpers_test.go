package decoder

import (
	"github.com/xenon-emu/xcpu/ppcgo/jit"
	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

// hit is raised by the test handlers, naming the handler that ran.
type hit string

func (h hit) Error() string { return string(h) }

// stubHandlers resolves every mnemonic but the missing ones to a handler
// that raises its own name.
type stubHandlers struct {
	missing map[string]bool
}

func (p stubHandlers) Lookup(m string) (Handler, bool) {
	if p.missing[m] {
		return nil, false
	}
	return func(s *ppc.State) { s.Raise(hit(m)) }, true
}

func (p stubHandlers) Invalid() Handler {
	return func(s *ppc.State) { s.Raise(hit(InvalidName)) }
}

func (p stubHandlers) Unimplemented(m string) Handler {
	return func(s *ppc.State) { s.Raise(hit("unimplemented " + m)) }
}

func (p stubHandlers) Nop() Handler {
	return func(s *ppc.State) { s.Raise(hit("nop")) }
}

type stubJITHandlers struct{}

func (stubJITHandlers) Lookup(m string) (JITHandler, bool) {
	return func(s *ppc.State, b *jit.Builder, instr ppc.Instr) { s.Raise(hit(m)) }, true
}

func (stubJITHandlers) Invalid() JITHandler {
	return func(s *ppc.State, b *jit.Builder, instr ppc.Instr) { s.Raise(hit(InvalidName)) }
}

func (stubJITHandlers) Unimplemented(m string) JITHandler {
	return func(s *ppc.State, b *jit.Builder, instr ppc.Instr) { s.Raise(hit("unimplemented " + m)) }
}

// ran invokes h and returns the name of the handler that ran.
func ran(s *ppc.State, h Handler) string {
	s.ClearFault()
	h(s)
	return s.Fault().Error()
}

func ranJIT(s *ppc.State, h JITHandler) string {
	s.ClearFault()
	h(s, nil, s.Instr)
	return s.Fault().Error()
}

// wordOf is the smallest instruction word with index idx.
func wordOf(idx Index) uint32 {
	return idx.Primary()<<26 | idx.Ext()
}
