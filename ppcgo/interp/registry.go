package interp

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"

	"github.com/xenon-emu/xcpu/ppcgo/decoder"
	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

var (
	ErrInvalidInstruction = errors.New("invalid instruction")
	ErrUnimplemented      = errors.New("unimplemented instruction")
	ErrSyscall            = errors.New("system call")
	ErrTrap               = errors.New("trap")
)

// Policy decides what a sentinel handler does after logging.
type Policy uint8

const (
	// PolicyHalt raises a fault, stopping execution on the instruction.
	PolicyHalt Policy = iota
	// PolicySkip continues with the next instruction.
	PolicySkip
)

func (p Policy) String() string {
	switch p {
	case PolicyHalt:
		return "halt"
	case PolicySkip:
		return "skip"
	default:
		return fmt.Sprintf("Policy(%d)", uint8(p))
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "halt":
		return PolicyHalt, nil
	case "skip":
		return PolicySkip, nil
	default:
		return 0, fmt.Errorf("unknown policy %q, expected halt or skip", s)
	}
}

type Config struct {
	OnInvalid       Policy
	OnUnimplemented Policy
	// Syscall services sc. Without it, sc faults with ErrSyscall.
	Syscall func(s *ppc.State) error
	// Trace logs every executed instruction at trace level.
	Trace bool
	Log   log.Logger
}

func DefaultConfig() Config {
	return Config{
		OnInvalid:       PolicyHalt,
		OnUnimplemented: PolicyHalt,
		Log:             log.Root(),
	}
}

// Registry maps mnemonics to interpreter handlers. It implements
// decoder.Handlers.
type Registry struct {
	cfg      Config
	handlers map[string]decoder.Handler
}

var _ decoder.InterpHandlers = (*Registry)(nil)

func NewRegistry(cfg Config) *Registry {
	if cfg.Log == nil {
		cfg.Log = log.Root()
	}
	r := &Registry{cfg: cfg, handlers: make(map[string]decoder.Handler)}
	r.registerInteger()
	r.registerBranch()
	r.registerMemory()
	r.registerSystem()
	r.registerFloat()
	r.registerVector()
	return r
}

// Register binds h to every given mnemonic, replacing earlier bindings.
func (r *Registry) Register(h decoder.Handler, mnemonics ...string) {
	for _, m := range mnemonics {
		r.handlers[m] = h
	}
}

func (r *Registry) Lookup(mnemonic string) (decoder.Handler, bool) {
	h, ok := r.handlers[mnemonic]
	return h, ok
}

// Mnemonics lists the registered mnemonics, sorted.
func (r *Registry) Mnemonics() []string {
	out := make([]string, 0, len(r.handlers))
	for m := range r.handlers {
		out = append(out, m)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) Invalid() decoder.Handler {
	return func(s *ppc.State) {
		r.cfg.Log.Warn("Invalid instruction", "pc", hexutil.Uint64(s.PC), "instr", s.Instr, "policy", r.cfg.OnInvalid)
		if r.cfg.OnInvalid == PolicyHalt {
			s.Raise(fmt.Errorf("%w %s", ErrInvalidInstruction, s.Instr))
		}
	}
}

func (r *Registry) Unimplemented(mnemonic string) decoder.Handler {
	return func(s *ppc.State) {
		r.cfg.Log.Warn("Unimplemented instruction", "name", mnemonic, "pc", hexutil.Uint64(s.PC), "instr", s.Instr, "policy", r.cfg.OnUnimplemented)
		if r.cfg.OnUnimplemented == PolicyHalt {
			s.Raise(fmt.Errorf("%w %q", ErrUnimplemented, mnemonic))
		}
	}
}

func (r *Registry) Nop() decoder.Handler {
	return func(s *ppc.State) {}
}
