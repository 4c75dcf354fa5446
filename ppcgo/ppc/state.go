package ppc

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/holiman/uint256"
)

// Vec128 is one 128-bit vector register, held in the low half of a 256-bit
// word. The upper 128 bits are always zero.
type Vec128 uint256.Int

var vecMask = new(uint256.Int).SubUint64(new(uint256.Int).Lsh(uint256.NewInt(1), 128), 1)

func (v *Vec128) Int() *uint256.Int {
	return (*uint256.Int)(v)
}

// Set stores x truncated to 128 bits.
func (v *Vec128) Set(x *uint256.Int) {
	v.Int().And(x, vecMask)
}

// Bytes returns the register in big-endian (PowerPC element) order.
func (v *Vec128) Bytes() [16]byte {
	b := v.Int().Bytes32()
	return *(*[16]byte)(b[16:])
}

func (v *Vec128) SetBytes(b []byte) {
	v.Int().SetBytes(b[:16])
}

func (v Vec128) MarshalText() ([]byte, error) {
	b := v.Bytes()
	return hexutil.Bytes(b[:]).MarshalText()
}

func (v *Vec128) UnmarshalText(text []byte) error {
	var b hexutil.Bytes
	if err := b.UnmarshalText(text); err != nil {
		return err
	}
	if len(b) != 16 {
		return fmt.Errorf("expected 16 vector bytes, got %d", len(b))
	}
	v.SetBytes(b)
	return nil
}

// State is the architectural state of one PowerPC hardware thread, as seen
// by the interpreter and the JIT.
type State struct {
	Memory *Memory `json:"memory"`

	PC  uint64 `json:"pc"`
	MSR uint64 `json:"msr"`

	GPR [32]uint64 `json:"gpr"`
	FPR [32]uint64 `json:"fpr"` // raw IEEE-754 bits
	// VMX128 extends the AltiVec register file from 32 to 128 registers.
	VR [128]Vec128 `json:"vr"`

	CR    uint32 `json:"cr"`
	XER   uint64 `json:"xer"`
	LR    uint64 `json:"lr"`
	CTR   uint64 `json:"ctr"`
	FPSCR uint32 `json:"fpscr"`
	VSCR  uint32 `json:"vscr"`

	SRR0         uint64    `json:"srr0"`
	SRR1         uint64    `json:"srr1"`
	SPRG         [4]uint64 `json:"sprg"`
	DEC          uint32    `json:"dec"`
	HID4         uint64    `json:"hid4"`
	Reserve      uint64    `json:"reserve"`
	ReserveValid bool      `json:"reserveValid"`

	Step   uint64 `json:"step"`
	Halted bool   `json:"halted"`

	// Instr and NIA describe the instruction being executed: NIA is the
	// address of the next instruction, pre-set to PC+4 and redirected by
	// branches.
	Instr Instr  `json:"-"`
	NIA   uint64 `json:"-"`

	fault error
}

func NewState() *State {
	return &State{
		Memory: NewMemory(),
	}
}

// Raise records a fault for the instruction being executed. Only the first
// fault of a step is kept.
func (s *State) Raise(err error) {
	if s.fault == nil {
		s.fault = err
	}
}

// Fault returns the fault raised since the last ClearFault.
func (s *State) Fault() error {
	return s.fault
}

func (s *State) ClearFault() {
	s.fault = nil
}

// Fetch reads the instruction at PC.
func (s *State) Fetch() Instr {
	return Instr(s.Memory.Read32(s.PC))
}

// CRField returns CR field n (0..7) as a 4-bit LT|GT|EQ|SO value.
func (s *State) CRField(n uint32) uint32 {
	return (s.CR >> ((7 - n) * 4)) & 0xF
}

func (s *State) SetCRField(n uint32, v uint32) {
	shift := (7 - n) * 4
	s.CR = (s.CR &^ (0xF << shift)) | (v&0xF)<<shift
}

// CRBit returns CR bit n in PowerPC numbering (bit 0 is CR0[LT]).
func (s *State) CRBit(n uint32) bool {
	return (s.CR>>(31-n))&1 != 0
}

func (s *State) SetCRBit(n uint32, v bool) {
	m := uint32(1) << (31 - n)
	if v {
		s.CR |= m
	} else {
		s.CR &^= m
	}
}

// Compare sets CR field n from a signed comparison, copying XER[SO].
func (s *State) Compare(n uint32, a, b int64) {
	var f uint32
	switch {
	case a < b:
		f = CrLT
	case a > b:
		f = CrGT
	default:
		f = CrEQ
	}
	s.SetCRField(n, f|s.so())
}

// CompareUnsigned sets CR field n from an unsigned comparison.
func (s *State) CompareUnsigned(n uint32, a, b uint64) {
	var f uint32
	switch {
	case a < b:
		f = CrLT
	case a > b:
		f = CrGT
	default:
		f = CrEQ
	}
	s.SetCRField(n, f|s.so())
}

// Record updates CR0 from a 64-bit result, as the Rc=1 forms do.
func (s *State) Record(v uint64) {
	s.Compare(0, int64(v), 0)
}

func (s *State) so() uint32 {
	if s.XER&XerSO != 0 {
		return CrSO
	}
	return 0
}

func (s *State) SetCA(ca bool) {
	if ca {
		s.XER |= XerCA
	} else {
		s.XER &^= XerCA
	}
}

func (s *State) CA() uint64 {
	if s.XER&XerCA != 0 {
		return 1
	}
	return 0
}

// ErrUnaligned is raised by accesses that require natural alignment.
var ErrUnaligned = errors.New("unaligned access")

// ErrUnknownSPR is raised by SPR moves to registers this state does not model.
var ErrUnknownSPR = errors.New("unknown special purpose register")

// ReadSPR returns the value of SPR n.
func (s *State) ReadSPR(n uint32) (uint64, error) {
	switch n {
	case SprXER:
		return s.XER, nil
	case SprLR:
		return s.LR, nil
	case SprCTR:
		return s.CTR, nil
	case SprDEC:
		return uint64(s.DEC), nil
	case SprSRR0:
		return s.SRR0, nil
	case SprSRR1:
		return s.SRR1, nil
	case SprTBL:
		return s.Step, nil
	case SprTBU:
		return s.Step >> 32, nil
	case SprSPRG0, SprSPRG1, SprSPRG2, SprSPRG3:
		return s.SPRG[n-SprSPRG0], nil
	case SprPVR:
		return XenonPVR, nil
	case SprHID4:
		return s.HID4, nil
	case SprPIR:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: mfspr %d", ErrUnknownSPR, n)
	}
}

// WriteSPR sets SPR n.
func (s *State) WriteSPR(n uint32, v uint64) error {
	switch n {
	case SprXER:
		s.XER = v
	case SprLR:
		s.LR = v
	case SprCTR:
		s.CTR = v
	case SprDEC:
		s.DEC = uint32(v)
	case SprSRR0:
		s.SRR0 = v
	case SprSRR1:
		s.SRR1 = v
	case SprSPRG0, SprSPRG1, SprSPRG2, SprSPRG3:
		s.SPRG[n-SprSPRG0] = v
	case SprHID4:
		s.HID4 = v
	default:
		return fmt.Errorf("%w: mtspr %d", ErrUnknownSPR, n)
	}
	return nil
}
