package decoder

import "math/bits"

// Decode index layout. Rotating the instruction word left by PrimaryBits
// moves the primary opcode (instruction bits 0..5) into index bits 0..5 and
// instruction bits 21..31 (extended opcode and Rc) into index bits 6..16:
//
//	index:  16 ........... 6 | 5 ..... 0
//	        extended || Rc   | primary
//
// Masking to IndexBits drops instruction bits 6..20, which only hold
// register and immediate operands for every opcode group with an extended
// field.
const (
	PrimaryBits = 6
	ExtBits     = 11
	IndexBits   = PrimaryBits + ExtBits
	TableSize   = 1 << IndexBits
	IndexMask   = TableSize - 1
	PrimaryMask = 1<<PrimaryBits - 1
	ExtMask     = 1<<ExtBits - 1
)

// Index is the dense key into the decode tables.
type Index uint32

// IndexOf maps an instruction word to its decode index.
func IndexOf(instr uint32) Index {
	return Index(bits.RotateLeft32(instr, PrimaryBits) & IndexMask)
}

// Primary is the primary opcode of the indexed instruction.
func (i Index) Primary() uint32 {
	return uint32(i) & PrimaryMask
}

// Ext is the 11-bit extended field, including the Rc bit in bit 0.
func (i Index) Ext() uint32 {
	return (uint32(i) >> PrimaryBits) & ExtMask
}

// XO is the 10-bit X-form extended opcode, without the Rc bit.
func (i Index) XO() uint32 {
	return i.Ext() >> 1
}
