package ppc

const (
	// InstrSize is the size (in bytes) of every PowerPC instruction.
	InstrSize = 4

	// NopWord is `ori r0, r0, 0`, the canonical no-op encoding.
	NopWord = uint32(0x60000000)

	// CacheLineSize is the Xenon L1/L2 line size, the unit of dcbz and icbi.
	CacheLineSize = 128
)

// Primary opcodes, instruction bits 0..5 (the top six bits of the word).
const (
	OpcodeTdi      = 0x02
	OpcodeTwi      = 0x03
	OpcodeVMX      = 0x04 // AltiVec + VMX128 loads/stores, vsldoi128
	OpcodeVMX128A  = 0x05 // VMX128 arithmetic, logic and vperm128
	OpcodeVMX128B  = 0x06 // VMX128 compares, conversions, permutes
	OpcodeMulli    = 0x07
	OpcodeAddi     = 0x0E
	OpcodeAddis    = 0x0F
	OpcodeBc       = 0x10
	OpcodeSc       = 0x11
	OpcodeB        = 0x12
	OpcodeCR       = 0x13 // XL-form: branch to LR/CTR, CR logic, rfid, isync
	OpcodeRlwinm   = 0x15
	OpcodeOri      = 0x18
	OpcodeRld      = 0x1E // MD/MDS-form 64-bit rotates
	OpcodeX        = 0x1F // X/XO/XS-form integer, load/store, SPR, cache
	OpcodeLwz      = 0x20
	OpcodeStw      = 0x24
	OpcodeDSLoad   = 0x3A // ld, ldu, lwa
	OpcodeFPSingle = 0x3B
	OpcodeDSStore  = 0x3E // std, stdu
	OpcodeFPDouble = 0x3F
)

// Extended opcodes of the control-transfer instructions in OpcodeCR.
const (
	XOBclr  = 0x010
	XORfid  = 0x012
	XOBcctr = 0x210
)

// Special purpose registers, by their (already swapped) SPR number.
const (
	SprXER   = 1
	SprLR    = 8
	SprCTR   = 9
	SprDSISR = 18
	SprDAR   = 19
	SprDEC   = 22
	SprSRR0  = 26
	SprSRR1  = 27
	SprTBL   = 268
	SprTBU   = 269
	SprSPRG0 = 272
	SprSPRG1 = 273
	SprSPRG2 = 274
	SprSPRG3 = 275
	SprPVR   = 287
	SprHID4  = 1012
	SprPIR   = 1023
)

// XER bits, in the low word of XER.
const (
	XerSO = uint64(1) << 31
	XerOV = uint64(1) << 30
	XerCA = uint64(1) << 29
)

// CR field bits, within a 4-bit field.
const (
	CrLT = 0x8
	CrGT = 0x4
	CrEQ = 0x2
	CrSO = 0x1
)

// XenonPVR is the processor version reported by mfspr PVR.
const XenonPVR = uint64(0x00710800)
