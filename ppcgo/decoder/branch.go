package decoder

import "github.com/xenon-emu/xcpu/ppcgo/ppc"

// IsBranch reports whether idx decodes to a control-transfer instruction:
// b, bc, bclr, bcctr or rfid, in any of their AA/LK variants. idx must come
// from IndexOf; the raw instruction word is not accepted.
func IsBranch(idx Index) bool {
	switch idx.Primary() {
	case ppc.OpcodeB, ppc.OpcodeBc:
		return true
	case ppc.OpcodeCR:
		switch idx.XO() {
		case ppc.XOBclr, ppc.XOBcctr, ppc.XORfid:
			return true
		}
	}
	return false
}
