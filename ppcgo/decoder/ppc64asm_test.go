package decoder

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/arch/ppc64/ppc64asm"
)

// Base-ISA words whose canonical mnemonic is what ppc64asm reports as the
// opcode (no extended mnemonics involved).
var ppc64asmWords = []uint32{
	0x7C632214, // add r3,r3,r4
	0x7C632215, // add. r3,r3,r4
	0x7C641850, // subf r3,r4,r3
	0x7C832038, // and r3,r4,r4
	0x7C832B78, // or r3,r4,r5
	0x7C832A78, // xor r3,r4,r5
	0x7C6419D6, // mullw r3,r4,r3
	0x7C6423D6, // divw r3,r4,r4
	0x7C6400D0, // neg r3,r4
	0x7C8307B4, // extsw r3,r4
	0x7C832830, // slw r3,r4,r5
	0x7C831670, // srawi r3,r4,2
	0x7C831674, // sradi r3,r4,2
	0x80640008, // lwz r3,8(r4)
	0x90640008, // stw r3,8(r4)
	0x88640000, // lbz r3,0(r4)
	0xE8640008, // ld r3,8(r4)
	0xF8640008, // std r3,8(r4)
	0x38640010, // addi r3,r4,16
	0x5483103A, // rlwinm r3,r4,2,0,29
	0x78630020, // rldicl r3,r3,0,32
	0x48000010, // b
	0x48000011, // bl
	0x4E800020, // bclr 20,0
	0x4C00012C, // isync
	0xC8230000, // lfd f1,0(r3)
	0xFC21102A, // fadd f1,f1,f2
	0xFC2100B2, // fmul f1,f1,f2
	0x10011000, // vaddubm v0,v1,v2
	0x100110EB, // vperm v0,v1,v2,v3
}

func TestNamesMatchPPC64Asm(t *testing.T) {
	d := newTestDecoder(t)
	var buf [4]byte
	for _, w := range ppc64asmWords {
		binary.BigEndian.PutUint32(buf[:], w)
		inst, err := ppc64asm.Decode(buf[:], binary.BigEndian)
		require.NoError(t, err, "word %08x", w)
		require.Equal(t, inst.Op.String(), d.DecodeName(w), "word %08x: %s", w, ppc64asm.GNUSyntax(inst, 0))
	}
}
