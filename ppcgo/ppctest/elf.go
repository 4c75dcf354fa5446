package ppctest

import (
	"bytes"
	"debug/elf"
	"encoding/binary"

	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

// Words encodes instruction words in big-endian order.
func Words(code ...uint32) []byte {
	out := make([]byte, 4*len(code))
	for i, w := range code {
		binary.BigEndian.PutUint32(out[4*i:], w)
	}
	return out
}

// ELF returns a minimal big-endian ELF64 PowerPC executable with image
// loaded at vaddr as its only PT_LOAD segment and entry point.
func ELF(vaddr uint64, image []byte) []byte {
	const headerSize, progSize = 64, 56
	hdr := elf.Header64{
		Type:      uint16(elf.ET_EXEC),
		Machine:   uint16(elf.EM_PPC64),
		Version:   uint32(elf.EV_CURRENT),
		Entry:     vaddr,
		Phoff:     headerSize,
		Ehsize:    headerSize,
		Phentsize: progSize,
		Phnum:     1,
	}
	copy(hdr.Ident[:], elf.ELFMAG)
	hdr.Ident[elf.EI_CLASS] = byte(elf.ELFCLASS64)
	hdr.Ident[elf.EI_DATA] = byte(elf.ELFDATA2MSB)
	hdr.Ident[elf.EI_VERSION] = byte(elf.EV_CURRENT)
	prog := elf.Prog64{
		Type:   uint32(elf.PT_LOAD),
		Flags:  uint32(elf.PF_R | elf.PF_X),
		Off:    headerSize + progSize,
		Vaddr:  vaddr,
		Paddr:  vaddr,
		Filesz: uint64(len(image)),
		Memsz:  uint64(len(image)),
		Align:  ppc.PageSize,
	}
	var buf bytes.Buffer
	// writes to a bytes.Buffer do not fail
	_ = binary.Write(&buf, binary.BigEndian, &hdr)
	_ = binary.Write(&buf, binary.BigEndian, &prog)
	buf.Write(image)
	return buf.Bytes()
}
