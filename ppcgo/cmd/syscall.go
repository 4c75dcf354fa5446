package cmd

import (
	"fmt"
	"io"

	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

// System call numbers of the run command's guest ABI. The number is passed
// in r0, arguments in r3 and up, and the result is returned in r3.
const (
	SysExit  = 0
	SysWrite = 1
)

// Syscalls services sc for bare-metal test programs. It is not an operating
// system: exit halts the state and write copies guest memory to a stream.
type Syscalls struct {
	Stdout io.Writer
	Stderr io.Writer
}

func (sc *Syscalls) Handle(s *ppc.State) error {
	switch n := s.GPR[0]; n {
	case SysExit:
		s.Halted = true
	case SysWrite:
		fd, addr, count := s.GPR[3], s.GPR[4], s.GPR[5]
		var w io.Writer
		switch fd {
		case 1:
			w = sc.Stdout
		case 2:
			w = sc.Stderr
		default:
			s.GPR[3] = ^uint64(0)
			return nil
		}
		written, err := io.Copy(w, s.Memory.ReadMemoryRange(addr, count))
		if err != nil {
			return fmt.Errorf("write to fd %d: %w", fd, err)
		}
		s.GPR[3] = uint64(written)
	default:
		return fmt.Errorf("unknown syscall %d", n)
	}
	return nil
}
