package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

func TestSyscalls(t *testing.T) {
	var stdout, stderr bytes.Buffer
	sys := &Syscalls{Stdout: &stdout, Stderr: &stderr}

	t.Run("write", func(t *testing.T) {
		s := ppc.NewState()
		s.Memory.Write(0x2000, []byte("hello"))
		s.GPR[0], s.GPR[3], s.GPR[4], s.GPR[5] = SysWrite, 2, 0x2000, 5
		require.NoError(t, sys.Handle(s))
		require.Equal(t, uint64(5), s.GPR[3])
		require.Equal(t, "hello", stderr.String())
		require.Empty(t, stdout.String())
	})
	t.Run("bad descriptor", func(t *testing.T) {
		s := ppc.NewState()
		s.GPR[0], s.GPR[3], s.GPR[5] = SysWrite, 9, 4
		require.NoError(t, sys.Handle(s))
		require.Equal(t, ^uint64(0), s.GPR[3])
	})
	t.Run("exit", func(t *testing.T) {
		s := ppc.NewState()
		s.GPR[0], s.GPR[3] = SysExit, 3
		require.NoError(t, sys.Handle(s))
		require.True(t, s.Halted)
		require.Equal(t, uint64(3), s.GPR[3])
	})
	t.Run("unknown", func(t *testing.T) {
		s := ppc.NewState()
		s.GPR[0] = 99
		require.ErrorContains(t, sys.Handle(s), "unknown syscall 99")
	})
}
