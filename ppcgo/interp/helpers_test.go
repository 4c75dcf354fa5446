package interp

import (
	"bytes"
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/log"
	"github.com/stretchr/testify/require"

	"github.com/xenon-emu/xcpu/ppcgo/decoder"
	"github.com/xenon-emu/xcpu/ppcgo/ppc"
	"github.com/xenon-emu/xcpu/ppcgo/ppctest"
	"github.com/xenon-emu/xcpu/ppcgo/recompiler"
)

func newTestInterpreter(t testing.TB, cfg Config) *Interpreter {
	dec, err := decoder.New(NewRegistry(cfg), recompiler.NewRegistry())
	require.NoError(t, err)
	return New(dec, cfg)
}

// bufferLogger captures log output for assertions.
func bufferLogger() (log.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return log.NewLogger(log.LogfmtHandlerWithLevel(&buf, log.LevelTrace)), &buf
}

// withGPR sets register/value pairs.
func withGPR(pairs ...uint64) func(s *ppc.State) {
	return func(s *ppc.State) {
		for i := 0; i+1 < len(pairs); i += 2 {
			s.GPR[pairs[i]] = pairs[i+1]
		}
	}
}

type execCase struct {
	name string
	code []uint32
	// steps to run, len(code) when zero
	steps uint64
	setup func(s *ppc.State)
	check func(t *testing.T, s *ppc.State)
}

// runCases executes each case's code to completion on a fresh state.
func runCases(t *testing.T, cases []execCase) {
	it := newTestInterpreter(t, DefaultConfig())
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			s := ppctest.Program(tc.code...)
			if tc.setup != nil {
				tc.setup(s)
			}
			steps := tc.steps
			if steps == 0 {
				steps = uint64(len(tc.code))
			}
			n, err := it.Run(context.Background(), s, steps)
			require.NoError(t, err)
			require.Equal(t, steps, n)
			tc.check(t, s)
		})
	}
}

func expectPC(pc uint64) func(t *testing.T, s *ppc.State) {
	return func(t *testing.T, s *ppc.State) {
		require.Equal(t, pc, s.PC, "pc %#x", s.PC)
	}
}

// all runs every check.
func all(checks ...func(t *testing.T, s *ppc.State)) func(t *testing.T, s *ppc.State) {
	return func(t *testing.T, s *ppc.State) {
		for _, c := range checks {
			c(t, s)
		}
	}
}

// expectGPR checks register/value pairs.
func expectGPR(pairs ...uint64) func(t *testing.T, s *ppc.State) {
	return func(t *testing.T, s *ppc.State) {
		for i := 0; i+1 < len(pairs); i += 2 {
			require.Equal(t, pairs[i+1], s.GPR[pairs[i]], "r%d", pairs[i])
		}
	}
}
