package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ethereum-optimism/optimism/op-service/jsonutil"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/xenon-emu/xcpu/ppcgo/decoder"
	"github.com/xenon-emu/xcpu/ppcgo/ppc"
	. "github.com/xenon-emu/xcpu/ppcgo/ppctest"
)

// helloProgram writes "hello\n" to stdout and exits with code 7.
var helloProgram = func() []byte {
	code := Words(
		Li(3, 1),
		Addis(4, 0, 1),
		Addi(4, 4, 40), // message follows the 10 code words
		Li(5, 6),
		Li(0, SysWrite),
		Sc(),
		Li(0, SysExit),
		Li(3, 7),
		Sc(),
		Nop(),
	)
	return append(code, "hello\n"...)
}()

// runApp runs the CLI with args and returns its stdout and stderr.
func runApp(t *testing.T, args ...string) (string, string, error) {
	var out, errOut bytes.Buffer
	app := cli.NewApp()
	app.Name = "ppcgo"
	app.Writer = &out
	app.ErrWriter = &errOut
	app.Commands = []*cli.Command{
		DecodeCommand,
		DisasmCommand,
		TablesCommand,
		LoadELFCommand,
		RunCommand,
	}
	err := app.RunContext(context.Background(), append([]string{"ppcgo"}, args...))
	return out.String(), errOut.String(), err
}

// writeELF writes helloProgram as an ELF and converts it to a JSON state.
func writeELF(t *testing.T) (dir, elfPath, statePath, metaPath string) {
	dir = t.TempDir()
	elfPath = filepath.Join(dir, "hello.elf")
	require.NoError(t, os.WriteFile(elfPath, ELF(ProgramBase, helloProgram), 0644))
	statePath = filepath.Join(dir, "state.json")
	metaPath = filepath.Join(dir, "meta.json")
	_, _, err := runApp(t, "load-elf", "--path", elfPath, "--out", statePath, "--meta", metaPath)
	require.NoError(t, err)
	return
}

// runState runs the run command on a state file, with step patterns reset
// since flag values are shared between app runs.
func runState(t *testing.T, statePath string, args ...string) (*ppc.State, string, error) {
	outPath := filepath.Join(filepath.Dir(statePath), "out.json")
	base := []string{"run", "--input", statePath, "--output", outPath,
		"--stop-at", "never", "--snapshot-at", "never", "--info-at", "never"}
	_, errOut, err := runApp(t, append(base, args...)...)
	if err != nil {
		return nil, errOut, err
	}
	state, err := jsonutil.LoadJSON[ppc.State](outPath)
	require.NoError(t, err)
	return state, errOut, nil
}

func TestLoadELFCommand(t *testing.T) {
	_, _, statePath, metaPath := writeELF(t)
	state, err := jsonutil.LoadJSON[ppc.State](statePath)
	require.NoError(t, err)
	require.Equal(t, uint64(ProgramBase), state.PC)
	require.Equal(t, uint64(1)<<63, state.MSR)
	require.Equal(t, Li(3, 1), state.Memory.Read32(ProgramBase))

	meta, err := jsonutil.LoadJSON[Metadata](metaPath)
	require.NoError(t, err)
	require.Empty(t, meta.Symbols)

	_, _, err = runApp(t, "load-elf", "--path", filepath.Join(t.TempDir(), "missing.elf"))
	require.ErrorContains(t, err, "failed to open ELF file")
}

func TestRunCommand(t *testing.T) {
	for _, backend := range []string{"interp", "jit"} {
		t.Run(backend, func(t *testing.T) {
			_, _, statePath, metaPath := writeELF(t)
			state, logs, err := runState(t, statePath, "--backend", backend, "--meta", metaPath)
			require.NoError(t, err)
			require.True(t, state.Halted)
			require.Equal(t, uint64(7), state.GPR[3])
			require.Equal(t, uint64(9), state.Step)
			require.Contains(t, logs, "hello")
			require.Contains(t, logs, "execution finished")
		})
	}

	t.Run("step budget", func(t *testing.T) {
		_, _, statePath, _ := writeELF(t)
		state, _, err := runState(t, statePath, "--steps", "3", "--backend", "jit")
		require.NoError(t, err)
		require.False(t, state.Halted)
		require.Equal(t, uint64(3), state.Step)
		require.Equal(t, uint64(ProgramBase+12), state.PC)
	})

	t.Run("stop at address", func(t *testing.T) {
		_, _, statePath, _ := writeELF(t)
		state, _, err := runState(t, statePath, "--stop-at", "@0x10014")
		require.NoError(t, err)
		require.False(t, state.Halted)
		require.Equal(t, uint64(0x10014), state.PC)
		require.Equal(t, uint64(ProgramBase+40), state.GPR[4])
	})

	t.Run("snapshots", func(t *testing.T) {
		dir, _, statePath, _ := writeELF(t)
		snapFmt := filepath.Join(dir, "snap-%d.json")
		_, _, err := runState(t, statePath, "--snapshot-at", "=2", "--snapshot-fmt", snapFmt)
		require.NoError(t, err)
		snap, err := jsonutil.LoadJSON[ppc.State](filepath.Join(dir, "snap-2.json"))
		require.NoError(t, err)
		require.Equal(t, uint64(2), snap.Step)
		require.Equal(t, uint64(0x10000), snap.GPR[4])
	})

	t.Run("info and trace logging", func(t *testing.T) {
		_, _, statePath, _ := writeELF(t)
		_, logs, err := runState(t, statePath, "--info-at", "=0", "--trace", "--log.level", "trace")
		require.NoError(t, err)
		require.Contains(t, logs, "processing")
		require.Contains(t, logs, "name=addi")
		require.Contains(t, logs, "symbol=!unknown")
	})

	t.Run("unknown backend", func(t *testing.T) {
		_, _, statePath, _ := writeELF(t)
		_, _, err := runState(t, statePath, "--backend", "qemu")
		require.ErrorContains(t, err, `unknown backend "qemu"`)
	})

	t.Run("bad policy", func(t *testing.T) {
		_, _, statePath, _ := writeELF(t)
		_, _, err := runState(t, statePath, "--on-invalid", "ignore")
		require.ErrorContains(t, err, "--on-invalid")
	})

	t.Run("invalid instruction halts", func(t *testing.T) {
		dir := t.TempDir()
		statePath := filepath.Join(dir, "state.json")
		require.NoError(t, jsonutil.WriteJSON(statePath, Program(Li(3, 1), 0), OutFilePerm))
		_, _, err := runState(t, statePath)
		require.ErrorContains(t, err, "failed at step 1")
		require.ErrorContains(t, err, "invalid instruction")
	})

	t.Run("invalid instruction skipped", func(t *testing.T) {
		dir := t.TempDir()
		statePath := filepath.Join(dir, "state.json")
		require.NoError(t, jsonutil.WriteJSON(statePath, Program(Li(3, 1), 0, Li(0, SysExit), Sc()), OutFilePerm))
		state, logs, err := runState(t, statePath, "--on-invalid", "skip")
		require.NoError(t, err)
		require.True(t, state.Halted)
		require.Contains(t, logs, "policy=skip")
	})
}

func TestDecodeCommand(t *testing.T) {
	out, _, err := runApp(t, "decode", "7c000214", "0x7C000215", "48000001", "60000000")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	require.True(t, strings.HasPrefix(lines[0], "7c000214  add "), lines[0])
	require.True(t, strings.HasPrefix(lines[1], "7c000215  add. "), lines[1])
	require.Contains(t, lines[2], "bl")
	require.Contains(t, lines[2], "branch=true")
	require.Contains(t, lines[3], "ori")
	require.Contains(t, lines[3], "branch=false")

	out, _, err = runApp(t, "decode", "--dump", "38640010")
	require.NoError(t, err)
	require.Contains(t, out, `Mnemonic: (string) (len=4) "addi"`)
	require.Contains(t, out, "SIMM: (int64) 16")

	_, _, err = runApp(t, "decode", "xyz")
	require.ErrorContains(t, err, "invalid instruction word")
	_, _, err = runApp(t, "decode")
	require.ErrorContains(t, err, "at least one instruction word")
}

func TestDisasmCommand(t *testing.T) {
	_, elfPath, statePath, _ := writeELF(t)

	out, _, err := runApp(t, "disasm", "--elf", elfPath, "--count", "10", "--workers", "3", "--operands")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 10)
	require.True(t, strings.HasPrefix(lines[0], "0000000000010000: 38600001  addi"), lines[0])
	require.True(t, strings.HasPrefix(lines[5], "0000000000010014: 44000002  sc"), lines[5])

	out, _, err = runApp(t, "disasm", "--state", statePath, "--start", "0x10018", "--count", "2", "--workers", "1")
	require.NoError(t, err)
	lines = strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[0], "0000000000010018: 38000000  addi"), lines[0])

	_, _, err = runApp(t, "disasm")
	require.ErrorContains(t, err, "is required")
}

func TestDisassembleConcurrently(t *testing.T) {
	dec, err := NewDecoder(Logger(new(bytes.Buffer), 0))
	require.NoError(t, err)
	words := make([]uint32, 1000)
	for i := range words {
		words[i] = uint32(i) * 0x9E3779B1
	}
	serial, err := Disassemble(context.Background(), dec, 0x8200_0000, words, 1, false)
	require.NoError(t, err)
	parallel, err := Disassemble(context.Background(), dec, 0x8200_0000, words, 8, false)
	require.NoError(t, err)
	require.Equal(t, serial, parallel)
	for i, line := range serial {
		require.Equal(t, dec.DecodeName(words[i]), line.Mnemonic)
		require.Equal(t, uint64(0x8200_0000+4*i), line.Addr)
	}

	_, err = Disassemble(context.Background(), dec, 0, words, 0, false)
	require.ErrorContains(t, err, "at least one worker")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Disassemble(ctx, dec, 0, words, 2, false)
	require.ErrorIs(t, err, context.Canceled)
}

func TestGNUOperands(t *testing.T) {
	require.NotEmpty(t, GNUOperands(0x7C632214, 0))
	require.Contains(t, GNUOperands(0x7C632214, 0), "add")
}

func TestTablesCommand(t *testing.T) {
	out, _, err := runApp(t, "tables")
	require.NoError(t, err)
	require.Contains(t, out, "decode tables:")
	require.Contains(t, out, "[primary]")
	require.Contains(t, out, "vmx128a:")
	require.NotContains(t, out, "[native]")

	out, _, err = runApp(t, "tables", "--mnemonics")
	require.NoError(t, err)
	require.Contains(t, out, "[native]  addi")
	require.Contains(t, out, "[interp]  lwz")
	require.Contains(t, out, "[unimplemented]  vaddubm")
}

func TestTablesRejectsOverlap(t *testing.T) {
	gs := append(decoder.Groups(), decoder.Group{
		Name:     "clash",
		Layout:   decoder.Layout{Primary: 0x1F, Count: 10, Sh: 1},
		Patterns: []decoder.Pattern[string]{decoder.P(0x10A, "plus", "plus.")},
	})
	_, err := TablesTree(gs, false)
	require.ErrorIs(t, err, decoder.ErrOverlap)
	require.ErrorContains(t, err, "invalid opcode specification")

	tree, err := TablesTree(decoder.Groups(), true)
	require.NoError(t, err)
	require.Contains(t, tree.String(), "[native]  icbi")
}
