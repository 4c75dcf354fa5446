package cmd

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/xenon-emu/xcpu/ppcgo/interp"
	"github.com/xenon-emu/xcpu/ppcgo/recompiler"
)

const envVarPrefix = "PPCGO"

func prefixEnvVars(name string) []string {
	return []string{envVarPrefix + "_" + name}
}

var (
	LogLevelFlag = &cli.StringFlag{
		Name:    "log.level",
		Usage:   "Log level: trace, debug, info, warn, error or crit",
		EnvVars: prefixEnvVars("LOG_LEVEL"),
		Value:   "info",
	}

	LoadELFPathFlag = &cli.PathFlag{
		Name:      "path",
		Usage:     "Path to big-endian PowerPC ELF file",
		TakesFile: true,
		Required:  true,
	}
	LoadELFOutFlag = &cli.PathFlag{
		Name:      "out",
		Usage:     "Output path to JSON state, '-' for stdout",
		TakesFile: true,
		Value:     "state.json",
	}
	LoadELFMetaFlag = &cli.PathFlag{
		Name:      "meta",
		Usage:     "Write metadata file, for symbol lookup during program execution. None if empty.",
		TakesFile: true,
		Value:     "meta.json",
	}

	RunInputFlag = &cli.PathFlag{
		Name:      "input",
		Usage:     "Path of input JSON state",
		TakesFile: true,
		Value:     "state.json",
	}
	RunOutputFlag = &cli.PathFlag{
		Name:      "output",
		Usage:     "Path of output JSON state, '-' for stdout, none if empty",
		TakesFile: true,
		Value:     "out.json",
	}
	RunMetaFlag = &cli.PathFlag{
		Name:      "meta",
		Usage:     "Path to metadata file for symbol lookup for enhanced debugging info during execution.",
		TakesFile: true,
	}
	RunBackendFlag = &cli.StringFlag{
		Name:    "backend",
		Usage:   "Execution backend: interp or jit",
		EnvVars: prefixEnvVars("BACKEND"),
		Value:   "interp",
	}
	RunStepsFlag = &cli.Uint64Flag{
		Name:  "steps",
		Usage: "Maximum number of instructions to execute, 0 for no limit",
	}
	RunInfoAtFlag = &cli.GenericFlag{
		Name:  "info-at",
		Usage: "step pattern to print info at: " + patternHelp,
		Value: MustStepMatcherFlag("%100000"),
	}
	RunStopAtFlag = &cli.GenericFlag{
		Name:  "stop-at",
		Usage: "step pattern to stop at: " + patternHelp,
		Value: new(StepMatcherFlag),
	}
	RunSnapshotAtFlag = &cli.GenericFlag{
		Name:  "snapshot-at",
		Usage: "step pattern to output snapshots at: " + patternHelp,
		Value: new(StepMatcherFlag),
	}
	RunSnapshotFmtFlag = &cli.StringFlag{
		Name:  "snapshot-fmt",
		Usage: "format for snapshot output file names",
		Value: "state-%d.json",
	}
	RunOnInvalidFlag = &cli.StringFlag{
		Name:    "on-invalid",
		Usage:   "What to do on an invalid instruction: halt or skip",
		EnvVars: prefixEnvVars("ON_INVALID"),
		Value:   interp.PolicyHalt.String(),
	}
	RunOnUnimplementedFlag = &cli.StringFlag{
		Name:    "on-unimplemented",
		Usage:   "What to do on a known but unimplemented instruction: halt or skip",
		EnvVars: prefixEnvVars("ON_UNIMPLEMENTED"),
		Value:   interp.PolicyHalt.String(),
	}
	RunTraceFlag = &cli.BoolFlag{
		Name:    "trace",
		Usage:   "Log every executed instruction at trace level",
		EnvVars: prefixEnvVars("TRACE"),
	}
	RunMaxBlockFlag = &cli.IntFlag{
		Name:  "max-block",
		Usage: "Maximum instructions per compiled block of the jit backend",
		Value: recompiler.DefaultMaxBlockLen,
	}
	RunPProfCPUFlag = &cli.BoolFlag{
		Name:  "pprof.cpu",
		Usage: "enable pprof cpu profiling",
	}

	DecodeDumpFlag = &cli.BoolFlag{
		Name:  "dump",
		Usage: "Dump every instruction field of each word",
	}

	DisasmELFFlag = &cli.PathFlag{
		Name:      "elf",
		Usage:     "Path to big-endian PowerPC ELF file to disassemble",
		TakesFile: true,
	}
	DisasmStateFlag = &cli.PathFlag{
		Name:      "state",
		Usage:     "Path to JSON state to disassemble, used when no ELF is given",
		TakesFile: true,
	}
	DisasmStartFlag = &cli.StringFlag{
		Name:  "start",
		Usage: "First address to disassemble, defaults to the entry point or PC",
	}
	DisasmCountFlag = &cli.IntFlag{
		Name:  "count",
		Usage: "Number of instructions to disassemble",
		Value: 64,
	}
	DisasmOperandsFlag = &cli.BoolFlag{
		Name:  "operands",
		Usage: "Render operands in GNU syntax",
	}
	DisasmWorkersFlag = &cli.IntFlag{
		Name:    "workers",
		Usage:   "Number of concurrent decode workers",
		EnvVars: prefixEnvVars("WORKERS"),
		Value:   4,
	}

	TablesMnemonicsFlag = &cli.BoolFlag{
		Name:  "mnemonics",
		Usage: "List every mnemonic under its opcode group",
	}
)

var patternHelp = "'never' (default), 'always', '=123' at exactly step 123, '%123' for every 123 steps, '@0x82000000' at that PC"

func parsePolicy(ctx *cli.Context, f *cli.StringFlag) (interp.Policy, error) {
	p, err := interp.ParsePolicy(strings.ToLower(ctx.String(f.Name)))
	if err != nil {
		return 0, fmt.Errorf("flag --%s: %w", f.Name, err)
	}
	return p, nil
}
