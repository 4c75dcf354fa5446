package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pkg/profile"
	"github.com/urfave/cli/v2"

	"github.com/ethereum-optimism/optimism/op-service/jsonutil"

	"github.com/xenon-emu/xcpu/ppcgo/decoder"
	"github.com/xenon-emu/xcpu/ppcgo/interp"
	"github.com/xenon-emu/xcpu/ppcgo/ppc"
	"github.com/xenon-emu/xcpu/ppcgo/recompiler"
)

var OutFilePerm = os.FileMode(0o755)

// StepFn advances the state by at least one instruction and at most max
// (0 for no bound), returning the number retired.
type StepFn func(st *ppc.State, max uint64) (uint64, error)

// NewStepFn builds the stepping function of a backend. The interpreter
// advances one instruction at a time, the jit one compiled block at a time.
func NewStepFn(backend string, dec *decoder.Decoder, cfg interp.Config, maxBlock int, l log.Logger) (StepFn, error) {
	switch backend {
	case "interp":
		it := interp.New(dec, cfg)
		return func(st *ppc.State, max uint64) (uint64, error) {
			if err := it.Step(st); err != nil {
				return 0, err
			}
			return 1, nil
		}, nil
	case "jit":
		c := recompiler.New(dec, recompiler.Config{MaxBlockLen: maxBlock, Log: l})
		return func(st *ppc.State, max uint64) (uint64, error) {
			n, err := c.RunBlock(st, max)
			return uint64(n), err
		}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q, expected interp or jit", backend)
	}
}

func loadMetadata(l log.Logger, metaPath string) (*Metadata, error) {
	if metaPath == "" {
		l.Info("no metadata file specified, defaulting to empty metadata")
		return &Metadata{Symbols: nil}, nil // provide empty metadata by default
	}
	m, err := jsonutil.LoadJSON[Metadata](metaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load metadata: %w", err)
	}
	return m, nil
}

func Run(ctx *cli.Context) error {
	if ctx.Bool(RunPProfCPUFlag.Name) {
		defer profile.Start(profile.NoShutdownHook, profile.ProfilePath("."), profile.CPUProfile).Stop()
	}

	lvl, err := ParseLevel(ctx.String(LogLevelFlag.Name))
	if err != nil {
		return err
	}
	l := Logger(ctx.App.ErrWriter, lvl)
	outLog := &LoggingWriter{Name: "program std-out", Log: l}
	errLog := &LoggingWriter{Name: "program std-err", Log: l}

	state, err := jsonutil.LoadJSON[ppc.State](ctx.Path(RunInputFlag.Name))
	if err != nil {
		return err
	}
	if state.Memory == nil {
		state.Memory = ppc.NewMemory()
	}

	onInvalid, err := parsePolicy(ctx, RunOnInvalidFlag)
	if err != nil {
		return err
	}
	onUnimplemented, err := parsePolicy(ctx, RunOnUnimplementedFlag)
	if err != nil {
		return err
	}
	meta, err := loadMetadata(l, ctx.Path(RunMetaFlag.Name))
	if err != nil {
		return err
	}

	sys := &Syscalls{Stdout: outLog, Stderr: errLog}
	cfg := interp.Config{
		OnInvalid:       onInvalid,
		OnUnimplemented: onUnimplemented,
		Syscall:         sys.Handle,
		Trace:           ctx.Bool(RunTraceFlag.Name),
		Log:             l,
	}
	dec, err := decoder.New(interp.NewRegistry(cfg), recompiler.NewRegistry())
	if err != nil {
		return fmt.Errorf("failed to build decoder: %w", err)
	}
	stepFn, err := NewStepFn(ctx.String(RunBackendFlag.Name), dec, cfg, ctx.Int(RunMaxBlockFlag.Name), l)
	if err != nil {
		return err
	}

	stopAt := ctx.Generic(RunStopAtFlag.Name).(*StepMatcherFlag).Matcher()
	snapshotAt := ctx.Generic(RunSnapshotAtFlag.Name).(*StepMatcherFlag).Matcher()
	infoAt := ctx.Generic(RunInfoAtFlag.Name).(*StepMatcherFlag).Matcher()
	snapshotFmt := ctx.String(RunSnapshotFmtFlag.Name)
	maxSteps := ctx.Uint64(RunStepsFlag.Name)

	start := time.Now()
	startStep := state.Step

	for i := 0; !state.Halted; i++ {
		if i%100 == 0 { // don't do the ctx err check (includes lock) too often
			if err := ctx.Context.Err(); err != nil {
				return err
			}
		}

		step := state.Step

		if infoAt(state) {
			delta := time.Since(start)
			l.Info("processing",
				"step", step,
				"pc", HexU64(state.PC),
				"insn", HexU32(state.Fetch()),
				"name", dec.DecodeName(uint32(state.Fetch())),
				"ips", float64(step-startStep)/(float64(delta)/float64(time.Second)),
				"pages", state.Memory.PageCount(),
				"mem", state.Memory.Usage(),
				"symbol", meta.LookupSymbol(state.PC),
			)
		}

		if stopAt(state) {
			break
		}

		if snapshotAt(state) {
			if err := jsonutil.WriteJSON(fmt.Sprintf(snapshotFmt, step), state, OutFilePerm); err != nil {
				return fmt.Errorf("failed to write state snapshot: %w", err)
			}
		}

		var budget uint64
		if maxSteps != 0 {
			done := step - startStep
			if done >= maxSteps {
				break
			}
			budget = maxSteps - done
		}
		if _, err := stepFn(state, budget); err != nil {
			return fmt.Errorf("failed at step %d (PC: %016x): %w", state.Step, state.PC, err)
		}
	}

	l.Info("execution finished",
		"steps", state.Step-startStep,
		"halted", state.Halted,
		"exit", state.GPR[3],
		"pc", HexU64(state.PC),
		"elapsed", time.Since(start),
	)
	if err := jsonutil.WriteJSON(ctx.Path(RunOutputFlag.Name), state, OutFilePerm); err != nil {
		return fmt.Errorf("failed to write state output: %w", err)
	}
	return nil
}

var RunCommand = &cli.Command{
	Name:        "run",
	Usage:       "Run PowerPC instructions from a JSON state",
	Description: "Run PowerPC instructions from a JSON state with the interpreter or the block recompiler. With the jit backend, step patterns are checked at block boundaries.",
	Action:      Run,
	Flags: []cli.Flag{
		RunInputFlag,
		RunOutputFlag,
		RunMetaFlag,
		RunBackendFlag,
		RunStepsFlag,
		RunInfoAtFlag,
		RunStopAtFlag,
		RunSnapshotAtFlag,
		RunSnapshotFmtFlag,
		RunOnInvalidFlag,
		RunOnUnimplementedFlag,
		RunTraceFlag,
		RunMaxBlockFlag,
		RunPProfCPUFlag,
		LogLevelFlag,
	},
}
