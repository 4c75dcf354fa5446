package cmd

import (
	"debug/elf"
	"fmt"

	"github.com/ethereum-optimism/optimism/op-service/jsonutil"
	"github.com/urfave/cli/v2"

	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

func LoadELF(ctx *cli.Context) error {
	elfPath := ctx.Path(LoadELFPathFlag.Name)
	elfProgram, err := elf.Open(elfPath)
	if err != nil {
		return fmt.Errorf("failed to open ELF file %q: %w", elfPath, err)
	}
	defer elfProgram.Close()
	state, err := ppc.LoadELF(elfProgram)
	if err != nil {
		return fmt.Errorf("failed to load ELF data into VM state: %w", err)
	}
	if metaPath := ctx.Path(LoadELFMetaFlag.Name); metaPath != "" {
		meta, err := MakeMetadata(elfProgram)
		if err != nil {
			return fmt.Errorf("failed to compute program metadata: %w", err)
		}
		if err := jsonutil.WriteJSON[*Metadata](metaPath, meta, OutFilePerm); err != nil {
			return fmt.Errorf("failed to output metadata: %w", err)
		}
	}
	return jsonutil.WriteJSON[*ppc.State](ctx.Path(LoadELFOutFlag.Name), state, OutFilePerm)
}

var LoadELFCommand = &cli.Command{
	Name:        "load-elf",
	Usage:       "Load ELF file into ppcgo JSON state",
	Description: "Load a big-endian PowerPC ELF file into ppcgo JSON state, and write its symbols as metadata",
	Action:      LoadELF,
	Flags: []cli.Flag{
		LoadELFPathFlag,
		LoadELFOutFlag,
		LoadELFMetaFlag,
	},
}
