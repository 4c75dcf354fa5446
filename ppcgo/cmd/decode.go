package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/xenon-emu/xcpu/ppcgo/decoder"
	"github.com/xenon-emu/xcpu/ppcgo/interp"
	"github.com/xenon-emu/xcpu/ppcgo/ppc"
	"github.com/xenon-emu/xcpu/ppcgo/recompiler"
)

// Fields is the field breakdown printed by decode --dump.
type Fields struct {
	Word     HexU32
	Mnemonic string
	Index    HexU32
	Branch   bool
	Primary  uint32
	Ext      uint32
	RD       uint32
	RA       uint32
	RB       uint32
	SIMM     int64
	UIMM     uint64
	Rc       bool
	VD128    uint32
	VA128    uint32
	VB128    uint32
}

func InstrFields(dec *decoder.Decoder, w uint32) Fields {
	i := ppc.Instr(w)
	idx := decoder.IndexOf(w)
	return Fields{
		Word:     HexU32(w),
		Mnemonic: dec.DecodeName(w),
		Index:    HexU32(idx),
		Branch:   dec.IsBranch(w),
		Primary:  i.Primary(),
		Ext:      idx.Ext(),
		RD:       i.RD(),
		RA:       i.RA(),
		RB:       i.RB(),
		SIMM:     i.SIMM(),
		UIMM:     i.UIMM(),
		Rc:       i.Rc(),
		VD128:    i.VD128(),
		VA128:    i.VA128(),
		VB128:    i.VB128(),
	}
}

// NewDecoder builds the decode tables with the interpreter and recompiler
// handlers, logging sentinel hits to l.
func NewDecoder(l log.Logger) (*decoder.Decoder, error) {
	cfg := interp.DefaultConfig()
	cfg.Log = l
	return decoder.New(interp.NewRegistry(cfg), recompiler.NewRegistry())
}

// ParseWord parses an instruction word in hex, with or without 0x prefix.
func ParseWord(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid instruction word %q: %w", s, err)
	}
	return uint32(v), nil
}

func Decode(ctx *cli.Context) error {
	if ctx.NArg() == 0 {
		return fmt.Errorf("expected at least one instruction word")
	}
	dec, err := NewDecoder(log.Root())
	if err != nil {
		return err
	}
	out := ctx.App.Writer
	for _, arg := range ctx.Args().Slice() {
		w, err := ParseWord(arg)
		if err != nil {
			return err
		}
		f := InstrFields(dec, w)
		if ctx.Bool(DecodeDumpFlag.Name) {
			spew.Fdump(out, f)
			continue
		}
		fmt.Fprintf(out, "%s  %-12s index=%05x branch=%t\n", f.Word, f.Mnemonic, uint32(f.Index), f.Branch)
	}
	return nil
}

var DecodeCommand = &cli.Command{
	Name:        "decode",
	Usage:       "Decode instruction words",
	Description: "Decode hex instruction words to their mnemonic, decode index and branch class",
	ArgsUsage:   "<word> [<word> ...]",
	Action:      Decode,
	Flags: []cli.Flag{
		DecodeDumpFlag,
	},
}
