package cmd

import (
	"fmt"
	"sort"

	"github.com/urfave/cli/v2"
	"github.com/xlab/treeprint"

	"github.com/xenon-emu/xcpu/ppcgo/decoder"
	"github.com/xenon-emu/xcpu/ppcgo/interp"
	"github.com/xenon-emu/xcpu/ppcgo/recompiler"
)

// GroupCoverage counts the mnemonics of one opcode group and how many of
// them have an interpreter handler and a native recompiler handler.
type GroupCoverage struct {
	Group     decoder.Group
	Mnemonics []string
	Interp    int
	Native    int
}

func Coverage(gs []decoder.Group, it *interp.Registry, jit *recompiler.Registry) []GroupCoverage {
	out := make([]GroupCoverage, 0, len(gs))
	for _, g := range gs {
		seen := make(map[string]struct{})
		for _, p := range g.Patterns {
			seen[p.Plain] = struct{}{}
			seen[p.Rc] = struct{}{}
		}
		c := GroupCoverage{Group: g}
		for m := range seen {
			c.Mnemonics = append(c.Mnemonics, m)
			if _, ok := it.Lookup(m); ok {
				c.Interp++
			}
			if _, ok := jit.Lookup(m); ok {
				c.Native++
			}
		}
		sort.Strings(c.Mnemonics)
		out = append(out, c)
	}
	return out
}

// CoverageTree renders coverage as a tree, one branch per opcode group.
func CoverageTree(dec *decoder.Decoder, cov []GroupCoverage, it *interp.Registry, jit *recompiler.Registry, mnemonics bool) treeprint.Tree {
	filled := 0
	dec.NameTable().Range(func(idx decoder.Index, name string) bool {
		if name != decoder.InvalidName {
			filled++
		}
		return true
	})
	tree := treeprint.New()
	tree.SetValue(fmt.Sprintf("decode tables: %d/%d indices decoded", filled, decoder.TableSize))
	for _, c := range cov {
		l := c.Group.Layout
		b := tree.AddMetaBranch(l.String(), fmt.Sprintf("%s: %d patterns, %d mnemonics, interp %d, native %d (count=%d sh=%d)",
			c.Group.Name, len(c.Group.Patterns), len(c.Mnemonics), c.Interp, c.Native, l.Count, l.Sh))
		if !mnemonics {
			continue
		}
		for _, m := range c.Mnemonics {
			_, interpreted := it.Lookup(m)
			_, native := jit.Lookup(m)
			switch {
			case native:
				b.AddMetaNode("native", m)
			case interpreted:
				b.AddMetaNode("interp", m)
			default:
				b.AddMetaNode("unimplemented", m)
			}
		}
	}
	return tree
}

// TablesTree builds the decode tables from gs and renders their coverage.
// Building the tables is what validates gs.
func TablesTree(gs []decoder.Group, mnemonics bool) (treeprint.Tree, error) {
	it := interp.NewRegistry(interp.DefaultConfig())
	jit := recompiler.NewRegistry()
	dec, err := decoder.New(it, jit, decoder.WithGroups(gs))
	if err != nil {
		return nil, err
	}
	return CoverageTree(dec, Coverage(dec.Groups(), it, jit), it, jit, mnemonics), nil
}

func Tables(ctx *cli.Context) error {
	tree, err := TablesTree(decoder.Groups(), ctx.Bool(TablesMnemonicsFlag.Name))
	if err != nil {
		return err
	}
	_, err = fmt.Fprint(ctx.App.Writer, tree.String())
	return err
}

var TablesCommand = &cli.Command{
	Name:        "tables",
	Usage:       "Validate the opcode specification and print decode coverage",
	Description: "Validate the opcode specification for overlaps and print, per opcode group, how many mnemonics the interpreter and the recompiler implement",
	Action:      Tables,
	Flags: []cli.Flag{
		TablesMnemonicsFlag,
	},
}
