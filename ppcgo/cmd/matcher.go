package cmd

import (
	"fmt"
	"strconv"

	"github.com/urfave/cli/v2"

	"github.com/xenon-emu/xcpu/ppcgo/ppc"
)

type StepMatcher func(st *ppc.State) bool

// StepMatcherFlag parses a step pattern: "never", "always", "=N" for step
// N exactly, "%N" for every N steps and "@ADDR" for the instruction at
// address ADDR.
type StepMatcherFlag struct {
	repr    string
	matcher StepMatcher
}

func MustStepMatcherFlag(pattern string) *StepMatcherFlag {
	out := new(StepMatcherFlag)
	if err := out.Set(pattern); err != nil {
		panic(err)
	}
	return out
}

func (m *StepMatcherFlag) Set(value string) error {
	m.repr = value
	if value == "" || value == "never" {
		m.matcher = func(st *ppc.State) bool {
			return false
		}
		return nil
	}
	if value == "always" {
		m.matcher = func(st *ppc.State) bool {
			return true
		}
		return nil
	}
	switch value[0] {
	case '=':
		step, err := strconv.ParseUint(value[1:], 0, 64)
		if err != nil {
			return fmt.Errorf("failed to parse step number: %w", err)
		}
		m.matcher = func(st *ppc.State) bool {
			return st.Step == step
		}
	case '%':
		steps, err := strconv.ParseUint(value[1:], 0, 64)
		if err != nil {
			return fmt.Errorf("failed to parse step interval number: %w", err)
		}
		if steps == 0 {
			return fmt.Errorf("step interval must not be zero")
		}
		m.matcher = func(st *ppc.State) bool {
			return st.Step%steps == 0
		}
	case '@':
		pc, err := strconv.ParseUint(value[1:], 0, 64)
		if err != nil {
			return fmt.Errorf("failed to parse address: %w", err)
		}
		m.matcher = func(st *ppc.State) bool {
			return st.PC == pc
		}
	default:
		return fmt.Errorf("unrecognized step matcher: %q", value)
	}
	return nil
}

func (m *StepMatcherFlag) String() string {
	return m.repr
}

func (m *StepMatcherFlag) Matcher() StepMatcher {
	if m.matcher == nil { // Set may not be called if the flag is omitted
		return func(st *ppc.State) bool {
			return false
		}
	}
	return m.matcher
}

func (m *StepMatcherFlag) Clone() any {
	var out StepMatcherFlag
	if err := out.Set(m.repr); err != nil {
		panic(fmt.Errorf("invalid repr: %w", err))
	}
	return &out
}

var _ cli.Generic = (*StepMatcherFlag)(nil)
