package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/xenon-emu/xcpu/ppcgo/cmd"
)

func main() {
	app := cli.NewApp()
	app.Name = "ppcgo"
	app.Usage = "Xenon PowerPC decode and execution tool"
	app.Description = "Decode, disassemble and run 64-bit PowerPC code with VMX128 extensions"
	app.Commands = []*cli.Command{
		cmd.DecodeCommand,
		cmd.DisasmCommand,
		cmd.TablesCommand,
		cmd.LoadELFCommand,
		cmd.RunCommand,
	}
	ctx, cancel := context.WithCancel(context.Background())

	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		for {
			<-c
			cancel()
			fmt.Println("\r\nExiting...")
		}
	}()

	err := app.RunContext(ctx, os.Args)
	if err != nil {
		if errors.Is(err, ctx.Err()) {
			_, _ = fmt.Fprintf(os.Stderr, "command interrupted")
			os.Exit(130)
		} else {
			_, _ = fmt.Fprintf(os.Stderr, "error: %v", err)
			os.Exit(1)
		}
	}
}
