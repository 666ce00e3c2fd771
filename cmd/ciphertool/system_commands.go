package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	cipher "github.com/go-i2p/go-cipher"
)

func getSystemCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "version",
			Usage: "Print the library version",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:  "at-least",
					Usage: "Fail when the library is older than this version",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				commandConfig(cmd)
				return runVersion(cmd.String("at-least"), os.Stdout)
			},
		},
	}
}

// runVersion prints the library version and optionally enforces a minimum.
func runVersion(atLeast string, w io.Writer) error {
	v := cipher.LibVersion()
	fmt.Fprintln(w, v.String())

	if atLeast != "" {
		if v.Compare(cipher.ParseVersion(atLeast)) < 0 {
			return fmt.Errorf("library version %s is older than required %s", v.String(), atLeast)
		}
	}
	return nil
}
