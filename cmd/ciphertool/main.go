// Package main provides the ciphertool command line interface: catalog
// discovery, key material generation and file encryption on top of the
// go-cipher library.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	cipher "github.com/go-i2p/go-cipher"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "ciphertool: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cipher.InitGlobalAlgorithms()
	defer cipher.CleanupGlobalAlgorithms()

	cmd := &cli.Command{
		Name:    "ciphertool",
		Usage:   "Inspect and exercise the unified symmetric cipher catalog",
		Version: cipher.CIPHER_LIB_VERSION,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a key=value; configuration file",
			},
		},
		Commands: getCommands(),
	}

	return cmd.Run(context.Background(), os.Args)
}
