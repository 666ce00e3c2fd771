package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	cipher "github.com/go-i2p/go-cipher"
)

func getKeyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "keygen",
			Usage: "Generate a random key sized for an algorithm",
			Flags: []cli.Flag{algorithmFlag(), encodingFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := commandConfig(cmd)
				return runKeygen(resolveAlgorithm(cfg, cmd), resolveEncoding(cfg, cmd), os.Stdout)
			},
		},
		{
			Name:  "ivgen",
			Usage: "Generate a random IV or nonce sized for an algorithm",
			Flags: []cli.Flag{algorithmFlag(), encodingFlag()},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := commandConfig(cmd)
				return runIVGen(resolveAlgorithm(cfg, cmd), resolveEncoding(cfg, cmd), os.Stdout)
			},
		},
		{
			Name:  "derive-key",
			Usage: "Derive a deterministic key from a passphrase with PBKDF2-SHA256",
			Flags: []cli.Flag{
				algorithmFlag(),
				encodingFlag(),
				&cli.StringFlag{
					Name:     "passphrase",
					Aliases:  []string{"p"},
					Required: true,
					Usage:    "Source passphrase",
				},
				&cli.StringFlag{
					Name:    "salt",
					Aliases: []string{"s"},
					Usage:   "Salt as hex",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := commandConfig(cmd)
				salt, err := decodeHexFlag(cmd, "salt")
				if err != nil {
					return err
				}
				return runDeriveKey(
					resolveAlgorithm(cfg, cmd),
					resolveEncoding(cfg, cmd),
					cmd.String("passphrase"),
					salt,
					os.Stdout,
				)
			},
		},
	}
}

// runKeygen generates a random key for algorithm and prints it encoded.
func runKeygen(algorithm, encoding string, w io.Writer) error {
	key, err := cipher.GenerateKey(algorithm)
	if err != nil {
		return err
	}

	encoded, err := encodeBytes(encoding, key)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, encoded)
	return nil
}

// runIVGen generates a random IV for algorithm and prints it encoded.
// Algorithms without an IV print an empty line.
func runIVGen(algorithm, encoding string, w io.Writer) error {
	iv, err := cipher.GenerateIV(algorithm)
	if err != nil {
		return err
	}

	encoded, err := encodeBytes(encoding, iv)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, encoded)
	return nil
}

// runDeriveKey derives a key from passphrase and salt and prints it encoded.
func runDeriveKey(algorithm, encoding, passphrase string, salt []byte, w io.Writer) error {
	key, err := cipher.DeriveKey(algorithm, []byte(passphrase), salt)
	if err != nil {
		return err
	}

	encoded, err := encodeBytes(encoding, key)
	if err != nil {
		return err
	}

	fmt.Fprintln(w, encoded)
	return nil
}
