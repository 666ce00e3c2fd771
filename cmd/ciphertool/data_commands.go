package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	cipher "github.com/go-i2p/go-cipher"
)

func getDataCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "encrypt",
			Usage: "Encrypt a file or stdin with a catalog algorithm",
			Flags: transformFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := commandConfig(cmd)
				return runTransform(cfg, cmd, cipher.CIPHER_MODE_ENCRYPT)
			},
		},
		{
			Name:  "decrypt",
			Usage: "Decrypt a file or stdin with a catalog algorithm",
			Flags: transformFlags(),
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := commandConfig(cmd)
				return runTransform(cfg, cmd, cipher.CIPHER_MODE_DECRYPT)
			},
		},
	}
}

func transformFlags() []cli.Flag {
	return []cli.Flag{
		algorithmFlag(),
		&cli.StringFlag{
			Name:     "key",
			Aliases:  []string{"k"},
			Required: true,
			Usage:    "Key material as hex",
		},
		&cli.StringFlag{
			Name:  "iv",
			Usage: "IV or nonce as hex (a zero IV is used when omitted)",
		},
		&cli.StringFlag{
			Name:  "aad",
			Usage: "Additional authenticated data as hex (AEAD algorithms only)",
		},
		&cli.StringFlag{
			Name:    "in",
			Aliases: []string{"i"},
			Value:   "-",
			Usage:   "Input path, '-' for stdin",
		},
		&cli.StringFlag{
			Name:    "out",
			Aliases: []string{"o"},
			Value:   "-",
			Usage:   "Output path, '-' for stdout",
		},
	}
}

// runTransform drives one whole-buffer encrypt or decrypt. AEAD algorithms
// carry the authentication tag appended to the ciphertext, so their
// encrypted output is STREAM_TAG_SIZE bytes longer than the plaintext.
func runTransform(cfg *Config, cmd *cli.Command, mode cipher.CipherMode) error {
	algorithm := resolveAlgorithm(cfg, cmd)

	key, err := decodeHexFlag(cmd, "key")
	if err != nil {
		return err
	}
	iv, err := decodeHexFlag(cmd, "iv")
	if err != nil {
		return err
	}
	aad, err := decodeHexFlag(cmd, "aad")
	if err != nil {
		return err
	}

	input, err := readInput(cmd.String("in"))
	if err != nil {
		return err
	}

	c := cipher.NewCipher()
	if err := c.Init(algorithm, mode); err != nil {
		return err
	}
	defer func() { _ = c.Close() }()

	if err := c.SetKeyBytes(key); err != nil {
		return err
	}
	if len(iv) > 0 {
		if err := c.SetIV(iv); err != nil {
			return err
		}
	}

	var output []byte
	if c.IsAEAD() {
		output, err = transformAEAD(c, mode, input, aad)
	} else {
		output, err = transform(c, mode, input)
	}
	if err != nil {
		return err
	}

	return writeOutput(cmd.String("out"), output)
}

func transform(c *cipher.Cipher, mode cipher.CipherMode, input []byte) ([]byte, error) {
	buf := make([]byte, len(input)+c.BlockSize())

	var n int
	var err error
	if mode == cipher.CIPHER_MODE_ENCRYPT {
		n, err = c.Encrypt(input, buf)
	} else {
		n, err = c.Decrypt(input, buf)
	}
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func transformAEAD(c *cipher.Cipher, mode cipher.CipherMode, input, aad []byte) ([]byte, error) {
	if mode == cipher.CIPHER_MODE_ENCRYPT {
		buf := make([]byte, len(input)+c.BlockSize())
		tag := make([]byte, cipher.STREAM_TAG_SIZE)
		n, err := c.EncryptAEAD(input, buf, aad, tag)
		if err != nil {
			return nil, err
		}
		return append(buf[:n], tag...), nil
	}

	if len(input) < cipher.STREAM_TAG_SIZE {
		return nil, fmt.Errorf("ciphertext is shorter than the %d-byte authentication tag", cipher.STREAM_TAG_SIZE)
	}
	body := input[:len(input)-cipher.STREAM_TAG_SIZE]
	tag := input[len(input)-cipher.STREAM_TAG_SIZE:]

	buf := make([]byte, len(body)+c.BlockSize())
	n, err := c.DecryptAEAD(body, buf, aad, tag)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}
