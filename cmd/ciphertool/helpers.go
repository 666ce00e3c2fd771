package main

import (
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	cipher "github.com/go-i2p/go-cipher"
)

func algorithmFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "algorithm",
		Aliases: []string{"a"},
		Usage:   "Catalog algorithm name (defaults to CIPHERTOOL_ALGORITHM)",
	}
}

func encodingFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "encoding",
		Aliases: []string{"e"},
		Usage:   "Output encoding: 'hex' or 'base64' (defaults to CIPHERTOOL_ENCODING)",
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

// resolveAlgorithm picks the --algorithm flag when given. The configured
// default may be a delimiter-separated preference list; the first name with
// a live backend wins, so one configuration can serve builds with different
// provider sets.
func resolveAlgorithm(cfg *Config, cmd *cli.Command) string {
	if algorithm := cmd.String("algorithm"); algorithm != "" {
		return algorithm
	}
	return firstAvailable(cfg.Algorithm)
}

// firstAvailable probes each name in the preference list and returns the
// first one a session can initialize. When none is available the first
// entry is returned unchanged so downstream errors name something the
// caller actually configured.
func firstAvailable(list string) string {
	names := cipher.SplitCipherNames(list)
	for _, name := range names {
		probe := cipher.NewCipher()
		if err := probe.Init(name, 0); err == nil {
			probe.Close()
			return name
		}
	}

	if len(names) > 0 {
		return names[0]
	}
	return list
}

// resolveEncoding picks the --encoding flag when given, the configured
// default otherwise.
func resolveEncoding(cfg *Config, cmd *cli.Command) string {
	if encoding := cmd.String("encoding"); encoding != "" {
		return encoding
	}
	return cfg.Encoding
}

// encodeBytes renders binary material in the requested encoding.
// Returns an error if the encoding name is invalid.
func encodeBytes(encoding string, data []byte) (string, error) {
	switch encoding {
	case "hex":
		return hex.EncodeToString(data), nil
	case "base64":
		return base64.StdEncoding.EncodeToString(data), nil
	default:
		return "", fmt.Errorf("invalid encoding: %s (valid options: hex, base64)", encoding)
	}
}

// decodeHexFlag decodes the named flag as hex. An unset flag yields nil.
func decodeHexFlag(cmd *cli.Command, name string) ([]byte, error) {
	value := cmd.String(name)
	if value == "" {
		return nil, nil
	}

	data, err := hex.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("invalid --%s hex: %w", name, err)
	}
	return data, nil
}

// readInput reads the whole input from path, or from stdin when path is "-".
func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}
