package main

import (
	"os"
	"path/filepath"

	"github.com/allisson/go-env"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	cipher "github.com/go-i2p/go-cipher"
)

// Config holds the tool defaults that can come from environment variables
// or a key=value; configuration file.
type Config struct {
	// Algorithm is the default catalog algorithm when --algorithm is omitted.
	// It may be a delimiter-separated preference list such as
	// "chacha20-poly1305-ietf;aes-256-gcm"; the first available name is used.
	Algorithm string
	// Encoding is the default output encoding for generated key material.
	Encoding string
	// LogLevel selects the library log verbosity (debug, info, warning, error, fatal).
	LogLevel string
}

// loadConfig loads tool configuration from environment variables and .env file.
func loadConfig() *Config {
	// Try to load .env file recursively
	loadDotEnv()

	return &Config{
		Algorithm: env.GetString("CIPHERTOOL_ALGORITHM", "aes-256-gcm"),
		Encoding:  env.GetString("CIPHERTOOL_ENCODING", "hex"),
		LogLevel:  env.GetString("CIPHERTOOL_LOG_LEVEL", ""),
	}
}

// commandConfig resolves the effective configuration for one command
// invocation: environment first, then the optional --config file on top.
// The library log level is applied as a side effect.
func commandConfig(cmd *cli.Command) *Config {
	cfg := loadConfig()
	if path := cmd.String("config"); path != "" {
		applyConfigFile(cfg, path)
	}
	applyLogLevel(cfg.LogLevel)
	return cfg
}

// applyConfigFile overlays settings from a key=value; file onto cfg.
// Unknown keys are ignored so the file can be shared with other tools.
func applyConfigFile(cfg *Config, path string) {
	cipher.ParseConfig(path, func(name, value string) {
		switch name {
		case "algorithm":
			cfg.Algorithm = value
		case "encoding":
			cfg.Encoding = value
		case "log.level":
			cfg.LogLevel = value
		}
	})
}

// applyLogLevel maps a textual level onto the library logger. An empty or
// unknown level leaves the logger untouched.
func applyLogLevel(level string) {
	switch level {
	case "debug":
		cipher.LogInit(cipher.DEBUG)
	case "info":
		cipher.LogInit(cipher.INFO)
	case "warning":
		cipher.LogInit(cipher.WARNING)
	case "error":
		cipher.LogInit(cipher.ERROR)
	case "fatal":
		cipher.LogInit(cipher.FATAL)
	}
}

// loadDotEnv searches for a .env file recursively from the current directory
// up to the root directory and loads it if found.
func loadDotEnv() {
	cwd, err := os.Getwd()
	if err != nil {
		return
	}

	dir := cwd
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
}
