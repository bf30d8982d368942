package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Environment variables read by stegctl. Values from a .env file in the
// working directory are loaded first and never override the real environment.
const (
	envKey       = "STEGCTL_KEY"
	envLogLevel  = "STEGCTL_LOG_LEVEL"
	envOutputDir = "STEGCTL_OUTPUT_DIR"
)

const (
	defaultConfigPath = "stegctl.toml"
	defaultEnvPath    = ".env"
)

// Config is the resolved stegctl configuration.
type Config struct {
	Key           string
	KeyFile       string
	LogLevel      string
	OutputDir     string
	KDFIterations int
	DocumentTypes []string
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{LogLevel: "info"}
}

type fileConfig struct {
	KeyFile       string   `toml:"key_file"`
	LogLevel      string   `toml:"log_level"`
	OutputDir     string   `toml:"output_dir"`
	KDFIterations int      `toml:"kdf_iterations"`
	DocumentTypes []string `toml:"document_types"`
}

// loadConfig reads a TOML config file over the defaults. An empty path uses
// stegctl.toml in the working directory if it exists.
func loadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("load stegctl config: %w", err)
	}

	if meta.IsDefined("key_file") {
		cfg.KeyFile = strings.TrimSpace(raw.KeyFile)
	}

	if meta.IsDefined("log_level") {
		cfg.LogLevel = strings.TrimSpace(raw.LogLevel)
	}

	if meta.IsDefined("output_dir") {
		cfg.OutputDir = strings.TrimSpace(raw.OutputDir)
	}

	if meta.IsDefined("kdf_iterations") {
		if raw.KDFIterations < 0 {
			return Config{}, fmt.Errorf("parse kdf_iterations: must not be negative, got %d", raw.KDFIterations)
		}
		cfg.KDFIterations = raw.KDFIterations
	}

	if meta.IsDefined("document_types") {
		cfg.DocumentTypes = normalizeTypes(raw.DocumentTypes)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("load stegctl config: unknown key %q", undecoded[0].String())
	}

	return cfg, nil
}

// loadDotEnv loads path into the process environment if it exists.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides cfg with environment values.
func applyEnv(cfg *Config, getenv func(string) string) {
	if v := getenv(envKey); v != "" {
		cfg.Key = v
	}
	if v := strings.TrimSpace(getenv(envLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if v := strings.TrimSpace(getenv(envOutputDir)); v != "" {
		cfg.OutputDir = v
	}
}

// resolveKey picks the passphrase: flag, then flag key file, then the
// environment, then the configured key file.
func resolveKey(cfg Config, flagKey, flagKeyFile string) (string, error) {
	if flagKey != "" {
		return flagKey, nil
	}
	if flagKeyFile != "" {
		return readKeyFile(flagKeyFile)
	}
	if cfg.Key != "" {
		return cfg.Key, nil
	}
	if cfg.KeyFile != "" {
		return readKeyFile(cfg.KeyFile)
	}
	return "", nil
}

func readKeyFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read key file: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}

func normalizeTypes(in []string) []string {
	out := make([]string, 0, len(in))
	for _, t := range in {
		v := strings.TrimSpace(t)
		if v == "" {
			continue
		}
		out = append(out, v)
	}
	return out
}
