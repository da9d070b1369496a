package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

// Load reads and parses a TOML config file, validates it, and returns the
// resulting Config. Unknown keys are fatal, with "did you mean?" suggestions.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := checkUnknownKeys(&md); err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// LoadOrDefault reads a TOML config file if it exists, otherwise returns
// the defaults. The relay runs without any config file.
func LoadOrDefault(path string) (*Config, bool, error) {
	if path == "" {
		return DefaultConfig(), false, nil
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return DefaultConfig(), false, nil
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, false, err
	}

	return cfg, true, nil
}

// Resolve loads configuration and applies the override chain:
// defaults -> config file -> environment variables -> CLI flags.
func Resolve(env EnvOverrides, cli CLIOverrides) (*Resolved, error) {
	// 1. Config path: CLI > env > default.
	cfgPath := DefaultConfigPath()
	if env.ConfigPath != "" {
		cfgPath = env.ConfigPath
	}

	if cli.ConfigPath != "" {
		cfgPath = cli.ConfigPath
	}

	// 2. File (or defaults).
	cfg, found, err := LoadOrDefault(cfgPath)
	if err != nil {
		return nil, err
	}

	resolved := &Resolved{Config: *cfg, Path: cfgPath, MockSource: SourceDefault}
	if found && cfg.Graph.Mock {
		resolved.MockSource = SourceFile
	}

	// 3. Environment.
	if err := applyEnv(resolved, env); err != nil {
		return nil, err
	}

	// 4. CLI flags.
	if cli.Mock != nil {
		resolved.Graph.Mock = *cli.Mock
		resolved.MockSource = SourceFlag
	}

	if cli.ListenAddr != "" {
		resolved.Server.ListenAddr = cli.ListenAddr
	}

	// 5. Overrides can introduce bad values too.
	if err := Validate(&resolved.Config); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return resolved, nil
}

func applyEnv(resolved *Resolved, env EnvOverrides) error {
	if strings.EqualFold(env.Environment, EnvironmentDevelopment) {
		resolved.Graph.Mock = true
		resolved.MockSource = SourceEnv
	}

	if env.Mock != "" {
		mock, err := strconv.ParseBool(env.Mock)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", EnvMock, env.Mock)
		}

		resolved.Graph.Mock = mock
		resolved.MockSource = SourceEnv
	}

	if env.ListenAddr != "" {
		resolved.Server.ListenAddr = env.ListenAddr
	}

	return nil
}
