// Package configloader provides configuration loading and resolution.
// It implements XDG-compliant configuration discovery, hierarchical merging,
// environment variable support and validation.
package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/gomarkup/pkg/config"
)

// ErrConfigNotFound is returned when an explicitly requested config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file path (from --config flag).
	ExplicitPath string

	// IgnoreSystemConfig skips loading system-level configuration.
	IgnoreSystemConfig bool

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order).
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (GOMARKUP_*)
//  3. Explicit config file (opts.ExplicitPath)
//  4. Project config (.gomarkup.yml upward search)
//  5. User config ($XDG_CONFIG_HOME/gomarkup/config.yml)
//  6. System config (/etc/gomarkup/config.yml)
//  7. Defaults
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()

	layers := []struct {
		name    string
		path    string
		skip    bool
		require bool
	}{
		{name: "system", path: paths.System, skip: opts.IgnoreSystemConfig},
		{name: "user", path: paths.User, skip: opts.IgnoreUserConfig},
		{name: "project", path: paths.Project, skip: opts.IgnoreProjectConfig},
		{name: "explicit", path: paths.Explicit, require: true},
	}

	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("context cancelled: %w", err)
		}

		layerCfg, err := loadConfigFile(layer.path)
		if err != nil {
			if layer.require && errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, layer.path)
			}
			return nil, fmt.Errorf("load %s config: %w", layer.name, err)
		}
		cfg = merge(cfg, layerCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}

	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	result.Config = cfg
	return result, nil
}

// loadConfigFile loads a configuration from a YAML file. Relative
// custom_data paths are resolved against the file's directory.
func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error()}
	}

	dir := filepath.Dir(path)
	for i, p := range cfg.CustomData {
		if !filepath.IsAbs(p) {
			cfg.CustomData[i] = filepath.Join(dir, p)
		}
	}

	return cfg, nil
}
