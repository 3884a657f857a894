// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads shim settings. Precedence, lowest first: built-in
// defaults, ucshim.yaml found in one of the search directories (normally the
// shim's install directory), UCSHIM_* environment variables, and for the CLI
// any bound command-line flags.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/Beaulewis1977/quick-ocr-doc-converter/pkg/types"
)

const (
	// EnvPrefix prefixes every environment override, e.g. UCSHIM_TOOL_INTERPRETER.
	EnvPrefix = "UCSHIM"
	// FileName is the config file base name searched for in each directory.
	FileName = "ucshim"

	DefaultInterpreter = "python"
	DefaultEntryScript = "cli.py"
	DefaultProbeToken  = "Python"
	DefaultDLLName     = "UniversalConverter32.dll"
)

// Keys used with viper. Nested keys map to UCSHIM_TOOL_* in the environment.
const (
	KeyInterpreter = "tool.interpreter"
	KeyEntryScript = "tool.entry_script"
	KeyProbeToken  = "tool.probe_token"
	KeyToolDir     = "tool.dir"
	KeyQuiet       = "tool.quiet"
	KeyTimeout     = "tool.timeout"
	KeyJournalPath = "journal_path"
	KeyDLLName     = "dll_name"
)

// Defaults returns the configuration the legacy DLL hard-coded.
func Defaults() types.ShimConfig {
	return types.ShimConfig{
		Tool: types.ToolConfig{
			Interpreter: DefaultInterpreter,
			EntryScript: DefaultEntryScript,
			ProbeToken:  DefaultProbeToken,
			Quiet:       true,
		},
		DLLName: DefaultDLLName,
	}
}

// NewViper returns a viper instance with defaults, environment binding, and
// the given config search directories registered. Files are not read until
// Load.
func NewViper(searchDirs ...string) *viper.Viper {
	d := Defaults()
	v := viper.New()
	v.SetDefault(KeyInterpreter, d.Tool.Interpreter)
	v.SetDefault(KeyEntryScript, d.Tool.EntryScript)
	v.SetDefault(KeyProbeToken, d.Tool.ProbeToken)
	v.SetDefault(KeyToolDir, d.Tool.Dir)
	v.SetDefault(KeyQuiet, d.Tool.Quiet)
	v.SetDefault(KeyTimeout, d.Tool.Timeout)
	v.SetDefault(KeyJournalPath, d.JournalPath)
	v.SetDefault(KeyDLLName, d.DLLName)

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	for _, dir := range searchDirs {
		if dir != "" {
			v.AddConfigPath(dir)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// BindFlags binds each flag in fs whose name maps to a config key.
// Flag names use dashes: --interpreter, --entry-script, --tool-dir, ...
func BindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	bindings := map[string]string{
		"interpreter":  KeyInterpreter,
		"entry-script": KeyEntryScript,
		"probe-token":  KeyProbeToken,
		"tool-dir":     KeyToolDir,
		"quiet":        KeyQuiet,
		"timeout":      KeyTimeout,
		"journal":      KeyJournalPath,
		"dll-name":     KeyDLLName,
	}
	for name, key := range bindings {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}
	return nil
}

// Load reads the config file if one exists and decodes the merged settings.
// A missing file in the search path is not an error; a file named explicitly
// with SetConfigFile that cannot be read is.
func Load(v *viper.Viper) (types.ShimConfig, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return types.ShimConfig{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg types.ShimConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.ShimConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	if cfg.Tool.Interpreter == "" {
		return types.ShimConfig{}, fmt.Errorf("config: %s must not be empty", KeyInterpreter)
	}
	if cfg.Tool.EntryScript == "" {
		return types.ShimConfig{}, fmt.Errorf("config: %s must not be empty", KeyEntryScript)
	}
	if cfg.Tool.Timeout < 0 {
		return types.ShimConfig{}, fmt.Errorf("config: %s must not be negative", KeyTimeout)
	}
	return cfg, nil
}

// LoadFrom is NewViper followed by Load.
func LoadFrom(searchDirs ...string) (types.ShimConfig, error) {
	return Load(NewViper(searchDirs...))
}
