// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName+".yaml"), []byte(body), 0o644))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Defaults(), cfg)
	assert.Equal(t, "python", cfg.Tool.Interpreter)
	assert.Equal(t, "cli.py", cfg.Tool.EntryScript)
	assert.True(t, cfg.Tool.Quiet)
	assert.Zero(t, cfg.Tool.Timeout)
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
tool:
  interpreter: py
  entry_script: convert.py
  quiet: false
  timeout: 90s
journal_path: /tmp/ucshim.db
`)

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "py", cfg.Tool.Interpreter)
	assert.Equal(t, "convert.py", cfg.Tool.EntryScript)
	assert.Equal(t, DefaultProbeToken, cfg.Tool.ProbeToken, "unset keys keep their defaults")
	assert.False(t, cfg.Tool.Quiet)
	assert.Equal(t, 90*time.Second, cfg.Tool.Timeout)
	assert.Equal(t, "/tmp/ucshim.db", cfg.JournalPath)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "tool:\n  interpreter: py\n")
	t.Setenv("UCSHIM_TOOL_INTERPRETER", "python3")
	t.Setenv("UCSHIM_DLL_NAME", "Converter.dll")

	cfg, err := LoadFrom(dir)
	require.NoError(t, err)
	assert.Equal(t, "python3", cfg.Tool.Interpreter)
	assert.Equal(t, "Converter.dll", cfg.DLLName)
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	t.Setenv("UCSHIM_TOOL_ENTRY_SCRIPT", "env.py")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("entry-script", "", "")
	fs.Duration("timeout", 0, "")
	require.NoError(t, fs.Parse([]string{"--entry-script=flag.py", "--timeout=5s"}))

	v := NewViper(t.TempDir())
	require.NoError(t, BindFlags(v, fs))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, "flag.py", cfg.Tool.EntryScript)
	assert.Equal(t, 5*time.Second, cfg.Tool.Timeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		errMsg string
	}{
		{name: "empty interpreter", body: "tool:\n  interpreter: \"\"\n", errMsg: KeyInterpreter},
		{name: "negative timeout", body: "tool:\n  timeout: -1s\n", errMsg: KeyTimeout},
		{name: "malformed yaml", body: "tool: [unterminated\n", errMsg: "reading config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.body)
			_, err := LoadFrom(dir)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoad_ExplicitMissingFile(t *testing.T) {
	v := NewViper()
	v.SetConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load(v)
	require.Error(t, err)
}
