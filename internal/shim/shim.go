// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package shim is the adapter between legacy hosts and the external
// document-conversion tool. It validates a request, builds the tool's command
// line, runs it from the shim's install directory, and decides the outcome
// from whether the output file exists afterwards. No document content is
// ever read here.
//
// Every operation is synchronous and returns a types.Result; nothing panics
// or returns a Go error across this package's boundary.
package shim

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/Beaulewis1977/quick-ocr-doc-converter/internal/tool"
	"github.com/Beaulewis1977/quick-ocr-doc-converter/pkg/types"
)

const (
	msgInvalidParams    = "Invalid input parameters"
	msgInputNotFound    = "Input file not found: %s"
	msgConversionFailed = "Conversion failed - output file not created"
	msgRunFailed        = "Conversion failed - %v"
	msgTimedOut         = "Conversion timed out"
	msgException        = "Exception: %v"
	msgScriptNotFound   = "CLI script not found"
	msgNotAvailable     = "%s not available"
	msgConnectionFailed = "Connection test failed"
)

// Shim runs conversions through an external tool. The zero value is not
// usable; construct with New.
type Shim struct {
	cfg        types.ToolConfig
	tool       tool.Tool
	log        zerolog.Logger
	installDir func() (string, error)
	workDir    func() (string, error)
}

// Option customizes a Shim.
type Option func(*Shim)

// WithTool replaces the subprocess runner. Tests use this to substitute a
// fake for the real program.
func WithTool(t tool.Tool) Option {
	return func(s *Shim) { s.tool = t }
}

// WithLogger sets the logger used for command and failure diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Shim) { s.log = l }
}

// WithInstallDir pins the directory the tool runs from when the config does
// not override it, instead of locating the loaded library.
func WithInstallDir(dir string) Option {
	return func(s *Shim) {
		s.installDir = func() (string, error) { return dir, nil }
	}
}

// WithWorkDir sets the directory TestConnection looks for the entry script
// in. The default is the process working directory.
func WithWorkDir(dir string) Option {
	return func(s *Shim) {
		s.workDir = func() (string, error) { return dir, nil }
	}
}

// New returns a Shim for the given tool settings.
func New(cfg types.ToolConfig, opts ...Option) *Shim {
	s := &Shim{
		cfg:        cfg,
		tool:       tool.Exec{},
		log:        zerolog.Nop(),
		installDir: ModuleDir,
		workDir:    os.Getwd,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Config returns the tool settings the shim was built with.
func (s *Shim) Config() types.ToolConfig {
	return s.cfg
}

// Outcome is a Result together with what produced it. The CLI uses it for
// diagnostics and the journal; the flat API only needs the Result.
type Outcome struct {
	types.Result
	// Command is the invocation that ran, zero if validation stopped first.
	Command Command
	// Output is whatever the tool printed, captured but never interpreted.
	Output   tool.Output
	Duration time.Duration
}

// Convert runs one conversion. Outcomes:
//
//   - StatusError when a path is empty, the input cannot be opened, or
//     something unexpected happens before the tool can run.
//   - StatusSuccess when the output file exists after the tool exits,
//     whatever the tool printed or returned.
//   - StatusFailure otherwise, with the spawn error if there was one or a
//     generic message if the tool simply produced nothing.
func (s *Shim) Convert(ctx context.Context, req types.Request) types.Result {
	return s.Run(ctx, req).Result
}

// Run is Convert reporting the command, captured output, and elapsed time.
func (s *Shim) Run(ctx context.Context, req types.Request) (o Outcome) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Str("input", req.InputPath).Msg("conversion aborted")
			o.Result = types.Errored(msgException, r)
		}
		o.Duration = time.Since(start)
	}()

	if req.InputPath == "" || req.OutputPath == "" {
		o.Result = types.Errored(msgInvalidParams)
		return o
	}
	if !fileExists(req.InputPath) {
		o.Result = types.Errored(msgInputNotFound, req.InputPath)
		return o
	}

	// The tool runs from another directory, so relative paths are pinned to
	// the caller's working directory before either side sees them.
	abs, err := absRequest(req)
	if err != nil {
		o.Result = types.Errored(msgException, err)
		return o
	}

	cmd, err := s.BuildCommand(abs)
	if err != nil {
		o.Result = types.Errored(msgException, err)
		return o
	}
	o.Command = cmd

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	s.log.Debug().Str("command", cmd.String()).Msg("running external tool")
	out, runErr := s.tool.Run(ctx, cmd.Invocation())
	o.Output = out
	if runErr != nil {
		s.log.Warn().Err(runErr).Str("input", req.InputPath).Msg("external tool did not run cleanly")
	} else {
		s.log.Debug().Int("exit_code", out.ExitCode).Int("output_bytes", len(out.Text)).Msg("external tool finished")
	}

	switch {
	case fileExists(abs.OutputPath):
		o.Result = types.Succeeded()
	case runErr == nil:
		o.Result = types.Failed(msgConversionFailed)
	case errors.Is(runErr, context.DeadlineExceeded):
		o.Result = s.timedOut()
	case errors.Is(runErr, tool.ErrSpawn):
		o.Result = types.Failed("%s", capitalize(runErr.Error()))
	default:
		o.Result = types.Failed(msgRunFailed, runErr)
	}
	return o
}

func (s *Shim) timedOut() types.Result {
	if s.cfg.Timeout > 0 {
		return types.Failed(msgTimedOut+" after %s", s.cfg.Timeout)
	}
	return types.Failed(msgTimedOut)
}

func absRequest(req types.Request) (types.Request, error) {
	var err error
	if req.InputPath, err = filepath.Abs(req.InputPath); err != nil {
		return req, fmt.Errorf("resolving input path: %w", err)
	}
	if req.OutputPath, err = filepath.Abs(req.OutputPath); err != nil {
		return req, fmt.Errorf("resolving output path: %w", err)
	}
	return req, nil
}

// TestConnection checks that the interpreter answers a version query with
// the expected token and that the entry script is present in the working
// directory. It does not attempt a conversion.
func (s *Shim) TestConnection(ctx context.Context) (res types.Result) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Error().Interface("panic", r).Msg("connection test aborted")
			res = types.Errored(msgConnectionFailed)
		}
	}()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	probe := tool.Invocation{Name: s.cfg.Interpreter, Args: []string{"--version"}}
	out, err := s.tool.Run(ctx, probe)
	if err != nil {
		s.log.Warn().Err(err).Str("command", probe.String()).Msg("interpreter probe failed")
	}
	if s.cfg.ProbeToken == "" || !strings.Contains(out.Text, s.cfg.ProbeToken) {
		return types.Failed(msgNotAvailable, s.probeName())
	}

	wd, err := s.workDir()
	if err != nil {
		s.log.Warn().Err(err).Msg("resolving working directory")
		return types.Errored(msgConnectionFailed)
	}
	if !fileExists(filepath.Join(wd, s.cfg.EntryScript)) {
		return types.Failed(msgScriptNotFound)
	}
	return types.Succeeded()
}

func (s *Shim) probeName() string {
	if s.cfg.ProbeToken != "" {
		return s.cfg.ProbeToken
	}
	return s.cfg.Interpreter
}

func (s *Shim) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	if s.cfg.Timeout > 0 {
		return context.WithTimeout(ctx, s.cfg.Timeout)
	}
	return context.WithCancel(ctx)
}

// fileExists reports whether path names a regular file this process can
// open for reading.
func fileExists(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()
	info, err := f.Stat()
	return err == nil && !info.IsDir()
}

func capitalize(msg string) string {
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

