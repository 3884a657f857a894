// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package shim

import (
	"fmt"
	"strings"

	"github.com/Beaulewis1977/quick-ocr-doc-converter/internal/tool"
	"github.com/Beaulewis1977/quick-ocr-doc-converter/pkg/types"
)

const (
	flagOutput = "-o"
	flagTarget = "-t"
	flagQuiet  = "--quiet"
)

// Command is the external tool invocation for one conversion request.
type Command struct {
	// Dir is the directory the tool runs from, normally the shim's own.
	Dir string
	// Interpreter runs EntryScript.
	Interpreter string
	EntryScript string
	Input       string
	Output      string
	// Target is the output-format token, empty to let the tool infer it.
	Target string
	Quiet  bool
}

// BuildCommand resolves the tool directory and lays out the arguments:
//
//	<entry-script> <input> -o <output> [-t <format>] [--quiet]
//
// The input-format hint is deliberately not forwarded. The tool sniffs the
// input type on its own, and its -f flag is an alias for the target format.
func (s *Shim) BuildCommand(req types.Request) (Command, error) {
	dir := s.cfg.Dir
	if dir == "" {
		d, err := s.installDir()
		if err != nil {
			return Command{}, fmt.Errorf("locating shim install directory: %w", err)
		}
		dir = d
	}
	return Command{
		Dir:         dir,
		Interpreter: s.cfg.Interpreter,
		EntryScript: s.cfg.EntryScript,
		Input:       req.InputPath,
		Output:      req.OutputPath,
		Target:      req.OutputFormat,
		Quiet:       s.cfg.Quiet,
	}, nil
}

// Args returns the argument vector passed to the interpreter.
func (c Command) Args() []string {
	args := []string{c.EntryScript, c.Input, flagOutput, c.Output}
	if c.Target != "" {
		args = append(args, flagTarget, c.Target)
	}
	if c.Quiet {
		args = append(args, flagQuiet)
	}
	return args
}

// Invocation converts the command into what a tool.Tool runs. Stderr is
// merged into stdout by the runner, which stands in for the shell's 2>&1.
func (c Command) Invocation() tool.Invocation {
	return tool.Invocation{
		Dir:  c.Dir,
		Name: c.Interpreter,
		Args: c.Args(),
	}
}

// String renders the command as a cmd.exe line, for logs and the CLI's
// command subcommand.
func (c Command) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, `cd /d "%s" && %s %s`, c.Dir, c.Interpreter, c.EntryScript)
	fmt.Fprintf(&b, ` "%s"`, c.Input)
	fmt.Fprintf(&b, ` %s "%s"`, flagOutput, c.Output)
	if c.Target != "" {
		fmt.Fprintf(&b, " %s %s", flagTarget, c.Target)
	}
	if c.Quiet {
		b.WriteString(" " + flagQuiet)
	}
	b.WriteString(" 2>&1")
	return b.String()
}
