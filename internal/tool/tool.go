// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package tool runs the external conversion program as a subprocess and
// captures its combined output. The shim never parses documents itself; this
// package is its only route to the program that does.
package tool

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// readChunk is the size of each read from the child's output pipe.
const readChunk = 128

// ErrSpawn marks a failure to start the child process at all, as opposed to
// a child that started and then misbehaved.
var ErrSpawn = errors.New("failed to execute external tool")

// Invocation is a fully resolved command: the program, its arguments, and
// the working directory it runs from.
type Invocation struct {
	Dir  string
	Name string
	Args []string
}

// String renders the invocation for logs.
func (inv Invocation) String() string {
	parts := make([]string, 0, len(inv.Args)+1)
	parts = append(parts, inv.Name)
	parts = append(parts, inv.Args...)
	return strings.Join(parts, " ")
}

// Output is what a child process left behind.
type Output struct {
	// Text is everything written to stdout and stderr, interleaved in the
	// order the child wrote it.
	Text string

	// ExitCode is the child's exit status, -1 if it never ran or was killed.
	ExitCode int
}

// Tool runs one invocation to completion. Implementations must not return
// until the child has exited and its output has been drained.
type Tool interface {
	Run(ctx context.Context, inv Invocation) (Output, error)
}

// Exec is the production Tool backed by os/exec.
type Exec struct{}

// Run starts the child with stderr merged into stdout, reads the stream in
// fixed-size chunks until EOF, and waits for the child on every path. A
// non-zero exit status is reported in Output, not as an error; callers judge
// success by the artifacts the child leaves, not by what it returns.
func (Exec) Run(ctx context.Context, inv Invocation) (Output, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	pr, pw, err := os.Pipe()
	if err != nil {
		return Output{ExitCode: -1}, fmt.Errorf("%w: creating output pipe: %v", ErrSpawn, err)
	}
	defer pr.Close()

	cmd := exec.CommandContext(ctx, inv.Name, inv.Args...)
	cmd.Dir = inv.Dir
	cmd.Stdout = pw
	cmd.Stderr = pw
	cmd.SysProcAttr = sysProcAttr()

	if err := cmd.Start(); err != nil {
		pw.Close()
		return Output{ExitCode: -1}, fmt.Errorf("%w: %s: %v", ErrSpawn, inv.Name, err)
	}
	// The child holds its own copy of the write end; EOF arrives once it and
	// every process it started have exited.
	pw.Close()

	// Killing the child does not close copies of the write end held by its
	// own children, so the read end is closed when ctx is done.
	stop := context.AfterFunc(ctx, func() { pr.Close() })
	defer stop()

	var buf bytes.Buffer
	readErr := drain(pr, &buf)
	if readErr != nil {
		// Unblock a child still writing into a pipe nobody reads.
		pr.Close()
	}
	waitErr := cmd.Wait()

	out := Output{Text: buf.String(), ExitCode: exitCode(waitErr)}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, fmt.Errorf("running %s: %w", inv.Name, ctxErr)
	}
	if readErr != nil {
		return out, fmt.Errorf("reading output of %s: %w", inv.Name, readErr)
	}
	return out, nil
}

func drain(r io.Reader, w *bytes.Buffer) error {
	chunk := make([]byte, readChunk)
	for {
		n, err := r.Read(chunk)
		w.Write(chunk[:n])
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
