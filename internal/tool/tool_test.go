// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const helperEnv = "UCSHIM_HELPER_PROCESS"

// TestHelperProcess is not a real test. It is the child process the other
// tests spawn through os.Args[0].
func TestHelperProcess(t *testing.T) {
	if os.Getenv(helperEnv) != "1" {
		return
	}
	args := os.Args
	for len(args) > 0 {
		if args[0] == "--" {
			args = args[1:]
			break
		}
		args = args[1:]
	}
	if len(args) == 0 {
		os.Exit(2)
	}

	switch args[0] {
	case "echo":
		fmt.Fprint(os.Stdout, strings.Join(args[1:], " "))
	case "mixed":
		fmt.Fprint(os.Stdout, "out;")
		os.Stdout.Sync()
		fmt.Fprint(os.Stderr, "err;")
		os.Stderr.Sync()
		fmt.Fprint(os.Stdout, "out")
	case "big":
		fmt.Fprint(os.Stdout, strings.Repeat("x", 10*readChunk+7))
	case "pwd":
		wd, _ := os.Getwd()
		fmt.Fprint(os.Stdout, wd)
	case "exit":
		fmt.Fprint(os.Stderr, "bailing out")
		os.Exit(3)
	case "sleep":
		time.Sleep(30 * time.Second)
	case "linger":
		time.Sleep(8 * time.Second)
	case "spawn":
		// Start a grandchild that inherits the output pipe, then hang.
		child := exec.Command(os.Args[0], "-test.run=TestHelperProcess", "--", "linger")
		child.Stdout = os.Stdout
		child.Stderr = os.Stderr
		if err := child.Start(); err != nil {
			os.Exit(4)
		}
		time.Sleep(30 * time.Second)
	}
	os.Exit(0)
}

func helper(t *testing.T, dir string, args ...string) Invocation {
	t.Helper()
	t.Setenv(helperEnv, "1")
	return Invocation{
		Dir:  dir,
		Name: os.Args[0],
		Args: append([]string{"-test.run=TestHelperProcess", "--"}, args...),
	}
}

func TestExecRun(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantText string
		wantCode int
	}{
		{name: "captures stdout", args: []string{"echo", "hello", "world"}, wantText: "hello world"},
		{name: "merges stderr into stdout", args: []string{"mixed"}, wantText: "out;err;out"},
		{name: "reads past one chunk", args: []string{"big"}, wantText: strings.Repeat("x", 10*readChunk+7)},
		{name: "non-zero exit is not an error", args: []string{"exit"}, wantText: "bailing out", wantCode: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Exec{}.Run(context.Background(), helper(t, "", tt.args...))
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, out.Text)
			assert.Equal(t, tt.wantCode, out.ExitCode)
		})
	}
}

func TestExecRun_WorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	out, err := Exec{}.Run(context.Background(), helper(t, dir, "pwd"))
	require.NoError(t, err)

	want, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	got, err := filepath.EvalSymlinks(out.Text)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestExecRun_SpawnFailure(t *testing.T) {
	tests := []struct {
		name string
		inv  Invocation
	}{
		{
			name: "missing program",
			inv:  Invocation{Name: "ucshim-no-such-program-on-path"},
		},
		{
			name: "missing working directory",
			inv:  Invocation{Name: os.Args[0], Dir: filepath.Join(t.TempDir(), "gone")},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Exec{}.Run(context.Background(), tt.inv)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSpawn), "error should wrap ErrSpawn, got: %v", err)
			assert.Empty(t, out.Text)
			assert.Equal(t, -1, out.ExitCode)
		})
	}
}

func TestExecRun_Timeout(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Exec{}.Run(ctx, helper(t, "", "sleep"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got: %v", err)
	assert.Less(t, time.Since(start), 20*time.Second)
}

func TestExecRun_TimeoutWithGrandchild(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := Exec{}.Run(ctx, helper(t, "", "spawn"))
	elapsed := time.Since(start)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded), "got: %v", err)
	assert.Less(t, elapsed, 5*time.Second, "a grandchild holding the pipe must not outlive the deadline")
}

func TestInvocationString(t *testing.T) {
	inv := Invocation{Name: "python", Args: []string{"cli.py", "in.pdf", "-o", "out.txt"}}
	assert.Equal(t, "python cli.py in.pdf -o out.txt", inv.String())
}
