//go:build !windows

package shim

import (
	"fmt"
	"os"
	"path/filepath"
)

// ModuleDir returns the directory of the running executable. Outside Windows
// the shim is only used through the CLI, where that is the install directory.
func ModuleDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locating executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe), nil
}
