//go:build mage

// Package main contains Mage build targets for the Universal Converter shim:
// the ucshim CLI, the 32-bit UniversalConverter32.dll, and the host
// declaration modules that ship next to it.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binDir  = "bin"
	distDir = "dist"
	binName = "ucshim"
	cmdPkg  = "./cmd/ucshim"
	dllPkg  = "./cmd/ucshim32"
	dllName = "UniversalConverter32.dll"
	defFile = "cmd/ucshim32/ucshim32.def"

	// defaultCC is the mingw-w64 cross compiler for 32-bit Windows. Override
	// with CC when building on Windows or with a different toolchain.
	defaultCC = "i686-w64-mingw32-gcc"
)

// buildVersion is the git description of HEAD, or "dev" outside a checkout.
func buildVersion() string {
	v, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil || v == "" {
		return "dev"
	}
	return strings.TrimSpace(v)
}

// Build compiles the CLI binary into bin/.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	out := filepath.Join(binDir, binName)
	ldflags := "-X main.version=" + buildVersion()
	if err := sh.RunV("go", "build", "-ldflags", ldflags, "-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// DLL cross-compiles UniversalConverter32.dll for 32-bit Windows hosts.
// It needs cgo and a mingw-w64 i686 toolchain.
func DLL() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}
	def, err := filepath.Abs(defFile)
	if err != nil {
		return err
	}
	cc := os.Getenv("CC")
	if cc == "" {
		cc = defaultCC
	}
	env := map[string]string{
		"GOOS":        "windows",
		"GOARCH":      "386",
		"CGO_ENABLED": "1",
		"CC":          cc,
	}
	out := filepath.Join(binDir, dllName)
	ldflags := fmt.Sprintf("-s -w -extldflags=%s", def)
	if err := sh.RunWithV(env, "go", "build", "-buildmode=c-shared", "-ldflags", ldflags, "-o", out, dllPkg); err != nil {
		return fmt.Errorf("building %s: %w", dllName, err)
	}
	fmt.Printf("Built %s\n", out)
	return nil
}

// Test runs the unit tests.
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Integration writes the VB6 and VFP9 declaration modules into bin/.
func Integration() error {
	mg.Deps(Build)
	bin := filepath.Join(binDir, binName)
	for _, lang := range []string{"vb6", "vfp9"} {
		if err := sh.RunV(bin, "integration", lang, "-o", filepath.Join(binDir, hostFile(lang))); err != nil {
			return fmt.Errorf("generating %s module: %w", lang, err)
		}
	}
	return nil
}

func hostFile(lang string) string {
	if lang == "vfp9" {
		return "UniversalConverter_VFP9.prg"
	}
	return "UniversalConverter_VB6.bas"
}

// Clean removes build outputs.
func Clean() error {
	for _, dir := range []string{binDir, distDir} {
		if err := sh.Rm(dir); err != nil {
			return err
		}
	}
	return nil
}
