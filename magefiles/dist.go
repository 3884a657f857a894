//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
	"go.yaml.in/yaml/v3"

	"github.com/Beaulewis1977/quick-ocr-doc-converter/internal/config"
)

// Dist assembles dist/: the DLL, both host modules, and a ucshim.yaml with
// the default settings for deployers to edit. It is meant to be copied into
// the conversion tool's directory next to cli.py.
func Dist() error {
	mg.Deps(DLL, Integration)
	if err := os.MkdirAll(distDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", distDir, err)
	}
	for _, name := range []string{dllName, hostFile("vb6"), hostFile("vfp9")} {
		if err := sh.Copy(filepath.Join(distDir, name), filepath.Join(binDir, name)); err != nil {
			return fmt.Errorf("copying %s: %w", name, err)
		}
	}

	data, err := yaml.Marshal(config.Defaults())
	if err != nil {
		return fmt.Errorf("marshaling default config: %w", err)
	}
	path := filepath.Join(distDir, config.FileName+".yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	fmt.Printf("Assembled %s\n", distDir)
	return nil
}
