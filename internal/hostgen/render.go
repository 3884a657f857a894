// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hostgen

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/Beaulewis1977/quick-ocr-doc-converter/internal/shim"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// Lang selects the host language to generate for.
type Lang string

const (
	LangVB6  Lang = "vb6"
	LangVFP9 Lang = "vfp9"
)

// ParseLang accepts the CLI spellings of a host language.
func ParseLang(s string) (Lang, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "vb6", "vb":
		return LangVB6, nil
	case "vfp9", "vfp", "foxpro":
		return LangVFP9, nil
	default:
		return "", fmt.Errorf("unknown host language %q (want vb6 or vfp9)", s)
	}
}

// DefaultFileName is the file name the legacy builder used for each host.
func (l Lang) DefaultFileName() string {
	if l == LangVFP9 {
		return "UniversalConverter_VFP9.prg"
	}
	return "UniversalConverter_VB6.bas"
}

func (l Lang) templateName() string {
	if l == LangVFP9 {
		return "vfp9.prg.tmpl"
	}
	return "vb6.bas.tmpl"
}

// Options parameterizes generated modules.
type Options struct {
	// DLL is the library file name hosts load, e.g. "UniversalConverter32.dll".
	DLL string
}

type templateData struct {
	DLL     string
	Version string
	Exports []Export
}

var funcs = template.FuncMap{
	"vbParams":  vbParams,
	"vfpParams": vfpParams,
	"vfpType":   vfpType,
}

// Render writes the declaration module for lang to w. Output uses CRLF line
// endings, which both IDEs expect.
func Render(w io.Writer, lang Lang, opts Options) error {
	if opts.DLL == "" {
		return fmt.Errorf("hostgen: DLL name is required")
	}
	tmpl, err := template.New(lang.templateName()).Funcs(funcs).ParseFS(templateFS, "templates/"+lang.templateName())
	if err != nil {
		return fmt.Errorf("parsing %s template: %w", lang, err)
	}

	var buf bytes.Buffer
	data := templateData{DLL: opts.DLL, Version: shim.Version, Exports: Exports()}
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("rendering %s module: %w", lang, err)
	}

	crlf := strings.ReplaceAll(strings.ReplaceAll(buf.String(), "\r\n", "\n"), "\n", "\r\n")
	_, err = io.WriteString(w, crlf)
	return err
}

// WriteFile renders lang into path, creating parent directories.
func WriteFile(path string, lang Lang, opts Options) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	var buf bytes.Buffer
	if err := Render(&buf, lang, opts); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func vbParams(params []Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		typ := "String"
		if p.Kind == KindLong {
			typ = "Long"
		}
		parts[i] = fmt.Sprintf("ByVal %s As %s", p.Name, typ)
	}
	return strings.Join(parts, ", ")
}

func vfpParams(params []Param) string {
	if len(params) == 0 {
		return ""
	}
	parts := make([]string, len(params))
	for i, p := range params {
		switch p.Kind {
		case KindBuffer:
			parts[i] = "STRING @" + p.Name
		case KindLong:
			parts[i] = "INTEGER " + p.Name
		default:
			parts[i] = "STRING " + p.Name
		}
	}
	return " " + strings.Join(parts, ", ")
}

func vfpType(k Kind) string {
	if k == KindString {
		return "STRING"
	}
	return "INTEGER"
}
