// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package hostgen

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Beaulewis1977/quick-ocr-doc-converter/internal/shim"
)

const dll = "UniversalConverter32.dll"

func render(t *testing.T, lang Lang) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, lang, Options{DLL: dll}))
	return buf.String()
}

func TestExports_CoverFlatAPI(t *testing.T) {
	names := map[string]bool{}
	for _, e := range Exports() {
		assert.False(t, names[e.Name], "duplicate export %s", e.Name)
		names[e.Name] = true
	}
	for _, want := range []string{
		"ConvertDocument", "TestConnection", "GetVersion", "GetLastError",
		"GetSupportedInputFormats", "GetSupportedOutputFormats", "ConvertBatch", "GetFileInfo",
	} {
		assert.True(t, names[want], "missing export %s", want)
	}
	for _, p := range shim.Pairs {
		assert.True(t, names[p.Export], "missing pair export %s", p.Export)
	}
	assert.Len(t, names, 8+len(shim.Pairs))
}

func TestRender_VB6(t *testing.T) {
	out := render(t, LangVB6)

	assert.True(t, strings.HasPrefix(out, `Attribute VB_Name = "UniversalConverter"`))
	assert.Contains(t, out, `Public Declare Function ConvertDocument Lib "UniversalConverter32.dll" (ByVal inputFile As String, ByVal outputFile As String, ByVal inputFormat As String, ByVal outputFormat As String) As Long`)
	assert.Contains(t, out, `Public Declare Function TestConnection Lib "UniversalConverter32.dll" () As Long`)
	assert.Contains(t, out, `Private Declare Function ucGetVersion Lib "UniversalConverter32.dll" Alias "GetVersion" () As Long`)
	assert.Contains(t, out, `Public Function UCGetLastError() As String`)
	assert.Contains(t, out, `Public Declare Function GetFileInfo Lib "UniversalConverter32.dll" (ByVal filePath As String, ByVal infoBuffer As String, ByVal bufferSize As Long) As Long`)
	assert.Contains(t, out, "Public Const UC_ERROR As Long = -1")
	assert.Contains(t, out, shim.Version)
	for _, p := range shim.Pairs {
		assert.Contains(t, out, "Public Declare Function "+p.Export+` Lib "UniversalConverter32.dll" (ByVal inputFile As String, ByVal outputFile As String) As Long`)
	}
}

func TestRender_VFP9(t *testing.T) {
	out := render(t, LangVFP9)

	assert.Contains(t, out, "#DEFINE UC_SUCCESS 1")
	assert.Contains(t, out, "DECLARE INTEGER ConvertDocument IN UniversalConverter32.dll STRING inputFile, STRING outputFile, STRING inputFormat, STRING outputFormat\r\n")
	assert.Contains(t, out, "DECLARE INTEGER TestConnection IN UniversalConverter32.dll\r\n")
	assert.Contains(t, out, "DECLARE STRING GetVersion IN UniversalConverter32.dll\r\n")
	assert.Contains(t, out, "DECLARE INTEGER GetFileInfo IN UniversalConverter32.dll STRING filePath, STRING @infoBuffer, INTEGER bufferSize\r\n")
	for _, p := range shim.Pairs {
		assert.Contains(t, out, "DECLARE INTEGER "+p.Export+" IN UniversalConverter32.dll STRING inputFile, STRING outputFile\r\n")
	}
}

func TestRender_CRLF(t *testing.T) {
	for _, lang := range []Lang{LangVB6, LangVFP9} {
		out := render(t, lang)
		assert.Equal(t, strings.Count(out, "\n"), strings.Count(out, "\r\n"), "every line ends in CRLF for %s", lang)
	}
}

func TestRender_RequiresDLLName(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, LangVB6, Options{})
	require.Error(t, err)
	assert.Zero(t, buf.Len())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", LangVFP9.DefaultFileName())
	require.NoError(t, WriteFile(path, LangVFP9, Options{DLL: "Custom.dll"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "IN Custom.dll")
}

func TestParseLang(t *testing.T) {
	tests := []struct {
		in      string
		want    Lang
		wantErr bool
	}{
		{in: "vb6", want: LangVB6},
		{in: "VB", want: LangVB6},
		{in: "vfp9", want: LangVFP9},
		{in: "FoxPro", want: LangVFP9},
		{in: "delphi", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLang(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	assert.Equal(t, "UniversalConverter_VB6.bas", LangVB6.DefaultFileName())
	assert.Equal(t, "UniversalConverter_VFP9.prg", LangVFP9.DefaultFileName())
}
