// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package hostgen writes the declaration modules legacy hosts include to
// call the shim DLL: a VB6 standard module (.bas) and a Visual FoxPro 9
// program (.prg). Both are generated from one export catalog so they cannot
// drift from each other.
package hostgen

import (
	"github.com/Beaulewis1977/quick-ocr-doc-converter/internal/shim"
)

// Kind is the C-level type of a parameter or return value.
type Kind int

const (
	// KindLong is a 32-bit integer (C long, VB6 Long, VFP INTEGER).
	KindLong Kind = iota
	// KindString is a NUL-terminated input string or a returned const char*.
	KindString
	// KindBuffer is a caller-allocated char buffer the DLL writes into.
	KindBuffer
)

// Param is one argument of an exported function.
type Param struct {
	Name string
	Kind Kind
}

// Export describes one function in the DLL's flat API.
type Export struct {
	Name    string
	Params  []Param
	Returns Kind
	Doc     string
}

// ReturnsString reports whether the export returns a char pointer.
func (e Export) ReturnsString() bool {
	return e.Returns == KindString
}

var pathPair = []Param{
	{Name: "inputFile", Kind: KindString},
	{Name: "outputFile", Kind: KindString},
}

// Exports returns the DLL's exported functions in declaration order.
func Exports() []Export {
	exports := []Export{
		{
			Name: "ConvertDocument",
			Params: []Param{
				{Name: "inputFile", Kind: KindString},
				{Name: "outputFile", Kind: KindString},
				{Name: "inputFormat", Kind: KindString},
				{Name: "outputFormat", Kind: KindString},
			},
			Returns: KindLong,
			Doc:     "Convert inputFile to outputFile. Returns 1 success, 0 failure, -1 error.",
		},
		{Name: "TestConnection", Returns: KindLong, Doc: "Check the interpreter and CLI script are reachable."},
		{Name: "GetVersion", Returns: KindString, Doc: "Shim version string."},
		{Name: "GetLastError", Returns: KindString, Doc: "Message from the most recent failing call."},
		{Name: "GetSupportedInputFormats", Returns: KindString, Doc: "Comma-separated input extensions."},
		{Name: "GetSupportedOutputFormats", Returns: KindString, Doc: "Comma-separated output extensions."},
	}
	for _, p := range shim.Pairs {
		exports = append(exports, Export{
			Name:    p.Export,
			Params:  pathPair,
			Returns: KindLong,
			Doc:     "Convert " + p.From + " to " + p.To + ".",
		})
	}
	exports = append(exports,
		Export{
			Name: "ConvertBatch",
			Params: []Param{
				{Name: "inputDir", Kind: KindString},
				{Name: "outputDir", Kind: KindString},
				{Name: "inputFormat", Kind: KindString},
				{Name: "outputFormat", Kind: KindString},
			},
			Returns: KindLong,
			Doc:     "Not implemented; always returns -1.",
		},
		Export{
			Name: "GetFileInfo",
			Params: []Param{
				{Name: "filePath", Kind: KindString},
				{Name: "infoBuffer", Kind: KindBuffer},
				{Name: "bufferSize", Kind: KindLong},
			},
			Returns: KindLong,
			Doc:     "Write \"Size: <n> bytes\" into infoBuffer.",
		},
	)
	return exports
}
