// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package shim

import (
	"context"

	"github.com/Beaulewis1977/quick-ocr-doc-converter/pkg/types"
)

// Version is the shim's release, reported by GetVersion.
const Version = "3.1.0"

// These lists are declared, not discovered. Keep them in step with what the
// external tool accepts.
const (
	SupportedInputFormats  = "pdf,docx,txt,html,rtf,md,markdown"
	SupportedOutputFormats = "txt,md,html,json"
)

// Pair is a fixed input/output format combination with its exported name.
type Pair struct {
	// Export is the flat API function name, e.g. "ConvertPDFToText".
	Export string
	// Command is the CLI subcommand name, e.g. "pdf-to-text".
	Command string
	From    string
	To      string
}

var (
	PDFToText      = Pair{Export: "ConvertPDFToText", Command: "pdf-to-text", From: "pdf", To: "txt"}
	PDFToMarkdown  = Pair{Export: "ConvertPDFToMarkdown", Command: "pdf-to-markdown", From: "pdf", To: "md"}
	DOCXToText     = Pair{Export: "ConvertDOCXToText", Command: "docx-to-text", From: "docx", To: "txt"}
	DOCXToMarkdown = Pair{Export: "ConvertDOCXToMarkdown", Command: "docx-to-markdown", From: "docx", To: "md"}
	MarkdownToHTML = Pair{Export: "ConvertMarkdownToHTML", Command: "markdown-to-html", From: "md", To: "html"}
	HTMLToMarkdown = Pair{Export: "ConvertHTMLToMarkdown", Command: "html-to-markdown", From: "html", To: "md"}
	RTFToText      = Pair{Export: "ConvertRTFToText", Command: "rtf-to-text", From: "rtf", To: "txt"}
	RTFToMarkdown  = Pair{Export: "ConvertRTFToMarkdown", Command: "rtf-to-markdown", From: "rtf", To: "md"}
)

// Pairs lists every convenience conversion in export order.
var Pairs = []Pair{
	PDFToText,
	PDFToMarkdown,
	DOCXToText,
	DOCXToMarkdown,
	MarkdownToHTML,
	HTMLToMarkdown,
	RTFToText,
	RTFToMarkdown,
}

// Request builds the Convert request for this pair.
func (p Pair) Request(input, output string) types.Request {
	return types.Request{
		InputPath:    input,
		OutputPath:   output,
		InputFormat:  p.From,
		OutputFormat: p.To,
	}
}

// ConvertPair forwards to Convert with the pair's formats.
func (s *Shim) ConvertPair(ctx context.Context, p Pair, input, output string) types.Result {
	return s.Convert(ctx, p.Request(input, output))
}

// PairByCommand finds a pair by its CLI subcommand name.
func PairByCommand(name string) (Pair, bool) {
	for _, p := range Pairs {
		if p.Command == name {
			return p, true
		}
	}
	return Pair{}, false
}
