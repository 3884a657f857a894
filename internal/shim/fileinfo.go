// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package shim

import (
	"fmt"
	"os"

	"github.com/Beaulewis1977/quick-ocr-doc-converter/pkg/types"
)

const (
	msgInfoInvalidParams = "Invalid parameters for GetFileInfo"
	msgInfoNotFound      = "File not found: %s"
	msgInfoOpenFailed    = "Could not open file for info"
	msgInfoBufferSmall   = "Buffer too small for file info (need %d bytes, have %d)"
)

// FileInfo returns "Size: <n> bytes" for path.
func FileInfo(path string) (string, types.Result) {
	if path == "" {
		return "", types.Errored(msgInfoInvalidParams)
	}
	if !fileExists(path) {
		return "", types.Errored(msgInfoNotFound, path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return "", types.Errored(msgInfoOpenFailed)
	}
	return fmt.Sprintf("Size: %d bytes", info.Size()), types.Succeeded()
}

// FormatFileInfo writes FileInfo's text into buf followed by a NUL byte.
// If the text and terminator do not fit, buf is left untouched and a hard
// error is returned; the text is never truncated.
func FormatFileInfo(path string, buf []byte) types.Result {
	if path == "" || len(buf) == 0 {
		return types.Errored(msgInfoInvalidParams)
	}
	text, res := FileInfo(path)
	if !res.OK() {
		return res
	}
	need := len(text) + 1
	if need > len(buf) {
		return types.Errored(msgInfoBufferSmall, need, len(buf))
	}
	n := copy(buf, text)
	buf[n] = 0
	return types.Succeeded()
}
