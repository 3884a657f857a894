// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package shim

import (
	"github.com/Beaulewis1977/quick-ocr-doc-converter/pkg/types"
)

const msgBatchNotImplemented = "Batch conversion not yet implemented"

// ConvertBatch is declared for API compatibility and always reports a hard
// error, whatever it is given, so callers can detect the missing capability.
func (s *Shim) ConvertBatch(inputDir, outputDir, inputFormat, outputFormat string) types.Result {
	s.log.Debug().
		Str("input_dir", inputDir).
		Str("output_dir", outputDir).
		Msg("batch conversion requested")
	return types.Errored(msgBatchNotImplemented)
}
