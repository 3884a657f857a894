// Command ucshim32 is built with -buildmode=c-shared into
// UniversalConverter32.dll, the flat C API VB6 and Visual FoxPro 9 load.
//
// The Go exports below use the platform's default calling convention and
// prefixed names. exports.c wraps each one in a __stdcall function and
// ucshim32.def publishes those wrappers under the undecorated names hosts
// declare (ConvertDocument, GetLastError, ...).
package main

/*
#include <stdlib.h>
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/Beaulewis1977/quick-ocr-doc-converter/internal/shim"
	"github.com/Beaulewis1977/quick-ocr-doc-converter/pkg/types"
)

// Strings handed to the host stay valid for the life of the process.
var (
	staticOnce   sync.Once
	versionStr   *C.char
	inputFmtStr  *C.char
	outputFmtStr *C.char

	lastErrMu  sync.Mutex
	lastErrBuf *C.char
)

func initStatic() {
	staticOnce.Do(func() {
		versionStr = C.CString(shim.Version)
		inputFmtStr = C.CString(shim.SupportedInputFormats)
		outputFmtStr = C.CString(shim.SupportedOutputFormats)
		lastErrBuf = (*C.char)(C.calloc(shim.ErrorCapacity, 1))
	})
}

func status(s types.Status) C.long { return C.long(s) }

//export ucshimConvertDocument
func ucshimConvertDocument(input, output, inputFormat, outputFormat *C.char) C.long {
	return status(lib.convertDocument(C.GoString(input), C.GoString(output), C.GoString(inputFormat), C.GoString(outputFormat)))
}

//export ucshimTestConnection
func ucshimTestConnection() C.long {
	return status(lib.testConnection())
}

//export ucshimGetVersion
func ucshimGetVersion() *C.char {
	initStatic()
	return versionStr
}

// ucshimGetLastError copies the slot into a fixed buffer owned by the DLL.
// The pointer is stable; its contents change with the next failing call.
//
//export ucshimGetLastError
func ucshimGetLastError() *C.char {
	initStatic()
	msg := lib.lastError()

	lastErrMu.Lock()
	defer lastErrMu.Unlock()
	buf := unsafe.Slice((*byte)(unsafe.Pointer(lastErrBuf)), shim.ErrorCapacity)
	n := copy(buf[:shim.ErrorCapacity-1], msg)
	buf[n] = 0
	return lastErrBuf
}

//export ucshimGetSupportedInputFormats
func ucshimGetSupportedInputFormats() *C.char {
	initStatic()
	return inputFmtStr
}

//export ucshimGetSupportedOutputFormats
func ucshimGetSupportedOutputFormats() *C.char {
	initStatic()
	return outputFmtStr
}

func pair(p shim.Pair, input, output *C.char) C.long {
	return status(lib.convertPair(p, C.GoString(input), C.GoString(output)))
}

//export ucshimConvertPDFToText
func ucshimConvertPDFToText(input, output *C.char) C.long {
	return pair(shim.PDFToText, input, output)
}

//export ucshimConvertPDFToMarkdown
func ucshimConvertPDFToMarkdown(input, output *C.char) C.long {
	return pair(shim.PDFToMarkdown, input, output)
}

//export ucshimConvertDOCXToText
func ucshimConvertDOCXToText(input, output *C.char) C.long {
	return pair(shim.DOCXToText, input, output)
}

//export ucshimConvertDOCXToMarkdown
func ucshimConvertDOCXToMarkdown(input, output *C.char) C.long {
	return pair(shim.DOCXToMarkdown, input, output)
}

//export ucshimConvertMarkdownToHTML
func ucshimConvertMarkdownToHTML(input, output *C.char) C.long {
	return pair(shim.MarkdownToHTML, input, output)
}

//export ucshimConvertHTMLToMarkdown
func ucshimConvertHTMLToMarkdown(input, output *C.char) C.long {
	return pair(shim.HTMLToMarkdown, input, output)
}

//export ucshimConvertRTFToText
func ucshimConvertRTFToText(input, output *C.char) C.long {
	return pair(shim.RTFToText, input, output)
}

//export ucshimConvertRTFToMarkdown
func ucshimConvertRTFToMarkdown(input, output *C.char) C.long {
	return pair(shim.RTFToMarkdown, input, output)
}

//export ucshimConvertBatch
func ucshimConvertBatch(inputDir, outputDir, inputFormat, outputFormat *C.char) C.long {
	return status(lib.convertBatch(C.GoString(inputDir), C.GoString(outputDir), C.GoString(inputFormat), C.GoString(outputFormat)))
}

// ucshimGetFileInfo writes into the caller's buffer of bufferSize bytes.
//
//export ucshimGetFileInfo
func ucshimGetFileInfo(filePath, infoBuffer *C.char, bufferSize C.long) C.long {
	var buf []byte
	if infoBuffer != nil && bufferSize > 0 {
		buf = unsafe.Slice((*byte)(unsafe.Pointer(infoBuffer)), int(bufferSize))
	}
	return status(lib.fileInfo(C.GoString(filePath), buf))
}

func main() {}
