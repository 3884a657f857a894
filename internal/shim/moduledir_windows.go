//go:build windows

package shim

import (
	"fmt"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"
)

const maxModulePath = 32768

// anchor lives in the data section of whichever image this package is
// linked into, so its address identifies the DLL rather than the host EXE.
var anchor byte

// ModuleDir returns the directory of the loaded module containing this code.
func ModuleDir() (string, error) {
	var h windows.Handle
	flags := uint32(windows.GET_MODULE_HANDLE_EX_FLAG_FROM_ADDRESS | windows.GET_MODULE_HANDLE_EX_FLAG_UNCHANGED_REFCOUNT)
	if err := windows.GetModuleHandleEx(flags, (*uint16)(unsafe.Pointer(&anchor)), &h); err != nil {
		return "", fmt.Errorf("GetModuleHandleEx: %w", err)
	}

	buf := make([]uint16, maxModulePath)
	n, err := windows.GetModuleFileName(h, &buf[0], uint32(len(buf)))
	if err != nil {
		return "", fmt.Errorf("GetModuleFileName: %w", err)
	}
	return filepath.Dir(windows.UTF16ToString(buf[:n])), nil
}
