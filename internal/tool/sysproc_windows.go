//go:build windows

package tool

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// sysProcAttr keeps the console child from flashing a window over the GUI
// host that loaded the shim.
func sysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}
}
