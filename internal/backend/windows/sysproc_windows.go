package windows

import (
	"syscall"

	"golang.org/x/sys/windows"
)

// hiddenWindow prevents wsl.exe from opening a console window when the
// caller is a GUI application.
func hiddenWindow() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: windows.CREATE_NO_WINDOW,
	}
}
