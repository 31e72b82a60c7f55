//go:build !windows

package windows

import "syscall"

// hiddenWindow is a no-op outside of Windows: there is no console to hide.
func hiddenWindow() *syscall.SysProcAttr {
	return nil
}
