//go:build windows

package shellsetup

import (
	"errors"
	"os"

	"golang.org/x/sys/windows"
)

// maxImagePathUnits bounds the buffer grown for QueryFullProcessImageName.
const maxImagePathUnits = 32 * 1024

// DetectParentShellName names the shell that launched ff from the image path
// of the parent process.
func DetectParentShellName() string {
	ppid := os.Getppid()
	if ppid <= 0 {
		return ""
	}
	exe, err := processImagePath(uint32(ppid))
	if err != nil || exe == "" {
		return ""
	}
	return canonicalShellName(executableBase(exe))
}

func processImagePath(pid uint32) (string, error) {
	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, pid)
	if err != nil {
		return "", err
	}
	defer windows.CloseHandle(handle)

	for units := uint32(windows.MAX_PATH); units <= maxImagePathUnits; units *= 2 {
		buf := make([]uint16, units)
		n := units
		err := windows.QueryFullProcessImageName(handle, 0, &buf[0], &n)
		if err == nil {
			return windows.UTF16ToString(buf[:n]), nil
		}
		if !errors.Is(err, windows.ERROR_INSUFFICIENT_BUFFER) {
			return "", err
		}
	}
	return "", windows.ERROR_INSUFFICIENT_BUFFER
}
