package core

import "golang.org/x/sys/windows"

// isElevated checks the process token for UAC elevation.
func isElevated() bool {
	return windows.GetCurrentProcessToken().IsElevated()
}
