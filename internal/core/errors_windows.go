package core

import (
	"syscall"

	"github.com/cockroachdb/errors"
	"golang.org/x/sys/windows"
)

// isBusy reports whether err is a sharing or lock violation, which Windows
// returns for files another process holds open.
func isBusy(err error) bool {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false
	}
	switch errno {
	case windows.ERROR_SHARING_VIOLATION, windows.ERROR_LOCK_VIOLATION, windows.ERROR_BUSY:
		return true
	}
	return false
}
