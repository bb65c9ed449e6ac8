//go:build !windows

package core

import (
	"syscall"

	"github.com/cockroachdb/errors"
)

func isBusy(err error) bool {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return false
	}
	return errno == syscall.EBUSY || errno == syscall.ETXTBSY
}
