//go:build !windows

package core

import "os"

func isElevated() bool {
	return os.Geteuid() == 0
}
