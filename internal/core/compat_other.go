//go:build !windows

package core

import (
	"runtime"
	"strings"

	"github.com/shirou/gopsutil/v4/host"
)

// OSDescription returns a human-readable name of the running OS.
func OSDescription() string {
	info, err := host.Info()
	if err != nil || info.Platform == "" {
		return runtime.GOOS
	}
	return strings.TrimSpace(info.Platform + " " + info.PlatformVersion)
}
