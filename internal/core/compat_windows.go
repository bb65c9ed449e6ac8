package core

import "golang.org/x/sys/windows"

// OSDescription names the running Windows release and build.
func OSDescription() string {
	major, minor, build := windows.RtlGetNtVersionNumbers()
	return describeWindows(major, minor, build&0xFFFF)
}
