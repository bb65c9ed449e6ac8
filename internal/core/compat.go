package core

import "fmt"

// windowsRelease names a Windows release by kernel version. Entries are
// checked in order; minBuild separates releases sharing a kernel version.
type windowsRelease struct {
	major, minor uint32
	minBuild     uint32
	name         string
}

var windowsReleases = []windowsRelease{
	{10, 0, 22000, "Windows 11"},
	{10, 0, 0, "Windows 10"},
	{6, 3, 0, "Windows 8.1"},
	{6, 2, 0, "Windows 8"},
	{6, 1, 0, "Windows 7"},
}

// describeWindows formats a kernel version as "Windows 11 (Build 22631)".
func describeWindows(major, minor, build uint32) string {
	name := fmt.Sprintf("Windows %d.%d", major, minor)
	for _, r := range windowsReleases {
		if r.major == major && r.minor == minor && build >= r.minBuild {
			name = r.name
			break
		}
	}
	return fmt.Sprintf("%s (Build %d)", name, build)
}
