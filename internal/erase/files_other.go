//go:build !windows

package erase

// isReparsePoint is always false off Windows; symlinks are caught by Lstat.
func isReparsePoint(string) bool { return false }

func longPath(path string) string { return path }
