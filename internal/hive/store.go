// Package hive abstracts a tree-structured key/value store shaped like the
// Windows registry: every key holds named values and child keys, and a key
// cannot be deleted while it still has children.
package hive

import "strings"

// Root selects a top-level hive.
type Root int

const (
	CurrentUser Root = iota
	LocalMachine
)

func (r Root) String() string {
	switch r {
	case CurrentUser:
		return "HKCU"
	case LocalMachine:
		return "HKLM"
	default:
		return "HK?"
	}
}

// Store is the minimal surface the erasers need. Paths are backslash
// separated and relative to root. Missing keys yield errors matching
// fs.ErrNotExist; refused access yields errors matching fs.ErrPermission.
type Store interface {
	// SubKeys returns the names of the immediate children of path.
	SubKeys(root Root, path string) ([]string, error)

	// ValueNames returns the names of the values held directly by path.
	ValueNames(root Root, path string) ([]string, error)

	// DeleteValue removes one named value from path.
	DeleteValue(root Root, path, name string) error

	// DeleteKey removes path itself. It fails if path still has children.
	DeleteKey(root Root, path string) error
}

// Join appends child to a key path.
func Join(path, child string) string {
	if path == "" {
		return child
	}
	return strings.TrimRight(path, `\`) + `\` + child
}

// split returns the parent path and final component of path.
func split(path string) (string, string) {
	path = strings.Trim(path, `\`)
	i := strings.LastIndex(path, `\`)
	if i < 0 {
		return "", path
	}
	return path[:i], path[i+1:]
}
