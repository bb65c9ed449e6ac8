package hive

import (
	"io/fs"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
)

var errHasSubKeys = errors.New("key has subkeys")

// Mem is an in-memory Store. Names compare case-insensitively and
// enumeration follows insertion order. Mem is stricter than the registry: a
// key that still holds values cannot be deleted either.
type Mem struct {
	mu     sync.Mutex
	roots  map[Root]*memKey
	denied map[string]bool
}

type memKey struct {
	name     string
	values   []string
	children []*memKey
}

// NewMem returns an empty store.
func NewMem() *Mem {
	return &Mem{
		roots:  make(map[Root]*memKey),
		denied: make(map[string]bool),
	}
}

// ─── Fixture Helpers ─────────────────────────────────────────────────────────

// CreateKey creates path and any missing ancestors.
func (m *Mem) CreateKey(root Root, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ensure(root, path)
}

// SetValue creates path if needed and adds the named value to it.
func (m *Mem) SetValue(root Root, path, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := m.ensure(root, path)
	if indexFold(k.values, name) < 0 {
		k.values = append(k.values, name)
	}
}

// Deny makes every operation on path fail with a permission error.
func (m *Mem) Deny(root Root, path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.denied[deniedKey(root, path)] = true
}

// HasKey reports whether path exists.
func (m *Mem) HasKey(root Root, path string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.find(root, path) != nil
}

// ─── Store ───────────────────────────────────────────────────────────────────

func (m *Mem) SubKeys(root Root, path string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k, err := m.open(root, path)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(k.children))
	for _, c := range k.children {
		names = append(names, c.name)
	}
	return names, nil
}

func (m *Mem) ValueNames(root Root, path string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k, err := m.open(root, path)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), k.values...), nil
}

func (m *Mem) DeleteValue(root Root, path, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k, err := m.open(root, path)
	if err != nil {
		return err
	}
	i := indexFold(k.values, name)
	if i < 0 {
		return &fs.PathError{Op: "delete value", Path: Join(path, name), Err: fs.ErrNotExist}
	}
	k.values = append(k.values[:i], k.values[i+1:]...)
	return nil
}

func (m *Mem) DeleteKey(root Root, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	k, err := m.open(root, path)
	if err != nil {
		return err
	}
	if len(k.children) > 0 {
		return errors.Wrapf(errHasSubKeys, "delete %s\\%s", root, path)
	}
	if len(k.values) > 0 {
		return errors.Newf("delete %s\\%s: key still holds %d values", root, path, len(k.values))
	}
	parentPath, name := split(path)
	parent := m.find(root, parentPath)
	for i, c := range parent.children {
		if strings.EqualFold(c.name, name) {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			break
		}
	}
	return nil
}

// ─── Internals ───────────────────────────────────────────────────────────────

func (m *Mem) open(root Root, path string) (*memKey, error) {
	if m.denied[deniedKey(root, path)] {
		return nil, &fs.PathError{Op: "open", Path: root.String() + `\` + path, Err: fs.ErrPermission}
	}
	k := m.find(root, path)
	if k == nil {
		return nil, &fs.PathError{Op: "open", Path: root.String() + `\` + path, Err: fs.ErrNotExist}
	}
	return k, nil
}

func (m *Mem) find(root Root, path string) *memKey {
	k := m.roots[root]
	if k == nil {
		return nil
	}
	for _, part := range parts(path) {
		var next *memKey
		for _, c := range k.children {
			if strings.EqualFold(c.name, part) {
				next = c
				break
			}
		}
		if next == nil {
			return nil
		}
		k = next
	}
	return k
}

func (m *Mem) ensure(root Root, path string) *memKey {
	k := m.roots[root]
	if k == nil {
		k = &memKey{name: root.String()}
		m.roots[root] = k
	}
	for _, part := range parts(path) {
		var next *memKey
		for _, c := range k.children {
			if strings.EqualFold(c.name, part) {
				next = c
				break
			}
		}
		if next == nil {
			next = &memKey{name: part}
			k.children = append(k.children, next)
		}
		k = next
	}
	return k
}

func parts(path string) []string {
	var out []string
	for _, p := range strings.Split(path, `\`) {
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func indexFold(list []string, name string) int {
	for i, v := range list {
		if strings.EqualFold(v, name) {
			return i
		}
	}
	return -1
}

func deniedKey(root Root, path string) string {
	return root.String() + `\` + strings.ToLower(strings.Trim(path, `\`))
}
