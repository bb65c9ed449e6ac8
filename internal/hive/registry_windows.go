package hive

import (
	"github.com/cockroachdb/errors"
	"golang.org/x/sys/windows/registry"
)

// hives maps each Root onto its predefined registry handle.
var hives = map[Root]registry.Key{
	CurrentUser:  registry.CURRENT_USER,
	LocalMachine: registry.LOCAL_MACHINE,
}

type systemStore struct{}

// System returns the live Windows registry.
func System() Store {
	return systemStore{}
}

// openKey opens path for full access so that a read-only key surfaces as
// access denied before any destructive call is attempted.
func openKey(root Root, path string) (registry.Key, error) {
	base, ok := hives[root]
	if !ok {
		return 0, errors.Newf("unknown registry root %d", root)
	}
	return registry.OpenKey(base, path, registry.ALL_ACCESS)
}

func (systemStore) SubKeys(root Root, path string) ([]string, error) {
	key, err := openKey(root, path)
	if err != nil {
		return nil, err
	}
	defer key.Close()

	return key.ReadSubKeyNames(-1)
}

func (systemStore) ValueNames(root Root, path string) ([]string, error) {
	key, err := openKey(root, path)
	if err != nil {
		return nil, err
	}
	defer key.Close()

	return key.ReadValueNames(-1)
}

func (systemStore) DeleteValue(root Root, path, name string) error {
	key, err := openKey(root, path)
	if err != nil {
		return err
	}
	defer key.Close()

	return key.DeleteValue(name)
}

func (systemStore) DeleteKey(root Root, path string) error {
	parentPath, name := split(path)
	parent, err := openKey(root, parentPath)
	if err != nil {
		return err
	}
	defer parent.Close()

	return registry.DeleteKey(parent, name)
}
