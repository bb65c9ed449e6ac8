//go:build !windows

package hive

import (
	"io/fs"

	"github.com/cockroachdb/errors"
)

// errNoRegistry reports absence, so callers treat registry items as
// "nothing to do" on platforms without a registry.
var errNoRegistry = errors.Mark(errors.New("registry is only available on windows"), fs.ErrNotExist)

type systemStore struct{}

// System returns an empty store on platforms without a registry.
func System() Store {
	return systemStore{}
}

func (systemStore) SubKeys(Root, string) ([]string, error)    { return nil, errNoRegistry }
func (systemStore) ValueNames(Root, string) ([]string, error) { return nil, errNoRegistry }
func (systemStore) DeleteValue(Root, string, string) error    { return errNoRegistry }
func (systemStore) DeleteKey(Root, string) error              { return errNoRegistry }
