//go:build !windows

package clean

import "github.com/cockroachdb/errors"

var errNoShell = errors.New("the Windows shell is not available on this platform")

type systemShell struct{}

func (systemShell) RecycleBin() (int64, int64, error) { return 0, 0, errNoShell }
func (systemShell) EmptyRecycleBin() error            { return errNoShell }
func (systemShell) ClearClipboard() error             { return errNoShell }
