//go:build !windows

package clean

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/lakshaymaurya-felt/mypcnow/internal/core"
)

// Records is unavailable without WMI.
func (l *systemEventLog) Records(context.Context, string) (uint64, error) {
	return 0, errors.Mark(errors.New("event log records require WMI"), core.ErrNotFound)
}
