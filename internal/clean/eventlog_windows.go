package clean

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/yusufpapurcu/wmi"

	"github.com/lakshaymaurya-felt/mypcnow/internal/core"
)

type win32NTEventlogFile struct {
	LogfileName     string
	NumberOfRecords uint32
}

// Records returns the record count of the named log from Win32_NTEventlogFile.
func (l *systemEventLog) Records(ctx context.Context, name string) (uint64, error) {
	if !logNamePattern.MatchString(name) {
		return 0, errors.Mark(errors.Newf("invalid event log name %q", name), core.ErrRejected)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	var dst []win32NTEventlogFile
	q := "SELECT LogfileName, NumberOfRecords FROM Win32_NTEventlogFile WHERE LogfileName = '" + name + "'"
	if err := wmi.Query(q, &dst); err != nil {
		return 0, errors.Wrap(err, "query Win32_NTEventlogFile")
	}
	if len(dst) == 0 {
		return 0, errors.Mark(errors.Newf("event log %q not found", name), core.ErrNotFound)
	}
	return uint64(dst[0].NumberOfRecords), nil
}
