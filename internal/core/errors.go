package core

import (
	"context"
	"io/fs"

	"github.com/cockroachdb/errors"
)

// Sentinel marks for the failure taxonomy. Primitives attach them with
// errors.Mark so callers can classify without string matching.
var (
	ErrNotFound   = errors.New("not found")
	ErrPermission = errors.New("permission denied")
	ErrBusy       = errors.New("resource busy")
	ErrRejected   = errors.New("rejected")
	ErrTimeout    = errors.New("timed out")
)

// Kind is the class of a failure.
type Kind int

const (
	KindNone Kind = iota
	KindNotFound
	KindPermission
	KindBusy
	KindRejected
	KindTimeout
	KindUnexpected
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNotFound:
		return "not-found"
	case KindPermission:
		return "permission-denied"
	case KindBusy:
		return "busy"
	case KindRejected:
		return "rejected"
	case KindTimeout:
		return "timeout"
	default:
		return "unexpected"
	}
}

// Classify maps err onto the failure taxonomy. Explicit marks win over the
// underlying OS error.
func Classify(err error) Kind {
	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrRejected):
		return KindRejected
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return KindTimeout
	case errors.Is(err, ErrBusy), isBusy(err):
		return KindBusy
	case errors.Is(err, ErrPermission), errors.Is(err, fs.ErrPermission):
		return KindPermission
	case errors.Is(err, ErrNotFound), errors.Is(err, fs.ErrNotExist):
		return KindNotFound
	default:
		return KindUnexpected
	}
}

// IsExpected reports whether err is a steady-state condition (absent, denied
// or locked resource) rather than a real failure.
func IsExpected(err error) bool {
	switch Classify(err) {
	case KindNone, KindNotFound, KindPermission, KindBusy:
		return true
	}
	return false
}
