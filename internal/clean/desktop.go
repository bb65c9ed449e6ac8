package clean

import (
	"context"

	"github.com/lakshaymaurya-felt/mypcnow/internal/catalog"
	"github.com/lakshaymaurya-felt/mypcnow/internal/core"
)

// Desktop moves user-created shortcuts into a recovery batch.
type Desktop struct {
	d Deps
}

// NewDesktop creates the desktop unit.
func NewDesktop(d Deps) *Desktop { return &Desktop{d: d} }

func (u *Desktop) Category() string { return catalog.Desktop }

func (u *Desktop) Tasks() map[string]Task {
	return map[string]Task{
		"user_shortcuts": TaskFunc(u.userShortcuts),
	}
}

func (u *Desktop) userShortcuts(ctx context.Context, out core.Sink) int {
	core.Logf(out, "[Desktop] moving user-created shortcuts...")
	return u.d.Quarantine.Run(out).Moved
}
