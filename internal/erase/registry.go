package erase

import (
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/lakshaymaurya-felt/mypcnow/internal/core"
	"github.com/lakshaymaurya-felt/mypcnow/internal/hive"
)

// Registry deletes values and key subtrees from a hive.Store.
type Registry struct {
	store  hive.Store
	logger *zap.Logger
}

// NewRegistry creates a registry eraser over store.
func NewRegistry(store hive.Store, logger *zap.Logger) *Registry {
	return &Registry{
		store:  store,
		logger: logger.Named("erase.registry"),
	}
}

// ClearValues deletes every value held directly by root\path and returns how
// many were removed. The value list is re-read after each deletion and the
// first remaining name is deleted, since removing a value shifts the
// enumeration order of the rest.
//
// A missing key returns an error marked core.ErrNotFound without reporting
// anything; an access-denied key is reported as a skip.
func (r *Registry) ClearValues(root hive.Root, path string, out core.Sink) (int, error) {
	removed := 0
	last := ""
	for {
		names, err := r.store.ValueNames(root, path)
		if err != nil {
			return removed, r.fail(root, path, err, out)
		}
		if len(names) == 0 {
			break
		}

		name := names[0]
		if removed > 0 && name == last {
			err := errors.Newf("value %q survived deletion", name)
			return removed, r.fail(root, path, err, out)
		}
		if err := r.store.DeleteValue(root, path, name); err != nil {
			return removed, r.fail(root, path, err, out)
		}
		last = name
		removed++
	}

	r.logger.Debug("Cleared values",
		zap.Stringer("root", root),
		zap.String("key", path),
		zap.Int("removed", removed))
	return removed, nil
}

// DeleteSubtree deletes every descendant key of root\path, leaf first, and
// returns how many keys were removed. root\path itself is kept. Child names
// are snapshotted before any deletion. A failure abandons only the branch it
// occurred in; siblings are still processed.
func (r *Registry) DeleteSubtree(root hive.Root, path string, out core.Sink) int {
	children, err := r.store.SubKeys(root, path)
	if err != nil {
		if core.Classify(err) != core.KindNotFound {
			r.logger.Debug("Cannot enumerate subkeys",
				zap.Stringer("root", root),
				zap.String("key", path),
				zap.Error(err))
		}
		return 0
	}

	removed := 0
	for _, child := range children {
		childPath := hive.Join(path, child)

		removed += r.DeleteSubtree(root, childPath, out)

		if _, err := r.ClearValues(root, childPath, out); err != nil {
			continue
		}
		if err := r.store.DeleteKey(root, childPath); err != nil {
			r.logger.Debug("Cannot delete key",
				zap.Stringer("root", root),
				zap.String("key", childPath),
				zap.Error(err))
			continue
		}
		removed++
	}
	return removed
}

// fail reports a ClearValues failure and marks it for classification.
func (r *Registry) fail(root hive.Root, path string, err error, out core.Sink) error {
	switch core.Classify(err) {
	case core.KindNotFound:
		return errors.Mark(err, core.ErrNotFound)
	case core.KindPermission:
		core.Logf(out, "  [skip] insufficient permission: %s", path)
	default:
		core.Logf(out, "  [error] %s: %v", path, err)
	}
	r.logger.Debug("Cannot clear values",
		zap.Stringer("root", root),
		zap.String("key", path),
		zap.Error(err))
	return err
}
