// Package erase holds the destructive primitives: file and directory
// clearing, registry value and subtree deletion, and SQLite table scrubbing.
// Every primitive isolates failures per entry, reports skips to the run log
// and never panics on expected OS conditions.
package erase

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/lakshaymaurya-felt/mypcnow/internal/config"
	"github.com/lakshaymaurya-felt/mypcnow/internal/core"
)

// Files deletes files and directory contents.
type Files struct {
	logger    *zap.Logger
	protected []string
}

// NewFiles creates a file eraser. Directories listed in protected are never
// cleared, even when a caller asks for them.
func NewFiles(logger *zap.Logger, protected []string) *Files {
	cleaned := make([]string, 0, len(protected))
	for _, p := range protected {
		if p != "" {
			cleaned = append(cleaned, filepath.Clean(p))
		}
	}
	return &Files{
		logger:    logger.Named("erase.files"),
		protected: cleaned,
	}
}

// DeleteFile removes a single file. A missing file returns an error marked
// core.ErrNotFound and is not reported. Files held open by another process
// or refused by the OS, including an unreadable parent directory, are
// reported as skips.
func (f *Files) DeleteFile(path string, out core.Sink) error {
	if !filepath.IsAbs(path) {
		return errors.Mark(errors.Newf("refusing relative path %q", path), core.ErrRejected)
	}
	info, err := os.Lstat(path)
	if err != nil {
		if core.Classify(err) == core.KindNotFound {
			return errors.Mark(err, core.ErrNotFound)
		}
		f.report(path, err, out)
		return err
	}
	if info.IsDir() {
		return errors.Newf("%s is a directory", path)
	}
	if err := os.Remove(longPath(path)); err != nil {
		f.report(path, err, out)
		return err
	}
	f.logger.Debug("Deleted file", zap.String("path", path))
	return nil
}

// ClearDirectoryContents removes every entry inside dir but leaves dir
// itself in place. It returns the number of top-level entries removed.
func (f *Files) ClearDirectoryContents(dir string, out core.Sink) int {
	return f.ClearMatching(dir, nil, out)
}

// ClearMatching removes the entries of dir whose name satisfies match, or
// every entry when match is nil. Subdirectories are removed recursively;
// junctions and symlinks are unlinked without being followed. Failures are
// reported per entry and never stop the iteration.
func (f *Files) ClearMatching(dir string, match func(name string) bool, out core.Sink) int {
	if dir == "" || !filepath.IsAbs(dir) {
		f.logger.Debug("Skipping non-absolute directory", zap.String("dir", dir))
		return 0
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return 0
	}
	if f.isProtected(dir) {
		core.Logf(out, "  [skip] protected location: %s", dir)
		f.logger.Warn("Refused to clear protected directory", zap.String("dir", dir))
		return 0
	}

	entries, err := os.ReadDir(longPath(dir))
	if err != nil {
		f.report(dir, err, out)
		return 0
	}

	removed := 0
	for _, entry := range entries {
		if match != nil && !match(entry.Name()) {
			continue
		}
		full := filepath.Join(dir, entry.Name())
		if err := f.removeEntry(full); err != nil {
			f.report(full, err, out)
			continue
		}
		removed++
	}

	f.logger.Debug("Cleared directory",
		zap.String("dir", dir),
		zap.Int("removed", removed),
		zap.Int("entries", len(entries)))
	return removed
}

// removeEntry deletes one file, link, or directory tree.
func (f *Files) removeEntry(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		return err
	}
	if info.Mode()&os.ModeSymlink != 0 || isReparsePoint(path) {
		// Unlink junctions without touching their target.
		return os.Remove(path)
	}
	if info.IsDir() {
		return os.RemoveAll(longPath(path))
	}
	return os.Remove(longPath(path))
}

// report writes one skip or error line for path, naming only the file.
func (f *Files) report(path string, err error, out core.Sink) {
	name := filepath.Base(path)
	switch core.Classify(err) {
	case core.KindNotFound:
		// Vanished between listing and removal.
	case core.KindBusy:
		core.Logf(out, "  [skip] in use: %s", name)
	case core.KindPermission:
		core.Logf(out, "  [skip] access denied: %s", name)
	default:
		core.Logf(out, "  [error] %s: %v", name, err)
	}
	f.logger.Debug("Could not delete",
		zap.String("path", path),
		zap.Stringer("kind", core.Classify(err)),
		zap.Error(err))
}

func (f *Files) isProtected(dir string) bool {
	clean := filepath.Clean(dir)
	if config.IsVolumeRoot(clean) {
		return true
	}
	for _, p := range f.protected {
		if strings.EqualFold(clean, p) {
			return true
		}
	}
	return false
}
