// Package quarantine moves user-created desktop shortcuts into a timestamped
// recovery directory. Nothing here deletes a shortcut.
package quarantine

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/lakshaymaurya-felt/mypcnow/internal/config"
	"github.com/lakshaymaurya-felt/mypcnow/internal/core"
)

// ProtectedNames holds lower-cased file names that are never moved.
var ProtectedNames = map[string]struct{}{
	"desktop.ini": {},

	"this pc.lnk":        {},
	"이 pc.lnk":           {},
	"recycle bin.lnk":    {},
	"휴지통.lnk":            {},
	"control panel.lnk":  {},
	"제어판.lnk":            {},
	"network.lnk":        {},
	"네트워크.lnk":           {},
	"microsoft edge.lnk": {},

	"microsoft store.lnk":        {},
	"microsoft teams.lnk":        {},
	"teams.lnk":                  {},
	"outlook.lnk":                {},
	"outlook (new).lnk":          {},
	"onedrive.lnk":               {},
	"onenote.lnk":                {},
	"word.lnk":                   {},
	"excel.lnk":                  {},
	"powerpoint.lnk":             {},
	"microsoft 365 (office).lnk": {},

	"windows security.lnk": {},
	"windows 보안.lnk":       {},
	"get started.lnk":      {},
	"시작.lnk":               {},
	"feedback hub.lnk":     {},
	"피드백 허브.lnk":           {},
	"xbox.lnk":             {},
	"xbox game bar.lnk":    {},

	"adobe acrobat.lnk": {},
	"adobe reader.lnk":  {},
}

var shortcutExts = []string{".lnk", ".url"}

// batchLayout is the timestamp format of a recovery batch directory.
const batchLayout = "20060102_150405"

// Report summarizes one quarantine pass.
type Report struct {
	Moved       int
	Preserved   int
	Failed      int
	RecoveryDir string
}

// Quarantine relocates shortcuts off the user and public desktops.
type Quarantine struct {
	paths     *config.Resolver
	app       string
	protected map[string]struct{}
	logger    *zap.Logger
	now       func() time.Time
}

// New creates a Quarantine. extra names are merged, lower-cased, into
// ProtectedNames; they can only add protection.
func New(paths *config.Resolver, app string, extra []string, logger *zap.Logger) *Quarantine {
	protected := make(map[string]struct{}, len(ProtectedNames)+len(extra))
	for name := range ProtectedNames {
		protected[name] = struct{}{}
	}
	for _, name := range extra {
		if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
			protected[name] = struct{}{}
		}
	}
	return &Quarantine{
		paths:     paths,
		app:       app,
		protected: protected,
		logger:    logger.Named("quarantine"),
		now:       time.Now,
	}
}

// IsProtected reports whether name is in the protected set, ignoring case.
func (q *Quarantine) IsProtected(name string) bool {
	_, ok := q.protected[strings.ToLower(name)]
	return ok
}

// IsShortcut reports whether name carries a shortcut extension.
func IsShortcut(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range shortcutExts {
		if ext == e {
			return true
		}
	}
	return false
}

// BatchParent returns <recovery root>/<app>_deleted_shortcuts.
func (q *Quarantine) BatchParent() (string, bool) {
	root, ok := q.paths.RecoveryRoot(q.app)
	if !ok {
		return "", false
	}
	return filepath.Join(root, q.app+"_deleted_shortcuts"), true
}

// Desktops returns the user and public desktop directories that resolve.
func (q *Quarantine) Desktops() []string {
	var dirs []string
	if home, ok := q.paths.UserProfile(); ok {
		dirs = append(dirs, filepath.Join(home, "Desktop"))
	}
	if pub, ok := q.paths.Public(); ok {
		dirs = append(dirs, filepath.Join(pub, "Desktop"))
	}
	return dirs
}

// Run moves every unprotected shortcut from the desktops into a new recovery
// batch. Protected names are counted as preserved; other files are left
// alone and not counted. The batch directory is created on the first move.
func (q *Quarantine) Run(out core.Sink) Report {
	var rep Report

	desktops := q.Desktops()
	if len(desktops) == 0 {
		core.Logf(out, "  [skip] desktop location not found")
		core.Logf(out, "  done: 0 shortcuts moved (0 protected kept)")
		return rep
	}

	parent, ok := q.BatchParent()
	if !ok {
		core.Logf(out, "  [skip] no recovery location available")
		core.Logf(out, "  done: 0 shortcuts moved (0 protected kept)")
		return rep
	}
	batch := filepath.Join(parent, q.now().Format(batchLayout))

	for _, desktop := range desktops {
		entries, err := os.ReadDir(desktop)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				core.Logf(out, "  [error] %s: %v", desktop, err)
			}
			continue
		}
		for _, entry := range entries {
			if !entry.Type().IsRegular() {
				continue
			}
			name := entry.Name()
			if q.IsProtected(name) {
				rep.Preserved++
				continue
			}
			if !IsShortcut(name) {
				continue
			}

			if rep.RecoveryDir == "" {
				if err := os.MkdirAll(batch, 0o700); err != nil {
					core.Logf(out, "  [error] cannot create recovery directory: %v", err)
					q.logger.Warn("Recovery directory unavailable", zap.String("dir", batch), zap.Error(err))
					core.Logf(out, "  done: 0 shortcuts moved (%d protected kept)", rep.Preserved)
					return rep
				}
				rep.RecoveryDir = batch
			}

			if err := move(filepath.Join(desktop, name), batch, name); err != nil {
				rep.Failed++
				switch core.Classify(err) {
				case core.KindPermission:
					core.Logf(out, "  [skip] access denied: %s", name)
				case core.KindBusy:
					core.Logf(out, "  [skip] in use: %s", name)
				default:
					core.Logf(out, "  [error] %s: %v", name, err)
				}
				q.logger.Debug("Move failed", zap.String("name", name), zap.Error(err))
				continue
			}
			rep.Moved++
			core.Logf(out, "  moved: %s", name)
		}
	}

	core.Logf(out, "  done: %d shortcuts moved (%d protected kept)", rep.Moved, rep.Preserved)
	if rep.Moved > 0 {
		core.Logf(out, "  [recovery] moved shortcuts are in: %s", rep.RecoveryDir)
	}
	q.logger.Info("Quarantined shortcuts",
		zap.Int("moved", rep.Moved),
		zap.Int("preserved", rep.Preserved),
		zap.Int("failed", rep.Failed),
		zap.String("batch", rep.RecoveryDir))
	return rep
}

// move relocates src into dir under name, adding " (n)" before the
// extension when the user and public desktops hold the same name.
func move(src, dir, name string) error {
	dst := uniqueName(dir, name)
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	if core.IsExpected(err) {
		return err
	}
	// Rename cannot cross volumes.
	if cerr := copyFile(src, dst); cerr != nil {
		_ = os.Remove(dst)
		return errors.Wrapf(cerr, "copy %s", name)
	}
	if rerr := os.Remove(src); rerr != nil {
		_ = os.Remove(dst)
		return rerr
	}
	return nil
}

func uniqueName(dir, name string) string {
	dst := filepath.Join(dir, name)
	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for i := 2; ; i++ {
		if _, err := os.Lstat(dst); os.IsNotExist(err) {
			return dst
		}
		dst = filepath.Join(dir, stem+" ("+strconv.Itoa(i)+")"+ext)
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
