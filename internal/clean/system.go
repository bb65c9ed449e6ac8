package clean

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/lakshaymaurya-felt/mypcnow/internal/catalog"
	"github.com/lakshaymaurya-felt/mypcnow/internal/core"
)

// System cleans temporary files, caches, the Recycle Bin and the clipboard.
type System struct {
	d Deps
}

// NewSystem creates the system traces unit.
func NewSystem(d Deps) *System { return &System{d: d} }

func (s *System) Category() string { return catalog.SystemTraces }

func (s *System) Tasks() map[string]Task {
	return map[string]Task{
		"temp_files":      TaskFunc(s.tempFiles),
		"windows_temp":    TaskFunc(s.windowsTemp),
		"prefetch":        TaskFunc(s.prefetch),
		"thumbnail_cache": TaskFunc(s.thumbnails),
		"recycle_bin":     TaskFunc(s.recycleBin),
		"clipboard":       TaskFunc(s.clipboard),
	}
}

// tempFiles clears %TEMP% but keeps earlier shortcut recovery batches.
func (s *System) tempFiles(ctx context.Context, out core.Sink) int {
	core.Logf(out, "[System] clearing user temporary files...")
	temp, ok := s.d.Paths.Temp()
	if !ok {
		core.Logf(out, "  [skip] TEMP is not set")
		core.Logf(out, "  done: 0 temporary files removed")
		return 0
	}

	recovery := strings.ToLower(s.d.AppName + "_deleted_shortcuts")
	count := s.d.Files.ClearMatching(temp, func(name string) bool {
		return strings.ToLower(name) != recovery
	}, out)
	core.Logf(out, "  done: %d temporary files removed", count)
	return count
}

func (s *System) windowsTemp(ctx context.Context, out core.Sink) int {
	core.Logf(out, "[System] clearing Windows temporary files...")
	root, ok := s.d.Paths.SystemRoot()
	if !ok {
		core.Logf(out, "  [skip] Windows directory could not be resolved")
		core.Logf(out, "  done: 0 Windows temporary files removed")
		return 0
	}
	count := s.d.Files.ClearDirectoryContents(filepath.Join(root, "Temp"), out)
	core.Logf(out, "  done: %d Windows temporary files removed", count)
	return count
}

func (s *System) prefetch(ctx context.Context, out core.Sink) int {
	core.Logf(out, "[System] clearing prefetch files...")
	core.Logf(out, "  [warn] the next restart and program launches may be slower")
	if !requireAdmin(s.d, out) {
		core.Logf(out, "  done: 0 prefetch files removed")
		return 0
	}
	root, ok := s.d.Paths.SystemRoot()
	if !ok {
		core.Logf(out, "  [skip] Windows directory could not be resolved")
		core.Logf(out, "  done: 0 prefetch files removed")
		return 0
	}
	count := s.d.Files.ClearDirectoryContents(filepath.Join(root, "Prefetch"), out)
	core.Logf(out, "  done: %d prefetch files removed", count)
	return count
}

func (s *System) thumbnails(ctx context.Context, out core.Sink) int {
	core.Logf(out, "[System] clearing thumbnail cache...")
	local, ok := s.d.Paths.LocalAppData()
	if !ok {
		core.Logf(out, "  [skip] LOCALAPPDATA is not set")
		core.Logf(out, "  done: 0 thumbnail cache files removed")
		return 0
	}
	if s.d.Processes != nil && s.d.Processes.Running(ctx, "explorer.exe") {
		core.Logf(out, "  [warn] Explorer is running; cache files in use will be skipped")
	}

	dir := filepath.Join(local, "Microsoft", "Windows", "Explorer")
	count := s.d.Files.ClearMatching(dir, func(name string) bool {
		return strings.HasPrefix(name, "thumbcache_") || strings.HasPrefix(name, "iconcache_")
	}, out)
	core.Logf(out, "  done: %d thumbnail cache files removed", count)
	return count
}

// recycleBin is best effort: a shell failure is logged and the item still
// completes.
func (s *System) recycleBin(ctx context.Context, out core.Sink) int {
	core.Logf(out, "[System] emptying the Recycle Bin...")
	size, items, qerr := s.d.Shell.RecycleBin()
	if qerr != nil {
		s.d.Logger.Debug("Recycle Bin query failed", zap.Error(qerr))
	}
	if err := s.d.Shell.EmptyRecycleBin(); err != nil {
		core.Logf(out, "  [error] recycle bin: %v", err)
		core.Logf(out, "  done: 0 items removed")
		return 0
	}
	if qerr != nil {
		core.Logf(out, "  done: Recycle Bin emptied (0 items counted)")
		return 0
	}
	core.Logf(out, "  done: %s items removed (%s freed)", humanize.Comma(items), humanize.Bytes(uint64(size)))
	return int(items)
}

func (s *System) clipboard(ctx context.Context, out core.Sink) int {
	core.Logf(out, "[System] clearing clipboard...")
	if err := s.d.Shell.ClearClipboard(); err != nil {
		core.Logf(out, "  [error] clipboard: %v", err)
		core.Logf(out, "  done: 0 clipboards cleared")
		return 0
	}
	core.Logf(out, "  done: 1 clipboard cleared")
	return 1
}

// requireAdmin reports whether the process is elevated, logging a skip if
// it is not.
func requireAdmin(d Deps, out core.Sink) bool {
	if d.Env.IsAdmin() {
		return true
	}
	core.Logf(out, "  [skip] administrator rights required")
	return false
}
