package clean

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/lakshaymaurya-felt/mypcnow/internal/catalog"
	"github.com/lakshaymaurya-felt/mypcnow/internal/core"
	"github.com/lakshaymaurya-felt/mypcnow/internal/hive"
)

const (
	explorerKey   = `Software\Microsoft\Windows\CurrentVersion\Explorer`
	searchKey     = `Software\Microsoft\Windows\CurrentVersion\Search\Flighting`
	runMRUKey     = explorerKey + `\RunMRU`
	typedPathsKey = explorerKey + `\TypedPaths`
)

// Activity cleans Windows search, timeline, recent-item and jump-list traces.
type Activity struct {
	d Deps
}

// NewActivity creates the Windows activity unit.
func NewActivity(d Deps) *Activity { return &Activity{d: d} }

func (a *Activity) Category() string { return catalog.WindowsActivity }

func (a *Activity) Tasks() map[string]Task {
	return map[string]Task{
		"search_history":    TaskFunc(a.searchHistory),
		"activity_timeline": TaskFunc(a.timeline),
		"recent_files":      TaskFunc(a.recentFiles),
		"jump_lists":        TaskFunc(a.jumpLists),
		"run_history":       a.registryHistory("Run dialog", runMRUKey),
		"explorer_history":  a.registryHistory("Explorer address bar", typedPathsKey),
	}
}

// searchHistory removes the Flighting history values and the device search
// cache. Search settings are left alone.
func (a *Activity) searchHistory(ctx context.Context, out core.Sink) int {
	core.Logf(out, "[Windows] clearing search history...")
	count, _ := a.d.Registry.ClearValues(hive.CurrentUser, searchKey, out)

	if local, ok := a.d.Paths.LocalAppData(); ok {
		cache := filepath.Join(local, "Packages", "Microsoft.Windows.Search_cw5n1h2txyewy",
			"LocalState", "DeviceSearchCache")
		count += a.d.Files.ClearDirectoryContents(cache, out)
	}
	core.Logf(out, "  done: %d search history entries removed", count)
	return count
}

func (a *Activity) timeline(ctx context.Context, out core.Sink) int {
	core.Logf(out, "[Windows] clearing activity timeline...")
	local, ok := a.d.Paths.LocalAppData()
	if !ok {
		core.Logf(out, "  [skip] LOCALAPPDATA is not set")
		core.Logf(out, "  done: 0 items removed")
		return 0
	}

	count := 0
	for _, dir := range subdirs(filepath.Join(local, "ConnectedDevicesPlatform")) {
		count += a.d.Files.ClearMatching(dir, isActivitiesCache, out)
	}
	core.Logf(out, "  done: %d items removed", count)
	return count
}

func isActivitiesCache(name string) bool {
	if !strings.HasPrefix(name, "ActivitiesCache") {
		return false
	}
	for _, ext := range []string{".db", ".db-wal", ".db-shm"} {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// recentFiles clears the Recent folder except the jump-list stores, which
// jump_lists owns.
func (a *Activity) recentFiles(ctx context.Context, out core.Sink) int {
	core.Logf(out, "[Windows] clearing recent files list...")
	recent, ok := a.recentDir()
	if !ok {
		core.Logf(out, "  [skip] APPDATA is not set")
		core.Logf(out, "  done: 0 recent items removed")
		return 0
	}

	count := a.d.Files.ClearMatching(recent, func(name string) bool {
		switch strings.ToLower(name) {
		case "automaticdestinations", "customdestinations":
			return false
		}
		return true
	}, out)
	core.Logf(out, "  done: %d recent items removed", count)
	return count
}

func (a *Activity) jumpLists(ctx context.Context, out core.Sink) int {
	core.Logf(out, "[Windows] clearing jump lists...")
	recent, ok := a.recentDir()
	if !ok {
		core.Logf(out, "  [skip] APPDATA is not set")
		core.Logf(out, "  done: 0 jump lists removed")
		return 0
	}

	count := 0
	for _, name := range []string{"AutomaticDestinations", "CustomDestinations"} {
		count += a.d.Files.ClearDirectoryContents(filepath.Join(recent, name), out)
	}
	core.Logf(out, "  done: %d jump lists removed", count)
	return count
}

// registryHistory clears every value under an MRU-style key.
func (a *Activity) registryHistory(label, key string) Task {
	return TaskFunc(func(ctx context.Context, out core.Sink) int {
		core.Logf(out, "[Windows] clearing %s history...", label)
		n, err := a.d.Registry.ClearValues(hive.CurrentUser, key, out)
		if core.Classify(err) == core.KindNotFound {
			core.Logf(out, "  done: 0 entries removed (nothing to delete)")
			return 0
		}
		core.Logf(out, "  done: %d entries removed", n)
		return n
	})
}

func (a *Activity) recentDir() (string, bool) {
	roaming, ok := a.d.Paths.AppData()
	if !ok {
		return "", false
	}
	return filepath.Join(roaming, "Microsoft", "Windows", "Recent"), true
}
