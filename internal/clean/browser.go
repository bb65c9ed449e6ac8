package clean

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/lakshaymaurya-felt/mypcnow/internal/catalog"
	"github.com/lakshaymaurya-felt/mypcnow/internal/core"
)

var (
	chromiumHistoryTables = []string{
		"urls", "visits", "keyword_search_terms", "downloads",
		"downloads_url_chains", "segments", "segment_usage",
	}
	chromiumHistoryFiles = []string{"History-journal", "Visited Links", "Top Sites", "Top Sites-journal"}
	chromiumCacheDirs    = []string{"Cache", "Code Cache", "GPUCache", "Service Worker"}
	downloadTables       = []string{"downloads", "downloads_url_chains"}
)

// chromium describes one Chromium-based browser install.
type chromium struct {
	name    string
	exe     string
	base    []string // under %LOCALAPPDATA%
	history []string
	files   []string // deleted next to History
	caches  []string
	journal bool     // delete Cookies-journal
	extra   []string // cache dirs relative to the User Data base
}

var (
	chrome = chromium{
		name:    "Chrome",
		exe:     "chrome.exe",
		base:    []string{"Google", "Chrome", "User Data"},
		history: chromiumHistoryTables,
		files:   chromiumHistoryFiles,
		caches:  chromiumCacheDirs,
		journal: true,
		extra:   []string{filepath.Join("Default", "Cache", "Cache_Data")},
	}
	edge = chromium{
		name:    "Edge",
		exe:     "msedge.exe",
		base:    []string{"Microsoft", "Edge", "User Data"},
		history: chromiumHistoryTables,
		files:   chromiumHistoryFiles,
		caches:  chromiumCacheDirs,
		journal: true,
	}
	brave = chromium{
		name:    "Brave",
		exe:     "brave.exe",
		base:    []string{"BraveSoftware", "Brave-Browser", "User Data"},
		history: chromiumHistoryTables[:3],
		caches:  chromiumCacheDirs[:3],
	}
)

// Browser cleans Chrome, Edge, Firefox and Brave profiles.
type Browser struct {
	d Deps
}

// NewBrowser creates the browser unit.
func NewBrowser(d Deps) *Browser { return &Browser{d: d} }

func (b *Browser) Category() string { return catalog.Browser }

func (b *Browser) Tasks() map[string]Task {
	return map[string]Task{
		"chrome_history":   b.history(chrome),
		"chrome_cache":     b.cache(chrome),
		"chrome_cookies":   b.cookies(chrome),
		"chrome_downloads": b.downloads(chrome),
		"edge_history":     b.history(edge),
		"edge_cache":       b.cache(edge),
		"edge_cookies":     b.cookies(edge),
		"edge_downloads":   b.downloads(edge),
		"firefox_history":  TaskFunc(b.firefoxHistory),
		"firefox_cache":    TaskFunc(b.firefoxCache),
		"firefox_cookies":  TaskFunc(b.firefoxCookies),
		"brave_history":    b.history(brave),
		"brave_cache":      b.cache(brave),
		"brave_cookies":    b.cookies(brave),
	}
}

// ─── Chromium ────────────────────────────────────────────────────────────────

func (b *Browser) history(c chromium) Task {
	return TaskFunc(func(ctx context.Context, out core.Sink) int {
		core.Logf(out, "[%s] clearing browsing history...", c.name)
		profiles := b.chromiumProfiles(c)
		b.warnIfRunning(ctx, c.name, c.exe, profiles, out)

		count := 0
		for _, profile := range profiles {
			if b.scrub(ctx, filepath.Join(profile, "History"), c.history, out) {
				count++
			}
			for _, name := range c.files {
				b.deleteIfPresent(filepath.Join(profile, name), out)
			}
		}
		core.Logf(out, "  done: %d profiles cleaned", count)
		return count
	})
}

func (b *Browser) cache(c chromium) Task {
	return TaskFunc(func(ctx context.Context, out core.Sink) int {
		core.Logf(out, "[%s] clearing cache...", c.name)
		count := 0
		for _, profile := range b.chromiumProfiles(c) {
			for _, dir := range c.caches {
				count += b.d.Files.ClearDirectoryContents(filepath.Join(profile, dir), out)
			}
		}
		if base, ok := b.chromiumBase(c); ok {
			for _, rel := range c.extra {
				count += b.d.Files.ClearDirectoryContents(filepath.Join(base, rel), out)
			}
		}
		core.Logf(out, "  done: %d items removed", count)
		return count
	})
}

func (b *Browser) cookies(c chromium) Task {
	return TaskFunc(func(ctx context.Context, out core.Sink) int {
		core.Logf(out, "[%s] clearing cookies...", c.name)
		profiles := b.chromiumProfiles(c)
		b.warnIfRunning(ctx, c.name, c.exe, profiles, out)

		count := 0
		for _, profile := range profiles {
			scrubbed := false
			// Newer builds keep cookies under Network.
			for _, db := range []string{
				filepath.Join(profile, "Cookies"),
				filepath.Join(profile, "Network", "Cookies"),
			} {
				if b.scrub(ctx, db, []string{"cookies"}, out) {
					scrubbed = true
				}
				if c.journal {
					b.deleteIfPresent(db+"-journal", out)
				}
			}
			if scrubbed {
				count++
			}
		}
		core.Logf(out, "  done: cookies cleared in %d profiles", count)
		return count
	})
}

func (b *Browser) downloads(c chromium) Task {
	return TaskFunc(func(ctx context.Context, out core.Sink) int {
		core.Logf(out, "[%s] clearing download history...", c.name)
		profiles := b.chromiumProfiles(c)
		b.warnIfRunning(ctx, c.name, c.exe, profiles, out)

		count := 0
		for _, profile := range profiles {
			if b.scrub(ctx, filepath.Join(profile, "History"), downloadTables, out) {
				count++
			}
		}
		core.Logf(out, "  done: download history cleared in %d profiles", count)
		return count
	})
}

func (b *Browser) chromiumBase(c chromium) (string, bool) {
	local, ok := b.d.Paths.LocalAppData()
	if !ok {
		return "", false
	}
	return filepath.Join(append([]string{local}, c.base...)...), true
}

// chromiumProfiles returns the User Data directory itself, every
// "Profile N" directory, and Default, without duplicates.
func (b *Browser) chromiumProfiles(c chromium) []string {
	base, ok := b.chromiumBase(c)
	if !ok {
		return nil
	}
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil
	}

	profiles := []string{base}
	hasDefault := false
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		switch name := e.Name(); {
		case strings.HasPrefix(name, "Profile "):
			profiles = append(profiles, filepath.Join(base, name))
		case name == "Default":
			hasDefault = true
		}
	}
	if hasDefault {
		profiles = append(profiles, filepath.Join(base, "Default"))
	}
	return profiles
}

// ─── Firefox ─────────────────────────────────────────────────────────────────

const firefoxExe = "firefox.exe"

func (b *Browser) firefoxHistory(ctx context.Context, out core.Sink) int {
	core.Logf(out, "[Firefox] clearing browsing history...")
	profiles := b.firefoxProfiles()
	b.warnIfRunning(ctx, "Firefox", firefoxExe, profiles, out)

	count := 0
	for _, profile := range profiles {
		// moz_places keeps rows that are bookmarked or still visited.
		tables := []string{"moz_historyvisits", "moz_inputhistory", "moz_places"}
		if b.scrub(ctx, filepath.Join(profile, "places.sqlite"), tables, out) {
			count++
		}
		b.deleteIfPresent(filepath.Join(profile, "formhistory.sqlite"), out)
	}
	core.Logf(out, "  done: %d profiles cleaned", count)
	return count
}

func (b *Browser) firefoxCache(ctx context.Context, out core.Sink) int {
	core.Logf(out, "[Firefox] clearing cache...")
	count := 0
	if local, ok := b.d.Paths.LocalAppData(); ok {
		base := filepath.Join(local, "Mozilla", "Firefox", "Profiles")
		for _, profile := range subdirs(base) {
			count += b.d.Files.ClearDirectoryContents(filepath.Join(profile, "cache2"), out)
		}
	}
	core.Logf(out, "  done: %d items removed", count)
	return count
}

func (b *Browser) firefoxCookies(ctx context.Context, out core.Sink) int {
	core.Logf(out, "[Firefox] clearing cookies...")
	profiles := b.firefoxProfiles()
	b.warnIfRunning(ctx, "Firefox", firefoxExe, profiles, out)

	count := 0
	for _, profile := range profiles {
		if b.scrub(ctx, filepath.Join(profile, "cookies.sqlite"), []string{"moz_cookies"}, out) {
			count++
		}
	}
	core.Logf(out, "  done: cookies cleared in %d profiles", count)
	return count
}

func (b *Browser) firefoxProfiles() []string {
	roaming, ok := b.d.Paths.AppData()
	if !ok {
		return nil
	}
	return subdirs(filepath.Join(roaming, "Mozilla", "Firefox", "Profiles"))
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

// scrub reports whether the database existed and was scrubbed. The scrubber
// has already reported any other failure.
func (b *Browser) scrub(ctx context.Context, db string, tables []string, out core.Sink) bool {
	_, err := b.d.Scrubber.ScrubTables(ctx, db, tables, out)
	return err == nil
}

func (b *Browser) deleteIfPresent(path string, out core.Sink) {
	_ = b.d.Files.DeleteFile(path, out)
}

// warnIfRunning notes that a running browser will hold its databases
// locked. It only probes when there is a profile to clean.
func (b *Browser) warnIfRunning(ctx context.Context, name, exe string, profiles []string, out core.Sink) {
	if len(profiles) == 0 || b.d.Processes == nil {
		return
	}
	if b.d.Processes.Running(ctx, exe) {
		core.Logf(out, "  [warn] %s is running; locked databases will be skipped", name)
	}
}

// subdirs lists the immediate subdirectories of dir.
func subdirs(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out
}
