package quarantine

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lakshaymaurya-felt/mypcnow/internal/config"
	"github.com/lakshaymaurya-felt/mypcnow/internal/core"
)

type lines []string

func (l *lines) Log(line string) { *l = append(*l, line) }

type fixture struct {
	profile string
	public  string
	temp    string
	q       *Quarantine
}

func newFixture(t *testing.T, extra ...string) *fixture {
	t.Helper()
	root := t.TempDir()
	f := &fixture{
		profile: filepath.Join(root, "Users", "alice"),
		public:  filepath.Join(root, "Users", "Public"),
		temp:    filepath.Join(root, "Temp"),
	}
	for _, dir := range []string{
		filepath.Join(f.profile, "Desktop"),
		filepath.Join(f.public, "Desktop"),
		f.temp,
	} {
		require.NoError(t, os.MkdirAll(dir, 0o755))
	}
	env := core.MapEnv{Vars: map[string]string{
		"USERPROFILE": f.profile,
		"PUBLIC":      f.public,
		"TEMP":        f.temp,
	}}
	f.q = New(config.NewResolver(env), "MyPcNow", extra, zaptest.NewLogger(t))
	f.q.now = func() time.Time { return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC) }
	return f
}

func touch(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644))
	}
}

func names(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var out []string
	for _, e := range entries {
		out = append(out, e.Name())
	}
	sort.Strings(out)
	return out
}

func TestRunMovesOnlyUserShortcuts(t *testing.T) {
	f := newFixture(t)
	desktop := filepath.Join(f.profile, "Desktop")
	touch(t, desktop, "desktop.ini", "This PC.lnk", "MyApp.lnk", "notes.txt")

	var out lines
	rep := f.q.Run(&out)

	assert.Equal(t, 1, rep.Moved)
	assert.Equal(t, 2, rep.Preserved)
	assert.Zero(t, rep.Failed)

	want := filepath.Join(f.temp, "MyPcNow_deleted_shortcuts", "20260314_092653")
	assert.Equal(t, want, rep.RecoveryDir)
	assert.Equal(t, []string{"MyApp.lnk"}, names(t, rep.RecoveryDir))
	assert.Equal(t, []string{"This PC.lnk", "desktop.ini", "notes.txt"}, names(t, desktop))

	assert.Contains(t, out, "  moved: MyApp.lnk")
	assert.Contains(t, out, "  done: 1 shortcuts moved (2 protected kept)")
	assert.Contains(t, out, "  [recovery] moved shortcuts are in: "+want)
}

func TestRunCoversPublicDesktop(t *testing.T) {
	f := newFixture(t)
	touch(t, filepath.Join(f.profile, "Desktop"), "Tool.url")
	touch(t, filepath.Join(f.public, "Desktop"), "Microsoft Edge.lnk", "Tool.url", "Game.LNK")

	rep := f.q.Run(core.Discard)

	assert.Equal(t, 3, rep.Moved)
	assert.Equal(t, 1, rep.Preserved)
	assert.Equal(t, []string{"Game.LNK", "Tool (2).url", "Tool.url"}, names(t, rep.RecoveryDir))
}

func TestRunWithNothingToMove(t *testing.T) {
	f := newFixture(t)
	touch(t, filepath.Join(f.profile, "Desktop"), "Recycle Bin.lnk")

	var out lines
	rep := f.q.Run(&out)

	assert.Zero(t, rep.Moved)
	assert.Empty(t, rep.RecoveryDir)
	assert.NoDirExists(t, filepath.Join(f.temp, "MyPcNow_deleted_shortcuts"))
	assert.Equal(t, lines{"  done: 0 shortcuts moved (1 protected kept)"}, out)
}

func TestRunTwiceIsIdempotent(t *testing.T) {
	f := newFixture(t)
	touch(t, filepath.Join(f.profile, "Desktop"), "MyApp.lnk")

	first := f.q.Run(core.Discard)
	require.Equal(t, 1, first.Moved)

	second := f.q.Run(core.Discard)
	assert.Zero(t, second.Moved)
	assert.Zero(t, second.Failed)
}

func TestRunHonoursExtraProtectedNames(t *testing.T) {
	f := newFixture(t, "  Company Portal.LNK ")
	desktop := filepath.Join(f.profile, "Desktop")
	touch(t, desktop, "Company Portal.lnk", "Other.lnk")

	rep := f.q.Run(core.Discard)
	assert.Equal(t, 1, rep.Moved)
	assert.Equal(t, 1, rep.Preserved)
	assert.Equal(t, []string{"Company Portal.lnk"}, names(t, desktop))
}

func TestRunIgnoresDirectories(t *testing.T) {
	f := newFixture(t)
	desktop := filepath.Join(f.profile, "Desktop")
	require.NoError(t, os.Mkdir(filepath.Join(desktop, "Folder.lnk"), 0o755))

	rep := f.q.Run(core.Discard)
	assert.Zero(t, rep.Moved)
	assert.DirExists(t, filepath.Join(desktop, "Folder.lnk"))
}

func TestRunWithoutDesktops(t *testing.T) {
	q := New(config.NewResolver(core.MapEnv{}), "MyPcNow", nil, zaptest.NewLogger(t))

	var out lines
	rep := q.Run(&out)
	assert.Zero(t, rep.Moved)
	require.Len(t, out, 2)
	assert.True(t, strings.HasPrefix(out[1], "  done:"))
}

func TestRecoveryFallsBackToHome(t *testing.T) {
	home := t.TempDir()
	q := New(config.NewResolver(core.MapEnv{Home: home}), "MyPcNow", nil, zaptest.NewLogger(t))

	parent, ok := q.BatchParent()
	require.True(t, ok)
	assert.Equal(t, filepath.Join(home, ".MyPcNow_recovery", "MyPcNow_deleted_shortcuts"), parent)
}

func TestProtectedNamesAreLowerCase(t *testing.T) {
	for name := range ProtectedNames {
		assert.Equal(t, strings.ToLower(name), name)
	}
}

func TestIsShortcut(t *testing.T) {
	assert.True(t, IsShortcut("a.lnk"))
	assert.True(t, IsShortcut("a.URL"))
	assert.False(t, IsShortcut("a.txt"))
	assert.False(t, IsShortcut("lnk"))
}
