package erase

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lakshaymaurya-felt/mypcnow/internal/core"
)

type lines []string

func (l *lines) Log(line string) { *l = append(*l, line) }

func (l lines) contains(sub string) bool {
	for _, line := range l {
		if strings.Contains(line, sub) {
			return true
		}
	}
	return false
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestDeleteFile(t *testing.T) {
	f := NewFiles(zaptest.NewLogger(t), nil)
	dir := t.TempDir()
	path := filepath.Join(dir, "History-journal")
	writeFile(t, path)

	var out lines
	require.NoError(t, f.DeleteFile(path, &out))
	assert.NoFileExists(t, path)
	assert.Empty(t, out)

	err := f.DeleteFile(path, &out)
	require.Error(t, err)
	assert.Equal(t, core.KindNotFound, core.Classify(err))
	assert.Empty(t, out, "a missing file is not reported")
}

func TestDeleteFileReportsUnreadableParent(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("needs POSIX permissions enforced for the current user")
	}
	f := NewFiles(zaptest.NewLogger(t), nil)
	parent := filepath.Join(t.TempDir(), "sealed")
	path := filepath.Join(parent, "Cookies")
	writeFile(t, path)
	require.NoError(t, os.Chmod(parent, 0o000))
	t.Cleanup(func() { _ = os.Chmod(parent, 0o755) })

	var out lines
	err := f.DeleteFile(path, &out)
	require.Error(t, err)
	assert.Equal(t, core.KindPermission, core.Classify(err))
	assert.Equal(t, lines{"  [skip] access denied: Cookies"}, out)
}

func TestDeleteFileRejectsRelativePath(t *testing.T) {
	f := NewFiles(zaptest.NewLogger(t), nil)
	err := f.DeleteFile(filepath.Join("relative", "file.txt"), core.Discard)
	assert.Equal(t, core.KindRejected, core.Classify(err))
}

func TestDeleteFileRefusesDirectory(t *testing.T) {
	f := NewFiles(zaptest.NewLogger(t), nil)
	dir := t.TempDir()
	require.Error(t, f.DeleteFile(dir, core.Discard))
	assert.DirExists(t, dir)
}

func TestClearDirectoryContents(t *testing.T) {
	f := NewFiles(zaptest.NewLogger(t), nil)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.tmp"))
	writeFile(t, filepath.Join(dir, "b.tmp"))
	writeFile(t, filepath.Join(dir, "nested", "deeper", "c.tmp"))

	var out lines
	removed := f.ClearDirectoryContents(dir, &out)
	assert.Equal(t, 3, removed)
	assert.DirExists(t, dir)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Empty(t, out)

	// Second pass over an emptied directory.
	assert.Zero(t, f.ClearDirectoryContents(dir, &out))
}

func TestClearDirectoryContentsIgnoresUnusableInput(t *testing.T) {
	f := NewFiles(zaptest.NewLogger(t), nil)

	tests := []struct {
		name string
		dir  string
	}{
		{"empty", ""},
		{"relative", "some/relative/dir"},
		{"missing", filepath.Join(t.TempDir(), "gone")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out lines
			assert.Zero(t, f.ClearDirectoryContents(tt.dir, &out))
			assert.Empty(t, out)
		})
	}
}

func TestClearDirectoryContentsRefusesProtectedRoot(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "keep.dll"))
	f := NewFiles(zaptest.NewLogger(t), []string{dir})

	var out lines
	assert.Zero(t, f.ClearDirectoryContents(dir, &out))
	assert.FileExists(t, filepath.Join(dir, "keep.dll"))
	assert.True(t, out.contains("protected location"))
}

func TestClearDirectoryContentsRefusesVolumeRoot(t *testing.T) {
	f := NewFiles(zaptest.NewLogger(t), nil)
	root := filepath.VolumeName(t.TempDir()) + string(filepath.Separator)

	var out lines
	assert.Zero(t, f.ClearDirectoryContents(root, &out))
	assert.True(t, out.contains("protected location"))
}

func TestClearDirectoryContentsContinuesPastDeniedEntry(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("needs POSIX permissions enforced for the current user")
	}
	f := NewFiles(zaptest.NewLogger(t), nil)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.tmp"))
	writeFile(t, filepath.Join(dir, "locked", "inner.tmp"))
	writeFile(t, filepath.Join(dir, "z.tmp"))

	locked := filepath.Join(dir, "locked")
	require.NoError(t, os.Chmod(locked, 0o500))
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	var out lines
	removed := f.ClearDirectoryContents(dir, &out)
	assert.Equal(t, 2, removed)
	assert.NoFileExists(t, filepath.Join(dir, "a.tmp"))
	assert.NoFileExists(t, filepath.Join(dir, "z.tmp"))
	assert.True(t, out.contains("[skip] access denied: locked"), "got %v", out)
}

func TestClearDirectoryContentsUnlinksSymlinks(t *testing.T) {
	target := t.TempDir()
	writeFile(t, filepath.Join(target, "precious.txt"))

	dir := t.TempDir()
	if err := os.Symlink(target, filepath.Join(dir, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	f := NewFiles(zaptest.NewLogger(t), nil)
	assert.Equal(t, 1, f.ClearDirectoryContents(dir, core.Discard))
	assert.FileExists(t, filepath.Join(target, "precious.txt"))
}

func TestClearMatching(t *testing.T) {
	f := NewFiles(zaptest.NewLogger(t), nil)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "thumbcache_32.db"))
	writeFile(t, filepath.Join(dir, "iconcache_16.db"))
	writeFile(t, filepath.Join(dir, "ExplorerStartupLog.etl"))

	removed := f.ClearMatching(dir, func(name string) bool {
		return strings.HasPrefix(name, "thumbcache_")
	}, core.Discard)
	assert.Equal(t, 1, removed)
	assert.FileExists(t, filepath.Join(dir, "iconcache_16.db"))
	assert.FileExists(t, filepath.Join(dir, "ExplorerStartupLog.etl"))
}
