package clean

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/lakshaymaurya-felt/mypcnow/internal/core"
)

func TestEventLogClearRejectsOddNames(t *testing.T) {
	l := newEventLog(time.Second, zaptest.NewLogger(t))
	for _, name := range []string{"", "Application & calc", "../System", "App'lication"} {
		err := l.Clear(context.Background(), name)
		assert.Equal(t, core.KindRejected, core.Classify(err), name)
	}
}

func TestEventLogClearMissingTool(t *testing.T) {
	l := newEventLog(time.Second, zaptest.NewLogger(t))
	l.command = "mypcnow-no-such-tool"

	err := l.Clear(context.Background(), "Application")
	assert.Equal(t, core.KindNotFound, core.Classify(err))
}

func TestEventLogClearTimesOut(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script")
	}
	script := filepath.Join(t.TempDir(), "wevtutil")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\nexec sleep 3\n"), 0o755))

	l := newEventLog(200*time.Millisecond, zaptest.NewLogger(t))
	l.command = script

	start := time.Now()
	err := l.Clear(context.Background(), "Application")
	require.Error(t, err)
	assert.Equal(t, core.KindTimeout, core.Classify(err))
	assert.Contains(t, err.Error(), "timed out after 200ms")
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestEventLogClearExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a shell script")
	}
	dir := t.TempDir()
	denied := filepath.Join(dir, "denied")
	require.NoError(t, os.WriteFile(denied, []byte("#!/bin/sh\nexit 5\n"), 0o755))
	broken := filepath.Join(dir, "broken")
	require.NoError(t, os.WriteFile(broken, []byte("#!/bin/sh\necho channel busy\nexit 2\n"), 0o755))

	l := newEventLog(time.Second, zaptest.NewLogger(t))

	l.command = denied
	assert.Equal(t, core.KindPermission, core.Classify(l.Clear(context.Background(), "Application")))

	l.command = broken
	err := l.Clear(context.Background(), "Application")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exit code 2")
	assert.Contains(t, err.Error(), "channel busy")
}

func TestSameExe(t *testing.T) {
	assert.True(t, sameExe("chrome.exe", "chrome.exe"))
	assert.True(t, sameExe("MSEDGE.EXE", "msedge.exe"))
	assert.True(t, sameExe("firefox", "firefox.exe"))
	assert.False(t, sameExe("chromedriver.exe", "chrome.exe"))
}
