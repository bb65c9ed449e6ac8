package clean

import (
	"context"
	"os/exec"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/lakshaymaurya-felt/mypcnow/internal/core"
)

// logNamePattern limits event log names to what wevtutil and WQL accept
// without quoting.
var logNamePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9 _-]*$`)

// systemEventLog clears logs with wevtutil and counts records over WMI.
type systemEventLog struct {
	command string
	timeout time.Duration
	logger  *zap.Logger
}

func newEventLog(timeout time.Duration, logger *zap.Logger) *systemEventLog {
	return &systemEventLog{
		command: "wevtutil",
		timeout: timeout,
		logger:  logger.Named("eventlog"),
	}
}

// Clear runs "wevtutil cl <name>" and waits at most the configured timeout.
func (l *systemEventLog) Clear(ctx context.Context, name string) error {
	if !logNamePattern.MatchString(name) {
		return errors.Mark(errors.Newf("invalid event log name %q", name), core.ErrRejected)
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, l.command, "cl", name)
	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			err = context.DeadlineExceeded
		}
		return l.exitError(err, output)
	}
	l.logger.Debug("Cleared event log", zap.String("log", name))
	return nil
}

// exitError wraps an exec failure with context. Exit code 5 is wevtutil's
// access-denied status.
func (l *systemEventLog) exitError(err error, output []byte) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.Mark(errors.Newf("%s timed out after %s", l.command, l.timeout), core.ErrTimeout)
	}
	if errors.Is(err, exec.ErrNotFound) {
		return errors.Mark(errors.Wrapf(err, "%s not available", l.command), core.ErrNotFound)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code == 5 {
			return errors.Mark(errors.Newf("%s: access denied (exit code 5)", l.command), core.ErrPermission)
		}
		out := strings.TrimSpace(string(output))
		if len(out) > 200 {
			out = out[:200]
			for len(out) > 0 && !utf8.ValidString(out) {
				out = out[:len(out)-1]
			}
			out += "..."
		}
		if out != "" {
			return errors.Newf("%s failed (exit code %d): %s", l.command, code, out)
		}
		return errors.Newf("%s failed (exit code %d)", l.command, code)
	}
	return errors.Wrapf(err, "%s error", l.command)
}
