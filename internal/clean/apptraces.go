package clean

import (
	"context"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/lakshaymaurya-felt/mypcnow/internal/catalog"
	"github.com/lakshaymaurya-felt/mypcnow/internal/core"
	"github.com/lakshaymaurya-felt/mypcnow/internal/hive"
)

var mruKeys = []string{
	explorerKey + `\RecentDocs`,
	explorerKey + `\ComDlg32\OpenSavePidlMRU`,
	explorerKey + `\ComDlg32\LastVisitedPidlMRU`,
	explorerKey + `\ComDlg32\LastVisitedPidlMRULegacy`,
}

const (
	userAssistKey  = explorerKey + `\UserAssist`
	applicationLog = "Application"
)

// AppTraces cleans MRU lists, UserAssist counters and the Application log.
type AppTraces struct {
	d Deps
}

// NewAppTraces creates the application traces unit.
func NewAppTraces(d Deps) *AppTraces { return &AppTraces{d: d} }

func (u *AppTraces) Category() string { return catalog.AppTraces }

func (u *AppTraces) Tasks() map[string]Task {
	return map[string]Task{
		"recent_docs":    TaskFunc(u.recentDocs),
		"userassist":     TaskFunc(u.userAssist),
		"app_event_logs": TaskFunc(u.eventLog),
	}
}

// recentDocs clears each MRU key's values and deletes every key below it.
func (u *AppTraces) recentDocs(ctx context.Context, out core.Sink) int {
	core.Logf(out, "[Apps] clearing recent document lists...")
	count := 0
	for _, key := range mruKeys {
		n, _ := u.d.Registry.ClearValues(hive.CurrentUser, key, out)
		count += n
		count += u.d.Registry.DeleteSubtree(hive.CurrentUser, key, out)
	}
	core.Logf(out, "  done: %d MRU entries removed", count)
	return count
}

// userAssist clears the Count values under every UserAssist GUID.
func (u *AppTraces) userAssist(ctx context.Context, out core.Sink) int {
	core.Logf(out, "[Apps] clearing UserAssist program usage statistics...")
	guids, err := u.d.Store.SubKeys(hive.CurrentUser, userAssistKey)
	if err != nil {
		switch core.Classify(err) {
		case core.KindNotFound:
			core.Logf(out, "  done: 0 UserAssist GUIDs cleared (no data)")
			return 0
		case core.KindPermission:
			core.Logf(out, "  [skip] insufficient permission: %s", userAssistKey)
		default:
			core.Logf(out, "  [error] UserAssist: %v", err)
		}
		core.Logf(out, "  done: 0 UserAssist GUIDs cleared")
		return 0
	}

	count := 0
	for _, guid := range guids {
		key := hive.Join(hive.Join(userAssistKey, guid), "Count")
		if _, err := u.d.Registry.ClearValues(hive.CurrentUser, key, out); err == nil {
			count++
		}
	}
	core.Logf(out, "  done: %d UserAssist GUIDs cleared", count)
	return count
}

func (u *AppTraces) eventLog(ctx context.Context, out core.Sink) int {
	core.Logf(out, "[Apps] clearing the Application event log...")
	core.Logf(out, "  [warn] this removes records used to diagnose system problems and cannot be undone")
	if !requireAdmin(u.d, out) {
		core.Logf(out, "  done: 0 event logs cleared")
		return 0
	}

	if n, err := u.d.EventLog.Records(ctx, applicationLog); err == nil {
		core.Logf(out, "  %s records in the %s log", humanize.Comma(int64(n)), applicationLog)
	} else {
		u.d.Logger.Debug("Event log record count unavailable", zap.Error(err))
	}

	if err := u.d.EventLog.Clear(ctx, applicationLog); err != nil {
		switch core.Classify(err) {
		case core.KindNotFound:
			core.Logf(out, "  [skip] wevtutil not found")
		case core.KindPermission:
			core.Logf(out, "  [skip] access denied: %s log", applicationLog)
		case core.KindTimeout:
			core.Logf(out, "  [error] %v", err)
			u.d.Logger.Warn("Event log clear timed out", zap.Error(err))
		default:
			core.Logf(out, "  [error] event log: %v", err)
		}
		core.Logf(out, "  done: 0 event logs cleared")
		return 0
	}
	core.Logf(out, "  done: 1 event log cleared")
	return 1
}
