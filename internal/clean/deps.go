package clean

import (
	"context"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"go.uber.org/zap"

	"github.com/lakshaymaurya-felt/mypcnow/internal/config"
	"github.com/lakshaymaurya-felt/mypcnow/internal/core"
	"github.com/lakshaymaurya-felt/mypcnow/internal/erase"
	"github.com/lakshaymaurya-felt/mypcnow/internal/hive"
	"github.com/lakshaymaurya-felt/mypcnow/internal/quarantine"
)

// ProcessProbe reports whether a program is running.
type ProcessProbe interface {
	Running(ctx context.Context, names ...string) bool
}

// Shell wraps the desktop shell calls the system unit makes.
type Shell interface {
	// RecycleBin returns the total size and item count of the Recycle Bin.
	RecycleBin() (size int64, items int64, err error)

	// EmptyRecycleBin empties the Recycle Bin on every drive without
	// confirmation, progress UI or sound.
	EmptyRecycleBin() error

	// ClearClipboard empties the clipboard.
	ClearClipboard() error
}

// EventLog reads and clears a Windows event log.
type EventLog interface {
	Records(ctx context.Context, name string) (uint64, error)
	Clear(ctx context.Context, name string) error
}

// Deps is everything a unit needs. Units never reach the OS except through
// these fields.
type Deps struct {
	Env        core.Env
	Paths      *config.Resolver
	Store      hive.Store
	Files      *erase.Files
	Registry   *erase.Registry
	Scrubber   *erase.Scrubber
	Quarantine *quarantine.Quarantine
	Processes  ProcessProbe
	Shell      Shell
	EventLog   EventLog
	AppName    string
	Logger     *zap.Logger
}

// NewDeps wires the erasers and OS adapters from env, store and settings.
func NewDeps(env core.Env, store hive.Store, settings config.Settings, logger *zap.Logger) Deps {
	paths := config.NewResolver(env)
	return Deps{
		Env:        env,
		Paths:      paths,
		Store:      store,
		Files:      erase.NewFiles(logger, paths.NeverClearPaths()),
		Registry:   erase.NewRegistry(store, logger),
		Scrubber:   erase.NewScrubber(logger),
		Quarantine: quarantine.New(paths, settings.AppName, settings.ProtectedShortcuts, logger),
		Processes:  processProbe{},
		Shell:      systemShell{},
		EventLog:   newEventLog(settings.ExecTimeout, logger),
		AppName:    settings.AppName,
		Logger:     logger,
	}
}

// ─── Process Probe ───────────────────────────────────────────────────────────

// processProbeTimeout bounds a process table walk.
const processProbeTimeout = 5 * time.Second

type processProbe struct{}

// Running reports whether any process has one of names as its executable
// name. Names compare case-insensitively with any ".exe" suffix ignored. A
// failing process listing reports false.
func (processProbe) Running(ctx context.Context, names ...string) bool {
	ctx, cancel := context.WithTimeout(ctx, processProbeTimeout)
	defer cancel()

	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return false
	}
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil {
			continue
		}
		for _, want := range names {
			if sameExe(name, want) {
				return true
			}
		}
	}
	return false
}

func sameExe(a, b string) bool {
	trim := func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimSuffix(s, ".exe")
	}
	return trim(a) == trim(b)
}
