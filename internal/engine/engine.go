// Package engine runs a selection of catalog items through the cleaner units
// and reports log lines and progress to the host.
package engine

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lakshaymaurya-felt/mypcnow/internal/catalog"
	"github.com/lakshaymaurya-felt/mypcnow/internal/clean"
	"github.com/lakshaymaurya-felt/mypcnow/internal/core"
)

// Result totals one run.
type Result struct {
	ItemsProcessed int
	ItemsFailed    int
	Affected       int
	Categories     int
	Elapsed        time.Duration
}

// ElapsedSeconds returns Elapsed in seconds.
func (r Result) ElapsedSeconds() float64 { return r.Elapsed.Seconds() }

// Engine orchestrates cleaner units. A single Engine must not run twice at
// the same time.
type Engine struct {
	units  map[string]clean.Unit
	logger *zap.Logger
	now    func() time.Time
}

// New creates an engine over units, keyed by the category each serves.
func New(units []clean.Unit, logger *zap.Logger) *Engine {
	m := make(map[string]clean.Unit, len(units))
	for _, u := range units {
		m[u.Category()] = u
	}
	return &Engine{
		units:  m,
		logger: logger.Named("engine"),
		now:    time.Now,
	}
}

// Default creates an engine over every unit wired from d.
func Default(d clean.Deps) *Engine {
	return New(clean.Units(d), d.Logger)
}

// ListCategories returns the catalog in run order.
func (e *Engine) ListCategories() []catalog.Category {
	return catalog.Categories()
}

// Run cleans every item in selection. Items are grouped by category and
// categories run sequentially in catalog order. onLog receives every run-log
// line, one call at a time; onProgress receives completed/total after each
// category. Either callback may be nil. Both are called on the goroutine
// that called Run.
//
// Cancelling ctx stops the run before the next category starts; the partial
// result is returned with ctx.Err(). Tasks receive a context without the
// cancellation, so an operation in flight is never cut short. Unknown item
// keys are ignored.
func (e *Engine) Run(ctx context.Context, selection []string, onLog func(string), onProgress func(float64)) (Result, error) {
	start := e.now()
	out := newSink(onLog)
	if onProgress == nil {
		onProgress = func(float64) {}
	}

	items := dedupe(selection)
	groups := e.group(items)

	core.Logf(out, "=== cleanup started (%d items) ===", len(items))
	e.logger.Info("Run started", zap.Int("items", len(items)), zap.Int("categories", len(groups)))

	// Tasks never see the cancellation; a started operation runs to the end.
	taskCtx := context.WithoutCancel(ctx)

	var res Result
	for i, g := range groups {
		if err := ctx.Err(); err != nil {
			res.Elapsed = e.now().Sub(start)
			core.Logf(out, "=== cleanup cancelled ===")
			e.logger.Info("Run cancelled", zap.Int("completed", res.Categories), zap.Int("categories", len(groups)))
			return res, err
		}

		core.Logf(out, "--- %s ---", g.category.Name)
		if u, ok := e.units[g.category.Key]; ok {
			oc := clean.Run(taskCtx, u, g.items, out, e.logger)
			res.ItemsProcessed += oc.Processed
			res.ItemsFailed += oc.Failed
			res.Affected += oc.Affected
		} else {
			e.logger.Warn("No unit for category", zap.String("category", g.category.Key))
		}

		res.Categories++
		onProgress(float64(i+1) / float64(len(groups)))
	}

	res.Elapsed = e.now().Sub(start)
	core.Logf(out, "=== cleanup finished (%.1fs) ===", res.ElapsedSeconds())
	e.logger.Info("Run finished",
		zap.Int("processed", res.ItemsProcessed),
		zap.Int("failed", res.ItemsFailed),
		zap.Int("affected", res.Affected),
		zap.Duration("elapsed", res.Elapsed))
	return res, nil
}

type group struct {
	category catalog.Category
	items    []string
}

// group partitions items by category, in catalog order. Items keep their
// selection order within a category.
func (e *Engine) group(items []string) []group {
	byCategory := make(map[string][]string)
	for _, item := range items {
		key, ok := catalog.CategoryOf(item)
		if !ok {
			e.logger.Debug("Ignoring unknown item", zap.String("item", item))
			continue
		}
		byCategory[key] = append(byCategory[key], item)
	}

	var groups []group
	for _, c := range catalog.Categories() {
		if selected := byCategory[c.Key]; len(selected) > 0 {
			groups = append(groups, group{category: c, items: selected})
		}
	}
	return groups
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if !seen[it] {
			seen[it] = true
			out = append(out, it)
		}
	}
	return out
}

// lockedSink serializes calls to the host's log callback.
type lockedSink struct {
	mu sync.Mutex
	fn func(string)
}

func newSink(fn func(string)) core.Sink {
	if fn == nil {
		return core.Discard
	}
	return &lockedSink{fn: fn}
}

func (s *lockedSink) Log(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fn(line)
}
