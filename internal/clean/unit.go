// Package clean implements the cleaner units. Each unit owns one catalog
// category and maps every item key in it to a Task.
package clean

import (
	"context"
	"runtime/debug"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/lakshaymaurya-felt/mypcnow/internal/core"
)

// Task is one cleaning operation. It writes its own header and done lines to
// out and returns the number of entities it affected. Expected failures are
// reported to out, never returned.
type Task interface {
	Execute(ctx context.Context, out core.Sink) int
}

// TaskFunc adapts a function to a Task.
type TaskFunc func(ctx context.Context, out core.Sink) int

func (f TaskFunc) Execute(ctx context.Context, out core.Sink) int { return f(ctx, out) }

// Unit is the cleaner for one catalog category.
type Unit interface {
	// Category returns the catalog key this unit serves.
	Category() string

	// Tasks returns the dispatch table from item key to operation.
	Tasks() map[string]Task
}

// Outcome totals one Run.
type Outcome struct {
	Processed int
	Failed    int
	Affected  int
}

// Run executes the tasks of u named by keys, in order. Keys the unit does
// not know are skipped. A panicking task is recovered, counted as failed and
// closed with a done line of 0; the remaining keys still run.
func Run(ctx context.Context, u Unit, keys []string, out core.Sink, logger *zap.Logger) Outcome {
	var oc Outcome
	tasks := u.Tasks()
	for _, key := range keys {
		task, ok := tasks[key]
		if !ok {
			logger.Debug("No task for item", zap.String("category", u.Category()), zap.String("item", key))
			continue
		}
		n, stack, err := execute(ctx, task, out)
		if err != nil {
			oc.Failed++
			core.Logf(out, "  [error] %s: %v", key, err)
			core.Logf(out, "  done: 0 (failed)")
			logger.Warn("Task panicked",
				zap.String("category", u.Category()),
				zap.String("item", key),
				zap.Error(err),
				zap.ByteString("stack", stack))
			continue
		}
		oc.Processed++
		oc.Affected += n
	}
	return oc
}

// execute runs task, converting a panic into an error and its stack.
func execute(ctx context.Context, task Task, out core.Sink) (n int, stack []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Newf("unexpected failure: %v", r)
			stack = debug.Stack()
		}
	}()
	return task.Execute(ctx, out), nil, nil
}
