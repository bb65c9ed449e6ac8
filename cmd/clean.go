package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lakshaymaurya-felt/mypcnow/internal/catalog"
	"github.com/lakshaymaurya-felt/mypcnow/internal/clean"
	"github.com/lakshaymaurya-felt/mypcnow/internal/core"
	"github.com/lakshaymaurya-felt/mypcnow/internal/engine"
	"github.com/lakshaymaurya-felt/mypcnow/internal/hive"
	"github.com/lakshaymaurya-felt/mypcnow/internal/logging"
	"github.com/lakshaymaurya-felt/mypcnow/internal/ui"
)

var (
	cleanAll        bool
	cleanPlain      bool
	cleanCategories []string
)

var cleanCmd = &cobra.Command{
	Use:   "clean [item...]",
	Short: "Erase the selected privacy traces",
	Long: `Erase the selected privacy traces. Items are chosen by key (see 'mypcnow list'),
by category with --category, or all at once with --all.`,
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return catalog.ItemKeys(), cobra.ShellCompDirectiveNoFileComp
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		selection, err := resolveSelection(args, cleanCategories, cleanAll)
		if err != nil {
			return err
		}

		interactive := !cleanPlain && isTerminal(os.Stdout)
		if interactive {
			return runInteractive(selection)
		}
		return runPlain(cmd.OutOrStdout(), selection)
	},
}

func init() {
	cleanCmd.Flags().BoolVar(&cleanAll, "all", false, "Clean every item")
	cleanCmd.Flags().BoolVar(&cleanPlain, "plain", false, "Print log lines instead of the interactive view")
	cleanCmd.Flags().StringSliceVar(&cleanCategories, "category", nil, "Clean every item of a category (repeatable)")
	_ = cleanCmd.RegisterFlagCompletionFunc("category", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var keys []string
		for _, c := range catalog.Categories() {
			keys = append(keys, c.Key)
		}
		return keys, cobra.ShellCompDirectiveNoFileComp
	})
}

// resolveSelection validates item and category keys and returns the items
// to clean.
func resolveSelection(items, categories []string, all bool) ([]string, error) {
	if all {
		return catalog.ItemKeys(), nil
	}

	var selection, unknown []string
	for _, key := range items {
		if _, ok := catalog.Lookup(key); !ok {
			unknown = append(unknown, key)
			continue
		}
		selection = append(selection, key)
	}
	if len(unknown) > 0 {
		return nil, fmt.Errorf("unknown item %s; valid items: %s",
			strings.Join(unknown, ", "), strings.Join(catalog.ItemKeys(), ", "))
	}

	for _, key := range categories {
		c, ok := catalog.Find(key)
		if !ok {
			var valid []string
			for _, c := range catalog.Categories() {
				valid = append(valid, c.Key)
			}
			sort.Strings(valid)
			return nil, fmt.Errorf("unknown category %q; valid categories: %s", key, strings.Join(valid, ", "))
		}
		for _, it := range c.Items {
			selection = append(selection, it.Key)
		}
	}

	if len(selection) == 0 {
		return nil, fmt.Errorf("nothing selected; pass item keys, --category, or --all")
	}
	return selection, nil
}

// adminNotice returns the selected items that will be skipped without
// elevation.
func adminNotice(selection []string, admin bool) []string {
	if admin {
		return nil
	}
	var skipped []string
	for _, key := range selection {
		if it, ok := catalog.Lookup(key); ok && it.RequiresAdmin {
			skipped = append(skipped, key)
		}
	}
	return skipped
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func newEngine(logger *zap.Logger) *engine.Engine {
	return engine.Default(clean.NewDeps(core.OSEnv{}, hive.System(), settings, logger))
}

// ─── Plain Output ────────────────────────────────────────────────────────────

func runPlain(out io.Writer, selection []string) error {
	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if skipped := adminNotice(selection, core.OSEnv{}.IsAdmin()); len(skipped) > 0 {
		fmt.Fprintf(out, "note: not elevated; %s will be skipped\n", strings.Join(skipped, ", "))
	}

	res, err := newEngine(logger).Run(ctx, selection,
		func(line string) { fmt.Fprintln(out, line) },
		nil)

	fmt.Fprintf(out, "%s items processed, %s failed, %s entries affected\n",
		humanize.Comma(int64(res.ItemsProcessed)),
		humanize.Comma(int64(res.ItemsFailed)),
		humanize.Comma(int64(res.Affected)))
	if err != nil {
		return fmt.Errorf("cleanup stopped: %w", err)
	}
	return nil
}

// ─── Interactive Output ──────────────────────────────────────────────────────

// runInteractive drives the run view. Diagnostics go to the log file next
// to the config, since the view owns the terminal.
func runInteractive(selection []string) error {
	var diag io.Writer = io.Discard
	if f, err := logging.OpenFile(configDir); err == nil {
		defer f.Close()
		diag = f
	}
	logger, err := newLogger(diag)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	title := fmt.Sprintf("Cleaning %d items", len(selection))
	p := tea.NewProgram(ui.NewRunModel(title, cancel))

	eng := newEngine(logger)
	go func() {
		if skipped := adminNotice(selection, core.OSEnv{}.IsAdmin()); len(skipped) > 0 {
			p.Send(ui.LogMsg("  [warn] not elevated; skipping " + strings.Join(skipped, ", ")))
		}
		res, err := eng.Run(ctx, selection,
			func(line string) { p.Send(ui.LogMsg(line)) },
			func(frac float64) { p.Send(ui.ProgressMsg(frac)) })
		p.Send(ui.DoneMsg{
			Processed: res.ItemsProcessed,
			Failed:    res.ItemsFailed,
			Affected:  res.Affected,
			Elapsed:   res.Elapsed,
			Err:       err,
		})
	}()

	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run view: %w", err)
	}
	if m, ok := final.(ui.RunModel); ok && m.Done != nil && m.Done.Err != nil {
		return fmt.Errorf("cleanup stopped: %w", m.Done.Err)
	}
	return nil
}
