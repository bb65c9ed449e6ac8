package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lakshaymaurya-felt/mypcnow/internal/config"
	"github.com/lakshaymaurya-felt/mypcnow/internal/logging"
)

var (
	// Global flags
	debug     bool
	configDir string

	// Loaded in PersistentPreRunE
	settings config.Settings

	// Version info populated from main
	appVersion = "dev"
	appCommit  = "none"
	appDate    = "unknown"
)

// SetVersionInfo sets build-time version information.
func SetVersionInfo(version, commit, date string) {
	appVersion = version
	appCommit = commit
	appDate = date
}

var rootCmd = &cobra.Command{
	Use:   "mypcnow",
	Short: "Erase privacy traces from your Windows PC",
	Long: `MyPcNow - Erase privacy traces from your Windows PC.

Clears browser history, caches and cookies, Windows activity and search
history, temporary files, application usage traces, and moves loose
desktop shortcuts into a recovery folder.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.LoadSettings(configDir)
		if err != nil {
			return err
		}
		settings = s
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Show detailed diagnostic logs")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", config.DefaultConfigDir(), "Directory holding config.yaml")

	// Register all subcommands
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// newLogger builds the diagnostics logger writing to w.
func newLogger(w io.Writer) (*zap.Logger, error) {
	logger, err := logging.New(logging.Options{
		Level:  settings.LogLevel,
		Format: settings.LogFormat,
		Debug:  debug,
		Output: w,
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return logger.With(zap.String("version", appVersion)), nil
}
