// Command resumectl runs the extraction pipeline and service chores from a shell.
package main

import (
	"errors"
	"os"

	"github.com/phuslu/log"
	"github.com/spf13/cobra"

	"github.com/artem13815/hr/ingest/pkg/config"
	"github.com/artem13815/hr/ingest/pkg/logging"
)

var (
	logLevel string
	logger   *log.Logger
)

var rootCmd = &cobra.Command{
	Use:           "resumectl",
	Short:         "Resume ingestion tooling",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.New(logLevel, logging.FormatConsole, os.Stderr)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level (trace, debug, info, warn, error)")
	rootCmd.AddCommand(parseCmd, migrateCmd, tokenCmd, versionCmd)
}

// loadConfig is used by commands that talk to the service backends.
func loadConfig() (config.Config, error) {
	return config.Load()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, errReported) {
			os.Exit(1)
		}
		if logger == nil {
			logger = logging.New("error", logging.FormatConsole, os.Stderr)
		}
		logger.Error().Err(err).Msg("resumectl.failed")
		os.Exit(1)
	}
}
