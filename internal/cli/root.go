// Package cli implements the chronolog CLI commands.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/julesjewels-ai/chronolog-memory-augmentation/internal/config"
	"github.com/julesjewels-ai/chronolog-memory-augmentation/internal/logging"
	"github.com/julesjewels-ai/chronolog-memory-augmentation/internal/store"
)

// Version is reported by --version.
const Version = "0.1.0-mvp"

var (
	dbPath     string
	configPath string
	formatFlag string
	verbose    bool

	cfg    = config.DefaultConfig()
	logger = zap.NewNop()
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:           "chronolog",
	Short:         "ChronoLog: Context-Aware Memory Augmentation",
	Long:          "Records activity into a local SQLite database and answers questions from it by keyword matching.",
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		l, err := logging.New(cfg.Logging, verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: db_path from config, else chronolog.db)")
	RootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	RootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "text", "Output format: text or json")
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := RootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if cfg.DBPath != "" {
		return cfg.DBPath
	}
	return store.DefaultPath
}

func openStore() (*store.SQLiteStore, error) {
	return store.NewSQLiteStore(getDBPath(), store.WithLogger(logger))
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return nil
}
