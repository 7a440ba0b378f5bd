// Package cli implements the taskplan command line interface. Commands run
// the scheduling engine in-process and use a local SQLite database for saved
// runs.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/me/taskplan/internal/config"
	"github.com/me/taskplan/internal/logging"
	"github.com/me/taskplan/internal/policy"
	"github.com/me/taskplan/internal/store"
	"github.com/spf13/cobra"
)

var (
	flagDB        string
	flagDebug     bool
	flagLogLevel  string
	flagLogFormat string

	logger *slog.Logger
)

// defaultDB returns the default database path, checking TASKPLAN_DB first.
// Empty means resolve to ~/.taskplan/taskplan.db when a command needs it.
func defaultDB() string {
	return os.Getenv("TASKPLAN_DB")
}

// NewRootCmd creates the root cobra command for the taskplan CLI.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "taskplan",
		Short: "taskplan schedules dependent tasks on a single resource",
		Long: "taskplan resolves task dependencies, schedules them with a chosen\n" +
			"algorithm (priority, edf, fcfs or a custom score expression) and\n" +
			"reports makespan, completion time, tardiness and on-time metrics.",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if flagDebug {
				flagLogLevel = "debug"
			}
			logger = logging.New(flagLogLevel, flagLogFormat)
		},
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagDB, "db", defaultDB(), "Database path (or TASKPLAN_DB env, default ~/.taskplan/taskplan.db)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format (text, json)")

	root.AddCommand(
		newRunCmd(),
		newCompareCmd(),
		newDemoCmd(),
		newListCmd(),
		newShowCmd(),
	)

	return root
}

// openStore opens the local run database and applies migrations.
func openStore(ctx context.Context) (*store.SQLiteStore, error) {
	path, err := config.ResolveDBPath(flagDB)
	if err != nil {
		return nil, err
	}
	st, err := store.NewSQLiteStore(path, logger)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return st, nil
}

// buildPolicy resolves the policy for a command invocation. A non-empty
// score expression takes precedence over the algorithm name.
func buildPolicy(algorithm, score string) (policy.Policy, error) {
	if score != "" {
		return policy.NewExprPolicy("score", score)
	}
	return policy.Defaults(logger).Get(algorithm)
}
