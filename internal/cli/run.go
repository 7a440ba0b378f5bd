package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/me/taskplan/internal/engine"
	"github.com/me/taskplan/internal/metrics"
	"github.com/me/taskplan/internal/parser"
	"github.com/spf13/cobra"

	"github.com/me/taskplan/pkg/model"
)

func newRunCmd() *cobra.Command {
	var (
		file      string
		algorithm string
		score     string
		save      bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "run -f tasks.yaml",
		Short: "Schedule a task set and print the schedule with metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := parser.ParseFile(file)
			if err != nil {
				return err
			}
			name := ts.Name
			if name == "" {
				name = strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
			}
			return executeRun(cmd, name, ts, algorithm, score, save, asJSON)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Task set YAML file (required)")
	cmd.MarkFlagRequired("file")
	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "priority", "Scheduling algorithm (priority, edf, fcfs)")
	cmd.Flags().StringVar(&score, "score", "", "Custom JavaScript score expression (overrides --algorithm)")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the run to the local database")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the full run as JSON instead of tables")

	return cmd
}

// executeRun schedules a task set and renders or persists the result. It is
// shared by the run and demo commands.
func executeRun(cmd *cobra.Command, name string, ts *parser.TaskSet, algorithm, score string, save, asJSON bool) error {
	tasks, err := ts.Model()
	if err != nil {
		return err
	}

	pol, err := buildPolicy(algorithm, score)
	if err != nil {
		return err
	}

	sched, err := engine.Run(tasks, pol, logger)
	if err != nil {
		return err
	}
	rep, err := metrics.Compute(tasks, sched)
	if err != nil {
		return err
	}

	run := &model.Run{
		ID:        "run_" + uuid.NewString()[:8],
		Name:      name,
		Algorithm: sched.Algorithm,
		Tasks:     tasks,
		Entries:   sched.Entries,
		Report:    rep,
		CreatedAt: time.Now().UTC(),
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(run); err != nil {
			return fmt.Errorf("encode run: %w", err)
		}
	} else {
		printSchedule(tasks, sched)
		printReport(rep)
	}

	if save {
		st, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.CreateRun(cmd.Context(), run); err != nil {
			return fmt.Errorf("save run: %w", err)
		}
		fmt.Printf("\nSaved run: %s\n", run.ID)
	}

	return nil
}
