package cli

import (
	"github.com/me/taskplan/internal/parser"
	"github.com/spf13/cobra"
)

// demoTaskSet is a small release-style pipeline with a dependency chain and
// a mix of tight and loose deadlines, so every algorithm produces a visibly
// different schedule.
func demoTaskSet() *parser.TaskSet {
	return &parser.TaskSet{
		Name: "demo",
		Tasks: []parser.TaskSpec{
			{ID: "T1", Duration: "30m", Priority: 5, Deadline: "2h"},
			{ID: "T2", Duration: "45m", Priority: 8, Deadline: "3h", DependsOn: []string{"T1"}},
			{ID: "T3", Duration: "20m", Priority: 3, Deadline: "1h"},
			{ID: "T4", Duration: "60m", Priority: 6, Deadline: "4h", DependsOn: []string{"T2"}},
			{ID: "T5", Duration: "15m", Priority: 9, Deadline: "1h"},
		},
	}
}

func newDemoCmd() *cobra.Command {
	var (
		algorithm string
		score     string
		save      bool
		asJSON    bool
	)

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Schedule a built-in five-task sample set",
		RunE: func(cmd *cobra.Command, args []string) error {
			return executeRun(cmd, "demo", demoTaskSet(), algorithm, score, save, asJSON)
		},
	}

	cmd.Flags().StringVarP(&algorithm, "algorithm", "a", "priority", "Scheduling algorithm (priority, edf, fcfs)")
	cmd.Flags().StringVar(&score, "score", "", "Custom JavaScript score expression (overrides --algorithm)")
	cmd.Flags().BoolVar(&save, "save", false, "Persist the run to the local database")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the full run as JSON instead of tables")

	return cmd
}
