package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/me/taskplan/pkg/model"
)

func newShowCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Show a saved run with its schedule and metrics",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			run, err := st.GetRun(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("get run: %w", err)
			}
			if run == nil {
				return fmt.Errorf("run %s not found", id)
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(run)
			}

			fmt.Printf("Run: %s\n", bold(run.ID))
			if run.Name != "" {
				fmt.Printf("  Name:      %s\n", run.Name)
			}
			fmt.Printf("  Algorithm: %s\n", run.Algorithm)
			fmt.Printf("  Created:   %s\n", run.CreatedAt.Format("2006-01-02 15:04:05 MST"))

			sched := &model.Schedule{Algorithm: run.Algorithm, Entries: run.Entries}
			printSchedule(run.Tasks, sched)
			printReport(run.Report)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the full run as JSON")

	return cmd
}
