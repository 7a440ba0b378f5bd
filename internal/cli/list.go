package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/me/taskplan/pkg/model"
)

func newListCmd() *cobra.Command {
	var (
		algorithm string
		limit     int
		offset    int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer st.Close()

			opts := model.ListOptions{Limit: limit, Offset: offset, Algorithm: algorithm}
			opts.Clamp()
			runs, total, err := st.ListRuns(cmd.Context(), opts)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}

			if len(runs) == 0 {
				fmt.Println("No saved runs.")
				return nil
			}

			fmt.Printf("%-14s  %-20s  %-9s  %5s  %10s  %8s  %s\n", "ID", "NAME", "ALGORITHM", "TASKS", "MAKESPAN", "ON TIME", "CREATED")
			fmt.Printf("%-14s  %-20s  %-9s  %5s  %10s  %8s  %s\n", "--", "----", "---------", "-----", "--------", "-------", "-------")
			for _, run := range runs {
				onTime := "-"
				if run.Report.DeadlineCount > 0 {
					onTime = fmt.Sprintf("%.0f%%", run.Report.OnTimePct)
				}
				fmt.Printf("%-14s  %-20s  %-9s  %5d  %10s  %8s  %s\n",
					run.ID, run.Name, run.Algorithm, run.Report.TaskCount,
					fmtOffset(run.Report.Makespan), onTime, humanize.Time(run.CreatedAt))
			}

			if total > len(runs)+opts.Offset {
				fmt.Printf("\n(%d of %d shown)\n", len(runs), total)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&algorithm, "algorithm", "", "Only runs for this algorithm")
	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum runs to list")
	cmd.Flags().IntVar(&offset, "offset", 0, "Runs to skip")

	return cmd
}
