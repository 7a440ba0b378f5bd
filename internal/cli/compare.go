package cli

import (
	"fmt"

	"github.com/me/taskplan/internal/engine"
	"github.com/me/taskplan/internal/metrics"
	"github.com/me/taskplan/internal/parser"
	"github.com/me/taskplan/internal/policy"
	"github.com/me/taskplan/internal/resolver"
	"github.com/spf13/cobra"

	"github.com/me/taskplan/pkg/model"
)

func newCompareCmd() *cobra.Command {
	var (
		file       string
		algorithms []string
	)

	cmd := &cobra.Command{
		Use:   "compare -f tasks.yaml",
		Short: "Run every algorithm over one task set and compare metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			ts, err := parser.ParseFile(file)
			if err != nil {
				return err
			}
			tasks, err := ts.Model()
			if err != nil {
				return err
			}

			reg := policy.Defaults(logger)
			names := algorithms
			if len(names) == 0 {
				names = reg.Names()
			}

			// One resolver shared across algorithms; it is read-only
			// after construction.
			res, err := resolver.New(tasks)
			if err != nil {
				return err
			}

			reports := make([]*model.Report, 0, len(names))
			for _, name := range names {
				pol, err := reg.Get(name)
				if err != nil {
					return err
				}
				sched, err := engine.RunResolved(res, pol, logger)
				if err != nil {
					return fmt.Errorf("algorithm %s: %w", name, err)
				}
				rep, err := metrics.Compute(tasks, sched)
				if err != nil {
					return fmt.Errorf("algorithm %s: %w", name, err)
				}
				reports = append(reports, rep)
			}

			printComparison(names, reports)
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Task set YAML file (required)")
	cmd.MarkFlagRequired("file")
	cmd.Flags().StringArrayVarP(&algorithms, "algorithm", "a", nil, "Algorithm to include (repeatable, default all)")

	return cmd
}

// printComparison renders one row per algorithm with the best value per
// metric highlighted. Lower is better except for on-time percentage.
func printComparison(names []string, reports []*model.Report) {
	bestMakespan := reports[0].Makespan
	bestCompletion := reports[0].TotalCompletion
	bestTardiness := reports[0].AvgTardiness
	bestOnTime := reports[0].OnTimePct
	for _, rep := range reports[1:] {
		if rep.Makespan < bestMakespan {
			bestMakespan = rep.Makespan
		}
		if rep.TotalCompletion < bestCompletion {
			bestCompletion = rep.TotalCompletion
		}
		if rep.AvgTardiness < bestTardiness {
			bestTardiness = rep.AvgTardiness
		}
		if rep.OnTimePct > bestOnTime {
			bestOnTime = rep.OnTimePct
		}
	}

	mark := func(s string, best bool) string {
		if best {
			return green(s)
		}
		return s
	}

	fmt.Printf("\n%s\n", bold("COMPARISON"))
	fmt.Printf("%-10s  %12s  %16s  %14s  %10s\n", "ALGORITHM", "MAKESPAN", "TOTAL COMPLETION", "AVG TARDINESS", "ON TIME")
	fmt.Printf("%-10s  %12s  %16s  %14s  %10s\n", "---------", "--------", "----------------", "-------------", "-------")
	for i, name := range names {
		rep := reports[i]
		fmt.Printf("%-10s  %12s  %16s  %14s  %10s\n",
			cyan(name),
			mark(fmtOffset(rep.Makespan), rep.Makespan == bestMakespan),
			mark(fmtOffset(rep.TotalCompletion), rep.TotalCompletion == bestCompletion),
			mark(fmtOffset(rep.AvgTardiness), rep.AvgTardiness == bestTardiness),
			mark(fmt.Sprintf("%.1f%%", rep.OnTimePct), rep.OnTimePct == bestOnTime),
		)
	}
}
