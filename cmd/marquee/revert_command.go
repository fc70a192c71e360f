package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"marquee/internal/config"
	"marquee/internal/report"
	"marquee/internal/revert"
)

func newRevertCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "revert [report]",
		Short: "Replay a rename report backwards, restoring the previous names",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			reportPath := filepath.Join(cfg.Paths.ReportDir, report.RenameReportName)
			if len(args) == 1 {
				reportPath, err = config.ExpandPath(args[0])
				if err != nil {
					return err
				}
			}

			rep, err := report.Load(reportPath)
			if err != nil {
				return err
			}

			counters := revert.NewEngine(logger, dryRun).Run(rep)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Expected", "Reverted", "Already Reverted", "Missing", "Conflicts", "Status"},
				[][]string{{
					strconv.Itoa(counters.Expected),
					strconv.Itoa(counters.RevertedNow),
					strconv.Itoa(counters.AlreadyReverted),
					strconv.Itoa(counters.Missing),
					strconv.Itoa(counters.Conflicts),
					statusText(counters.OK()),
				}},
				[]columnAlignment{alignRight, alignRight, alignRight, alignRight, alignRight, alignLeft},
			))
			if !counters.OK() {
				fmt.Fprintf(out, "verified %d of %d entries; inspect the log for skipped paths\n",
					counters.VerifiedTotal(), counters.Expected)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Preview the revert without touching the filesystem")
	return cmd
}
