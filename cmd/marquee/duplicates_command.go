package main

import (
	"fmt"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"marquee/internal/naming"
	"marquee/internal/report"
)

func newDuplicatesCommand(ctx *commandContext) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "duplicates",
		Short: "Show duplicate movies derived from the newest rename report",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			rep, err := report.Load(filepath.Join(cfg.Paths.ReportDir, report.RenameReportName))
			if err != nil {
				return err
			}

			vocab := naming.NewVocabulary(cfg.Naming.Languages)
			dup := report.Duplicates(rep, vocab)
			if asJSON {
				return writeJSON(cmd, dup)
			}

			out := cmd.OutOrStdout()
			if len(dup.Duplicates) == 0 {
				fmt.Fprintln(out, "No duplicates found")
				return nil
			}

			rows := make([][]string, 0, len(dup.Duplicates))
			titles := make([]string, 0, len(dup.Duplicates))
			for title := range dup.Duplicates {
				titles = append(titles, title)
			}
			slices.Sort(titles)
			for _, title := range titles {
				for _, record := range dup.Duplicates[title] {
					rows = append(rows, []string{
						title,
						record.InputRoot,
						record.NewName,
						record.Resolution,
						record.Language,
					})
				}
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Title", "Root", "Directory", "Resolution", "Language"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
			))
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the duplicate report as JSON")
	return cmd
}
