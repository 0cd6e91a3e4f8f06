package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sweeply/sweep/internal/cli"
	"github.com/sweeply/sweep/internal/model"
	"github.com/sweeply/sweep/internal/organize"
)

func organizeCmd() *cobra.Command {
	var (
		dryRun bool
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "organize [directories...]",
		Short: "Categorize files and move them into the destination folders",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			start := time.Now()

			opts, err := organizeOptions()
			if err != nil {
				return err
			}

			p, err := newPipeline(ctx, args, !dryRun)
			if err != nil {
				return err
			}
			defer p.close()

			fmt.Println(cli.FormatTitle("Organizing"))
			files, _ := p.scanner.Scan(ctx, p.dirs)
			if len(files) == 0 {
				fmt.Println(cli.FormatWarning("No files found."))
				return nil
			}

			assignments := p.engine.Categorize(ctx, files)

			plan := p.organizer.Plan(files, assignments, opts)
			if len(plan) == 0 {
				fmt.Println(cli.FormatSuccess("Everything is already in place."))
				return nil
			}

			printPlanTable(plan)

			if dryRun {
				fmt.Printf("\n%s\n", cli.SubtleStyle.Render(fmt.Sprintf(
					"Dry run: %d files would be moved to %s", len(plan), opts.Root)))
				return nil
			}

			if !force {
				prompter := cli.NewPrompter(os.Stdin, os.Stdout)
				ok, err := prompter.Confirm(ctx, fmt.Sprintf("Move %d files to %s?", len(plan), opts.Root))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Println(cli.FormatWarning("Aborted."))
					return nil
				}
			}

			runID := organize.NewRunID()
			results := p.organizer.Apply(ctx, plan, runID)
			summary := model.Summarize(results)

			printRunSummary(summary, runID)
			fmt.Printf("%s\n", cli.SubtleStyle.Render("completed in "+formatDuration(time.Since(start))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "show the plan without moving files")
	cmd.Flags().BoolVar(&force, "force", false, "skip the confirmation prompt")
	cmd.Flags().String("dest", "", "destination root (default: ~/OrganizedFiles)")
	cmd.Flags().String("mode", "flat", "folder layout: flat, date or project")
	cmd.Flags().String("project", "", "project name for --mode project")

	_ = viper.BindPFlag("destination", cmd.Flags().Lookup("dest"))
	_ = viper.BindPFlag("mode", cmd.Flags().Lookup("mode"))
	_ = viper.BindPFlag("project", cmd.Flags().Lookup("project"))

	return cmd
}

func printPlanTable(plan []organize.PlannedMove) {
	rows := make([][]string, 0, len(plan))
	for _, pm := range plan {
		rows = append(rows, []string{pm.Source, string(pm.Category), pm.Destination})
	}
	fmt.Println(renderTable(
		[]string{"From", "Category", "To"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft},
	))
}

func printRunSummary(s model.RunSummary, runID string) {
	fmt.Println()
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Moved %d of %d files (run %s)", s.Moved, s.Total, runID)))
	if s.Skipped > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("Skipped %d files", s.Skipped)))
	}
	if s.Failed > 0 {
		fmt.Println(cli.FormatError(fmt.Sprintf("Failed to move %d files", s.Failed)))
	}
}
