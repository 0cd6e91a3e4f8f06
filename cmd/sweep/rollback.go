package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sweeply/sweep/internal/cli"
	"github.com/sweeply/sweep/internal/model"
	"github.com/sweeply/sweep/internal/organize"
)

func rollbackCmd() *cobra.Command {
	var (
		runID string
		list  bool
	)

	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Undo a previous organize run",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			moveLog, err := openMoveLog()
			if err != nil {
				return err
			}
			defer func() { _ = moveLog.Close() }()

			if list {
				ids, err := moveLog.RunIDs(ctx, 20)
				if err != nil {
					return err
				}
				for _, id := range ids {
					fmt.Println(id)
				}
				return nil
			}

			if runID == "" {
				runID, err = moveLog.LatestRunID(ctx)
				if err != nil {
					return err
				}
			}

			records, err := moveLog.MovesByRun(ctx, runID)
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle("Rolling back " + runID))
			results := organize.New(nil).Rollback(ctx, records)
			summary := model.Summarize(results)

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Restored %d of %d files", summary.Moved, summary.Total)))
			if summary.Failed > 0 {
				fmt.Println(cli.FormatError(fmt.Sprintf("Failed to restore %d files", summary.Failed)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&runID, "run", "", "run to undo (default: most recent)")
	cmd.Flags().BoolVar(&list, "list", false, "list recent runs instead of rolling back")
	return cmd
}
