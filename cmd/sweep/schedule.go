package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sweeply/sweep/internal/cli"
	"github.com/sweeply/sweep/internal/model"
	"github.com/sweeply/sweep/internal/organize"
	"github.com/sweeply/sweep/internal/schedule"
)

func scheduleCmd() *cobra.Command {
	var every string

	cmd := &cobra.Command{
		Use:   "schedule [directories...]",
		Short: "Run organize on a fixed interval until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			interval, err := schedule.ParseInterval(every)
			if err != nil {
				return err
			}

			opts, err := organizeOptions()
			if err != nil {
				return err
			}

			fmt.Println(cli.FormatTitle(fmt.Sprintf("Scheduling organize every %s", interval)))

			job := func(ctx context.Context) error {
				// Each tick rebuilds the pipeline so backend availability
				// and preferences are fresh.
				p, err := newPipeline(ctx, args, true)
				if err != nil {
					return err
				}
				defer p.close()

				files, _ := p.scanner.Scan(ctx, p.dirs)
				if len(files) == 0 {
					return nil
				}
				assignments := p.engine.Categorize(ctx, files)

				plan := p.organizer.Plan(files, assignments, opts)
				results := p.organizer.Apply(ctx, plan, organize.NewRunID())
				s := model.Summarize(results)
				fmt.Println(cli.FormatSuccess(fmt.Sprintf("Moved %d files", s.Moved)))
				return nil
			}

			err = schedule.NewRunner(nil).Run(ctx, interval, job)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&every, "every", "daily", "interval: hourly, daily, weekly or a duration like 90m")
	_ = viper.BindPFlag("schedule.every", cmd.Flags().Lookup("every"))
	return cmd
}
