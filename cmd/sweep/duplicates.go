package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sweeply/sweep/internal/cli"
	"github.com/sweeply/sweep/internal/dedup"
)

func duplicatesCmd() *cobra.Command {
	var suggest bool

	cmd := &cobra.Command{
		Use:     "duplicates [directories...]",
		Aliases: []string{"dupes"},
		Short:   "Find files with identical content",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			start := time.Now()

			p, err := newPipeline(ctx, args, false)
			if err != nil {
				return err
			}
			defer p.close()

			fmt.Println(cli.FormatTitle("Finding duplicates"))
			files, _ := p.scanner.Scan(ctx, p.dirs)

			p.detector.Progress = true
			groups, err := p.detector.FindDuplicates(ctx, files)
			if err != nil {
				return err
			}

			if len(groups) == 0 {
				fmt.Println(cli.FormatSuccess("No duplicates found."))
				return nil
			}

			for i, g := range groups {
				fmt.Printf("\n%s Group %d — %s reclaimable\n",
					cli.TwinIcon, i+1, humanize.Bytes(uint64(g.ReclaimableBytes)))
				for _, f := range g.Files {
					fmt.Printf("  %s (%s)\n", f.Path, humanize.Bytes(uint64(f.Size)))
				}
			}

			if suggest {
				fmt.Println()
				for _, s := range dedup.SuggestCleanup(groups) {
					fmt.Println(cli.FormatWarning(fmt.Sprintf("keep %s — %s", s.Keep.Path, s.Reason)))
					for _, r := range s.Remove {
						fmt.Printf("  remove %s\n", r.Path)
					}
				}
			}

			summary := dedup.Summarize(groups)
			fmt.Printf("\n%s\n", cli.SubtleStyle.Render(fmt.Sprintf(
				"%d groups, %d duplicate files, %s reclaimable, %s",
				summary.Groups, summary.DuplicateFiles,
				humanize.Bytes(uint64(summary.ReclaimableBytes)),
				formatDuration(time.Since(start)))))
			return nil
		},
	}

	cmd.Flags().BoolVar(&suggest, "suggest", false, "suggest which copies to keep")
	return cmd
}
