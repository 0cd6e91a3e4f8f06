package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/sweeply/sweep/internal/cli"
	"github.com/sweeply/sweep/internal/model"
)

func scanCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "scan [directories...]",
		Short: "Scan directories and preview categories without moving anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			start := time.Now()

			p, err := newPipeline(ctx, args, false)
			if err != nil {
				return err
			}
			defer p.close()

			fmt.Println(cli.FormatTitle("Scanning"))
			files, warnings := p.scanner.Scan(ctx, p.dirs)
			if len(files) == 0 {
				fmt.Println(cli.FormatWarning("No files found."))
				return nil
			}

			assignments := p.engine.Categorize(ctx, files)

			printScanTable(files, assignments, limit)
			printCategoryCounts(assignments)

			fmt.Printf("\n%s\n", cli.SubtleStyle.Render(fmt.Sprintf(
				"%d files, %d warnings, backend %s, %s",
				len(files), len(warnings), p.engine.Provider(), formatDuration(time.Since(start)))))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "maximum files to list (0 = all)")
	return cmd
}

func printScanTable(files []model.FileRecord, assignments []model.CategoryAssignment, limit int) {
	byPath := make(map[string]model.CategoryAssignment, len(assignments))
	for _, a := range assignments {
		byPath[a.FilePath] = a
	}

	rows := make([][]string, 0, len(files))
	for _, f := range files {
		if limit > 0 && len(rows) >= limit {
			break
		}
		a := byPath[f.Path]
		rows = append(rows, []string{
			f.Name,
			string(a.Category),
			string(a.Source),
			humanize.Bytes(uint64(f.Size)),
		})
	}

	fmt.Println(renderTable(
		[]string{"File", "Category", "Source", "Size"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignRight},
	))
	if limit > 0 && len(files) > limit {
		fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("… and %d more", len(files)-limit)))
	}
}

func printCategoryCounts(assignments []model.CategoryAssignment) {
	counts := make(map[model.Category]int)
	for _, a := range assignments {
		counts[a.Category]++
	}

	cats := make([]model.Category, 0, len(counts))
	for c := range counts {
		cats = append(cats, c)
	}
	sort.Slice(cats, func(i, j int) bool { return counts[cats[i]] > counts[cats[j]] })

	fmt.Println()
	for _, c := range cats {
		fmt.Printf("  %s %s: %d\n", cli.FolderIcon, c, counts[c])
	}
}
