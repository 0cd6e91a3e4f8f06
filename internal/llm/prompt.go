package llm

import (
	"fmt"
	"strings"

	"github.com/sweeply/sweep/internal/model"
)

// BuildBatchPrompt serializes one batch of file metadata into the
// classification prompt. The response contract is one label per line, in
// the same order, which the engine matches positionally.
func BuildBatchPrompt(files []model.FileRecord) string {
	categories := make([]string, 0)
	for _, c := range model.Categories() {
		categories = append(categories, string(c))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Categorize each file into exactly one of these categories: %s\n\n",
		strings.Join(categories, ", "))
	b.WriteString("Files:\n")
	for i, f := range files {
		fmt.Fprintf(&b, "%d. name=%q extension=%q size_mb=%.2f modified=%s",
			i+1, f.Name, f.Ext, f.SizeMB(), f.ModTime.Format("2006-01-02"))
		if f.MIME != "" {
			fmt.Fprintf(&b, " mime=%q", f.MIME)
		}
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nRespond with exactly %d lines, one category per line, in the same order. No other text.\n", len(files))
	return b.String()
}
