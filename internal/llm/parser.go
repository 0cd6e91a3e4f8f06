package llm

import (
	"fmt"
	"strings"
)

// parseLabels extracts one category label per non-empty line of model
// output. Models are prompted for bare labels but regularly decorate them
// with numbering, bullets, or markdown fences; all of that is stripped.
func parseLabels(content string) ([]string, error) {
	content = cleanMarkdownWrapper(content)

	var labels []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Drop leading list markers: "1.", "1)", "-", "*".
		line = strings.TrimLeft(line, "-*• \t")
		if idx := strings.IndexAny(line, ".)"); idx > 0 && idx <= 3 && isDigits(line[:idx]) {
			line = strings.TrimSpace(line[idx+1:])
		}

		// Drop an echoed filename prefix: "report.pdf: documents".
		if idx := strings.LastIndex(line, ":"); idx >= 0 && idx < len(line)-1 {
			line = strings.TrimSpace(line[idx+1:])
		}

		if line == "" {
			continue
		}
		labels = append(labels, line)
	}

	if len(labels) == 0 {
		return nil, fmt.Errorf("no labels found in model response")
	}
	return labels, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// cleanMarkdownWrapper strips ```-fenced blocks some models wrap their
// answers in.
func cleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		if idx := strings.Index(content, "\n"); idx >= 0 {
			content = content[idx+1:]
		}
		content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	}
	return strings.TrimSpace(content)
}
