package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		name  string
		label string
		want  Category
	}{
		{name: "canonical lowercase", label: "documents", want: CategoryDocuments},
		{name: "capitalized", label: "Images", want: CategoryImages},
		{name: "singular alias", label: "Video", want: CategoryVideo},
		{name: "plural movies", label: "Movies", want: CategoryVideo},
		{name: "trailing punctuation", label: "audio.", want: CategoryAudio},
		{name: "surrounding whitespace", label: "  archives  ", want: CategoryArchives},
		{name: "parenthetical qualifier", label: "documents (invoice)", want: CategoryDocuments},
		{name: "unknown label", label: "holograms", want: CategoryOther},
		{name: "empty", label: "", want: CategoryOther},
		{name: "misc", label: "Misc", want: CategoryOther},
		{name: "installer", label: "Installer", want: CategoryInstallers},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCategory(tt.label))
		})
	}
}

func TestNormalizeCategory_AlwaysCanonical(t *testing.T) {
	canonical := make(map[Category]bool)
	for _, c := range Categories() {
		canonical[c] = true
	}

	for _, label := range []string{"", "weird", "DOCUMENTS", "mp3", "??", "photo album"} {
		got := NormalizeCategory(label)
		assert.True(t, canonical[got], "label %q normalized to non-canonical %q", label, got)
		assert.NotEmpty(t, got)
	}
}

func TestSummarize(t *testing.T) {
	results := []MoveResult{
		{Status: MoveStatusMoved},
		{Status: MoveStatusMoved},
		{Status: MoveStatusSkipped},
		{Status: MoveStatusFailed, Reason: "permission denied"},
	}

	s := Summarize(results)
	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 2, s.Moved)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 1, s.Failed)
}
