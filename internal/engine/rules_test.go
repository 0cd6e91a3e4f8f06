package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sweeply/sweep/internal/model"
)

func TestRuleCategory(t *testing.T) {
	tests := []struct {
		name string
		rec  model.FileRecord
		want model.Category
	}{
		{name: "pdf", rec: model.FileRecord{Ext: ".pdf"}, want: model.CategoryDocuments},
		{name: "jpg", rec: model.FileRecord{Ext: ".jpg"}, want: model.CategoryImages},
		{name: "mp4", rec: model.FileRecord{Ext: ".mp4"}, want: model.CategoryVideo},
		{name: "flac", rec: model.FileRecord{Ext: ".flac"}, want: model.CategoryAudio},
		{name: "tar", rec: model.FileRecord{Ext: ".tar"}, want: model.CategoryArchives},
		{name: "go source", rec: model.FileRecord{Ext: ".go"}, want: model.CategoryCode},
		{name: "xlsx", rec: model.FileRecord{Ext: ".xlsx"}, want: model.CategorySpreadsheets},
		{name: "pptx", rec: model.FileRecord{Ext: ".pptx"}, want: model.CategoryPresentations},
		{name: "deb", rec: model.FileRecord{Ext: ".deb"}, want: model.CategoryInstallers},
		{name: "unknown ext", rec: model.FileRecord{Ext: ".unknownext"}, want: model.CategoryOther},
		{name: "no ext, image mime", rec: model.FileRecord{MIME: "image/png"}, want: model.CategoryImages},
		{name: "no ext, video mime", rec: model.FileRecord{MIME: "video/mp4"}, want: model.CategoryVideo},
		{name: "no ext, pdf mime", rec: model.FileRecord{MIME: "application/pdf"}, want: model.CategoryDocuments},
		{name: "nothing known", rec: model.FileRecord{}, want: model.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RuleCategory(tt.rec))
		})
	}
}

func TestRuleCategory_Totality(t *testing.T) {
	// Whatever the input, the rule table must produce a non-empty category.
	inputs := []model.FileRecord{
		{},
		{Ext: ".xyz"},
		{Ext: "noleadingdot"},
		{MIME: "application/octet-stream"},
		{Ext: ".PDF"}, // scanner lowercases, but the table must not panic on anything
	}
	for _, rec := range inputs {
		assert.NotEmpty(t, RuleCategory(rec))
	}
}
