package model

import "strings"

// Category is one of the fixed file-type classes a file can be sorted into.
type Category string

// Canonical categories. Every categorizer path resolves to one of these;
// CategoryOther is the total-function default.
const (
	CategoryDocuments     Category = "documents"
	CategoryImages        Category = "images"
	CategoryAudio         Category = "audio"
	CategoryVideo         Category = "video"
	CategoryArchives      Category = "archives"
	CategoryCode          Category = "code"
	CategorySpreadsheets  Category = "spreadsheets"
	CategoryPresentations Category = "presentations"
	CategoryInstallers    Category = "installers"
	CategoryOther         Category = "other"
)

// Categories lists all canonical categories in display order.
func Categories() []Category {
	return []Category{
		CategoryDocuments,
		CategoryImages,
		CategoryAudio,
		CategoryVideo,
		CategoryArchives,
		CategoryCode,
		CategorySpreadsheets,
		CategoryPresentations,
		CategoryInstallers,
		CategoryOther,
	}
}

// FolderName returns the directory name used for this category in the
// organized layout.
func (c Category) FolderName() string {
	if c == "" {
		return string(CategoryOther)
	}
	return string(c)
}

// categoryAliases maps common model spellings onto canonical categories.
// Model backends are prompted with the canonical names but routinely answer
// with capitalized, pluralized or adjacent variants.
var categoryAliases = map[string]Category{
	"document":      CategoryDocuments,
	"documents":     CategoryDocuments,
	"doc":           CategoryDocuments,
	"pdf":           CategoryDocuments,
	"pdfs":          CategoryDocuments,
	"text":          CategoryDocuments,
	"image":         CategoryImages,
	"images":        CategoryImages,
	"photo":         CategoryImages,
	"photos":        CategoryImages,
	"picture":       CategoryImages,
	"pictures":      CategoryImages,
	"screenshot":    CategoryImages,
	"screenshots":   CategoryImages,
	"audio":         CategoryAudio,
	"music":         CategoryAudio,
	"sound":         CategoryAudio,
	"video":         CategoryVideo,
	"videos":        CategoryVideo,
	"movie":         CategoryVideo,
	"movies":        CategoryVideo,
	"archive":       CategoryArchives,
	"archives":      CategoryArchives,
	"compressed":    CategoryArchives,
	"code":          CategoryCode,
	"source":        CategoryCode,
	"sourcecode":    CategoryCode,
	"script":        CategoryCode,
	"scripts":       CategoryCode,
	"spreadsheet":   CategorySpreadsheets,
	"spreadsheets":  CategorySpreadsheets,
	"presentation":  CategoryPresentations,
	"presentations": CategoryPresentations,
	"slides":        CategoryPresentations,
	"installer":     CategoryInstallers,
	"installers":    CategoryInstallers,
	"executable":    CategoryInstallers,
	"executables":   CategoryInstallers,
	"other":         CategoryOther,
	"misc":          CategoryOther,
	"miscellaneous": CategoryOther,
	"unknown":       CategoryOther,
}

// NormalizeCategory maps free-form model output onto the canonical category
// set. Unrecognized labels resolve to CategoryOther so every file always
// receives a valid category.
func NormalizeCategory(label string) Category {
	cleaned := strings.ToLower(strings.TrimSpace(label))
	cleaned = strings.Trim(cleaned, ".:;,\"'`")
	if cleaned == "" {
		return CategoryOther
	}
	if cat, ok := categoryAliases[cleaned]; ok {
		return cat
	}
	// Try the first word for answers like "documents (invoice)".
	if idx := strings.IndexAny(cleaned, " (/-"); idx > 0 {
		if cat, ok := categoryAliases[cleaned[:idx]]; ok {
			return cat
		}
	}
	return CategoryOther
}
