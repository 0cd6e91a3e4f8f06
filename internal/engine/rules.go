package engine

import (
	"strings"

	"github.com/sweeply/sweep/internal/model"
)

// extensionRules is the deterministic extension→category table. It is the
// final fallback for every categorization path, so together with the
// CategoryOther default it makes categorization a total function.
var extensionRules = map[string]model.Category{
	// Documents
	".pdf": model.CategoryDocuments,
	".doc": model.CategoryDocuments, ".docx": model.CategoryDocuments,
	".txt": model.CategoryDocuments, ".rtf": model.CategoryDocuments,
	".odt": model.CategoryDocuments, ".md": model.CategoryDocuments,
	".epub": model.CategoryDocuments,

	// Images
	".jpg": model.CategoryImages, ".jpeg": model.CategoryImages,
	".png": model.CategoryImages, ".gif": model.CategoryImages,
	".bmp": model.CategoryImages, ".svg": model.CategoryImages,
	".webp": model.CategoryImages, ".heic": model.CategoryImages,
	".tiff": model.CategoryImages,

	// Video
	".mp4": model.CategoryVideo, ".avi": model.CategoryVideo,
	".mov": model.CategoryVideo, ".mkv": model.CategoryVideo,
	".wmv": model.CategoryVideo, ".flv": model.CategoryVideo,
	".webm": model.CategoryVideo,

	// Audio
	".mp3": model.CategoryAudio, ".wav": model.CategoryAudio,
	".flac": model.CategoryAudio, ".aac": model.CategoryAudio,
	".ogg": model.CategoryAudio, ".m4a": model.CategoryAudio,

	// Archives
	".zip": model.CategoryArchives, ".rar": model.CategoryArchives,
	".7z": model.CategoryArchives, ".tar": model.CategoryArchives,
	".gz": model.CategoryArchives, ".bz2": model.CategoryArchives,
	".xz": model.CategoryArchives,

	// Code
	".go": model.CategoryCode, ".py": model.CategoryCode,
	".js": model.CategoryCode, ".ts": model.CategoryCode,
	".java": model.CategoryCode, ".c": model.CategoryCode,
	".cpp": model.CategoryCode, ".h": model.CategoryCode,
	".rs": model.CategoryCode, ".rb": model.CategoryCode,
	".sh": model.CategoryCode, ".html": model.CategoryCode,
	".css": model.CategoryCode, ".json": model.CategoryCode,
	".xml": model.CategoryCode, ".yaml": model.CategoryCode,
	".yml": model.CategoryCode, ".sql": model.CategoryCode,

	// Spreadsheets
	".xls": model.CategorySpreadsheets, ".xlsx": model.CategorySpreadsheets,
	".csv": model.CategorySpreadsheets, ".ods": model.CategorySpreadsheets,
	".numbers": model.CategorySpreadsheets,

	// Presentations
	".ppt": model.CategoryPresentations, ".pptx": model.CategoryPresentations,
	".odp": model.CategoryPresentations, ".key": model.CategoryPresentations,

	// Installers
	".exe": model.CategoryInstallers, ".msi": model.CategoryInstallers,
	".dmg": model.CategoryInstallers, ".pkg": model.CategoryInstallers,
	".deb": model.CategoryInstallers, ".rpm": model.CategoryInstallers,
	".appimage": model.CategoryInstallers,
}

// mimePrefixRules backs up the extension table for files with misleading or
// missing extensions, keyed on the sniffed MIME type's major class.
var mimePrefixRules = []struct {
	prefix   string
	category model.Category
}{
	{"image/", model.CategoryImages},
	{"video/", model.CategoryVideo},
	{"audio/", model.CategoryAudio},
	{"text/", model.CategoryDocuments},
	{"application/pdf", model.CategoryDocuments},
	{"application/zip", model.CategoryArchives},
	{"application/x-tar", model.CategoryArchives},
	{"application/gzip", model.CategoryArchives},
}

// RuleCategory categorizes a file by extension, falling back to the sniffed
// MIME type and finally to CategoryOther. Always returns a non-empty
// category.
func RuleCategory(rec model.FileRecord) model.Category {
	if cat, ok := extensionRules[rec.Ext]; ok {
		return cat
	}
	for _, rule := range mimePrefixRules {
		if strings.HasPrefix(rec.MIME, rule.prefix) {
			return rule.category
		}
	}
	return model.CategoryOther
}
