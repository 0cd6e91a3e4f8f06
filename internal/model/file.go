// Package model defines the core domain types shared across the pipeline.
package model

import "time"

// FileRecord is one regular file discovered by a scan. Ext is lowercased
// and includes the leading dot; MIME is best-effort and may be empty.
type FileRecord struct {
	ModTime time.Time `json:"mod_time"`
	Path    string    `json:"path"`
	Name    string    `json:"name"`
	Ext     string    `json:"ext"`
	MIME    string    `json:"mime,omitempty"`
	Size    int64     `json:"size"`
}

// SizeMB returns the file size in megabytes.
func (f FileRecord) SizeMB() float64 {
	return float64(f.Size) / (1024 * 1024)
}
