package model

// DuplicateGroup collects files whose content hashes are identical.
// Hash equality is treated as proof of duplication without a byte-level
// comparison; with a cryptographic hash the collision risk is accepted as
// negligible for this tool's purpose.
type DuplicateGroup struct {
	Hash             string       `json:"hash"`
	Files            []FileRecord `json:"files"`
	ReclaimableBytes int64        `json:"reclaimable_bytes"`
}

// DuplicateSummary aggregates duplicate detection results for one run.
type DuplicateSummary struct {
	Groups           int   `json:"groups"`
	DuplicateFiles   int   `json:"duplicate_files"`
	ReclaimableBytes int64 `json:"reclaimable_bytes"`
}

// CleanupSuggestion recommends which copy of a duplicate group to keep.
type CleanupSuggestion struct {
	Keep   FileRecord   `json:"keep"`
	Remove []FileRecord `json:"remove"`
	Reason string       `json:"reason"`
}
