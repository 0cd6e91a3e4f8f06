package model

// AssignmentSource indicates how a category was decided.
type AssignmentSource string

// Assignment source constants.
const (
	SourceRule  AssignmentSource = "rule"
	SourceModel AssignmentSource = "model"
	SourceCache AssignmentSource = "cache"
)

// CategoryAssignment binds a scanned file to exactly one category for the
// current run. RawModelText carries the unparsed model line when the
// assignment came from a model backend.
type CategoryAssignment struct {
	FilePath     string
	Category     Category
	Source       AssignmentSource
	RawModelText string
}
