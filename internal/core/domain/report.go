package domain

import "sort"

// MoveError records a single file that could not be moved.
type MoveError struct {
	// File is the base filename that failed.
	File string `json:"file"`

	// Message is the failure description.
	Message string `json:"message"`
}

// Report summarises an applied (or previewed) organize pass.
type Report struct {
	// BatchID is the batch the report belongs to.
	// Empty for dry runs, which record no batch.
	BatchID string `json:"batch_id,omitempty"`

	// DryRun is true when no files were actually moved.
	DryRun bool `json:"dry_run"`

	// Moved is the number of files moved (or that would move).
	Moved int `json:"moved"`

	// BytesMoved is the combined size of moved files.
	BytesMoved int64 `json:"bytes_moved"`

	// PerCategory counts moved files by category name.
	PerCategory map[string]int `json:"per_category"`

	// Errors lists files that failed to move.
	Errors []MoveError `json:"errors,omitempty"`
}

// NewReport creates an empty report.
func NewReport(batchID string, dryRun bool) *Report {
	return &Report{
		BatchID:     batchID,
		DryRun:      dryRun,
		PerCategory: make(map[string]int),
	}
}

// AddMove records a successful (or previewed) move.
func (r *Report) AddMove(category string, size int64) {
	r.Moved++
	r.BytesMoved += size
	r.PerCategory[category]++
}

// AddError records a failed move.
func (r *Report) AddError(file, message string) {
	r.Errors = append(r.Errors, MoveError{File: file, Message: message})
}

// Categories returns the report's category names in sorted order.
func (r *Report) Categories() []string {
	categories := make([]string, 0, len(r.PerCategory))
	for category := range r.PerCategory {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}
