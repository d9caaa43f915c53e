package domain

import "time"

// PlannedMove is a single move computed by the planner but not yet applied.
type PlannedMove struct {
	// From is the absolute source path.
	From string `json:"from"`

	// To is the absolute destination path.
	To string `json:"to"`

	// Category is the destination category folder name.
	Category string `json:"category"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`

	// Renamed is true when the destination name differs from the
	// source name to avoid a collision.
	Renamed bool `json:"renamed,omitempty"`
}

// Plan is the full set of moves for one organize pass.
type Plan struct {
	// SourceDir is the directory being organized.
	SourceDir string `json:"source_dir"`

	// DestDir is the directory receiving category folders.
	// Equals SourceDir when organizing in place.
	DestDir string `json:"dest_dir"`

	// Moves are the planned moves in directory listing order.
	Moves []PlannedMove `json:"moves"`

	// CreatedAt is when the plan was computed.
	CreatedAt time.Time `json:"created_at"`
}

// TotalBytes returns the combined size of all planned moves.
func (p *Plan) TotalBytes() int64 {
	var total int64
	for i := range p.Moves {
		total += p.Moves[i].Size
	}
	return total
}

// ByCategory groups the planned moves by category name.
func (p *Plan) ByCategory() map[string][]PlannedMove {
	grouped := make(map[string][]PlannedMove)
	for _, m := range p.Moves {
		grouped[m.Category] = append(grouped[m.Category], m)
	}
	return grouped
}

// MoveRecord is an applied move persisted for undo.
type MoveRecord struct {
	// ID is the unique identifier for the record.
	ID string `json:"id"`

	// BatchID links the record to its batch.
	BatchID string `json:"batch_id"`

	// From is the absolute path the file was moved from.
	From string `json:"from"`

	// To is the absolute path the file was moved to.
	To string `json:"to"`

	// Category is the destination category folder name.
	Category string `json:"category"`

	// Size is the file size in bytes.
	Size int64 `json:"size"`

	// MovedAt is when the move was applied.
	MovedAt time.Time `json:"moved_at"`
}

// Batch groups the moves of one applied organize pass.
type Batch struct {
	// ID is the batch UUID.
	ID string `json:"id"`

	// SourceDir is the directory that was organized.
	SourceDir string `json:"source_dir"`

	// DestDir is the directory that received category folders.
	DestDir string `json:"dest_dir"`

	// StartedAt is when the batch began.
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the batch completed.
	FinishedAt time.Time `json:"finished_at"`

	// MoveCount is the number of files moved.
	MoveCount int `json:"move_count"`

	// ErrorCount is the number of files that failed to move.
	ErrorCount int `json:"error_count"`

	// Undone is true once the batch has been reversed.
	Undone bool `json:"undone"`
}
