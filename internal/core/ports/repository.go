package ports

import "errors"

// Absence and constraint signals returned by repositories. Services translate
// them into domain errors; they never reach the HTTP layer directly.
var (
	ErrNoRecord  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)
