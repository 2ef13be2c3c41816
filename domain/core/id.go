package core

import "github.com/google/uuid"

// RunID identifies one batch run across logs and the outcome summary.
type RunID string

// NewRunID creates a new unique run identifier using UUID v7 for
// time-ordered generation, falling back to v4.
func NewRunID() RunID {
	id, err := uuid.NewV7()
	if err != nil {
		id = uuid.New()
	}
	return RunID(id.String())
}

// String returns the string representation.
func (id RunID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty.
func (id RunID) IsEmpty() bool {
	return id == ""
}
