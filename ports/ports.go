// Package ports defines the I/O interfaces the core consumes. File
// formats and sheet layouts live behind these boundaries; the core
// only deals in tables.
package ports

import "anonsurvey/domain/survey"

// TableReader reads one tabular survey file into a raw table of text
// cells.
type TableReader interface {
	Read(path string) (*survey.Table, error)
}

// WorkbookWriter writes named tables to one output file, one sheet per
// table, in the given order.
type WorkbookWriter interface {
	Write(path string, sheets []survey.Sheet) error
}

// ScoringLoader loads the scoring definition that drives rank
// resolution.
type ScoringLoader interface {
	Load(path, sheet string) (*survey.ScoringTable, error)
}
