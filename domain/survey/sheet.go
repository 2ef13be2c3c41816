package survey

// Tint marks a row for presentation color coding by respondent
// membership across the two waves.
type Tint int

const (
	TintNone Tint = iota
	TintCommon
	TintBeforeOnly
	TintAfterOnly
)

// Sheet is one named output table. Writers map sheets 1:1 to workbook
// worksheets, in slice order. Tints, when present, align with
// Table.Rows and color the TintColumn cell.
type Sheet struct {
	Name       string
	Table      *Table
	Tints      []Tint
	TintColumn string
}
