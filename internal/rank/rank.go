// Package rank converts categorical Likert answers to numeric ranks
// using an externally loaded scoring table.
package rank

import (
	"anonsurvey/domain/survey"
)

// ToRanks replaces every cell whose column name exactly matches a
// scored question with its numeric rank. Columns outside the scoring
// vocabulary pass through unchanged. Cell values are whitespace
// normalized before lookup; blank or unrecognized values become blank
// cells so downstream statistics treat them as missing.
//
// The transform operates on a copy; the caller's table is not mutated.
func ToRanks(t *survey.Table, scoring *survey.ScoringTable) *survey.Table {
	nt := t.Clone()
	for _, column := range nt.Columns {
		if !scoring.Has(column) {
			continue
		}
		for _, row := range nt.Rows {
			cell := row[column]
			if cell.Kind != survey.CellText {
				row[column] = survey.Blank()
				continue
			}
			if r, ok := scoring.Resolve(column, cell.Text); ok {
				row[column] = survey.Rank(float64(r))
			} else {
				row[column] = survey.Blank()
			}
		}
	}
	return nt
}
