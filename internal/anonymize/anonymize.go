// Package anonymize turns raw personal identifiers into stable
// pseudonymous tokens inside survey tables.
package anonymize

import (
	"anonsurvey/domain/core"
	"anonsurvey/domain/survey"
)

// Transform adds a token column derived from onColumn, positioned
// immediately before it so the raw column can be dropped for a fully
// anonymized view. The same trimmed identifier always yields the same
// token, across files and runs.
//
// When onColumn is absent the input is returned untouched (identity
// contract, not an error). The caller's table is never mutated.
func Transform(t *survey.Table, onColumn, toColumn string) *survey.Table {
	if !t.HasColumn(onColumn) {
		return t
	}

	nt := t.Clone()
	nt.InsertColumnBefore(toColumn, onColumn)
	for _, row := range nt.Rows {
		raw := row[onColumn]
		if raw.IsBlank() {
			row[toColumn] = survey.Blank()
			continue
		}
		token := core.Anonymize(raw.Text)
		row[toColumn] = survey.Text(token.String())
	}
	return nt
}
