// Package prepare composes identifier cleaning, anonymization and rank
// resolution into one pass over a raw survey table.
package prepare

import (
	"strings"
	"unicode"

	"anonsurvey/domain/core"
	"anonsurvey/domain/survey"
	"anonsurvey/internal/anonymize"
	"anonsurvey/internal/rank"
)

// TokenColumn is the name of the pseudonymous identifier column added
// during preparation.
const TokenColumn = "student_anon"

// Prepare turns a raw survey table into an analysis-ready one:
//
//  1. rows with a blank identifier are dropped
//  2. identifiers are trimmed of surrounding whitespace
//  3. optionally one leading non-digit character is stripped
//  4. duplicate identifiers are removed, first occurrence wins
//  5. the identifier is anonymized into TokenColumn
//  6. categorical answers are resolved to numeric ranks
//
// The raw identifier column is retained; dropping it is an output
// policy decided by the caller. Row order is preserved relative to the
// input after filtering. The caller's table is never mutated.
//
// A missing idColumn is a configuration error: the caller named the
// wrong column, so failing fast beats silently skipping every row.
func Prepare(raw *survey.Table, idColumn string, scoring *survey.ScoringTable, stripLeadingNonDigit bool) (*survey.Table, error) {
	if !raw.HasColumn(idColumn) {
		return nil, core.NewColumnMissingError(idColumn)
	}

	t := raw.Filter(func(r survey.Row) bool {
		id := r[idColumn]
		return id.Kind == survey.CellText && strings.TrimSpace(id.Text) != ""
	})

	for _, row := range t.Rows {
		id := strings.TrimSpace(row[idColumn].Text)
		if stripLeadingNonDigit {
			id = StripLeadingNonDigit(id)
		}
		row[idColumn] = survey.Text(id)
	}

	t = dedupeByColumn(t, idColumn)
	t = anonymize.Transform(t, idColumn, TokenColumn)
	t = rank.ToRanks(t, scoring)
	return t, nil
}

// StripLeadingNonDigit drops exactly one leading character when it is
// not a digit. This deliberately mirrors the blunt institutional-prefix
// heuristic: it does not validate what the stripped character is.
func StripLeadingNonDigit(id string) string {
	if id == "" {
		return id
	}
	runes := []rune(id)
	if unicode.IsDigit(runes[0]) {
		return id
	}
	return string(runes[1:])
}

// dedupeByColumn keeps the first row for each distinct value of column,
// preserving original row order.
func dedupeByColumn(t *survey.Table, column string) *survey.Table {
	seen := make(map[string]bool, t.Len())
	return t.Filter(func(r survey.Row) bool {
		key := r[column].Text
		if seen[key] {
			return false
		}
		seen[key] = true
		return true
	})
}
