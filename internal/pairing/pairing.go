// Package pairing aligns two analysis-ready survey waves by respondent
// and by question and computes matched-pairs t statistics.
package pairing

import (
	"sort"

	"anonsurvey/domain/core"
	"anonsurvey/domain/survey"
)

// SplitRespondents partitions the identifier values of two waves into
// common, before-only and after-only sets, each sorted ascending.
func SplitRespondents(before, after *survey.Table, idField string) survey.RespondentSplit {
	bf := idSet(before, idField)
	af := idSet(after, idField)

	var split survey.RespondentSplit
	for id := range bf {
		if af[id] {
			split.Common = append(split.Common, id)
		} else {
			split.BeforeOnly = append(split.BeforeOnly, id)
		}
	}
	for id := range af {
		if !bf[id] {
			split.AfterOnly = append(split.AfterOnly, id)
		}
	}
	sort.Strings(split.Common)
	sort.Strings(split.BeforeOnly)
	sort.Strings(split.AfterOnly)
	return split
}

// CommonQuestions returns the questions present in both waves and in
// the scoring vocabulary, in scoring-table declaration order. Set
// intersection has no order of its own, and the legend numbers
// questions by position, so the declaration order pins it down.
func CommonQuestions(before, after *survey.Table, scoring *survey.ScoringTable) []string {
	var questions []string
	for _, q := range scoring.Questions {
		if before.HasColumn(q) && after.HasColumn(q) {
			questions = append(questions, q)
		}
	}
	return questions
}

// Compare aligns the two waves to their common respondents and scored
// questions and computes the per-question and per-respondent paired
// t-tests.
//
// Waves with no common questions or no common respondents yield
// core.ErrNoCommonQuestions / core.ErrNoCommonRespondents; these are
// partial-data conditions the caller skips over, not run failures.
func Compare(before, after *survey.Table, idField string, scoring *survey.ScoringTable) (*survey.PairedResult, error) {
	// Reproducible output order; the join below is keyed, not positional.
	before = before.SortByColumn(idField)
	after = after.SortByColumn(idField)

	questions := CommonQuestions(before, after, scoring)
	split := SplitRespondents(before, after, idField)

	if len(questions) == 0 {
		return nil, core.ErrNoCommonQuestions
	}
	if len(split.Common) == 0 {
		return nil, core.ErrNoCommonRespondents
	}

	common := make(map[string]bool, len(split.Common))
	for _, id := range split.Common {
		common[id] = true
	}
	inCommon := func(r survey.Row) bool { return common[r[idField].Text] }

	// Restrict both waves to the intersection, columns in the fixed
	// question order.
	cols := append([]string{idField}, questions...)
	bf := before.Filter(inCommon).Select(cols...)
	af := after.Filter(inCommon).Select(cols...)

	// Positional short codes join the waves and label the legend.
	beforeCodes := make(map[string]string, len(questions))
	afterCodes := make(map[string]string, len(questions))
	legend := make([]survey.LegendEntry, len(questions))
	for i, q := range questions {
		beforeCodes[q] = survey.BeforeCode(i + 1)
		afterCodes[q] = survey.AfterCode(i + 1)
		legend[i] = survey.LegendEntry{
			Question:   q,
			BeforeCode: beforeCodes[q],
			AfterCode:  afterCodes[q],
		}
	}
	bf = bf.RenameColumns(beforeCodes)
	af = af.RenameColumns(afterCodes)

	combined := join(bf, af, idField, legend)

	result := &survey.PairedResult{
		Legend:   legend,
		Before:   bf,
		After:    af,
		Combined: combined,
		Split:    split,
	}

	// Per-question test: both vectors come from the joined table so the
	// respondent order can never diverge between them.
	for _, entry := range legend {
		result.Questions = append(result.Questions, questionStat(combined, entry))
	}

	// Per-respondent dual view: one respondent's answers across
	// questions form the paired sample.
	for _, row := range combined.Rows {
		result.Respondents = append(result.Respondents, respondentStat(row, idField, legend))
	}

	return result, nil
}

// join inner-joins the two renamed waves on idField. Both inputs hold
// exactly one row per common respondent, so the join preserves the
// before-wave row order and its cardinality equals the intersection
// size.
func join(bf, af *survey.Table, idField string, legend []survey.LegendEntry) *survey.Table {
	cols := make([]string, 0, 1+2*len(legend))
	cols = append(cols, idField)
	for _, entry := range legend {
		cols = append(cols, entry.BeforeCode, entry.AfterCode)
	}

	afByID := make(map[string]survey.Row, af.Len())
	for _, row := range af.Rows {
		afByID[row[idField].Text] = row
	}

	combined := survey.NewTable(cols...)
	for _, brow := range bf.Rows {
		arow, ok := afByID[brow[idField].Text]
		if !ok {
			continue
		}
		row := make(survey.Row, len(cols))
		row[idField] = brow[idField]
		for _, entry := range legend {
			row[entry.BeforeCode] = brow[entry.BeforeCode]
			row[entry.AfterCode] = arow[entry.AfterCode]
		}
		combined.Append(row)
	}
	return combined
}

// questionStat extracts the paired vector for one question across all
// joined respondents. Rows missing either side are excluded pairwise.
func questionStat(combined *survey.Table, entry survey.LegendEntry) survey.QuestionStat {
	var pairs []pair
	for _, row := range combined.Rows {
		b, okB := row[entry.BeforeCode].Rank()
		a, okA := row[entry.AfterCode].Rank()
		if okB && okA {
			pairs = append(pairs, pair{before: b, after: a})
		}
	}

	t, p := pairedTTest(pairs)
	befores := make([]float64, len(pairs))
	afters := make([]float64, len(pairs))
	for i, pr := range pairs {
		befores[i] = pr.before
		afters[i] = pr.after
	}
	bMean, bSD := Describe(befores)
	aMean, aSD := Describe(afters)

	return survey.QuestionStat{
		Question:     entry.Question,
		BeforeCode:   entry.BeforeCode,
		AfterCode:    entry.AfterCode,
		Statistic:    t,
		PValue:       p,
		N:            len(pairs),
		BeforeMean:   bMean,
		BeforeStdDev: bSD,
		AfterMean:    aMean,
		AfterStdDev:  aSD,
	}
}

// respondentStat pairs one respondent's before/after answers across
// all common questions.
func respondentStat(row survey.Row, idField string, legend []survey.LegendEntry) survey.RespondentStat {
	var pairs []pair
	for _, entry := range legend {
		b, okB := row[entry.BeforeCode].Rank()
		a, okA := row[entry.AfterCode].Rank()
		if okB && okA {
			pairs = append(pairs, pair{before: b, after: a})
		}
	}
	t, p := pairedTTest(pairs)
	return survey.RespondentStat{
		Respondent: row[idField].Text,
		Statistic:  t,
		PValue:     p,
		N:          len(pairs),
	}
}

func idSet(t *survey.Table, idField string) map[string]bool {
	set := make(map[string]bool, t.Len())
	for _, row := range t.Rows {
		if v := row[idField]; v.Kind == survey.CellText && v.Text != "" {
			set[v.Text] = true
		}
	}
	return set
}
