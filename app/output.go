package app

import (
	"math"

	"anonsurvey/domain/survey"
	"anonsurvey/internal/pairing"
)

// Analysis-workbook sheet names, in output order. The writer maps them
// 1:1 to worksheets; the order is part of the output contract.
const (
	sheetQuestionPairs = "Question pairs"
	sheetStudentPairs  = "Student pairs"
	sheetLegend        = "Legend"
	sheetCombined      = "Combined"
	sheetBefore        = "Before"
	sheetAfter         = "After"
)

// analysisSheets renders a paired result into the fixed sequence of
// output tables.
func analysisSheets(result *survey.PairedResult, idField string) []survey.Sheet {
	return []survey.Sheet{
		{Name: sheetQuestionPairs, Table: questionPairsTable(result)},
		{Name: sheetStudentPairs, Table: studentPairsTable(result, idField)},
		{Name: sheetLegend, Table: legendTable(result)},
		{Name: sheetCombined, Table: result.Combined},
		{Name: sheetBefore, Table: result.Before},
		{Name: sheetAfter, Table: result.After},
	}
}

func questionPairsTable(result *survey.PairedResult) *survey.Table {
	t := survey.NewTable("question", "statistic", "pvalue", "n",
		"before_mean", "before_stddev", "after_mean", "after_stddev")
	for _, q := range result.Questions {
		t.Append(survey.Row{
			"question":      survey.Text(q.Question),
			"statistic":     statCell(q.Statistic),
			"pvalue":        statCell(q.PValue),
			"n":             survey.Rank(float64(q.N)),
			"before_mean":   statCell(q.BeforeMean),
			"before_stddev": statCell(q.BeforeStdDev),
			"after_mean":    statCell(q.AfterMean),
			"after_stddev":  statCell(q.AfterStdDev),
		})
	}
	return t
}

func studentPairsTable(result *survey.PairedResult, idField string) *survey.Table {
	t := survey.NewTable(idField, "statistic", "pvalue", "n")
	for _, r := range result.Respondents {
		t.Append(survey.Row{
			idField:     survey.Text(r.Respondent),
			"statistic": statCell(r.Statistic),
			"pvalue":    statCell(r.PValue),
			"n":         survey.Rank(float64(r.N)),
		})
	}
	return t
}

func legendTable(result *survey.PairedResult) *survey.Table {
	t := survey.NewTable("Question", "Before_question_ID", "After_question_ID")
	for _, e := range result.Legend {
		t.Append(survey.Row{
			"Question":           survey.Text(e.Question),
			"Before_question_ID": survey.Text(e.BeforeCode),
			"After_question_ID":  survey.Text(e.AfterCode),
		})
	}
	return t
}

// rankMeans builds the per-question descriptive sheet for one prepared
// wave: mean, sample standard deviation and count over the resolved
// ranks. Questions keep scoring-table order; unresolved cells are
// excluded.
func rankMeans(prepared *survey.Table, scoring *survey.ScoringTable) *survey.Table {
	t := survey.NewTable("question", "mean", "stddev", "n")
	for _, q := range scoring.Questions {
		if !prepared.HasColumn(q) {
			continue
		}
		var values []float64
		for _, cell := range prepared.Column(q) {
			if v, ok := cell.Rank(); ok {
				values = append(values, v)
			}
		}
		mean, sd := pairing.Describe(values)
		t.Append(survey.Row{
			"question": survey.Text(q),
			"mean":     statCell(mean),
			"stddev":   statCell(sd),
			"n":        survey.Rank(float64(len(values))),
		})
	}
	return t
}

// statCell renders a statistic: NaN becomes a blank cell (the missing
// marker); infinities stay numeric here and are rendered as signed
// text by the writer.
func statCell(v float64) survey.Cell {
	if math.IsNaN(v) {
		return survey.Blank()
	}
	return survey.Rank(v)
}
