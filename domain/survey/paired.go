package survey

import "fmt"

// QuestionStat is the paired t-test result for one question across all
// common respondents, with per-wave descriptives.
type QuestionStat struct {
	Question     string
	BeforeCode   string
	AfterCode    string
	Statistic    float64
	PValue       float64
	N            int
	BeforeMean   float64
	BeforeStdDev float64
	AfterMean    float64
	AfterStdDev  float64
}

// RespondentStat is the paired t-test result for one respondent's own
// answer vector across all common questions.
type RespondentStat struct {
	Respondent string
	Statistic  float64
	PValue     float64
	N          int
}

// LegendEntry maps question text to its positional before/after codes.
type LegendEntry struct {
	Question   string
	BeforeCode string
	AfterCode  string
}

// RespondentSplit partitions the respondents of two waves into three
// disjoint, sorted sets.
type RespondentSplit struct {
	Common     []string
	BeforeOnly []string
	AfterOnly  []string
}

// Membership reports which set the given token belongs to:
// "common", "before", "after", or "" when unknown.
func (s RespondentSplit) Membership(token string) string {
	for _, t := range s.Common {
		if t == token {
			return "common"
		}
	}
	for _, t := range s.BeforeOnly {
		if t == token {
			return "before"
		}
	}
	for _, t := range s.AfterOnly {
		if t == token {
			return "after"
		}
	}
	return ""
}

// PairedResult aggregates everything the paired comparator produces for
// one before/after wave pair. Before and After are the single-wave
// tables restricted to the common respondents and questions; Combined
// is the wide join keyed by the pseudonymous identifier.
type PairedResult struct {
	Questions   []QuestionStat
	Respondents []RespondentStat
	Legend      []LegendEntry
	Before      *Table
	After       *Table
	Combined    *Table
	Split       RespondentSplit
}

// BeforeCode renders the positional short code for a 1-indexed question.
func BeforeCode(n int) string {
	return fmt.Sprintf("before_%02d", n)
}

// AfterCode renders the positional short code for a 1-indexed question.
func AfterCode(n int) string {
	return fmt.Sprintf("after_%02d", n)
}
