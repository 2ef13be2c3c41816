package survey

import (
	"strings"

	"anonsurvey/domain/core"
)

// Canonical Likert category labels, in the order they appear in the
// scoring workbook.
const (
	LabelStronglyAgree    = "Strongly agree (SA)"
	LabelAgree            = "Agree (A)"
	LabelNeutral          = "Neutral (N)"
	LabelDisagree         = "Disagree (D)"
	LabelStronglyDisagree = "Strongly Disagree (SD)"
)

// CategoryLabels lists the fixed category vocabulary every RankMap
// must cover.
var CategoryLabels = []string{
	LabelStronglyAgree,
	LabelAgree,
	LabelNeutral,
	LabelDisagree,
	LabelStronglyDisagree,
}

// RankMap assigns an integer rank to each category label of one
// question. Direction encodes the question's polarity: positively
// phrased questions rank Strongly agree highest, negatively phrased
// ones lowest.
type RankMap map[string]int

// PositiveRank ranks agreement high (SA=4 .. SD=0).
func PositiveRank() RankMap {
	return RankMap{
		LabelStronglyAgree:    4,
		LabelAgree:            3,
		LabelNeutral:          2,
		LabelDisagree:         1,
		LabelStronglyDisagree: 0,
	}
}

// NegativeRank ranks agreement low (SA=0 .. SD=4).
func NegativeRank() RankMap {
	return RankMap{
		LabelStronglyAgree:    0,
		LabelAgree:            1,
		LabelNeutral:          2,
		LabelDisagree:         3,
		LabelStronglyDisagree: 4,
	}
}

// ScoringTable maps question text to the question's RankMap. It is
// loaded once at startup and treated as immutable for the run.
// Questions preserves workbook declaration order; that order fixes the
// question sequence everywhere downstream (legend codes, sheet layout).
type ScoringTable struct {
	Questions []string
	Ranks     map[string]RankMap
}

// NewScoringTable builds an empty scoring table.
func NewScoringTable() *ScoringTable {
	return &ScoringTable{Ranks: make(map[string]RankMap)}
}

// Add registers a question with its rank map, keeping declaration order.
// Re-adding a question overwrites its ranks without duplicating it.
func (s *ScoringTable) Add(question string, ranks RankMap) {
	if _, seen := s.Ranks[question]; !seen {
		s.Questions = append(s.Questions, question)
	}
	s.Ranks[question] = ranks
}

// Has reports whether question is part of the scoring vocabulary.
func (s *ScoringTable) Has(question string) bool {
	_, ok := s.Ranks[question]
	return ok
}

// Len returns the number of scored questions.
func (s *ScoringTable) Len() int {
	return len(s.Questions)
}

// Resolve maps a raw answer cell value to its rank for the given
// question. The value is whitespace-normalized before lookup. The
// second return is false for blank or unrecognized values; callers
// must treat that as missing, never as a valid rank.
func (s *ScoringTable) Resolve(question, value string) (int, bool) {
	ranks, ok := s.Ranks[question]
	if !ok {
		return 0, false
	}
	norm := NormalizeCategory(value)
	if norm == "" {
		return 0, false
	}
	rank, ok := ranks[norm]
	return rank, ok
}

// Validate checks that every question covers the full category
// vocabulary.
func (s *ScoringTable) Validate() error {
	for _, q := range s.Questions {
		ranks := s.Ranks[q]
		for _, label := range CategoryLabels {
			if _, ok := ranks[label]; !ok {
				return core.NewScoringError(q, label)
			}
		}
	}
	return nil
}

// NormalizeCategory collapses any run of whitespace to a single space
// and trims the ends, guarding against copy-pasted category text.
func NormalizeCategory(value string) string {
	return strings.Join(strings.Fields(value), " ")
}
