package excel

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"anonsurvey/domain/core"
	"anonsurvey/domain/survey"
	"anonsurvey/internal"
	"anonsurvey/internal/errors"
)

// expectedScoringColumns is the required header of the scoring sheet,
// in order: the question text followed by one rank column per category.
var expectedScoringColumns = append([]string{"question"}, survey.CategoryLabels...)

// ScoringLoader loads the scoring workbook into a ScoringTable.
type ScoringLoader struct {
	log *internal.Logger
}

// NewScoringLoader creates a scoring workbook loader.
func NewScoringLoader() *ScoringLoader {
	return &ScoringLoader{log: internal.DefaultLogger}
}

// Load reads the scoring definition. A missing file is a fatal
// configuration error: without it no rank resolution can run. Question
// order in the sheet becomes the canonical question order for the run.
func (l *ScoringLoader) Load(path, sheet string) (*survey.ScoringTable, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", core.ErrScoringUnavailable, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, errors.IOError(fmt.Sprintf("failed to open scoring file %s", path), err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: sheet %q not readable in %s", core.ErrScoringUnavailable, sheet, path)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: %s has no scoring rows", core.ErrScoringUnavailable, path)
	}

	colIx, err := scoringHeader(rows[0])
	if err != nil {
		return nil, err
	}

	scoring := survey.NewScoringTable()
	for i, raw := range rows[1:] {
		question := cellAt(raw, colIx["question"])
		if question == "" {
			continue
		}
		ranks := make(survey.RankMap, len(survey.CategoryLabels)+1)
		for _, label := range survey.CategoryLabels {
			val := cellAt(raw, colIx[label])
			rank, err := strconv.Atoi(val)
			if err != nil {
				return nil, errors.InvalidInput(
					fmt.Sprintf("scoring row %d: rank for %q is not an integer: %q", i+2, label, val))
			}
			ranks[label] = rank
		}
		scoring.Add(question, ranks)
	}

	if err := scoring.Validate(); err != nil {
		return nil, err
	}
	l.log.Info("scoring table loaded: %d questions from %s", scoring.Len(), path)
	return scoring, nil
}

// scoringHeader maps each expected column name to its position.
func scoringHeader(header []string) (map[string]int, error) {
	ix := make(map[string]int, len(expectedScoringColumns))
	for i, h := range header {
		ix[strings.TrimSpace(h)] = i
	}
	for _, want := range expectedScoringColumns {
		if _, ok := ix[want]; !ok {
			return nil, errors.InvalidInput(fmt.Sprintf("scoring sheet is missing column %q", want))
		}
	}
	return ix, nil
}

func cellAt(row []string, ix int) string {
	if ix < 0 || ix >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[ix])
}
