// Package files discovers survey wave files by naming convention and
// derives deterministic output names from them.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"anonsurvey/domain/core"
	"anonsurvey/internal"
)

const (
	prePrefix  = "Pre"
	postPrefix = "Post"

	analysisBase = "analysis"
	cleanedBase  = "cleaned"
	surveyBase   = "data_survey"
)

// WavePair is one discovered pre/post survey file pair. Post is empty
// when the counterpart is missing and clean-only processing was
// allowed.
type WavePair struct {
	Pre  string
	Post string
}

// HasPost reports whether the pair has a post-survey file.
func (p WavePair) HasPost() bool {
	return p.Post != ""
}

// FindSurveyPairs locates pre/post survey pairs in folder. A pre file
// is any `Pre*.xlsx`; its counterpart replaces the prefix with `Post`
// keeping the rest of the stem. Pairs without an existing counterpart
// are skipped unless allowMissingPost is set, in which case they are
// returned with an empty Post for clean-only runs.
func FindSurveyPairs(folder string, allowMissingPost bool) ([]WavePair, error) {
	if info, err := os.Stat(folder); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", core.ErrFolderMissing, folder)
	}

	matches, err := filepath.Glob(filepath.Join(folder, prePrefix+"*.xlsx"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	var pairs []WavePair
	for _, pre := range matches {
		stem := strings.TrimPrefix(filepath.Base(pre), prePrefix)
		post := filepath.Join(folder, postPrefix+stem)
		if _, err := os.Stat(post); err == nil {
			pairs = append(pairs, WavePair{Pre: pre, Post: post})
		} else if allowMissingPost {
			pairs = append(pairs, WavePair{Pre: pre})
		} else {
			internal.DefaultLogger.Warn("no post-survey counterpart for %s", filepath.Base(pre))
		}
	}
	return pairs, nil
}

// rangePattern matches the "(first-last)" response range some survey
// exports embed in their filename, e.g. "Survey(1-89).xlsx".
var rangePattern = regexp.MustCompile(`\(\d+-\d+\)`)

// SurveyDataName derives the deterministic base name for a wave's
// outputs. When the input filename carries a "(n-m)" range group the
// first group tags the name; otherwise the 1-based wave sequence
// number does.
func SurveyDataName(filename string, sequence int) string {
	if m := rangePattern.FindString(filepath.Base(filename)); m != "" {
		return fmt.Sprintf("%s_%s", surveyBase, m)
	}
	return fmt.Sprintf("%s_%02d", surveyBase, sequence)
}

// CleanedPath is the cleaned-workbook output path for a wave.
func CleanedPath(folder, dataName string) string {
	return filepath.Join(folder, fmt.Sprintf("%s_%s.xlsx", cleanedBase, dataName))
}

// AnalysisPath is the analysis-workbook output path for a wave.
func AnalysisPath(folder, dataName string) string {
	return filepath.Join(folder, fmt.Sprintf("%s_%s.xlsx", analysisBase, dataName))
}

// RemovePrevious deletes existing output files. Only called when the
// caller explicitly opted into overwriting.
func RemovePrevious(paths ...string) error {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// Exists reports whether any of the given paths already exists.
func Exists(paths ...string) (string, bool) {
	for _, p := range paths {
		if p == "" {
			continue
		}
		if _, err := os.Stat(p); err == nil {
			return p, true
		}
	}
	return "", false
}
