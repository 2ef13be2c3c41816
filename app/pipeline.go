// Package app orchestrates survey runs: wave discovery, preparation,
// paired comparison and workbook output, with per-wave failure
// isolation.
package app

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"anonsurvey/adapters/files"
	"anonsurvey/domain/core"
	"anonsurvey/domain/survey"
	"anonsurvey/internal"
	"anonsurvey/internal/config"
	"anonsurvey/internal/pairing"
	"anonsurvey/internal/prepare"
	"anonsurvey/ports"
)

// metadataColumns are survey-platform columns stripped from cleaned
// output: they carry no analysis value and some are identifying.
var metadataColumns = []string{
	"ID", "Start time", "Completion time", "Email", "Name", "Last modified time",
}

// Cleaned-workbook sheet names.
const (
	sheetCleanPre      = "Clean pre-survey"
	sheetCleanPost     = "Clean post-survey"
	sheetPreRankMeans  = "Pre rank means"
	sheetPostRankMeans = "Post rank means"
)

// WaveOutcome reports one wave pair's processing result.
type WaveOutcome struct {
	Pair         files.WavePair
	CleanedPath  string
	AnalysisPath string
	// Skipped notes a partial-data condition that suppressed the
	// analysis output without failing the wave.
	Skipped string
	Err     error
}

// RunSummary aggregates a whole run.
type RunSummary struct {
	RunID    core.RunID
	Outcomes []WaveOutcome
}

// Failed counts waves that ended in error.
func (s *RunSummary) Failed() int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Err != nil {
			n++
		}
	}
	return n
}

// Service wires the pipeline: reader and writer adapters, the
// process-wide scoring table and the run configuration.
type Service struct {
	cfg     *config.Config
	scoring *survey.ScoringTable
	reader  ports.TableReader
	writer  ports.WorkbookWriter
	log     *internal.Logger
}

// NewService builds a pipeline service. The scoring table is loaded
// once by the caller and passed in; the service never mutates it.
func NewService(cfg *config.Config, scoring *survey.ScoringTable, reader ports.TableReader, writer ports.WorkbookWriter) *Service {
	return &Service{
		cfg:     cfg,
		scoring: scoring,
		reader:  reader,
		writer:  writer,
		log:     internal.DefaultLogger,
	}
}

// Run processes every wave pair. Waves run in parallel up to the
// configured worker bound; one wave's failure never blocks or corrupts
// its siblings: it is recorded in the summary and the run continues.
// cleanOnly suppresses the paired analysis, producing cleaned output
// only.
func (s *Service) Run(ctx context.Context, folder string, pairs []files.WavePair, cleanOnly bool) *RunSummary {
	summary := &RunSummary{
		RunID:    core.NewRunID(),
		Outcomes: make([]WaveOutcome, len(pairs)),
	}
	s.log.Info("run %s: %d wave pair(s) in %s", summary.RunID, len(pairs), folder)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Output.Workers)
	for i, pair := range pairs {
		i, pair := i, pair
		g.Go(func() error {
			outcome := s.processWave(ctx, folder, pair, i+1, cleanOnly)
			summary.Outcomes[i] = outcome
			if outcome.Err != nil {
				s.log.Error("wave %s failed: %v", filepath.Base(pair.Pre), outcome.Err)
			}
			// Errors stay inside the outcome so sibling waves keep going.
			return nil
		})
	}
	_ = g.Wait()

	s.log.Info("run %s finished: %d ok, %d failed", summary.RunID, len(pairs)-summary.Failed(), summary.Failed())
	return summary
}

// processWave runs the full pipeline for one pre/post pair.
func (s *Service) processWave(ctx context.Context, folder string, pair files.WavePair, sequence int, cleanOnly bool) WaveOutcome {
	outcome := WaveOutcome{Pair: pair}
	if err := ctx.Err(); err != nil {
		outcome.Err = err
		return outcome
	}

	dataName := files.SurveyDataName(pair.Pre, sequence)
	cleanedPath := files.CleanedPath(folder, dataName)
	analysisPath := files.AnalysisPath(folder, dataName)

	if s.cfg.Output.Overwrite {
		if err := files.RemovePrevious(cleanedPath, analysisPath); err != nil {
			outcome.Err = err
			return outcome
		}
	} else if existing, found := files.Exists(cleanedPath, analysisPath); found {
		outcome.Err = core.NewOutputExistsError(existing)
		return outcome
	}

	pre, err := s.prepareWaveHalf(pair.Pre)
	if err != nil {
		outcome.Err = err
		return outcome
	}

	var post *survey.Table
	if pair.HasPost() {
		if post, err = s.prepareWaveHalf(pair.Post); err != nil {
			outcome.Err = err
			return outcome
		}
	}

	var result *survey.PairedResult
	var split survey.RespondentSplit
	if post != nil {
		split = pairing.SplitRespondents(pre, post, prepare.TokenColumn)
		if !cleanOnly {
			result, err = pairing.Compare(pre, post, prepare.TokenColumn, s.scoring)
			if err != nil {
				if !core.IsPartialDataError(err) {
					outcome.Err = err
					return outcome
				}
				// Partial data: keep cleaning, skip the analysis.
				outcome.Skipped = err.Error()
				s.log.Warn("skipping analysis for %s: %v", dataName, err)
			}
		}
	} else if !cleanOnly {
		outcome.Skipped = core.ErrMissingCounterpart.Error()
	}

	cleaned := s.cleanedSheets(pre, post, split)
	if err := s.writer.Write(cleanedPath, cleaned); err != nil {
		outcome.Err = err
		return outcome
	}
	outcome.CleanedPath = cleanedPath

	if result != nil {
		if err := s.writer.Write(analysisPath, analysisSheets(result, prepare.TokenColumn)); err != nil {
			outcome.Err = err
			return outcome
		}
		outcome.AnalysisPath = analysisPath
	}
	return outcome
}

// prepareWaveHalf reads and prepares one survey file.
func (s *Service) prepareWaveHalf(path string) (*survey.Table, error) {
	raw, err := s.reader.Read(path)
	if err != nil {
		return nil, err
	}
	prepared, err := prepare.Prepare(raw, s.cfg.Survey.IDColumn, s.scoring, s.cfg.Survey.StripLeadingNonDigit)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	s.log.Debug("prepared %s: %d of %d rows kept", filepath.Base(path), prepared.Len(), raw.Len())
	return prepared, nil
}

// cleanedSheets assembles the cleaned workbook: one sheet per wave half
// with the anonymization level and metadata policy applied, plus rank
// mean descriptives.
func (s *Service) cleanedSheets(pre, post *survey.Table, split survey.RespondentSplit) []survey.Sheet {
	sheets := []survey.Sheet{
		s.cleanedSheet(sheetCleanPre, pre, split),
		{Name: sheetPreRankMeans, Table: rankMeans(pre, s.scoring)},
	}
	if post != nil {
		sheets = append(sheets,
			s.cleanedSheet(sheetCleanPost, post, split),
			survey.Sheet{Name: sheetPostRankMeans, Table: rankMeans(post, s.scoring)},
		)
	}
	return sheets
}

func (s *Service) cleanedSheet(name string, prepared *survey.Table, split survey.RespondentSplit) survey.Sheet {
	tints := make([]survey.Tint, prepared.Len())
	for i, row := range prepared.Rows {
		switch split.Membership(row[prepare.TokenColumn].Text) {
		case "common":
			tints[i] = survey.TintCommon
		case "before":
			tints[i] = survey.TintBeforeOnly
		case "after":
			tints[i] = survey.TintAfterOnly
		}
	}

	out := prepared.Clone()
	out.DropColumns(metadataColumns...)
	tintColumn := prepare.TokenColumn
	switch s.cfg.Output.Level {
	case config.AnonLevelToken:
		out.DropColumns(s.cfg.Survey.IDColumn)
	case config.AnonLevelRaw:
		out.DropColumns(prepare.TokenColumn)
		tintColumn = s.cfg.Survey.IDColumn
	}

	return survey.Sheet{Name: name, Table: out, Tints: tints, TintColumn: tintColumn}
}
