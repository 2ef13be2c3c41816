package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"anonsurvey/adapters/excel"
	"anonsurvey/adapters/files"
	"anonsurvey/app"
	"anonsurvey/internal"
	"anonsurvey/internal/config"
)

func main() {
	// Optional .env for local defaults; flags and env still win.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "anonsurvey",
		Short: "Anonymize survey spreadsheets and compare pre/post waves",
		Long: `anonsurvey de-identifies survey respondents with a stable one-way
hash, converts Likert answers to numeric ranks using a scoring
workbook, and computes paired before/after t-tests per question and
per respondent.`,
	}

	rootCmd.AddCommand(
		newCleanCmd(),
		newAnalyzeCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// flagSet carries the flag values shared by both subcommands.
type flagSet struct {
	column      string
	scoring     string
	level       string
	overwrite   bool
	stripPrefix bool
	workers     int
}

func (fl *flagSet) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&fl.column, "column", "c", "", "name of the respondent identifier column")
	cmd.Flags().StringVar(&fl.scoring, "scoring", "", "scoring workbook filename inside the survey folder")
	cmd.Flags().StringVar(&fl.level, "level", "", "anonymization level: raw|both|token")
	cmd.Flags().BoolVarP(&fl.overwrite, "overwrite", "o", false, "overwrite existing output files")
	cmd.Flags().BoolVarP(&fl.stripPrefix, "strip-prefix", "s", false, "strip one leading non-digit character from identifiers")
	cmd.Flags().IntVar(&fl.workers, "workers", 0, "max wave pairs processed in parallel")
}

// buildConfig loads env-based defaults and applies explicit flags on top.
func (fl *flagSet) buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cmd.Flags().Changed("column") {
		cfg.Survey.IDColumn = fl.column
	}
	if cmd.Flags().Changed("scoring") {
		cfg.Survey.ScoringFile = fl.scoring
	}
	if cmd.Flags().Changed("level") {
		lvl, err := config.ParseAnonLevel(fl.level)
		if err != nil {
			return nil, err
		}
		cfg.Output.Level = lvl
	}
	if cmd.Flags().Changed("overwrite") {
		cfg.Output.Overwrite = fl.overwrite
	}
	if cmd.Flags().Changed("strip-prefix") {
		cfg.Survey.StripLeadingNonDigit = fl.stripPrefix
	}
	if cmd.Flags().Changed("workers") {
		cfg.Output.Workers = fl.workers
	}
	return cfg, nil
}

func newCleanCmd() *cobra.Command {
	fl := &flagSet{}
	cmd := &cobra.Command{
		Use:   "clean [folder]",
		Short: "Anonymize and rank survey files without paired analysis",
		Long: `Clean every discovered survey wave in the folder: drop invalid and
duplicate respondents, anonymize identifiers, resolve Likert answers
to ranks, and write cleaned workbooks. Post-survey files may be
missing.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, fl, args[0], true)
		},
	}
	fl.register(cmd)
	return cmd
}

func newAnalyzeCmd() *cobra.Command {
	fl := &flagSet{}
	cmd := &cobra.Command{
		Use:   "analyze [folder]",
		Short: "Clean waves and compute paired before/after t-tests",
		Long: `Run the full pipeline: clean each pre/post wave pair, align them on
common respondents and questions, and write per-question and
per-respondent paired t-test workbooks. Waves without a post-survey
counterpart are cleaned only.

Example: anonsurvey analyze ./surveys --strip-prefix --level token`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, fl, args[0], false)
		},
	}
	fl.register(cmd)
	return cmd
}

func run(cmd *cobra.Command, fl *flagSet, folder string, cleanOnly bool) error {
	cfg, err := fl.buildConfig(cmd)
	if err != nil {
		return err
	}

	scoring, err := excel.NewScoringLoader().Load(
		filepath.Join(folder, cfg.Survey.ScoringFile), cfg.Survey.ScoringSheet)
	if err != nil {
		return err
	}

	pairs, err := files.FindSurveyPairs(folder, true)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		return fmt.Errorf("no survey files found in %s", folder)
	}

	service := app.NewService(cfg, scoring, excel.NewReader(), excel.NewWriter())
	summary := service.Run(cmd.Context(), folder, pairs, cleanOnly)

	for _, outcome := range summary.Outcomes {
		name := filepath.Base(outcome.Pair.Pre)
		switch {
		case outcome.Err != nil:
			internal.DefaultLogger.Error("%s: %v", name, outcome.Err)
		case outcome.Skipped != "":
			internal.DefaultLogger.Warn("%s: cleaned only (%s)", name, outcome.Skipped)
		default:
			internal.DefaultLogger.Info("%s: done", name)
		}
	}

	if failed := summary.Failed(); failed > 0 {
		return fmt.Errorf("%d of %d wave(s) failed", failed, len(summary.Outcomes))
	}
	return nil
}
