package config

import (
	"fmt"
	"os"
	"strconv"

	"anonsurvey/internal/errors"
)

// AnonLevel selects which identifier columns survive in cleaned output.
type AnonLevel string

const (
	// AnonLevelRaw keeps only the raw identifier (no anonymization output).
	AnonLevelRaw AnonLevel = "raw"
	// AnonLevelBoth keeps the raw identifier next to the token.
	AnonLevelBoth AnonLevel = "both"
	// AnonLevelToken drops the raw identifier, keeping only the token.
	AnonLevelToken AnonLevel = "token"
)

// ParseAnonLevel validates an anonymization level string.
func ParseAnonLevel(s string) (AnonLevel, error) {
	switch AnonLevel(s) {
	case AnonLevelRaw, AnonLevelBoth, AnonLevelToken:
		return AnonLevel(s), nil
	}
	return "", errors.ConfigInvalid(fmt.Sprintf("invalid anonymization level %q (raw|both|token)", s))
}

// Config represents the complete application configuration
type Config struct {
	Survey SurveyConfig
	Output OutputConfig
}

// SurveyConfig holds survey input settings
type SurveyConfig struct {
	// IDColumn names the input column holding the respondent identifier.
	IDColumn string
	// ScoringFile is the scoring workbook filename, resolved inside the
	// survey folder.
	ScoringFile string
	// ScoringSheet is the worksheet holding the rank table.
	ScoringSheet string
	// StripLeadingNonDigit drops one leading non-digit character from
	// identifiers (institutional prefix letters).
	StripLeadingNonDigit bool
}

// OutputConfig holds output policy settings
type OutputConfig struct {
	Level     AnonLevel
	Overwrite bool
	// Workers bounds per-wave parallelism.
	Workers int
}

// Load reads configuration from environment variables with defaults.
// CLI flags override the loaded values at the command layer.
func Load() (*Config, error) {
	cfg := &Config{
		Survey: SurveyConfig{
			IDColumn:             envOr("ANON_ID_COLUMN", "Your student number"),
			ScoringFile:          envOr("ANON_SCORING_FILE", "Scoring.xlsx"),
			ScoringSheet:         envOr("ANON_SCORING_SHEET", "Scoring"),
			StripLeadingNonDigit: envBool("ANON_STRIP_PREFIX", false),
		},
		Output: OutputConfig{
			Level:     AnonLevelToken,
			Overwrite: envBool("ANON_OVERWRITE", false),
			Workers:   envInt("ANON_WORKERS", 4),
		},
	}

	if lvl := os.Getenv("ANON_LEVEL"); lvl != "" {
		parsed, err := ParseAnonLevel(lvl)
		if err != nil {
			return nil, err
		}
		cfg.Output.Level = parsed
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.Survey.IDColumn == "" {
		return errors.ConfigInvalid("identifier column name must not be empty")
	}
	if cfg.Survey.ScoringFile == "" {
		return errors.ConfigInvalid("scoring file name must not be empty")
	}
	if cfg.Output.Workers < 1 {
		return errors.ConfigInvalid("worker count must be at least 1")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
