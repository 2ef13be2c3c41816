package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Survey.IDColumn != "Your student number" {
		t.Errorf("unexpected default identifier column %q", cfg.Survey.IDColumn)
	}
	if cfg.Survey.ScoringFile != "Scoring.xlsx" {
		t.Errorf("unexpected default scoring file %q", cfg.Survey.ScoringFile)
	}
	if cfg.Output.Level != AnonLevelToken {
		t.Errorf("unexpected default anonymization level %q", cfg.Output.Level)
	}
	if cfg.Output.Workers < 1 {
		t.Errorf("worker default must be positive, got %d", cfg.Output.Workers)
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ANON_ID_COLUMN", "Student ID")
	t.Setenv("ANON_LEVEL", "both")
	t.Setenv("ANON_OVERWRITE", "true")
	t.Setenv("ANON_WORKERS", "8")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Survey.IDColumn != "Student ID" {
		t.Errorf("env override ignored: %q", cfg.Survey.IDColumn)
	}
	if cfg.Output.Level != AnonLevelBoth {
		t.Errorf("env level ignored: %q", cfg.Output.Level)
	}
	if !cfg.Output.Overwrite {
		t.Error("env overwrite ignored")
	}
	if cfg.Output.Workers != 8 {
		t.Errorf("env workers ignored: %d", cfg.Output.Workers)
	}
}

func TestLoadRejectsBadLevel(t *testing.T) {
	t.Setenv("ANON_LEVEL", "shredded")
	if _, err := Load(); err == nil {
		t.Error("expected an error for an invalid anonymization level")
	}
}

func TestParseAnonLevel(t *testing.T) {
	for _, valid := range []string{"raw", "both", "token"} {
		if _, err := ParseAnonLevel(valid); err != nil {
			t.Errorf("ParseAnonLevel(%q) failed: %v", valid, err)
		}
	}
	if _, err := ParseAnonLevel("all"); err == nil {
		t.Error("expected an error for an unknown level")
	}
}
