package files

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, folder, name string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(folder, name), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFindSurveyPairsNone(t *testing.T) {
	folder := t.TempDir()
	pairs, err := FindSurveyPairs(folder, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 0 {
		t.Errorf("expected no pairs in an empty folder, got %d", len(pairs))
	}
}

func TestFindSurveyPairsMissingFolder(t *testing.T) {
	if _, err := FindSurveyPairs(filepath.Join(t.TempDir(), "nope"), false); err == nil {
		t.Error("expected an error for a missing folder")
	}
}

func TestFindSurveyPairsOneOfTwo(t *testing.T) {
	folder := t.TempDir()
	touch(t, folder, "Pre_survey1.xlsx")
	touch(t, folder, "Pre_survey2.xlsx")
	touch(t, folder, "Post_survey2.xlsx")

	pairs, err := FindSurveyPairs(folder, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 1 {
		t.Fatalf("expected 1 complete pair, got %d", len(pairs))
	}
	if filepath.Base(pairs[0].Post) != "Post_survey2.xlsx" {
		t.Errorf("unexpected post file %s", pairs[0].Post)
	}
}

func TestFindSurveyPairsAllowMissingPost(t *testing.T) {
	folder := t.TempDir()
	touch(t, folder, "Pre_survey1.xlsx")
	touch(t, folder, "Pre_survey2.xlsx")
	touch(t, folder, "Post_survey2.xlsx")

	pairs, err := FindSurveyPairs(folder, true)
	if err != nil {
		t.Fatal(err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs with missing post allowed, got %d", len(pairs))
	}
	if pairs[0].HasPost() {
		t.Error("survey1 has no post counterpart")
	}
	if !pairs[1].HasPost() {
		t.Error("survey2 should have its post counterpart")
	}
}

func TestSurveyDataName(t *testing.T) {
	cases := []struct {
		filename string
		sequence int
		want     string
	}{
		{"data_survey_(1-89).xlsx", 1, "data_survey_(1-89)"},
		{"data_survey.xlsx", 2, "data_survey_02"},
		{"data_survey_(1-89)_(2-90).xlsx", 3, "data_survey_(1-89)"},
		{"prefix_(1-89)_suffix.xlsx", 4, "data_survey_(1-89)"},
		{"(1-89)_data_survey.xlsx", 5, "data_survey_(1-89)"},
		{"Post- Course Survey_ Perceived Sense of Community in Blended Learning(1-89).xlsx", 7, "data_survey_(1-89)"},
		{"", 7, "data_survey_07"},
	}
	for _, c := range cases {
		if got := SurveyDataName(c.filename, c.sequence); got != c.want {
			t.Errorf("SurveyDataName(%q, %d) = %q, want %q", c.filename, c.sequence, got, c.want)
		}
	}
}

func TestOutputPaths(t *testing.T) {
	if got := CleanedPath("out", "data_survey_01"); got != filepath.Join("out", "cleaned_data_survey_01.xlsx") {
		t.Errorf("unexpected cleaned path %q", got)
	}
	if got := AnalysisPath("out", "data_survey_01"); got != filepath.Join("out", "analysis_data_survey_01.xlsx") {
		t.Errorf("unexpected analysis path %q", got)
	}
}

func TestRemovePrevious(t *testing.T) {
	folder := t.TempDir()
	touch(t, folder, "analysis_data_survey_01.xlsx")
	target := filepath.Join(folder, "analysis_data_survey_01.xlsx")

	if err := RemovePrevious(target, filepath.Join(folder, "not_there.xlsx"), ""); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("existing output should have been removed")
	}
}

func TestExists(t *testing.T) {
	folder := t.TempDir()
	touch(t, folder, "cleaned_data_survey_01.xlsx")

	path, found := Exists("", filepath.Join(folder, "cleaned_data_survey_01.xlsx"))
	if !found {
		t.Fatal("expected the cleaned output to be found")
	}
	if filepath.Base(path) != "cleaned_data_survey_01.xlsx" {
		t.Errorf("unexpected path %q", path)
	}
	if _, found := Exists(filepath.Join(folder, "other.xlsx")); found {
		t.Error("expected no match for a missing file")
	}
}
